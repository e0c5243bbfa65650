package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags resets the flag package for each test
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
}

func parseArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	resetFlags()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"leftovers"}, args...)
	return ParseFlags()
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseArgs(t, "-u", "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.TargetURL)
	assert.Equal(t, 10, cfg.Threads)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Retries)
	assert.Zero(t, cfg.RateLimit)
	assert.Zero(t, cfg.Delay)
	assert.True(t, cfg.VerifySSL)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.NotEmpty(t, cfg.Extensions, "default extension set should be loaded")
	assert.Contains(t, cfg.Headers, "User-Agent")
	assert.False(t, cfg.BruteForce)
	assert.False(t, cfg.DisableFPDetection)
}

func TestParseFlagsAliases(t *testing.T) {
	cfg, err := parseArgs(t, "-u", "https://example.com",
		"-e", ".SQL, bak, sql", "-t", "10", "-rl", "25", "-b", "-o", "out.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"sql", "bak"}, cfg.Extensions)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 25.0, cfg.RateLimit)
	assert.True(t, cfg.BruteForce)
	assert.Equal(t, "out.json", cfg.OutputFile)
}

func TestParseFlagsHeaders(t *testing.T) {
	cfg, err := parseArgs(t, "-u", "https://example.com",
		"-a", "custom-agent/1.0",
		"-H", "X-Forwarded-For: 10.0.0.1",
		"-H", "Authorization: Bearer abc",
		"-c", "session=xyz")
	require.NoError(t, err)

	assert.Equal(t, "custom-agent/1.0", cfg.Headers["User-Agent"])
	assert.Equal(t, "10.0.0.1", cfg.Headers["X-Forwarded-For"])
	assert.Equal(t, "Bearer abc", cfg.Headers["Authorization"])
	assert.Equal(t, "session=xyz", cfg.Headers["Cookie"])
}

func TestParseFlagsBadHeader(t *testing.T) {
	_, err := parseArgs(t, "-u", "https://example.com", "-H", "not-a-header")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseFlagsStatusFilter(t *testing.T) {
	cfg, err := parseArgs(t, "-u", "https://example.com", "-sc", "200, 301,403")
	require.NoError(t, err)
	assert.Equal(t, []int{200, 301, 403}, cfg.StatusFilter)
}

func TestParseFlagsInvalidStatusCode(t *testing.T) {
	_, err := parseArgs(t, "-u", "https://example.com", "-sc", "200,nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseFlagsRequiresTarget(t *testing.T) {
	_, err := parseArgs(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestParseFlagsListFileSkipsTarget(t *testing.T) {
	cfg, err := parseArgs(t, "-l", "urls.txt")
	require.NoError(t, err)
	assert.Equal(t, "urls.txt", cfg.ListFile)
}

func TestParseFlagsWordlistFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exts.txt")
	require.NoError(t, os.WriteFile(path, []byte("sql\n# comment\nbak\n\n.old\n"), 0o644))

	cfg, err := parseArgs(t, "-u", "https://example.com", "-w", path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sql", "bak", "old"}, cfg.Extensions)
}

func TestParseFlagsExtensionsBeatWordlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exts.txt")
	require.NoError(t, os.WriteFile(path, []byte("sql\nbak\n"), 0o644))

	cfg, err := parseArgs(t, "-u", "https://example.com", "-w", path, "-e", "zip")
	require.NoError(t, err)
	assert.Equal(t, []string{"zip"}, cfg.Extensions)
}

func TestParseFlagsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leftovers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target: https://config.example.com
extensions: [sql, bak]
threads: 20
timeout: 30s
rate_limit: 5
verify_ssl: false
brute: true
headers:
  X-Scan-Id: run-42
status: [200, 403]
`), 0o644))

	cfg, err := parseArgs(t, "-config", path)
	require.NoError(t, err)

	assert.Equal(t, "https://config.example.com", cfg.TargetURL)
	assert.Equal(t, []string{"sql", "bak"}, cfg.Extensions)
	assert.Equal(t, 20, cfg.Threads)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.False(t, cfg.VerifySSL)
	assert.True(t, cfg.BruteForce)
	assert.Equal(t, "run-42", cfg.Headers["X-Scan-Id"])
	assert.Equal(t, []int{200, 403}, cfg.StatusFilter)
}

func TestParseFlagsCLIOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leftovers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target: https://config.example.com
threads: 20
`), 0o644))

	cfg, err := parseArgs(t, "-config", path,
		"-u", "https://cli.example.com", "-threads", "3")
	require.NoError(t, err)

	assert.Equal(t, "https://cli.example.com", cfg.TargetURL)
	assert.Equal(t, 3, cfg.Threads)
}

func TestParseFlagsBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: [unclosed"), 0o644))

	_, err := parseArgs(t, "-config", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"verbose and silent", func(c *Config) { c.Verbose = true; c.Silent = true }},
		{"rate limit and delay", func(c *Config) { c.RateLimit = 10; c.Delay = 100 * time.Millisecond }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"zero threads", func(c *Config) { c.Threads = 0 }},
		{"too many threads", func(c *Config) { c.Threads = 500 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Retries = -1 }},
		{"negative min size", func(c *Config) { c.MinSize = -1 }},
		{"min above max", func(c *Config) { c.MinSize = 1000; c.MaxSize = 10 }},
		{"no extensions", func(c *Config) { c.Extensions = nil }},
		{"invalid target URL", func(c *Config) { c.TargetURL = "ftp://example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TargetURL = "https://example.com"
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			if !errors.Is(err, ErrInvalidConfig) && !errors.Is(err, ErrMissingRequired) {
				t.Errorf("error %v is not a config sentinel", err)
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetURL = "https://example.com"
	assert.NoError(t, cfg.Validate())
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{" .SQL ", "bak", "", "sql", ".Old"})
	assert.Equal(t, []string{"sql", "bak", "old"}, got)
}

func TestParseStatusCodes(t *testing.T) {
	codes, err := ParseStatusCodes("200,301, 403")
	require.NoError(t, err)
	assert.Equal(t, []int{200, 301, 403}, codes)

	_, err = ParseStatusCodes("99")
	assert.Error(t, err)
	_, err = ParseStatusCodes("abc")
	assert.Error(t, err)
}
