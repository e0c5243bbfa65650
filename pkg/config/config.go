// Package config parses command-line flags and optional YAML config files
// into the scan configuration shared by the transport, scheduler, and
// output layers. Validation is eager: conflicting or out-of-range options
// abort before any network activity.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/target"
	"github.com/leftovers/leftovers/pkg/wordlist"
)

// Config holds all scan options.
type Config struct {
	// Target settings
	TargetURL string // single URL or domain
	ListFile  string // file with one URL/domain per line

	// Extension settings
	Extensions   []string // extensions to probe, normalized (no dots, lowercase)
	WordlistFile string   // file with one extension/word per line
	TestIndex    bool     // also probe index.<ext> on domain-only targets

	// Execution settings
	Threads   int           // parallel workers (default: 10)
	Timeout   time.Duration // per-request timeout (default: 5s)
	Retries   int           // transient-failure retries (default: 1)
	RateLimit float64       // max requests per second, 0 = unlimited
	Delay     time.Duration // fixed pause between requests, 0 = none

	// HTTP settings
	UserAgent    string            // overrides the default User-Agent
	RotateAgents bool              // pick a random User-Agent per request
	Headers      map[string]string // final outbound header set
	Cookie       string            // Cookie header value
	VerifySSL    bool              // verify TLS certificates (default: true)
	UseCache     bool              // LRU response cache (default: true)
	CacheSize    int               // cache capacity in entries

	// Brute force settings
	BruteForce     bool // probe common backup words as paths
	BruteRecursive bool // brute force every path level, not just the leaf
	DomainWordlist bool // enrich brute words with domain-derived variations

	// Filter settings
	StatusFilter       []int    // keep only these status codes (empty = all)
	MinSize            int64    // minimum content length in bytes, 0 = off
	MaxSize            int64    // maximum content length in bytes, 0 = off
	IgnoreContentTypes []string // drop responses with these content types

	// Classification settings
	DisableFPDetection bool // report everything, keeping the FP tag

	// Output settings
	OutputFile   string // JSON export path (empty = no export)
	OutputPerURL bool   // one export file per URL when scanning a list
	Verbose      bool
	Silent       bool
	NoColor      bool

	// ShowVersion prints the version and exits.
	ShowVersion bool
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions: defaults.Extensions(),
		Threads:    defaults.Threads,
		Timeout:    defaults.Timeout,
		Retries:    defaults.MaxRetries,
		Headers:    defaults.Headers(),
		VerifySSL:  true,
		UseCache:   true,
		CacheSize:  defaults.CacheSize,
	}
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseFlags parses command line arguments and returns a validated Config.
// When -config names a YAML file, the file provides the base values and
// explicitly-set flags override them.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	var (
		configFile    string
		extensionsCSV string
		statusCSV     string
		headerArgs    stringList
		ignoreArgs    stringList
		noSSLVerify   bool
		noCache       bool
		timeoutSec    = int(defaults.Timeout / time.Second)
	)

	// === TARGET ===
	flag.StringVar(&cfg.TargetURL, "url", "", "Single URL or domain to scan")
	flag.StringVar(&cfg.TargetURL, "u", "", "Target URL (alias)")
	flag.StringVar(&cfg.ListFile, "list", "", "File with URLs/domains, one per line")
	flag.StringVar(&cfg.ListFile, "l", "", "URL list file (alias)")
	flag.StringVar(&configFile, "config", "", "YAML configuration file")

	// === EXTENSIONS ===
	flag.StringVar(&extensionsCSV, "extensions", "", "Comma-separated extensions to test")
	flag.StringVar(&extensionsCSV, "e", "", "Extensions (alias)")
	flag.StringVar(&cfg.WordlistFile, "wordlist", "", "File with extensions to test, one per line")
	flag.StringVar(&cfg.WordlistFile, "w", "", "Wordlist file (alias)")
	flag.BoolVar(&cfg.TestIndex, "test-index", false, "Probe index.<ext> on domain-only targets")

	// === EXECUTION ===
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "Parallel workers")
	flag.IntVar(&timeoutSec, "timeout", timeoutSec, "Request timeout in seconds")
	flag.IntVar(&timeoutSec, "t", timeoutSec, "Timeout (alias)")
	flag.IntVar(&cfg.Retries, "retries", cfg.Retries, "Retries on transient failures")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", 0, "Max requests per second (0 = unlimited)")
	flag.Float64Var(&cfg.RateLimit, "rl", 0, "Rate limit (alias)")
	flag.DurationVar(&cfg.Delay, "delay", 0, "Fixed pause between requests (e.g. 250ms)")

	// === HTTP ===
	flag.StringVar(&cfg.UserAgent, "user-agent", "", "Custom User-Agent")
	flag.StringVar(&cfg.UserAgent, "a", "", "User-Agent (alias)")
	flag.BoolVar(&cfg.RotateAgents, "rotate-agents", false, "Randomly rotate User-Agents")
	flag.BoolVar(&cfg.RotateAgents, "ra", false, "Rotate User-Agents (alias)")
	flag.Var(&headerArgs, "header", "Custom header 'Name: Value' (repeatable)")
	flag.Var(&headerArgs, "H", "Custom header (alias)")
	flag.StringVar(&cfg.Cookie, "cookie", "", "Cookies to send with requests")
	flag.StringVar(&cfg.Cookie, "c", "", "Cookie (alias)")
	flag.BoolVar(&noSSLVerify, "no-ssl-verify", false, "Disable TLS certificate verification")
	flag.BoolVar(&noSSLVerify, "k", false, "Disable TLS verification (alias)")
	flag.BoolVar(&noCache, "no-cache", false, "Disable the response cache")

	// === BRUTE FORCE ===
	flag.BoolVar(&cfg.BruteForce, "brute", false, "Brute force common backup words as paths")
	flag.BoolVar(&cfg.BruteForce, "b", false, "Brute force (alias)")
	flag.BoolVar(&cfg.BruteRecursive, "brute-recursive", false, "Brute force every path level")
	flag.BoolVar(&cfg.BruteRecursive, "br", false, "Recursive brute force (alias)")
	flag.BoolVar(&cfg.DomainWordlist, "domain-wordlist", false, "Derive extra brute words from the target domain")
	flag.BoolVar(&cfg.DomainWordlist, "dw", false, "Domain wordlist (alias)")

	// === FILTERS ===
	flag.StringVar(&statusCSV, "status", "", "Keep only these status codes (e.g. 200,301,403)")
	flag.StringVar(&statusCSV, "sc", "", "Status filter (alias)")
	flag.Int64Var(&cfg.MinSize, "min-size", 0, "Minimum content size in bytes")
	flag.Int64Var(&cfg.MaxSize, "max-size", 0, "Maximum content size in bytes")
	flag.Var(&ignoreArgs, "content-ignore", "Drop responses with this content type (repeatable)")
	flag.Var(&ignoreArgs, "ci", "Content type to ignore (alias)")
	flag.BoolVar(&cfg.DisableFPDetection, "no-fp", false, "Disable false-positive suppression (tags are kept)")

	// === OUTPUT ===
	flag.StringVar(&cfg.OutputFile, "output", "", "File to save results (JSON)")
	flag.StringVar(&cfg.OutputFile, "o", "", "Output file (alias)")
	flag.BoolVar(&cfg.OutputPerURL, "output-per-url", false, "Separate output file per URL (with -list)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")
	flag.BoolVar(&cfg.Silent, "silent", false, "Silent mode - findings and errors only")
	flag.BoolVar(&cfg.Silent, "s", false, "Silent (alias)")
	flag.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	flag.Parse()

	// Convert derived values before any merging.
	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.VerifySSL = !noSSLVerify
	cfg.UseCache = !noCache
	if extensionsCSV != "" {
		cfg.Extensions = NormalizeExtensions(strings.Split(extensionsCSV, ","))
	}
	if statusCSV != "" {
		codes, err := ParseStatusCodes(statusCSV)
		if err != nil {
			return nil, err
		}
		cfg.StatusFilter = codes
	}
	cfg.IgnoreContentTypes = append(cfg.IgnoreContentTypes, ignoreArgs...)

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[canonicalFlag(f.Name)] = true
	})

	final := cfg
	if configFile != "" {
		base := DefaultConfig()
		if err := LoadFile(configFile, base); err != nil {
			return nil, err
		}
		overlayFlags(base, cfg, set)
		final = base
	}

	// Extensions from a wordlist file, unless -e took precedence.
	if final.WordlistFile != "" && !set["extensions"] {
		words, err := wordlist.LoadWords(final.WordlistFile)
		if err != nil {
			return nil, fmt.Errorf("%w: wordlist: %v", ErrInvalidConfig, err)
		}
		final.Extensions = NormalizeExtensions(words)
	}

	// Assemble the outbound header set last so every source is merged.
	if final.Headers == nil {
		final.Headers = defaults.Headers()
	}
	if final.UserAgent != "" {
		final.Headers["User-Agent"] = final.UserAgent
	}
	for _, h := range headerArgs {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("%w: header %q must use 'Name: Value' format", ErrInvalidConfig, h)
		}
		final.Headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	if final.Cookie != "" {
		final.Headers["Cookie"] = final.Cookie
	}

	if final.ShowVersion {
		return final, nil
	}
	if err := final.Validate(); err != nil {
		return nil, err
	}
	return final, nil
}

// Validate performs the eager checks that must pass before any network
// activity starts.
func (c *Config) Validate() error {
	if c.TargetURL == "" && c.ListFile == "" {
		return fmt.Errorf("%w: target required: use -u or -l", ErrMissingRequired)
	}
	if c.TargetURL != "" {
		if err := target.ValidateURL(c.TargetURL); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.Verbose && c.Silent {
		return fmt.Errorf("%w: -verbose and -silent are mutually exclusive", ErrInvalidConfig)
	}
	if c.RateLimit > 0 && c.Delay > 0 {
		return fmt.Errorf("%w: -rate-limit and -delay are mutually exclusive", ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrInvalidConfig)
	}
	if c.Threads < 1 || c.Threads > 100 {
		return fmt.Errorf("%w: threads must be between 1 and 100, got %d", ErrInvalidConfig, c.Threads)
	}
	if c.Timeout < time.Second || c.Timeout > 5*time.Minute {
		return fmt.Errorf("%w: timeout must be between 1s and 5m, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	}
	if c.MinSize < 0 || c.MaxSize < 0 {
		return fmt.Errorf("%w: size filters must not be negative", ErrInvalidConfig)
	}
	if c.MinSize > 0 && c.MaxSize > 0 && c.MinSize > c.MaxSize {
		return fmt.Errorf("%w: min-size %d exceeds max-size %d", ErrInvalidConfig, c.MinSize, c.MaxSize)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: no extensions to test", ErrInvalidConfig)
	}
	return nil
}

// NormalizeExtensions trims whitespace and leading dots, lowercases, and
// de-duplicates while preserving order.
func NormalizeExtensions(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// ParseStatusCodes parses a comma-separated status code list like "200,301,403".
func ParseStatusCodes(csv string) ([]int, error) {
	parts := strings.Split(csv, ",")
	codes := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		code, err := strconv.Atoi(p)
		if err != nil || code < 100 || code > 599 {
			return nil, fmt.Errorf("%w: invalid status code %q", ErrInvalidConfig, p)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// canonicalFlag maps flag aliases to their long name so explicit-set
// tracking sees -u and -url as the same option.
func canonicalFlag(name string) string {
	switch name {
	case "u":
		return "url"
	case "l":
		return "list"
	case "e":
		return "extensions"
	case "w":
		return "wordlist"
	case "t":
		return "timeout"
	case "rl":
		return "rate-limit"
	case "a":
		return "user-agent"
	case "ra":
		return "rotate-agents"
	case "H":
		return "header"
	case "c":
		return "cookie"
	case "k":
		return "no-ssl-verify"
	case "b":
		return "brute"
	case "br":
		return "brute-recursive"
	case "dw":
		return "domain-wordlist"
	case "sc":
		return "status"
	case "ci":
		return "content-ignore"
	case "o":
		return "output"
	case "v":
		return "verbose"
	case "s":
		return "silent"
	case "nc":
		return "no-color"
	}
	return name
}

// overlayFlags copies every explicitly-set command-line value from cli
// onto base, so flags win over the config file.
func overlayFlags(base, cli *Config, set map[string]bool) {
	if set["url"] {
		base.TargetURL = cli.TargetURL
	}
	if set["list"] {
		base.ListFile = cli.ListFile
	}
	if set["extensions"] {
		base.Extensions = cli.Extensions
	}
	if set["wordlist"] {
		base.WordlistFile = cli.WordlistFile
	}
	if set["test-index"] {
		base.TestIndex = cli.TestIndex
	}
	if set["threads"] {
		base.Threads = cli.Threads
	}
	if set["timeout"] {
		base.Timeout = cli.Timeout
	}
	if set["retries"] {
		base.Retries = cli.Retries
	}
	if set["rate-limit"] {
		base.RateLimit = cli.RateLimit
	}
	if set["delay"] {
		base.Delay = cli.Delay
	}
	if set["user-agent"] {
		base.UserAgent = cli.UserAgent
	}
	if set["rotate-agents"] {
		base.RotateAgents = cli.RotateAgents
	}
	if set["cookie"] {
		base.Cookie = cli.Cookie
	}
	if set["no-ssl-verify"] {
		base.VerifySSL = cli.VerifySSL
	}
	if set["no-cache"] {
		base.UseCache = cli.UseCache
	}
	if set["brute"] {
		base.BruteForce = cli.BruteForce
	}
	if set["brute-recursive"] {
		base.BruteRecursive = cli.BruteRecursive
	}
	if set["domain-wordlist"] {
		base.DomainWordlist = cli.DomainWordlist
	}
	if set["status"] {
		base.StatusFilter = cli.StatusFilter
	}
	if set["min-size"] {
		base.MinSize = cli.MinSize
	}
	if set["max-size"] {
		base.MaxSize = cli.MaxSize
	}
	if set["content-ignore"] {
		base.IgnoreContentTypes = cli.IgnoreContentTypes
	}
	if set["no-fp"] {
		base.DisableFPDetection = cli.DisableFPDetection
	}
	if set["output"] {
		base.OutputFile = cli.OutputFile
	}
	if set["output-per-url"] {
		base.OutputPerURL = cli.OutputPerURL
	}
	if set["verbose"] {
		base.Verbose = cli.Verbose
	}
	if set["silent"] {
		base.Silent = cli.Silent
	}
	if set["no-color"] {
		base.NoColor = cli.NoColor
	}
	if set["version"] {
		base.ShowVersion = cli.ShowVersion
	}
}
