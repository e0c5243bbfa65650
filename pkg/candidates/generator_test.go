package candidates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leftovers/leftovers/pkg/target"
)

func mustTarget(t *testing.T, raw string) *target.Target {
	t.Helper()
	tgt, err := target.Parse(raw)
	require.NoError(t, err)
	return tgt
}

func urlsOf(cands []Candidate) map[string]Kind {
	m := make(map[string]Kind, len(cands))
	for _, c := range cands {
		m[c.URL] = c.Kind
	}
	return m
}

func TestGenerate_SimplePathTarget(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://example.com/app"))
	urls := urlsOf(cands)

	assert.Equal(t, KindFullURL, urls["https://example.com/app"])
	assert.Contains(t, urls, "https://example.com/example")
	assert.Contains(t, urls, "https://example.com/example.com")
	assert.Contains(t, urls, "https://example.com/example_backup")
	assert.Contains(t, urls, "https://example.com/backupexample")
	assert.Contains(t, urls, "https://example.com/staging")
	assert.Contains(t, urls, "https://example.com/app/example.com")
	assert.Contains(t, urls, "https://example.com/app/example.com")
}

func TestGenerate_NoPathEmitsBaseURL(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://example.com"))
	urls := urlsOf(cands)

	assert.Equal(t, KindBaseURL, urls["https://example.com"])
	assert.Contains(t, urls, "https://example.com/example")
}

func TestGenerate_NeverDuplicatesURLs(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&Options{
		BruteForce:     true,
		BruteRecursive: true,
		BackupWords:    []string{"backup.zip", "old", "example"},
	})
	cands := g.Generate(mustTarget(t, "https://www.example.com/a/b/c"))

	seen := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		_, dup := seen[c.URL]
		require.False(t, dup, "duplicate URL emitted: %s (%s)", c.URL, c.Label())
		seen[c.URL] = struct{}{}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	opts := &Options{BruteForce: true, BackupWords: []string{"a.zip", "b.tar"}}
	tgt := mustTarget(t, "https://www.example.com/app/v2")

	first := NewGenerator(opts).Generate(tgt)
	second := NewGenerator(opts).Generate(tgt)
	assert.Equal(t, first, second)
}

func TestGenerate_SubdomainLevels(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://www.stage.example.com"))
	urls := urlsOf(cands)

	assert.Equal(t, KindSubdomain, urls["https://www.stage.example.com/www"])
	assert.Equal(t, KindSubdomain, urls["https://www.stage.example.com/stage"])
	assert.Equal(t, KindDomainName, urls["https://www.stage.example.com/example"])
	assert.Equal(t, KindDomain, urls["https://www.stage.example.com/example.com"])
}

func TestGenerate_CompositeSubdomainPermutations(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://banco-honda.example.com.br"))
	urls := urlsOf(cands)

	base := "https://banco-honda.example.com.br"
	for _, perm := range []string{"honda.banco", "banco.honda", "bancohonda", "hondabanco", "banco_honda"} {
		assert.Contains(t, urls, base+"/"+perm, "missing permutation %s", perm)
	}
}

func TestGenerate_PathLevels(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://www.example.com/a/b/c"))
	urls := urlsOf(cands)

	base := "https://www.example.com"
	// Partial prefixes get domain components.
	assert.Contains(t, urls, base+"/a/example")
	assert.Contains(t, urls, base+"/a/b/example.com")
	// Every level gets the hostname echo.
	assert.Contains(t, urls, base+"/a/b/c/www.example.com")
	assert.Contains(t, urls, base+"/a/www.example.com")
	// Segments re-probed inside the full path.
	assert.Contains(t, urls, base+"/a/b/c/a")
}

func TestGenerate_FileSegmentsSkipped(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "https://example.com/app/index.php"))

	for _, c := range cands {
		if c.Kind == KindSegment {
			assert.NotContains(t, c.URL, "index.php")
		}
	}
	urls := urlsOf(cands)
	assert.Contains(t, urls, "https://example.com/app")
}

func TestGenerate_IPTargetSkipsDomainLogic(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "http://192.0.2.10"))
	urls := urlsOf(cands)

	for _, c := range cands {
		switch c.Kind {
		case KindSubdomain, KindSubdomainPermutation, KindDomainName, KindDomain, KindLeftoverPattern:
			t.Fatalf("domain candidate emitted for IP target: %s (%s)", c.URL, c.Label())
		}
	}
	assert.Contains(t, urls, "http://192.0.2.10/admin")
	assert.Contains(t, urls, "http://192.0.2.10/backup")
	assert.Contains(t, urls, "http://192.0.2.10/192.0.2.10")
	assert.Contains(t, urls, "http://192.0.2.10/8080")
}

func TestGenerate_IPTargetWithPath(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	cands := g.Generate(mustTarget(t, "http://192.0.2.10/app/v1"))
	urls := urlsOf(cands)

	base := "http://192.0.2.10"
	assert.Contains(t, urls, base+"/app")
	assert.Contains(t, urls, base+"/app/v1/admin")
	assert.Contains(t, urls, base+"/app/admin")
	assert.Contains(t, urls, base+"/app/v1/192.0.2.10")
	assert.Contains(t, urls, base+"/app/v1/8443")
}

func TestGenerate_BruteForceLeafOnly(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&Options{BruteForce: true, BackupWords: []string{"db.sql", "site.zip"}})
	cands := g.Generate(mustTarget(t, "https://example.com/app/v2"))
	urls := urlsOf(cands)

	assert.Equal(t, KindBruteForce, urls["https://example.com/app/v2/db.sql"])
	assert.NotContains(t, urls, "https://example.com/db.sql", "non-recursive mode stays at the leaf")
	assert.NotContains(t, urls, "https://example.com/app/db.sql")
}

func TestGenerate_BruteForceRecursive(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&Options{
		BruteForce:     true,
		BruteRecursive: true,
		BackupWords:    []string{"db.sql"},
	})
	cands := g.Generate(mustTarget(t, "https://example.com/app/v2"))
	urls := urlsOf(cands)

	assert.Equal(t, KindBruteForce, urls["https://example.com/app/v2/db.sql"])
	assert.Equal(t, KindBruteForceRecursive, urls["https://example.com/db.sql"])
	assert.Equal(t, KindBruteForceRecursive, urls["https://example.com/app/db.sql"])
}

func TestGenerate_IPBruteForceFiltersAmbiguousWords(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&Options{
		BruteForce:  true,
		BackupWords: []string{".env", "config.env.dev", "www.gitignore", "db.sql"},
	})
	cands := g.Generate(mustTarget(t, "http://192.0.2.10"))

	for _, c := range cands {
		if c.Kind != KindBruteForce {
			continue
		}
		assert.False(t, strings.HasPrefix(c.Param, "."), "leading-dot word on IP: %s", c.Param)
		assert.NotContains(t, c.Param, ".env.")
		assert.NotContains(t, c.Param, ".git")
	}
	urls := urlsOf(cands)
	assert.Contains(t, urls, "http://192.0.2.10/db.sql")
}

func TestSubdomainPermutations(t *testing.T) {
	t.Parallel()

	perms := subdomainPermutations("banco-honda")
	assert.Contains(t, perms, "honda.banco")
	assert.Contains(t, perms, "bancohonda")
	assert.Contains(t, perms, "banco_honda")
	assert.Contains(t, perms, "banco")
	assert.Contains(t, perms, "honda")

	assert.Empty(t, subdomainPermutations("www"), "single-part subdomains have no permutations")

	three := subdomainPermutations("a-b-c")
	assert.Contains(t, three, "a.b.c")
	assert.Contains(t, three, "c.b.a")
	assert.Contains(t, three, "abc")
	assert.Contains(t, three, "c")
}

func TestCandidateLabel(t *testing.T) {
	t.Parallel()

	c := Candidate{URL: "https://x/backup.zip", Kind: KindBruteForce, Param: "backup.zip"}
	assert.Equal(t, "Brute Force: backup.zip", c.Label())

	c = Candidate{URL: "https://x", Kind: KindBaseURL}
	assert.Equal(t, "Base URL", c.Label())
}
