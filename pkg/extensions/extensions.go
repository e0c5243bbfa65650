// Package extensions reorders and augments candidate extension lists using
// lightweight context signals derived from the target URL. Archive, backup,
// and database extensions lead by default; hosts that look like staging or
// dev environments shuffle the buckets accordingly.
package extensions

import (
	"net/url"
	"sort"
	"strings"

	"github.com/leftovers/leftovers/pkg/defaults"
)

// Context holds the boolean signals sniffed from a target URL.
type Context struct {
	LikelyBackupSite  bool
	LikelyDevelopment bool
	LikelyAdmin       bool
	LikelyAPI         bool
}

// Prioritizer classifies extensions into priority buckets and reorders
// candidate lists around them.
type Prioritizer struct {
	high   map[string]struct{}
	medium map[string]struct{}
	low    map[string]struct{}
}

// NewPrioritizer builds a prioritizer over the default extension tables.
func NewPrioritizer() *Prioritizer {
	return &Prioritizer{
		high:   toSet(defaults.ArchiveExtensions, defaults.BackupSuffixes, defaults.DatabaseExtensions),
		medium: toSet(defaults.ConfigLogExtensions, defaults.DocumentBackupExtensions),
		low:    toSet(defaults.CodeBackupExtensions),
	}
}

func toSet(groups ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range groups {
		for _, e := range g {
			set[e] = struct{}{}
		}
	}
	return set
}

// AnalyzeContext computes the context signals for targetURL. Unparseable
// URLs yield the zero Context, which leaves ordering untouched.
func AnalyzeContext(targetURL string) Context {
	u, err := url.Parse(targetURL)
	if err != nil {
		return Context{}
	}
	hostname := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)

	var ctx Context

	backupIndicators := []string{
		"backup", "bkp", "archive", "old", "temp", "tmp",
		"staging", "test", "dev", "development",
	}
	for _, ind := range backupIndicators {
		if strings.Contains(hostname, ind) || strings.Contains(path, ind) {
			ctx.LikelyBackupSite = true
			break
		}
	}

	devIndicators := []string{
		"dev", "test", "staging", "beta", "alpha",
		"demo", "sandbox", "lab", "experimental",
	}
	for _, ind := range devIndicators {
		if strings.Contains(hostname, ind) {
			ctx.LikelyDevelopment = true
			break
		}
	}

	adminIndicators := []string{"admin", "manage", "control", "panel", "dashboard"}
	for _, ind := range adminIndicators {
		if strings.Contains(hostname, ind) || strings.Contains(path, ind) {
			ctx.LikelyAdmin = true
			break
		}
	}

	apiIndicators := []string{"api", "service", "webservice", "rest", "graphql"}
	for _, ind := range apiIndicators {
		if strings.Contains(hostname, ind) || strings.Contains(path, ind) {
			ctx.LikelyAPI = true
			break
		}
	}

	return ctx
}

// Optimize reorders exts so the bucket most likely to hit for targetURL
// comes first. The input slice is not modified.
func (p *Prioritizer) Optimize(exts []string, targetURL string) []string {
	if len(exts) == 0 {
		return exts
	}

	ctx := AnalyzeContext(targetURL)

	var high, medium, low, unknown []string
	for _, ext := range exts {
		switch {
		case p.contains(p.high, ext):
			high = append(high, ext)
		case p.contains(p.medium, ext):
			medium = append(medium, ext)
		case p.contains(p.low, ext):
			low = append(low, ext)
		default:
			unknown = append(unknown, ext)
		}
	}

	out := make([]string, 0, len(exts))
	switch {
	case ctx.LikelyBackupSite:
		out = append(out, sortByBackupLikelihood(high)...)
		out = append(out, medium...)
		out = append(out, unknown...)
		out = append(out, low...)
	case ctx.LikelyDevelopment:
		out = append(out, medium...)
		out = append(out, high...)
		out = append(out, unknown...)
		out = append(out, low...)
	default:
		out = append(out, high...)
		out = append(out, medium...)
		out = append(out, unknown...)
		out = append(out, low...)
	}
	return out
}

func (p *Prioritizer) contains(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}

// backupPriority ranks extensions by how often they front a real backup.
var backupPriority = map[string]int{
	"sql": 10, "dump": 10, "db": 10,
	"zip": 9, "rar": 9, "tar.gz": 9, "7z": 9,
	"bak": 8, "backup": 8, "old": 8,
	"tar": 7, "gz": 7, "bz2": 7,
	"tmp": 6, "temp": 6, "save": 6,
}

func sortByBackupLikelihood(exts []string) []string {
	sorted := make([]string, len(exts))
	copy(sorted, exts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return backupPriority[sorted[i]] > backupPriority[sorted[j]]
	})
	return sorted
}

// AddContextual extends base with extra probes suggested by the target's
// context signals (swagger.json for API hosts, users.sql for admin panels),
// then re-optimizes the combined list. Duplicates are removed; the injection
// set is deliberately small to avoid unbounded growth.
func (p *Prioritizer) AddContextual(base []string, targetURL string) []string {
	ctx := AnalyzeContext(targetURL)

	extra := make(map[string]struct{})
	add := func(exts ...string) {
		for _, e := range exts {
			extra[e] = struct{}{}
		}
	}

	if ctx.LikelyBackupSite {
		add("sql.gz", "sql.bz2", "db.gz", "dump.gz", "tar.bz2", "tar.xz", "backup.zip")
	}
	if ctx.LikelyDevelopment {
		add("env.backup", "config.bak", "settings.old", "local.env", "dev.config", "test.json")
	}
	if ctx.LikelyAdmin {
		add("users.sql", "admin.bak", "passwords.txt", "credentials.json", "keys.txt")
	}
	if ctx.LikelyAPI {
		add("swagger.json", "openapi.yaml", "api.json", "endpoints.txt", "routes.js")
	}

	seen := make(map[string]struct{}, len(base)+len(extra))
	combined := make([]string, 0, len(base)+len(extra))
	for _, e := range base {
		if _, ok := seen[e]; !ok {
			seen[e] = struct{}{}
			combined = append(combined, e)
		}
	}
	extras := make([]string, 0, len(extra))
	for e := range extra {
		extras = append(extras, e)
	}
	sort.Strings(extras)
	for _, e := range extras {
		if _, ok := seen[e]; !ok {
			seen[e] = struct{}{}
			combined = append(combined, e)
		}
	}

	return p.Optimize(combined, targetURL)
}
