package candidates

import (
	"sort"
	"strings"

	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/target"
)

// Caps keep the domain-derived wordlist from exploding combinatorially:
// the 100 most relevant variations crossed with the 50 strongest backup
// extensions is plenty.
const (
	maxDomainVariations = 100
	maxDomainExtensions = 50
)

// DomainWordlist derives brute-force words from the target's own naming.
// Operators archive sites under names built from the domain, so
// "banco-honda.example.com" is worth probing for honda.banco.zip long
// before any generic wordlist entry.
type DomainWordlist struct {
	backupExtensions []string
}

// NewDomainWordlist creates a generator over the archive, backup-suffix,
// and database extension sets.
func NewDomainWordlist() *DomainWordlist {
	exts := make([]string, 0,
		len(defaults.ArchiveExtensions)+len(defaults.BackupSuffixes)+len(defaults.DatabaseExtensions))
	exts = append(exts, defaults.ArchiveExtensions...)
	exts = append(exts, defaults.BackupSuffixes...)
	exts = append(exts, defaults.DatabaseExtensions...)
	return &DomainWordlist{backupExtensions: exts}
}

// Generate returns domain-based backup filename variations for t, capped
// and deterministic. IP targets and suffix-only hosts yield nothing.
func (d *DomainWordlist) Generate(t *target.Target) []string {
	if t == nil || t.Domain == "" {
		return nil
	}

	variations := d.variations(t)
	if len(variations) > maxDomainVariations {
		variations = variations[:maxDomainVariations]
	}
	exts := d.backupExtensions
	if len(exts) > maxDomainExtensions {
		exts = exts[:maxDomainExtensions]
	}

	words := make([]string, 0, len(variations)*len(exts))
	for _, v := range variations {
		for _, ext := range exts {
			words = append(words, v+"."+ext)
		}
	}
	return words
}

// Enhance merges domain-derived words into an existing wordlist,
// deduplicated, existing words first.
func (d *DomainWordlist) Enhance(existing []string, t *target.Target) []string {
	seen := make(map[string]struct{}, len(existing))
	out := make([]string, 0, len(existing))
	for _, w := range existing {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, w := range d.Generate(t) {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// TargetedExtensions returns extension candidates specific to this domain:
// the standard backup set plus domain-named patterns like "example.zip"
// and "backup.example".
func (d *DomainWordlist) TargetedExtensions(t *target.Target) []string {
	out := append([]string(nil), d.backupExtensions...)
	if t == nil || t.Domain == "" {
		return out
	}
	domain := strings.ToLower(t.Domain)
	out = append(out,
		domain,
		domain+".zip",
		domain+".rar",
		domain+".tar.gz",
		domain+".backup",
		domain+".sql",
		domain+".bak",
		domain+".old",
		"backup."+domain,
		"www."+domain,
		domain+".www",
	)
	return out
}

// variations builds the ordered, deduplicated variation list: domain and
// subdomain joined both ways, backup-word joins, composite-subdomain
// permutations, then the bare components.
func (d *DomainWordlist) variations(t *target.Target) []string {
	seen := make(map[string]struct{})
	var out []string
	push := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	domain := t.Domain
	subdomain := t.Subdomain

	if subdomain != "" {
		push(domain + "." + subdomain)
		push(subdomain + "." + domain)
		push(subdomain + domain)
		push(domain + subdomain)
		push(subdomain + "_" + domain)
		push(domain + "_" + subdomain)
	}

	for _, word := range leftoverJoinWords {
		push(word + domain)
		push(domain + word)
		push(word + "_" + domain)
		push(domain + "_" + word)
	}

	if subdomain != "" && strings.ContainsAny(subdomain, "-_.") {
		perms := subdomainPermutations(subdomain)
		sort.Strings(perms)
		for _, p := range perms {
			push(p)
		}
	}

	push(domain)
	push(subdomain)
	return out
}
