// Package candidates turns a parsed target into the deduplicated list of
// URLs worth probing: path segments, domain-name permutations, leftover
// naming patterns, per-path-level domain echoes, IP-specific common
// directories, and optional brute-force wordlist expansion.
package candidates

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/target"
	"github.com/leftovers/leftovers/pkg/wordlist"
)

// environmentWords are generic root-level probes that surface forgotten
// environment copies regardless of domain naming.
var environmentWords = []string{
	"backup", "old", "new", "temp", "staging", "stage",
	"dev", "test", "prod", "debug", "beta",
}

// leftoverJoinWords pair with the domain name in both orders.
var leftoverJoinWords = []string{"backup", "old", "bak", "temp"}

// Options configures generation.
type Options struct {
	// BruteForce crosses the deepest path level with BackupWords.
	BruteForce bool

	// BruteRecursive extends brute force to the root and every
	// intermediate path level.
	BruteRecursive bool

	// BackupWords is the brute-force wordlist. Empty disables brute force
	// even when BruteForce is set.
	BackupWords []string

	// DomainWordlist enhances BackupWords with domain-derived variations
	// before brute-force expansion.
	DomainWordlist bool

	Logger *slog.Logger
}

// Generator produces candidates for one target at a time.
type Generator struct {
	opts Options
	log  *slog.Logger
}

// NewGenerator creates a Generator. A nil opts means defaults: no brute
// force, no domain wordlist.
func NewGenerator(opts *Options) *Generator {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{opts: *opts, log: log}
}

// builder accumulates candidates and enforces URL uniqueness. The first
// reason a URL is generated wins.
type builder struct {
	seen map[string]struct{}
	out  []Candidate
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

func (b *builder) add(url string, kind Kind, param string) {
	if _, dup := b.seen[url]; dup {
		return
	}
	b.seen[url] = struct{}{}
	b.out = append(b.out, Candidate{URL: url, Kind: kind, Param: param})
}

// Generate emits the full deduplicated candidate list for t. Output is
// deterministic for a fixed target and wordlist.
func (g *Generator) Generate(t *target.Target) []Candidate {
	b := newBuilder()
	root := t.BaseURL()

	g.baseTests(b, t, root)

	if t.IsIP {
		g.log.Debug("ip target, skipping domain tests", "host", t.Host)
		g.ipTests(b, t, root)
	} else {
		g.domainTests(b, t, root)
		if t.HasPath() {
			g.pathTests(b, t, root)
		}
	}

	if g.opts.BruteForce && len(g.opts.BackupWords) > 0 {
		g.bruteForceTests(b, t, root)
	}

	g.log.Debug("candidates generated", "target", t.Host, "count", len(b.out))
	return b.out
}

// baseTests probes the URL as given plus each non-file path segment on its
// own at the root.
func (g *Generator) baseTests(b *builder, t *target.Target, root string) {
	if !t.HasPath() {
		b.add(root, KindBaseURL, "")
		return
	}
	full := root + "/" + t.Path
	b.add(full, KindFullURL, "")
	for i, segment := range t.PathSegments {
		if strings.Contains(segment, ".") {
			continue // files are probed with extensions, not as directories
		}
		b.add(root+"/"+segment, KindSegment, fmt.Sprintf("%d", i+1))
	}
}

// domainTests probes domain components as root directories: each subdomain
// level, the bare domain name, domain+suffix, composite-subdomain
// permutations, and leftover naming patterns.
func (g *Generator) domainTests(b *builder, t *target.Target, root string) {
	if t.Subdomain != "" {
		for _, sub := range strings.Split(t.Subdomain, ".") {
			b.add(root+"/"+sub, KindSubdomain, sub)
		}
		for _, perm := range subdomainPermutations(t.Subdomain) {
			b.add(root+"/"+perm, KindSubdomainPermutation, perm)
		}
	}
	if t.Domain != "" {
		b.add(root+"/"+t.Domain, KindDomainName, "")
	}
	if t.Domain != "" && t.Suffix != "" {
		b.add(root+"/"+t.Domain+"."+t.Suffix, KindDomain, "")
	}

	if t.Domain != "" {
		for _, word := range leftoverJoinWords {
			b.add(root+"/"+t.Domain+"_"+word, KindLeftoverPattern, t.Domain+"_"+word)
			b.add(root+"/"+word+t.Domain, KindLeftoverPattern, word+t.Domain)
		}
	}
	for _, word := range environmentWords {
		b.add(root+"/"+word, KindLeftoverPattern, word)
	}
}

// subdomainPermutations rearranges composite subdomains like "banco-honda"
// into the forms leftovers actually ship under: swapped order, concatenated,
// and joined by each common separator.
func subdomainPermutations(subdomain string) []string {
	var parts []string
	for _, sep := range []string{"-", "_", "."} {
		if strings.Contains(subdomain, sep) {
			parts = strings.Split(subdomain, sep)
			break
		}
	}
	if len(parts) < 2 {
		return nil
	}

	first, second := parts[0], parts[1]
	var perms []string
	push := func(p string) {
		if p == "" {
			return
		}
		for _, existing := range perms {
			if existing == p {
				return
			}
		}
		perms = append(perms, p)
	}

	for _, sep := range []string{".", "_", "-", ""} {
		push(first + sep + second)
		push(second + sep + first)
	}
	push(first)
	push(second)

	if len(parts) >= 3 {
		third := parts[2]
		for _, sep := range []string{".", "_", ""} {
			push(first + sep + second + sep + third)
			push(third + sep + second + sep + first)
		}
		push(third)
	}
	return perms
}

// pathTests re-emits domain components relative to every partial path
// prefix and every path level, catching /app/v2/<domain> style leftovers.
func (g *Generator) pathTests(b *builder, t *target.Target, root string) {
	levels := t.PathLevels()

	// Partial prefixes exclude the deepest level, which the base tests
	// already cover as the full path.
	prefixes := levels[:len(levels)-1]
	for _, prefix := range prefixes {
		if t.Subdomain != "" {
			b.add(root+"/"+prefix+"/"+t.Subdomain, KindPathSubdomain, "/"+prefix)
		}
		if t.Domain != "" {
			b.add(root+"/"+prefix+"/"+t.Domain, KindPathDomainName, "/"+prefix)
		}
		if t.Domain != "" && t.Suffix != "" {
			b.add(root+"/"+prefix+"/"+t.Domain+"."+t.Suffix, KindPathDomain, "/"+prefix)
		}
	}

	for _, segment := range t.PathSegments {
		if strings.Contains(segment, ".") {
			continue
		}
		b.add(root+"/"+t.Path+"/"+segment, KindPathCurrentPath, "/"+segment)
	}

	// Every level, deepest first, gets the full component sweep.
	ordered := append([]string{t.Path}, prefixes...)
	for _, level := range ordered {
		if t.Subdomain != "" {
			b.add(root+"/"+level+"/"+t.Subdomain, KindPathCurrentSubdomain, "/"+level)
		}
		if t.Domain != "" {
			b.add(root+"/"+level+"/"+t.Domain, KindPathCurrentDomainName, "/"+level)
		}
		if t.Domain != "" && t.Suffix != "" {
			b.add(root+"/"+level+"/"+t.Domain+"."+t.Suffix, KindPathCurrentDomain, "/"+level)
		}
		b.add(root+"/"+level+"/"+t.Host, KindPathCurrentHostname, "/"+level)
	}
}

// ipTests replace domain logic for IP-literal targets: common admin/ops
// directories, the IP itself as a directory, and alternate-port directory
// names, at the root and at every path level.
func (g *Generator) ipTests(b *builder, t *target.Target, root string) {
	if !t.HasPath() {
		for _, dir := range defaults.CommonIPPaths {
			b.add(root+"/"+dir, KindIPRootCommon, "/"+dir)
		}
		b.add(root+"/"+t.Host, KindIPPathSelf, "/"+t.Host)
		for _, port := range defaults.CommonPorts {
			b.add(root+"/"+port, KindIPPathPort, "/"+port)
		}
		return
	}

	for _, segment := range t.PathSegments {
		if strings.Contains(segment, ".") {
			continue
		}
		b.add(root+"/"+segment, KindIPPathSegment, segment)
	}
	for _, segment := range t.PathSegments {
		if strings.Contains(segment, ".") {
			continue
		}
		b.add(root+"/"+t.Path+"/"+segment, KindIPPathCurrentPath, "/"+segment)
	}

	levels := t.PathLevels()
	ordered := append([]string{t.Path}, levels[:len(levels)-1]...)
	for _, level := range ordered {
		for _, dir := range defaults.CommonIPPaths {
			b.add(root+"/"+level+"/"+dir, KindIPPathCommon, "/"+level+"/"+dir)
		}
		b.add(root+"/"+level+"/"+t.Host, KindIPPathSelf, "/"+level+"/"+t.Host)
		for _, port := range defaults.CommonPorts {
			b.add(root+"/"+level+"/"+port, KindIPPathPort, "/"+level+"/"+port)
		}
	}
}

// bruteForceTests cross the wordlist with the deepest path level and,
// recursively, with the root and intermediate levels.
func (g *Generator) bruteForceTests(b *builder, t *target.Target, root string) {
	words := g.opts.BackupWords
	if g.opts.DomainWordlist {
		words = NewDomainWordlist().Enhance(words, t)
	}
	if t.IsIP {
		words = wordlist.FilterForIP(words)
	}

	leaf := root
	if t.HasPath() {
		leaf = root + "/" + t.Path
	}
	for _, word := range words {
		b.add(leaf+"/"+word, KindBruteForce, word)
	}

	if !g.opts.BruteRecursive || !t.HasPath() {
		return
	}
	levels := []string{root}
	current := ""
	for _, segment := range t.PathSegments[:len(t.PathSegments)-1] {
		if current == "" {
			current = segment
		} else {
			current += "/" + segment
		}
		levels = append(levels, root+"/"+current)
	}
	for _, level := range levels {
		for _, word := range words {
			b.add(level+"/"+word, KindBruteForceRecursive, word)
		}
	}
}
