// Package scanner drives a scan end to end: baseline establishment,
// extension prioritization, candidate generation, batched probing through
// a bounded worker pool, classification, and result collection.
package scanner

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/leftovers/leftovers/pkg/baseline"
	"github.com/leftovers/leftovers/pkg/candidates"
	"github.com/leftovers/leftovers/pkg/classify"
	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/extensions"
	"github.com/leftovers/leftovers/pkg/metrics"
	"github.com/leftovers/leftovers/pkg/result"
	"github.com/leftovers/leftovers/pkg/target"
	"github.com/leftovers/leftovers/pkg/transport"
	"github.com/leftovers/leftovers/pkg/wordlist"
	"github.com/leftovers/leftovers/pkg/workerpool"
)

// directSweepLimit caps the per-extension direct probes against the target
// URL itself; larger sets rely on the generated candidates instead.
const directSweepLimit = 5

// Config holds scan behaviour. Transport and classifier settings nest so
// callers tune only what they need.
type Config struct {
	// Extensions probed on every candidate. Empty falls back to the
	// built-in set.
	Extensions []string

	// TestIndex probes index.<ext> instead of the bare dotfile on
	// domain-only targets.
	TestIndex bool

	// Threads is the worker pool size.
	Threads int

	// BatchSize caps how many probes enter the pool per wave.
	BatchSize int

	// BruteForce crosses candidates with backup words.
	BruteForce bool

	// BruteRecursive extends brute force to every path level.
	BruteRecursive bool

	// DomainWordlist derives extra brute words from the target domain.
	DomainWordlist bool

	// BackupWords overrides the built-in brute-force wordlist.
	BackupWords []string

	// StatusFilter keeps only these status codes (empty = all).
	StatusFilter []int

	// MinSize and MaxSize bound content length in bytes (0 = off).
	MinSize int64
	MaxSize int64

	// IgnoreContentTypes drops responses whose base content type matches.
	IgnoreContentTypes []string

	// DisableFPDetection accepts classified false positives too; the
	// classification tag is kept for transparency.
	DisableFPDetection bool

	// Transport configures the HTTP client. Nil means defaults.
	Transport *transport.Config

	// Classifier overrides classification thresholds. Nil means defaults.
	Classifier *classify.Config

	// OnResult receives every displayable result as it arrives: accepted
	// findings, plus suppressed success-status false positives so callers
	// can show them struck through.
	OnResult func(res *result.ScanResult)

	// OnGroup is called once per candidate group before its probes start.
	OnGroup func(kind candidates.Kind, example string)

	// OnTargetDone receives the results accumulated for one target after
	// its sweep finishes.
	OnTargetDone func(targetURL string, results []*result.ScanResult)

	Logger *slog.Logger
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions: defaults.Extensions(),
		Threads:    defaults.Threads,
		BatchSize:  defaults.BatchSize,
	}
}

// Scanner is the scan scheduler. Safe for a single scan at a time;
// ProcessURL may be called repeatedly and shares the tested-URL set so a
// URL is never reported twice across targets.
type Scanner struct {
	cfg         *Config
	client      *transport.Client
	classifier  *classify.Classifier
	prioritizer *extensions.Prioritizer
	establisher *baseline.Establisher
	generator   *candidates.Generator
	domainWords *candidates.DomainWordlist
	pool        *workerpool.Pool
	stats       *metrics.Metrics
	log         *slog.Logger

	mu      sync.Mutex
	tested  map[string]struct{}
	found   map[string]struct{}
	results []*result.ScanResult
}

// New creates a Scanner. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Scanner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions()
	}
	if cfg.Threads < 1 {
		cfg.Threads = defaults.Threads
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaults.BatchSize
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	tcfg := cfg.Transport
	if tcfg == nil {
		tcfg = transport.DefaultConfig()
	}
	if tcfg.Logger == nil {
		tcfg.Logger = log
	}
	client := transport.New(tcfg)

	ccfg := cfg.Classifier
	if ccfg == nil {
		ccfg = classify.DefaultConfig()
	}
	if ccfg.Logger == nil {
		ccfg.Logger = log
	}

	words := cfg.BackupWords
	if len(words) == 0 {
		words = wordlist.BackupWords()
	}

	return &Scanner{
		cfg:         cfg,
		client:      client,
		classifier:  classify.New(ccfg),
		prioritizer: extensions.NewPrioritizer(),
		establisher: baseline.NewEstablisher(client, log),
		generator: candidates.NewGenerator(&candidates.Options{
			BruteForce:     cfg.BruteForce,
			BruteRecursive: cfg.BruteRecursive,
			BackupWords:    words,
			DomainWordlist: cfg.DomainWordlist,
			Logger:         log,
		}),
		domainWords: candidates.NewDomainWordlist(),
		pool:        workerpool.New(cfg.Threads),
		stats:       metrics.New(),
		log:         log,
		tested:      make(map[string]struct{}),
		found:       make(map[string]struct{}),
	}
}

// Close releases the worker pool. The Scanner is unusable afterwards.
func (s *Scanner) Close() {
	s.pool.Close()
}

// Results returns a copy of the accumulated findings.
func (s *Scanner) Results() []*result.ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*result.ScanResult, len(s.results))
	copy(out, s.results)
	return out
}

// Stats returns a snapshot of the request, discovery, and cache counters.
func (s *Scanner) Stats() metrics.Summary {
	sum := s.stats.Snapshot()
	cs := s.client.CacheStats()
	sum.CacheHits = cs.Hits
	sum.CacheMisses = cs.Misses
	sum.CacheHitRate = cs.HitRate
	return sum
}

// Finalize stops the stats clock. Call once after the last target.
func (s *Scanner) Finalize() {
	s.stats.Finalize()
}

// probeJob is one URL+extension pairing headed for the pool.
type probeJob struct {
	url  string
	ext  string
	kind candidates.Kind
}

// ProcessURL scans a single target. Classifier state resets per target;
// the tested-URL and reported-URL sets persist across calls. A cancelled
// context stops new probes promptly and returns with whatever results were
// already accumulated intact.
func (s *Scanner) ProcessURL(ctx context.Context, rawURL string) error {
	t, err := target.Parse(rawURL)
	if err != nil {
		return err
	}

	s.log.Info("scanning target", "target", rawURL)
	s.classifier.Reset()

	exts := s.prioritizer.AddContextual(s.cfg.Extensions, rawURL)
	if s.cfg.DomainWordlist {
		exts = mergeExtensions(exts, s.domainWords.TargetedExtensions(t))
	}

	// Baseline before any candidate is classified.
	base := s.establisher.Establish(ctx, t.BaseURL())
	if ctx.Err() != nil {
		return ctx.Err()
	}

	startCount := len(s.Results())

	s.directChecks(ctx, rawURL, exts, base)

	cands := s.generator.Generate(t)
	s.log.Debug("generated candidates", "target", rawURL, "count", len(cands))

	for _, group := range groupByKind(cands) {
		if ctx.Err() != nil {
			break
		}
		if s.cfg.OnGroup != nil && len(group.items) > 0 {
			s.cfg.OnGroup(group.kind, group.items[0].URL)
		}

		jobs := s.expandJobs(group.items, exts)
		for start := 0; start < len(jobs) && ctx.Err() == nil; start += s.cfg.BatchSize {
			end := start + s.cfg.BatchSize
			if end > len(jobs) {
				end = len(jobs)
			}
			batch := jobs[start:end]
			s.pool.ForEach(ctx, len(batch), func(i int) {
				s.probeCandidate(ctx, batch[i], base)
			})
		}
	}

	if s.cfg.OnTargetDone != nil {
		all := s.Results()
		s.cfg.OnTargetDone(rawURL, all[startCount:])
	}
	return ctx.Err()
}

// ProcessURLList scans every URL in the list file. One failing target does
// not stop the rest; cancellation does.
func (s *Scanner) ProcessURLList(ctx context.Context, path string) error {
	urls, err := wordlist.LoadURLs(path)
	if err != nil {
		return err
	}

	for _, u := range urls {
		if err := s.ProcessURL(ctx, u); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("target failed", "target", u, "err", err)
		}
	}
	return nil
}

// directChecks probes the target URL itself with each extension before the
// generated sweep. Document and archive formats go first with a Range
// request so existence is confirmed without downloading the file; the
// remaining extensions get a direct sweep only when the set is small.
func (s *Scanner) directChecks(ctx context.Context, rawURL string, exts []string, base *baseline.Baseline) {
	important := make(map[string]struct{}, len(defaults.ImportantExtensions))
	for _, e := range defaults.ImportantExtensions {
		important[e] = struct{}{}
	}

	var priority, plain []string
	for _, e := range exts {
		if _, ok := important[strings.ToLower(e)]; ok {
			priority = append(priority, e)
		} else {
			plain = append(plain, e)
		}
	}

	for _, ext := range priority {
		if ctx.Err() != nil {
			return
		}
		u := directURL(rawURL, ext)
		if !s.claim(u) {
			continue
		}
		s.log.Debug("direct check", "url", u, "priority", true)
		resp := s.client.GetRange(ctx, u)
		s.stats.RecordRequest(resp.Success, resp.StatusCode, resp.Time, int64(len(resp.Body)), resp.ErrKind)
		if !resp.Success || !defaults.IsSuccess(resp.StatusCode) {
			continue
		}
		s.finish(resp, u, ext, base, false)
	}

	if len(exts) > directSweepLimit {
		return
	}
	for _, ext := range plain {
		if ctx.Err() != nil {
			return
		}
		u := directURL(rawURL, ext)
		if !s.claim(u) {
			continue
		}
		s.log.Debug("direct check", "url", u)
		resp := s.client.Get(ctx, u)
		s.stats.RecordRequest(resp.Success, resp.StatusCode, resp.Time, int64(len(resp.Body)), resp.ErrKind)
		if !resp.Success || !defaults.IsSuccess(resp.StatusCode) {
			continue
		}
		s.finish(resp, u, ext, base, false)
	}
}

// probeCandidate builds the concrete test URL for one job and probes it.
func (s *Scanner) probeCandidate(ctx context.Context, job probeJob, base *baseline.Baseline) {
	for _, u := range s.testURLs(job.url, job.ext) {
		if !s.claim(u) {
			continue
		}
		resp := s.client.Get(ctx, u)
		s.stats.RecordRequest(resp.Success, resp.StatusCode, resp.Time, int64(len(resp.Body)), resp.ErrKind)
		if !resp.Success {
			s.log.Debug("probe failed", "url", u, "test", job.kind.String(), "error_kind", resp.ErrKind, "err", resp.Err)
			continue
		}
		if s.finish(resp, u, job.ext, base, true) != nil {
			return
		}
	}
}

// finish turns a completed probe into a ScanResult, running the cascading
// filters cheapest-first, then classification. Returns the result when it
// was accepted into the findings.
func (s *Scanner) finish(resp *transport.Response, fullURL, ext string, base *baseline.Baseline, applyFilters bool) *result.ScanResult {
	res := &result.ScanResult{
		URL:            fullURL,
		StatusCode:     resp.StatusCode,
		ContentType:    resp.ContentType(),
		ContentLength:  resp.ContentLength(),
		ResponseTime:   resp.Time,
		Extension:      ext,
		ContentHash:    baseline.ContentHash(resp.Body),
		LargeFile:      resp.LargeFile,
		PartialContent: resp.PartialContent,
		Timestamp:      time.Now(),
	}

	if applyFilters {
		if len(s.cfg.StatusFilter) > 0 && !containsInt(s.cfg.StatusFilter, res.StatusCode) {
			return nil
		}
		if s.cfg.MinSize > 0 && res.ContentLength < s.cfg.MinSize {
			return nil
		}
		if s.cfg.MaxSize > 0 && res.ContentLength > s.cfg.MaxSize {
			return nil
		}
	}
	if s.ignoredContentType(res.ContentType) {
		return nil
	}

	fp, reason := s.classifier.Classify(res, resp.Body, base)
	if fp {
		res.MarkFalsePositive(reason)
	}
	s.stats.RecordDiscovery(fp, ext)

	accepted := !fp || s.cfg.DisableFPDetection
	if accepted {
		if !s.addResult(res) {
			return nil
		}
	}

	// Suppressed success-status hits are still surfaced so the caller can
	// show what the classifier threw away.
	if s.cfg.OnResult != nil && (accepted || defaults.IsSuccess(res.StatusCode)) {
		s.cfg.OnResult(res)
	}

	if accepted {
		return res
	}
	return nil
}

// testURLs maps a candidate and extension to the URL actually probed.
// Domain-only candidates get a dotfile probe (or index.<ext> when enabled);
// everything else appends the extension directly.
func (s *Scanner) testURLs(baseURL, ext string) []string {
	if ext == "" {
		return []string{baseURL}
	}
	if isDomainOnly(baseURL) {
		root := strings.TrimSuffix(baseURL, "/")
		if s.cfg.TestIndex {
			return []string{root + "/index." + ext}
		}
		return []string{root + "/." + ext}
	}
	return []string{baseURL + "." + ext}
}

// claim records a URL as tested, returning false when it already was.
func (s *Scanner) claim(u string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.tested[u]; dup {
		return false
	}
	s.tested[u] = struct{}{}
	return true
}

// addResult accepts a finding unless the URL was already reported. The
// first claim wins.
func (s *Scanner) addResult(res *result.ScanResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.found[res.URL]; dup {
		return false
	}
	s.found[res.URL] = struct{}{}
	s.results = append(s.results, res)
	return true
}

func (s *Scanner) ignoredContentType(ct string) bool {
	if len(s.cfg.IgnoreContentTypes) == 0 {
		return false
	}
	base, _, _ := strings.Cut(ct, ";")
	base = strings.TrimSpace(base)
	for _, ignore := range s.cfg.IgnoreContentTypes {
		if base == ignore || strings.HasPrefix(base, ignore+"+") {
			return true
		}
	}
	return false
}

// expandJobs crosses candidates with the extension list. Candidates whose
// last segment already carries a plausible extension are probed as-is.
func (s *Scanner) expandJobs(items []candidates.Candidate, exts []string) []probeJob {
	jobs := make([]probeJob, 0, len(items)*len(exts))
	for _, c := range items {
		if hasExtension(c.URL) {
			jobs = append(jobs, probeJob{url: c.URL, kind: c.Kind})
			continue
		}
		for _, ext := range exts {
			jobs = append(jobs, probeJob{url: c.URL, ext: ext, kind: c.Kind})
		}
	}
	return jobs
}

type kindGroup struct {
	kind  candidates.Kind
	items []candidates.Candidate
}

// groupByKind splits candidates into per-kind groups, preserving first-seen
// kind order.
func groupByKind(cands []candidates.Candidate) []kindGroup {
	var groups []kindGroup
	index := make(map[candidates.Kind]int)
	for _, c := range cands {
		i, ok := index[c.Kind]
		if !ok {
			i = len(groups)
			index[c.Kind] = i
			groups = append(groups, kindGroup{kind: c.Kind})
		}
		groups[i].items = append(groups[i].items, c)
	}
	return groups
}

// directURL appends an extension to the target URL itself. Domain-only
// targets get a root dotfile probe.
func directURL(rawURL, ext string) string {
	if isDomainOnly(rawURL) {
		return strings.TrimSuffix(rawURL, "/") + "/." + ext
	}
	return strings.TrimSuffix(rawURL, "/") + "." + ext
}

// isDomainOnly reports whether a URL has no path component.
func isDomainOnly(rawURL string) bool {
	rest := rawURL
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	rest = strings.TrimSuffix(rest, "/")
	return !strings.Contains(rest, "/")
}

// hasExtension reports whether the last path segment ends in a plausible
// file extension: 2-5 alphanumeric characters after the final dot.
func hasExtension(u string) bool {
	seg := u
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	i := strings.LastIndex(seg, ".")
	if i < 0 || i == len(seg)-1 {
		return false
	}
	ext := seg[i+1:]
	if len(ext) < 2 || len(ext) > 5 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// mergeExtensions appends extras to base, order-preserving, deduplicated.
func mergeExtensions(base, extras []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extras))
	out := make([]string, 0, len(base)+len(extras))
	for _, lst := range [][]string{base, extras} {
		for _, e := range lst {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
