// Package classify decides whether a probe hit is a genuine leftover file
// or a false positive: a generic error page, an SPA fallback shell, or a
// catch-all handler echoing the same body for everything. It leans on the
// per-target baseline, frequency indexes accumulated across the scan, and
// content signatures. Thresholds were tuned empirically, so they stay
// configurable rather than baked in.
package classify

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/leftovers/leftovers/pkg/baseline"
	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/result"
)

// smallHTMLSize bounds what counts as a "small" HTML page for the stricter
// repetition threshold.
const smallHTMLSize = 10 * 1024

// Config holds the classifier thresholds.
type Config struct {
	// SuccessSimilarity suppresses success responses this similar to a
	// baseline sample of the same status.
	SuccessSimilarity float64

	// ErrorSimilarity is the equivalent threshold for non-success statuses.
	ErrorSimilarity float64

	// HashRepeatLimit is how many distinct extensions may share one content
	// hash before the body is considered generic.
	HashRepeatLimit int

	// SizeRepeatLimit is how many times an exact (status, length, type)
	// triple may recur before suppression.
	SizeRepeatLimit int

	// SmallHTMLRepeatLimit replaces SizeRepeatLimit for small HTML success
	// pages, which deserve more evidence before suppression.
	SmallHTMLRepeatLimit int

	// MainPageSizeRatio marks success responses whose size is this close to
	// the main page (same content type) as echoes of it.
	MainPageSizeRatio float64

	// MainPageSimilarity is the text-similarity equivalent.
	MainPageSimilarity float64

	// SPASignatureLimit is how many SPA markers an HTML answer to a
	// non-HTML probe needs before it counts as an app-shell fallback.
	SPASignatureLimit int

	// LeftoverScoreLimit is how many independent leftover signals rescue a
	// result from suppression.
	LeftoverScoreLimit int

	Logger *slog.Logger
}

// DefaultConfig returns the tuned starting thresholds.
func DefaultConfig() *Config {
	return &Config{
		SuccessSimilarity:    0.90,
		ErrorSimilarity:      0.70,
		HashRepeatLimit:      3,
		SizeRepeatLimit:      3,
		SmallHTMLRepeatLimit: 5,
		MainPageSizeRatio:    0.97,
		MainPageSimilarity:   0.95,
		SPASignatureLimit:    2,
		LeftoverScoreLimit:   2,
	}
}

// Classifier accumulates per-target frequency state and judges results.
// Safe for concurrent use.
type Classifier struct {
	cfg    *Config
	hashes *HashFrequencyIndex
	sizes  *SizeFrequencyIndex
	log    *slog.Logger
}

// New creates a Classifier from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Classifier {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Classifier{
		cfg:    cfg,
		hashes: NewHashFrequencyIndex(),
		sizes:  NewSizeFrequencyIndex(),
		log:    log,
	}
}

// Reset clears the frequency indexes when a new target starts.
func (c *Classifier) Reset() {
	c.hashes.Reset()
	c.sizes.Reset()
}

// Classify judges one result. It returns whether the result is a false
// positive and, when it is, a human-readable reason. It never fails:
// anything it cannot decode degrades toward "not a false positive", since
// missing a real finding costs more than one noisy line.
func (c *Classifier) Classify(res *result.ScanResult, body []byte, base *baseline.Baseline) (bool, string) {
	// Nothing to suppress.
	if len(body) == 0 {
		return false, ""
	}

	success := defaults.IsSuccess(res.StatusCode)

	// Real document formats are never generic error pages.
	if success && hasMagicSignature(body) {
		return false, ""
	}

	if res.StatusCode == 404 {
		return true, "404 responses are not residual files"
	}

	ctBase := contentTypeBase(res.ContentType)

	// Frequency bookkeeping happens on every result so later candidates
	// see the accumulated counts.
	extCount := c.hashes.Record(res.ContentHash, res.Extension)
	repeatCount := c.sizes.Record(res.StatusCode, res.ContentLength, ctBase)

	if extCount >= c.cfg.HashRepeatLimit {
		return true, fmt.Sprintf("same content served for %d different extensions", extCount)
	}

	repeatLimit := c.cfg.SizeRepeatLimit
	if success && isHTMLContentType(res.ContentType) && res.ContentLength < smallHTMLSize {
		repeatLimit = c.cfg.SmallHTMLRepeatLimit
	}
	if repeatCount >= repeatLimit {
		return true, fmt.Sprintf("repeated identical response (%d× status %d, %d bytes, %s)",
			repeatCount, res.StatusCode, res.ContentLength, ctBase)
	}

	if fp, reason := c.matchesBaseline(res, body, base, success); fp {
		return true, reason
	}

	if fp, reason := genericAuthError(res, body); fp {
		return true, reason
	}

	if fp, reason := c.matchesMainPage(res, body, base, success); fp {
		return true, reason
	}

	// Binary payloads with a success status are virtually always real.
	if success && isBinaryContentType(res.ContentType) {
		return false, ""
	}

	if success && isHTMLContentType(res.ContentType) && !isHTMLFamilyExtension(res.Extension) {
		if n := countSPASignatures(body); n >= c.cfg.SPASignatureLimit {
			return true, fmt.Sprintf("single-page-app fallback shell (%d framework markers)", n)
		}
	}

	if score := leftoverScore(res, body); score >= c.cfg.LeftoverScoreLimit {
		c.log.Debug("leftover signals confirm finding", "url", res.URL, "score", score)
	}
	return false, ""
}

// matchesBaseline compares the result against the recorded fingerprints for
// its status code.
func (c *Classifier) matchesBaseline(res *result.ScanResult, body []byte, base *baseline.Baseline, success bool) (bool, string) {
	fps := base.FingerprintsFor(res.StatusCode)
	if len(fps) == 0 {
		return false, ""
	}

	threshold := c.cfg.ErrorSimilarity
	if success {
		threshold = c.cfg.SuccessSimilarity
	}

	var sample string
	if isTextContentType(res.ContentType) {
		sample = baseline.StripText(body)
	}

	for i := range fps {
		fp := &fps[i]
		if res.ContentHash != "" && res.ContentHash == fp.ContentHash {
			return true, fmt.Sprintf("matches generic %d response", res.StatusCode)
		}
		if fp.ContentLength > 0 && contentTypeBase(fp.ContentType) == contentTypeBase(res.ContentType) {
			diff := res.ContentLength - fp.ContentLength
			if diff < 0 {
				diff = -diff
			}
			if float64(diff)/float64(fp.ContentLength) < 0.05 {
				return true, fmt.Sprintf("size matches generic %d response", res.StatusCode)
			}
		}
		if sample != "" && fp.TextSample != "" {
			if sim := Similarity(sample, fp.TextSample); sim >= threshold {
				return true, fmt.Sprintf("similar to baseline %d page (%.0f%%)", res.StatusCode, sim*100)
			}
		}
	}
	return false, ""
}

// genericAuthError applies the extra scrutiny 401/403 answers get: they are
// overwhelmingly boilerplate access-denied pages rather than findings.
func genericAuthError(res *result.ScanResult, body []byte) (bool, string) {
	if res.StatusCode != 401 && res.StatusCode != 403 {
		return false, ""
	}
	if res.ContentLength < 150 {
		return true, "response too small, likely generic error"
	}
	lower := strings.ToLower(string(body))
	for _, phrase := range []string{
		"access denied", "forbidden", "not allowed",
		"authorization required", "not authorized",
		"permission denied", "access forbidden",
	} {
		if strings.Contains(lower, phrase) {
			return true, fmt.Sprintf("contains common error text: %q", phrase)
		}
	}
	if isHTMLContentType(res.ContentType) && len(baseline.StripText(body)) < 100 {
		return true, "error page with minimal text content"
	}
	return false, ""
}

// matchesMainPage detects whole-site echoes: servers that answer every path
// with the front page.
func (c *Classifier) matchesMainPage(res *result.ScanResult, body []byte, base *baseline.Baseline, success bool) (bool, string) {
	if base == nil || base.MainPage == nil {
		return false, ""
	}
	mp := base.MainPage

	if res.ContentHash != "" && res.ContentHash == mp.ContentHash {
		return true, "identical to main page"
	}
	if !success {
		return false, ""
	}

	if mp.ContentLength > 0 && res.ContentLength > 0 &&
		contentTypeBase(mp.ContentType) == contentTypeBase(res.ContentType) {
		ratio := float64(res.ContentLength) / float64(mp.ContentLength)
		if ratio > 1 {
			ratio = 1 / ratio
		}
		if ratio > c.cfg.MainPageSizeRatio {
			return true, "near-identical size to main page"
		}
	}

	if isTextContentType(res.ContentType) && mp.TextSample != "" {
		if sim := Similarity(baseline.StripText(body), mp.TextSample); sim > c.cfg.MainPageSimilarity {
			return true, fmt.Sprintf("text matches main page (%.0f%%)", sim*100)
		}
	}
	return false, ""
}

// leftoverScore counts independent signals that the result is a genuine
// residual file.
func leftoverScore(res *result.ScanResult, body []byte) int {
	score := 0
	name := urlBasename(res.URL)

	if backupNamePattern.MatchString(name) {
		score++
	}
	if dateStampPattern.MatchString(name) {
		score++
	}
	if _, ok := leftoverExtensions[strings.ToLower(res.Extension)]; ok {
		score++
	}
	if contentSignalScore(body) > 0 {
		score++
	}
	if isBinaryContentType(res.ContentType) && res.ContentLength > 512 {
		score++
	}
	return score
}

func contentSignalScore(body []byte) int {
	lower := strings.ToLower(string(body))
	score := 0
	for _, marker := range sqlDumpMarkers {
		if strings.Contains(lower, marker) {
			score++
			break
		}
	}
	if credentialPattern.Match(body) {
		score++
	}
	for _, marker := range stackTraceMarkers {
		if strings.Contains(lower, marker) {
			score++
			break
		}
	}
	return score
}

func urlBasename(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return path.Base(raw)
	}
	return path.Base(u.Path)
}
