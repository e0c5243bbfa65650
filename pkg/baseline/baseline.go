// Package baseline fingerprints a target before the scan proper starts.
// It fetches the front page plus a handful of randomized paths that cannot
// exist, and records what "nothing here" looks like per status code. The
// classifier later compares candidate responses against these fingerprints
// to tell generic catch-all pages from genuine leftovers.
package baseline

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"regexp"
	"strings"

	"github.com/spaolacci/murmur3"

	"github.com/leftovers/leftovers/pkg/transport"
)

// TextSampleSize caps the stripped-text sample kept per fingerprint.
const TextSampleSize = 2048

// hashPrefixSize is how much of each end of an oversized body gets hashed.
const hashPrefixSize = 4096

// Fingerprint records the comparable surface of one response.
type Fingerprint struct {
	ContentHash   string
	ContentType   string
	ContentLength int64
	TextSample    string
	Headers       http.Header
	URL           string
}

// Baseline is the per-target ground truth. MainPage is nil when the root
// fetch failed; ByStatus groups nonexistent-path fingerprints by the status
// the server answered with.
type Baseline struct {
	MainPage       *Fingerprint
	MainPageStatus int
	ByStatus       map[int][]Fingerprint
}

// FingerprintsFor returns the recorded fingerprints for status, or nil.
func (b *Baseline) FingerprintsFor(status int) []Fingerprint {
	if b == nil || b.ByStatus == nil {
		return nil
	}
	return b.ByStatus[status]
}

// Establisher probes a target and builds its Baseline.
type Establisher struct {
	client *transport.Client
	log    *slog.Logger
}

// NewEstablisher creates an Establisher on client. A nil logger discards
// debug output.
func NewEstablisher(client *transport.Client, log *slog.Logger) *Establisher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Establisher{client: client, log: log}
}

// probePaths returns randomized paths that should not exist on any server.
// The numeric suffixes defeat caches and memoized handlers between runs.
func probePaths() []string {
	n := func() int { return 10000 + rand.IntN(90000) }
	return []string{
		fmt.Sprintf("/nonexistent_resource_%d", n()),
		fmt.Sprintf("/system/fake_path_%d", n()),
		fmt.Sprintf("/assets/missing_%d.html", n()),
		fmt.Sprintf("/backup_probe_%d", n()),
	}
}

// Establish fetches the root of baseURL and several nonexistent paths,
// returning the resulting Baseline. Individual probe failures are logged
// and skipped; Establish itself never fails.
func (e *Establisher) Establish(ctx context.Context, baseURL string) *Baseline {
	e.log.Debug("establishing baseline", "url", baseURL)

	b := &Baseline{ByStatus: make(map[int][]Fingerprint)}
	root := strings.TrimRight(baseURL, "/")

	if resp := e.client.Get(ctx, root+"/"); resp.Success {
		fp := fingerprintOf(root+"/", resp)
		b.MainPage = &fp
		b.MainPageStatus = resp.StatusCode
		e.log.Debug("main page baseline",
			"status", resp.StatusCode,
			"size", fp.ContentLength,
			"hash", shortHash(fp.ContentHash))
	} else {
		e.log.Debug("main page baseline unavailable", "url", root)
	}

	for _, path := range probePaths() {
		url := root + path
		resp := e.client.Get(ctx, url)
		if !resp.Success {
			e.log.Debug("baseline probe failed", "url", url, "kind", resp.ErrKind)
			continue
		}
		fp := fingerprintOf(url, resp)
		b.ByStatus[resp.StatusCode] = append(b.ByStatus[resp.StatusCode], fp)
		e.log.Debug("baseline probe",
			"status", resp.StatusCode,
			"size", fp.ContentLength,
			"hash", shortHash(fp.ContentHash))
	}
	return b
}

func fingerprintOf(url string, resp *transport.Response) Fingerprint {
	return Fingerprint{
		ContentHash:   ContentHash(resp.Body),
		ContentType:   resp.ContentType(),
		ContentLength: int64(len(resp.Body)),
		TextSample:    StripText(resp.Body),
		Headers:       resp.Headers,
		URL:           url,
	}
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

// ContentHash fingerprints content as a hex string. Bodies over 100KB hash
// only the first and last 4KB, which is plenty to discriminate and keeps
// large downloads cheap. Empty content hashes to "".
func ContentHash(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	h := murmur3.New128()
	if len(content) > 100*1024 {
		h.Write(content[:hashPrefixSize])
		h.Write(content[len(content)-hashPrefixSize:])
	} else {
		h.Write(content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

var (
	scriptPattern = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</\s*(script|style)\s*>`)
	tagPattern    = regexp.MustCompile(`(?s)<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// StripText reduces an HTML (or plain-text) body to a normalized text
// sample: script/style blocks and tags removed, whitespace collapsed,
// truncated to TextSampleSize.
func StripText(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	text := scriptPattern.ReplaceAllString(string(content), " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = spacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > TextSampleSize {
		text = text[:TextSampleSize]
	}
	return text
}
