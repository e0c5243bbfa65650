package classify

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leftovers/leftovers/pkg/baseline"
	"github.com/leftovers/leftovers/pkg/result"
)

func makeResult(url string, status int, contentType, ext string, body []byte) *result.ScanResult {
	return &result.ScanResult{
		URL:           url,
		StatusCode:    status,
		ContentType:   contentType,
		ContentLength: int64(len(body)),
		Extension:     ext,
		ContentHash:   baseline.ContentHash(body),
	}
}

func emptyBaseline() *baseline.Baseline {
	return &baseline.Baseline{ByStatus: map[int][]baseline.Fingerprint{}}
}

func TestClassify_EmptyBodyNeverFalsePositive(t *testing.T) {
	t.Parallel()

	c := New(nil)
	res := makeResult("https://example.com/x.bak", 404, "text/html", "bak", nil)
	fp, reason := c.Classify(res, nil, emptyBaseline())
	assert.False(t, fp)
	assert.Empty(t, reason)
}

func TestClassify_404AlwaysFalsePositive(t *testing.T) {
	t.Parallel()

	c := New(nil)
	body := []byte("<html>not found</html>")
	res := makeResult("https://example.com/x.bak", 404, "text/html", "bak", body)
	fp, reason := c.Classify(res, body, emptyBaseline())
	assert.True(t, fp)
	assert.NotEmpty(t, reason)
}

func TestClassify_PDFMagicOverridesEverything(t *testing.T) {
	t.Parallel()

	body := []byte("%PDF-1.7 some pdf bytes")
	base := emptyBaseline()
	// Baseline 200 fingerprint with the exact same size: without the magic
	// check this would be suppressed as a baseline match.
	base.ByStatus[200] = []baseline.Fingerprint{{
		ContentHash:   "different",
		ContentType:   "application/pdf",
		ContentLength: int64(len(body)),
	}}

	c := New(nil)
	res := makeResult("https://example.com/report.pdf", 200, "application/pdf", "pdf", body)
	fp, _ := c.Classify(res, body, base)
	assert.False(t, fp)
}

func TestClassify_SameHashAcrossExtensions(t *testing.T) {
	t.Parallel()

	c := New(nil)
	base := emptyBaseline()
	body := []byte("welcome to our site, nothing to see")

	for i, ext := range []string{"bak", "old"} {
		res := makeResult(fmt.Sprintf("https://example.com/app.%s", ext), 200, "text/plain", ext, body)
		fp, _ := c.Classify(res, body, base)
		assert.False(t, fp, "occurrence %d should pass", i+1)
	}

	res := makeResult("https://example.com/app.zip", 200, "text/plain", "zip", body)
	fp, reason := c.Classify(res, body, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "different extensions")
}

func TestClassify_RepeatedStatusSizeType(t *testing.T) {
	t.Parallel()

	c := New(nil)
	base := emptyBaseline()

	// Different bodies of identical length, so the hash check stays out of
	// the way and only the (status, length, type) triple recurs.
	for i := 0; i < 2; i++ {
		body := []byte(fmt.Sprintf("generic error page variant %d", i))
		res := makeResult(fmt.Sprintf("https://example.com/f%d.bak", i), 500, "text/plain", "bak", body)
		fp, _ := c.Classify(res, body, base)
		require.False(t, fp, "occurrence %d", i+1)
	}

	body := []byte("generic error page variant 9")
	res := makeResult("https://example.com/f9.bak", 500, "text/plain", "bak", body)
	fp, reason := c.Classify(res, body, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "repeated identical response")
}

func TestClassify_SmallHTMLSuccessNeedsMoreEvidence(t *testing.T) {
	t.Parallel()

	c := New(nil)
	base := emptyBaseline()

	verdicts := make([]bool, 0, 5)
	for i := 0; i < 5; i++ {
		body := []byte(fmt.Sprintf("<html><body>variant %d</body></html>", i))
		res := makeResult(fmt.Sprintf("https://example.com/p%d.bak", i), 200, "text/html", "bak", body)
		// Distinct hashes per body keep the extension-hash check quiet.
		fp, _ := c.Classify(res, body, base)
		verdicts = append(verdicts, fp)
	}

	assert.False(t, verdicts[2], "third repetition is not yet enough for small HTML success pages")
	assert.True(t, verdicts[4], "fifth repetition is")
}

func TestClassify_BaselineSimilarity(t *testing.T) {
	t.Parallel()

	errorPage := "<html><body>The page you requested could not be located on this server at this time</body></html>"
	base := emptyBaseline()
	base.ByStatus[500] = []baseline.Fingerprint{{
		ContentHash:   "someotherhash",
		ContentType:   "text/html",
		ContentLength: 5000, // far from the result size, so only text similarity can match
		TextSample:    baseline.StripText([]byte(errorPage)),
	}}

	c := New(nil)
	body := []byte("<html><body>The page you requested could not be located on this server at this moment</body></html>")
	res := makeResult("https://example.com/a.bak", 500, "text/html", "bak", body)
	fp, reason := c.Classify(res, body, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "similar to baseline")
}

func TestClassify_BaselineHashMatch(t *testing.T) {
	t.Parallel()

	body := []byte("<html>403 forbidden page here with plenty of content to pass the small check</html>")
	base := emptyBaseline()
	base.ByStatus[403] = []baseline.Fingerprint{{
		ContentHash:   baseline.ContentHash(body),
		ContentType:   "text/html",
		ContentLength: int64(len(body)),
	}}

	c := New(nil)
	res := makeResult("https://example.com/secret.bak", 403, "text/html", "bak", body)
	fp, reason := c.Classify(res, body, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "generic 403")
}

func TestClassify_GenericAuthError(t *testing.T) {
	t.Parallel()

	c := New(nil)
	base := emptyBaseline()

	small := []byte("<html>no</html>")
	res := makeResult("https://example.com/admin.bak", 403, "text/html", "bak", small)
	fp, reason := c.Classify(res, small, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "too small")

	phrase := []byte("<html><body>" + strings.Repeat("x ", 100) + "Access Denied by policy</body></html>")
	res = makeResult("https://example.com/admin2.bak", 401, "text/html", "bak", phrase)
	fp, reason = c.Classify(res, phrase, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "access denied")
}

func TestClassify_MainPageEcho(t *testing.T) {
	t.Parallel()

	mainBody := []byte("<html><head><title>Acme</title></head><body>Welcome to Acme Corp</body></html>")
	base := emptyBaseline()
	base.MainPage = &baseline.Fingerprint{
		ContentHash:   baseline.ContentHash(mainBody),
		ContentType:   "text/html",
		ContentLength: int64(len(mainBody)),
		TextSample:    baseline.StripText(mainBody),
	}
	base.MainPageStatus = 200

	c := New(nil)
	res := makeResult("https://example.com/db.sql", 200, "text/html", "sql", mainBody)
	fp, reason := c.Classify(res, mainBody, base)
	assert.True(t, fp)
	assert.Contains(t, reason, "main page")
}

func TestClassify_SPAFallback(t *testing.T) {
	t.Parallel()

	body := []byte(`<!doctype html><html><body><div id="root"></div>` +
		`<script type="module" src="/assets/index.js"></script></body></html>`)
	c := New(nil)
	res := makeResult("https://example.com/backup.sql", 200, "text/html", "sql", body)
	fp, reason := c.Classify(res, body, emptyBaseline())
	assert.True(t, fp)
	assert.Contains(t, reason, "fallback")
}

func TestClassify_SPASignaturesIgnoredForHTMLExtension(t *testing.T) {
	t.Parallel()

	body := []byte(`<div id="root"></div><script type="module"></script>`)
	c := New(nil)
	res := makeResult("https://example.com/index.html", 200, "text/html", "html", body)
	fp, _ := c.Classify(res, body, emptyBaseline())
	assert.False(t, fp, "HTML answers to HTML probes are expected")
}

func TestClassify_BinarySuccessPasses(t *testing.T) {
	t.Parallel()

	body := []byte("\x00\x01\x02 binary-ish payload without known magic")
	c := New(nil)
	res := makeResult("https://example.com/data.db", 200, "application/octet-stream", "db", body)
	fp, _ := c.Classify(res, body, emptyBaseline())
	assert.False(t, fp)
}

func TestClassify_Reset(t *testing.T) {
	t.Parallel()

	c := New(nil)
	base := emptyBaseline()
	body := []byte("shared body content across extensions")

	for _, ext := range []string{"bak", "old"} {
		res := makeResult("https://a.example/x."+ext, 200, "text/plain", ext, body)
		c.Classify(res, body, base)
	}
	c.Reset()

	// After reset the third extension is the first occurrence again.
	res := makeResult("https://b.example/x.zip", 200, "text/plain", "zip", body)
	fp, _ := c.Classify(res, body, base)
	assert.False(t, fp)
}

func TestHasMagicSignature(t *testing.T) {
	t.Parallel()

	assert.True(t, hasMagicSignature([]byte("%PDF-1.4")))
	assert.True(t, hasMagicSignature([]byte("PK\x03\x04rest")))
	assert.True(t, hasMagicSignature([]byte{0x1f, 0x8b, 0x08}))
	assert.True(t, hasMagicSignature([]byte("SQLite format 3\x00")))
	assert.False(t, hasMagicSignature([]byte("<html></html>")))
	assert.False(t, hasMagicSignature(nil))

	tar := make([]byte, 512)
	copy(tar[257:], "ustar")
	assert.True(t, hasMagicSignature(tar))
}

func TestLeftoverScore(t *testing.T) {
	t.Parallel()

	res := makeResult("https://example.com/backup_2024-01-15.sql", 200, "text/plain", "sql", nil)
	body := []byte("-- MySQL dump 10.13\nCREATE TABLE users (id int);\nINSERT INTO users VALUES (1);")
	assert.GreaterOrEqual(t, leftoverScore(res, body), 3, "name, date, extension and content all signal")

	plain := makeResult("https://example.com/about", 200, "text/html", "", nil)
	assert.Less(t, leftoverScore(plain, []byte("<html>hi</html>")), 2)
}

func TestCredentialPattern(t *testing.T) {
	t.Parallel()

	assert.True(t, credentialPattern.Match([]byte("DB_PASSWORD=hunter2")))
	assert.True(t, credentialPattern.Match([]byte("export API_KEY=abc123")))
	assert.True(t, credentialPattern.Match([]byte("  secret_token: xyz")))
	assert.False(t, credentialPattern.Match([]byte("the word count = 3")))
}
