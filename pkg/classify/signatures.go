package classify

import (
	"bytes"
	"regexp"
	"strings"
)

// magicSignatures are leading byte sequences of real document and archive
// formats. A body starting with one of these is never a generic error page.
var magicSignatures = [][]byte{
	[]byte("%PDF-"),
	[]byte("PK\x03\x04"),             // zip, docx, xlsx, jar
	[]byte("Rar!\x1a\x07"),           // rar
	{0x1f, 0x8b},                     // gzip
	{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}, // 7z
	[]byte("BZh"),                    // bzip2
	[]byte("SQLite format 3\x00"),
	[]byte("\x89PNG"),
}

// hasMagicSignature reports whether body starts with a known binary or
// document format marker. Tar puts its magic at offset 257.
func hasMagicSignature(body []byte) bool {
	for _, sig := range magicSignatures {
		if bytes.HasPrefix(body, sig) {
			return true
		}
	}
	if len(body) > 262 && bytes.Equal(body[257:262], []byte("ustar")) {
		return true
	}
	return false
}

// spaSignatures are markers of single-page-application shells. A server that
// answers a .sql probe with two or more of these is serving its app shell
// for every unmatched path.
var spaSignatures = []string{
	`<div id="root"`,
	`<div id="app"`,
	`<div id="__next"`,
	`<div id="__nuxt"`,
	`type="module"`,
	"__NEXT_DATA__",
	"webpack",
	"vite",
	"ng-version",
	"data-reactroot",
	"bundle.js",
	"chunk.js",
	"runtime~",
}

func countSPASignatures(body []byte) int {
	lower := strings.ToLower(string(body))
	count := 0
	for _, sig := range spaSignatures {
		if strings.Contains(lower, strings.ToLower(sig)) {
			count++
		}
	}
	return count
}

// htmlFamilyExtensions are extensions for which an HTML answer is expected
// and therefore not an SPA-fallback signal.
var htmlFamilyExtensions = map[string]struct{}{
	"html": {}, "htm": {}, "xhtml": {}, "shtml": {}, "phtml": {},
}

func isHTMLFamilyExtension(ext string) bool {
	_, ok := htmlFamilyExtensions[strings.ToLower(ext)]
	return ok
}

// contentTypeBase reduces "text/html; charset=utf-8" to "text/html".
func contentTypeBase(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

func isHTMLContentType(ct string) bool {
	base := contentTypeBase(ct)
	return base == "text/html" || base == "application/xhtml+xml"
}

func isTextContentType(ct string) bool {
	base := contentTypeBase(ct)
	if strings.HasPrefix(base, "text/") {
		return true
	}
	switch base {
	case "application/json", "application/xml", "application/javascript",
		"application/x-javascript", "application/xhtml+xml":
		return true
	}
	return strings.HasSuffix(base, "+json") || strings.HasSuffix(base, "+xml")
}

// isBinaryContentType reports whether ct announces a document, archive, or
// other non-text payload.
func isBinaryContentType(ct string) bool {
	base := contentTypeBase(ct)
	for _, prefix := range []string{"image/", "audio/", "video/", "font/"} {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	switch base {
	case "application/octet-stream", "application/pdf", "application/zip",
		"application/gzip", "application/x-gzip", "application/x-tar",
		"application/x-rar-compressed", "application/x-7z-compressed",
		"application/x-bzip2", "application/msword",
		"application/x-sqlite3", "application/x-msdownload",
		"application/x-executable", "application/java-archive":
		return true
	}
	return strings.HasPrefix(base, "application/vnd.")
}

// Leftover-pattern scoring inputs. Each independent signal contributes one
// point; two points mean the finding looks like a genuine residual file.

var backupNamePattern = regexp.MustCompile(`(?i)(^|[/._-])(backup|bak|old|dump|copy|export|snapshot|archive)([/._-]|$)`)

var dateStampPattern = regexp.MustCompile(`(?:\d{4}[-_.]?\d{2}[-_.]?\d{2}|\d{2}[-_.]\d{2}[-_.]\d{4})`)

var leftoverExtensions = map[string]struct{}{
	"sql": {}, "bak": {}, "backup": {}, "old": {}, "orig": {}, "save": {},
	"zip": {}, "tar": {}, "gz": {}, "tgz": {}, "rar": {}, "7z": {},
	"env": {}, "ini": {}, "conf": {}, "config": {}, "yml": {}, "yaml": {},
	"log": {}, "swp": {}, "swo": {}, "dump": {}, "db": {}, "sqlite": {},
	"sqlite3": {}, "mdb": {}, "pem": {}, "key": {},
}

var sqlDumpMarkers = []string{
	"create table", "insert into", "drop table", "-- mysql dump",
	"-- postgresql database dump", "lock tables",
}

var credentialPattern = regexp.MustCompile(`(?im)^\s*(?:export\s+)?[A-Za-z0-9_]*(?:password|passwd|secret|token|api_?key|private_?key|db_user|database_url)[A-Za-z0-9_]*\s*[=:]\s*\S+`)

var stackTraceMarkers = []string{
	"traceback (most recent call last)",
	"stack trace:",
	"fatal error:",
	"at java.",
	"exception in thread",
	"panic: runtime error",
	"undefined index:",
}
