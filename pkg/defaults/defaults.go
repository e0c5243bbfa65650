// Package defaults provides canonical default values for the entire codebase.
// Tuning constants, the extension tables, and the built-in backup wordlists
// all live here so the rest of the packages never hard-code magic values.
package defaults

import "time"

// Version is the current leftovers version
const Version = "1.2.5"

// ============================================================================
// NETWORK SETTINGS
// ============================================================================

const (
	// Timeout is the default per-request timeout
	Timeout = 5 * time.Second

	// Threads is the default worker count
	Threads = 10

	// MaxRetries is the default retry count for transient failures
	MaxRetries = 1

	// BackoffFactor is the default exponential backoff multiplier
	BackoffFactor = 0.5

	// PoolConnections is the number of connection pools kept per host
	PoolConnections = 20

	// PoolMaxSize caps idle connections under high concurrency
	PoolMaxSize = 100

	// BatchSize bounds how many candidate URLs a worker batch covers
	BatchSize = 100
)

// ============================================================================
// FILE HANDLING
// ============================================================================

const (
	// MaxFileSizeBytes is the threshold above which a response is treated as
	// a large file and only partially fetched (10MB)
	MaxFileSizeBytes = 10 * 1024 * 1024

	// ChunkSize is the streamed read size for partial downloads (8KB)
	ChunkSize = 8192

	// MaxStreamChunks limits fallback streaming when Range is rejected
	// (5 chunks = 40KB with the default chunk size)
	MaxStreamChunks = 5

	// RangeHeader requests the analysis prefix of a large file
	RangeHeader = "bytes=0-8191"

	// CacheSize is the default LRU response cache capacity
	CacheSize = 128
)

// IsSuccess reports whether a status code counts as a hit. 206 matters
// because large-file probes use Range requests.
func IsSuccess(status int) bool {
	return status == 200 || status == 206
}

// ============================================================================
// HTTP HEADERS
// ============================================================================

// DefaultUserAgent is used when rotation is disabled.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// UserAgents is the rotation pool of realistic browser agents.
var UserAgents = []string{
	DefaultUserAgent,
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0.1 Mobile/15E148 Safari/604.1",
}

// Headers returns the default outbound header set.
func Headers() map[string]string {
	return map[string]string{
		"User-Agent":      DefaultUserAgent,
		"Accept":          "*/*",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
		"Pragma":          "no-cache",
		"Cache-Control":   "no-cache",
	}
}

// LargeContentTypes marks types that routinely exceed the size threshold and
// should be fetched with a Range request regardless of Content-Length.
var LargeContentTypes = []string{
	"application/pdf",
	"application/zip",
	"application/x-rar-compressed",
	"application/octet-stream",
	"application/x-msdownload",
	"application/x-executable",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"image/jpeg", "image/png", "image/gif", "image/tiff",
	"video/mp4", "video/mpeg", "video/quicktime", "audio/mpeg",
}

// LargeFileExtensions flags URLs that likely point at a large binary based on
// the path suffix alone, used when HEAD gives no usable size.
var LargeFileExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp",
	".mp3", ".mp4", ".avi", ".mov", ".wmv", ".flv", ".mkv",
	".wav", ".ogg", ".webm",
	".zip", ".rar", ".tar", ".gz", ".7z", ".bz2", ".tgz",
	".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls", ".xlsx",
	".csv", ".odt", ".ods", ".odp",
	".exe", ".dll", ".bin", ".iso", ".dmg", ".apk",
	".mdb", ".accdb", ".db", ".sqlite", ".bak",
}

// ImportantExtensions are probed directly against the target URL before the
// generated sweep; documents and archives score highest as real leftovers.
var ImportantExtensions = []string{
	"pdf", "docx", "xlsx", "pptx", "zip", "rar", "tar.gz", "tar",
}

// ============================================================================
// IP TARGETS
// ============================================================================

// CommonIPPaths are probed on IP-literal targets in place of domain permutations.
var CommonIPPaths = []string{
	"admin", "dashboard", "api", "app", "backup", "config", "data",
	"files", "logs", "private", "public", "system", "temp", "upload",
}

// CommonPorts are tested as directory names on IP targets; several appliances
// expose per-port document roots this way.
var CommonPorts = []string{"8080", "8443", "9000"}
