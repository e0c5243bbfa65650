// Package metrics accumulates scan-wide counters behind one mutex so the
// worker pool can record from any goroutine.
package metrics

import (
	"sync"
	"time"

	"github.com/leftovers/leftovers/pkg/transport"
)

// Metrics tracks request, error, discovery, and timing counters for one
// scan run. Safe for concurrent use.
type Metrics struct {
	mu sync.Mutex

	startTime time.Time
	endTime   time.Time

	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	timeoutErrors      int64
	connectionErrors   int64

	statusCodes map[int]int64

	bytesDownloaded int64

	filesFound     int64
	falsePositives int64
	extensionsSeen map[string]struct{}
	extensionOrder []string

	responseCount int64
	totalTime     time.Duration
	minTime       time.Duration
	maxTime       time.Duration
}

// New creates a Metrics with the clock already running.
func New() *Metrics {
	return &Metrics{
		startTime:      time.Now(),
		statusCodes:    make(map[int]int64),
		extensionsSeen: make(map[string]struct{}),
	}
}

// RecordRequest counts one probe outcome.
func (m *Metrics) RecordRequest(success bool, status int, elapsed time.Duration, bytes int64, errKind transport.ErrKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRequests++
	if success {
		m.successfulRequests++
	} else {
		m.failedRequests++
		switch errKind {
		case transport.ErrKindTimeout:
			m.timeoutErrors++
		case transport.ErrKindConnection:
			m.connectionErrors++
		}
	}
	if status != 0 {
		m.statusCodes[status]++
	}
	if elapsed > 0 {
		m.responseCount++
		m.totalTime += elapsed
		if m.minTime == 0 || elapsed < m.minTime {
			m.minTime = elapsed
		}
		if elapsed > m.maxTime {
			m.maxTime = elapsed
		}
	}
	if bytes > 0 {
		m.bytesDownloaded += bytes
	}
}

// RecordDiscovery counts one accepted or suppressed finding.
func (m *Metrics) RecordDiscovery(falsePositive bool, extension string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filesFound++
	if falsePositive {
		m.falsePositives++
	}
	if extension != "" {
		if _, seen := m.extensionsSeen[extension]; !seen {
			m.extensionsSeen[extension] = struct{}{}
			m.extensionOrder = append(m.extensionOrder, extension)
		}
	}
}

// Finalize stops the clock. Idempotent.
func (m *Metrics) Finalize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.endTime.IsZero() {
		m.endTime = time.Now()
	}
}

// Summary is a point-in-time snapshot of all counters.
type Summary struct {
	Duration time.Duration `json:"duration"`

	TotalRequests      int64   `json:"total_requests"`
	SuccessfulRequests int64   `json:"successful_requests"`
	FailedRequests     int64   `json:"failed_requests"`
	SuccessRate        float64 `json:"success_rate"`
	RequestsPerSecond  float64 `json:"requests_per_second"`

	TimeoutErrors    int64 `json:"timeout_errors"`
	ConnectionErrors int64 `json:"connection_errors"`

	StatusCodes map[int]int64 `json:"status_codes"`

	BytesDownloaded int64 `json:"bytes_downloaded"`

	// Cache effectiveness, filled in by the scheduler from the transport.
	CacheHits    int64   `json:"cache_hits"`
	CacheMisses  int64   `json:"cache_misses"`
	CacheHitRate float64 `json:"cache_hit_rate"`

	AvgResponseTime time.Duration `json:"avg_response_time"`
	MinResponseTime time.Duration `json:"min_response_time"`
	MaxResponseTime time.Duration `json:"max_response_time"`

	FilesFound        int64    `json:"files_found"`
	FalsePositives    int64    `json:"false_positives"`
	FalsePositiveRate float64  `json:"false_positive_rate"`
	ExtensionsFound   []string `json:"extensions_found"`
}

// Snapshot returns the current Summary. Usable mid-scan; Finalize first for
// a fixed duration.
func (m *Metrics) Snapshot() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := m.endTime
	if end.IsZero() {
		end = time.Now()
	}
	duration := end.Sub(m.startTime)

	s := Summary{
		Duration:           duration,
		TotalRequests:      m.totalRequests,
		SuccessfulRequests: m.successfulRequests,
		FailedRequests:     m.failedRequests,
		TimeoutErrors:      m.timeoutErrors,
		ConnectionErrors:   m.connectionErrors,
		StatusCodes:        make(map[int]int64, len(m.statusCodes)),
		BytesDownloaded:    m.bytesDownloaded,
		MinResponseTime:    m.minTime,
		MaxResponseTime:    m.maxTime,
		FilesFound:         m.filesFound,
		FalsePositives:     m.falsePositives,
		ExtensionsFound:    append([]string(nil), m.extensionOrder...),
	}
	for code, n := range m.statusCodes {
		s.StatusCodes[code] = n
	}
	if m.totalRequests > 0 {
		s.SuccessRate = float64(m.successfulRequests) / float64(m.totalRequests) * 100
	}
	if duration > 0 {
		s.RequestsPerSecond = float64(m.totalRequests) / duration.Seconds()
	}
	if m.responseCount > 0 {
		s.AvgResponseTime = m.totalTime / time.Duration(m.responseCount)
	}
	if m.filesFound > 0 {
		s.FalsePositiveRate = float64(m.falsePositives) / float64(m.filesFound) * 100
	}
	return s
}
