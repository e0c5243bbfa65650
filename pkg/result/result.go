// Package result defines the record produced for every interesting probe.
package result

import "time"

// ScanResult is one confirmed probe outcome. The false-positive fields are
// set exactly once by the classifier; everything else is immutable after
// construction.
type ScanResult struct {
	URL                 string        `json:"url"`
	StatusCode          int           `json:"status_code"`
	ContentType         string        `json:"content_type"`
	ContentLength       int64         `json:"content_length"`
	ResponseTime        time.Duration `json:"response_time"`
	Extension           string        `json:"extension"`
	ContentHash         string        `json:"content_hash"`
	FalsePositive       bool          `json:"false_positive"`
	FalsePositiveReason string        `json:"false_positive_reason,omitempty"`
	LargeFile           bool          `json:"large_file"`
	PartialContent      bool          `json:"partial_content"`
	Timestamp           time.Time     `json:"timestamp"`
}

// MarkFalsePositive records the classifier verdict. A positive verdict
// always carries a non-empty reason.
func (r *ScanResult) MarkFalsePositive(reason string) {
	r.FalsePositive = true
	if reason == "" {
		reason = "unspecified"
	}
	r.FalsePositiveReason = reason
}

// Interesting reports whether the result belongs in a report: a success or
// notable status that was not suppressed as a false positive.
func (r *ScanResult) Interesting() bool {
	return !r.FalsePositive && r.StatusCode != 404
}
