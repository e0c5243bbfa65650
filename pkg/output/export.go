// Package output renders scan findings to the console and exports them as
// JSON reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/result"
)

// ScanInfo heads every JSON report.
type ScanInfo struct {
	Timestamp           time.Time `json:"timestamp"`
	Version             string    `json:"version"`
	RunID               string    `json:"run_id"`
	TotalTests          int       `json:"total_tests"`
	InterestingFindings int       `json:"interesting_findings"`
}

// Report is the exported document shape.
type Report struct {
	ScanInfo ScanInfo             `json:"scan_info"`
	Results  []*result.ScanResult `json:"results"`
}

// BuildReport assembles a Report from all accumulated results. False
// positives and 404s are filtered out of the exported result list but
// still counted in TotalTests.
func BuildReport(results []*result.ScanResult) *Report {
	filtered := make([]*result.ScanResult, 0, len(results))
	for _, r := range results {
		if r.StatusCode == 404 || r.FalsePositive {
			continue
		}
		filtered = append(filtered, r)
	}
	return &Report{
		ScanInfo: ScanInfo{
			Timestamp:           time.Now(),
			Version:             defaults.Version,
			RunID:               uuid.NewString(),
			TotalTests:          len(results),
			InterestingFindings: len(filtered),
		},
		Results: filtered,
	}
}

// Export writes the JSON report for results to path.
func Export(results []*result.ScanResult, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to export")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := ExportWriter(results, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportWriter writes the JSON report for results to w.
func ExportWriter(results []*result.ScanResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildReport(results)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// FileNameForURL derives a per-target report path from base ("report.json")
// and the scanned URL, so URL-list scans write one file per target.
func FileNameForURL(base, rawURL string) string {
	stem := strings.TrimSuffix(base, ".json")
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return stem + ".json"
	}
	host := strings.ReplaceAll(u.Host, ":", "_")
	path := strings.Trim(strings.ReplaceAll(u.Path, "/", "_"), "_")
	if path != "" {
		return fmt.Sprintf("%s_%s_%s.json", stem, host, path)
	}
	return fmt.Sprintf("%s_%s.json", stem, host)
}
