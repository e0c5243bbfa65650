package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/leftovers/leftovers/pkg/candidates"
	"github.com/leftovers/leftovers/pkg/metrics"
	"github.com/leftovers/leftovers/pkg/result"
	"github.com/leftovers/leftovers/pkg/ui"
)

// Console renders findings and the end-of-scan summary. Safe for
// concurrent use; scan workers report results as they complete.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// NewConsole creates a Console writing to w. Verbose mode also shows
// suppressed false positives.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{w: w, verbose: verbose}
}

// Result prints one probe outcome as it happens. Non-verbose mode hides
// false positives entirely.
func (c *Console) Result(res *result.ScanResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res.FalsePositive {
		if c.verbose {
			fmt.Fprintf(c.w, "%s %s %s %s\n",
				ui.SuppressedStyle.Render("[FP]"),
				ui.StatusCodeStyle(res.StatusCode).Render(fmt.Sprintf("%d", res.StatusCode)),
				res.URL,
				ui.BracketStyle.Render("["+res.FalsePositiveReason+"]"))
		}
		return
	}

	marker := ui.FindingStyle.Render(ui.Icon("✓", "[+]"))
	size := humanBytes(res.ContentLength)
	if res.LargeFile {
		size = ui.LargeFileStyle.Render(size + " (partial)")
	}
	fmt.Fprintf(c.w, "%s %s %s %s %s\n",
		marker,
		ui.StatusCodeStyle(res.StatusCode).Render(fmt.Sprintf("%d", res.StatusCode)),
		ui.URLStyle.Render(res.URL),
		ui.BracketStyle.Render("["+res.ContentType+"]"),
		size)
}

// GroupHeader announces the candidate group about to be probed.
func (c *Console) GroupHeader(kind candidates.Kind, example string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "\n%s %s\n",
		ui.SectionStyle.Render("Testing "+kind.String()),
		ui.BracketStyle.Render("e.g. "+example))
}

// FilterInteresting keeps results worth reporting: not 404, and either not
// a false positive or a success the operator should eyeball anyway.
func FilterInteresting(results []*result.ScanResult) []*result.ScanResult {
	out := make([]*result.ScanResult, 0, len(results))
	for _, r := range results {
		if r.StatusCode == 404 {
			continue
		}
		if r.FalsePositive && r.StatusCode != 200 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summary prints the end-of-scan rollup: totals, per-status counts, top
// findings, and request statistics.
func (c *Console) Summary(results []*result.ScanResult, stats metrics.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	interesting := FilterInteresting(results)
	falsePositives := 0
	statusCounts := make(map[int]int)
	fpByStatus := make(map[int]int)
	for _, r := range results {
		statusCounts[r.StatusCode]++
		if r.FalsePositive {
			falsePositives++
			fpByStatus[r.StatusCode]++
		}
	}

	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, ui.SectionStyle.Render("Results Summary"))
	c.statLine("Total tests", fmt.Sprintf("%d", len(results)), "")
	c.statLine("Files found", fmt.Sprintf("%d", len(interesting)),
		fmt.Sprintf("excluding %d false positives", falsePositives))
	if dups := duplicateCount(interesting); dups > 0 {
		c.statLine("Unique content", fmt.Sprintf("%d", len(interesting)-dups),
			fmt.Sprintf("%d are duplicates", dups))
	}

	statuses := make([]int, 0, len(statusCounts))
	for s := range statusCounts {
		statuses = append(statuses, s)
	}
	sort.Ints(statuses)
	for _, s := range statuses {
		note := ""
		if fpByStatus[s] > 0 {
			note = fmt.Sprintf("%d false positives", fpByStatus[s])
		}
		c.statLine(
			"Status "+ui.StatusCodeStyle(s).Render(fmt.Sprintf("%d", s)),
			fmt.Sprintf("%d", statusCounts[s]), note)
	}

	if len(interesting) > 0 {
		c.topFindings(interesting)
	}

	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, ui.SectionStyle.Render("Scan Statistics"))
	c.statLine("Requests", fmt.Sprintf("%d", stats.TotalRequests),
		fmt.Sprintf("%.1f req/s", stats.RequestsPerSecond))
	c.statLine("Success rate", fmt.Sprintf("%.1f%%", stats.SuccessRate), "")
	if stats.TimeoutErrors > 0 || stats.ConnectionErrors > 0 {
		c.statLine("Errors", fmt.Sprintf("%d timeout, %d connection",
			stats.TimeoutErrors, stats.ConnectionErrors), "")
	}
	c.statLine("Downloaded", humanBytes(stats.BytesDownloaded), "")
	if stats.CacheHits+stats.CacheMisses > 0 {
		c.statLine("Cache", fmt.Sprintf("%d hits, %d misses", stats.CacheHits, stats.CacheMisses),
			fmt.Sprintf("%.1f%% hit rate", stats.CacheHitRate*100))
	}
	c.statLine("Duration", stats.Duration.Round(10*time.Millisecond).String(), "")
}

func (c *Console) statLine(label, value, note string) {
	line := fmt.Sprintf("  %s %s",
		ui.StatLabelStyle.Render(label+":"),
		ui.StatValueStyle.Render(value))
	if note != "" {
		line += " " + ui.BracketStyle.Render("("+note+")")
	}
	fmt.Fprintln(c.w, line)
}

// topFindings lists the 10 most promising results: 200s first, genuine
// findings before suspected ones, larger files before smaller.
func (c *Console) topFindings(interesting []*result.ScanResult) {
	top := make([]*result.ScanResult, len(interesting))
	copy(top, interesting)
	sort.SliceStable(top, func(i, j int) bool {
		a, b := top[i], top[j]
		if (a.StatusCode == 200) != (b.StatusCode == 200) {
			return a.StatusCode == 200
		}
		if a.FalsePositive != b.FalsePositive {
			return !a.FalsePositive
		}
		return a.ContentLength > b.ContentLength
	})
	if len(top) > 10 {
		top = top[:10]
	}

	fmt.Fprintln(c.w)
	fmt.Fprintln(c.w, ui.SectionStyle.Render("Top Findings"))
	for i, r := range top {
		fmt.Fprintf(c.w, "  %2d. %s %s %s %s\n",
			i+1,
			ui.StatusCodeStyle(r.StatusCode).Render(fmt.Sprintf("%d", r.StatusCode)),
			r.URL,
			ui.BracketStyle.Render("["+r.ContentType+"]"),
			humanBytes(r.ContentLength))
	}
}

// duplicateCount totals the results whose body was already seen under
// another URL: for each content-hash group of n > 1 results, n−1 count as
// duplicates. Results without a hash never group.
func duplicateCount(results []*result.ScanResult) int {
	groups := make(map[string]int)
	for _, r := range results {
		if r.ContentHash != "" {
			groups[r.ContentHash]++
		}
	}
	dups := 0
	for _, n := range groups {
		if n > 1 {
			dups += n - 1
		}
	}
	return dups
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// Divider returns a horizontal rule sized for typical terminals.
func Divider() string {
	return ui.DividerStyle.Render(strings.Repeat("─", 60))
}
