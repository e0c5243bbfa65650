// Package wordlist loads brute-force wordlists and URL lists from disk.
// Loaders normalize as they read: words are lowercased, URLs get a default
// scheme, blank lines and comments are skipped.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/leftovers/leftovers/pkg/defaults"
)

// LoadWords reads one lowercased word per non-empty line from path.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist %s: %w", path, err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty wordlist: %s", path)
	}
	return words, nil
}

// LoadURLs reads one URL per non-empty, non-comment line from path. URLs
// without a scheme are defaulted to http://.
func LoadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open URL list %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "://") {
			line = "http://" + line
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list %s: %w", path, err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("empty URL list: %s", path)
	}
	return urls, nil
}

// BackupWords returns the built-in backup wordlist.
func BackupWords() []string {
	return defaults.BackupWords()
}

// FilterForIP drops words that concatenate ambiguously onto an IP literal:
// a leading dot or an embedded .env/.git would produce malformed hosts like
// 1.2.3.4.env when appended to the address.
func FilterForIP(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, ".") || strings.Contains(w, ".env.") || strings.Contains(w, ".git") {
			continue
		}
		out = append(out, w)
	}
	return out
}
