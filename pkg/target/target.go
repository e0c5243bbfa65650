// Package target decomposes a scan URL into the structured pieces the
// candidate generator permutes: scheme, host, subdomain, registrable domain,
// public suffix, and path segments. A Target is parsed once per scan and
// never mutated afterwards.
package target

import (
	"fmt"
	"regexp"
	"strings"

	"net/url"

	"golang.org/x/net/publicsuffix"
)

// ipv4Pattern recognizes bare IPv4 literals; domain permutation logic is
// bypassed entirely for those.
var ipv4Pattern = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

// hostCharPattern rejects hostnames carrying characters that never appear in
// a legitimate authority.
var hostCharPattern = regexp.MustCompile(`[<>"'\s]`)

// Target is the parsed form of a scan URL.
type Target struct {
	// Scheme is http or https.
	Scheme string

	// Host is the full authority including any port, e.g. "sub.example.com:8443".
	Host string

	// Hostname is Host without the port.
	Hostname string

	// Subdomain holds everything left of the registrable domain
	// ("www.stage" for www.stage.example.co.uk). Empty for IPs.
	Subdomain string

	// Domain is the registrable label ("example"). Empty for IPs.
	Domain string

	// Suffix is the public suffix ("co.uk"). Empty for IPs.
	Suffix string

	// Path is the trimmed request path without leading or trailing slashes.
	Path string

	// PathSegments are the individual path components, in order.
	PathSegments []string

	// IsIP marks bare IPv4 literal hosts.
	IsIP bool
}

// Parse decomposes rawURL into a Target. URLs without a scheme default to
// http. The suffix split uses the public suffix list, so compound TLDs like
// co.uk and com.br resolve correctly.
func Parse(rawURL string) (*Target, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("empty target URL")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse target %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("target %q has no hostname", rawURL)
	}
	if hostCharPattern.MatchString(u.Host) {
		return nil, fmt.Errorf("target %q has invalid characters in hostname", rawURL)
	}

	t := &Target{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Hostname: u.Hostname(),
	}

	if path := strings.Trim(u.Path, "/"); path != "" {
		t.Path = path
		t.PathSegments = strings.Split(path, "/")
	}

	if ipv4Pattern.MatchString(t.Hostname) {
		t.IsIP = true
		return t, nil
	}

	host := strings.ToLower(t.Hostname)
	suffix, _ := publicsuffix.PublicSuffix(host)
	t.Suffix = suffix

	rest := strings.TrimSuffix(strings.TrimSuffix(host, suffix), ".")
	if rest == "" {
		// Hostname is itself a public suffix; treat the whole thing as the
		// domain so candidate generation still has something to work with.
		t.Domain = host
		t.Suffix = ""
		return t, nil
	}
	if i := strings.LastIndex(rest, "."); i >= 0 {
		t.Subdomain = rest[:i]
		t.Domain = rest[i+1:]
	} else {
		t.Domain = rest
	}
	return t, nil
}

// BaseURL returns scheme://host with no path.
func (t *Target) BaseURL() string {
	return t.Scheme + "://" + t.Host
}

// RegisteredDomain returns domain.suffix, or the bare domain when no suffix
// was recognized. Empty for IP targets.
func (t *Target) RegisteredDomain() string {
	if t.Domain == "" {
		return ""
	}
	if t.Suffix == "" {
		return t.Domain
	}
	return t.Domain + "." + t.Suffix
}

// HasPath reports whether the target URL carried any path component.
func (t *Target) HasPath() bool {
	return len(t.PathSegments) > 0
}

// PathLevels returns every cumulative prefix of the path, deepest last:
// for a/b/c it yields [a, a/b, a/b/c].
func (t *Target) PathLevels() []string {
	levels := make([]string, 0, len(t.PathSegments))
	current := ""
	for _, seg := range t.PathSegments {
		if current == "" {
			current = seg
		} else {
			current += "/" + seg
		}
		levels = append(levels, current)
	}
	return levels
}

// ValidateURL checks that raw is a scannable http(s) URL without touching
// the network. Used for eager config validation before a run starts.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("URL must be a non-empty string")
	}
	if len(raw) < len("http://a") {
		return fmt.Errorf("URL %q is too short", raw)
	}
	if len(raw) > 2048 {
		return fmt.Errorf("URL is too long (max 2048 characters)")
	}
	if _, err := Parse(raw); err != nil {
		return err
	}
	return nil
}
