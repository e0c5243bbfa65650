// Package transport provides the pooled HTTP client behind every probe.
// It layers rate limiting, an LRU response cache, a bounded retry policy,
// User-Agent rotation, and a large-file guard over a shared http.Client.
// Get never returns a Go error: all failures surface as a Response with
// Success=false and a typed error kind, so one bad candidate can never
// abort a scan.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leftovers/leftovers/pkg/cache"
	"github.com/leftovers/leftovers/pkg/defaults"
	"github.com/leftovers/leftovers/pkg/ratelimit"
	"github.com/leftovers/leftovers/pkg/retry"
)

// ErrKind classifies a transport failure.
type ErrKind string

const (
	ErrKindNone       ErrKind = ""
	ErrKindTimeout    ErrKind = "timeout"
	ErrKindTLS        ErrKind = "ssl"
	ErrKindConnection ErrKind = "connection"
	ErrKindOther      ErrKind = "other"
)

// Response is the outcome of a probe. Body holds at most the partial prefix
// for large files and is empty on cache hits.
type Response struct {
	Success        bool
	StatusCode     int
	Headers        http.Header
	Body           []byte
	Time           time.Duration
	LargeFile      bool
	PartialContent bool
	FromCache      bool
	ErrKind        ErrKind
	Err            error
}

// ContentType returns the response Content-Type header, or "N/A".
func (r *Response) ContentType() string {
	if r.Headers == nil {
		return "N/A"
	}
	ct := r.Headers.Get("Content-Type")
	if ct == "" {
		return "N/A"
	}
	return ct
}

// ContentLength returns the declared Content-Length when present and
// parseable, otherwise the number of body bytes actually read.
func (r *Response) ContentLength() int64 {
	if r.Headers != nil {
		if cl := r.Headers.Get("Content-Length"); cl != "" {
			if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
				return n
			}
		}
	}
	return int64(len(r.Body))
}

// Config controls client behaviour. Verbosity is threaded through the
// Logger rather than any package-level state.
type Config struct {
	// Timeout bounds each request. HEAD pre-checks use half of it.
	Timeout time.Duration

	// VerifySSL enables certificate verification. Off by default: probing
	// misconfigured servers is the whole point.
	VerifySSL bool

	// Headers are sent on every request.
	Headers map[string]string

	// RotateUserAgent draws a random agent from the pool per request.
	RotateUserAgent bool

	// MaxRetries bounds retries for transient failures (429/5xx, network).
	MaxRetries int

	// BackoffFactor is the base retry delay in seconds.
	BackoffFactor float64

	// UseCache enables the LRU response cache.
	UseCache bool

	// CacheSize bounds the cache entry count.
	CacheSize int

	// Gate paces requests across all callers. Nil means unlimited.
	Gate *ratelimit.Gate

	// MaxFileSize is the byte threshold that triggers the large-file guard.
	MaxFileSize int64

	// Logger receives debug lines. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the standard probe configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:       defaults.Timeout,
		VerifySSL:     false,
		Headers:       defaults.Headers(),
		MaxRetries:    defaults.MaxRetries,
		BackoffFactor: defaults.BackoffFactor,
		UseCache:      true,
		CacheSize:     defaults.CacheSize,
		MaxFileSize:   defaults.MaxFileSizeBytes,
	}
}

// Client issues probes. Safe for concurrent use.
type Client struct {
	cfg     *Config
	http    *http.Client
	cache   *cache.LRU
	retries retry.Policy
	log     *slog.Logger
}

// New creates a client from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = defaults.MaxFileSizeBytes
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = defaults.BackoffFactor
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	transport := &http.Transport{
		MaxIdleConns:        defaults.PoolMaxSize,
		MaxIdleConnsPerHost: defaults.PoolConnections,
		MaxConnsPerHost:     0,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !cfg.VerifySSL,
		},
	}

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		retries: retry.HTTPPolicy(cfg.MaxRetries, cfg.BackoffFactor),
		log:     log,
	}
	if cfg.UseCache {
		size := cfg.CacheSize
		if size <= 0 {
			size = defaults.CacheSize
		}
		c.cache = cache.New(size)
	}
	return c
}

// Get probes url. Cache hits short-circuit the network entirely and carry
// no body. Large files come back with only an analysis prefix.
func (c *Client) Get(ctx context.Context, url string) *Response {
	if c.cfg.Gate != nil {
		if err := c.cfg.Gate.Wait(ctx); err != nil {
			return failure(err, 0)
		}
	}

	if c.cache != nil {
		if entry, ok := c.cache.Get(url); ok {
			c.log.Debug("cache hit", "url", url)
			return &Response{
				Success:    entry.Err == "",
				StatusCode: entry.StatusCode,
				Headers:    entry.Headers,
				Time:       entry.Time,
				FromCache:  true,
			}
		}
	}

	c.log.Debug("http request", "method", http.MethodGet, "url", url)

	start := time.Now()
	resp := c.fetch(ctx, url)
	resp.Time = time.Since(start)

	if c.cache != nil && resp.Success {
		c.cache.Put(url, cache.Entry{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Time:       resp.Time,
		})
	}
	return resp
}

// GetRange probes url with a forced Range request, fetching only the
// analysis prefix. Used for priority checks on formats that tend to be
// large, where confirming existence matters more than the full body. The
// cache is bypassed so the answer is always fresh.
func (c *Client) GetRange(ctx context.Context, url string) *Response {
	if c.cfg.Gate != nil {
		if err := c.cfg.Gate.Wait(ctx); err != nil {
			return failure(err, 0)
		}
	}

	c.log.Debug("http range request", "url", url)

	start := time.Now()
	resp := c.fetchPartial(ctx, url)
	resp.Time = time.Since(start)
	return resp
}

// fetch runs the size pre-check and the appropriate download path.
func (c *Client) fetch(ctx context.Context, url string) *Response {
	isLarge, headHeaders := c.precheckSize(ctx, url)

	if isLarge {
		resp := c.fetchPartial(ctx, url)
		if resp.Success && headHeaders != nil {
			// The Range response may omit size headers the HEAD carried.
			for _, h := range []string{"Content-Length", "Content-Type", "Last-Modified", "ETag"} {
				if resp.Headers.Get(h) == "" && headHeaders.Get(h) != "" {
					resp.Headers.Set(h, headHeaders.Get(h))
				}
			}
		}
		return resp
	}
	return c.fetchFull(ctx, url)
}

// precheckSize issues a HEAD with half the normal timeout and decides
// whether the large-file guard should kick in. HEAD failures are not
// errors; the URL-extension heuristic still applies.
func (c *Client) precheckSize(ctx context.Context, url string) (bool, http.Header) {
	likelyLarge := LikelyLargeFile(url)

	headCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout/2)
	defer cancel()

	req, err := http.NewRequestWithContext(headCtx, http.MethodHead, url, nil)
	if err != nil {
		return likelyLarge, nil
	}
	c.setHeaders(req)

	head, err := c.http.Do(req)
	if err != nil {
		return likelyLarge, nil
	}
	io.Copy(io.Discard, head.Body)
	head.Body.Close()

	contentType := strings.ToLower(head.Header.Get("Content-Type"))
	if cl := head.Header.Get("Content-Length"); cl != "" {
		if size, perr := strconv.ParseInt(cl, 10, 64); perr == nil {
			if size > c.cfg.MaxFileSize {
				return true, head.Header
			}
			return likelyLarge, head.Header
		}
	}
	if isLargeContentType(contentType) {
		return true, head.Header
	}
	return likelyLarge, head.Header
}

// fetchFull downloads the whole body, bounded at MaxFileSize as a backstop
// against servers that lie about Content-Length.
func (c *Client) fetchFull(ctx context.Context, url string) *Response {
	return c.doWithRetry(ctx, url, nil, func(body io.Reader, out *Response) error {
		data, err := io.ReadAll(io.LimitReader(body, c.cfg.MaxFileSize))
		if err != nil {
			return err
		}
		out.Body = data
		return nil
	})
}

// fetchPartial downloads only an analysis prefix using a Range request.
// When the server ignores the Range header, a limited streamed read keeps
// the byte count bounded anyway.
func (c *Client) fetchPartial(ctx context.Context, url string) *Response {
	extra := map[string]string{"Range": defaults.RangeHeader}
	resp := c.doWithRetry(ctx, url, extra, func(body io.Reader, out *Response) error {
		limit := int64(defaults.ChunkSize)
		if out.StatusCode != http.StatusPartialContent {
			limit = defaults.MaxStreamChunks * defaults.ChunkSize
		}
		data, err := io.ReadAll(io.LimitReader(body, limit))
		if err != nil {
			return err
		}
		out.Body = data
		return nil
	})
	if resp.Success {
		resp.LargeFile = true
		resp.PartialContent = true
	}
	return resp
}

// doWithRetry performs a GET, retrying transient statuses and network
// errors per the configured policy. readBody consumes the response body
// into out.
func (c *Client) doWithRetry(ctx context.Context, url string, extraHeaders map[string]string, readBody func(io.Reader, *Response) error) *Response {
	out := &Response{}

	err := c.retries.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Stop(err)
		}
		c.setHeaders(req)
		for k, v := range extraHeaders {
			req.Header.Set(k, v)
		}

		httpResp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			io.Copy(io.Discard, httpResp.Body)
			httpResp.Body.Close()
		}()

		out.StatusCode = httpResp.StatusCode
		out.Headers = httpResp.Header
		out.Body = nil

		if err := readBody(httpResp.Body, out); err != nil {
			return err
		}
		if retry.TransientStatus(httpResp.StatusCode) {
			return fmt.Errorf("transient status %d", httpResp.StatusCode)
		}
		return nil
	})

	if err != nil {
		// A transient status that never cleared is still a usable answer
		// as long as the final round trip completed.
		if out.StatusCode != 0 && retry.TransientStatus(out.StatusCode) {
			out.Success = true
			return out
		}
		return failure(err, out.StatusCode)
	}

	out.Success = true
	return out
}

func (c *Client) setHeaders(req *http.Request) {
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	if c.cfg.RotateUserAgent {
		req.Header.Set("User-Agent", defaults.UserAgents[rand.IntN(len(defaults.UserAgents))])
	}
}

// CacheStats returns cache effectiveness counters, zero when disabled.
func (c *Client) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.Stats()
}

// ClearCache drops all cached entries.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// failure builds a Response for err with its classified kind.
func failure(err error, status int) *Response {
	return &Response{
		StatusCode: status,
		ErrKind:    ClassifyError(err),
		Err:        err,
	}
}

// ClassifyError maps an error to its transport taxonomy kind.
func ClassifyError(err error) ErrKind {
	if err == nil {
		return ErrKindNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrKindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrKindTimeout
	}

	var recordErr tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &recordErr) || errors.As(err, &certErr) {
		return ErrKindTLS
	}
	msg := err.Error()
	if strings.Contains(msg, "tls:") || strings.Contains(msg, "x509:") || strings.Contains(msg, "certificate") {
		return ErrKindTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrKindConnection
	}
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") || strings.Contains(msg, "no such host") {
		return ErrKindConnection
	}

	return ErrKindOther
}

// LikelyLargeFile reports whether url points at a file that is typically
// too big to download whole, judged by path suffix alone.
func LikelyLargeFile(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range defaults.LargeFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func isLargeContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	for _, ct := range defaults.LargeContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}
