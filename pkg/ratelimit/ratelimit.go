// Package ratelimit provides the shared request gate that paces outbound
// probes across all scan workers. Two modes exist: a token-bucket ceiling in
// requests per second, or a fixed inter-request delay. Only the timing
// bookkeeping is serialized; the requests themselves still run concurrently.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Config holds gate configuration. Setting both RequestsPerSecond and Delay
// is a configuration error that callers validate before construction.
type Config struct {
	// RequestsPerSecond caps outbound request rate (0 = unlimited)
	RequestsPerSecond float64

	// Burst allows short bursts above the steady rate (defaults to 1,
	// which keeps spacing strict)
	Burst int

	// Delay is a fixed minimum interval between requests (0 = none)
	Delay time.Duration
}

// DefaultConfig returns an unlimited gate configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Gate is the shared pacing mechanism. The zero value is not usable; use New.
type Gate struct {
	limiter *rate.Limiter
	delay   time.Duration

	mu   sync.Mutex
	next time.Time

	waits       atomic.Int64
	waitedNanos atomic.Int64
}

// New creates a gate from cfg. A nil cfg means no pacing.
func New(cfg *Config) *Gate {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	g := &Gate{delay: cfg.Delay}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return g
}

// NewPerSecond creates a gate capped at rps requests per second.
func NewPerSecond(rps float64) *Gate {
	return New(&Config{RequestsPerSecond: rps})
}

// NewWithDelay creates a gate enforcing a fixed interval between requests.
func NewWithDelay(delay time.Duration) *Gate {
	return New(&Config{Delay: delay})
}

// Wait blocks until the gate allows another request, or ctx is done. Under
// the fixed-delay mode each caller reserves the next send slot under the
// lock and sleeps outside it, so workers queue up in FIFO reservation order
// without holding each other's requests hostage.
func (g *Gate) Wait(ctx context.Context) error {
	if g.limiter != nil {
		start := time.Now()
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
		if waited := time.Since(start); waited > time.Millisecond {
			g.waits.Add(1)
			g.waitedNanos.Add(int64(waited))
		}
		return nil
	}

	if g.delay <= 0 {
		return nil
	}

	g.mu.Lock()
	now := time.Now()
	slot := g.next
	if slot.Before(now) {
		slot = now
	}
	g.next = slot.Add(g.delay)
	g.mu.Unlock()

	sleep := time.Until(slot)
	if sleep <= 0 {
		return nil
	}

	g.waits.Add(1)
	g.waitedNanos.Add(int64(sleep))

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Interval returns the effective minimum spacing between requests, zero when
// the gate is unlimited.
func (g *Gate) Interval() time.Duration {
	if g.limiter != nil {
		limit := g.limiter.Limit()
		if limit <= 0 {
			return 0
		}
		return time.Duration(float64(time.Second) / float64(limit))
	}
	return g.delay
}

// Stats is a snapshot of gate activity.
type Stats struct {
	Waits       int64
	TotalWaited time.Duration
}

// Stats returns how often and how long callers were held at the gate.
func (g *Gate) Stats() Stats {
	return Stats{
		Waits:       g.waits.Load(),
		TotalWaited: time.Duration(g.waitedNanos.Load()),
	}
}
