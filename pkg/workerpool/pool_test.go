package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllTasks(t *testing.T) {
	t.Parallel()

	p := New(4)
	defer p.Close()

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		ok := p.Submit(func() {
			defer wg.Done()
			count.Add(1)
		})
		assert.True(t, ok)
	}
	wg.Wait()

	assert.Equal(t, int64(100), count.Load())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()

	p := New(3)
	defer p.Close()

	var current, peak atomic.Int64
	p.ForEach(context.Background(), 30, func(int) {
		n := current.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		current.Add(-1)
	})

	assert.LessOrEqual(t, peak.Load(), int64(3))
}

func TestForEachCoversEveryIndex(t *testing.T) {
	t.Parallel()

	p := New(2)
	defer p.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)
	p.ForEach(context.Background(), 20, func(i int) {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})

	assert.Len(t, seen, 20)
}

func TestForEachStopsOnCancel(t *testing.T) {
	t.Parallel()

	p := New(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var count atomic.Int64
	p.ForEach(ctx, 1000, func(i int) {
		if count.Add(1) == 3 {
			cancel()
		}
		time.Sleep(time.Millisecond)
	})

	assert.Less(t, count.Load(), int64(1000))
}

func TestSubmitAfterClose(t *testing.T) {
	t.Parallel()

	p := New(2)
	p.Close()
	p.Close() // idempotent

	assert.False(t, p.Submit(func() {}))
}

func TestNewClampsWorkerCount(t *testing.T) {
	t.Parallel()

	p := New(0)
	defer p.Close()
	assert.Equal(t, 1, p.Cap())
}
