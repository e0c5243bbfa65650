package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leftovers/leftovers/pkg/transport"
)

func TestRecordRequest(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordRequest(true, 200, 50*time.Millisecond, 1024, transport.ErrKindNone)
	m.RecordRequest(true, 200, 150*time.Millisecond, 2048, transport.ErrKindNone)
	m.RecordRequest(false, 0, 0, 0, transport.ErrKindTimeout)
	m.RecordRequest(false, 0, 0, 0, transport.ErrKindConnection)

	s := m.Snapshot()
	assert.Equal(t, int64(4), s.TotalRequests)
	assert.Equal(t, int64(2), s.SuccessfulRequests)
	assert.Equal(t, int64(2), s.FailedRequests)
	assert.Equal(t, int64(1), s.TimeoutErrors)
	assert.Equal(t, int64(1), s.ConnectionErrors)
	assert.Equal(t, int64(2), s.StatusCodes[200])
	assert.Equal(t, int64(3072), s.BytesDownloaded)
	assert.InDelta(t, 50.0, s.SuccessRate, 0.01)

	assert.Equal(t, 50*time.Millisecond, s.MinResponseTime)
	assert.Equal(t, 150*time.Millisecond, s.MaxResponseTime)
	assert.Equal(t, 100*time.Millisecond, s.AvgResponseTime)
}

func TestRecordDiscovery(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordDiscovery(false, "sql")
	m.RecordDiscovery(false, "sql")
	m.RecordDiscovery(true, "bak")
	m.RecordDiscovery(false, "")

	s := m.Snapshot()
	assert.Equal(t, int64(4), s.FilesFound)
	assert.Equal(t, int64(1), s.FalsePositives)
	assert.InDelta(t, 25.0, s.FalsePositiveRate, 0.01)
	assert.Equal(t, []string{"sql", "bak"}, s.ExtensionsFound)
}

func TestEmptySnapshot(t *testing.T) {
	t.Parallel()

	s := New().Snapshot()
	assert.Zero(t, s.TotalRequests)
	assert.Zero(t, s.SuccessRate)
	assert.Zero(t, s.FalsePositiveRate)
	assert.Zero(t, s.AvgResponseTime)
	assert.Empty(t, s.ExtensionsFound)
}

func TestFinalizeFixesDuration(t *testing.T) {
	t.Parallel()

	m := New()
	m.Finalize()
	d := m.Snapshot().Duration
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, d, m.Snapshot().Duration, "duration frozen after Finalize")
}

func TestConcurrentRecording(t *testing.T) {
	t.Parallel()

	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRequest(true, 200, time.Millisecond, 10, transport.ErrKindNone)
				m.RecordDiscovery(false, "zip")
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, int64(1000), s.TotalRequests)
	assert.Equal(t, int64(1000), s.FilesFound)
	assert.Equal(t, []string{"zip"}, s.ExtensionsFound)
}
