package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.AddSourcesDone(1)
				c.AddSourcesFailed(1)
				c.AddBytesRead(256)
				c.AddLinesRead(2)
				c.AddBytesWritten(128)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.SourcesDone)
	assert.Equal(t, expected, s.SourcesFailed)
	assert.Equal(t, expected*256, s.BytesRead)
	assert.Equal(t, expected*2, s.LinesRead)
	assert.Equal(t, expected*128, s.BytesWritten)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		SourcesTotal:  3,
		SourcesDone:   2,
		SourcesFailed: 1,
		BytesRead:     4096,
		LinesRead:     40,
		BytesWritten:  1024,
	}
	expected := "sources=3 done=2 failed=1 read=4096 lines=40 written=1024"
	assert.Equal(t, expected, s.String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestSetSourcesTotal(t *testing.T) {
	c := NewCollector()
	c.SetSourcesTotal(7)
	assert.Equal(t, int64(7), c.Snapshot().SourcesTotal)
}

func TestRollingSpeed(t *testing.T) {
	tests := []struct {
		name   string
		reads  []int64 // bytes read before each Tick
		window int
		want   float64
	}{
		{"no samples", nil, 5, 0},
		{"full window", []int64{1000, 1000, 1000, 1000, 1000}, 5, 1000},
		{"window larger than history", []int64{500, 1500}, 10, 1000},
		{"only the newest samples count", []int64{9000, 10, 20}, 2, 15},
		{"zero window", []int64{100}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			for _, n := range tt.reads {
				c.AddBytesRead(n)
				c.Tick()
			}
			assert.InDelta(t, tt.want, c.RollingSpeed(tt.window), 0.01)
		})
	}
}

func TestRollingSpeedAfterWraparound(t *testing.T) {
	c := NewCollector()
	for i := range ringSize + 10 {
		c.AddBytesRead(int64(i % 2 * 20)) // alternates 0, 20
		c.Tick()
	}
	assert.InDelta(t, 10.0, c.RollingSpeed(ringSize), 0.01)
}

func TestSnapshotIncludesElapsed(t *testing.T) {
	c := NewCollector()
	time.Sleep(10 * time.Millisecond)
	assert.Greater(t, c.Snapshot().Elapsed, time.Duration(0))
}
