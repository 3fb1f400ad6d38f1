package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Reader is the read-only view presenters use.
type Reader interface {
	Snapshot() Snapshot
}

// ReadTicker is a Reader that can also sample throughput.
type ReadTicker interface {
	Reader
	Tick()
	RollingSpeed(seconds int) float64
}

// Collector tracks batch statistics using lock-free atomic counters.
// The engine writes; presenters only read and Tick.
type Collector struct {
	sourcesTotal  atomic.Int64
	sourcesDone   atomic.Int64
	sourcesFailed atomic.Int64
	bytesRead     atomic.Int64
	linesRead     atomic.Int64
	bytesWritten  atomic.Int64
	startTime     time.Time

	// Ring buffer, written only by Tick.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes read per tick
	ringIdx    int
	ringCount  int
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	SourcesTotal  int64
	SourcesDone   int64
	SourcesFailed int64
	BytesRead     int64
	LinesRead     int64
	BytesWritten  int64
	Elapsed       time.Duration
}

func (c *Collector) SetSourcesTotal(n int64)  { c.sourcesTotal.Store(n) }
func (c *Collector) AddSourcesDone(n int64)   { c.sourcesDone.Add(n) }
func (c *Collector) AddSourcesFailed(n int64) { c.sourcesFailed.Add(n) }
func (c *Collector) AddBytesRead(n int64)     { c.bytesRead.Add(n) }
func (c *Collector) AddLinesRead(n int64)     { c.linesRead.Add(n) }
func (c *Collector) AddBytesWritten(n int64)  { c.bytesWritten.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		SourcesTotal:  c.sourcesTotal.Load(),
		SourcesDone:   c.sourcesDone.Load(),
		SourcesFailed: c.sourcesFailed.Load(),
		BytesRead:     c.bytesRead.Load(),
		LinesRead:     c.linesRead.Load(),
		BytesWritten:  c.bytesWritten.Load(),
		Elapsed:       c.Elapsed(),
	}
}

// Tick records the bytes read since the previous Tick. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	current := c.bytesRead.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = current - c.lastBytes
	c.lastBytes = current
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(seconds, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"sources=%d done=%d failed=%d read=%d lines=%d written=%d",
		s.SourcesTotal, s.SourcesDone, s.SourcesFailed,
		s.BytesRead, s.LinesRead, s.BytesWritten,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
