package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/bamsammich/tally/internal/stats"
)

const progressInterval = 5 * time.Second

// plainPresenter writes one line per finished source to errW and, on a
// terminal, a periodic progress line for long batches.
type plainPresenter struct {
	errW     io.Writer
	stats    stats.ReadTicker
	progress bool
	summary  bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	var tick <-chan time.Time
	if p.progress {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		tick = ticker.C
	}
	lastProgress := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-tick:
			p.stats.Tick()
			if time.Since(lastProgress) >= progressInterval {
				p.printProgress()
				lastProgress = time.Now()
			}
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case SourceCompleted:
		fmt.Fprintf(p.errW, "%s  %s  %s lines\n",
			ev.Source, FormatBytes(ev.Bytes), FormatCount(ev.Lines))
	case SourceFailed:
		// The engine already wrote the error line for this source.
	case BatchStarted, SourceStarted, BatchComplete:
		// silent in plain mode
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	fmt.Fprintf(p.errW, "progress: %s/%s sources %s read %s\n",
		FormatCount(snap.SourcesDone+snap.SourcesFailed),
		FormatCount(snap.SourcesTotal),
		FormatBytes(snap.BytesRead),
		FormatRate(p.stats.RollingSpeed(5)),
	)
}

func (p *plainPresenter) Summary() string {
	if !p.summary {
		return ""
	}
	return completionSummary(p.stats.Snapshot())
}
