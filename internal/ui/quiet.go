package ui

import "github.com/bamsammich/tally/internal/stats"

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats   stats.Reader
	summary bool
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for range events {
		// Counters live on the collector; nothing to do per event.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	if !p.summary {
		return ""
	}
	return completionSummary(p.stats.Snapshot())
}
