package ui

import (
	"io"

	"github.com/bamsammich/tally/internal/stats"
)

// Presenter consumes engine events and reports progress on stderr. It
// never writes to stdout, which belongs to the engine's output.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line, or "" when none was requested.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	ErrWriter io.Writer
	Stats     stats.ReadTicker
	IsTTY     bool // stderr is a terminal: enables periodic progress lines
	Verbose   bool // one line per source
	Summary   bool // completion summary after the batch
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory returns the Presenter interface
func NewPresenter(cfg Config) Presenter {
	if !cfg.Verbose {
		return &quietPresenter{stats: cfg.Stats, summary: cfg.Summary}
	}
	return &plainPresenter{
		errW:     cfg.ErrWriter,
		stats:    cfg.Stats,
		progress: cfg.IsTTY,
		summary:  cfg.Summary,
	}
}
