package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bamsammich/tally/internal/event"
	"github.com/bamsammich/tally/internal/source"
	"github.com/bamsammich/tally/internal/stats"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultLineLimit is the truncation limit when neither lines nor bytes are set.
const DefaultLineLimit = 10

// Mode selects what a batch produces.
type Mode int

const (
	ModeCopy     Mode = iota + 1 // cat
	ModeTruncate                 // head
	ModeCount                    // wc
)

func (m Mode) String() string {
	switch m {
	case ModeCopy:
		return "copy"
	case ModeTruncate:
		return "truncate"
	case ModeCount:
		return "count"
	default:
		return "unknown"
	}
}

// Numbering controls line numbering in copy mode.
type Numbering int

const (
	NumberNone Numbering = iota
	NumberAll
	NumberNonBlank
)

func (n Numbering) String() string {
	switch n {
	case NumberNone:
		return "none"
	case NumberAll:
		return "all"
	case NumberNonBlank:
		return "nonblank"
	default:
		return "unknown"
	}
}

// ParseNumbering maps "none", "all" and "nonblank" to a Numbering.
func ParseNumbering(s string) (Numbering, error) {
	switch s {
	case "none", "":
		return NumberNone, nil
	case "all":
		return NumberAll, nil
	case "nonblank":
		return NumberNonBlank, nil
	default:
		return NumberNone, fmt.Errorf("%w: unknown numbering %q", ErrInvalidConfig, s)
	}
}

// NumberFormat is the prefix layout for numbered lines.
type NumberFormat struct {
	Width     int
	Separator string
}

// DefaultNumberFormat right-aligns numbers in six columns followed by a tab.
var DefaultNumberFormat = NumberFormat{Width: 6, Separator: "\t"}

// Limit bounds truncation. At most one field may be set.
type Limit struct {
	Lines int64
	Bytes int64
}

// Config describes one batch. It is treated as read-only by Run.
type Config struct {
	Sources []string
	Mode    Mode

	// Copy mode.
	Numbering    Numbering
	NumberFormat NumberFormat

	// Truncate mode.
	Limit Limit

	// Count mode. Zero means DefaultMetrics.
	Metrics Metrics

	Resolver Opener
	Out      io.Writer
	ErrOut   io.Writer
	Events   chan<- event.Event
	Stats    *stats.Collector
}

// Opener resolves a source identifier into a stream.
type Opener interface {
	Open(ctx context.Context, id string) (*source.Stream, error)
}

// Validate reports contradictory or out-of-range parameters.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeCopy:
		if c.Numbering < NumberNone || c.Numbering > NumberNonBlank {
			return fmt.Errorf("%w: unknown numbering %d", ErrInvalidConfig, c.Numbering)
		}
		if c.NumberFormat.Width < 0 {
			return fmt.Errorf("%w: negative number width", ErrInvalidConfig)
		}
	case ModeTruncate:
		if c.Limit.Lines < 0 || c.Limit.Bytes < 0 {
			return fmt.Errorf("%w: limits must be positive", ErrInvalidConfig)
		}
		if c.Limit.Lines > 0 && c.Limit.Bytes > 0 {
			return fmt.Errorf("%w: line and byte limits are mutually exclusive", ErrInvalidConfig)
		}
	case ModeCount:
		if c.Metrics&^MetricsAll != 0 {
			return fmt.Errorf("%w: unknown metrics %#x", ErrInvalidConfig, uint8(c.Metrics))
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if len(c.Sources) == 0 {
		c.Sources = []string{source.Stdin}
	}
	if c.NumberFormat == (NumberFormat{}) {
		c.NumberFormat = DefaultNumberFormat
	}
	if c.Limit == (Limit{}) {
		c.Limit.Lines = DefaultLineLimit
	}
	if c.Metrics == 0 {
		c.Metrics = DefaultMetrics
	}
	if c.Resolver == nil {
		c.Resolver = source.NewResolver(source.Options{})
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.ErrOut == nil {
		c.ErrOut = os.Stderr
	}
	if c.Stats == nil {
		c.Stats = stats.NewCollector()
	}
	return c
}
