package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bamsammich/tally/internal/event"
	"github.com/bamsammich/tally/internal/source"
	"github.com/bamsammich/tally/internal/stats"
	"github.com/bamsammich/tally/internal/textio"
)

// TotalLabel labels the aggregate row in count mode.
const TotalLabel = "total"

// SourceCounts pairs a source with its counts.
type SourceCounts struct {
	Source string
	FileCounts
}

// Result is the outcome of a batch. Sources that fail to open do not set
// Err; they are reported on the error writer and listed in Failed.
type Result struct {
	Counts []SourceCounts // count mode only, in source order
	Total  FileCounts
	Failed []string
	Stats  stats.Snapshot
	Err    error
}

// Run processes every configured source in order, blocking until done.
// Err is set only for an invalid config, a failed write to Out, or ctx
// cancellation (checked between sources).
func Run(ctx context.Context, cfg Config) Result {
	if err := cfg.Validate(); err != nil {
		return Result{Err: err}
	}
	// Only a defaulted stdin goes unnamed in count rows; "-" given
	// explicitly is labelled like any other source.
	unnamed := len(cfg.Sources) == 0
	cfg = cfg.withDefaults()

	b := &batch{
		cfg:          cfg,
		unnamedStdin: unnamed,
		out: bufio.NewWriter(&statsWriter{w: cfg.Out, stats: cfg.Stats}),
	}
	cfg.Stats.SetSourcesTotal(int64(len(cfg.Sources)))
	b.emit(event.Event{Type: event.BatchStarted, Total: len(cfg.Sources)})

	var err error
	for i, id := range cfg.Sources {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = b.process(ctx, i, id); err != nil {
			break
		}
	}

	if err == nil && cfg.Mode == ModeCount && len(cfg.Sources) > 1 {
		err = writeCounts(b.out, b.result.Total, cfg.Metrics, TotalLabel)
	}
	if flushErr := b.out.Flush(); err == nil {
		err = flushErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		err = fmt.Errorf("write output: %w", err)
	}

	snap := cfg.Stats.Snapshot()
	b.emit(event.Event{
		Type:  event.BatchComplete,
		Bytes: snap.BytesRead,
		Lines: snap.LinesRead,
		Error: err,
	})

	b.result.Stats = snap
	b.result.Err = err
	return b.result
}

type batch struct {
	cfg     Config
	out     *bufio.Writer
	result  Result
	emitted bool // truncate mode: something has been written already

	unnamedStdin bool
}

// process runs one source through Opening -> {Failed | Opened} ->
// Processing -> Done. Only output errors are returned.
func (b *batch) process(ctx context.Context, index int, id string) error {
	b.emit(event.Event{Type: event.SourceStarted, Source: id, Index: index})

	stream, err := b.cfg.Resolver.Open(ctx, id)
	if err != nil {
		return b.fail(index, id, err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			slog.Debug("close source", "source", id, "error", cerr)
		}
	}()

	r := textio.NewReader(stream.Reader)
	if err := b.consume(r, id); err != nil {
		return err
	}
	if rerr := r.Err(); rerr != nil {
		slog.Warn("read stopped early", "source", id, "error", rerr)
	}

	b.cfg.Stats.AddSourcesDone(1)
	b.cfg.Stats.AddBytesRead(r.BytesRead())
	b.cfg.Stats.AddLinesRead(r.LinesRead())
	b.emit(event.Event{
		Type:   event.SourceCompleted,
		Source: id,
		Index:  index,
		Bytes:  r.BytesRead(),
		Lines:  r.LinesRead(),
	})
	slog.Debug("source done", "source", id, "mode", b.cfg.Mode.String(), "bytes", r.BytesRead())

	// Flush per source so stdout and stderr interleave in source order.
	return b.out.Flush()
}

func (b *batch) consume(r *textio.Reader, id string) error {
	switch b.cfg.Mode {
	case ModeCopy:
		return Number(b.out, r, b.cfg.Numbering, b.cfg.NumberFormat)
	case ModeTruncate:
		if len(b.cfg.Sources) > 1 {
			if err := b.writeHeader(id); err != nil {
				return err
			}
		}
		b.emitted = true
		return Head(b.out, r, b.cfg.Limit)
	case ModeCount:
		c := Count(r, b.cfg.Metrics)
		b.result.Counts = append(b.result.Counts, SourceCounts{Source: id, FileCounts: c})
		b.result.Total = b.result.Total.Add(c)
		label := id
		if b.unnamedStdin {
			label = ""
		}
		return writeCounts(b.out, c, b.cfg.Metrics, label)
	}
	return nil
}

func (b *batch) writeHeader(id string) error {
	sep := ""
	if b.emitted {
		sep = "\n"
	}
	_, err := fmt.Fprintf(b.out, "%s==> %s <==\n", sep, id)
	return err
}

// fail reports an open failure on the error writer and moves on.
func (b *batch) fail(index int, id string, err error) error {
	var openErr *source.OpenError
	if !errors.As(err, &openErr) {
		err = &source.OpenError{Source: id, Err: err}
	}

	// Keep stdout ahead of the error line.
	if ferr := b.out.Flush(); ferr != nil {
		return ferr
	}
	fmt.Fprintln(b.cfg.ErrOut, err.Error()) //nolint:errcheck // nowhere left to report it

	b.result.Failed = append(b.result.Failed, id)
	b.cfg.Stats.AddSourcesFailed(1)
	b.emit(event.Event{Type: event.SourceFailed, Source: id, Index: index, Error: err})
	return nil
}

func (b *batch) emit(ev event.Event) {
	if b.cfg.Events == nil {
		return
	}
	ev.Timestamp = time.Now()
	b.cfg.Events <- ev
}

// statsWriter counts bytes written to the batch output.
type statsWriter struct {
	w     io.Writer
	stats *stats.Collector
}

func (sw *statsWriter) Write(p []byte) (int, error) {
	n, err := sw.w.Write(p)
	sw.stats.AddBytesWritten(int64(n))
	return n, err
}
