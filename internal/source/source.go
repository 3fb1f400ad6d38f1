// Package source resolves source identifiers ("-" or a path) into
// buffered byte streams.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/time/rate"

	"github.com/bamsammich/tally/internal/platform"
)

// Stdin is the identifier that selects standard input.
const Stdin = "-"

const bufferSize = 64 * 1024

// ErrIsDirectory is the cause of an OpenError for a directory path.
var ErrIsDirectory = errors.New("is a directory")

// OpenError reports that a source could not be resolved to a stream.
type OpenError struct {
	Source string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Stream is an opened source. Reads go through a buffered reader; Close
// releases the underlying file (standard input is never closed).
type Stream struct {
	Source string
	*bufio.Reader
	closers []io.Closer
}

// Close releases everything the stream holds, innermost last.
func (s *Stream) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Options configures a Resolver.
type Options struct {
	// Stdin backs the "-" source. Defaults to os.Stdin.
	Stdin io.Reader
	// Decompress enables transparent .gz/.zst decoding by extension.
	Decompress bool
	// BWLimit caps read throughput in bytes/sec across all sources; 0 disables it.
	BWLimit int64
}

// Resolver turns source identifiers into Streams.
type Resolver struct {
	opts    Options
	limiter *rate.Limiter

	stdinOnce sync.Once
	stdin     *bufio.Reader
}

// NewResolver creates a Resolver.
func NewResolver(opts Options) *Resolver {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	r := &Resolver{opts: opts}
	if opts.BWLimit > 0 {
		r.limiter = NewBWLimiter(opts.BWLimit)
	}
	return r
}

// Open resolves id. "-" never fails: standard input is wrapped once and
// every later "-" shares that reader, so consumed bytes stay consumed.
// Any failure for a path is returned as *OpenError.
func (r *Resolver) Open(ctx context.Context, id string) (*Stream, error) {
	if id == Stdin {
		return &Stream{Source: id, Reader: r.stdinReader(ctx)}, nil
	}

	f, err := os.Open(id)
	if err != nil {
		return nil, &OpenError{Source: id, Err: unwrapPathError(err)}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Source: id, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		f.Close()
		return nil, &OpenError{Source: id, Err: ErrIsDirectory}
	}

	if err := platform.Advise(f, platform.Sequential); err != nil {
		slog.Debug("fadvise failed", "source", id, "error", err)
	}

	s := &Stream{Source: id, closers: []io.Closer{f}}
	var rd io.Reader = f
	if r.opts.Decompress {
		dec, err := newDecoder(id, rd)
		if err != nil {
			s.Close()
			return nil, &OpenError{Source: id, Err: err}
		}
		if dec != nil {
			rd = dec
			s.closers = append(s.closers, dec)
		}
	}
	s.Reader = bufio.NewReaderSize(r.throttle(ctx, rd), bufferSize)
	return s, nil
}

func (r *Resolver) stdinReader(ctx context.Context) *bufio.Reader {
	r.stdinOnce.Do(func() {
		rd := r.opts.Stdin
		if r.opts.Decompress {
			dec, err := sniffDecoder(rd)
			if err != nil {
				slog.Warn("stdin decompression disabled", "error", err)
			}
			rd = dec
		}
		r.stdin = bufio.NewReaderSize(r.throttle(ctx, rd), bufferSize)
	})
	return r.stdin
}

func (r *Resolver) throttle(ctx context.Context, rd io.Reader) io.Reader {
	if r.limiter == nil {
		return rd
	}
	return newRateLimitedReader(ctx, rd, r.limiter)
}

// unwrapPathError strips the *fs.PathError wrapper: OpenError already
// names the source, so only the cause is kept.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
