// Package textio reads a byte stream line by line or as raw bytes.
package textio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// Line is one line of input, terminator included when present.
type Line struct {
	Text string // decoded with DecodeLossy
	Size int64  // raw byte length before decoding
}

// Content returns the line without its "\n" or "\r\n" terminator.
func (l Line) Content() string {
	s := strings.TrimSuffix(l.Text, "\n")
	return strings.TrimSuffix(s, "\r")
}

// Runes returns the decoded character count, terminator included.
func (l Line) Runes() int64 {
	return int64(utf8.RuneCountInString(l.Text))
}

// Reader is an incremental reader over one buffered stream. Read errors
// end the stream; the first one other than io.EOF is kept for Err.
type Reader struct {
	br    *bufio.Reader
	err   error
	done  bool
	bytes int64
	lines int64
}

// NewReader wraps r. If r already is a *bufio.Reader it is used directly,
// so several Readers over the same buffered stream see a consistent
// position.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{br: br}
}

// NextLine returns the next line and true, or a zero Line and false once
// the stream is exhausted. A final fragment without "\n" is still
// returned. Nothing beyond the terminator is consumed from the stream.
func (r *Reader) NextLine() (Line, bool) {
	if r.done {
		return Line{}, false
	}
	raw, err := r.br.ReadBytes('\n')
	if err != nil {
		r.finish(err)
		if len(raw) == 0 {
			return Line{}, false
		}
	}
	r.bytes += int64(len(raw))
	r.lines++
	return Line{Text: DecodeLossy(raw), Size: int64(len(raw))}, true
}

// ReadBytes reads up to n raw bytes. Fewer are returned only when the
// stream ends first.
func (r *Reader) ReadBytes(n int64) []byte {
	if r.done || n <= 0 {
		return nil
	}
	var buf bytes.Buffer
	if n <= int64(r.br.Size()) {
		buf.Grow(int(n))
	}
	if _, err := io.CopyN(&buf, r.br, n); err != nil {
		r.finish(err)
	}
	r.bytes += int64(buf.Len())
	return buf.Bytes()
}

// BytesRead returns the raw bytes consumed so far.
func (r *Reader) BytesRead() int64 { return r.bytes }

// LinesRead returns the number of lines returned by NextLine so far.
func (r *Reader) LinesRead() int64 { return r.lines }

// Err returns the first read error other than io.EOF.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) finish(err error) {
	r.done = true
	if !errors.Is(err, io.EOF) && r.err == nil {
		r.err = err
	}
}
