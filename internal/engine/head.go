package engine

import (
	"io"

	"github.com/bamsammich/tally/internal/textio"
)

// Head copies the first limit.Lines lines, or the first limit.Bytes raw
// bytes, of r to w. Byte mode writes the bytes undecoded so exactly
// limit.Bytes bytes come out when available, even mid-character. Running
// out of input early is not an error; only write failures are returned.
func Head(w io.Writer, r *textio.Reader, limit Limit) error {
	if limit.Bytes > 0 {
		_, err := w.Write(r.ReadBytes(limit.Bytes))
		return err
	}

	for range limit.Lines {
		line, ok := r.NextLine()
		if !ok {
			return nil
		}
		if _, err := io.WriteString(w, line.Text); err != nil {
			return err
		}
	}
	return nil
}
