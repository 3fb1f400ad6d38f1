package engine

import (
	"fmt"
	"io"

	"github.com/bamsammich/tally/internal/textio"
)

// Number copies every line of r to w, prefixing numbered lines with the
// line number right-aligned to f.Width and followed by f.Separator.
// NumberNonBlank leaves blank lines unprefixed and does not count them.
// Numbering starts at 1 on every call.
func Number(w io.Writer, r *textio.Reader, policy Numbering, f NumberFormat) error {
	var n int64
	for {
		line, ok := r.NextLine()
		if !ok {
			return nil
		}

		numbered := policy == NumberAll ||
			(policy == NumberNonBlank && line.Content() != "")
		if numbered {
			n++
			if _, err := fmt.Fprintf(w, "%*d%s", f.Width, n, f.Separator); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, line.Text); err != nil {
			return err
		}
	}
}
