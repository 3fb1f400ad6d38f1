package textio

import (
	"strings"
	"unicode/utf8"
)

// DecodeLossy decodes b as UTF-8, substituting U+FFFD for every byte that
// does not begin a valid encoding. Each invalid byte yields exactly one
// replacement rune, so the decoded rune count always equals
// utf8.RuneCount(b) and never exceeds len(b).
func DecodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		if r == utf8.RuneError && n == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(b[:n])
		}
		b = b[n:]
	}
	return sb.String()
}
