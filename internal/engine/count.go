package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/bamsammich/tally/internal/textio"
)

// Metrics is a set of counters requested in count mode.
type Metrics uint8

const (
	MetricLines Metrics = 1 << iota
	MetricWords
	MetricBytes
	MetricChars
)

const (
	DefaultMetrics = MetricLines | MetricWords | MetricBytes
	MetricsAll     = MetricLines | MetricWords | MetricBytes | MetricChars
)

// Has reports whether every metric in m is requested.
func (s Metrics) Has(m Metrics) bool { return s&m == m }

func (s Metrics) String() string {
	var names []string
	for _, m := range metricOrder {
		if s.Has(m.metric) {
			names = append(names, m.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseMetrics maps names ("lines", "words", "bytes", "chars") to a set.
func ParseMetrics(names []string) (Metrics, error) {
	var s Metrics
	for _, name := range names {
		found := false
		for _, m := range metricOrder {
			if m.name == name {
				s |= m.metric
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, name)
		}
	}
	return s, nil
}

// Output column order.
var metricOrder = []struct {
	metric Metrics
	name   string
}{
	{MetricLines, "lines"},
	{MetricWords, "words"},
	{MetricBytes, "bytes"},
	{MetricChars, "chars"},
}

// FileCounts is the count-mode result for one source.
type FileCounts struct {
	Lines int64
	Words int64
	Bytes int64
	Chars int64
}

// Add returns the field-wise sum of c and o.
func (c FileCounts) Add(o FileCounts) FileCounts {
	return FileCounts{
		Lines: c.Lines + o.Lines,
		Words: c.Words + o.Words,
		Bytes: c.Bytes + o.Bytes,
		Chars: c.Chars + o.Chars,
	}
}

func (c FileCounts) get(m Metrics) int64 {
	switch m {
	case MetricLines:
		return c.Lines
	case MetricWords:
		return c.Words
	case MetricBytes:
		return c.Bytes
	case MetricChars:
		return c.Chars
	}
	return 0
}

// Count consumes r to the end. Lines and bytes are always counted; words
// and chars only when requested, since they need a pass over the text.
// Words are maximal runs of non-whitespace, so "a  b" is two words. Bytes
// are raw input bytes; chars are runes after lossy decoding, which keeps
// Chars <= Bytes.
func Count(r *textio.Reader, metrics Metrics) FileCounts {
	var c FileCounts
	words := metrics.Has(MetricWords)
	chars := metrics.Has(MetricChars)
	for {
		line, ok := r.NextLine()
		if !ok {
			return c
		}
		c.Lines++
		c.Bytes += line.Size
		if words {
			c.Words += int64(len(strings.Fields(line.Text)))
		}
		if chars {
			c.Chars += line.Runes()
		}
	}
}

// writeCounts prints one count row: a %8d column per requested metric,
// then the label unless it is empty.
func writeCounts(w io.Writer, c FileCounts, metrics Metrics, label string) error {
	var b strings.Builder
	for _, m := range metricOrder {
		if metrics.Has(m.metric) {
			fmt.Fprintf(&b, "%8d", c.get(m.metric))
		}
	}
	if label != "" {
		b.WriteByte(' ')
		b.WriteString(label)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
