package engine

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FileCounts
	}{
		{
			name:  "empty",
			input: "",
			want:  FileCounts{},
		},
		{
			name:  "quote with crlf",
			input: "I don't want the world. I just want your half.\r\n",
			want:  FileCounts{Lines: 1, Words: 10, Bytes: 48, Chars: 48},
		},
		{
			name:  "trailing fragment",
			input: "one\ntwo",
			want:  FileCounts{Lines: 2, Words: 2, Bytes: 7, Chars: 7},
		},
		{
			name:  "consecutive spaces collapse",
			input: "a  b\n",
			want:  FileCounts{Lines: 1, Words: 2, Bytes: 5, Chars: 5},
		},
		{
			name:  "tabs and leading space",
			input: "  a\tb \n\n",
			want:  FileCounts{Lines: 2, Words: 2, Bytes: 8, Chars: 8},
		},
		{
			name:  "multibyte",
			input: "héllo wörld ✓\n",
			want:  FileCounts{Lines: 1, Words: 3, Bytes: 18, Chars: 14},
		},
		{
			name:  "invalid bytes",
			input: "a\xffb\n",
			want:  FileCounts{Lines: 1, Words: 1, Bytes: 4, Chars: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(reader(tt.input), MetricsAll)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Count() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCountLineTerminators(t *testing.T) {
	tests := []struct {
		input string
		lines int64
	}{
		{"a\nb\nc\n", 3},
		{"a\nb\nc", 3},
		{"\n\n\n", 3},
		{"x", 1},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k := int64(strings.Count(tt.input, "\n"))
			got := Count(reader(tt.input), MetricLines)
			assert.Equal(t, tt.lines, got.Lines)
			if strings.HasSuffix(tt.input, "\n") || tt.input == "" {
				assert.Equal(t, k, got.Lines)
			} else {
				assert.Equal(t, k+1, got.Lines)
			}
		})
	}
}

func TestCountBytesAtLeastChars(t *testing.T) {
	inputs := []string{
		"plain ascii\n",
		"日本語のテキスト\n",
		"mixed é and e\n",
		"\xc3\x28 broken\n",
	}
	for _, in := range inputs {
		c := Count(reader(in), MetricsAll)
		assert.GreaterOrEqual(t, c.Bytes, c.Chars, in)
	}

	ascii := Count(reader("plain ascii\n"), MetricsAll)
	assert.Equal(t, ascii.Bytes, ascii.Chars)

	multi := Count(reader("日本語\n"), MetricsAll)
	assert.Greater(t, multi.Bytes, multi.Chars)
}

func TestCountSkipsUnrequestedMetrics(t *testing.T) {
	c := Count(reader("a b c\n"), MetricLines|MetricBytes)
	assert.Equal(t, FileCounts{Lines: 1, Bytes: 6}, c)
}

func TestFileCountsAdd(t *testing.T) {
	a := FileCounts{Lines: 1, Words: 2, Bytes: 3, Chars: 4}
	b := FileCounts{Lines: 10, Words: 20, Bytes: 30, Chars: 40}
	assert.Equal(t, FileCounts{Lines: 11, Words: 22, Bytes: 33, Chars: 44}, a.Add(b))
}

func TestParseMetrics(t *testing.T) {
	m, err := ParseMetrics([]string{"lines", "chars"})
	require.NoError(t, err)
	assert.True(t, m.Has(MetricLines))
	assert.True(t, m.Has(MetricChars))
	assert.False(t, m.Has(MetricWords))
	assert.Equal(t, "lines,chars", m.String())

	m, err = ParseMetrics(nil)
	require.NoError(t, err)
	assert.Zero(t, m)

	_, err = ParseMetrics([]string{"paragraphs"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWriteCounts(t *testing.T) {
	var b strings.Builder
	c := FileCounts{Lines: 1, Words: 10, Bytes: 48, Chars: 47}

	require.NoError(t, writeCounts(&b, c, DefaultMetrics, "file.txt"))
	require.NoError(t, writeCounts(&b, c, MetricsAll, ""))
	require.NoError(t, writeCounts(&b, c, MetricChars, "x"))

	want := "       1      10      48 file.txt\n" +
		"       1      10      48      47\n" +
		"      47 x\n"
	assert.Equal(t, want, b.String())
}
