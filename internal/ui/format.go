package ui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/bamsammich/tally/internal/stats"
)

// FormatBytes renders a byte count in IEC units ("4 B", "2.0 KiB").
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatRate renders a read rate in the same units as FormatBytes.
// Negative and non-finite rates read as zero.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec <= 0 || math.IsNaN(bytesPerSec) || math.IsInf(bytesPerSec, 0) {
		return "0 B/s"
	}
	return FormatBytes(int64(bytesPerSec)) + "/s"
}

// FormatCount groups digits in threes: 48917 -> "48,917".
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	start := 0
	if n < 0 {
		start = 1
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	out = append(out, s[:start]...)
	digits := s[start:]
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return string(out)
}

// FormatDuration keeps a tenth of a second below one minute, since most
// batches finish well inside that.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Round(100*time.Millisecond).Seconds())
	}
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}
