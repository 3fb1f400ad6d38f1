package ui

import (
	"fmt"

	"github.com/bamsammich/tally/internal/stats"
)

// completionSummary builds a final summary line from a snapshot.
// Format: done ✓  sources 3  read 2.1 MiB  lines 48,917  time 0.4s  errors 0
func completionSummary(snap stats.Snapshot) string {
	icon := "✓"
	if snap.SourcesFailed > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  sources %s  read %s  lines %s  time %s  errors %d",
		icon,
		FormatCount(snap.SourcesDone),
		FormatBytes(snap.BytesRead),
		FormatCount(snap.LinesRead),
		FormatDuration(snap.Elapsed),
		snap.SourcesFailed,
	)
}
