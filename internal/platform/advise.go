// Package platform holds OS-specific hints used when opening sources.
package platform

import "os"

// AccessPattern describes how a file is about to be read.
type AccessPattern int

const (
	Normal AccessPattern = iota
	Sequential
)

func (p AccessPattern) String() string {
	switch p {
	case Normal:
		return "normal"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Advise tells the kernel how f will be read. It is advisory only: the
// returned error is informational and callers are free to ignore it.
func Advise(f *os.File, p AccessPattern) error {
	if f == nil {
		return nil
	}
	return advise(f, p)
}
