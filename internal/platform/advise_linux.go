//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

//nolint:gosec // G115: fd values are small non-negative integers
func advise(f *os.File, p AccessPattern) error {
	advice := unix.FADV_NORMAL
	if p == Sequential {
		advice = unix.FADV_SEQUENTIAL
	}
	return unix.Fadvise(int(f.Fd()), 0, 0, advice)
}
