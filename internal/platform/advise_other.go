//go:build !linux

package platform

import "os"

// advise is a no-op outside Linux (posix_fadvise is not portable).
func advise(_ *os.File, _ AccessPattern) error { return nil }
