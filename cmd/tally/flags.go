package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bamsammich/tally/internal/size"
)

// sizeFlag is a pflag.Value holding a positive byte size such as 512,
// 4K or 1.5MiB. Parsing happens at Set time so bad values fail as flag
// errors, before any source is opened.
type sizeFlag struct {
	n    int64
	raw  string
	what string // noun used in error messages
}

var _ pflag.Value = (*sizeFlag)(nil)

func (f *sizeFlag) String() string { return f.raw }
func (*sizeFlag) Type() string     { return "SIZE" }

func (f *sizeFlag) Set(val string) error {
	n, err := size.ParsePositive(val)
	if err != nil {
		return fmt.Errorf("illegal %s -- %s", f.what, val)
	}
	f.n, f.raw = n, val
	return nil
}
