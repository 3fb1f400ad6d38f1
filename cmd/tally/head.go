package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bamsammich/tally/internal/engine"
)

func (a *app) headCmd() *cobra.Command {
	var (
		lines      int64
		bytesLimit = sizeFlag{what: "byte count"}
	)

	cmd := &cobra.Command{
		Use:   "head [flags] [FILE...]",
		Short: "Print the first lines or bytes of each source",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var limit engine.Limit
			switch {
			case bytesLimit.n > 0:
				limit.Bytes = bytesLimit.n
			default:
				if !cmd.Flags().Changed("lines") && a.cfg.Head.Lines != nil {
					lines = *a.cfg.Head.Lines
				}
				if lines <= 0 {
					return fmt.Errorf("illegal line count -- %d", lines)
				}
				limit.Lines = lines
			}

			return a.runBatch(engine.Config{
				Sources: args,
				Mode:    engine.ModeTruncate,
				Limit:   limit,
			})
		},
	}

	cmd.Flags().Int64VarP(&lines, "lines", "n", engine.DefaultLineLimit, "print the first N lines")
	cmd.Flags().VarP(&bytesLimit, "bytes", "c", "print the first SIZE bytes (e.g. 100, 4K)")
	cmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	return cmd
}
