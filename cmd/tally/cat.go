package main

import (
	"github.com/spf13/cobra"

	"github.com/bamsammich/tally/internal/engine"
)

func (a *app) catCmd() *cobra.Command {
	var number, numberNonBlank bool

	cmd := &cobra.Command{
		Use:   "cat [flags] [FILE...]",
		Short: "Concatenate sources to stdout, optionally numbering lines",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbering := engine.NumberNone
			flags := cmd.Flags()
			switch {
			case number:
				numbering = engine.NumberAll
			case numberNonBlank:
				numbering = engine.NumberNonBlank
			case !flags.Changed("number") && !flags.Changed("number-nonblank") && a.cfg.Cat.Number != nil:
				n, err := engine.ParseNumbering(*a.cfg.Cat.Number)
				if err != nil {
					return err
				}
				numbering = n
			}

			format := engine.DefaultNumberFormat
			if a.cfg.Cat.Width != nil {
				format.Width = *a.cfg.Cat.Width
			}
			if a.cfg.Cat.Separator != nil {
				format.Separator = *a.cfg.Cat.Separator
			}

			return a.runBatch(engine.Config{
				Sources:      args,
				Mode:         engine.ModeCopy,
				Numbering:    numbering,
				NumberFormat: format,
			})
		},
	}

	cmd.Flags().BoolVarP(&number, "number", "n", false, "number all output lines")
	cmd.Flags().BoolVarP(&numberNonBlank, "number-nonblank", "b", false, "number nonblank output lines")
	cmd.MarkFlagsMutuallyExclusive("number", "number-nonblank")
	return cmd
}
