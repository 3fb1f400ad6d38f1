package main

import (
	"github.com/spf13/cobra"

	"github.com/bamsammich/tally/internal/engine"
)

func (a *app) wcCmd() *cobra.Command {
	var lines, words, bytes, chars bool

	cmd := &cobra.Command{
		Use:   "wc [flags] [FILE...]",
		Short: "Print line, word, byte and character counts",
		Long: "Print line, word, byte and character counts for each source, and a total " +
			"when more than one source is given. Columns appear in the order lines, " +
			"words, bytes, chars. Words are runs of non-whitespace.",
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			var metrics engine.Metrics
			for _, m := range []struct {
				set    bool
				metric engine.Metrics
			}{
				{lines, engine.MetricLines},
				{words, engine.MetricWords},
				{bytes, engine.MetricBytes},
				{chars, engine.MetricChars},
			} {
				if m.set {
					metrics |= m.metric
				}
			}
			if metrics == 0 && len(a.cfg.WC.Metrics) > 0 {
				m, err := engine.ParseMetrics(a.cfg.WC.Metrics)
				if err != nil {
					return err
				}
				metrics = m
			}

			return a.runBatch(engine.Config{
				Sources: args,
				Mode:    engine.ModeCount,
				Metrics: metrics,
			})
		},
	}

	cmd.Flags().BoolVarP(&lines, "lines", "l", false, "print the newline counts")
	cmd.Flags().BoolVarP(&words, "words", "w", false, "print the word counts")
	cmd.Flags().BoolVarP(&bytes, "bytes", "c", false, "print the byte counts")
	cmd.Flags().BoolVarP(&chars, "chars", "m", false, "print the character counts")
	return cmd
}
