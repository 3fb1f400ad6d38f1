package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bamsammich/tally/internal/config"
	"github.com/bamsammich/tally/internal/engine"
	"github.com/bamsammich/tally/internal/event"
	"github.com/bamsammich/tally/internal/source"
	"github.com/bamsammich/tally/internal/stats"
	"github.com/bamsammich/tally/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app holds the state shared by every subcommand: standard streams,
// persistent flags and the loaded config file.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg config.Config

	decompress bool
	bwLimit    sizeFlag
	verbose    bool
	debug      bool
	summary    bool
	logFile    string

	closers []io.Closer
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	a.bwLimit.what = "bandwidth limit"
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Copy, truncate and count text streams",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate("tally {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.decompress, "decompress", "z", false, "decompress .gz and .zst sources (and compressed stdin)")
	pf.Var(&a.bwLimit, "bwlimit", "limit read throughput (e.g. 10M, 512K)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "report each source on stderr")
	pf.BoolVar(&a.debug, "debug", false, "debug logging")
	pf.BoolVar(&a.summary, "summary", false, "print a summary line on stderr when done")
	pf.StringVar(&a.logFile, "log", "", "write structured JSON log to FILE")

	root.AddCommand(a.catCmd(), a.headCmd(), a.wcCmd(), a.docsCmd())
	return root
}

// setup loads the config file, applies its [input] defaults and
// configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("decompress") && cfg.Input.Decompress != nil {
		a.decompress = *cfg.Input.Decompress
	}
	if !flags.Changed("bwlimit") && cfg.Input.BWLimit != nil {
		if err := a.bwLimit.Set(*cfg.Input.BWLimit); err != nil {
			return fmt.Errorf("config input.bwlimit: %w", err)
		}
	}

	logLevel := slog.LevelWarn
	if a.debug {
		logLevel = slog.LevelDebug
	} else if a.verbose {
		logLevel = slog.LevelInfo
	}
	textHandler := slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: logLevel})
	var logHandler slog.Handler = textHandler
	if a.logFile != "" {
		lf, err := os.Create(a.logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, lf)
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	logger := slog.New(logHandler).With("run", uuid.NewString())
	slog.SetDefault(logger)
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		c.Close()
	}
}

// runBatch completes cfg with the shared plumbing (resolver, writers,
// events, presenter) and runs it. Exit status: 0 when every source was
// processed, 1 when some failed to open, 2 for output or setup errors.
func (a *app) runBatch(cfg engine.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	bwLimit := a.bwLimit.n

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	// Event consumers run beside the engine and finish once events closes.
	var g errgroup.Group

	// With --log, tee events into structured records before the presenter.
	presenterEvents := (<-chan event.Event)(events)
	if a.logFile != "" {
		teed := make(chan event.Event, 256)
		g.Go(func() error {
			for ev := range events {
				attrs := []slog.Attr{
					slog.String("type", ev.Type.String()),
					slog.String("source", ev.Source),
					slog.Int64("bytes", ev.Bytes),
					slog.Int64("lines", ev.Lines),
				}
				if ev.Error != nil {
					attrs = append(attrs, slog.String("error", ev.Error.Error()))
				}
				slog.LogAttrs(context.Background(), slog.LevelDebug, "tally.event", attrs...)
				teed <- ev
			}
			close(teed)
			return nil
		})
		presenterEvents = teed
	}

	presenter := ui.NewPresenter(ui.Config{
		ErrWriter: a.stderr,
		Stats:     collector,
		IsTTY:     isTerminal(a.stderr),
		Verbose:   a.verbose,
		Summary:   a.summary,
	})

	cfg.Resolver = source.NewResolver(source.Options{
		Stdin:      a.stdin,
		Decompress: a.decompress,
		BWLimit:    bwLimit,
	})
	cfg.Out = a.stdout
	cfg.ErrOut = a.stderr
	cfg.Events = events
	cfg.Stats = collector

	slog.Debug("starting batch",
		"mode", cfg.Mode.String(),
		"sources", cfg.Sources,
		"decompress", a.decompress,
		"bwlimit", bwLimit,
	)

	g.Go(func() error {
		return presenter.Run(presenterEvents)
	})

	result := engine.Run(ctx, cfg)
	close(events)
	if err := g.Wait(); err != nil {
		fmt.Fprintf(a.stderr, "presenter: %v\n", err)
	}

	if summary := presenter.Summary(); summary != "" {
		fmt.Fprintln(a.stderr, summary)
	}

	if result.Err != nil {
		slog.Error("batch failed", "error", result.Err)
		return &exitError{code: 2}
	}
	if len(result.Failed) > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTTY(f.Fd())
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
