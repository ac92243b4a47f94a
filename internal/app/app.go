package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/tdh8316/handlecheck/internal/check"
	"github.com/tdh8316/handlecheck/internal/cli"
	"github.com/tdh8316/handlecheck/internal/httpx"
	"github.com/tdh8316/handlecheck/internal/output"
	"github.com/tdh8316/handlecheck/internal/platform"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run is the whole program minus process setup and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, args, stdout, stderr, nil)
}

// run takes an optional client; nil builds one from the parsed options.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, client httpx.Doer) int {
	opts, name, err := cli.Parse(args, stdout, stderr)
	if err != nil {
		if errors.Is(err, cli.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintln(stderr, err.Error())
		return ExitUsage
	}

	color.NoColor = color.NoColor || opts.NoColor
	logger := newLogger(stderr, opts.Verbose)

	table, err := loadTable(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "platform table error: %v\n", err)
		return ExitFailure
	}

	if client == nil {
		c, err := httpx.NewClient(httpx.ClientConfig{
			Timeout:  opts.Timeout,
			ProxyURL: opts.ProxyURL,
		})
		if err != nil {
			fmt.Fprintf(stderr, "failed to initialize HTTP client: %v\n", err)
			return ExitFailure
		}
		client = c
	}

	cfg := check.Config{
		UserAgent:   opts.UserAgent,
		Strict:      opts.Strict,
		Concurrency: opts.Concurrency,
		Logger:      logger,
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.NewOptions(len(table),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Checking platforms..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionClearOnFinish(),
		)
		cfg.OnResult = func(check.Result) {
			_ = bar.Add(1)
		}
	}

	report, err := check.NewChecker(client, table, cfg).Check(ctx, name)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if errors.Is(err, check.ErrEmptyName) {
			fmt.Fprintln(stderr, err.Error())
			return ExitUsage
		}
		fmt.Fprintf(stderr, "check interrupted: %v\n", err)
		return ExitFailure
	}

	logger.WithFields(logrus.Fields{
		"name":      report.Name,
		"available": len(report.Available),
		"taken":     len(report.Taken),
		"unknown":   len(report.Unknown),
	}).Debug("sweep finished")

	if err := output.NewPrinter(stdout, opts.NoColor).Render(opts.Format, report); err != nil {
		fmt.Fprintf(stderr, "output error: %v\n", err)
		return ExitFailure
	}
	return ExitOK
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    color.NoColor,
	})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func loadTable(opts cli.Options, logger logrus.FieldLogger) (platform.Table, error) {
	table := platform.Default()
	if opts.PlatformsFile != "" {
		t, err := platform.Load(opts.PlatformsFile)
		if err != nil {
			return nil, err
		}
		table = t
		logger.WithField("path", opts.PlatformsFile).Debugf("loaded %d platform(s)", len(table))
	}

	if len(opts.Only) == 0 {
		return table, nil
	}

	selected, unknown := table.Select(opts.Only)
	for _, u := range unknown {
		entry := logger.WithField("platform", u.Name)
		if u.Suggestion != "" {
			entry = entry.WithField("suggestion", u.Suggestion)
		}
		entry.Warn("unknown platform ignored")
	}
	if len(selected) == 0 {
		logger.WithField("only", strings.Join(opts.Only, ",")).
			Warn("no matching platforms; using the full table")
		return table, nil
	}
	return selected, nil
}
