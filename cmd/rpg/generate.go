package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/config"
	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
	"github.com/nao1215/rpg/internal/pipeline"
	"github.com/nao1215/rpg/internal/report"
	"github.com/spf13/cobra"
)

// runGenerateCmd executes the root command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return runGenerate(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildConfig creates a Config from the root command flags and the length argument.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildLookupConfig(cmd)
	if err != nil {
		return nil, err
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("%w: expected exactly one <pass-length> argument", config.ErrInvalidLength)
	}
	cfg.Length, err = strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", config.ErrInvalidLength, args[0])
	}

	flags := cmd.Flags()

	cfg.Count, err = flags.GetInt("number")
	if err != nil {
		return nil, err
	}

	include, err := flags.GetString("charsets")
	if err != nil {
		return nil, err
	}
	cfg.Include, err = charset.ParseCategories(include)
	if err != nil {
		return nil, fmt.Errorf("invalid --charsets: %w", err)
	}

	exclude, err := flags.GetString("exclude-charsets")
	if err != nil {
		return nil, err
	}
	cfg.Exclude, err = charset.ParseCategories(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid --exclude-charsets: %w", err)
	}

	noSafe, err := flags.GetBool("no-safe")
	if err != nil {
		return nil, err
	}
	cfg.SafeMode = !noSafe

	cfg.MaxLeakRetries, err = flags.GetInt("max-retries")
	if err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	return cfg, nil
}

// runGenerate generates one batch, renders it and records its metadata.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	selection := cfg.Selection()
	groups, err := charset.Resolve(selection)
	if err != nil {
		return err
	}

	if !selection.IsComplete() {
		logger.Warn("generating passwords without one or more of the default charsets; " +
			"avoid this practice if possible")
	}
	if !cfg.SafeMode {
		logger.Warn("generating passwords without checking whether they have already leaked; " +
			"avoid this practice if possible")
	}

	logger.Debug("starting generation",
		"length", cfg.Length,
		"count", cfg.Count,
		"charsets", charset.Categories(groups),
		"safeMode", cfg.SafeMode,
		"tor", cfg.UsesTor(),
	)

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMaxLeakRetries(cfg.MaxLeakRetries),
		pipeline.WithProgress(progressPrinter(stderr)),
	}

	if cfg.SafeMode {
		checker, stop, err := newBreachChecker(ctx, cfg, logger, stderr)
		if err != nil {
			return err
		}
		defer stop()
		opts = append(opts, pipeline.WithChecker(checker))
	}

	batch, err := pipeline.New(opts...).Generate(ctx, groups, cfg.Length, cfg.Count, cfg.SafeMode)
	if err != nil {
		if errors.Is(err, pipeline.ErrBreachCheckExhausted) {
			return fmt.Errorf("%w; please retry or use --no-safe", err)
		}
		return err
	}

	if err := writeReport(cfg, stdout, func(w report.Writer) error {
		_, err := w.WriteBatch(batch)
		return err
	}); err != nil {
		return err
	}

	if cfg.OutputFile != "" {
		fmt.Fprintf(stderr, "%d password(s) written to %s\n", batch.Count(), cfg.OutputFile)
	}

	if cfg.SaveHistory {
		recordHistory(ctx, cfg, batch, logger)
	}

	return nil
}

// progressPrinter renders a single progress line on w.
func progressPrinter(w io.Writer) pipeline.ProgressFunc {
	return func(done, total int) {
		fmt.Fprintf(w, "\rGenerating passwords [%d/%d]", done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

// recordHistory stores batch metadata. Failures are logged and do not
// fail the run: the passwords were already delivered.
func recordHistory(ctx context.Context, cfg *config.Config, batch *model.Batch, logger *slog.Logger) {
	store, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.HistoryDir, "error", err)
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, batch)
	if err != nil {
		logger.Warn("failed to record history", "error", err)
		return
	}
	logger.Debug("batch recorded in history", "id", id, "path", store.Path())
}
