package main

import (
	"errors"
	"fmt"

	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of batches listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show metadata of previously generated batches",
		Long: `History lists previously generated batches, newest first.

Only metadata is recorded: the date, length, count, charsets, entropy,
strength and breach check statistics of each batch. Passwords are never
stored.

Examples:
  # Show the last 20 batches
  rpg history

  # Show every batch as YAML
  rpg history --limit 0 --format yaml

  # Delete all recorded batches
  rpg history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", defaultHistoryLimit, "Maximum number of batches to show (0 for all)")
	cmd.Flags().Bool("clear", false, "Delete all recorded batches")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildLookupConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative: %d", limit)
	}

	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	ctx := cmd.Context()

	store, err := history.Open(cfg.HistoryDir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, history.ErrNotFound) {
		logger.Debug("no history database", "dir", cfg.HistoryDir)
		if clearAll {
			fmt.Fprintln(cmd.OutOrStdout(), "History is already empty.")
			return nil
		}
		return writeReport(cfg, cmd.OutOrStdout(), func(w report.Writer) error {
			_, err := w.WriteHistory(nil)
			return err
		})
	}
	if err != nil {
		return err
	}
	defer store.Close()

	if clearAll {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d batch(es) from %s\n", n, store.Path())
		return nil
	}

	entries, err := store.List(ctx, limit)
	if err != nil {
		return err
	}

	return writeReport(cfg, cmd.OutOrStdout(), func(w report.Writer) error {
		_, err := w.WriteHistory(entries)
		return err
	})
}
