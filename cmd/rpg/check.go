package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/rpg/internal/pipeline"
	"github.com/nao1215/rpg/internal/report"
	"github.com/spf13/cobra"
)

// errLeaksFound makes check exit non-zero when a password is leaked.
var errLeaksFound = errors.New("one or more passwords appear in known breaches")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password...]",
		Short: "Check existing passwords against the breach corpus",
		Long: `Check looks existing passwords up in the Have I Been Pwned breach corpus.

Passwords are read from the arguments, or one per line from stdin when no
argument is given. Reading from stdin keeps passwords out of the shell
history. Only the first five characters of each hash are sent.

The command exits with a non-zero status when any password is leaked.

Examples:
  # Check passwords from a file
  rpg check < passwords.txt

  # Check one password and print JSON
  rpg check --format json 'correct horse battery staple'`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().Int("concurrency", pipeline.DefaultAuditConcurrency, "Number of concurrent lookups")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildLookupConfig(cmd)
	if err != nil {
		return err
	}

	cfg.AuditConcurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}

	if err := cfg.ValidateLookup(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	passwords := args
	if len(passwords) == 0 {
		passwords, err = readPasswords(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(passwords) == 0 {
		return errors.New("no passwords to check: pass them as arguments or on stdin")
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	checker, stop, err := newBreachChecker(ctx, cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer stop()

	auditor := pipeline.NewAuditor(checker,
		pipeline.WithAuditConcurrency(cfg.AuditConcurrency),
		pipeline.WithAuditLogger(logger),
	)

	result, err := auditor.Audit(ctx, passwords)
	if err != nil {
		return err
	}

	if err := writeReport(cfg, cmd.OutOrStdout(), func(w report.Writer) error {
		_, err := w.WriteAudit(result)
		return err
	}); err != nil {
		return err
	}

	if result.HasLeaks() {
		return errLeaksFound
	}
	return nil
}

// readPasswords reads one password per line, skipping blank lines.
// Trailing carriage returns are removed; other whitespace is kept.
func readPasswords(r io.Reader) ([]string, error) {
	var passwords []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		passwords = append(passwords, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read passwords: %w", err)
	}
	return passwords, nil
}
