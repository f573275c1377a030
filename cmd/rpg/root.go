package main

import (
	"fmt"
	"os"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/config"
	"github.com/nao1215/rpg/internal/report"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Run with a length argument, it
// generates a batch of passwords.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rpg <pass-length>",
		Short: "Generate random, entropic and unleaked passwords",
		Long: `rpg generates random passwords from lowercase letters, uppercase letters,
digits and punctuation, and reports their entropy.

Every candidate is checked against the Have I Been Pwned breach corpus
through its k-anonymity range API: only the first five characters of the
password's SHA-1 hash leave the machine. Leaked candidates are discarded
and regenerated. Use --no-safe to skip the check.

The password length must be between 12 and 90, and at most 50 passwords
are generated per run.

Examples:
  # One 16-character password
  rpg 16

  # Five passwords without punctuation
  rpg 20 -n 5 --exclude-charsets p

  # Only digits and lowercase letters, written to a file
  rpg 24 --charsets l,d -o passwords.txt

  # Route breach lookups through a local Tor proxy
  rpg 16 --tor-proxy 127.0.0.1:9050`,
		Version:       getVersion(),
		Args:          cobra.ExactArgs(1),
		RunE:          runGenerateCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Flags shared by every command
	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging and detailed reports")
	pf.Bool("log-json", false, "Write logs as JSON")
	pf.StringP("format", "f", string(report.FormatText), "Report format: text, json, yaml or markdown")
	pf.StringP("output", "o", "", "Write the report to a file instead of stdout")
	pf.Duration("timeout", config.DefaultTimeout, "Timeout of each breach lookup")
	pf.String("hash-mode", "sha1", "Breach corpus to query: sha1 or ntlm")
	pf.Bool("padding", false, "Ask the breach service to pad responses")
	pf.String("user-agent", breach.DefaultUserAgent, "User-Agent sent with breach lookups")
	pf.String("api-url", breach.DefaultBaseURL, "Root URL of the Pwned Passwords range API")
	pf.Bool("tor", false, "Route breach lookups through an embedded Tor daemon")
	pf.String("tor-proxy", "",
		fmt.Sprintf("Route breach lookups through an external Tor SOCKS5 proxy (e.g. %s)", config.DefaultTorProxyAddress))
	pf.Duration("tor-timeout", config.DefaultTorStartupTimeout, "Timeout for embedded Tor startup")
	pf.String("data-dir", config.XDGDataDir(), "Directory of the history database")
	_ = pf.MarkHidden("api-url") //nolint:errcheck // flag is defined above

	// -v is verbose, so the version flag takes -V
	cmd.Flags().BoolP("version", "V", false, "Print version information")

	// Generation flags
	cmd.Flags().IntP("number", "n", config.DefaultCount,
		fmt.Sprintf("Number of passwords to generate (max %d)", config.MaxCount))
	cmd.Flags().StringP("charsets", "c", "",
		"Comma-separated charsets to use: l (lowercase), u (uppercase), d (digits), p (punctuation)")
	cmd.Flags().StringP("exclude-charsets", "e", "",
		"Comma-separated charsets to exclude (mutually exclusive with --charsets)")
	cmd.Flags().Bool("no-safe", false, "Do not check passwords against the breach corpus")
	cmd.Flags().Int("max-retries", config.DefaultMaxLeakRetries,
		"Regenerations allowed per password when candidates are leaked")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
