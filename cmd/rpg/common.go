package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/config"
	"github.com/nao1215/rpg/internal/log"
	"github.com/nao1215/rpg/internal/report"
	"github.com/nao1215/rpg/internal/tor"
	"github.com/spf13/cobra"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the masking logger on w.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// buildLookupConfig reads the flags shared by every command.
func buildLookupConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error

	cfg.Verbose = getVerboseFlag(cmd)

	cfg.LogJSON, err = flags.GetBool("log-json")
	if err != nil {
		return nil, err
	}

	format, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	cfg.Format, err = report.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidFormat, err)
	}

	cfg.OutputFile, err = flags.GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = flags.GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	hashMode, err := flags.GetString("hash-mode")
	if err != nil {
		return nil, err
	}
	cfg.HashMode, err = breach.ParseHashMode(hashMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidHashMode, err)
	}

	cfg.Padding, err = flags.GetBool("padding")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = flags.GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.APIBaseURL, err = flags.GetString("api-url")
	if err != nil {
		return nil, err
	}

	cfg.UseTor, err = flags.GetBool("tor")
	if err != nil {
		return nil, err
	}

	cfg.TorProxyAddress, err = flags.GetString("tor-proxy")
	if err != nil {
		return nil, err
	}

	cfg.TorStartupTimeout, err = flags.GetDuration("tor-timeout")
	if err != nil {
		return nil, err
	}

	cfg.HistoryDir, err = flags.GetString("data-dir")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// openOutput returns the report destination: the output file when one is
// configured, stdout otherwise. The returned close function must be called.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func() error, error) {
	if cfg.OutputFile == "" {
		return stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports contain passwords, so only the owner may read them.
	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeReport renders one report with the configured format and destination.
// Files always receive the detailed form.
func writeReport(cfg *config.Config, stdout io.Writer, render func(report.Writer) error) error {
	out, closeOutput, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}

	w, err := report.New(cfg.Format, out, cfg.Verbose || cfg.OutputFile != "")
	if err != nil {
		_ = closeOutput()
		return err
	}

	if err := render(w); err != nil {
		_ = closeOutput()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return closeOutput()
}

// newBreachChecker creates the range API checker, routed through Tor when
// configured. The returned stop function releases an embedded Tor daemon
// and must be called.
func newBreachChecker(ctx context.Context, cfg *config.Config, logger *slog.Logger, stderr io.Writer) (*breach.HIBPChecker, func(), error) {
	opts := []breach.Option{
		breach.WithTimeout(cfg.Timeout),
		breach.WithBaseURL(cfg.APIBaseURL),
		breach.WithUserAgent(cfg.UserAgent),
		breach.WithPadding(cfg.Padding),
		breach.WithHashMode(cfg.HashMode),
		breach.WithLogger(logger),
	}
	stop := func() {}

	switch {
	case cfg.TorProxyAddress != "":
		client, err := tor.NewClient(cfg.TorProxyAddress, cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Tor client: %w", err)
		}

		if status := client.CheckConnection(ctx); status != tor.ProxyStatusOK {
			return nil, nil, fmt.Errorf("tor proxy check failed: %w (make sure Tor is running at %s)",
				status.Error(), cfg.TorProxyAddress)
		}
		logger.Info("Tor proxy connection verified", "proxy", cfg.TorProxyAddress)

		opts = append(opts, breach.WithHTTPClient(client.NewHTTPClient()))

	case cfg.UseTor:
		client, embeddedTor, err := startEmbeddedTor(ctx, cfg, logger, stderr)
		if err != nil {
			return nil, nil, err
		}
		stop = func() {
			logger.Info("stopping embedded Tor daemon")
			if err := embeddedTor.Stop(); err != nil {
				logger.Error("failed to stop embedded Tor", "error", err)
			}
		}

		opts = append(opts, breach.WithHTTPClient(client.NewHTTPClient()))
	}

	return breach.NewHIBPChecker(opts...), stop, nil
}

// startEmbeddedTor starts an embedded Tor daemon using tornago and returns
// a verified client for its SOCKS proxy.
func startEmbeddedTor(ctx context.Context, cfg *config.Config, logger *slog.Logger, stderr io.Writer) (*tor.Client, *tor.EmbeddedTor, error) {
	fmt.Fprintln(stderr, "Starting embedded Tor daemon...")
	embeddedTor := tor.NewEmbeddedTor(
		tor.WithStartupTimeout(cfg.TorStartupTimeout),
	)
	fmt.Fprintf(stderr, "This may take up to %s while Tor bootstraps and connects to the network.\n\n",
		embeddedTor.StartupTimeout())

	if err := embeddedTor.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to start embedded Tor: %w", err)
	}

	logger.Info("embedded Tor daemon started", "socksAddr", embeddedTor.SocksAddr())

	client, err := embeddedTor.NewClient(cfg.Timeout)
	if err != nil {
		_ = embeddedTor.Stop() //nolint:errcheck // best effort cleanup
		return nil, nil, fmt.Errorf("failed to create Tor client: %w", err)
	}

	if status := client.CheckConnection(ctx); status != tor.ProxyStatusOK {
		_ = embeddedTor.Stop() //nolint:errcheck // best effort cleanup
		return nil, nil, fmt.Errorf("embedded Tor proxy check failed: %w", status.Error())
	}

	return client, embeddedTor, nil
}
