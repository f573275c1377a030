package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/pipeline"
	"github.com/nao1215/rpg/internal/report"
)

// Limits and defaults.
const (
	// MinLength is the shortest password rpg generates.
	MinLength = 12

	// MaxLength is the longest password rpg generates.
	MaxLength = 90

	// MaxCount is the largest batch rpg generates in one run.
	MaxCount = 50

	// DefaultCount is the number of passwords generated without -n.
	DefaultCount = 1

	// DefaultTimeout bounds each breach lookup.
	DefaultTimeout = breach.DefaultTimeout

	// DefaultMaxLeakRetries is the number of regenerations allowed per
	// password when candidates keep turning up in the breach corpus.
	DefaultMaxLeakRetries = pipeline.DefaultMaxLeakRetries

	// DefaultTorProxyAddress is the standard Tor SOCKS5 proxy address,
	// suggested in the --tor-proxy help text.
	DefaultTorProxyAddress = "127.0.0.1:9050"

	// DefaultTorStartupTimeout bounds the embedded Tor bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "rpg"
)

// Config holds all options of one invocation. It is populated from CLI
// flags and passed down explicitly.
type Config struct {
	// Length is the number of characters per password.
	Length int

	// Count is the number of passwords to generate.
	Count int

	// Include restricts the pool to these categories. Mutually exclusive
	// with Exclude. Both empty means all four categories.
	Include []charset.Category

	// Exclude removes these categories from the pool.
	Exclude []charset.Category

	// SafeMode checks every candidate against the breach corpus.
	SafeMode bool

	// OutputFile receives the report instead of stdout when set.
	OutputFile string

	// Format selects the report format.
	Format report.Format

	// Timeout bounds each breach lookup.
	Timeout time.Duration

	// MaxLeakRetries is the regeneration budget per password.
	MaxLeakRetries int

	// HashMode selects the SHA-1 or NTLM breach corpus.
	HashMode breach.HashMode

	// Padding asks the breach service for padded responses.
	Padding bool

	// UserAgent is sent with breach lookups.
	UserAgent string

	// APIBaseURL is the root of the Pwned Passwords range API.
	APIBaseURL string

	// AuditConcurrency bounds parallel lookups of the check command.
	AuditConcurrency int

	// UseTor starts an embedded Tor daemon and routes lookups through it.
	UseTor bool

	// TorProxyAddress routes lookups through an external SOCKS5 proxy
	// when set. Mutually exclusive with UseTor.
	TorProxyAddress string

	// TorStartupTimeout bounds the embedded Tor bootstrap.
	TorStartupTimeout time.Duration

	// HistoryDir is where the history database lives.
	HistoryDir string

	// SaveHistory records batch metadata after a successful run.
	SaveHistory bool

	// Verbose enables debug logging and detailed reports.
	Verbose bool

	// LogJSON writes logs as JSON instead of text.
	LogJSON bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Count:             DefaultCount,
		SafeMode:          true,
		Format:            report.FormatText,
		Timeout:           DefaultTimeout,
		MaxLeakRetries:    DefaultMaxLeakRetries,
		HashMode:          breach.HashSHA1,
		UserAgent:         breach.DefaultUserAgent,
		APIBaseURL:        breach.DefaultBaseURL,
		AuditConcurrency:  pipeline.DefaultAuditConcurrency,
		TorStartupTimeout: DefaultTorStartupTimeout,
		HistoryDir:        XDGDataDir(),
		SaveHistory:       true,
	}
}

// XDGDataDir returns the XDG data directory for rpg.
// On Linux: ~/.local/share/rpg
// On macOS: ~/Library/Application Support/rpg
// On Windows: %LOCALAPPDATA%\rpg
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Selection returns the character categories selected by Include and Exclude.
func (c *Config) Selection() charset.Selection {
	if len(c.Include) > 0 {
		return charset.Include(c.Include...)
	}
	return charset.Exclude(c.Exclude...)
}

// UsesTor reports whether breach lookups are routed through Tor.
func (c *Config) UsesTor() bool {
	return c.UseTor || c.TorProxyAddress != ""
}

// Validate returns the first invalid option found.
func (c *Config) Validate() error {
	if c.Length < MinLength || c.Length > MaxLength {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, c.Length)
	}

	if c.Count < 1 || c.Count > MaxCount {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.Count)
	}

	if len(c.Include) > 0 && len(c.Exclude) > 0 {
		return ErrConflictingCharsets
	}

	if _, err := charset.Resolve(c.Selection()); err != nil {
		return err
	}

	return c.ValidateLookup()
}

// ValidateLookup checks only the options that affect breach lookups and
// output. It is used by commands that do not generate passwords.
func (c *Config) ValidateLookup() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxLeakRetries < 0 {
		return ErrInvalidMaxRetries
	}

	if c.AuditConcurrency < 1 {
		return ErrInvalidConcurrency
	}

	if !slices.Contains(report.Formats, c.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if c.HashMode != breach.HashSHA1 && c.HashMode != breach.HashNTLM {
		return fmt.Errorf("%w: %v", ErrInvalidHashMode, c.HashMode)
	}

	if c.UseTor && c.TorProxyAddress != "" {
		return ErrConflictingTor
	}

	return nil
}
