package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
)

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Format names an output format.
type Format string

const (
	// FormatText is human-readable plain text.
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown is GitHub-flavored Markdown.
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat parses a format name. "txt", "yml" and "md" are accepted
// as aliases, and an empty name selects text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Writer renders reports to an output destination.
type Writer interface {
	// WriteBatch renders the passwords of a generation run and their entropy.
	WriteBatch(batch *model.Batch) (int, error)

	// WriteAudit renders the breach status of audited passwords.
	WriteAudit(report *model.AuditReport) (int, error)

	// WriteHistory renders recorded generation runs, newest first.
	WriteHistory(entries []history.Entry) (int, error)
}

// New returns the writer for format. verbose adds the entropy chart and
// breach-check details to formats that support them.
func New(format Format, output io.Writer, verbose bool) (Writer, error) {
	switch format {
	case FormatText:
		return NewSimpleWriter(output, WithVerbose(verbose)), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatYAML:
		return NewYAMLWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, WithChart(verbose)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// occurrences formats a breach hit count.
func occurrences(n int) string {
	if n == 1 {
		return "seen 1 time"
	}
	return fmt.Sprintf("seen %d times", n)
}
