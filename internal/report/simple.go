package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/rpg/internal/entropy"
	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
)

// SimpleWriter outputs plain text for the terminal or a text file.
type SimpleWriter struct {
	baseWriter

	// verbose appends the entropy chart and breach-check counters.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the entropy chart and breach-check details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteBatch writes one password per line followed by the entropy.
func (w *SimpleWriter) WriteBatch(batch *model.Batch) (int, error) {
	var sb strings.Builder

	sb.WriteString("Passwords:\n")
	for _, pw := range batch.Passwords {
		sb.WriteString(pw)
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nEntropy: %.2f bits (%s)\n", batch.Entropy, batch.Strength)

	if w.verbose {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "Length:     %d\n", batch.Length)
		fmt.Fprintf(&sb, "Pool:       %d symbols (%s)\n", batch.PoolSize, strings.Join(batch.Categories, ", "))
		if batch.SafeMode {
			fmt.Fprintf(&sb, "Breach:     checked, %d leaked candidate(s) discarded in %d drafts\n",
				batch.LeaksDiscarded, batch.Drafts)
		} else {
			sb.WriteString("Breach:     not checked\n")
		}
		sb.WriteString("\n")
		sb.WriteString(entropy.Chart)
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteAudit writes one status line per audited password.
func (w *SimpleWriter) WriteAudit(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	sb.WriteString("Breach check:\n")
	for _, e := range report.Entries {
		switch e.Status {
		case model.AuditLeaked:
			fmt.Fprintf(&sb, "  #%d  LEAKED  (%s)\n", e.Index+1, occurrences(e.Occurrences))
		case model.AuditFailed:
			fmt.Fprintf(&sb, "  #%d  FAILED  (%s)\n", e.Index+1, e.Error)
		default:
			fmt.Fprintf(&sb, "  #%d  safe\n", e.Index+1)
		}
	}

	fmt.Fprintf(&sb, "\n%d leaked, %d safe, %d failed\n",
		report.Count(model.AuditLeaked),
		report.Count(model.AuditSafe),
		report.Count(model.AuditFailed),
	)

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory writes recorded runs as an aligned table.
func (w *SimpleWriter) WriteHistory(entries []history.Entry) (int, error) {
	if len(entries) == 0 {
		return io.WriteString(w.output, "No history recorded.\n")
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tLENGTH\tCOUNT\tPOOL\tENTROPY\tSTRENGTH\tSAFE\tLEAKS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.2f\t%s\t%s\t%d\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Length,
			e.Count,
			e.PoolSize,
			e.Entropy,
			e.Strength,
			yesNo(e.SafeMode),
			e.LeaksDiscarded,
		)
	}
	if err := tw.Flush(); err != nil {
		return 0, err
	}

	return w.output.Write([]byte(sb.String()))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
