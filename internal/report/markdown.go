package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/entropy"
	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
)

// MarkdownWriter outputs reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter

	// chart appends the entropy chart and a symbol distribution pie chart.
	chart bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithChart enables the entropy chart and the mermaid pie chart.
func WithChart(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.chart = enabled
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteBatch outputs the passwords in a code block and a summary table.
func (w *MarkdownWriter) WriteBatch(batch *model.Batch) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Generated Passwords")
	md.PlainText("")

	rows := make([][]string, len(batch.Passwords))
	for i, pw := range batch.Passwords {
		rows[i] = []string{strconv.Itoa(i + 1), "`" + pw + "`"}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Password"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", batch.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Length", strconv.Itoa(batch.Length)},
			{"Pool Size", strconv.Itoa(batch.PoolSize)},
			{"Entropy", strconv.FormatFloat(batch.Entropy, 'f', 2, 64) + " bits"},
			{"Strength", batch.Strength.String()},
			{"Breach Check", breachStatus(batch)},
		},
	})
	md.PlainText("")

	w.writeStrengthAlert(md, batch)

	if w.chart {
		w.writeDistribution(md, batch)
		md.CodeBlocks(markdown.SyntaxHighlightText, entropy.Chart)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func breachStatus(batch *model.Batch) string {
	if !batch.SafeMode {
		return "⚠️ Skipped"
	}
	return "✅ Passed (" + strconv.Itoa(batch.LeaksDiscarded) + " leaked candidate(s) discarded)"
}

// writeStrengthAlert writes an alert that matches the strength bucket.
func (w *MarkdownWriter) writeStrengthAlert(md *markdown.Markdown, batch *model.Batch) {
	info := model.GetStrengthInfo(batch.Strength)
	label := info.Strength.String() + ": " + info.Usage + "."

	switch batch.Strength {
	case model.StrengthVeryWeak, model.StrengthWeak:
		md.Warningf("%s Increase the length or add categories.", label)
	case model.StrengthReasonable:
		md.Importantf("%s", label)
	default:
		md.Tip(label)
	}
	md.PlainText("")

	if !batch.IsCompletePool() {
		md.Note("Not all character categories were used. The pool is smaller than 94 symbols.")
		md.PlainText("")
	}
}

// writeDistribution writes a mermaid pie chart of symbol categories
// across every password of the batch.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, batch *model.Batch) {
	counts := make(map[charset.Category]uint64, len(charset.All))
	for _, pw := range batch.Passwords {
		for _, r := range pw {
			if c, ok := charset.CategoryOf(r); ok {
				counts[c]++
			}
		}
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Symbol Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range charset.All {
		if counts[c] > 0 {
			chart.LabelAndIntValue(c.String(), counts[c])
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteAudit outputs a status table and an overall alert.
func (w *MarkdownWriter) WriteAudit(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Breach Check")
	md.PlainText("")

	rows := make([][]string, len(report.Entries))
	for i, e := range report.Entries {
		detail := "-"
		switch e.Status {
		case model.AuditLeaked:
			detail = occurrences(e.Occurrences)
		case model.AuditFailed:
			detail = e.Error
		}
		rows[i] = []string{strconv.Itoa(e.Index + 1), auditIcon(e.Status) + " " + string(e.Status), detail}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Status", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")

	leaked := report.Count(model.AuditLeaked)
	failed := report.Count(model.AuditFailed)
	switch {
	case leaked > 0:
		md.Cautionf("%d password(s) appear in known breaches and should be replaced.", leaked)
	case failed > 0:
		md.Warningf("%d lookup(s) failed. Their status is unknown.", failed)
	default:
		md.Tip("No audited password appears in known breaches.")
	}
	md.PlainText("")

	return len(md.String()), md.Build()
}

func auditIcon(status model.AuditStatus) string {
	switch status {
	case model.AuditLeaked:
		return "🔴"
	case model.AuditFailed:
		return "⚪"
	default:
		return "🟢"
	}
}

// WriteHistory outputs recorded runs as a table.
func (w *MarkdownWriter) WriteHistory(entries []history.Entry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Generation History")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No history recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.Timestamp.Format("2006-01-02 15:04:05 MST"),
			strconv.Itoa(e.Length),
			strconv.Itoa(e.Count),
			strconv.Itoa(e.PoolSize),
			strconv.FormatFloat(e.Entropy, 'f', 2, 64),
			e.Strength.String(),
			yesNo(e.SafeMode),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Date", "Length", "Count", "Pool", "Entropy", "Strength", "Safe"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}
