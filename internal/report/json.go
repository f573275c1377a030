package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
)

// JSONWriter outputs reports in JSON format for scripts and tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteBatch outputs the batch as a JSON object.
func (w *JSONWriter) WriteBatch(batch *model.Batch) (int, error) {
	return w.writeJSON(batch)
}

// WriteAudit outputs the audit report as a JSON object.
func (w *JSONWriter) WriteAudit(report *model.AuditReport) (int, error) {
	return w.writeJSON(report)
}

// WriteHistory outputs the entries under an "entries" key.
func (w *JSONWriter) WriteHistory(entries []history.Entry) (int, error) {
	if entries == nil {
		entries = []history.Entry{}
	}
	return w.writeJSON(historyDocument{Entries: entries})
}

// historyDocument wraps history entries so the top level is an object.
type historyDocument struct {
	Entries []history.Entry `json:"entries" yaml:"entries"`
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
