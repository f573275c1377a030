package report

import (
	"io"

	"github.com/nao1215/rpg/internal/history"
	"github.com/nao1215/rpg/internal/model"
	"gopkg.in/yaml.v3"
)

// YAMLWriter outputs reports in YAML format.
type YAMLWriter struct {
	baseWriter
}

// NewYAMLWriter creates a YAMLWriter that outputs to the given writer.
func NewYAMLWriter(output io.Writer) *YAMLWriter {
	return &YAMLWriter{baseWriter: newBaseWriter(output)}
}

// WriteBatch outputs the batch as a YAML document.
func (w *YAMLWriter) WriteBatch(batch *model.Batch) (int, error) {
	return w.writeYAML(batch)
}

// WriteAudit outputs the audit report as a YAML document.
func (w *YAMLWriter) WriteAudit(report *model.AuditReport) (int, error) {
	return w.writeYAML(report)
}

// WriteHistory outputs the entries under an "entries" key.
func (w *YAMLWriter) WriteHistory(entries []history.Entry) (int, error) {
	if entries == nil {
		entries = []history.Entry{}
	}
	return w.writeYAML(historyDocument{Entries: entries})
}

func (w *YAMLWriter) writeYAML(v any) (int, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}
