package model

// AuditStatus is the outcome of checking one existing password.
type AuditStatus string

const (
	// AuditSafe means the password was not found in the breach corpus.
	AuditSafe AuditStatus = "safe"

	// AuditLeaked means the password appears in the breach corpus.
	AuditLeaked AuditStatus = "leaked"

	// AuditFailed means the lookup could not be completed.
	AuditFailed AuditStatus = "failed"
)

// AuditEntry is the breach status of one audited password.
// The password itself is never stored; Index refers to its input position.
type AuditEntry struct {
	// Index is the zero-based position of the password in the input.
	Index int `json:"index" yaml:"index"`

	// Status is the lookup outcome.
	Status AuditStatus `json:"status" yaml:"status"`

	// Occurrences is how many times the password appears in the corpus.
	// Zero unless Status is AuditLeaked.
	Occurrences int `json:"occurrences" yaml:"occurrences"`

	// Error describes a failed lookup.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// AuditReport aggregates the entries of one audit run in input order.
type AuditReport struct {
	Entries []AuditEntry `json:"entries" yaml:"entries"`
}

// Count returns the number of entries with the given status.
func (r *AuditReport) Count(status AuditStatus) int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

// HasLeaks reports whether any audited password was found in the corpus.
func (r *AuditReport) HasLeaks() bool {
	return r.Count(AuditLeaked) > 0
}
