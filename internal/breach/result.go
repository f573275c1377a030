package breach

import (
	"context"
	"errors"
)

// Result classifies a single password lookup.
type Result int

const (
	// Safe means the password hash was not found in the corpus.
	Safe Result = iota

	// Leaked means the password hash appears in the corpus.
	Leaked

	// LookupFailed means the corpus could not be queried.
	LookupFailed
)

// String returns a human-readable representation of the result.
func (r Result) String() string {
	switch r {
	case Safe:
		return "safe"
	case Leaked:
		return "leaked"
	case LookupFailed:
		return "lookup failed"
	default:
		return "unknown"
	}
}

// ErrUnexpectedStatus is wrapped into Verdict.Err when the range endpoint
// answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected response status from breach service")

// ErrResponseTooLarge is wrapped into Verdict.Err when a range response
// exceeds the body size cap. A truncated body could hide a matching row.
var ErrResponseTooLarge = errors.New("breach service response too large")

// Verdict is the outcome of one Check call.
type Verdict struct {
	// Result is the classification.
	Result Result

	// Occurrences is how many times the password was seen in breaches.
	// Only set when Result is Leaked.
	Occurrences int

	// Err holds the cause of a LookupFailed result.
	Err error
}

// Checker classifies passwords against a breach corpus.
type Checker interface {
	// Check looks up password. Implementations must not panic and must
	// report transport problems as LookupFailed.
	Check(ctx context.Context, password string) Verdict
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, password string) Verdict

// Check calls f(ctx, password).
func (f CheckerFunc) Check(ctx context.Context, password string) Verdict {
	return f(ctx, password)
}
