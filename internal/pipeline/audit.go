package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultAuditConcurrency is the number of concurrent lookups during an audit.
// The range API is rate limited per client, so the default stays small.
const DefaultAuditConcurrency = 4

// Auditor checks existing passwords against the breach corpus.
type Auditor struct {
	// checker performs the lookups. It must be safe for concurrent use.
	checker breach.Checker

	// concurrency is the maximum number of lookups in flight.
	concurrency int

	logger *slog.Logger
}

// AuditOption configures an Auditor.
type AuditOption func(*Auditor)

// WithAuditConcurrency sets the maximum number of concurrent lookups.
func WithAuditConcurrency(n int) AuditOption {
	return func(a *Auditor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithAuditLogger sets a custom logger for the auditor.
func WithAuditLogger(logger *slog.Logger) AuditOption {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// NewAuditor creates an Auditor backed by checker.
func NewAuditor(checker breach.Checker, opts ...AuditOption) *Auditor {
	a := &Auditor{
		checker:     checker,
		concurrency: DefaultAuditConcurrency,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Audit looks up every password and returns one entry per input, in input
// order. Failed lookups are recorded in their entry; the error return is
// only set when ctx is cancelled.
func (a *Auditor) Audit(ctx context.Context, passwords []string) (*model.AuditReport, error) {
	a.logger.Debug("starting audit",
		"total", len(passwords),
		"concurrency", a.concurrency,
	)
	start := time.Now()

	// Each goroutine writes only its own index, so no lock is needed.
	entries := make([]model.AuditEntry, len(passwords))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, pw := range passwords {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			verdict := a.checker.Check(ctx, pw)
			entries[i] = toEntry(i, verdict)

			a.logger.Debug("audited password",
				"index", i,
				"status", entries[i].Status,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("audit complete",
		"total", len(passwords),
		"elapsed", time.Since(start),
	)

	return &model.AuditReport{Entries: entries}, nil
}

// toEntry converts a verdict into an audit entry.
func toEntry(index int, v breach.Verdict) model.AuditEntry {
	entry := model.AuditEntry{Index: index}
	switch v.Result {
	case breach.Safe:
		entry.Status = model.AuditSafe
	case breach.Leaked:
		entry.Status = model.AuditLeaked
		entry.Occurrences = v.Occurrences
	default:
		entry.Status = model.AuditFailed
		if v.Err != nil {
			entry.Error = v.Err.Error()
		} else {
			entry.Error = breach.LookupFailed.String()
		}
	}
	return entry
}
