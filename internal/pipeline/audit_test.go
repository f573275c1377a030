package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/model"
)

// TestAudit_PreservesOrder verifies entries follow input order regardless of completion order.
func TestAudit_PreservesOrder(t *testing.T) {
	t.Parallel()

	checker := breach.CheckerFunc(func(_ context.Context, pw string) breach.Verdict {
		// Earlier inputs finish later.
		switch pw {
		case "first":
			time.Sleep(30 * time.Millisecond)
			return breach.Verdict{Result: breach.Leaked, Occurrences: 12}
		case "second":
			time.Sleep(10 * time.Millisecond)
			return breach.Verdict{Result: breach.Safe}
		default:
			return breach.Verdict{Result: breach.LookupFailed, Err: errors.New("timeout")}
		}
	})

	auditor := NewAuditor(checker, WithAuditConcurrency(3), WithAuditLogger(discardLogger()))
	report, err := auditor.Audit(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.AuditEntry{
		{Index: 0, Status: model.AuditLeaked, Occurrences: 12},
		{Index: 1, Status: model.AuditSafe},
		{Index: 2, Status: model.AuditFailed, Error: "timeout"},
	}
	if len(report.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(report.Entries))
	}
	for i := range want {
		if report.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, report.Entries[i], want[i])
		}
	}
}

// TestAudit_RespectsConcurrency verifies the in-flight limit.
func TestAudit_RespectsConcurrency(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int32
	checker := breach.CheckerFunc(func(context.Context, string) breach.Verdict {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return breach.Verdict{Result: breach.Safe}
	})

	passwords := make([]string, 20)
	for i := range passwords {
		passwords[i] = "pw"
	}

	auditor := NewAuditor(checker, WithAuditConcurrency(2), WithAuditLogger(discardLogger()))
	report, err := auditor.Audit(context.Background(), passwords)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Count(model.AuditSafe) != 20 {
		t.Errorf("expected 20 safe entries, got %d", report.Count(model.AuditSafe))
	}
	if peak.Load() > 2 {
		t.Errorf("expected at most 2 concurrent lookups, got %d", peak.Load())
	}
}

func TestAudit_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := breach.CheckerFunc(func(context.Context, string) breach.Verdict {
		return breach.Verdict{Result: breach.Safe}
	})

	_, err := NewAuditor(checker, WithAuditLogger(discardLogger())).Audit(ctx, []string{"a", "b"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAudit_Empty(t *testing.T) {
	t.Parallel()

	checker := breach.CheckerFunc(func(context.Context, string) breach.Verdict {
		t.Error("checker must not be called")
		return breach.Verdict{}
	})

	report, err := NewAuditor(checker, WithAuditLogger(discardLogger())).Audit(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(report.Entries))
	}
}
