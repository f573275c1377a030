package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/entropy"
	"github.com/nao1215/rpg/internal/model"
)

// discardLogger returns a logger that drops all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sequenceGenerator returns pw-1, pw-2, ... and counts calls.
type sequenceGenerator struct {
	mu    sync.Mutex
	calls int
}

func (g *sequenceGenerator) Generate(_ []charset.Group, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return fmt.Sprintf("pw-%d", g.calls), nil
}

// scriptedChecker answers from a per-password script, defaulting to fallback.
type scriptedChecker struct {
	mu       sync.Mutex
	script   map[string]breach.Result
	fallback breach.Result
	last     map[string]breach.Result
	calls    int
}

func newScriptedChecker(fallback breach.Result, script map[string]breach.Result) *scriptedChecker {
	return &scriptedChecker{script: script, fallback: fallback, last: make(map[string]breach.Result)}
}

func (c *scriptedChecker) Check(_ context.Context, pw string) breach.Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++

	result, ok := c.script[pw]
	if !ok {
		result = c.fallback
	}
	c.last[pw] = result

	switch result {
	case breach.Leaked:
		return breach.Verdict{Result: breach.Leaked, Occurrences: 7}
	case breach.LookupFailed:
		return breach.Verdict{Result: breach.LookupFailed, Err: errors.New("connection refused")}
	default:
		return breach.Verdict{Result: breach.Safe}
	}
}

func allGroups(t *testing.T) []charset.Group {
	t.Helper()
	groups, err := charset.Resolve(charset.Exclude())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return groups
}

// TestGenerate_UnsafeMode verifies the checker is never consulted without safe mode.
func TestGenerate_UnsafeMode(t *testing.T) {
	t.Parallel()

	checker := newScriptedChecker(breach.LookupFailed, nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := New(
		WithChecker(checker),
		WithLogger(discardLogger()),
		WithClock(func() time.Time { return fixed }),
	)

	batch, err := p.Generate(context.Background(), allGroups(t), 16, 5, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if batch.Count() != 5 {
		t.Errorf("expected 5 passwords, got %d", batch.Count())
	}
	for _, pw := range batch.Passwords {
		if len(pw) != 16 {
			t.Errorf("expected length 16, got %d", len(pw))
		}
	}
	if checker.calls != 0 {
		t.Errorf("checker called %d times in unsafe mode", checker.calls)
	}
	if batch.SafeMode {
		t.Error("expected SafeMode false")
	}
	if batch.Drafts != 5 {
		t.Errorf("expected 5 drafts, got %d", batch.Drafts)
	}
	if want := 16 * math.Log2(94); math.Abs(batch.Entropy-want) > 1e-9 {
		t.Errorf("Entropy = %v, want %v", batch.Entropy, want)
	}
	if batch.Strength != model.StrengthStrong {
		t.Errorf("Strength = %v, want Strong", batch.Strength)
	}
	if batch.PoolSize != 94 {
		t.Errorf("PoolSize = %d, want 94", batch.PoolSize)
	}
	if !batch.GeneratedAt.Equal(fixed) {
		t.Errorf("GeneratedAt = %v, want %v", batch.GeneratedAt, fixed)
	}
	if !batch.IsCompletePool() {
		t.Error("expected complete pool")
	}
}

// TestGenerate_SafeModeRegeneratesLeaks verifies leaked candidates are never returned.
func TestGenerate_SafeModeRegeneratesLeaks(t *testing.T) {
	t.Parallel()

	gen := &sequenceGenerator{}
	checker := newScriptedChecker(breach.Safe, map[string]breach.Result{
		"pw-1": breach.Leaked,
		"pw-2": breach.Leaked,
		"pw-4": breach.Leaked,
	})
	p := New(WithGenerator(gen), WithChecker(checker), WithLogger(discardLogger()))

	batch, err := p.Generate(context.Background(), allGroups(t), 12, 3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"pw-3", "pw-5", "pw-6"}
	if fmt.Sprint(batch.Passwords) != fmt.Sprint(want) {
		t.Errorf("Passwords = %v, want %v", batch.Passwords, want)
	}
	for _, pw := range batch.Passwords {
		if checker.last[pw] != breach.Safe {
			t.Errorf("returned %q whose last classification was %v", pw, checker.last[pw])
		}
	}
	if batch.Drafts != 6 {
		t.Errorf("Drafts = %d, want 6", batch.Drafts)
	}
	if batch.LeaksDiscarded != 3 {
		t.Errorf("LeaksDiscarded = %d, want 3", batch.LeaksDiscarded)
	}
	if !batch.SafeMode {
		t.Error("expected SafeMode true")
	}
}

// TestGenerate_LookupFailureAborts verifies the batch-level abort policy.
func TestGenerate_LookupFailureAborts(t *testing.T) {
	t.Parallel()

	t.Run("always failing checker", func(t *testing.T) {
		t.Parallel()

		checker := newScriptedChecker(breach.LookupFailed, nil)
		p := New(WithChecker(checker), WithLogger(discardLogger()))

		batch, err := p.Generate(context.Background(), allGroups(t), 16, 3, true)
		if !errors.Is(err, ErrBreachCheckExhausted) {
			t.Fatalf("expected ErrBreachCheckExhausted, got %v", err)
		}
		if batch != nil {
			t.Errorf("expected no batch, got %d passwords", batch.Count())
		}
		if checker.calls != 1 {
			t.Errorf("expected abort after first failure, got %d calls", checker.calls)
		}
	})

	t.Run("failure after accepted passwords discards them", func(t *testing.T) {
		t.Parallel()

		gen := &sequenceGenerator{}
		checker := newScriptedChecker(breach.Safe, map[string]breach.Result{"pw-3": breach.LookupFailed})
		p := New(WithGenerator(gen), WithChecker(checker), WithLogger(discardLogger()))

		batch, err := p.Generate(context.Background(), allGroups(t), 16, 5, true)
		if !errors.Is(err, ErrBreachCheckExhausted) {
			t.Fatalf("expected ErrBreachCheckExhausted, got %v", err)
		}
		if batch != nil {
			t.Error("expected partial batch to be discarded")
		}
	})

	t.Run("failure without cause", func(t *testing.T) {
		t.Parallel()

		checker := breach.CheckerFunc(func(context.Context, string) breach.Verdict {
			return breach.Verdict{Result: breach.LookupFailed}
		})
		p := New(WithChecker(checker), WithLogger(discardLogger()))

		_, err := p.Generate(context.Background(), allGroups(t), 16, 1, true)
		if !errors.Is(err, ErrBreachCheckExhausted) {
			t.Errorf("expected ErrBreachCheckExhausted, got %v", err)
		}
	})
}

// TestGenerate_LeakRetryBudget verifies the bounded redraft policy.
func TestGenerate_LeakRetryBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		maxRetries int
		wantChecks int
	}{
		{name: "default budget", maxRetries: DefaultMaxLeakRetries, wantChecks: DefaultMaxLeakRetries + 1},
		{name: "no retries", maxRetries: 0, wantChecks: 1},
		{name: "two retries", maxRetries: 2, wantChecks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checker := newScriptedChecker(breach.Leaked, nil)
			p := New(WithChecker(checker), WithMaxLeakRetries(tt.maxRetries), WithLogger(discardLogger()))

			_, err := p.Generate(context.Background(), allGroups(t), 16, 2, true)
			if !errors.Is(err, ErrTooManyLeaks) {
				t.Fatalf("expected ErrTooManyLeaks, got %v", err)
			}
			if checker.calls != tt.wantChecks {
				t.Errorf("expected %d checks, got %d", tt.wantChecks, checker.calls)
			}
		})
	}
}

// TestGenerate_InvalidInput tests validation before any work is done.
func TestGenerate_InvalidInput(t *testing.T) {
	t.Parallel()

	digitsOnly, err := charset.Resolve(charset.Include(charset.Digit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		groups  []charset.Group
		length  int
		count   int
		safe    bool
		wantErr error
	}{
		{name: "zero count", groups: digitsOnly, length: 12, count: 0, wantErr: ErrInvalidCount},
		{name: "empty groups", groups: nil, length: 12, count: 1, wantErr: charset.ErrEmptySelection},
		{name: "zero length", groups: digitsOnly, length: 0, count: 1, wantErr: entropy.ErrInvalidPool},
		{name: "safe mode without checker", groups: digitsOnly, length: 12, count: 1, safe: true, wantErr: ErrNoChecker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := New(WithLogger(discardLogger()))
			batch, err := p.Generate(context.Background(), tt.groups, tt.length, tt.count, tt.safe)
			if err == nil {
				t.Fatalf("expected error, got batch %+v", batch)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestGenerate_Progress verifies the progress callback sequence.
func TestGenerate_Progress(t *testing.T) {
	t.Parallel()

	var seen []int
	p := New(
		WithLogger(discardLogger()),
		WithProgress(func(done, total int) {
			if total != 4 {
				t.Errorf("total = %d, want 4", total)
			}
			seen = append(seen, done)
		}),
	)

	if _, err := p.Generate(context.Background(), allGroups(t), 12, 4, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fmt.Sprint(seen) != "[1 2 3 4]" {
		t.Errorf("progress = %v, want [1 2 3 4]", seen)
	}
}

// TestGenerate_Cancelled verifies context cancellation stops the batch.
func TestGenerate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithLogger(discardLogger())).Generate(ctx, allGroups(t), 12, 3, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
