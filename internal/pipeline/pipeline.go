package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/entropy"
	"github.com/nao1215/rpg/internal/generator"
	"github.com/nao1215/rpg/internal/model"
)

// DefaultMaxLeakRetries is how many times a single password is redrafted
// after its candidates were found in the breach corpus.
const DefaultMaxLeakRetries = 10

// Generator drafts one password from groups.
// *generator.Generator satisfies it.
type Generator interface {
	Generate(groups []charset.Group, length int) (string, error)
}

// ProgressFunc is called after each accepted password with the number of
// passwords accepted so far and the batch size.
type ProgressFunc func(done, total int)

// Pipeline generates password batches.
type Pipeline struct {
	// generator drafts candidates.
	generator Generator

	// checker classifies candidates in safe mode. May be nil when safe
	// mode is never used.
	checker breach.Checker

	// maxLeakRetries bounds redrafts per password after Leaked results.
	maxLeakRetries int

	// progress is notified after every accepted password.
	progress ProgressFunc

	// now returns the batch timestamp.
	now func() time.Time

	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithGenerator replaces the password generator.
func WithGenerator(g Generator) Option {
	return func(p *Pipeline) {
		if g != nil {
			p.generator = g
		}
	}
}

// WithChecker sets the breach checker used in safe mode.
func WithChecker(c breach.Checker) Option {
	return func(p *Pipeline) {
		p.checker = c
	}
}

// WithMaxLeakRetries sets the redraft budget per password. Zero means a
// leaked first candidate fails the batch immediately.
func WithMaxLeakRetries(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.maxLeakRetries = n
		}
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithClock overrides the clock used to stamp batches.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Pipeline using the secure default generator.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		generator:      generator.New(),
		maxLeakRetries: DefaultMaxLeakRetries,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Generate produces count passwords of the given length drawn from groups.
//
// In safe mode every returned password was classified Safe by the checker
// on its last and only lookup. A LookupFailed result aborts the batch with
// ErrBreachCheckExhausted and no passwords are returned. The entropy is the
// same for every password and is computed once for the batch.
func (p *Pipeline) Generate(ctx context.Context, groups []charset.Group, length, count int, safeMode bool) (*model.Batch, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if len(groups) == 0 {
		return nil, charset.ErrEmptySelection
	}
	if safeMode && p.checker == nil {
		return nil, ErrNoChecker
	}

	// Entropy depends only on the pool and length. Computing it first
	// rejects degenerate input before any lookup is made.
	bits, err := entropy.Calculate(groups, length)
	if err != nil {
		return nil, err
	}

	categories := charset.Categories(groups)
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}

	p.logger.Debug("starting batch",
		"count", count,
		"length", length,
		"categories", names,
		"safeMode", safeMode,
	)

	batch := &model.Batch{
		Passwords:  make([]string, 0, count),
		Length:     length,
		Categories: names,
		PoolSize:   charset.PoolSize(groups),
		SafeMode:   safeMode,
	}

	for i := range count {
		pw, err := p.acceptOne(ctx, groups, length, safeMode, batch)
		if err != nil {
			p.logger.Debug("batch aborted", "accepted", i, "error", err)
			return nil, err
		}
		batch.Passwords = append(batch.Passwords, pw)

		if p.progress != nil {
			p.progress(i+1, count)
		}
	}

	batch.Entropy = bits
	batch.Strength = entropy.Classify(bits)
	batch.GeneratedAt = p.now()

	p.logger.Debug("batch complete",
		"count", batch.Count(),
		"drafts", batch.Drafts,
		"leaksDiscarded", batch.LeaksDiscarded,
		"entropyBits", bits,
	)

	return batch, nil
}

// acceptOne drafts candidates until one is accepted or the policy fails.
// It updates the draft and leak counters of batch.
func (p *Pipeline) acceptOne(ctx context.Context, groups []charset.Group, length int, safeMode bool, batch *model.Batch) (string, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate, err := p.generator.Generate(groups, length)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		batch.Drafts++

		if !safeMode {
			return candidate, nil
		}

		verdict := p.checker.Check(ctx, candidate)
		switch verdict.Result {
		case breach.Safe:
			return candidate, nil

		case breach.Leaked:
			batch.LeaksDiscarded++
			p.logger.Debug("discarding leaked candidate",
				"attempt", attempt+1,
				"occurrences", verdict.Occurrences,
			)
			if attempt >= p.maxLeakRetries {
				return "", fmt.Errorf("%w: %d candidates leaked", ErrTooManyLeaks, attempt+1)
			}

		default:
			if verdict.Err != nil {
				return "", fmt.Errorf("%w: %w", ErrBreachCheckExhausted, verdict.Err)
			}
			return "", ErrBreachCheckExhausted
		}
	}
}
