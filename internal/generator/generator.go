package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	mathrand "math/rand/v2"

	"github.com/nao1215/rpg/internal/charset"
)

// Generator errors.
var (
	// ErrInvalidLength is returned when the requested length is not positive.
	ErrInvalidLength = errors.New("password length must be positive")

	// ErrNoGroups is returned when no symbol group is supplied.
	ErrNoGroups = errors.New("no symbol groups to draw from")
)

// Shuffler randomizes the order of n elements through swap.
// *math/rand/v2.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// globalShuffler uses the auto-seeded top-level math/rand/v2 source.
type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	mathrand.Shuffle(n, swap)
}

// Generator produces passwords. It holds no per-password state and is safe
// for concurrent use as long as its reader and shuffler are.
type Generator struct {
	// reader is the cryptographically secure source for symbol selection.
	reader io.Reader

	// shuffler randomizes group order and final symbol order.
	shuffler Shuffler
}

// Option configures a Generator.
type Option func(*Generator)

// WithReader replaces the secure random source. Intended for tests;
// production code must keep crypto/rand.Reader.
func WithReader(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.reader = r
		}
	}
}

// WithShuffler replaces the shuffle source.
func WithShuffler(s Shuffler) Option {
	return func(g *Generator) {
		if s != nil {
			g.shuffler = s
		}
	}
}

// New creates a Generator backed by crypto/rand and math/rand/v2.
func New(opts ...Option) *Generator {
	g := &Generator{
		reader:   rand.Reader,
		shuffler: globalShuffler{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a password of exactly length symbols drawn from groups.
// The groups slice is not modified.
func (g *Generator) Generate(groups []charset.Group, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}
	if len(groups) == 0 {
		return "", ErrNoGroups
	}

	order := make([]charset.Group, len(groups))
	copy(order, groups)
	g.shuffler.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	symbols := make([]rune, length)
	for i := range symbols {
		group := order[i%len(order)]
		r, err := g.pick(group)
		if err != nil {
			return "", err
		}
		symbols[i] = r
	}

	g.shuffler.Shuffle(len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	return string(symbols), nil
}

// pick selects one symbol of group uniformly with the secure reader.
func (g *Generator) pick(group charset.Group) (rune, error) {
	if group.Len() == 0 {
		return 0, fmt.Errorf("%w: %s group is empty", ErrNoGroups, group.Category())
	}
	idx, err := rand.Int(g.reader, big.NewInt(int64(group.Len())))
	if err != nil {
		return 0, fmt.Errorf("failed to read secure random source: %w", err)
	}
	return group.At(int(idx.Int64())), nil
}
