package model

import "time"

// Batch is the result of one generation run.
//
// All passwords in a batch share the same length and symbol pool, so a
// single entropy value describes every one of them.
type Batch struct {
	// Passwords are the accepted passwords in generation order.
	Passwords []string `json:"passwords" yaml:"passwords"`

	// Length is the number of characters in each password.
	Length int `json:"length" yaml:"length"`

	// Categories are the character categories the pool was built from,
	// by long name (e.g. "lowercase").
	Categories []string `json:"categories" yaml:"categories"`

	// PoolSize is the number of distinct symbols available per position.
	PoolSize int `json:"pool_size" yaml:"pool_size"`

	// Entropy is the entropy of each password in bits.
	Entropy float64 `json:"entropy_bits" yaml:"entropy_bits"`

	// Strength is the chart bucket of Entropy.
	Strength Strength `json:"strength" yaml:"strength"`

	// SafeMode reports whether every password was checked against the
	// breach corpus before acceptance.
	SafeMode bool `json:"safe_mode" yaml:"safe_mode"`

	// Drafts is the total number of candidates generated, including
	// discarded ones.
	Drafts int `json:"drafts" yaml:"drafts"`

	// LeaksDiscarded is the number of candidates found in the breach corpus.
	LeaksDiscarded int `json:"leaks_discarded" yaml:"leaks_discarded"`

	// GeneratedAt is when the batch completed.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// Count returns the number of passwords in the batch.
func (b *Batch) Count() int {
	return len(b.Passwords)
}

// IsCompletePool reports whether all four categories were used.
func (b *Batch) IsCompletePool() bool {
	return len(b.Categories) == 4
}
