// Package entropy computes the information-theoretic entropy of passwords
// drawn uniformly from a symbol pool.
//
// For a pool of R distinct symbols and a length L the number of equally
// likely passwords is R^L, so the entropy is log2(R^L) = L * log2(R) bits.
package entropy

import (
	"errors"
	"fmt"
	"math"

	"github.com/nao1215/rpg/internal/charset"
	"github.com/nao1215/rpg/internal/model"
)

// ErrInvalidPool is returned when entropy is undefined for the input:
// a pool of fewer than two symbols or a non-positive length.
var ErrInvalidPool = errors.New("invalid entropy input")

// Chart is the entropy strength chart shown alongside generated passwords.
const Chart = `Password strength is determined with this chart:
< 28 bits	= Very Weak; might keep out family members
28 - 35 bits	= Weak; should keep out most people, often good for desktop login passwords
36 - 59 bits	= Reasonable; fairly secure passwords for network and company passwords
60 - 127 bits	= Strong; can be good for guarding financial information
128+ bits	= Very Strong; often overkill`

// Calculate returns the entropy in bits of a password of the given length
// drawn from groups.
func Calculate(groups []charset.Group, length int) (float64, error) {
	return Bits(charset.PoolSize(groups), length)
}

// Bits returns length * log2(poolSize).
func Bits(poolSize, length int) (float64, error) {
	if length <= 0 {
		return 0, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidPool, length)
	}
	if poolSize <= 1 {
		return 0, fmt.Errorf("%w: pool needs at least 2 symbols, got %d", ErrInvalidPool, poolSize)
	}
	return float64(length) * math.Log2(float64(poolSize)), nil
}

// Classify returns the chart bucket for the given entropy.
// Bucket boundaries apply to the whole number of bits.
func Classify(bits float64) model.Strength {
	whole := int(math.Floor(bits))
	result := model.StrengthVeryWeak
	for _, info := range model.StrengthTable() {
		if whole >= info.MinBits {
			result = info.Strength
		}
	}
	return result
}
