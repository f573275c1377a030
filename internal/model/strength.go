package model

import "fmt"

// Strength is the guessing-resistance bucket of a password, derived only
// from its entropy in bits.
//
// The buckets follow the classic entropy chart:
//
//	< 28 bits    Very Weak
//	28 - 35 bits Weak
//	36 - 59 bits Reasonable
//	60 - 127 bits Strong
//	128+ bits    Very Strong
type Strength int

const (
	// StrengthVeryWeak is below 28 bits.
	StrengthVeryWeak Strength = iota

	// StrengthWeak is 28 to 35 bits.
	StrengthWeak

	// StrengthReasonable is 36 to 59 bits.
	StrengthReasonable

	// StrengthStrong is 60 to 127 bits.
	StrengthStrong

	// StrengthVeryStrong is 128 bits and above.
	StrengthVeryStrong
)

// String returns a human-readable representation of the strength bucket.
func (s Strength) String() string {
	switch s {
	case StrengthVeryWeak:
		return "Very Weak"
	case StrengthWeak:
		return "Weak"
	case StrengthReasonable:
		return "Reasonable"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "Very Strong"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML reports
// carry the label instead of the ordinal.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the labels
// produced by MarshalText.
func (s *Strength) UnmarshalText(text []byte) error {
	for _, info := range strengthTable {
		if info.Strength.String() == string(text) {
			*s = info.Strength
			return nil
		}
	}
	return fmt.Errorf("unknown strength %q", text)
}

// StrengthInfo describes a strength bucket.
type StrengthInfo struct {
	Strength Strength

	// MinBits is the inclusive lower bound of the bucket.
	MinBits int

	// Usage is the typical use the bucket is adequate for.
	Usage string
}

// strengthTable lists the buckets in ascending order.
var strengthTable = []StrengthInfo{
	{Strength: StrengthVeryWeak, MinBits: 0, Usage: "might keep out family members"},
	{Strength: StrengthWeak, MinBits: 28, Usage: "should keep out most people, often good for desktop login passwords"},
	{Strength: StrengthReasonable, MinBits: 36, Usage: "fairly secure passwords for network and company passwords"},
	{Strength: StrengthStrong, MinBits: 60, Usage: "can be good for guarding financial information"},
	{Strength: StrengthVeryStrong, MinBits: 128, Usage: "often overkill"},
}

// StrengthTable returns a copy of the bucket table in ascending order.
func StrengthTable() []StrengthInfo {
	out := make([]StrengthInfo, len(strengthTable))
	copy(out, strengthTable)
	return out
}

// GetStrengthInfo returns the table entry for s.
func GetStrengthInfo(s Strength) StrengthInfo {
	for _, info := range strengthTable {
		if info.Strength == s {
			return info
		}
	}
	return StrengthInfo{Strength: s, Usage: "unknown"}
}
