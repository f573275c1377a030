package charset

import "errors"

// Charset selection errors.
var (
	// ErrEmptySelection is returned when a selection resolves to zero groups.
	// At least one category is required to generate a password.
	ErrEmptySelection = errors.New("at least one charset category is required to generate passwords")

	// ErrUnknownCategory is returned when a category name cannot be parsed.
	// Valid names are l, u, d, p or lowercase, uppercase, digit(s), punctuation.
	ErrUnknownCategory = errors.New("unknown charset category")
)
