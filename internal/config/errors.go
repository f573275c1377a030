package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidLength is returned when the password length is outside MinLength..MaxLength.
	ErrInvalidLength = errors.New("invalid password length: must be between 12 and 90")

	// ErrInvalidCount is returned when the number of passwords is outside 1..MaxCount.
	ErrInvalidCount = errors.New("invalid number of passwords: must be between 1 and 50")

	// ErrConflictingCharsets is returned when both --charsets and
	// --exclude-charsets are given.
	ErrConflictingCharsets = errors.New("conflicting charsets: --charsets and --exclude-charsets cannot be used together")

	// ErrInvalidTimeout is returned when the lookup timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxRetries is returned when the leak retry budget is negative.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidConcurrency is returned when the audit concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidFormat is returned for an unsupported output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrConflictingTor is returned when both --tor and --tor-proxy are given.
	ErrConflictingTor = errors.New("conflicting Tor options: --tor and --tor-proxy cannot be used together")

	// ErrInvalidHashMode is returned for an unsupported hash mode.
	ErrInvalidHashMode = errors.New("invalid hash mode")
)
