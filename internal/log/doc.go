// Package log provides the rpg logger: a slog handler that masks
// passwords and password-derived values before they reach the output.
//
// Generated passwords pass through the generation pipeline, the breach
// checker and the report writers. Any of them may log a debug line, so the
// handler masks values by key name (password, candidate, suffix, digest)
// and by shape (full SHA-1 or NTLM digests, bearer credentials). Range
// prefixes are five characters and stay visible.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("candidate drafted", "candidate", pw) // candidate=***REDACTED***
package log
