package breach

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by the range API, not used for security
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/md4" //nolint:staticcheck // NTLM is MD4 by definition
	"golang.org/x/text/encoding/unicode"
)

// PrefixLength is the number of hex characters sent to the range endpoint.
const PrefixLength = 5

// HashMode selects the hash family queried on the range endpoint.
type HashMode int

const (
	// HashSHA1 queries the default SHA-1 corpus.
	HashSHA1 HashMode = iota

	// HashNTLM queries the NTLM corpus (?mode=ntlm).
	HashNTLM
)

// String returns the flag name of the mode.
func (m HashMode) String() string {
	switch m {
	case HashSHA1:
		return "sha1"
	case HashNTLM:
		return "ntlm"
	default:
		return "unknown"
	}
}

// ParseHashMode parses "sha1" or "ntlm", case-insensitively.
func ParseHashMode(s string) (HashMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha1", "sha-1", "":
		return HashSHA1, nil
	case "ntlm":
		return HashNTLM, nil
	default:
		return 0, fmt.Errorf("unknown hash mode %q (expected sha1 or ntlm)", s)
	}
}

// Hash returns the uppercase hex digest of password for the given mode.
func Hash(password string, mode HashMode) (string, error) {
	var sum []byte
	switch mode {
	case HashSHA1:
		digest := sha1.Sum([]byte(password)) //nolint:gosec // see import
		sum = digest[:]
	case HashNTLM:
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(password))
		if err != nil {
			return "", fmt.Errorf("failed to encode password as UTF-16LE: %w", err)
		}
		h := md4.New()
		h.Write(encoded) //nolint:errcheck // hash.Hash.Write never fails
		sum = h.Sum(nil)
	default:
		return "", fmt.Errorf("unsupported hash mode %d", mode)
	}
	return strings.ToUpper(hex.EncodeToString(sum)), nil
}

// SplitHash splits a hex digest into the range prefix and the local suffix.
func SplitHash(digest string) (prefix, suffix string) {
	return digest[:PrefixLength], digest[PrefixLength:]
}
