package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/nao1215/rpg/internal/breach"
	"github.com/nao1215/rpg/internal/config"
)

// leakedRangeBody returns a range body listing password with count hits.
func leakedRangeBody(t *testing.T, password string, count int) func(string) string {
	t.Helper()

	digest, err := breach.Hash(password, breach.HashSHA1)
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	prefix, suffix := breach.SplitHash(digest)

	return func(requested string) string {
		if requested != prefix {
			return ""
		}
		return fmt.Sprintf("%s:%d\r\n", suffix, count)
	}
}

func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	if cmd.Use != "check [password...]" {
		t.Errorf("expected use 'check [password...]', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected non-empty descriptions")
	}

	flag := cmd.Flags().Lookup("concurrency")
	if flag == nil {
		t.Fatal("expected concurrency flag")
	}
	if flag.DefValue != "4" {
		t.Errorf("expected default '4', got %q", flag.DefValue)
	}
}

func TestReadPasswords(t *testing.T) {
	t.Parallel()

	got, err := readPasswords(strings.NewReader("first\n\n  \nsecond pass\r\n third\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second pass", " third"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("readPasswords() = %q, want %q", got, want)
	}
}

// TestCheckCmd tests audits against a fake range API.
func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("arguments with a leak", func(t *testing.T) {
		t.Parallel()

		api := newFakeRangeAPI(t, http.StatusOK, leakedRangeBody(t, "password", 9659365))

		stdout, _, err := executeRoot(t, "", "check", "--api-url", api.URL, "password", "Xk9#vQ2!mZ7@pL4$")
		if !errors.Is(err, errLeaksFound) {
			t.Fatalf("expected errLeaksFound, got %v", err)
		}

		for _, want := range []string{"#1  LEAKED  (seen 9659365 times)", "#2  safe", "1 leaked, 1 safe, 0 failed"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "password") {
			t.Error("audit output must not echo passwords")
		}
		if got := api.requests.Load(); got != 2 {
			t.Errorf("expected 2 range requests, got %d", got)
		}
	})

	t.Run("stdin without leaks", func(t *testing.T) {
		t.Parallel()

		api := newFakeRangeAPI(t, http.StatusOK, leakedRangeBody(t, "password", 1))

		stdout, _, err := executeRoot(t, "one-secret\ntwo-secret\n", "check", "--api-url", api.URL, "-f", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `"status": "safe"`) {
			t.Errorf("expected JSON entries, got %s", stdout)
		}
		if got := api.requests.Load(); got != 2 {
			t.Errorf("expected 2 range requests, got %d", got)
		}
	})

	t.Run("failed lookups are reported", func(t *testing.T) {
		t.Parallel()

		api := newFakeRangeAPI(t, http.StatusServiceUnavailable, nil)

		stdout, _, err := executeRoot(t, "", "check", "--api-url", api.URL, "whatever")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "0 leaked, 0 safe, 1 failed") {
			t.Errorf("expected failure summary, got:\n%s", stdout)
		}
	})

	t.Run("no input", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeRoot(t, "\n\n", "check"); err == nil {
			t.Error("expected error without passwords")
		}
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		t.Parallel()

		_, _, err := executeRoot(t, "", "check", "--concurrency", "0", "pw")
		if !errors.Is(err, config.ErrInvalidConcurrency) {
			t.Errorf("expected ErrInvalidConcurrency, got %v", err)
		}
	})
}
