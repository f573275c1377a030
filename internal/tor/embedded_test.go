package tor

import (
	"errors"
	"testing"
	"time"
)

// TestNewEmbeddedTor tests the constructor and its options.
func TestNewEmbeddedTor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		opts     []EmbeddedTorOption
		expected time.Duration
	}{
		{"default", nil, DefaultStartupTimeout},
		{"custom timeout", []EmbeddedTorOption{WithStartupTimeout(90 * time.Second)}, 90 * time.Second},
		{"non-positive timeout ignored", []EmbeddedTorOption{WithStartupTimeout(0)}, DefaultStartupTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			embedded := NewEmbeddedTor(tc.opts...)
			if embedded.StartupTimeout() != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, embedded.StartupTimeout())
			}
		})
	}
}

// TestEmbeddedTorNotStarted tests behavior without launching a daemon.
func TestEmbeddedTorNotStarted(t *testing.T) {
	t.Parallel()

	embedded := NewEmbeddedTor()

	if embedded.IsRunning() {
		t.Error("expected IsRunning to be false before start")
	}
	if embedded.SocksAddr() != "" {
		t.Errorf("expected empty SocksAddr, got %q", embedded.SocksAddr())
	}
	if err := embedded.Stop(); err != nil {
		t.Errorf("expected no error stopping unstarted instance, got %v", err)
	}
	if _, err := embedded.NewClient(5 * time.Second); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}
