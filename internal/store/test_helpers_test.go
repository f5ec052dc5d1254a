package store

import (
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/roach88/facet/internal/ir"
)

// createTestStore creates a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// hookEvent creates a hook event for uid.
func hookEvent(seq int64, uid, name string) ir.TimelineEvent {
	return ir.TimelineEvent{
		Seq:           seq,
		Kind:          ir.EventHook,
		ComponentUID:  uid,
		ComponentName: "counter",
		Name:          name,
	}
}

func posInf() float64 {
	return math.Inf(1)
}

// verifyPragma checks that a pragma reports the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
