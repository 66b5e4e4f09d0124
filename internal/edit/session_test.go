package edit

import (
	"errors"
	"fmt"
	"testing"
)

func TestSessionBeginUpdateCommit(t *testing.T) {
	s := NewSession()
	var committed []string

	if err := s.Begin("r1", "initial", func(v string) error {
		committed = append(committed, v)
		return nil
	}); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	id, pending, open := s.Current()
	if !open || id != "r1" || pending != "initial" {
		t.Errorf("Current = (%q, %q, %v)", id, pending, open)
	}

	if err := s.Update("typed"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if len(committed) != 1 || committed[0] != "typed" {
		t.Errorf("committed = %v, want [typed]", committed)
	}
	if _, _, open := s.Current(); open {
		t.Error("session still open after commit")
	}
}

func TestSessionBeginAutoCommitsOtherRegion(t *testing.T) {
	s := NewSession()
	var committed []string
	record := func(v string) error {
		committed = append(committed, v)
		return nil
	}

	if err := s.Begin("r1", "one", record); err != nil {
		t.Fatalf("Begin r1: %v", err)
	}
	if err := s.Update("one edited"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Opening a different region's edit commits the pending one first.
	if err := s.Begin("r2", "two", record); err != nil {
		t.Fatalf("Begin r2: %v", err)
	}
	if len(committed) != 1 || committed[0] != "one edited" {
		t.Errorf("committed = %v, want [one edited]", committed)
	}

	id, pending, open := s.Current()
	if !open || id != "r2" || pending != "two" {
		t.Errorf("Current = (%q, %q, %v)", id, pending, open)
	}
}

func TestSessionBeginSameRegionRefreshes(t *testing.T) {
	s := NewSession()
	var committed []string
	record := func(v string) error {
		committed = append(committed, v)
		return nil
	}

	if err := s.Begin("r1", "first", record); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := s.Begin("r1", "second", record); err != nil {
		t.Fatalf("re-Begin: %v", err)
	}
	if len(committed) != 0 {
		t.Errorf("re-beginning the same region committed: %v", committed)
	}

	_, pending, _ := s.Current()
	if pending != "second" {
		t.Errorf("pending = %q, want second", pending)
	}
}

func TestSessionBeginPropagatesCommitFailure(t *testing.T) {
	s := NewSession()
	if err := s.Begin("r1", "v", func(string) error {
		return fmt.Errorf("write failed")
	}); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	err := s.Begin("r2", "w", nil)
	if err == nil {
		t.Fatal("expected commit failure to propagate")
	}
	// The failed edit is cleared, not left half-open.
	if _, _, open := s.Current(); open {
		t.Error("session open after failed auto-commit")
	}
}

func TestSessionUpdateWithoutOpenEdit(t *testing.T) {
	s := NewSession()
	if err := s.Update("x"); !errors.Is(err, ErrNoOpenEdit) {
		t.Errorf("err = %v, want ErrNoOpenEdit", err)
	}
}

func TestSessionCommitEmptyIsNoop(t *testing.T) {
	s := NewSession()
	if err := s.Commit(); err != nil {
		t.Errorf("Commit on empty session: %v", err)
	}
}

func TestSessionCancel(t *testing.T) {
	s := NewSession()
	var committed int
	if err := s.Begin("r1", "v", func(string) error {
		committed++
		return nil
	}); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	s.Cancel()
	if committed != 0 {
		t.Error("Cancel invoked the commit function")
	}
	if _, _, open := s.Current(); open {
		t.Error("session open after cancel")
	}
	if err := s.Commit(); err != nil {
		t.Errorf("Commit after cancel: %v", err)
	}
	if committed != 0 {
		t.Error("cancelled edit was committed later")
	}

	// Cancel with nothing open is fine.
	s.Cancel()
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	s1 := r.ForPage("p1")
	if s1 == nil {
		t.Fatal("ForPage returned nil")
	}
	if r.ForPage("p1") != s1 {
		t.Error("ForPage did not return the same session")
	}
	if r.ForPage("p2") == s1 {
		t.Error("different pages share a session")
	}

	r.Drop("p1")
	if r.ForPage("p1") == s1 {
		t.Error("Drop did not discard the session")
	}
}
