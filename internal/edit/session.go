// Package edit coordinates inline translation edits. At most one region's
// editor may hold an uncommitted value at a time per page; any conflicting
// action (opening a different editor, starting a render) commits the
// pending edit first so typed text is never silently lost.
package edit

import (
	"errors"
	"sync"
)

// ErrNoOpenEdit indicates an Update with no edit in progress.
var ErrNoOpenEdit = errors.New("no edit in progress")

// CommitFunc writes a pending value through to the region's translated
// text. It receives the freshest pending value at commit time.
type CommitFunc func(value string) error

type openEdit struct {
	regionID string
	pending  string
	commit   CommitFunc
}

// Session tracks the single open inline edit for one page view. The zero
// value is not usable; create sessions through a Registry or NewSession.
// All methods are safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	current *openEdit
}

// NewSession returns an empty edit session.
func NewSession() *Session {
	return &Session{}
}

// Begin opens an edit for a region. If a different region's edit is already
// open it is committed first, so there is never more than one outstanding
// uncommitted edit. Re-beginning the same region just refreshes the commit
// function and initial value.
func (s *Session) Begin(regionID, initial string, commit CommitFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.regionID != regionID {
		if err := s.commitLocked(); err != nil {
			return err
		}
	}
	s.current = &openEdit{regionID: regionID, pending: initial, commit: commit}
	return nil
}

// Update replaces the pending value of the open edit. A later auto-commit
// applies this value, not the one captured at Begin.
func (s *Session) Update(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNoOpenEdit
	}
	s.current.pending = value
	return nil
}

// Commit writes the pending value through and clears the session. Calling
// it with nothing open is a no-op.
func (s *Session) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked()
}

// Cancel discards the pending value without committing. Calling it with
// nothing open is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns the open edit's region id and pending value, and whether
// an edit is open at all.
func (s *Session) Current() (regionID, pending string, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", "", false
	}
	return s.current.regionID, s.current.pending, true
}

func (s *Session) commitLocked() error {
	if s.current == nil {
		return nil
	}
	cur := s.current
	// Clear before invoking so a failing commit does not leave a half-open
	// edit that would be committed again by the next conflicting action.
	s.current = nil
	if cur.commit == nil {
		return nil
	}
	return cur.commit(cur.pending)
}

// Registry hands out one Session per page. Sessions are created lazily and
// dropped when their page is deleted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// ForPage returns the page's session, creating it if needed.
func (r *Registry) ForPage(pageID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[pageID]
	if !ok {
		s = NewSession()
		r.sessions[pageID] = s
	}
	return s
}

// Drop discards a page's session, if any.
func (r *Registry) Drop(pageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, pageID)
}
