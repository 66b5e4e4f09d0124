package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrPageNotFound indicates an unknown page id.
var ErrPageNotFound = errors.New("page not found")

// Store is the page repository. Implementations must be safe for concurrent
// use; the in-memory implementation is the default, but the interface keeps
// the backend swappable without touching orchestration logic.
type Store interface {
	// Get returns a copy of the page.
	Get(id string) (*Page, error)

	// Put inserts or replaces a page.
	Put(p *Page) error

	// Update applies fn to the page under the store's lock and commits the
	// result, advancing the page's generation. If fn returns an error the
	// page is left untouched. The committed copy is returned.
	Update(id string, fn func(*Page) error) (*Page, error)

	// Delete removes a page, returning the removed copy so the caller can
	// release owned resources.
	Delete(id string) (*Page, error)

	// List returns copies of all pages, newest upload first.
	List() []*Page
}

// MemoryStore is an in-memory Store keyed by page id.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*Page
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*Page)}
}

func (s *MemoryStore) Get(id string) (*Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("get %s: %w", id, ErrPageNotFound)
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Put(p *Page) error {
	if p == nil || p.ID == "" {
		return errors.New("page must have an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Update(id string, fn func(*Page) error) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", id, ErrPageNotFound)
	}
	working := p.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.Generation = p.Generation + 1
	s.pages[id] = working
	return working.Clone(), nil
}

func (s *MemoryStore) Delete(id string) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("delete %s: %w", id, ErrPageNotFound)
	}
	delete(s.pages, id)
	return p, nil
}

func (s *MemoryStore) List() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out
}

var _ Store = (*MemoryStore)(nil)
