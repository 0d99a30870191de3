package resume

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// MemoryStore is an in-process Store used by tests and the CLI's file-backed
// workflows. All returned documents are deep copies.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[uuid.UUID]*types.Resume
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{resumes: make(map[uuid.UUID]*types.Resume)}
}

// Insert stores a new resume.
func (s *MemoryStore) Insert(_ context.Context, r *types.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := r.Clone()
	s.resumes[r.ID] = &clone
	return nil
}

// Update overwrites an existing resume.
func (s *MemoryStore) Update(_ context.Context, r *types.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[r.ID]; !ok {
		return &NotFoundError{Kind: "resume", ID: r.ID}
	}
	clone := r.Clone()
	s.resumes[r.ID] = &clone
	return nil
}

// Get returns a resume by ID, excluding soft-deleted documents.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[id]
	if !ok || r.Deleted {
		return nil, &NotFoundError{Kind: "resume", ID: id}
	}
	clone := r.Clone()
	return &clone, nil
}

// ListByOwner returns the owner's resumes, newest first, excluding
// soft-deleted documents.
func (s *MemoryStore) ListByOwner(_ context.Context, ownerID uuid.UUID, filter ListFilter) ([]*types.Resume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*types.Resume
	for _, r := range s.resumes {
		if r.OwnerID != ownerID || r.Deleted {
			continue
		}
		if filter.Status != "" && r.Settings.Status != filter.Status {
			continue
		}
		if filter.Tag != "" && !hasTag(r, filter.Tag) {
			continue
		}
		clone := r.Clone()
		out = append(out, &clone)
	}
	sortByUpdatedDesc(out)
	return out, nil
}

// SlugExists reports whether any non-deleted resume of the owner already
// uses the slug.
func (s *MemoryStore) SlugExists(_ context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.resumes {
		if r.OwnerID == ownerID && r.Slug == slug && !r.Deleted {
			return true, nil
		}
	}
	return false, nil
}

// Delete soft-deletes a resume: it disappears from standard queries but
// remains until purged.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resumes[id]
	if !ok || r.Deleted {
		return &NotFoundError{Kind: "resume", ID: id}
	}
	r.Deleted = true
	return nil
}

// Purge removes a resume permanently.
func (s *MemoryStore) Purge(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[id]; !ok {
		return &NotFoundError{Kind: "resume", ID: id}
	}
	delete(s.resumes, id)
	return nil
}

// DeleteStaleDrafts removes drafts not modified since cutoff and returns how
// many were dropped.
func (s *MemoryStore) DeleteStaleDrafts(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.resumes {
		if r.Settings.Status == types.StatusDraft && r.UpdatedAt.Before(cutoff) {
			delete(s.resumes, id)
			n++
		}
	}
	return n, nil
}

func hasTag(r *types.Resume, tag string) bool {
	for _, t := range r.Settings.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func sortByUpdatedDesc(resumes []*types.Resume) {
	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
	})
}
