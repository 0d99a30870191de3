package resume

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// ListFilter narrows ListByOwner results.
type ListFilter struct {
	Status string
	Tag    string
}

// Store is the persistence boundary for resumes. Get, ListByOwner, and
// SlugExists exclude soft-deleted documents; Purge removes them for good.
type Store interface {
	SlugChecker
	Insert(ctx context.Context, r *types.Resume) error
	Update(ctx context.Context, r *types.Resume) error
	Get(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*types.Resume, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
	DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error)
}
