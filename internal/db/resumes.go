package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeStore implements resume.Store on top of a resumes table with a
// jsonb document column. Status, slug, and the deleted flag are denormalized
// into columns so queries stay on indexes.
type ResumeStore struct {
	db *DB
}

// NewResumeStore creates a store over an open connection pool.
func NewResumeStore(db *DB) *ResumeStore {
	return &ResumeStore{db: db}
}

var _ resume.Store = (*ResumeStore)(nil)

// Insert stores a new resume document.
func (s *ResumeStore) Insert(ctx context.Context, r *types.Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO resumes (id, owner_id, slug, status, deleted, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.OwnerID, r.Slug, r.Settings.Status, r.Deleted, doc, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}
	return nil
}

// Update overwrites a stored resume document.
func (s *ResumeStore) Update(ctx context.Context, r *types.Resume) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	tag, err := s.db.pool.Exec(ctx,
		`UPDATE resumes SET slug = $2, status = $3, deleted = $4, document = $5, updated_at = $6
		 WHERE id = $1`,
		r.ID, r.Slug, r.Settings.Status, r.Deleted, doc, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &resume.NotFoundError{Kind: "resume", ID: r.ID}
	}
	return nil
}

// Get returns a resume by ID, excluding soft-deleted rows.
func (s *ResumeStore) Get(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var doc []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT document FROM resumes WHERE id = $1 AND NOT deleted`, id,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &resume.NotFoundError{Kind: "resume", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resume: %w", err)
	}
	var r types.Resume
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	return &r, nil
}

// ListByOwner returns the owner's resumes, newest first.
func (s *ResumeStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter resume.ListFilter) ([]*types.Resume, error) {
	query := `SELECT document FROM resumes WHERE owner_id = $1 AND NOT deleted`
	args := []any{ownerID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		query += fmt.Sprintf(` AND document->'settings'->'tags' ? $%d`, len(args))
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []*types.Resume
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		var r types.Resume
		if err := json.Unmarshal(doc, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume row: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

// SlugExists reports whether a non-deleted resume of the owner uses the slug.
func (s *ResumeStore) SlugExists(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	var exists bool
	err := s.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM resumes WHERE owner_id = $1 AND slug = $2 AND NOT deleted)`,
		ownerID, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Delete soft-deletes a resume.
func (s *ResumeStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.pool.Exec(ctx,
		`UPDATE resumes SET deleted = TRUE, updated_at = NOW() WHERE id = $1 AND NOT deleted`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &resume.NotFoundError{Kind: "resume", ID: id}
	}
	return nil
}

// Purge removes a resume row permanently.
func (s *ResumeStore) Purge(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to purge resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &resume.NotFoundError{Kind: "resume", ID: id}
	}
	return nil
}

// DeleteStaleDrafts removes drafts not modified since cutoff.
func (s *ResumeStore) DeleteStaleDrafts(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE status = 'draft' AND updated_at < $1`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", err)
	}
	return tag.RowsAffected(), nil
}
