package resume

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-builder/internal/sanitize"
	"github.com/jonathan/resume-builder/internal/types"
)

// Service owns the resume lifecycle. The Mongoose-style save hooks of the
// original platform are expressed here as explicit pipeline steps run in a
// fixed order: normalize, slug, validate, version, score, persist.
type Service struct {
	store Store
	log   *logrus.Logger
}

// NewService creates a service over the given store.
func NewService(store Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, log: log}
}

// Create persists a new resume. Input strings are normalized, a unique slug
// is generated from the name fields when absent, and the completeness and
// experience scores are computed before the first save. New resumes start
// with no version history.
func (s *Service) Create(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	doc := r.Clone()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	sanitize.NormalizeResume(&doc)
	if doc.Settings.Status == "" {
		doc.Settings.Status = types.StatusDraft
	}
	if doc.Settings.Locale == "" {
		doc.Settings.Locale = "en"
	}
	if doc.Settings.Theme == "" {
		doc.Settings.Theme = "default"
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume: %w", err)
	}
	if doc.Slug == "" {
		slug, err := UniqueSlug(ctx, s.store, doc.OwnerID, doc.PersonalInfo.FullName())
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
		doc.Slug = slug
	}
	doc.CompletenessScore = CompletenessScore(&doc)
	doc.ExperienceScore = ExperienceScore(&doc)
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Versions = nil

	if err := s.store.Insert(ctx, &doc); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"resume_id": doc.ID, "slug": doc.Slug}).Info("resume created")
	return &doc, nil
}

// Update applies a mutation to a stored resume. The previously persisted
// state is snapshotted into the version history before the mutation lands
// (snapshot-before-mutation), so every version entry is a state that was
// actually persisted at some point. Changed data is re-normalized and
// re-validated, and scores are recomputed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, comment string, mutate func(*types.Resume) error) (*types.Resume, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := doc.Snapshot()

	if err := mutate(doc); err != nil {
		return nil, err
	}
	appendVersion(doc, previous, comment)

	sanitize.NormalizeResume(doc)
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resume update: %w", err)
	}
	doc.CompletenessScore = CompletenessScore(doc)
	doc.ExperienceScore = ExperienceScore(doc)
	doc.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, doc); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"resume_id": doc.ID, "versions": len(doc.Versions)}).Info("resume updated")
	return doc, nil
}

// Get returns a resume by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	return s.store.Get(ctx, id)
}

// ListByOwner returns the owner's resumes, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*types.Resume, error) {
	return s.store.ListByOwner(ctx, ownerID, filter)
}

// AddVersion snapshots the current state into the version history without
// changing any other field.
func (s *Service) AddVersion(ctx context.Context, id uuid.UUID, comment string) (*types.Resume, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	appendVersion(doc, doc.Snapshot(), comment)
	doc.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Rollback overwrites the live document fields with a snapshot's data. The
// version history itself is preserved, not replaced. Returns NotFoundError
// when the snapshot ID does not exist.
func (s *Service) Rollback(ctx context.Context, id, versionID uuid.UUID) (*types.Resume, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var snapshot *types.Version
	for i := range doc.Versions {
		if doc.Versions[i].ID == versionID {
			snapshot = &doc.Versions[i]
			break
		}
	}
	if snapshot == nil {
		return nil, &NotFoundError{Kind: "version", ID: versionID}
	}

	restored := snapshot.Data.Clone()
	restored.ID = doc.ID
	restored.Versions = doc.Versions
	restored.CreatedAt = doc.CreatedAt
	restored.UpdatedAt = time.Now()
	restored.CompletenessScore = CompletenessScore(&restored)
	restored.ExperienceScore = ExperienceScore(&restored)

	if err := s.store.Update(ctx, &restored); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"resume_id": id, "version_id": versionID}).Info("resume rolled back")
	return &restored, nil
}

// Duplicate deep-copies a resume into a new document with a fresh unique
// slug, no version history, no uploaded file references, and the given
// status (draft when empty).
func (s *Service) Duplicate(ctx context.Context, sourceID uuid.UUID, status string) (*types.Resume, error) {
	if status == "" {
		status = types.StatusDraft
	}
	if !types.ValidStatus(status) {
		return nil, &InvalidStatusError{Status: status}
	}

	src, err := s.store.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	dup := src.Clone()
	dup.ID = uuid.New()
	dup.Versions = nil
	dup.ResumeFile = nil
	dup.Settings.Status = status
	slug, err := UniqueSlug(ctx, s.store, dup.OwnerID, dup.PersonalInfo.FullName())
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}
	dup.Slug = slug
	now := time.Now()
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := s.store.Insert(ctx, &dup); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"source_id": sourceID, "resume_id": dup.ID, "slug": dup.Slug}).Info("resume duplicated")
	return &dup, nil
}

// SetStatus transitions the resume status. Any state may move to any other
// state, but only through this setter, which rejects values outside the
// enum without touching the document.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*types.Resume, error) {
	if !types.ValidStatus(status) {
		return nil, &InvalidStatusError{Status: status}
	}
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Settings.Status = status
	doc.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete soft-deletes a resume; it stays in the store until purged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Purge permanently removes a resume.
func (s *Service) Purge(ctx context.Context, id uuid.UUID) error {
	return s.store.Purge(ctx, id)
}

// CleanupDrafts removes draft resumes untouched for the given number of
// days and returns how many were removed.
func (s *Service) CleanupDrafts(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.store.DeleteStaleDrafts(ctx, cutoff)
}

// appendVersion pushes a snapshot onto the history and enforces the cap:
// snapshots are immutable once appended, and the oldest entry is evicted
// when the history would exceed types.MaxVersions.
func appendVersion(doc *types.Resume, snapshot types.Resume, comment string) {
	doc.Versions = append(doc.Versions, types.Version{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Comment:   comment,
		Data:      snapshot,
	})
	if len(doc.Versions) > types.MaxVersions {
		doc.Versions = doc.Versions[len(doc.Versions)-types.MaxVersions:]
	}
}
