package resume

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func newTestService() (*Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, nil), store
}

func validResume() *types.Resume {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return &types.Resume{
		OwnerID: uuid.New(),
		PersonalInfo: types.PersonalInfo{
			FirstName: "John",
			LastName:  "Doe",
			Email:     "john@example.com",
		},
		ProfessionalSummary: "initial summary",
		Experience: []types.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", StartDate: &start},
		},
		Skills:   []types.Skill{{Name: "Go", Level: 4}},
		Settings: types.Settings{Visibility: types.DefaultVisibility()},
	}
}

func TestCreateAppliesDefaultsAndSlug(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), validResume())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, types.StatusDraft, created.Settings.Status)
	assert.Equal(t, "en", created.Settings.Locale)
	assert.Equal(t, "default", created.Settings.Theme)
	assert.Equal(t, "john-doe", created.Slug)
	assert.Empty(t, created.Versions, "new resumes start without history")
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Greater(t, created.CompletenessScore, 0)
	assert.Greater(t, created.ExperienceScore, 0)
}

func TestCreateRejectsInvalidResume(t *testing.T) {
	svc, _ := newTestService()

	doc := validResume()
	doc.PersonalInfo.LastName = ""
	_, err := svc.Create(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resume")
}

func TestCreateResolvesSlugCollisions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	owner := uuid.New()
	first := validResume()
	first.OwnerID = owner
	second := validResume()
	second.OwnerID = owner

	created1, err := svc.Create(ctx, first)
	require.NoError(t, err)
	created2, err := svc.Create(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, "john-doe", created1.Slug)
	assert.Equal(t, "john-doe-1", created2.Slug)
}

func TestUpdateSnapshotsPreviousState(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "reworded summary", func(doc *types.Resume) error {
		doc.ProfessionalSummary = "updated summary"
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "updated summary", updated.ProfessionalSummary)
	require.Len(t, updated.Versions, 1)
	version := updated.Versions[0]
	assert.Equal(t, "reworded summary", version.Comment)
	assert.Equal(t, "initial summary", version.Data.ProfessionalSummary,
		"the snapshot must hold the state before the mutation")
	assert.Empty(t, version.Data.Versions, "snapshots do not nest history")
}

func TestUpdateMutationErrorLeavesStoreUntouched(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "", func(doc *types.Resume) error {
		doc.ProfessionalSummary = "should not persist"
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "initial summary", stored.ProfessionalSummary)
	assert.Empty(t, stored.Versions)
}

func TestUpdateUnknownResume(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), "", func(*types.Resume) error { return nil })
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "resume", notFound.Kind)
}

func TestVersionHistoryCapEvictsOldest(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	var last *types.Resume
	for i := 1; i <= types.MaxVersions+10; i++ {
		comment := fmt.Sprintf("c%d", i)
		last, err = svc.Update(ctx, created.ID, comment, func(doc *types.Resume) error {
			doc.ProfessionalSummary = comment
			return nil
		})
		require.NoError(t, err)
	}

	require.Len(t, last.Versions, types.MaxVersions)
	assert.Equal(t, "c11", last.Versions[0].Comment, "the ten oldest snapshots are evicted")
	assert.Equal(t, fmt.Sprintf("c%d", types.MaxVersions+10), last.Versions[types.MaxVersions-1].Comment)
}

func TestAddVersionSnapshotsCurrentState(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	saved, err := svc.AddVersion(ctx, created.ID, "manual checkpoint")
	require.NoError(t, err)

	require.Len(t, saved.Versions, 1)
	assert.Equal(t, "manual checkpoint", saved.Versions[0].Comment)
	assert.Equal(t, "initial summary", saved.Versions[0].Data.ProfessionalSummary)
	assert.Equal(t, "initial summary", saved.ProfessionalSummary, "document content is unchanged")
}

func TestRollbackRestoresSnapshot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "edit", func(doc *types.Resume) error {
		doc.ProfessionalSummary = "changed summary"
		doc.Skills = append(doc.Skills, types.Skill{Name: "Rust", Level: 2})
		return nil
	})
	require.NoError(t, err)
	require.Len(t, updated.Versions, 1)

	restored, err := svc.Rollback(ctx, created.ID, updated.Versions[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "initial summary", restored.ProfessionalSummary)
	assert.Len(t, restored.Skills, 1)
	assert.Equal(t, created.ID, restored.ID)
	assert.Len(t, restored.Versions, 1, "history survives a rollback")
	assert.Equal(t, created.CreatedAt, restored.CreatedAt)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "initial summary", stored.ProfessionalSummary)
}

func TestRollbackUnknownVersion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	missing := uuid.New()
	_, err = svc.Rollback(ctx, created.ID, missing)
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "version", notFound.Kind)
	assert.Equal(t, missing, notFound.ID)
}

func TestDuplicateStartsFresh(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "edit", func(doc *types.Resume) error {
		doc.ResumeFile = &types.FileInfo{Filename: "a.pdf", Path: "/exports/a.pdf", MimeType: "application/pdf"}
		return nil
	})
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, created.ID, types.StatusDraft)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, dup.ID)
	assert.Equal(t, "john-doe-1", dup.Slug)
	assert.Empty(t, dup.Versions, "history is not copied")
	assert.Nil(t, dup.ResumeFile, "generated files are not copied")
	assert.Equal(t, types.StatusDraft, dup.Settings.Status)
	assert.Equal(t, created.PersonalInfo.FirstName, dup.PersonalInfo.FirstName)
}

func TestDuplicateRejectsInvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	_, err = svc.Duplicate(ctx, created.ID, "pending")
	require.Error(t, err)

	var invalid *InvalidStatusError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "pending", invalid.Status)
}

func TestSetStatusTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	published, err := svc.SetStatus(ctx, created.ID, types.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, types.StatusPublished, published.Settings.Status)

	archived, err := svc.SetStatus(ctx, created.ID, types.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, types.StatusArchived, archived.Settings.Status)
}

func TestSetStatusRejectsInvalidWithoutSideEffects(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, created.ID, "live")
	require.Error(t, err)

	var invalid *InvalidStatusError
	require.ErrorAs(t, err, &invalid)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDraft, stored.Settings.Status)
}

func TestDeleteHidesPurgeRemoves(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validResume())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	require.NoError(t, svc.Purge(ctx, created.ID))
	err = svc.Purge(ctx, created.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestCleanupDraftsRemovesStaleOnly(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	stale := validResume()
	stale.ID = uuid.New()
	stale.Settings.Status = types.StatusDraft
	stale.UpdatedAt = time.Now().AddDate(0, 0, -40)
	require.NoError(t, store.Insert(ctx, stale))

	fresh := validResume()
	fresh.ID = uuid.New()
	fresh.Settings.Status = types.StatusDraft
	fresh.UpdatedAt = time.Now()
	require.NoError(t, store.Insert(ctx, fresh))

	published := validResume()
	published.ID = uuid.New()
	published.Settings.Status = types.StatusPublished
	published.UpdatedAt = time.Now().AddDate(0, 0, -40)
	require.NoError(t, store.Insert(ctx, published))

	removed, err := svc.CleanupDrafts(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = svc.Get(ctx, stale.ID)
	assert.Error(t, err)
	_, err = svc.Get(ctx, fresh.ID)
	assert.NoError(t, err)
	_, err = svc.Get(ctx, published.ID)
	assert.NoError(t, err)
}
