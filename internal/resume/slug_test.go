package resume

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestSlugifyBasic(t *testing.T) {
	assert.Equal(t, "john-doe", Slugify("John Doe"))
	assert.Equal(t, "jane-doe-cv-2026", Slugify("Jane Doe: CV (2026)"))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, "", Slugify(""))
}

func TestSlugifyTransliteratesAccents(t *testing.T) {
	assert.Equal(t, "jose-munoz", Slugify("José Muñoz"))
	assert.Equal(t, "francois-buchler", Slugify("François Büchler"))
	assert.Equal(t, "strasse", Slugify("Straße"))
}

func TestSlugifyCachesResults(t *testing.T) {
	first := Slugify("Repeat Me")
	second := Slugify("Repeat Me")
	assert.Equal(t, first, second)
}

func TestUniqueSlugAppendsNumericSuffix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	owner := uuid.New()

	insertWithSlug := func(slug string) {
		doc := &types.Resume{
			ID:           uuid.New(),
			OwnerID:      owner,
			Slug:         slug,
			PersonalInfo: types.PersonalInfo{FirstName: "John", LastName: "Doe"},
		}
		require.NoError(t, store.Insert(ctx, doc))
	}

	slug, err := UniqueSlug(ctx, store, owner, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "john-doe", slug)

	insertWithSlug("john-doe")
	slug, err = UniqueSlug(ctx, store, owner, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "john-doe-1", slug)

	insertWithSlug("john-doe-1")
	slug, err = UniqueSlug(ctx, store, owner, "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "john-doe-2", slug)
}

func TestUniqueSlugScopedPerOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	owner := uuid.New()

	doc := &types.Resume{
		ID:           uuid.New(),
		OwnerID:      owner,
		Slug:         "john-doe",
		PersonalInfo: types.PersonalInfo{FirstName: "John", LastName: "Doe"},
	}
	require.NoError(t, store.Insert(ctx, doc))

	slug, err := UniqueSlug(ctx, store, uuid.New(), "John Doe")
	require.NoError(t, err)
	assert.Equal(t, "john-doe", slug, "other owners may reuse the slug")
}

func TestUniqueSlugEmptyBase(t *testing.T) {
	slug, err := UniqueSlug(context.Background(), NewMemoryStore(), uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "resume", slug)
}
