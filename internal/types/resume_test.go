package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *Resume {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	return &Resume{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		PersonalInfo: PersonalInfo{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Links:     []Link{{Label: "GitHub", Type: "github", URL: "https://github.com/jane"}},
		},
		Experience: []ExperienceEntry{
			{
				JobTitle:         "Engineer",
				Company:          "Acme",
				StartDate:        &start,
				EndDate:          &end,
				Responsibilities: []string{"built services"},
			},
		},
		Skills:   []Skill{{Name: "Go", Level: SkillExpert}},
		Settings: Settings{Status: StatusDraft, Visibility: DefaultVisibility()},
	}
}

func TestValidateAcceptsCompleteResume(t *testing.T) {
	assert.NoError(t, sampleResume().Validate())
}

func TestValidateRejectsMissingName(t *testing.T) {
	r := sampleResume()
	r.PersonalInfo.FirstName = ""
	assert.Error(t, r.Validate())
}

func TestValidateRejectsBadEmail(t *testing.T) {
	r := sampleResume()
	r.PersonalInfo.Email = "not-an-email"
	assert.Error(t, r.Validate())
}

func TestValidateRejectsSkillLevelOutOfRange(t *testing.T) {
	r := sampleResume()
	r.Skills[0].Level = 6
	assert.Error(t, r.Validate())
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	r := sampleResume()
	r.Settings.Status = "live"
	assert.Error(t, r.Validate())
}

func TestValidateRejectsEndBeforeStart(t *testing.T) {
	r := sampleResume()
	inverted := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	r.Experience[0].EndDate = &inverted

	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes start date")
}

func TestFullName(t *testing.T) {
	p := PersonalInfo{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", p.FullName())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusDraft))
	assert.True(t, ValidStatus(StatusPublished))
	assert.True(t, ValidStatus(StatusArchived))
	assert.False(t, ValidStatus("live"))
	assert.False(t, ValidStatus(""))
}

func TestIsPublished(t *testing.T) {
	r := sampleResume()
	assert.False(t, r.IsPublished())
	r.Settings.Status = StatusPublished
	assert.True(t, r.IsPublished())
}

func TestExperienceYearsCountsDistinctYears(t *testing.T) {
	s1 := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	e1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s2 := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	e2 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &Resume{
		Experience: []ExperienceEntry{
			{StartDate: &s1, EndDate: &e1},
			{StartDate: &s2, EndDate: &e2},
		},
	}

	// 2018-2020 and 2019-2021 overlap; the union is 2018..2021.
	assert.Equal(t, 4, r.ExperienceYears())
}

func TestDefaultVisibilityShowsEverything(t *testing.T) {
	v := DefaultVisibility()
	assert.True(t, v.PersonalInfo)
	assert.True(t, v.Summary)
	assert.True(t, v.Experience)
	assert.True(t, v.Skills)
	assert.True(t, v.Additional)
}

func TestCloneIsDeep(t *testing.T) {
	r := sampleResume()
	r.Versions = []Version{{ID: uuid.New(), CreatedAt: time.Now(), Data: *r}}

	clone := r.Clone()
	clone.PersonalInfo.FirstName = "Other"
	clone.Skills[0].Name = "Rust"
	clone.Experience[0].Responsibilities[0] = "changed"
	clone.PersonalInfo.Links[0].URL = "https://example.com"
	clone.Versions[0].Data.PersonalInfo.FirstName = "Nested"

	assert.Equal(t, "Jane", r.PersonalInfo.FirstName)
	assert.Equal(t, "Go", r.Skills[0].Name)
	assert.Equal(t, "built services", r.Experience[0].Responsibilities[0])
	assert.Equal(t, "https://github.com/jane", r.PersonalInfo.Links[0].URL)
	assert.Equal(t, "Jane", r.Versions[0].Data.PersonalInfo.FirstName)
}

func TestSnapshotDetachesIdentityAndHistory(t *testing.T) {
	r := sampleResume()
	r.Versions = []Version{{ID: uuid.New(), CreatedAt: time.Now()}}

	snap := r.Snapshot()
	assert.Equal(t, uuid.Nil, snap.ID)
	assert.Empty(t, snap.Versions)
	assert.Equal(t, r.PersonalInfo.FullName(), snap.PersonalInfo.FullName())
}
