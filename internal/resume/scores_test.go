package resume

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestCompletenessScoreBuckets(t *testing.T) {
	r := &types.Resume{}
	assert.Equal(t, 0, CompletenessScore(r))

	r.PersonalInfo = types.PersonalInfo{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, 20, CompletenessScore(r))

	r.Education = []types.EducationEntry{{Degree: "BSc", School: "MIT"}}
	r.Experience = []types.ExperienceEntry{{JobTitle: "Engineer", Company: "Acme"}}
	assert.Equal(t, 60, CompletenessScore(r))

	r.Skills = []types.Skill{{Name: "Go", Level: 5}}
	r.Certifications = []types.Certification{{Name: "CKA"}}
	assert.Equal(t, 100, CompletenessScore(r))
}

func TestCompletenessScoreRequiresBothNames(t *testing.T) {
	r := &types.Resume{PersonalInfo: types.PersonalInfo{FirstName: "Jane"}}
	assert.Equal(t, 0, CompletenessScore(r))
}

func TestExperienceScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, ExperienceScore(&types.Resume{}))
}

func TestExperienceScoreCombinesYearsAndSkills(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	r := &types.Resume{
		Experience: []types.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", StartDate: &start, EndDate: &end},
		},
		Skills: []types.Skill{{Name: "Go", Level: 4}},
	}

	// Two years at 5 points each plus an average skill level of 4 at 10
	// points each.
	assert.Equal(t, 50, ExperienceScore(r))
}

func TestExperienceScoreDoesNotDoubleCountOverlaps(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	r := &types.Resume{
		Experience: []types.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", StartDate: &start, EndDate: &end},
			{JobTitle: "Consultant", Company: "Beta", StartDate: &start, EndDate: &end},
		},
		Skills: []types.Skill{{Name: "Go", Level: 4}},
	}

	// The two concurrent roles cover the same two calendar years.
	assert.Equal(t, 50, ExperienceScore(r))
}

func TestExperienceScoreCappedAt100(t *testing.T) {
	start := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &types.Resume{
		Experience: []types.ExperienceEntry{
			{JobTitle: "Engineer", Company: "Acme", StartDate: &start},
		},
		Skills: []types.Skill{{Name: "Go", Level: 5}},
	}
	assert.Equal(t, 100, ExperienceScore(r))
}

func TestExperienceScoreIgnoresEntriesWithoutStart(t *testing.T) {
	r := &types.Resume{
		Experience: []types.ExperienceEntry{{JobTitle: "Engineer", Company: "Acme"}},
	}
	assert.Equal(t, 0, ExperienceScore(r))
}
