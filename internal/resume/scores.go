package resume

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// CompletenessScore rates how filled-in a resume is, 0-100, based on five
// section buckets: name, education, experience, skills, certifications.
func CompletenessScore(r *types.Resume) int {
	total := 5
	score := 0
	if r.PersonalInfo.FirstName != "" && r.PersonalInfo.LastName != "" {
		score++
	}
	if len(r.Education) > 0 {
		score++
	}
	if len(r.Experience) > 0 {
		score++
	}
	if len(r.Skills) > 0 {
		score++
	}
	if len(r.Certifications) > 0 {
		score++
	}
	return int(float64(score) / float64(total) * 100)
}

// ExperienceScore weighs years of experience against average skill level,
// capped at 100. Years come from ExperienceYears, so overlapping periods
// count once.
func ExperienceScore(r *types.Resume) int {
	years := float64(r.ExperienceYears())

	var avgSkill float64
	if len(r.Skills) > 0 {
		sum := 0
		for _, s := range r.Skills {
			sum += s.Level
		}
		avgSkill = float64(sum) / float64(len(r.Skills))
	}

	score := years*5 + avgSkill*10
	if score > 100 {
		score = 100
	}
	return int(score + 0.5)
}
