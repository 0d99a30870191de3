// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Status values for the resume lifecycle. "draft" is used while the user
// edits, "published" means the resume can be publicly shared, and "archived"
// marks it as hidden.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Statuses lists every valid resume status.
var Statuses = []string{StatusDraft, StatusPublished, StatusArchived}

// Themes lists the theme names recognized for PDF generation and previews.
// New themes must be added here so settings validation accepts them.
var Themes = []string{"default", "modern", "classic", "executive", "creative"}

// LanguageLevels lists the supported proficiency levels (CEFR-like scale).
var LanguageLevels = []string{"beginner", "intermediate", "advanced", "fluent", "native"}

// Skill mastery levels used to grade proficiency in a particular skill.
const (
	SkillNovice     = 1
	SkillBeginner   = 2
	SkillCompetent  = 3
	SkillProficient = 4
	SkillExpert     = 5
)

// MaxVersions caps the length of a resume's version history. The oldest
// snapshot is evicted when a new one would exceed the cap.
const MaxVersions = 50

// FileInfo describes an uploaded file (profile image or imported resume).
// Paths are stored relative to the application root.
type FileInfo struct {
	Filename string `json:"filename" validate:"required"`
	Path     string `json:"path" validate:"required"`
	MimeType string `json:"mimetype" validate:"required"`
	Size     int64  `json:"size" validate:"gte=0"`
}

// Link is a labeled URL in the personal info section.
type Link struct {
	Label string `json:"label,omitempty"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=website github linkedin twitter facebook other"`
	URL   string `json:"url,omitempty"`
}

// PersonalInfo holds the candidate's identity and contact details.
type PersonalInfo struct {
	FirstName    string     `json:"first_name" validate:"required"`
	LastName     string     `json:"last_name" validate:"required"`
	Email        string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string     `json:"phone,omitempty"`
	Location     string     `json:"location,omitempty"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Nationality  string     `json:"nationality,omitempty"`
	Website      string     `json:"website,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	ProfileImage *FileInfo  `json:"profile_image,omitempty"`
	Links        []Link     `json:"links,omitempty" validate:"dive"`
}

// FullName joins the first and last name for display and slug generation.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// EducationEntry captures a degree or training course.
type EducationEntry struct {
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"field_of_study,omitempty"`
	School       string     `json:"school" validate:"required"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Grade        string     `json:"grade,omitempty"`
	Description  string     `json:"description,omitempty"`
	Location     string     `json:"location,omitempty"`
	Highlights   []string   `json:"highlights,omitempty"`
}

// ExperienceEntry is a work experience item with open-ended bullet lists.
type ExperienceEntry struct {
	JobTitle         string     `json:"job_title" validate:"required"`
	Company          string     `json:"company" validate:"required"`
	Location         string     `json:"location,omitempty"`
	StartDate        *time.Time `json:"start_date" validate:"required"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	JobType          string     `json:"job_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship freelance temporary"`
	Responsibilities []string   `json:"responsibilities,omitempty"`
	Achievements     []string   `json:"achievements,omitempty"`
	Technologies     []string   `json:"technologies,omitempty"`
	Description      string     `json:"description,omitempty"`
}

// Skill pairs a skill name with a 1-5 mastery level.
type Skill struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"gte=1,lte=5"`
}

// Language is a spoken language with an enumerated proficiency level.
type Language struct {
	Language string `json:"language" validate:"required"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced fluent native"`
}

// Certification is a professional certification or award with optional
// expiration tracking.
type Certification struct {
	Name         string     `json:"name" validate:"required"`
	Issuer       string     `json:"issuer,omitempty"`
	IssueDate    *time.Time `json:"issue_date,omitempty"`
	ExpireDate   *time.Time `json:"expire_date,omitempty"`
	CredentialID string     `json:"credential_id,omitempty"`
	URL          string     `json:"url,omitempty"`
}

// Reference is a contact who can vouch for the candidate.
type Reference struct {
	Name     string `json:"name" validate:"required"`
	Company  string `json:"company,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Relation string `json:"relation,omitempty"`
	Note     string `json:"note,omitempty"`
}

// AdditionalSection is a free-form titled section rendered after the
// structured ones.
type AdditionalSection struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// SectionVisibility toggles entire resume sections on or off without
// deleting the underlying data.
type SectionVisibility struct {
	PersonalInfo   bool `json:"personal_info"`
	Summary        bool `json:"summary"`
	Education      bool `json:"education"`
	Experience     bool `json:"experience"`
	Skills         bool `json:"skills"`
	Certifications bool `json:"certifications"`
	Languages      bool `json:"languages"`
	References     bool `json:"references"`
	Additional     bool `json:"additional"`
}

// DefaultVisibility returns the visibility flags applied to new resumes.
// References and additional sections start hidden.
func DefaultVisibility() SectionVisibility {
	return SectionVisibility{
		PersonalInfo:   true,
		Summary:        true,
		Education:      true,
		Experience:     true,
		Skills:         true,
		Certifications: true,
		Languages:      true,
	}
}

// Settings controls theme, localization, status, and visibility for a resume.
type Settings struct {
	Locale     string            `json:"locale,omitempty"`
	Theme      string            `json:"theme,omitempty" validate:"omitempty,oneof=default modern classic executive creative"`
	Status     string            `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Visibility SectionVisibility `json:"visibility"`
	Tags       []string          `json:"tags,omitempty"`
	CustomCSS  string            `json:"custom_css,omitempty"`
}

// Version is an immutable snapshot of a resume's full field set at a point
// in time. Data never carries its own ID or version history.
type Version struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment,omitempty"`
	Data      Resume    `json:"data"`
}

// Resume is the canonical document the export pipeline consumes. OwnerID
// scopes slug uniqueness; Versions is append-only and capped at MaxVersions.
type Resume struct {
	ID                  uuid.UUID           `json:"id"`
	OwnerID             uuid.UUID           `json:"owner_id"`
	Slug                string              `json:"slug,omitempty"`
	PersonalInfo        PersonalInfo        `json:"personal_info" validate:"required"`
	ProfessionalSummary string              `json:"professional_summary,omitempty"`
	Education           []EducationEntry    `json:"education,omitempty" validate:"dive"`
	Experience          []ExperienceEntry   `json:"experience,omitempty" validate:"dive"`
	Skills              []Skill             `json:"skills,omitempty" validate:"dive"`
	Languages           []Language          `json:"languages,omitempty" validate:"dive"`
	Certifications      []Certification     `json:"certifications,omitempty" validate:"dive"`
	References          []Reference         `json:"references,omitempty" validate:"dive"`
	AdditionalSections  []AdditionalSection `json:"additional_sections,omitempty" validate:"dive"`
	Settings            Settings            `json:"settings"`
	ResumeFile          *FileInfo           `json:"resume_file,omitempty"`
	Versions            []Version           `json:"versions,omitempty"`
	CompletenessScore   int                 `json:"completeness_score"`
	ExperienceScore     int                 `json:"experience_score"`
	Deleted             bool                `json:"deleted,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// Validate checks the resume structure: required fields, enum membership,
// and experience date ordering.
func (r *Resume) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i, exp := range r.Experience {
		if exp.StartDate != nil && exp.EndDate != nil && exp.EndDate.Before(*exp.StartDate) {
			return fmt.Errorf("experience[%d]: end date %s precedes start date %s",
				i, exp.EndDate.Format("2006-01-02"), exp.StartDate.Format("2006-01-02"))
		}
	}
	return nil
}

// IsPublished reports whether the resume's status is "published".
func (r *Resume) IsPublished() bool {
	return r.Settings.Status == StatusPublished
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ExperienceYears counts distinct calendar years covered by experience
// entries. Overlapping periods are not double-counted.
func (r *Resume) ExperienceYears() int {
	years := make(map[int]bool)
	now := time.Now()
	for _, exp := range r.Experience {
		if exp.StartDate == nil {
			continue
		}
		end := now
		if exp.EndDate != nil {
			end = *exp.EndDate
		}
		for y := exp.StartDate.Year(); y <= end.Year(); y++ {
			years[y] = true
		}
	}
	return len(years)
}

// Snapshot returns a deep copy of the resume suitable for storing as a
// version entry: the copy carries no ID and no version history of its own.
func (r *Resume) Snapshot() Resume {
	snap := r.Clone()
	snap.ID = uuid.Nil
	snap.Versions = nil
	return snap
}

// Clone returns a deep copy of the resume. Slices are copied so mutations of
// the clone never leak back into the original.
func (r *Resume) Clone() Resume {
	c := *r
	c.Education = append([]EducationEntry(nil), r.Education...)
	c.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, e := range r.Experience {
		e.Responsibilities = append([]string(nil), e.Responsibilities...)
		e.Achievements = append([]string(nil), e.Achievements...)
		e.Technologies = append([]string(nil), e.Technologies...)
		c.Experience[i] = e
	}
	for i, e := range r.Education {
		c.Education[i].Highlights = append([]string(nil), e.Highlights...)
	}
	c.Skills = append([]Skill(nil), r.Skills...)
	c.Languages = append([]Language(nil), r.Languages...)
	c.Certifications = append([]Certification(nil), r.Certifications...)
	c.References = append([]Reference(nil), r.References...)
	c.AdditionalSections = append([]AdditionalSection(nil), r.AdditionalSections...)
	c.Settings.Tags = append([]string(nil), r.Settings.Tags...)
	c.PersonalInfo.Links = append([]Link(nil), r.PersonalInfo.Links...)
	if r.PersonalInfo.ProfileImage != nil {
		img := *r.PersonalInfo.ProfileImage
		c.PersonalInfo.ProfileImage = &img
	}
	if r.ResumeFile != nil {
		f := *r.ResumeFile
		c.ResumeFile = &f
	}
	c.Versions = make([]Version, len(r.Versions))
	for i, v := range r.Versions {
		v.Data = *cloneShallowVersionData(&v.Data)
		c.Versions[i] = v
	}
	return c
}

// Version data is already a detached snapshot; one more struct copy with
// fresh top-level slices is enough to keep clones independent.
func cloneShallowVersionData(data *Resume) *Resume {
	d := data.Clone()
	return &d
}
