package resume

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-builder/internal/types"
)

// SearchDocument flattens a resume into a compact string for full-text
// indexing. Rich additional sections may contain markup, which is stripped
// down to its text content.
func SearchDocument(r *types.Resume) string {
	parts := []string{
		r.PersonalInfo.FirstName,
		r.PersonalInfo.LastName,
		r.ProfessionalSummary,
	}
	for _, s := range r.Skills {
		parts = append(parts, s.Name)
	}
	for _, e := range r.Experience {
		parts = append(parts, e.JobTitle, e.Company)
		parts = append(parts, e.Responsibilities...)
	}
	for _, e := range r.Education {
		parts = append(parts, e.Degree, e.School)
	}
	for _, sec := range r.AdditionalSections {
		parts = append(parts, sec.Title, stripMarkup(sec.Body))
	}

	fields := parts[:0]
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	return strings.Join(fields, " ")
}

// CountByStatus tallies an owner's resumes per status. Every enum value is
// present in the result, zero when unused.
func CountByStatus(resumes []*types.Resume) map[string]int {
	counts := make(map[string]int, len(types.Statuses))
	for _, s := range types.Statuses {
		counts[s] = 0
	}
	for _, r := range resumes {
		counts[r.Settings.Status]++
	}
	return counts
}

// ListTags returns the distinct tags used across the given resumes with
// their usage counts, most used first.
func ListTags(resumes []*types.Resume) map[string]int {
	tags := make(map[string]int)
	for _, r := range resumes {
		for _, t := range r.Settings.Tags {
			tags[t]++
		}
	}
	return tags
}

func stripMarkup(html string) string {
	if !strings.Contains(html, "<") {
		return html
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Text())
}
