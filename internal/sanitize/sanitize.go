// Package sanitize provides input normalization helpers used to clean and
// standardize inbound resume data before it reaches HTML output.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	handlerRe = regexp.MustCompile(`(?i)on\w+="[^"]*"`)
)

// Sanitize strips <script> blocks and inline event-handler attributes from
// the input. It is idempotent: applying it twice yields the same result as
// applying it once. Stripping runs to a fixed point so removals that expose
// new matches (a handler split by a script block) are also caught.
func Sanitize(input string) string {
	out := input
	for {
		next := handlerRe.ReplaceAllString(scriptRe.ReplaceAllString(out, ""), "")
		if next == out {
			return next
		}
		out = next
	}
}

// NormalizeString sanitizes and trims a free-text field.
func NormalizeString(s string) string {
	return strings.TrimSpace(Sanitize(s))
}

// NormalizeEmail lowercases a normalized email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(NormalizeString(email))
}

// NormalizePhone strips everything but digits and a leading plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range NormalizeString(phone) {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeURL validates and canonicalizes a URL, returning the empty string
// when the value does not parse as an absolute URL.
func NormalizeURL(raw string) string {
	u, err := url.Parse(NormalizeString(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.String()
}

// EnsureProtocol prepends "http://" to URLs entered without a scheme so the
// stored value is usable as a hyperlink.
func EnsureProtocol(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(strings.ToLower(raw), "http://") || strings.HasPrefix(strings.ToLower(raw), "https://") {
		return raw
	}
	return "http://" + raw
}

// NormalizeResume applies the string normalizers to every free-text field of
// a resume in place. Emails are lowercased, phones digit-stripped, and
// websites get a protocol.
func NormalizeResume(r *types.Resume) {
	p := &r.PersonalInfo
	p.FirstName = NormalizeString(p.FirstName)
	p.LastName = NormalizeString(p.LastName)
	p.Email = NormalizeEmail(p.Email)
	p.Phone = NormalizePhone(p.Phone)
	p.Location = NormalizeString(p.Location)
	p.Nationality = NormalizeString(p.Nationality)
	p.Summary = NormalizeString(p.Summary)
	if p.Website != "" {
		p.Website = EnsureProtocol(NormalizeString(p.Website))
	}
	for i := range p.Links {
		p.Links[i].Label = NormalizeString(p.Links[i].Label)
		if p.Links[i].URL != "" {
			p.Links[i].URL = EnsureProtocol(NormalizeString(p.Links[i].URL))
		}
	}

	r.ProfessionalSummary = NormalizeString(r.ProfessionalSummary)

	for i := range r.Education {
		e := &r.Education[i]
		e.Degree = NormalizeString(e.Degree)
		e.FieldOfStudy = NormalizeString(e.FieldOfStudy)
		e.School = NormalizeString(e.School)
		e.Grade = NormalizeString(e.Grade)
		e.Description = NormalizeString(e.Description)
		e.Location = NormalizeString(e.Location)
		normalizeSlice(e.Highlights)
	}
	for i := range r.Experience {
		e := &r.Experience[i]
		e.JobTitle = NormalizeString(e.JobTitle)
		e.Company = NormalizeString(e.Company)
		e.Location = NormalizeString(e.Location)
		e.Description = NormalizeString(e.Description)
		normalizeSlice(e.Responsibilities)
		normalizeSlice(e.Achievements)
		normalizeSlice(e.Technologies)
	}
	for i := range r.Skills {
		r.Skills[i].Name = NormalizeString(r.Skills[i].Name)
	}
	for i := range r.Languages {
		r.Languages[i].Language = NormalizeString(r.Languages[i].Language)
	}
	for i := range r.Certifications {
		c := &r.Certifications[i]
		c.Name = NormalizeString(c.Name)
		c.Issuer = NormalizeString(c.Issuer)
		c.CredentialID = NormalizeString(c.CredentialID)
		if c.URL != "" {
			c.URL = EnsureProtocol(NormalizeString(c.URL))
		}
	}
	for i := range r.References {
		ref := &r.References[i]
		ref.Name = NormalizeString(ref.Name)
		ref.Company = NormalizeString(ref.Company)
		ref.Email = NormalizeEmail(ref.Email)
		ref.Phone = NormalizePhone(ref.Phone)
		ref.Relation = NormalizeString(ref.Relation)
		ref.Note = NormalizeString(ref.Note)
	}
	for i := range r.AdditionalSections {
		r.AdditionalSections[i].Title = NormalizeString(r.AdditionalSections[i].Title)
		r.AdditionalSections[i].Body = Sanitize(r.AdditionalSections[i].Body)
	}
	normalizeSlice(r.Settings.Tags)
	r.Settings.CustomCSS = scriptRe.ReplaceAllString(r.Settings.CustomCSS, "")
}

func normalizeSlice(ss []string) {
	for i := range ss {
		ss[i] = NormalizeString(ss[i])
	}
}
