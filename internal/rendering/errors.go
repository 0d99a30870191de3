// Package rendering provides HTML resume rendering from themed, localized templates.
package rendering

import "fmt"

// TemplateNotFoundError indicates that no template file resolved through any
// level of the theme/locale fallback chain.
type TemplateNotFoundError struct {
	Name   string
	Locale string
	Theme  string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found for locale %q in theme %q or default theme", e.Name, e.Locale, e.Theme)
}

// TemplateError represents an error reading, parsing, or executing a template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
