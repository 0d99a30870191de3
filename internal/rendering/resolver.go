package rendering

import (
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/i18n"
)

// TemplateExt is the file extension for template sources.
const TemplateExt = ".tpl"

// DefaultTheme is the backstop theme consulted when the requested theme has
// no matching template.
const DefaultTheme = "default"

// Resolver maps a (name, locale, theme) triple to a template source file
// under <root>/themes using cascading fallback.
type Resolver struct {
	root string
}

// NewResolver creates a resolver over a templates directory containing a
// themes/ subdirectory.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve returns the template source for the first existing file among:
//
//  1. themes/<theme>/<name>_<locale>.tpl
//  2. themes/<theme>/<name>_en.tpl
//  3. themes/default/<name>_<locale>.tpl
//  4. themes/default/<name>_en.tpl
//
// Theme preference is honored before language: a same-theme English template
// wins over a right-language template from the default theme. Returns
// *TemplateNotFoundError when no candidate exists.
func (r *Resolver) Resolve(name, locale, theme string) (source string, path string, err error) {
	for _, candidate := range r.candidates(name, locale, theme) {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return string(data), candidate, nil
		}
		if !os.IsNotExist(err) {
			return "", "", &TemplateError{Message: "failed to read template " + candidate, Cause: err}
		}
	}
	return "", "", &TemplateNotFoundError{Name: name, Locale: locale, Theme: theme}
}

func (r *Resolver) candidates(name, locale, theme string) []string {
	themeDir := filepath.Join(r.root, "themes", theme)
	defaultDir := filepath.Join(r.root, "themes", DefaultTheme)
	out := []string{
		filepath.Join(themeDir, name+"_"+locale+TemplateExt),
		filepath.Join(themeDir, name+"_"+i18n.FallbackLocale+TemplateExt),
	}
	if theme != DefaultTheme {
		out = append(out,
			filepath.Join(defaultDir, name+"_"+locale+TemplateExt),
			filepath.Join(defaultDir, name+"_"+i18n.FallbackLocale+TemplateExt),
		)
	}
	return out
}

// ListThemes scans the themes directory and returns the available theme
// names, one per subdirectory.
func (r *Resolver) ListThemes() []string {
	entries, err := os.ReadDir(filepath.Join(r.root, "themes"))
	if err != nil {
		return nil
	}
	themes := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			themes = append(themes, e.Name())
		}
	}
	return themes
}

// PartialsDir returns the directory holding shared template fragments.
func (r *Resolver) PartialsDir() string {
	return filepath.Join(r.root, "partials")
}
