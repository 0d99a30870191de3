package rendering

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-builder/internal/i18n"
	"github.com/jonathan/resume-builder/internal/sanitize"
	"github.com/jonathan/resume-builder/internal/types"
)

// BaseTemplate is the entry template name every theme must provide, as
// <name>_<locale>.tpl files under its theme directory.
const BaseTemplate = "resume"

// Options controls a single render. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	Locale    string
	Theme     string
	Brand     string              // footer text injected before </body>
	RTL       bool                // set dir="rtl" on the root element
	Watermark string              // low-opacity overlay text
	Transform func(*types.Resume) // optional data hook applied before render
}

// DefaultOptions returns the baseline render options: English, default theme,
// no branding.
func DefaultOptions() *Options {
	return &Options{Locale: "en", Theme: DefaultTheme}
}

// Renderer combines a resolved template, resume data, and a translation
// dictionary into a single sanitized, self-contained HTML document.
type Renderer struct {
	resolver *Resolver
	cache    TemplateCache
	partials *partialSet
	bundle   *i18n.Bundle
	log      *logrus.Logger
}

// NewRenderer wires a renderer over a templates directory and a translation
// bundle. Pass nil cache to get a fresh in-memory one.
func NewRenderer(templatesDir string, bundle *i18n.Bundle, cache TemplateCache, log *logrus.Logger) *Renderer {
	if cache == nil {
		cache = NewMemoryTemplateCache()
	}
	if log == nil {
		log = logrus.New()
	}
	resolver := NewResolver(templatesDir)
	return &Renderer{
		resolver: resolver,
		cache:    cache,
		partials: newPartialSet(resolver.PartialsDir()),
		bundle:   bundle,
		log:      log,
	}
}

// templateContext is the data handed to every template execution.
type templateContext struct {
	Resume *types.Resume
}

// Render produces the final HTML for a resume. The resume data is deep
// copied, normalized, and optionally transformed before template execution;
// the composed document is sanitized again as defense in depth, then brand
// footer, RTL direction, and watermark overlay are applied.
func (r *Renderer) Render(resume *types.Resume, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	theme := opts.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	tmpl, err := r.compile(BaseTemplate, locale, theme)
	if err != nil {
		return "", err
	}

	data := resume.Clone()
	sanitize.NormalizeResume(&data)
	if opts.Transform != nil {
		opts.Transform(&data)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, &templateContext{Resume: &data}); err != nil {
		return "", &TemplateError{Message: "failed to execute template", Cause: err}
	}

	html := sanitize.Sanitize(sb.String())
	if opts.Brand != "" {
		footer := "<footer>" + template.HTMLEscapeString(sanitize.NormalizeString(opts.Brand)) + "</footer></body>"
		html = strings.Replace(html, "</body>", footer, 1)
	}
	if opts.RTL {
		html = strings.Replace(html, "<html", `<html dir="rtl"`, 1)
	}
	if opts.Watermark != "" {
		overlay := `<div style="position:fixed;bottom:10px;opacity:0.5;font-size:10px">` +
			template.HTMLEscapeString(sanitize.NormalizeString(opts.Watermark)) + "</div></body>"
		html = strings.Replace(html, "</body>", overlay, 1)
	}

	r.log.WithFields(logrus.Fields{
		"resume_id": resume.ID,
		"theme":     theme,
		"locale":    locale,
		"bytes":     len(html),
	}).Debug("rendered resume html")

	return html, nil
}

// compile returns the cached template for (theme, locale, name), compiling
// and caching it on first use. Translation lookups are bound at compile time;
// the cache key includes the locale so each locale gets its own function set.
func (r *Renderer) compile(name, locale, theme string) (*template.Template, error) {
	key := CacheKey(theme, locale, name)
	if tmpl, ok := r.cache.Get(key); ok {
		return tmpl, nil
	}

	if err := r.partials.load(false); err != nil {
		return nil, err
	}

	source, path, err := r.resolver.Resolve(name, locale, theme)
	if err != nil {
		return nil, err
	}
	r.log.WithFields(logrus.Fields{"template": path, "key": key}).Debug("compiling template")

	t := r.translator(locale)
	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"t":     t,
		"dates": func(start, end *time.Time) string { return formatDateRange(start, end, t) },
		"year":  formatYear,
		// Custom CSS is already script-scrubbed during normalization; mark it
		// safe so the CSS-context filter does not reject real rule sets.
		"css": func(s string) template.CSS { return template.CSS(s) },
	}).Parse(source)
	if err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to parse template %s", path), Cause: err}
	}
	if err := r.partials.attach(tmpl); err != nil {
		return nil, err
	}

	r.cache.Set(key, tmpl)
	return tmpl, nil
}

func (r *Renderer) translator(locale string) i18n.Translator {
	if r.bundle == nil {
		return func(key string) string { return key }
	}
	return r.bundle.Translator(locale)
}

// ListThemes returns the theme names available to this renderer.
func (r *Renderer) ListThemes() []string {
	return r.resolver.ListThemes()
}

// ClearCache drops compiled templates and forces partials to be reread on
// the next render. Used by tests and template hot reload.
func (r *Renderer) ClearCache() {
	r.cache.Clear()
	r.partials.reset()
}

// ReloadPartials rereads partial fragments from disk immediately.
func (r *Renderer) ReloadPartials() error {
	return r.partials.load(true)
}

// formatDateRange renders "Jan 2020 - Present" style ranges, translating the
// open-ended marker through the dictionary.
func formatDateRange(start, end *time.Time, t i18n.Translator) string {
	if start == nil {
		return ""
	}
	from := start.Format("Jan 2006")
	if end == nil {
		return from + " - " + t("present")
	}
	return from + " - " + end.Format("Jan 2006")
}

func formatYear(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format("2006")
}
