package rendering

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateCache stores compiled templates keyed by (theme, locale, name).
// Implementations must be safe for concurrent use. Recomputing and
// overwriting a key with an equivalent value is harmless, so last-writer-wins
// semantics are acceptable.
type TemplateCache interface {
	Get(key string) (*template.Template, bool)
	Set(key string, tmpl *template.Template)
	Clear()
}

// CacheKey builds the canonical cache key for a template lookup.
func CacheKey(theme, locale, name string) string {
	return theme + ":" + locale + ":" + name
}

// MemoryTemplateCache is an unbounded in-process TemplateCache. Entries live
// for the process lifetime unless Clear is called (tests, hot reload).
type MemoryTemplateCache struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewMemoryTemplateCache creates an empty template cache.
func NewMemoryTemplateCache() *MemoryTemplateCache {
	return &MemoryTemplateCache{templates: make(map[string]*template.Template)}
}

// Get returns the cached template for key.
func (c *MemoryTemplateCache) Get(key string) (*template.Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.templates[key]
	return tmpl, ok
}

// Set stores a compiled template under key.
func (c *MemoryTemplateCache) Set(key string, tmpl *template.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[key] = tmpl
}

// Clear drops every cached template.
func (c *MemoryTemplateCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = make(map[string]*template.Template)
}

// Len returns the number of cached templates.
func (c *MemoryTemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// partialSet loads shared template fragments (header, skills list, ...) from
// a partials directory once per process. Every compiled template gets the
// same fragment sources attached so {{template "header" .}} works across
// themes. Reloading only happens on explicit force.
type partialSet struct {
	mu      sync.Mutex
	dir     string
	sources map[string]string
	loaded  bool
}

func newPartialSet(dir string) *partialSet {
	return &partialSet{dir: dir, sources: make(map[string]string)}
}

// load reads partial sources from disk. A missing partials directory is not
// an error: templates simply reference no fragments.
func (p *partialSet) load(force bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded && !force {
		return nil
	}
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			p.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read partials directory %s: %w", p.dir, err)
	}
	sources := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, TemplateExt) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.dir, name))
		if err != nil {
			return fmt.Errorf("failed to read partial %s: %w", name, err)
		}
		sources[strings.TrimSuffix(name, TemplateExt)] = string(data)
	}
	p.sources = sources
	p.loaded = true
	return nil
}

// attach parses every partial into the given template set.
func (p *partialSet) attach(tmpl *template.Template) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name, src := range p.sources {
		if _, err := tmpl.New(name).Parse(src); err != nil {
			return &TemplateError{Message: fmt.Sprintf("failed to parse partial %q", name), Cause: err}
		}
	}
	return nil
}

// reset marks the set unloaded so the next load rereads from disk.
func (p *partialSet) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = false
	p.sources = make(map[string]string)
}
