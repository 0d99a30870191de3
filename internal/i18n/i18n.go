// Package i18n loads translation dictionaries and builds key lookup
// functions for template rendering.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FallbackLocale is the dictionary consulted when a key is missing from the
// requested locale. English dictionaries are expected to be complete.
const FallbackLocale = "en"

// Translator resolves a translation key against a locale dictionary with an
// English fallback. Unknown keys are returned unchanged.
type Translator func(key string) string

// Bundle holds every dictionary loaded from a locales directory, keyed by
// language code.
type Bundle struct {
	dictionaries map[string]map[string]string
}

// Load reads every <lang>.json file from dir into a Bundle. A missing
// directory yields an empty bundle rather than an error so rendering can
// still fall back to raw keys.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{dictionaries: make(map[string]map[string]string)}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("failed to read locales directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", name, err)
		}
		dict := make(map[string]string)
		if err := json.Unmarshal(data, &dict); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", name, err)
		}
		b.dictionaries[strings.TrimSuffix(name, ".json")] = dict
	}
	return b, nil
}

// Locales returns the language codes available in the bundle.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.dictionaries))
	for lang := range b.dictionaries {
		out = append(out, lang)
	}
	return out
}

// Has reports whether a dictionary exists for the given locale.
func (b *Bundle) Has(locale string) bool {
	_, ok := b.dictionaries[locale]
	return ok
}

// Translator builds the lookup function for a locale. Resolution order is
// requested dictionary, then the English fallback dictionary, then the key
// itself.
func (b *Bundle) Translator(locale string) Translator {
	dict := b.dictionaries[locale]
	fallback := b.dictionaries[FallbackLocale]
	return func(key string) string {
		if v, ok := dict[key]; ok && v != "" {
			return v
		}
		if v, ok := fallback[key]; ok && v != "" {
			return v
		}
		return key
	}
}

// DetectLanguage picks a supported locale from an Accept-Language style
// header value, defaulting to English.
func DetectLanguage(b *Bundle, header string) string {
	if header == "" {
		return FallbackLocale
	}
	lang := strings.ToLower(strings.SplitN(header, ",", 2)[0])
	lang = strings.SplitN(lang, "-", 2)[0]
	if b.Has(lang) {
		return lang
	}
	return FallbackLocale
}
