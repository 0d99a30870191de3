package resume

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// charMap transliterates common latin accented characters so slugs stay
// plain ASCII.
var charMap = map[rune]string{
	'á': "a", 'à': "a", 'ä': "a", 'â': "a", 'Á': "A", 'À': "A", 'Ä': "A", 'Â': "A",
	'é': "e", 'è': "e", 'ë': "e", 'ê': "e", 'É': "E", 'È': "E", 'Ë': "E", 'Ê': "E",
	'í': "i", 'ì': "i", 'ï': "i", 'î': "i", 'Í': "I", 'Ì': "I", 'Ï': "I", 'Î': "I",
	'ó': "o", 'ò': "o", 'ö': "o", 'ô': "o", 'Ó': "O", 'Ò': "O", 'Ö': "O", 'Ô': "O",
	'ú': "u", 'ù': "u", 'ü': "u", 'û': "u", 'Ú': "U", 'Ù': "U", 'Ü': "U", 'Û': "U",
	'ñ': "n", 'Ñ': "N", 'ç': "c", 'Ç': "C", 'ß': "ss",
}

var nonAlnumRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

var slugCache sync.Map // string -> string

// Slugify converts an arbitrary string into a lowercase hyphen-delimited
// slug, transliterating accented characters. Results are cached for
// repeated calls with the same input.
func Slugify(s string) string {
	if cached, ok := slugCache.Load(s); ok {
		return cached.(string)
	}
	var b strings.Builder
	for _, r := range s {
		if repl, ok := charMap[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	slug := nonAlnumRe.ReplaceAllString(b.String(), "-")
	slug = strings.Trim(slug, "-")
	slug = strings.ToLower(slug)
	slugCache.Store(s, slug)
	return slug
}

// SlugChecker reports whether a slug is already taken for an owner.
type SlugChecker interface {
	SlugExists(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error)
}

// UniqueSlug builds a slug from base and resolves per-owner collisions by
// appending an incrementing numeric suffix: john-doe, john-doe-1, john-doe-2.
func UniqueSlug(ctx context.Context, store SlugChecker, ownerID uuid.UUID, base string) (string, error) {
	root := Slugify(base)
	if root == "" {
		root = "resume"
	}
	slug := root
	for i := 1; ; i++ {
		exists, err := store.SlugExists(ctx, ownerID, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = root + "-" + strconv.Itoa(i)
	}
}
