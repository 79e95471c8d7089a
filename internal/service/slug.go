package service

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s_-]+`)
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a title into a lowercase, hyphenated, URL-safe identifier.
// Non-Latin scripts are transliterated best-effort; when transliteration yields
// nothing usable the raw title goes through the same normalization instead.
// Punctuation-only titles produce an empty string, which the caller must
// resolve into a non-empty unique slug.
func Slugify(title string) string {
	slug := unidecode.Unidecode(title)
	if strings.TrimSpace(slug) == "" {
		slug = title
	}

	slug = strings.ToLower(slug)
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
