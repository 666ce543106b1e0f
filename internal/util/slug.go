package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength caps slugs used in export file names.
const MaxSlugLength = 48

var (
	// Match sequences of non-alphanumeric characters
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Match leading/trailing hyphens
	trimHyphens = regexp.MustCompile(`^-+|-+$`)
)

// SlugWords converts a string to normalized slug words.
//   - Converts to lowercase
//   - Normalizes unicode (removes accents)
//   - Replaces spaces and special characters with hyphens
//   - Splits on hyphens into individual words
func SlugWords(s string) []string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = trimHyphens.ReplaceAllString(s, "")

	if s == "" {
		return nil
	}

	return strings.Split(s, "-")
}

// Slugify joins SlugWords with hyphens, dropping whole trailing words
// to stay within MaxSlugLength. A single overlong word is cut.
func Slugify(s string) string {
	words := SlugWords(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for _, w := range words {
		need := len(w)
		if b.Len() > 0 {
			need++
		}
		if b.Len()+need > MaxSlugLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('-')
		}
		b.WriteString(w)
	}

	if b.Len() == 0 {
		return words[0][:MaxSlugLength]
	}
	return b.String()
}

// removeAccents removes diacritical marks from unicode characters.
func removeAccents(s string) string {
	// Decompose unicode characters (NFD normalization)
	result := norm.NFD.String(s)

	// Remove combining characters (accents, diacritics)
	var b strings.Builder
	for _, r := range result {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			b.WriteRune(r)
		}
	}

	return b.String()
}
