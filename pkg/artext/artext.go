// Package artext provides deterministic normalization helpers for Arabic
// source text: diacritic stripping, letter-shape folding, and digit folding.
// All functions are pure; normalization is used wherever extracted text is
// compared against quoted or free-form input.
package artext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	diacriticStripper = transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)

	letterFolder = strings.NewReplacer(
		"أ", "ا",
		"إ", "ا",
		"آ", "ا",
		"ٱ", "ا",
		"ة", "ه",
		"ى", "ي",
		"ـ", "",
	)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// StripDiacritics removes Arabic harakat and any other combining marks.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// FoldLetters collapses common Arabic letter-shape variants: hamza-bearing
// and wasla alef to bare alef, ta marbuta to ha, alef maqsura to ya. Tatweel
// is dropped entirely.
func FoldLetters(s string) string {
	return letterFolder.Replace(s)
}

// FoldDigits rewrites Arabic-Indic (٠-٩) and Extended Arabic-Indic (۰-۹)
// digits to their ASCII equivalents. Other runes pass through unchanged.
func FoldDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims leading and trailing space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Normalize applies the full comparison normalization: diacritic stripping,
// letter folding, digit folding, whitespace collapse, and lowercasing of any
// Latin content.
func Normalize(s string) string {
	s = StripDiacritics(s)
	s = FoldLetters(s)
	s = FoldDigits(s)
	s = CollapseWhitespace(s)
	return strings.ToLower(s)
}

// Tokens splits s on whitespace and returns the tokens longer than minLen
// runes. Token length is measured in runes, not bytes, so short Arabic words
// are not over-counted.
func Tokens(s string, minLen int) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len([]rune(w)) > minLen {
			out = append(out, w)
		}
	}
	return out
}
