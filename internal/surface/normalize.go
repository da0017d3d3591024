// Package surface builds and describes the surface dictionary: the
// precomputed mapping from normalized title/artist spellings back to
// canonical catalog ids. The transforms here are load-bearing for
// resolver correctness; the resolver only ever looks up strings that
// went through the same functions.
package surface

import (
	"regexp"
	"strings"
)

var parenthesized = regexp.MustCompile(`\(.*?\)`)

// Lowercase folds the string to lower case.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// RemovePunctuation strips apostrophes, commas, periods and double
// quotes. Other punctuation is kept.
func RemovePunctuation(s string) string {
	replacer := strings.NewReplacer("'", "", ",", "", ".", "", `"`, "")
	return replacer.Replace(s)
}

// LowercaseNoPunctuation composes the two basic transforms.
func LowercaseNoPunctuation(s string) string {
	return Lowercase(RemovePunctuation(s))
}

// RemoveParentheses drops parenthesized content. When the entire
// string is wrapped in one pair of parentheses only the outer pair is
// stripped; otherwise every parenthesized substring is removed and the
// result is trimmed at both ends.
func RemoveParentheses(s string) string {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return s[1 : len(s)-1]
	}
	return strings.TrimSpace(parenthesized.ReplaceAllString(s, ""))
}

// RemoveAfterSeparator truncates the string at the first " - "
// separator, keeping the part before it.
func RemoveAfterSeparator(s string) string {
	if idx := strings.Index(s, " - "); idx >= 0 {
		return s[:idx]
	}
	return s
}

// RemoveThePrefix drops a leading "the " (any case).
func RemoveThePrefix(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "the ") {
		return s[4:]
	}
	return s
}

// TrackVariants returns the eight normalized spellings recorded for a
// track title, in dictionary build order.
func TrackVariants(title string) []string {
	noParens := RemoveParentheses(title)
	return []string{
		Lowercase(title),
		LowercaseNoPunctuation(title),
		Lowercase(noParens),
		LowercaseNoPunctuation(noParens),
		LowercaseNoPunctuation(RemoveAfterSeparator(noParens)),
		Lowercase(RemoveAfterSeparator(title)),
		LowercaseNoPunctuation(RemoveAfterSeparator(title)),
		Lowercase(RemoveAfterSeparator(noParens)),
	}
}

// ArtistVariants returns the four normalized spellings recorded for an
// artist name, in dictionary build order.
func ArtistVariants(artist string) []string {
	return []string{
		Lowercase(artist),
		LowercaseNoPunctuation(artist),
		RemoveThePrefix(Lowercase(artist)),
		RemoveThePrefix(LowercaseNoPunctuation(artist)),
	}
}
