package document

import (
	"strings"
	"unicode"
)

// Words splits text into lowercase word forms. Leading and trailing
// punctuation is trimmed; inner apostrophes, hyphens and decimal points are kept.
func Words(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := CleanWord(f); w != "" {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}

// CleanWord trims punctuation from both ends of a token, keeping its case.
func CleanWord(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsNumeric reports whether w is a number such as 42, 3.14, 1,200 or 45%.
func IsNumeric(w string) bool {
	w = strings.TrimSuffix(w, "%")
	if w == "" {
		return false
	}
	digits := 0
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

// IsCapitalized reports whether w starts with an uppercase letter.
func IsCapitalized(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// Normalize lowercases text and reduces it to single-spaced words, for
// comparing statements regardless of punctuation and case.
func Normalize(text string) string {
	return strings.Join(Words(text), " ")
}
