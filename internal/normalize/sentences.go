package normalize

import (
	"strings"
	"unicode"

	"github.com/dgallion1/quizgest/internal/lexicon"
)

const closers = `.!?"')]}`

// splitSentences splits a single-line paragraph into sentences. A terminator
// ends a sentence only when followed by whitespace and a word that can start
// a sentence; periods after abbreviations and initials never split.
func splitSentences(text string, lex *lexicon.Lexicon) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		end := i + 1
		for end < len(runes) && strings.ContainsRune(closers, runes[end]) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			// Decimal point, inner abbreviation dot or similar.
			continue
		}
		if !startsSentence(runes, end) {
			i = end - 1
			continue
		}
		if r == '.' && !periodEndsSentence(runes, start, i, lex) {
			i = end - 1
			continue
		}

		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = end
		i = end - 1
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// startsSentence reports whether the text after pos begins a new sentence.
func startsSentence(runes []rune, pos int) bool {
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	if pos >= len(runes) {
		return true
	}
	r := runes[pos]
	return unicode.IsUpper(r) || unicode.IsDigit(r) || strings.ContainsRune(`"'([`, r)
}

// periodEndsSentence inspects the word before the period at pos.
func periodEndsSentence(runes []rune, start, pos int, lex *lexicon.Lexicon) bool {
	j := pos
	for j > start && !unicode.IsSpace(runes[j-1]) {
		j--
	}
	word := strings.TrimLeft(string(runes[j:pos]), `"'([`)
	if word == "" {
		return true
	}
	if strings.EqualFold(word, "etc") {
		return true
	}
	if lex.IsAbbreviation(word) {
		return false
	}
	// Single-letter initial such as "J." in "J. Smith".
	if w := []rune(word); len(w) == 1 && unicode.IsUpper(w[0]) {
		return false
	}
	return true
}
