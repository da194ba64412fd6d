package facts

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

// advancedTermRunes is the length at which a key term counts as advanced vocabulary.
const advancedTermRunes = 8

// score rates how informative a sentence is:
//
//	0.5*keyword + 0.3*length + 0.2*extra
//
// keyword is the share of topic keywords present (saturating at three),
// length is 1 inside the profile's token band and decays outside it, and
// extra mixes vocabulary fit with fact-likeness.
func score(s document.Sentence, f CandidateFact, report analyze.Report, p calibrate.Profile) float64 {
	hits := 0
	for _, k := range report.TopicKeywords {
		if s.HasKeyTerm(k) {
			hits++
		}
	}
	kw := math.Min(1, float64(hits)/3)
	length := lengthFit(s.TokenCount, p.MinSentenceLength, p.MaxSentenceLength)
	extra := 0.5*vocabularyFit(s.KeyTerms, p.VocabularyPreference) + 0.5*factLikeness(s, f)
	return round4(0.5*kw + 0.3*length + 0.2*extra)
}

func lengthFit(tokens, lo, hi int) float64 {
	switch {
	case tokens <= 0:
		return 0
	case tokens < lo:
		return float64(tokens) / float64(lo)
	case tokens > hi:
		return float64(hi) / float64(tokens)
	default:
		return 1
	}
}

func vocabularyFit(terms []string, pref calibrate.Vocabulary) float64 {
	if len(terms) == 0 {
		return 0.5
	}
	advanced := 0
	for _, t := range terms {
		if utf8.RuneCountInString(t) >= advancedTermRunes {
			advanced++
		}
	}
	frac := float64(advanced) / float64(len(terms))
	switch pref {
	case calibrate.VocabularyCommon:
		return 1 - frac
	case calibrate.VocabularyAdvanced:
		return frac
	default:
		return 1 - math.Abs(frac-0.5)
	}
}

// factLikeness is 1 for sentences carrying a number or a proper noun, 0.5
// for plain definitions and 0 otherwise.
func factLikeness(s document.Sentence, f CandidateFact) float64 {
	if f.Category != Term {
		return 1
	}
	for i, tok := range strings.Fields(s.Text) {
		w := document.CleanWord(tok)
		if document.IsNumeric(w) || (i > 0 && document.IsCapitalized(w)) {
			return 1
		}
	}
	if f.IsDefinition() {
		return 0.5
	}
	return 0
}

// examWorthy drops questions, fragments, overlong sentences and statements
// about the document itself.
func examWorthy(text string, lex *lexicon.Lexicon) bool {
	n := utf8.RuneCountInString(text)
	if n < 15 || n > 400 {
		return false
	}
	if strings.HasSuffix(strings.TrimRight(text, `"')]`), "?") {
		return false
	}
	return !HasTrivialIndicator(text, lex)
}

// HasTrivialIndicator reports whether text mentions titles, authors, pages
// or other material that makes for a trivial question.
func HasTrivialIndicator(text string, lex *lexicon.Lexicon) bool {
	lower := strings.ToLower(text)
	for _, ind := range lex.TrivialIndicators {
		if strings.Contains(lower, strings.ToLower(ind)) {
			return true
		}
	}
	return false
}
