package synth

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

// pools holds same-category distractor candidates drawn from one document,
// each in document order without case-insensitive repeats.
type pools map[facts.Category][]string

func buildPools(doc *document.Document, cands []facts.CandidateFact, lex *lexicon.Lexicon) pools {
	p := pools{}
	seen := map[facts.Category]map[string]bool{}
	add := func(c facts.Category, w string) {
		w = strings.TrimSpace(w)
		if w == "" {
			return
		}
		if seen[c] == nil {
			seen[c] = map[string]bool{}
		}
		k := strings.ToLower(w)
		if seen[c][k] {
			return
		}
		seen[c][k] = true
		p[c] = append(p[c], w)
	}

	for _, f := range cands {
		add(f.Category, f.Subject)
	}

	for _, s := range doc.Sentences {
		raw := strings.Fields(s.Text)
		clean := make([]string, len(raw))
		for i, t := range raw {
			clean[i] = document.CleanWord(t)
		}
		for i := 0; i < len(raw); i++ {
			w := clean[i]
			switch {
			case document.IsNumeric(w):
				if strings.Contains(raw[i], w+"%") {
					w += "%"
				}
				add(categoryOfNumber(w), w)
			case i > 0 && isNameWord(w, lex):
				end := i + 1
				for end < len(raw) && end-i < 3 && isNameWord(clean[end], lex) && strings.HasSuffix(raw[end-1], clean[end-1]) {
					end++
				}
				add(facts.Proper, strings.Join(clean[i:end], " "))
				i = end - 1
			case lex.IsDeterminer(w) && i+1 < len(raw):
				next := clean[i+1]
				if isCommonNoun(next, lex) {
					add(facts.Term, strings.ToLower(next))
				}
			}
		}
	}
	return p
}

func isNameWord(w string, lex *lexicon.Lexicon) bool {
	return utf8.RuneCountInString(w) > 1 && document.IsCapitalized(w) && !lex.IsStopWord(w) && !lex.IsPronoun(w)
}

func isCommonNoun(w string, lex *lexicon.Lexicon) bool {
	return utf8.RuneCountInString(w) >= 3 &&
		!document.IsCapitalized(w) &&
		!document.IsNumeric(w) &&
		!lex.IsStopWord(w)
}

func categoryOfNumber(w string) facts.Category {
	if len(w) == 4 && (w[0] == '1' || (w[0] == '2' && w[1] == '0')) && document.IsNumeric(w) && !strings.ContainsAny(w, ".,%") {
		return facts.Year
	}
	return facts.Number
}
