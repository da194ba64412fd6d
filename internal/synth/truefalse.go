package synth

import (
	"strings"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
)

// balancer steers true/false answers toward an even split.
type balancer struct {
	trues, falses int
}

// wantTrue returns the lagging answer, or on a tie lets the statement hash decide.
func (b *balancer) wantTrue(statement string) bool {
	switch {
	case b.trues < b.falses:
		return true
	case b.trues > b.falses:
		return false
	}
	return hash32(statement)%2 == 0
}

func (b *balancer) record(isTrue bool) {
	if isTrue {
		b.trues++
	} else {
		b.falses++
	}
}

// falseVariant rewrites the statement of f into a false one. It tries, in
// order, flipping a polarity word or negating the copula, changing a number,
// and swapping the subject for a same-category distractor. The variant must
// not match any sentence of the document.
func (s *Synthesizer) falseVariant(f facts.CandidateFact) (string, bool) {
	toks := strings.Fields(f.Statement)

	for i, tok := range toks {
		w := document.CleanWord(tok)
		lower := strings.ToLower(w)
		var v string
		if opp, ok := s.lex.Opposite(lower); ok {
			v = replaceToken(toks, i, w, matchCase(opp, w))
		} else if s.lex.IsCopula(lower) && tok == w && i > 0 {
			v = negateCopula(toks, i)
		} else {
			continue
		}
		if !s.isKnown(v) {
			return v, true
		}
	}

	for i, tok := range toks {
		w := document.CleanWord(tok)
		if !document.IsNumeric(w) {
			continue
		}
		if strings.Contains(tok, w+"%") {
			w += "%"
		}
		for _, n := range numericNeighbours(w, categoryOfNumber(w) == facts.Year) {
			if v := replaceToken(toks, i, w, n); !s.isKnown(v) {
				return v, true
			}
		}
	}

	if d := s.distractors(f, f.Statement, 1); len(d) > 0 {
		return substitute(f, d[0]), true
	}
	return "", false
}

// replaceToken swaps word (a substring of toks[i]) for repl, keeping any
// surrounding punctuation.
func replaceToken(toks []string, i int, word, repl string) string {
	out := make([]string, len(toks))
	copy(out, toks)
	out[i] = strings.Replace(toks[i], word, repl, 1)
	return strings.Join(out, " ")
}

// negateCopula turns "is" into "is not", or drops an existing "not".
func negateCopula(toks []string, i int) string {
	out := make([]string, 0, len(toks)+1)
	out = append(out, toks[:i+1]...)
	if i+1 < len(toks) && strings.ToLower(toks[i+1]) == "not" {
		out = append(out, toks[i+2:]...)
	} else {
		out = append(out, "not")
		out = append(out, toks[i+1:]...)
	}
	return strings.Join(out, " ")
}

// matchCase gives repl the capitalization of like.
func matchCase(repl, like string) string {
	if document.IsCapitalized(like) {
		return upperFirst(repl)
	}
	return repl
}
