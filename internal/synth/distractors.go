package synth

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
)

// distractors returns up to n wrong answers for f, ordered by how close
// their similarity to the answer is to the profile target. exclude holds
// text (usually the stem) whose words a distractor must not repeat.
func (s *Synthesizer) distractors(f facts.CandidateFact, exclude string, n int) []string {
	type scored struct {
		text  string
		gap   float64
		order int
	}
	answerKeys := wordKeys(f.Subject)
	excluded := wordKeys(exclude)
	target := s.profile.DistractorSimilarityTarget

	var list []scored
	for i, c := range s.candidatePool(f) {
		if !s.admissible(c, f, answerKeys, excluded) {
			continue
		}
		list = append(list, scored{
			text:  c,
			gap:   math.Abs(dice(c, f.Subject) - target),
			order: i,
		})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].gap != list[j].gap {
			return list[i].gap < list[j].gap
		}
		return list[i].order < list[j].order
	})

	picked := make([]string, 0, n)
	used := map[string]bool{phraseKey(f.Subject): true}
	for _, sc := range list {
		if len(picked) == n {
			break
		}
		k := phraseKey(sc.text)
		if used[k] {
			continue
		}
		used[k] = true
		picked = append(picked, sc.text)
	}
	return picked
}

// candidatePool lists same-category candidates: the document's own first,
// then the generic banks.
func (s *Synthesizer) candidatePool(f facts.CandidateFact) []string {
	doc := s.pools[f.Category]
	var bank []string
	switch f.Category {
	case facts.Term:
		bank = s.lex.TermBank
	case facts.Proper:
		bank = s.lex.PersonBank
	case facts.Number:
		bank = numericNeighbours(f.Subject, false)
	case facts.Year:
		bank = numericNeighbours(f.Subject, true)
	}
	out := make([]string, 0, len(doc)+len(bank))
	out = append(out, doc...)
	return append(out, bank...)
}

// admissible rejects candidates that equal or overlap the answer, repeat the
// excluded text, or would turn the source sentence into another true one.
func (s *Synthesizer) admissible(c string, f facts.CandidateFact, answerKeys, excluded map[string]bool) bool {
	ck := wordKeys(c)
	if len(ck) == 0 {
		return false
	}
	for k := range ck {
		if answerKeys[k] {
			return false
		}
	}
	inExcluded := true
	for k := range ck {
		if !excluded[k] {
			inExcluded = false
			break
		}
	}
	if inExcluded {
		return false
	}
	return !s.isKnown(substitute(f, c))
}

// dice is the Sorensen-Dice coefficient over character bigrams.
func dice(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	ba, bb := bigrams(a), bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	shared := 0
	for g := range ba {
		if bb[g] {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ba)+len(bb))
}

func bigrams(s string) map[string]bool {
	r := []rune(s)
	out := make(map[string]bool, len(r))
	for i := 0; i+1 < len(r); i++ {
		out[string(r[i:i+2])] = true
	}
	return out
}

// singular strips common English plural endings so that "cell" and "cells"
// compare equal.
func singular(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && (strings.HasSuffix(w, "ches") || strings.HasSuffix(w, "shes") ||
		strings.HasSuffix(w, "sses") || strings.HasSuffix(w, "xes")):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us") && !strings.HasSuffix(w, "is"):
		return w[:len(w)-1]
	}
	return w
}

// wordKeys returns the singular lowercase forms of the words in text.
func wordKeys(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range document.Words(text) {
		out[singular(w)] = true
	}
	return out
}

// phraseKey identifies a phrase regardless of case and plural endings.
func phraseKey(text string) string {
	words := document.Words(text)
	for i, w := range words {
		words[i] = singular(w)
	}
	return strings.Join(words, " ")
}

// numericNeighbours generates plausible wrong numbers near answer, keeping
// its format (decimals, thousands separators, percent sign).
func numericNeighbours(answer string, year bool) []string {
	pct := strings.HasSuffix(answer, "%")
	raw := strings.TrimSuffix(answer, "%")
	commas := strings.Contains(raw, ",")
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	decimals := 0
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		decimals = len(raw) - i - 1
	}

	var values []float64
	if year {
		values = []float64{v - 10, v + 10, v - 5, v + 5, v - 50, v + 50, v - 100, v + 100}
	} else {
		values = []float64{v * 2, v / 2, v + 1, v - 1, v * 10, v + 10, v * 3, v / 10}
	}

	seen := map[string]bool{answer: true}
	out := make([]string, 0, len(values))
	for _, x := range values {
		if x <= 0 || (pct && x > 100) {
			continue
		}
		if decimals == 0 && x != math.Trunc(x) {
			continue
		}
		s := strconv.FormatFloat(x, 'f', decimals, 64)
		if commas {
			s = groupThousands(s)
		}
		if pct {
			s += "%"
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
