package lexicon

import (
	"strings"
	"sync"
)

// Lexicon holds the word lists shared by every stage of question generation.
// A Lexicon is built once and must not be modified after construction; the
// same pointer is handed to every request.
type Lexicon struct {
	stopWords     map[string]bool
	abbreviations map[string]bool
	determiners   map[string]bool
	pronouns      map[string]bool
	copulas       map[string]bool
	prepositions  map[string]bool
	polarity      map[string]string

	// TermBank backs multiple-choice distractors for common-noun answers
	// when the document itself has too few candidates.
	TermBank []string
	// PersonBank backs distractors for proper-noun answers.
	PersonBank []string
	// BoilerplateHeadings are section headings whose paragraphs are dropped
	// during normalization.
	BoilerplateHeadings []string
	// TrivialIndicators mark statements that make poor exam questions.
	TrivialIndicators []string
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon. The returned value is shared.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex = build(overlay{})
	})
	return defaultLex
}

func (l *Lexicon) IsStopWord(w string) bool    { return l.stopWords[strings.ToLower(w)] }
func (l *Lexicon) IsAbbreviation(w string) bool { return l.abbreviations[strings.ToLower(w)] }
func (l *Lexicon) IsDeterminer(w string) bool   { return l.determiners[strings.ToLower(w)] }
func (l *Lexicon) IsPronoun(w string) bool      { return l.pronouns[strings.ToLower(w)] }
func (l *Lexicon) IsCopula(w string) bool       { return l.copulas[strings.ToLower(w)] }
func (l *Lexicon) IsPreposition(w string) bool  { return l.prepositions[strings.ToLower(w)] }

// Opposite returns the polarity counterpart of w, if one is known.
func (l *Lexicon) Opposite(w string) (string, bool) {
	o, ok := l.polarity[strings.ToLower(w)]
	return o, ok
}

// build assembles a lexicon from the built-in lists plus an overlay.
func build(o overlay) *Lexicon {
	l := &Lexicon{
		stopWords:     toSet(defaultStopWords, o.StopWords),
		abbreviations: toSet(defaultAbbreviations, o.Abbreviations),
		determiners:   toSet(defaultDeterminers, nil),
		pronouns:      toSet(defaultPronouns, nil),
		copulas:       toSet(defaultCopulas, nil),
		prepositions:  toSet(defaultPrepositions, nil),
		polarity:      make(map[string]string, len(defaultPolarity)*2),

		TermBank:            mergeList(defaultTermBank, o.TermBank),
		PersonBank:          mergeList(defaultPersonBank, o.PersonBank),
		BoilerplateHeadings: mergeList(defaultBoilerplateHeadings, o.BoilerplateHeadings),
		TrivialIndicators:   mergeList(defaultTrivialIndicators, o.TrivialIndicators),
	}
	addPairs := func(pairs [][2]string) {
		for _, p := range pairs {
			a, b := strings.ToLower(p[0]), strings.ToLower(p[1])
			l.polarity[a] = b
			l.polarity[b] = a
		}
	}
	addPairs(defaultPolarity)
	extra := make([][2]string, 0, len(o.Polarity))
	for _, k := range sortedKeys(o.Polarity) {
		extra = append(extra, [2]string{k, o.Polarity[k]})
	}
	addPairs(extra)
	return l
}

func toSet(base, extra []string) map[string]bool {
	m := make(map[string]bool, len(base)+len(extra))
	for _, w := range base {
		m[strings.ToLower(w)] = true
	}
	for _, w := range extra {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			m[w] = true
		}
	}
	return m
}

// mergeList appends extra to base, dropping case-insensitive duplicates and
// keeping the first spelling seen.
func mergeList(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, w := range list {
			w = strings.TrimSpace(w)
			key := strings.ToLower(w)
			if w == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, w)
		}
	}
	return out
}
