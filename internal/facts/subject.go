package facts

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

const (
	maxCopulaSubjectWords = 4
	maxCopulaPosition     = 7
	maxProperRun          = 3
	maxTailWords          = 3
)

// match is a subject located by one of the detection rules.
type match struct {
	start, end int
	copula     string
	predicate  string
}

type sentenceTokens struct {
	raw   []string
	clean []string
}

func tokenize(text string) sentenceTokens {
	raw := strings.Fields(text)
	clean := make([]string, len(raw))
	for i, t := range raw {
		clean[i] = document.CleanWord(t)
	}
	return sentenceTokens{raw: raw, clean: clean}
}

// punctuated reports whether token i carries punctuation after its word,
// which ends a phrase.
func (t sentenceTokens) punctuated(i int) bool {
	return t.clean[i] == "" || !strings.HasSuffix(t.raw[i], t.clean[i])
}

func (t sentenceTokens) lower(i int) string { return strings.ToLower(t.clean[i]) }

// detectSubject applies the subject rules in order: copula definition,
// number or year, proper-noun run, prepositional tail, topic keyword.
func detectSubject(s document.Sentence, rank map[string]int, mid map[string]bool, lex *lexicon.Lexicon) (CandidateFact, bool) {
	toks := tokenize(s.Text)
	if len(toks.raw) < 2 {
		return CandidateFact{}, false
	}

	rules := []func(sentenceTokens, *lexicon.Lexicon) (match, bool){
		copulaRule,
		numberRule,
		properRule,
		prepositionRule,
	}
	var (
		m  match
		ok bool
	)
	for _, rule := range rules {
		if m, ok = rule(toks, lex); ok {
			break
		}
	}
	if !ok {
		if m, ok = keywordRule(toks, s.KeyTerms, rank); !ok {
			return CandidateFact{}, false
		}
	}
	if len(toks.raw)-(m.end-m.start) < 2 {
		return CandidateFact{}, false
	}

	subject := subjectText(toks, m, mid)
	if utf8.RuneCountInString(subject) < 2 {
		return CandidateFact{}, false
	}
	return CandidateFact{
		SourceSentenceIndex: s.Index,
		Paragraph:           s.Paragraph,
		Statement:           s.Text,
		Subject:             subject,
		Category:            categorize(subject),
		Copula:              m.copula,
		Predicate:           m.predicate,
		Span:                [2]int{m.start, m.end},
	}, true
}

// copulaRule matches "<det>? <1-4 words> is|are|was|were <predicate>".
func copulaRule(t sentenceTokens, lex *lexicon.Lexicon) (match, bool) {
	cop := -1
	for i := 1; i < len(t.raw)-1 && i <= maxCopulaPosition; i++ {
		if lex.IsCopula(t.clean[i]) && t.raw[i] == t.clean[i] {
			cop = i
			break
		}
	}
	if cop < 0 {
		return match{}, false
	}
	for i := 0; i < cop; i++ {
		if t.punctuated(i) {
			return match{}, false
		}
	}
	start := 0
	for start < cop && lex.IsDeterminer(t.clean[start]) {
		start++
	}
	n := cop - start
	if n < 1 || n > maxCopulaSubjectWords {
		return match{}, false
	}
	if lex.IsPronoun(t.clean[start]) || lex.IsStopWord(t.clean[cop-1]) {
		return match{}, false
	}

	pred := strings.Join(t.raw[cop+1:], " ")
	pred = strings.TrimRightFunc(pred, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '%' && r != ')'
	})
	if pred == "" {
		return match{}, false
	}
	return match{start: start, end: cop, copula: t.lower(cop), predicate: pred}, true
}

// numberRule matches the first number or year in the sentence.
func numberRule(t sentenceTokens, _ *lexicon.Lexicon) (match, bool) {
	for i, w := range t.clean {
		if document.IsNumeric(w) {
			return match{start: i, end: i + 1}, true
		}
	}
	return match{}, false
}

// properRule matches the first run of capitalized words that does not open
// the sentence.
func properRule(t sentenceTokens, lex *lexicon.Lexicon) (match, bool) {
	for i := 1; i < len(t.raw); i++ {
		if !isProperWord(t.clean[i], lex) {
			continue
		}
		end := i + 1
		if !t.punctuated(i) {
			for end < len(t.raw) && end-i < maxProperRun && isProperWord(t.clean[end], lex) {
				end++
				if t.punctuated(end - 1) {
					break
				}
			}
		}
		return match{start: i, end: end}, true
	}
	return match{}, false
}

func isProperWord(w string, lex *lexicon.Lexicon) bool {
	return utf8.RuneCountInString(w) > 1 &&
		document.IsCapitalized(w) &&
		!lex.IsStopWord(w) &&
		!lex.IsPronoun(w)
}

// prepositionRule matches a short noun phrase that follows the last
// preposition and closes the sentence.
func prepositionRule(t sentenceTokens, lex *lexicon.Lexicon) (match, bool) {
	p := -1
	for i := len(t.raw) - 2; i >= 0; i-- {
		if lex.IsPreposition(t.clean[i]) && !t.punctuated(i) {
			p = i
			break
		}
	}
	if p < 0 {
		return match{}, false
	}
	start := p + 1
	for start < len(t.raw) && lex.IsDeterminer(t.clean[start]) {
		start++
	}
	end := len(t.raw)
	n := end - start
	if n < 1 || n > maxTailWords {
		return match{}, false
	}
	for i := start; i < end; i++ {
		w := t.clean[i]
		if i < end-1 && t.punctuated(i) {
			return match{}, false
		}
		if lex.IsStopWord(w) || lex.IsPronoun(w) || document.IsNumeric(w) {
			return match{}, false
		}
	}
	if utf8.RuneCountInString(t.clean[end-1]) < 3 {
		return match{}, false
	}
	return match{start: start, end: end}, true
}

// keywordRule picks the highest-ranked topic keyword in the sentence, or
// failing that its longest key term.
func keywordRule(t sentenceTokens, keyTerms []string, rank map[string]int) (match, bool) {
	best, bestRank := "", len(rank)+1
	for _, k := range keyTerms {
		if r, ok := rank[k]; ok && r < bestRank {
			best, bestRank = k, r
		}
	}
	if best == "" {
		for _, k := range keyTerms {
			if utf8.RuneCountInString(k) >= 5 && utf8.RuneCountInString(k) > utf8.RuneCountInString(best) {
				best = k
			}
		}
	}
	if best == "" {
		return match{}, false
	}
	for i := range t.clean {
		if t.lower(i) == best {
			return match{start: i, end: i + 1}, true
		}
	}
	return match{}, false
}

// subjectText renders the matched tokens. A sentence-initial capital is
// lowered unless the word is known to be a name or acronym.
func subjectText(t sentenceTokens, m match, mid map[string]bool) string {
	words := make([]string, 0, m.end-m.start)
	allCaps := true
	for i := m.start; i < m.end; i++ {
		w := t.clean[i]
		if strings.HasPrefix(t.raw[i][strings.Index(t.raw[i], w)+len(w):], "%") {
			w += "%"
		}
		if !document.IsCapitalized(w) {
			allCaps = false
		}
		words = append(words, w)
	}
	if m.start == 0 && len(words) > 0 {
		first := words[0]
		keep := mid[strings.ToLower(first)] || isAcronym(first) || (allCaps && len(words) > 1)
		if !keep {
			words[0] = strings.ToLower(first)
		}
	}
	return strings.Join(words, " ")
}

func isAcronym(w string) bool {
	if utf8.RuneCountInString(w) < 2 {
		return false
	}
	for _, r := range w {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func categorize(subject string) Category {
	if document.IsNumeric(subject) {
		if isYear(subject) {
			return Year
		}
		return Number
	}
	if document.IsCapitalized(subject) {
		return Proper
	}
	return Term
}

// isYear reports whether w looks like a calendar year between 1000 and 2099.
func isYear(w string) bool {
	if len(w) != 4 {
		return false
	}
	for _, r := range w {
		if r < '0' || r > '9' {
			return false
		}
	}
	return w[0] == '1' || (w[0] == '2' && w[1] == '0')
}

// midSentenceCapitals collects the lowercase forms of words that appear
// capitalized somewhere other than the start of a sentence.
func midSentenceCapitals(doc *document.Document) map[string]bool {
	out := make(map[string]bool)
	for _, s := range doc.Sentences {
		for i, tok := range strings.Fields(s.Text) {
			if i == 0 {
				continue
			}
			if w := document.CleanWord(tok); document.IsCapitalized(w) {
				out[strings.ToLower(w)] = true
			}
		}
	}
	return out
}
