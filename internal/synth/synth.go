package synth

import (
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

const blank = "_____"

// Synthesizer builds questions for one request. Its distractor pools are
// derived once from the document; its true/false balance spans every
// question accepted through it. A Synthesizer is not safe for concurrent use.
type Synthesizer struct {
	lex     *lexicon.Lexicon
	profile calibrate.Profile
	pools   pools
	known   map[string]bool
	balance balancer
	chain   []Validator
}

// New prepares a Synthesizer for doc. cands should be every candidate fact
// of the document so that their subjects feed the distractor pools.
func New(doc *document.Document, cands []facts.CandidateFact, lex *lexicon.Lexicon, profile calibrate.Profile) *Synthesizer {
	known := make(map[string]bool, len(doc.Sentences))
	for _, s := range doc.Sentences {
		known[document.Normalize(s.Text)] = true
	}
	return &Synthesizer{
		lex:     lex,
		profile: profile,
		pools:   buildPools(doc, cands, lex),
		known:   known,
		chain:   DefaultValidators(lex),
	}
}

// Synthesize builds a question of type t from f. It returns an
// *UnsynthesizableFactError when no valid question can be built.
func (s *Synthesizer) Synthesize(f facts.CandidateFact, t Type) (Question, error) {
	var (
		q      Question
		reason string
	)
	switch t {
	case MultipleChoice:
		q, reason = s.multipleChoice(f)
	case TrueFalse:
		q = s.trueFalse(f)
	case ShortAnswer:
		q = s.shortAnswer(f)
	default:
		reason = "unsupported question type"
	}
	if reason != "" {
		return Question{}, &UnsynthesizableFactError{SentenceIndex: f.SourceSentenceIndex, Type: t, Reason: reason}
	}

	q.Type = t
	q.Difficulty = s.profile.Tier
	q.SourceSentence = f.SourceSentenceIndex
	if err := RunValidators(q, s.chain); err != nil {
		return Question{}, &UnsynthesizableFactError{
			SentenceIndex: f.SourceSentenceIndex,
			Type:          t,
			Reason:        "rejected by validator",
			Err:           err,
		}
	}
	return q, nil
}

// Accept records that q was kept, so that later true/false questions
// balance against it.
func (s *Synthesizer) Accept(q Question) {
	if q.Type == TrueFalse {
		s.balance.record(q.IsTrue())
	}
}

func (s *Synthesizer) multipleChoice(f facts.CandidateFact) (Question, string) {
	stem := cloze(f)
	if f.IsDefinition() {
		stem = "Which of the following " + f.Copula + " " + f.Predicate + "?"
	}
	wrong := s.distractors(f, stem, 3)
	if len(wrong) < 3 {
		return Question{}, "not enough distractors"
	}

	idx := int(hash32(stem) % 4)
	options := make([]string, 0, 4)
	options = append(options, wrong[:idx]...)
	options = append(options, f.Subject)
	options = append(options, wrong[idx:]...)

	return Question{
		Stem:               stem,
		Options:            options,
		CorrectAnswerIndex: intPtr(idx),
		CorrectAnswerText:  f.Subject,
		Explanation:        answerExplanation(f),
	}, ""
}

func (s *Synthesizer) shortAnswer(f facts.CandidateFact) Question {
	stem := cloze(f)
	if f.IsDefinition() {
		if def := "What " + f.Copula + " " + f.Predicate + "?"; utf8.RuneCountInString(def) >= minStemRunes {
			stem = def
		}
	}
	return Question{
		Stem:              stem,
		Options:           []string{},
		CorrectAnswerText: f.Subject,
		Explanation:       answerExplanation(f),
	}
}

func (s *Synthesizer) trueFalse(f facts.CandidateFact) Question {
	statement, isTrue := f.Statement, true
	if !s.balance.wantTrue(f.Statement) {
		if v, ok := s.falseVariant(f); ok {
			statement, isTrue = v, false
		}
	}

	idx, label, verdict := 0, TrueLabel, "true"
	if !isTrue {
		idx, label, verdict = 1, FalseLabel, "false"
	}
	return Question{
		Stem:               "True or False: " + statement,
		Options:            []string{TrueLabel, FalseLabel},
		CorrectAnswerIndex: intPtr(idx),
		CorrectAnswerText:  label,
		Explanation:        "This statement is " + verdict + `. The source text states: "` + f.Statement + `"`,
	}
}

func answerExplanation(f facts.CandidateFact) string {
	return `The correct answer is "` + f.Subject + `". The source text states: "` + f.Statement + `"`
}

func (s *Synthesizer) isKnown(sentence string) bool {
	return s.known[document.Normalize(sentence)]
}

// cloze blanks the subject of f out of its statement.
func cloze(f facts.CandidateFact) string {
	return "Fill in the blank: " + replaceSpan(f, blank, false)
}

// substitute puts repl in place of the subject of f, capitalizing it when it
// opens the sentence.
func substitute(f facts.CandidateFact, repl string) string {
	return replaceSpan(f, repl, true)
}

func replaceSpan(f facts.CandidateFact, repl string, capitalize bool) string {
	toks := strings.Fields(f.Statement)
	start, end := f.Span[0], f.Span[1]
	if start < 0 || end > len(toks) || start >= end {
		return f.Statement
	}
	first, last := toks[start], toks[end-1]

	lw := document.CleanWord(first)
	lead := first[:strings.Index(first, lw)]
	tw := document.CleanWord(last)
	trail := last[strings.Index(last, tw)+len(tw):]
	if strings.HasSuffix(f.Subject, "%") {
		trail = strings.TrimPrefix(trail, "%")
	}

	if capitalize && start == 0 {
		repl = upperFirst(repl)
	}
	out := make([]string, 0, len(toks)-(end-start)+1)
	out = append(out, toks[:start]...)
	out = append(out, lead+repl+trail)
	out = append(out, toks[end:]...)
	return strings.Join(out, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// hash32 is FNV-1a over s.
func hash32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
