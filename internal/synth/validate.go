package synth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

const (
	minStemRunes = 15
	maxStemRunes = 500
)

// Validator checks one aspect of a generated question.
type Validator interface {
	Validate(q Question) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(q Question) error

func (f ValidatorFunc) Validate(q Question) error { return f(q) }

// DefaultValidators returns the chain every question passes through:
// structure, options, then exam-worthiness.
func DefaultValidators(lex *lexicon.Lexicon) []Validator {
	return []Validator{
		ValidatorFunc(validateStructure),
		ValidatorFunc(validateOptions),
		ValidatorFunc(func(q Question) error { return validateExamWorthy(q, lex) }),
	}
}

// RunValidators returns the first error in chain order.
func RunValidators(q Question, chain []Validator) error {
	for _, v := range chain {
		if err := v.Validate(q); err != nil {
			return err
		}
	}
	return nil
}

func validateStructure(q Question) error {
	n := utf8.RuneCountInString(strings.TrimSpace(q.Stem))
	if n < minStemRunes || n > maxStemRunes {
		return &ValidationError{Validator: "structure", Reason: fmt.Sprintf("stem length %d outside %d..%d", n, minStemRunes, maxStemRunes)}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{Validator: "structure", Reason: "missing explanation"}
	}
	if strings.TrimSpace(q.CorrectAnswerText) == "" {
		return &ValidationError{Validator: "structure", Reason: "missing answer"}
	}
	return nil
}

func validateOptions(q Question) error {
	fail := func(format string, args ...any) error {
		return &ValidationError{Validator: "options", Reason: fmt.Sprintf(format, args...)}
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) != 4 {
			return fail("expected 4 options, got %d", len(q.Options))
		}
		seen := make(map[string]bool, 4)
		for _, o := range q.Options {
			k := strings.ToLower(strings.TrimSpace(o))
			if k == "" || seen[k] {
				return fail("duplicate or empty option %q", o)
			}
			seen[k] = true
		}
		if q.CorrectAnswerIndex == nil || *q.CorrectAnswerIndex < 0 || *q.CorrectAnswerIndex >= 4 {
			return fail("answer index out of range")
		}
		if q.Options[*q.CorrectAnswerIndex] != q.CorrectAnswerText {
			return fail("answer index does not resolve to the answer")
		}
		if revealsAnswer(q.Stem, q.CorrectAnswerText) {
			return fail("stem reveals the answer")
		}
	case TrueFalse:
		if len(q.Options) != 2 || q.Options[0] != TrueLabel || q.Options[1] != FalseLabel {
			return fail("true/false options must be [True False], got %v", q.Options)
		}
		if q.CorrectAnswerIndex == nil || (*q.CorrectAnswerIndex != 0 && *q.CorrectAnswerIndex != 1) {
			return fail("answer index out of range")
		}
		if q.Options[*q.CorrectAnswerIndex] != q.CorrectAnswerText {
			return fail("answer index does not resolve to the answer")
		}
	case ShortAnswer:
		if len(q.Options) != 0 {
			return fail("short answer must not have options")
		}
		if q.CorrectAnswerIndex != nil {
			return fail("short answer must not have an answer index")
		}
		if revealsAnswer(q.Stem, q.CorrectAnswerText) {
			return fail("stem reveals the answer")
		}
	default:
		return fail("unknown question type %q", q.Type)
	}
	return nil
}

func validateExamWorthy(q Question, lex *lexicon.Lexicon) error {
	if facts.HasTrivialIndicator(q.Stem, lex) {
		return &ValidationError{Validator: "exam_worthiness", Reason: "stem asks about the document rather than its content"}
	}
	if q.Type != TrueFalse && lex.IsStopWord(q.CorrectAnswerText) {
		return &ValidationError{Validator: "exam_worthiness", Reason: "answer is a function word"}
	}
	return nil
}

// revealsAnswer reports whether answer occurs in stem as a whole phrase.
func revealsAnswer(stem, answer string) bool {
	a := document.Normalize(answer)
	if a == "" {
		return false
	}
	return strings.Contains(" "+document.Normalize(stem)+" ", " "+a+" ")
}
