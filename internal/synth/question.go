package synth

import (
	"strings"

	"github.com/dgallion1/quizgest/internal/calibrate"
)

// Type is a question type.
type Type string

const (
	MultipleChoice Type = "multiple_choice"
	TrueFalse      Type = "true_false"
	ShortAnswer    Type = "short_answer"
	Mixed          Type = "mixed"
)

// Option labels for true/false questions, in option order.
const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// ParseType maps user input to a question type. Underscores, hyphens and
// slashes count as spaces, so "Multiple Choice", "true/false" and
// "short_answer" are all accepted. "Flashcards" means short answer. ok is
// false when the input was not recognized and MultipleChoice was substituted.
func ParseType(s string) (t Type, ok bool) {
	key := strings.NewReplacer("_", " ", "-", " ", "/", " ").Replace(strings.ToLower(s))
	switch strings.Join(strings.Fields(key), " ") {
	case "multiple choice", "multiplechoice", "mcq":
		return MultipleChoice, true
	case "true false", "truefalse", "boolean":
		return TrueFalse, true
	case "short answer", "shortanswer", "flashcards", "flashcard":
		return ShortAnswer, true
	case "mixed", "mix":
		return Mixed, true
	}
	return MultipleChoice, false
}

// Question is a generated exam question.
type Question struct {
	ID      string   `json:"id"`
	Type    Type     `json:"type"`
	Stem    string   `json:"stem"`
	Options []string `json:"options"`
	// CorrectAnswerIndex is nil for short-answer questions.
	CorrectAnswerIndex *int                 `json:"correctAnswerIndex"`
	CorrectAnswerText  string               `json:"correctAnswerText"`
	Explanation        string               `json:"explanation"`
	Difficulty         calibrate.Difficulty `json:"difficulty"`
	// SourceSentence is the index of the sentence the question was built from.
	SourceSentence int `json:"sourceSentence"`
}

// IsTrue reports whether q is a true/false question whose answer is True.
func (q Question) IsTrue() bool {
	return q.Type == TrueFalse && q.CorrectAnswerIndex != nil && *q.CorrectAnswerIndex == 0
}

func intPtr(i int) *int { return &i }

// Planner assigns a question type to each position of a set. For a mixed
// set, position k is short answer when floor((k+1)*share) > floor(k*share);
// the remaining positions alternate between multiple choice and true/false,
// whichever has fewer accepted questions going first.
type Planner struct {
	typ      Type
	sharePct int
	accepted int
	mc, tf   int
}

func NewPlanner(t Type, p calibrate.Profile) *Planner {
	return &Planner{typ: t, sharePct: int(p.ShortAnswerShare*100 + 0.5)}
}

// Next returns the type wanted for the next accepted question.
func (p *Planner) Next() Type {
	if p.typ != Mixed {
		return p.typ
	}
	k := p.accepted
	if (k+1)*p.sharePct/100 > k*p.sharePct/100 {
		return ShortAnswer
	}
	if p.mc <= p.tf {
		return MultipleChoice
	}
	return TrueFalse
}

// Accept records that a question of type t was kept.
func (p *Planner) Accept(t Type) {
	p.accepted++
	switch t {
	case MultipleChoice:
		p.mc++
	case TrueFalse:
		p.tf++
	}
}
