package synth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/facts"
	"github.com/dgallion1/quizgest/internal/lexicon"
	"github.com/dgallion1/quizgest/internal/normalize"
)

const scenario = "The mitochondria is the powerhouse of the cell. Photosynthesis occurs in chloroplasts."

func build(t *testing.T, text string, lex *lexicon.Lexicon) (*Synthesizer, []facts.CandidateFact) {
	t.Helper()
	doc, err := normalize.Normalize(text, lexicon.Default(), normalize.DefaultConfig())
	require.NoError(t, err)
	p := calibrate.For(calibrate.Medium)
	cands := facts.Candidates(doc, analyze.Analyze(doc, lexicon.Default()), p, lexicon.Default())
	return New(doc, cands, lex, p), cands
}

func assertMultipleChoice(t *testing.T, q Question) {
	t.Helper()
	require.Len(t, q.Options, 4)
	seen := map[string]bool{}
	for _, o := range q.Options {
		k := strings.ToLower(o)
		assert.False(t, seen[k], "duplicate option %q", o)
		seen[k] = true
	}
	require.NotNil(t, q.CorrectAnswerIndex)
	assert.Equal(t, q.CorrectAnswerText, q.Options[*q.CorrectAnswerIndex])
}

func TestSynthesize_MultipleChoiceDefinition(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	q, err := s.Synthesize(cands[0], MultipleChoice)
	require.NoError(t, err)

	assert.Equal(t, MultipleChoice, q.Type)
	assert.Equal(t, "Which of the following is the powerhouse of the cell?", q.Stem)
	assert.Equal(t, "mitochondria", q.CorrectAnswerText)
	assert.Equal(t, calibrate.Medium, q.Difficulty)
	assert.Equal(t, 0, q.SourceSentence)
	assertMultipleChoice(t, q)
	for _, o := range q.Options {
		assert.NotEqual(t, "powerhouse", o)
		assert.NotEqual(t, "cell", o)
	}
	assert.Contains(t, q.Explanation, "The mitochondria is the powerhouse of the cell.")
}

func TestSynthesize_MultipleChoiceCloze(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	q, err := s.Synthesize(cands[1], MultipleChoice)
	require.NoError(t, err)

	assert.Equal(t, "Fill in the blank: Photosynthesis occurs in _____.", q.Stem)
	assert.Equal(t, "chloroplasts", q.CorrectAnswerText)
	assertMultipleChoice(t, q)
	for _, o := range q.Options {
		assert.NotEqual(t, "photosynthesis", strings.ToLower(o))
	}
}

func TestSynthesize_AnswerPositionFollowsStemHash(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	q, err := s.Synthesize(cands[0], MultipleChoice)
	require.NoError(t, err)
	assert.Equal(t, int(hash32(q.Stem)%4), *q.CorrectAnswerIndex)
}

func TestSynthesize_ShortAnswer(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	q, err := s.Synthesize(cands[0], ShortAnswer)
	require.NoError(t, err)

	assert.Equal(t, "What is the powerhouse of the cell?", q.Stem)
	assert.Equal(t, "mitochondria", q.CorrectAnswerText)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)
	assert.Nil(t, q.CorrectAnswerIndex)
}

func TestSynthesize_TrueFalseShape(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	for _, f := range cands {
		q, err := s.Synthesize(f, TrueFalse)
		require.NoError(t, err)
		assert.Equal(t, []string{"True", "False"}, q.Options)
		require.NotNil(t, q.CorrectAnswerIndex)
		assert.Equal(t, q.Options[*q.CorrectAnswerIndex], q.CorrectAnswerText)
		assert.True(t, strings.HasPrefix(q.Stem, "True or False: "))
		assert.Contains(t, q.Explanation, f.Statement)
		s.Accept(q)
	}
}

func TestSynthesize_TrueFalseBalanced(t *testing.T) {
	words := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
		"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa", "quebec",
		"romeo", "sierra", "tango", "uniform", "victor", "whiskey", "yankee"}
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "The %s layer is responsible for stage %d of processing. ", w, i+1)
	}
	s, cands := build(t, b.String(), lexicon.Default())
	require.GreaterOrEqual(t, len(cands), 20)

	trues := 0
	for _, f := range cands {
		q, err := s.Synthesize(f, TrueFalse)
		require.NoError(t, err)
		s.Accept(q)
		if q.IsTrue() {
			trues++
		}
	}
	ratio := float64(trues) / float64(len(cands))
	assert.GreaterOrEqual(t, ratio, 0.3)
	assert.LessOrEqual(t, ratio, 0.7)
}

func TestFalseVariant_NegatesCopula(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	v, ok := s.falseVariant(cands[0])
	require.True(t, ok)
	assert.Equal(t, "The mitochondria is not the powerhouse of the cell.", v)
}

func TestFalseVariant_ChangesNumber(t *testing.T) {
	s, cands := build(t, "Water boils at 100 degrees at sea level.", lexicon.Default())
	v, ok := s.falseVariant(cands[0])
	require.True(t, ok)
	assert.Equal(t, "Water boils at 200 degrees at sea level.", v)
}

func TestFalseVariant_FlipsPolarityWord(t *testing.T) {
	s, cands := build(t, "Heating a gas always increases its pressure.", lexicon.Default())
	v, ok := s.falseVariant(cands[0])
	require.True(t, ok)
	assert.Equal(t, "Heating a gas never increases its pressure.", v)
}

func TestSynthesize_NotEnoughDistractors(t *testing.T) {
	s, cands := build(t, scenario, &lexicon.Lexicon{})
	_, err := s.Synthesize(cands[0], MultipleChoice)
	require.Error(t, err)

	var ue *UnsynthesizableFactError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.SentenceIndex)
	assert.Equal(t, "not enough distractors", ue.Reason)
}

func TestSynthesize_UnsupportedType(t *testing.T) {
	s, cands := build(t, scenario, lexicon.Default())
	_, err := s.Synthesize(cands[0], Mixed)
	var ue *UnsynthesizableFactError
	require.True(t, errors.As(err, &ue))
}

func TestSynthesize_Deterministic(t *testing.T) {
	text := scenario + " Water boils at 100 degrees at sea level. The Nile flows north into the Mediterranean Sea."
	run := func() []Question {
		s, cands := build(t, text, lexicon.Default())
		var out []Question
		for _, typ := range []Type{MultipleChoice, TrueFalse, ShortAnswer} {
			for _, f := range cands {
				if q, err := s.Synthesize(f, typ); err == nil {
					s.Accept(q)
					out = append(out, q)
				}
			}
		}
		return out
	}
	first := run()
	require.NotEmpty(t, first)
	for range 10 {
		assert.Equal(t, first, run())
	}
}

func TestRunValidators(t *testing.T) {
	chain := DefaultValidators(lexicon.Default())
	good := Question{
		Type:               MultipleChoice,
		Stem:               "Which of the following is the powerhouse of the cell?",
		Options:            []string{"nucleus", "mitochondria", "ribosome", "membrane"},
		CorrectAnswerIndex: intPtr(1),
		CorrectAnswerText:  "mitochondria",
		Explanation:        "From the text.",
	}
	require.NoError(t, RunValidators(good, chain))

	tests := []struct {
		name      string
		mutate    func(q *Question)
		validator string
	}{
		{"short stem", func(q *Question) { q.Stem = "Which one?" }, "structure"},
		{"no explanation", func(q *Question) { q.Explanation = " " }, "structure"},
		{"duplicate option", func(q *Question) { q.Options[2] = "Nucleus" }, "options"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "options"},
		{"index mismatch", func(q *Question) { q.CorrectAnswerIndex = intPtr(0) }, "options"},
		{"answer in stem", func(q *Question) {
			q.Stem = "Which of the following mitochondria is the powerhouse?"
		}, "options"},
		{"trivial stem", func(q *Question) {
			q.Stem = "Which of the following is discussed in this chapter?"
		}, "exam_worthiness"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := good
			q.Options = append([]string(nil), good.Options...)
			tt.mutate(&q)
			err := RunValidators(q, chain)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.validator, ve.Validator)
		})
	}
}

func TestValidateOptions_TrueFalseAndShortAnswer(t *testing.T) {
	tf := Question{Type: TrueFalse, Options: []string{"False", "True"}, CorrectAnswerIndex: intPtr(0), CorrectAnswerText: "False"}
	assert.Error(t, validateOptions(tf))

	sa := Question{Type: ShortAnswer, Stem: "What is the powerhouse of the cell?", Options: []string{}, CorrectAnswerIndex: intPtr(0), CorrectAnswerText: "mitochondria"}
	assert.Error(t, validateOptions(sa))
	sa.CorrectAnswerIndex = nil
	assert.NoError(t, validateOptions(sa))
}

func TestPlanner_Mixed(t *testing.T) {
	p := NewPlanner(Mixed, calibrate.For(calibrate.Medium))
	var got []Type
	for range 10 {
		typ := p.Next()
		got = append(got, typ)
		p.Accept(typ)
	}
	want := []Type{
		MultipleChoice, TrueFalse, MultipleChoice, TrueFalse, ShortAnswer,
		MultipleChoice, TrueFalse, MultipleChoice, TrueFalse, ShortAnswer,
	}
	assert.Equal(t, want, got)
}

func TestPlanner_SingleType(t *testing.T) {
	p := NewPlanner(TrueFalse, calibrate.For(calibrate.Exam))
	for range 5 {
		assert.Equal(t, TrueFalse, p.Next())
		p.Accept(TrueFalse)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in     string
		want   Type
		wantOK bool
	}{
		{"multiple_choice", MultipleChoice, true},
		{"Multiple Choice", MultipleChoice, true},
		{"True/False", TrueFalse, true},
		{"true_false", TrueFalse, true},
		{"Flashcards", ShortAnswer, true},
		{"Short Answer", ShortAnswer, true},
		{"mixed", Mixed, true},
		{"essay", MultipleChoice, false},
		{"", MultipleChoice, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestNumericNeighbours(t *testing.T) {
	assert.Equal(t, []string{"200", "50", "101", "99", "1000", "110", "300", "10"}, numericNeighbours("100", false))
	assert.Equal(t, []string{"2,400", "600", "1,201", "1,199", "12,000", "1,210", "3,600", "120"}, numericNeighbours("1,200", false))
	assert.Equal(t, []string{"72%", "70%", "81%"}, numericNeighbours("71%", false))
	assert.Equal(t, []string{"1794", "1814", "1799", "1809", "1754", "1854", "1704", "1904"}, numericNeighbours("1804", true))
	assert.Nil(t, numericNeighbours("abc", false))
}

func TestDice(t *testing.T) {
	assert.Equal(t, 1.0, dice("Cell", "cell"))
	assert.Equal(t, 0.25, dice("night", "nacht"))
	assert.Equal(t, 0.0, dice("a", "b"))
}

func TestSingular(t *testing.T) {
	tests := map[string]string{
		"cells":     "cell",
		"species":   "specy",
		"boxes":     "box",
		"glass":     "glass",
		"nucleus":   "nucleus",
		"analysis":  "analysis",
		"branches":  "branch",
		"organisms": "organism",
	}
	for in, want := range tests {
		assert.Equal(t, want, singular(in), in)
	}
}
