package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/synth"
)

const (
	DefaultQuestionCount = 10
	MinQuestionCount     = 1
	MaxQuestionCount     = 50
)

// Request is a question generation request as received from a client.
// Only Text is required; every other field falls back to a default.
type Request struct {
	Text          *string `json:"text" validate:"required"`
	QuestionType  string  `json:"questionType,omitempty"`
	QuestionCount FlexInt `json:"questionCount"`
	Difficulty    string  `json:"difficulty,omitempty"`
}

// NewRequest builds a Request for text with the given options.
func NewRequest(text string, opts Options) Request {
	return Request{
		Text:          &text,
		QuestionType:  string(opts.QuestionType),
		QuestionCount: Count(opts.QuestionCount),
		Difficulty:    string(opts.Difficulty),
	}
}

// Options is a fully resolved request configuration.
type Options struct {
	QuestionType  synth.Type           `json:"questionType"`
	QuestionCount int                  `json:"questionCount"`
	Difficulty    calibrate.Difficulty `json:"difficulty"`
}

// ResolveOptions applies the lenient defaults: unknown types become
// multiple choice, unknown tiers become medium, and the count is clamped to
// MinQuestionCount..MaxQuestionCount with DefaultQuestionCount when unset.
func ResolveOptions(questionType string, count FlexInt, difficulty string) Options {
	t, _ := synth.ParseType(questionType)
	d, _ := calibrate.ParseDifficulty(difficulty)
	n := DefaultQuestionCount
	if count.Set {
		n = min(max(count.Value, MinQuestionCount), MaxQuestionCount)
	}
	return Options{QuestionType: t, QuestionCount: n, Difficulty: d}
}

// Options resolves the request's configuration.
func (r Request) Options() Options {
	return ResolveOptions(r.QuestionType, r.QuestionCount, r.Difficulty)
}

// FlexInt decodes a JSON number or a numeric string. Any other value,
// including null, leaves it unset.
type FlexInt struct {
	Value int
	Set   bool
}

// Count returns a set FlexInt.
func Count(n int) FlexInt { return FlexInt{Value: n, Set: true} }

// ParseFlexInt interprets s the way a JSON string count is interpreted.
func ParseFlexInt(s string) FlexInt {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return Count(n)
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return FlexInt{}
	}
	x = math.Max(math.Min(x, math.MaxInt32), math.MinInt32)
	return Count(int(x))
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] == '{' || b[0] == '[' {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		*f = ParseFlexInt(s)
		return nil
	}
	*f = ParseFlexInt(string(b))
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(f.Value), 10), nil
}

// DecodeRequest reads a JSON request body. Malformed JSON is reported as an
// *InvalidRequestError.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, &InvalidRequestError{Message: fmt.Sprintf("malformed JSON body: %v", err)}
	}
	return req, nil
}
