package synth

import "fmt"

// UnsynthesizableFactError means no valid question could be built from a
// fact. Callers skip the fact.
type UnsynthesizableFactError struct {
	SentenceIndex int
	Type          Type
	Reason        string
	Err           error // *ValidationError when a validator rejected the question
}

func (e *UnsynthesizableFactError) Error() string {
	msg := fmt.Sprintf("sentence %d: cannot build %s question: %s", e.SentenceIndex, e.Type, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnsynthesizableFactError) Unwrap() error { return e.Err }

// ValidationError is returned by a Validator that rejects a question.
type ValidationError struct {
	Validator string
	Reason    string
}

func (e *ValidationError) Error() string {
	return e.Validator + ": " + e.Reason
}
