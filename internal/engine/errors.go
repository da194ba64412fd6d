package engine

import (
	"errors"
	"sort"
	"strings"

	"github.com/dgallion1/quizgest/internal/normalize"
	"github.com/dgallion1/quizgest/internal/synth"
)

// Error kinds reported to clients.
const (
	KindEmptyContent    = "EmptyContentError"
	KindInvalidRequest  = "InvalidRequestError"
	KindUnsynthesizable = "UnsynthesizableFactError"
	KindInternal        = "EngineInternalError"
)

// InvalidRequestError reports a request with a missing or malformed field.
type InvalidRequestError struct {
	// Fields maps json field names to a readable problem description.
	Fields  map[string]string
	Message string
}

func (e *InvalidRequestError) Error() string {
	if len(e.Fields) == 0 {
		if e.Message == "" {
			return "invalid request"
		}
		return "invalid request: " + e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = e.Fields[n]
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// EngineInternalError wraps an unexpected failure. Its message is generic;
// the cause is for logs only.
type EngineInternalError struct {
	Op    string
	Cause error
}

func (e *EngineInternalError) Error() string {
	return "internal error while generating questions"
}

func (e *EngineInternalError) Unwrap() error { return e.Cause }

// KindOf classifies err into one of the Kind constants. It returns "" for nil.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var (
		empty   *normalize.EmptyContentError
		invalid *InvalidRequestError
		unsynth *synth.UnsynthesizableFactError
	)
	switch {
	case errors.As(err, &empty):
		return KindEmptyContent
	case errors.As(err, &invalid):
		return KindInvalidRequest
	case errors.As(err, &unsynth):
		return KindUnsynthesizable
	}
	return KindInternal
}

// IsUserError reports whether err was caused by the request rather than the engine.
func IsUserError(err error) bool {
	k := KindOf(err)
	return k == KindEmptyContent || k == KindInvalidRequest
}
