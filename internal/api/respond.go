package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dgallion1/quizgest/internal/engine"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// engineErrorBody is the error shape for engine failures.
type engineErrorBody struct {
	Error  string            `json:"error"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
}

// engineError maps an engine error to a status code. Internal errors are
// logged with their cause and reported with a generic message.
func engineError(w http.ResponseWriter, log *slog.Logger, err error) {
	kind := engine.KindOf(err)
	body := engineErrorBody{Error: err.Error(), Kind: kind}

	switch kind {
	case engine.KindEmptyContent:
		writeJSON(w, http.StatusBadRequest, body)
	case engine.KindInvalidRequest:
		var ire *engine.InvalidRequestError
		if errors.As(err, &ire) {
			body.Fields = ire.Fields
		}
		writeJSON(w, http.StatusBadRequest, body)
	default:
		log.Error("engine failure", "kind", kind, "error", err, "cause", errors.Unwrap(err))
		body.Kind = engine.KindInternal
		body.Error = (&engine.EngineInternalError{}).Error()
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

// isTooLarge reports whether err came from an http.MaxBytesReader limit.
func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
