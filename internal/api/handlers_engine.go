package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/sample"
)

// jsonOverhead is allowed on top of MaxTextBytes for the rest of the body.
const jsonOverhead = 64 * 1024

// readBody reads a size-limited JSON body, writing a 413 when it is too big.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxTextBytes+jsonOverhead))
	if err != nil {
		if isTooLarge(err) {
			jsonError(w, fmt.Sprintf("request body exceeds max size (%d bytes)", s.cfg.MaxTextBytes), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	req, err := engine.DecodeRequest(bytes.NewReader(body))
	if err != nil {
		engineError(w, s.log, err)
		return
	}
	resp, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		engineError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type analyzeRequest struct {
	Text *string `json:"text"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		engineError(w, s.log, &engine.InvalidRequestError{Message: fmt.Sprintf("malformed JSON body: %v", err)})
		return
	}
	if req.Text == nil {
		engineError(w, s.log, &engine.InvalidRequestError{Fields: map[string]string{"text": "text is a required field"}})
		return
	}
	report, err := s.engine.Analyze(r.Context(), *req.Text)
	if err != nil {
		engineError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type sampleRequest struct {
	QuestionType string         `json:"questionType"`
	Count        engine.FlexInt `json:"count"`
	Difficulty   string         `json:"difficulty"`
	Topic        string         `json:"topic"`
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var req sampleRequest
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			engineError(w, s.log, &engine.InvalidRequestError{Message: fmt.Sprintf("malformed JSON body: %v", err)})
			return
		}
	}
	resp, err := s.engine.Sample(r.Context(), sample.Request{
		QuestionType: req.QuestionType,
		Count:        req.Count.Value,
		Difficulty:   req.Difficulty,
		Topic:        req.Topic,
	})
	if err != nil {
		engineError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
