package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/quizgest/internal/store"
)

// requireStore writes a 503 when persistence is disabled.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.quizzes == nil {
		jsonError(w, "quiz store is disabled", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// handleListQuizzes lists stored quizzes, newest first.
func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	quizzes, err := s.quizzes.ListQuizzes(r.Context(), limit)
	if err != nil {
		s.log.Error("list quizzes failed", "error", err)
		jsonError(w, "failed to list quizzes", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quizzes": quizzes})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := chi.URLParam(r, "quizID")
	quiz, err := s.quizzes.GetQuiz(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "quiz not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get quiz failed", "quiz_id", id, "error", err)
		jsonError(w, "failed to load quiz", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// handleDeleteQuiz deletes a quiz and its questions.
func (s *Server) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := chi.URLParam(r, "quizID")
	err := s.quizzes.DeleteQuiz(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "quiz not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("delete quiz failed", "quiz_id", id, "error", err)
		jsonError(w, "failed to delete quiz", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
