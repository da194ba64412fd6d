package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/quizgest/internal/config"
	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/pipeline"
	"github.com/dgallion1/quizgest/internal/stats"
	"github.com/dgallion1/quizgest/internal/store"
)

// QuizStore is the read and delete access the API needs. *store.Store
// satisfies it.
type QuizStore interface {
	GetQuiz(ctx context.Context, id string) (*store.Quiz, error)
	ListQuizzes(ctx context.Context, limit int) ([]store.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

// Server is the HTTP API server for quizgest.
type Server struct {
	router       chi.Router
	engine       *engine.Engine
	orchestrator *pipeline.Orchestrator
	quizzes      QuizStore
	stats        *stats.Window
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. A nil quizzes store
// disables the /api/quizzes routes.
func NewServer(eng *engine.Engine, orch *pipeline.Orchestrator, quizzes QuizStore, st *stats.Window, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		engine:       eng,
		orchestrator: orch,
		quizzes:      quizzes,
		stats:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. Auth is off when no key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/generate", s.handleGenerate)
		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/sample", s.handleSample)

		r.Post("/api/upload", s.handleUpload)
		r.Post("/api/upload/batch", s.handleBatchUpload)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/quizzes", s.handleListQuizzes)
		r.Get("/api/quizzes/{quizID}", s.handleGetQuiz)
		r.Delete("/api/quizzes/{quizID}", s.handleDeleteQuiz)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

// pinger is implemented by stores that can report their health.
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.quizzes.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.log.Error("quiz store ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "store": "unavailable"})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
