package api

import (
	"net/http"

	"github.com/dgallion1/quizgest/internal/stats"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	latency := stats.Snapshot{ByOp: map[string]int{}}
	if s.stats != nil {
		latency = s.stats.Snapshot()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"latency":     latency,
		"queue_depth": s.orchestrator.QueueDepth(),
		"jobs":        s.orchestrator.JobCount(),
	})
}
