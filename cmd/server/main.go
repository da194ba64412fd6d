package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/quizgest/internal/api"
	"github.com/dgallion1/quizgest/internal/config"
	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/lexicon"
	"github.com/dgallion1/quizgest/internal/pipeline"
	"github.com/dgallion1/quizgest/internal/stats"
	"github.com/dgallion1/quizgest/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lex, err := lexicon.Load(cfg.LexiconFile)
	if err != nil {
		log.Error("failed to load lexicon", "path", cfg.LexiconFile, "error", err)
		os.Exit(1)
	}

	window := stats.NewWindow(cfg.StatsWindow)
	eng := engine.New(lex, log, window)

	// Persistence is optional. The interfaces must stay nil when it is off.
	var (
		quizzes   api.QuizStore
		pipeStore pipeline.QuizStore
		db        *store.Store
	)
	if cfg.DBPath != "" {
		db, err = store.Open(cfg.DBPath, log)
		if err != nil {
			log.Error("failed to open quiz store", "path", cfg.DBPath, "error", err)
			os.Exit(1)
		}
		quizzes, pipeStore = db, db
	} else {
		log.Warn("DB_PATH is empty, quiz persistence disabled")
	}

	orch := pipeline.NewOrchestrator(cfg, eng, pipeStore, log)
	orch.Start(ctx)

	srv := api.NewServer(eng, orch, quizzes, window, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		if db != nil {
			db.Close()
		}
	}()

	log.Info("starting quizgest", "port", cfg.Port, "workers", cfg.WorkerCount, "persistence", db != nil)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
