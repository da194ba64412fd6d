package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/engine"
	"github.com/dgallion1/quizgest/internal/parser"
	"github.com/dgallion1/quizgest/internal/store"
)

// QuizStore is the persistence a Worker needs. *store.Store satisfies it.
type QuizStore interface {
	FindByHash(ctx context.Context, hash string) (*store.Quiz, error)
	SaveQuiz(ctx context.Context, q *store.Quiz) error
}

// Worker processes a single upload job.
type Worker struct {
	engine       *engine.Engine
	store        QuizStore
	extract      parser.Config
	log          *slog.Logger
	maxTextBytes int64
	backoff      func(int) time.Duration
}

// NewWorker creates a Worker. A nil store disables dedup and persistence.
func NewWorker(eng *engine.Engine, qs QuizStore, extract parser.Config, log *slog.Logger, maxTextBytes int64) *Worker {
	return &Worker{
		engine:       eng,
		store:        qs,
		extract:      extract,
		log:          log,
		maxTextBytes: maxTextBytes,
		backoff:      Backoff,
	}
}

// Process runs extract, dedup, generate and store for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	defer job.releaseFileData()

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	res := w.extract.ExtractText(job.FileData(), job.Filename, job.ContentType)
	if res.Err != nil {
		log.Warn("extraction fell back to placeholder", "error", res.Err)
		job.AddError(fmt.Sprintf("extract: %s", res.Err))
	}
	text := res.Text
	if w.maxTextBytes > 0 && int64(len(text)) > w.maxTextBytes {
		text = truncateText(text, w.maxTextBytes)
		log.Warn("extracted text truncated", "bytes", len(text), "limit", w.maxTextBytes)
		job.AddError(fmt.Sprintf("extracted text truncated to %d bytes", len(text)))
	}
	hash := QuizHash(text, job.Options)
	job.SetExtracted(res.Format, res.Placeholder, utf8.RuneCountInString(text), hash)
	log.Info("extracted document", "format", res.Format, "placeholder", res.Placeholder, "chars", len(text))

	// Placeholder text is never deduplicated or stored.
	persist := w.store != nil && !res.Placeholder

	// Phase 2: Dedup
	if persist {
		job.SetStatus(StatusDeduping, "dedup")
		existing, err := w.findExisting(ctx, log, hash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != nil {
			log.Info("duplicate document, reusing quiz", "quiz_id", existing.ID)
			job.SetResult(responseFromQuiz(existing), existing.ID)
			job.SetStatus(StatusDuplicate, "done")
			return
		}
	}

	// Phase 3: Generate
	job.SetStatus(StatusGenerating, "generating")
	resp, err := w.engine.GenerateFromText(ctx, text, job.Options)
	if err != nil {
		if engine.IsUserError(err) {
			log.Warn("document rejected", "kind", engine.KindOf(err), "error", err)
		} else {
			log.Error("generation failed", "kind", engine.KindOf(err), "error", err)
		}
		job.AddError(fmt.Sprintf("generate: %s", err))
		job.SetStatus(StatusFailed, "generating")
		return
	}
	job.SetResult(resp, "")
	log.Info("generation complete", "questions", len(resp.Questions), "requested", resp.Metadata.RequestedCount)

	// Phase 4: Store
	stored := true
	if persist {
		job.SetStatus(StatusStoring, "storing")
		quiz := &store.Quiz{
			Filename:       job.Filename,
			ContentHash:    hash,
			QuestionType:   string(resp.Options.QuestionType),
			Difficulty:     string(resp.Options.Difficulty),
			RequestedCount: resp.Options.QuestionCount,
			Analysis:       resp.ContentAnalysis,
			Questions:      resp.Questions,
		}
		err := retry(ctx, log, w.backoff, "save quiz", func() error {
			return w.store.SaveQuiz(ctx, quiz)
		})
		if err != nil {
			log.Error("store failed", "error", err)
			job.AddError(fmt.Sprintf("store: %s", err))
			stored = false
		} else {
			job.SetQuizID(quiz.ID)
			log.Info("quiz stored", "quiz_id", quiz.ID)
		}
	}

	if !stored || res.Placeholder || resp.Metadata.Partial {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// findExisting returns the stored quiz for hash, or nil if there is none.
func (w *Worker) findExisting(ctx context.Context, log *slog.Logger, hash string) (*store.Quiz, error) {
	var quiz *store.Quiz
	err := retry(ctx, log, w.backoff, "find quiz", func() error {
		var err error
		quiz, err = w.store.FindByHash(ctx, hash)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return quiz, err
}

// responseFromQuiz rebuilds a generation response from a stored quiz.
func responseFromQuiz(q *store.Quiz) *engine.Response {
	opts := engine.ResolveOptions(q.QuestionType, engine.Count(q.RequestedCount), q.Difficulty)
	return &engine.Response{
		Questions:       q.Questions,
		ContentAnalysis: q.Analysis,
		Options:         opts,
		Metadata: engine.Metadata{
			RequestedCount: opts.QuestionCount,
			GeneratedCount: len(q.Questions),
			Partial:        len(q.Questions) < opts.QuestionCount,
		},
	}
}

// truncateText cuts text to at most limit bytes, preferring a paragraph
// boundary in the second half of the allowance.
func truncateText(text string, limit int64) string {
	n := int(limit)
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	cut := text[:n]
	if i := strings.LastIndex(cut, "\n\n"); i > n/2 {
		cut = cut[:i]
	}
	return cut
}
