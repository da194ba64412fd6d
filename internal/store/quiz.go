package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/synth"
)

// DefaultListLimit and MaxListLimit bound ListQuizzes.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Quiz is a stored question set.
type Quiz struct {
	ID       string `json:"id"`
	Filename string `json:"filename,omitempty"`
	// ContentHash identifies the source text and generation options.
	ContentHash    string         `json:"content_hash"`
	QuestionType   string         `json:"question_type"`
	Difficulty     string         `json:"difficulty"`
	RequestedCount int            `json:"requested_count"`
	QuestionCount  int            `json:"question_count"`
	Placeholder    bool           `json:"placeholder,omitempty"`
	Analysis       analyze.Report `json:"analysis"`
	CreatedAt      time.Time      `json:"created_at"`
	// Questions is empty in list results.
	Questions []synth.Question `json:"questions,omitempty"`
}

// SaveQuiz stores q and its questions in one transaction. An empty ID is
// replaced by a new UUID and a zero CreatedAt by the current time.
func (s *Store) SaveQuiz(ctx context.Context, q *Quiz) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	q.QuestionCount = len(q.Questions)

	analysis, err := json.Marshal(q.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin save", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO quizzes (id, filename, content_hash, question_type, difficulty, requested_count, placeholder, analysis, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Filename, q.ContentHash, q.QuestionType, q.Difficulty, q.RequestedCount, q.Placeholder, string(analysis), q.CreatedAt.UnixNano(),
	)
	if err != nil {
		return wrap("insert quiz", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (quiz_id, position, question_id, type, stem, options, correct_index, correct_text, explanation, difficulty, source_sentence)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return wrap("prepare question insert", err)
	}
	defer stmt.Close()

	for i, qu := range q.Questions {
		options, err := json.Marshal(nonNil(qu.Options))
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		var idx sql.NullInt64
		if qu.CorrectAnswerIndex != nil {
			idx = sql.NullInt64{Int64: int64(*qu.CorrectAnswerIndex), Valid: true}
		}
		_, err = stmt.ExecContext(ctx, q.ID, i, qu.ID, string(qu.Type), qu.Stem, string(options), idx,
			qu.CorrectAnswerText, qu.Explanation, string(qu.Difficulty), qu.SourceSentence)
		if err != nil {
			return wrap("insert question", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrap("commit save", err)
	}
	s.log.Debug("quiz saved", "quiz_id", q.ID, "questions", len(q.Questions))
	return nil
}

const quizColumns = `id, filename, content_hash, question_type, difficulty, requested_count, placeholder, analysis, created_at,
	(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id)`

// GetQuiz returns the quiz with its questions, or ErrNotFound.
func (s *Store) GetQuiz(ctx context.Context, id string) (*Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = ?`, id)
	return s.loadQuiz(ctx, row)
}

// FindByHash returns the newest quiz with the given content hash, or
// ErrNotFound.
func (s *Store) FindByHash(ctx context.Context, hash string) (*Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE content_hash = ? ORDER BY created_at DESC, id LIMIT 1`, hash)
	return s.loadQuiz(ctx, row)
}

// ListQuizzes returns the newest quizzes first, without their questions.
// A non-positive limit means DefaultListLimit.
func (s *Store) ListQuizzes(ctx context.Context, limit int) ([]Quiz, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, wrap("list quizzes", err)
	}
	defer rows.Close()

	quizzes := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate quizzes", err)
	}
	return quizzes, nil
}

// DeleteQuiz removes a quiz and its questions, or returns ErrNotFound.
func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrap("begin delete", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, id); err != nil {
		return wrap("delete questions", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return wrap("delete quiz", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap("delete quiz", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return wrap("commit delete", err)
	}
	s.log.Debug("quiz deleted", "quiz_id", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(sc scanner) (*Quiz, error) {
	var (
		q        Quiz
		analysis string
		created  int64
	)
	err := sc.Scan(&q.ID, &q.Filename, &q.ContentHash, &q.QuestionType, &q.Difficulty,
		&q.RequestedCount, &q.Placeholder, &analysis, &created, &q.QuestionCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("scan quiz", err)
	}
	if err := json.Unmarshal([]byte(analysis), &q.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis for quiz %s: %w", q.ID, err)
	}
	if q.Analysis.TopicKeywords == nil {
		q.Analysis.TopicKeywords = []string{}
	}
	q.CreatedAt = time.Unix(0, created).UTC()
	return &q, nil
}

func (s *Store) loadQuiz(ctx context.Context, row *sql.Row) (*Quiz, error) {
	q, err := scanQuiz(row)
	if err != nil {
		return nil, err
	}
	q.Questions, err = s.questions(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Store) questions(ctx context.Context, quizID string) ([]synth.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, type, stem, options, correct_index, correct_text, explanation, difficulty, source_sentence
		 FROM questions WHERE quiz_id = ? ORDER BY position`, quizID)
	if err != nil {
		return nil, wrap("query questions", err)
	}
	defer rows.Close()

	out := []synth.Question{}
	for rows.Next() {
		var (
			qu         synth.Question
			typ, diff  string
			options    string
			correctIdx sql.NullInt64
		)
		if err := rows.Scan(&qu.ID, &typ, &qu.Stem, &options, &correctIdx, &qu.CorrectAnswerText,
			&qu.Explanation, &diff, &qu.SourceSentence); err != nil {
			return nil, wrap("scan question", err)
		}
		if err := json.Unmarshal([]byte(options), &qu.Options); err != nil {
			return nil, fmt.Errorf("decode options for quiz %s: %w", quizID, err)
		}
		qu.Type = synth.Type(typ)
		qu.Difficulty = calibrate.Difficulty(diff)
		if correctIdx.Valid {
			i := int(correctIdx.Int64)
			qu.CorrectAnswerIndex = &i
		}
		out = append(out, qu)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("iterate questions", err)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
