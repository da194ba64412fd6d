package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/facts"
	"github.com/dgallion1/quizgest/internal/lexicon"
	"github.com/dgallion1/quizgest/internal/normalize"
	"github.com/dgallion1/quizgest/internal/sample"
	"github.com/dgallion1/quizgest/internal/stats"
	"github.com/dgallion1/quizgest/internal/synth"
)

// dedupWords is how many significant words of a stem identify it.
const dedupWords = 10

// Response is the result of a generation request.
type Response struct {
	Questions       []synth.Question `json:"questions"`
	ContentAnalysis analyze.Report   `json:"contentAnalysis"`
	Options         Options          `json:"options"`
	Metadata        Metadata         `json:"metadata"`
}

// Metadata describes how a question set was produced. Partial is set when
// fewer questions than requested could be built; that is not an error.
type Metadata struct {
	RequestedCount int  `json:"requestedCount"`
	GeneratedCount int  `json:"generatedCount"`
	CandidateCount int  `json:"candidateCount"`
	SkippedCount   int  `json:"skippedCount"`
	Partial        bool `json:"partial"`
}

// Engine turns text into question sets. It holds no per-request state and
// is safe for concurrent use.
type Engine struct {
	lex      *lexicon.Lexicon
	log      *slog.Logger
	stats    *stats.Window
	norm     normalize.Config
	validate *requestValidator
}

// New creates an Engine. A nil lex uses the built-in lexicon; a nil stats
// window disables latency recording.
func New(lex *lexicon.Lexicon, log *slog.Logger, st *stats.Window) *Engine {
	if lex == nil {
		lex = lexicon.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		lex:      lex,
		log:      log,
		stats:    st,
		norm:     normalize.DefaultConfig(),
		validate: newRequestValidator(),
	}
}

// Generate validates req, applies defaults, and builds the question set.
func (e *Engine) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := e.validate.check(req); err != nil {
		return nil, err
	}
	opts := req.Options()
	return guard(e, "generate", func() (*Response, error) {
		return e.generate(ctx, *req.Text, opts, byScore)
	})
}

// GenerateFromText builds a question set for already resolved options.
func (e *Engine) GenerateFromText(ctx context.Context, text string, opts Options) (*Response, error) {
	return e.Generate(ctx, NewRequest(text, opts))
}

// Analyze returns only the content analysis of text.
func (e *Engine) Analyze(ctx context.Context, text string) (analyze.Report, error) {
	return guard(e, "analyze", func() (analyze.Report, error) {
		if err := ctx.Err(); err != nil {
			return analyze.Report{}, err
		}
		doc, err := normalize.Normalize(text, e.lex, e.norm)
		if err != nil {
			return analyze.Report{}, err
		}
		return analyze.Analyze(doc, e.lex), nil
	})
}

// Sample builds a question set from the built-in topic bank. Facts are used
// in bank order, so the requested topic supplies the first questions.
func (e *Engine) Sample(ctx context.Context, req sample.Request) (*Response, error) {
	opts := ResolveOptions(req.QuestionType, Count(sample.ClampCount(req.Count)), req.Difficulty)
	return guard(e, "sample", func() (*Response, error) {
		return e.generate(ctx, sample.Text(req.Topic), opts, byPosition)
	})
}

// selection decides the order in which candidate facts are tried.
type selection int

const (
	// byScore takes the most informative facts first, spread across paragraphs.
	byScore selection = iota
	// byPosition takes facts in document order.
	byPosition
)

func (e *Engine) generate(ctx context.Context, text string, opts Options, sel selection) (*Response, error) {
	doc, err := normalize.Normalize(text, e.lex, e.norm)
	if err != nil {
		return nil, err
	}
	report := analyze.Analyze(doc, e.lex)
	profile := calibrate.For(opts.Difficulty)

	cands := facts.Candidates(doc, report, profile, e.lex)
	ordered := cands
	if sel == byScore {
		ordered = facts.Select(cands, len(cands))
	}
	syn := synth.New(doc, cands, e.lex, profile)
	plan := synth.NewPlanner(opts.QuestionType, profile)

	questions := make([]synth.Question, 0, opts.QuestionCount)
	seen := make(map[string]bool, opts.QuestionCount)
	skipped := 0
	for _, f := range ordered {
		if len(questions) == opts.QuestionCount {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q, err := syn.Synthesize(f, plan.Next())
		if err != nil {
			var ue *synth.UnsynthesizableFactError
			if !errors.As(err, &ue) {
				return nil, err
			}
			e.log.Debug("skipping fact", "sentence", f.SourceSentenceIndex, "reason", err)
			skipped++
			continue
		}
		key := stemKey(q.Stem)
		if seen[key] {
			e.log.Debug("skipping duplicate stem", "sentence", f.SourceSentenceIndex)
			skipped++
			continue
		}
		seen[key] = true
		syn.Accept(q)
		plan.Accept(q.Type)
		questions = append(questions, q)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].SourceSentence < questions[j].SourceSentence
	})
	for i := range questions {
		questions[i].ID = fmt.Sprintf("q%d", i+1)
	}

	return &Response{
		Questions:       questions,
		ContentAnalysis: report,
		Options:         opts,
		Metadata: Metadata{
			RequestedCount: opts.QuestionCount,
			GeneratedCount: len(questions),
			CandidateCount: len(cands),
			SkippedCount:   skipped,
			Partial:        len(questions) < opts.QuestionCount,
		},
	}, nil
}

// guard runs fn, converting a panic into an *EngineInternalError and
// recording latency.
func guard[T any](e *Engine, op string, fn func() (T, error)) (out T, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("engine panic", "op", op, "panic", r, "stack", string(debug.Stack()))
			var zero T
			out, err = zero, &EngineInternalError{Op: op, Cause: fmt.Errorf("panic: %v", r)}
		}
		if e.stats != nil {
			e.stats.Record(op, time.Since(start), err != nil && !IsUserError(err))
		}
	}()
	return fn()
}

// stemKey identifies near-duplicate stems by their first significant words.
func stemKey(stem string) string {
	words := make([]string, 0, dedupWords)
	for _, w := range document.Words(stem) {
		if utf8.RuneCountInString(w) <= 3 {
			continue
		}
		words = append(words, w)
		if len(words) == dedupWords {
			break
		}
	}
	return strings.Join(words, " ")
}
