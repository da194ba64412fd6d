package facts

import (
	"math"
	"sort"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

// Category classifies the subject of a fact.
type Category string

const (
	Number Category = "number"
	Year   Category = "year"
	Proper Category = "proper"
	Term   Category = "term"
)

// CandidateFact is a sentence judged suitable for a question, together with
// the phrase a question would ask about.
type CandidateFact struct {
	SourceSentenceIndex  int      `json:"sourceSentenceIndex"`
	Paragraph            int      `json:"paragraph"`
	Statement            string   `json:"statement"`
	Subject              string   `json:"subject"`
	Category             Category `json:"category"`
	InformativenessScore float64  `json:"informativenessScore"`

	// Copula is the linking verb of a definition ("is", "are", ...). Empty
	// when the fact is not a definition.
	Copula string `json:"copula,omitempty"`
	// Predicate is the text after the copula, without final punctuation.
	Predicate string `json:"predicate,omitempty"`
	// Span is the [start, end) token range of Subject within
	// strings.Fields(Statement).
	Span [2]int `json:"-"`
}

// IsDefinition reports whether the fact has the form "<subject> is <predicate>".
func (f CandidateFact) IsDefinition() bool { return f.Copula != "" }

// Candidates returns every exam-worthy sentence of doc with a detected
// subject, in document order. Repeated statements are kept once.
func Candidates(doc *document.Document, report analyze.Report, profile calibrate.Profile, lex *lexicon.Lexicon) []CandidateFact {
	rank := make(map[string]int, len(report.TopicKeywords))
	for i, k := range report.TopicKeywords {
		rank[k] = i
	}
	mid := midSentenceCapitals(doc)

	seen := make(map[string]bool, len(doc.Sentences))
	out := make([]CandidateFact, 0, len(doc.Sentences))
	for _, s := range doc.Sentences {
		if !examWorthy(s.Text, lex) {
			continue
		}
		key := document.Normalize(s.Text)
		if seen[key] {
			continue
		}
		seen[key] = true

		f, ok := detectSubject(s, rank, mid, lex)
		if !ok {
			continue
		}
		f.InformativenessScore = score(s, f, report, profile)
		out = append(out, f)
	}
	return out
}

// Extract selects up to count candidate facts from doc. Candidates are taken
// greedily by score, ties broken by sentence position. A candidate from the
// same paragraph as the previous pick is deferred while candidates from
// other paragraphs remain. The result is in selection order.
func Extract(doc *document.Document, report analyze.Report, profile calibrate.Profile, lex *lexicon.Lexicon, count int) []CandidateFact {
	if count <= 0 {
		return []CandidateFact{}
	}
	return Select(Candidates(doc, report, profile, lex), count)
}

// Select applies the greedy paragraph-diverse selection to cands.
func Select(cands []CandidateFact, count int) []CandidateFact {
	pool := make([]CandidateFact, len(cands))
	copy(pool, cands)
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].InformativenessScore != pool[j].InformativenessScore {
			return pool[i].InformativenessScore > pool[j].InformativenessScore
		}
		return pool[i].SourceSentenceIndex < pool[j].SourceSentenceIndex
	})

	picked := make([]CandidateFact, 0, min(count, len(pool)))
	lastParagraph := -1
	for len(pool) > 0 && len(picked) < count {
		next := 0
		for i, c := range pool {
			if c.Paragraph != lastParagraph {
				next = i
				break
			}
		}
		c := pool[next]
		pool = append(pool[:next], pool[next+1:]...)
		picked = append(picked, c)
		lastParagraph = c.Paragraph
	}
	return picked
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
