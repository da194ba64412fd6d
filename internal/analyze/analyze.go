package analyze

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

// TopKeywords is the number of topic keywords reported.
const TopKeywords = 10

// Report summarizes the readability and structure of a document.
type Report struct {
	WordCount              int      `json:"wordCount"`
	SentenceCount          int      `json:"sentenceCount"`
	ParagraphCount         int      `json:"paragraphCount"`
	AvgSentenceLength      float64  `json:"avgSentenceLength"`
	AvgSyllablesPerWord    float64  `json:"avgSyllablesPerWord"`
	UniqueVocabularyRatio  float64  `json:"uniqueVocabularyRatio"`
	EstimatedReadingLevel  float64  `json:"estimatedReadingLevel"`
	ReadingLevelLabel      string   `json:"readingLevelLabel"`
	TopicKeywords          []string `json:"topicKeywords"`
	LowVocabularyDiversity bool     `json:"lowVocabularyDiversity"`
}

// Analyze computes a Report for doc. It is deterministic and has no side effects.
//
// The reading level is the Flesch-Kincaid grade:
//
//	0.39 * (words / sentences) + 11.8 * (syllables / words) - 15.59
//
// clamped at zero. It grows with both sentence length and syllable density.
func Analyze(doc *document.Document, lex *lexicon.Lexicon) Report {
	r := Report{
		ParagraphCount: len(doc.Paragraphs),
		SentenceCount:  len(doc.Sentences),
		TopicKeywords:  []string{},
	}
	if len(doc.Sentences) == 0 {
		r.ReadingLevelLabel = levelLabel(0)
		return r
	}

	var (
		tokens    int
		syllables int
		distinct  = make(map[string]bool)
		freq      = make(map[string]int)
		firstSeen = make(map[string]int)
	)
	for _, s := range doc.Sentences {
		tokens += s.TokenCount
		for _, w := range document.Words(s.Text) {
			r.WordCount++
			distinct[w] = true
			syllables += countSyllables(w)

			if utf8.RuneCountInString(w) < 3 || lex.IsStopWord(w) || document.IsNumeric(w) {
				continue
			}
			if _, ok := firstSeen[w]; !ok {
				firstSeen[w] = len(firstSeen)
			}
			freq[w]++
		}
	}

	r.AvgSentenceLength = round2(float64(tokens) / float64(len(doc.Sentences)))
	if r.WordCount > 0 {
		r.UniqueVocabularyRatio = round4(float64(len(distinct)) / float64(r.WordCount))
		r.AvgSyllablesPerWord = round2(float64(syllables) / float64(r.WordCount))

		grade := 0.39*(float64(r.WordCount)/float64(len(doc.Sentences))) +
			11.8*(float64(syllables)/float64(r.WordCount)) - 15.59
		r.EstimatedReadingLevel = round2(math.Max(0, grade))
	}
	r.ReadingLevelLabel = levelLabel(r.EstimatedReadingLevel)
	r.TopicKeywords = topKeywords(freq, firstSeen, TopKeywords)
	r.LowVocabularyDiversity = r.WordCount >= 12 && r.UniqueVocabularyRatio < 0.35
	return r
}

// topKeywords orders terms by frequency, breaking ties by first occurrence.
func topKeywords(freq, firstSeen map[string]int, n int) []string {
	terms := make([]string, 0, len(freq))
	for w := range freq {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := terms[i], terms[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}
		return firstSeen[a] < firstSeen[b]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func levelLabel(grade float64) string {
	switch {
	case grade < 6:
		return "elementary"
	case grade < 9:
		return "middle school"
	case grade < 13:
		return "high school"
	case grade < 16:
		return "college"
	default:
		return "graduate"
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
