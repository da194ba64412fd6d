package normalize

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/quizgest/internal/document"
	"github.com/dgallion1/quizgest/internal/lexicon"
)

// Config controls normalization.
type Config struct {
	MinChars  int // Minimum normalized length in characters.
	MinTokens int // Sentences with fewer tokens are discarded as noise.
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinChars:  20,
		MinTokens: 3,
	}
}

// EmptyContentError is returned when too little text survives normalization
// to generate anything from.
type EmptyContentError struct {
	Length int
	Min    int
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("document too short: %d characters after normalization, need at least %d", e.Length, e.Min)
}

// Normalize cleans raw extracted text and segments it into a Document.
func Normalize(raw string, lex *lexicon.Lexicon, cfg Config) (*document.Document, error) {
	if cfg.MinChars <= 0 {
		cfg.MinChars = 20
	}
	if cfg.MinTokens <= 0 {
		cfg.MinTokens = 3
	}

	paragraphs := splitParagraphs(clean(raw), lex)

	doc := &document.Document{
		RawLength: utf8.RuneCountInString(raw),
	}

	var text strings.Builder
	for pi, para := range paragraphs {
		if pi > 0 {
			text.WriteString("\n\n")
		}
		ref := document.ParagraphRef{
			Index:         pi,
			FirstSentence: len(doc.Sentences),
			Offset:        text.Len(),
		}
		text.WriteString(para)

		for _, sent := range splitSentences(para, lex) {
			tokens := CountTokens(sent)
			if tokens < cfg.MinTokens {
				continue
			}
			doc.Sentences = append(doc.Sentences, document.Sentence{
				Index:      len(doc.Sentences),
				Paragraph:  pi,
				Text:       sent,
				TokenCount: tokens,
				KeyTerms:   keyTerms(sent, lex),
			})
			ref.SentenceCount++
		}
		doc.Paragraphs = append(doc.Paragraphs, ref)
	}
	doc.NormalizedText = text.String()

	if n := utf8.RuneCountInString(doc.NormalizedText); n < cfg.MinChars {
		return nil, &EmptyContentError{Length: n, Min: cfg.MinChars}
	}
	return doc, nil
}

// keyTerms returns the content words of a sentence in first-occurrence order.
func keyTerms(sentence string, lex *lexicon.Lexicon) []string {
	var terms []string
	seen := make(map[string]bool)
	for _, w := range document.Words(sentence) {
		if utf8.RuneCountInString(w) < 3 || lex.IsStopWord(w) || document.IsNumeric(w) || seen[w] {
			continue
		}
		seen[w] = true
		terms = append(terms, w)
	}
	return terms
}
