package document

// Document is normalized source text split into ordered sentences and
// paragraphs. It is built once per request and never modified afterwards.
type Document struct {
	RawLength      int            // Length of the text before normalization, in runes
	NormalizedText string         // Cleaned text, paragraphs separated by a blank line
	Sentences      []Sentence     // Kept sentences in document order
	Paragraphs     []ParagraphRef // Paragraphs in document order
}

// Sentence is a single kept sentence.
type Sentence struct {
	Index      int      // Position among kept sentences
	Paragraph  int      // Index of the owning paragraph
	Text       string   // Sentence text, whitespace collapsed
	TokenCount int      // Whitespace-delimited tokens
	KeyTerms   []string // Lowercase content words, first occurrence order, no repeats
}

// ParagraphRef locates a paragraph and the sentences it owns.
type ParagraphRef struct {
	Index         int // Paragraph position
	FirstSentence int // Index of the first kept sentence (meaningful only if SentenceCount > 0)
	SentenceCount int // Number of kept sentences
	Offset        int // Byte offset of the paragraph within NormalizedText
}

// HasKeyTerm reports whether term (lowercase) is one of the sentence's key terms.
func (s Sentence) HasKeyTerm(term string) bool {
	for _, k := range s.KeyTerms {
		if k == term {
			return true
		}
	}
	return false
}
