package parser

import (
	"io"
	"strings"
)

// placeholderSentence is repeated to build the fallback text. The repetition
// keeps vocabulary diversity low so the analyzer flags the result.
const (
	placeholderSentence = "No readable text could be extracted from this file."
	placeholderRepeats  = 5
)

// PlaceholderText is the fixed text produced by PlaceholderExtractor.
var PlaceholderText = strings.TrimSpace(strings.Repeat(placeholderSentence+" ", placeholderRepeats))

// PlaceholderExtractor ignores its input and returns PlaceholderText.
type PlaceholderExtractor struct{}

func (p *PlaceholderExtractor) Extract(r io.Reader, filename string) (string, error) {
	return PlaceholderText, nil
}

func placeholderResult(filename string, err error) Result {
	text, _ := (&PlaceholderExtractor{}).Extract(nil, filename)
	return Result{Text: text, Format: "placeholder", Placeholder: true, Err: err}
}
