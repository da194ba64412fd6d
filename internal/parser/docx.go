package parser

import (
	"fmt"
	"io"
	"strings"

	fdocx "github.com/fumiama/go-docx"
	ndocx "github.com/nguyenthenguyen/docx"
)

// DOCXExtractor handles .docx files. Documents go-docx cannot parse are
// retried with a raw document.xml reader.
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(r io.Reader, filename string) (string, error) {
	// Both readers need a ReaderAt or a path, so spool to a temp file.
	tmp, size, cleanup, err := spool(r, "quizgest-docx-*.docx")
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := docxParagraphs(tmp, size)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	alt, altErr := docxRawText(tmp.Name())
	if altErr != nil {
		if err == nil {
			err = altErr
		}
		return "", fmt.Errorf("parse docx: %w", err)
	}
	return alt, nil
}

func docxParagraphs(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed docx: %v", rec)
		}
	}()

	doc, err := fdocx.Parse(r, size)
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*fdocx.Paragraph)
		if !ok || isHeadingStyle(para) {
			continue
		}
		paragraphs = append(paragraphs, docxParagraphText(para))
	}
	return joinParagraphs(paragraphs), nil
}

func docxRawText(path string) (string, error) {
	rd, err := ndocx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer rd.Close()
	return ooxmlText(strings.NewReader(rd.Editable().GetContent()))
}

func isHeadingStyle(para *fdocx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	return strings.HasPrefix(style, "heading") || style == "title" || style == "subtitle"
}

func docxParagraphText(para *fdocx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*fdocx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*fdocx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
