package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXExtractor handles Excel workbooks. Each sheet is rendered like a CSV
// file, first row as headers.
type XLSXExtractor struct{}

func (p *XLSXExtractor) Extract(r io.Reader, filename string) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var paragraphs []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		paragraphs = append(paragraphs, tableText(rows))
	}
	return joinParagraphs(paragraphs), nil
}
