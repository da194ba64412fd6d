package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// rowsPerParagraph groups table rows into paragraphs of manageable size.
const rowsPerParagraph = 20

// CSVExtractor handles CSV files. The first row is taken as headers.
type CSVExtractor struct{}

func (p *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	return tableText(records), nil
}

// tableText renders a header row plus data rows as sentences of the form
// "header: cell, header: cell.", grouped into paragraphs.
func tableText(records [][]string) string {
	if len(records) == 0 {
		return ""
	}
	headers := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return strings.Join(nonEmpty(headers), ", ") + "."
	}

	var paragraphs []string
	for i := 0; i < len(rows); i += rowsPerParagraph {
		end := min(i+rowsPerParagraph, len(rows))

		var para strings.Builder
		for _, row := range rows[i:end] {
			line := rowText(headers, row)
			if line == "" {
				continue
			}
			if para.Len() > 0 {
				para.WriteString("\n")
			}
			para.WriteString(line)
		}
		paragraphs = append(paragraphs, para.String())
	}
	return joinParagraphs(paragraphs)
}

func rowText(headers, row []string) string {
	var parts []string
	for j, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if j < len(headers) && strings.TrimSpace(headers[j]) != "" {
			parts = append(parts, strings.TrimSpace(headers[j])+": "+cell)
		} else {
			parts = append(parts, cell)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + "."
}

func nonEmpty(cells []string) []string {
	var out []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
