package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// Extractor converts raw document bytes into plain text. Paragraphs are
// separated by a blank line.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// ErrNoText is reported when an adapter ran but found no text.
var ErrNoText = errors.New("no text found in document")

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".pptx":     true,
	".xlsx":     true,
	".png":      true,
	".jpg":      true,
	".jpeg":     true,
	".gif":      true,
	".bmp":      true,
	".tif":      true,
	".tiff":     true,
	".webp":     true,
}

// Config tunes adapter behaviour. The zero value is usable.
type Config struct {
	// PDFFallbackPdftotext retries PDFs with the pdftotext binary when the
	// Go reader fails.
	PDFFallbackPdftotext bool
}

// Result is the outcome of ExtractText.
type Result struct {
	Text   string `json:"text"`
	Format string `json:"format"`
	// Placeholder is set when Text came from the fallback adapter.
	Placeholder bool  `json:"placeholder"`
	Err         error `json:"-"`
}

// ForFile returns the extractor for a filename using default settings.
func ForFile(filename string) (Extractor, error) {
	return Config{}.ForFile(filename)
}

// ForContentType returns the extractor for a MIME type using default settings.
func ForContentType(contentType, filename string) (Extractor, error) {
	return Config{}.ForContentType(contentType, filename)
}

// ExtractText extracts data using default settings.
func ExtractText(data []byte, filename, contentType string) Result {
	return Config{}.ExtractText(data, filename, contentType)
}

// ForFile returns the extractor for a filename, chosen by extension.
func (c Config) ForFile(filename string) (Extractor, error) {
	format := formatForExt(filename)
	if format == "" {
		return nil, fmt.Errorf("unsupported file extension: %s", strings.ToLower(filepath.Ext(filename)))
	}
	return c.extractor(format), nil
}

// ForContentType returns the extractor for a MIME type. Generic or unknown
// types fall back to the filename extension.
func (c Config) ForContentType(contentType, filename string) (Extractor, error) {
	if format := formatForType(contentType); format != "" {
		return c.extractor(format), nil
	}
	return c.ForFile(filename)
}

// ExtractText picks an extractor once and runs it. It never fails: an
// unsupported format, an adapter error or an empty result yields the
// placeholder text with Err describing what went wrong.
func (c Config) ExtractText(data []byte, filename, contentType string) Result {
	format := formatForType(contentType)
	if format == "" {
		format = formatForExt(filename)
	}
	if format == "" {
		err := fmt.Errorf("unsupported file type: %q", filename)
		return placeholderResult(filename, err)
	}

	text, err := c.extractor(format).Extract(bytes.NewReader(data), filename)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrNoText
	}
	if err != nil {
		return placeholderResult(filename, fmt.Errorf("extract %s: %w", format, err))
	}
	return Result{Text: text, Format: format}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func (c Config) extractor(format string) Extractor {
	switch format {
	case "text":
		return &TextExtractor{}
	case "markdown":
		return &MarkdownExtractor{}
	case "csv":
		return &CSVExtractor{}
	case "html":
		return &HTMLExtractor{}
	case "pdf":
		return &PDFExtractor{FallbackPdftotext: c.PDFFallbackPdftotext}
	case "docx":
		return &DOCXExtractor{}
	case "pptx":
		return &PPTXExtractor{}
	case "xlsx":
		return &XLSXExtractor{}
	case "image":
		return &ImageExtractor{}
	}
	return &PlaceholderExtractor{}
}

func formatForExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return "text"
	case ".md", ".markdown":
		return "markdown"
	case ".csv":
		return "csv"
	case ".html", ".htm":
		return "html"
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".pptx":
		return "pptx"
	case ".xlsx":
		return "xlsx"
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return "image"
	}
	return ""
}

func formatForType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mt {
	case "text/plain":
		return "text"
	case "text/markdown", "text/x-markdown":
		return "markdown"
	case "text/csv":
		return "csv"
	case "text/html", "application/xhtml+xml":
		return "html"
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return "pptx"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	}
	if strings.HasPrefix(mt, "image/") {
		return "image"
	}
	return ""
}
