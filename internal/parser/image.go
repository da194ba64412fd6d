package parser

import (
	"errors"
	"io"
)

// ErrOCRUnavailable is returned for image formats; no OCR engine is bundled.
var ErrOCRUnavailable = errors.New("ocr is not available for image files")

// ImageExtractor accepts image uploads and always reports ErrOCRUnavailable,
// so ExtractText substitutes the placeholder.
type ImageExtractor struct{}

func (p *ImageExtractor) Extract(r io.Reader, filename string) (string, error) {
	return "", ErrOCRUnavailable
}
