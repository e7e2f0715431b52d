// Package ocr extracts text from images through a vision-capable chat
// model.
package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// ImageOCR is the vision call the extractor delegates to. Implemented by
// the OpenAI chat adapter.
type ImageOCR interface {
	OCRImage(ctx context.Context, image []byte) (string, error)
}

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads an image file and OCRs it via an external vision model.
type Extractor struct {
	ocr ImageOCR
}

// New creates an OCR extractor backed by the given vision caller.
func New(ocr ImageOCR) *Extractor {
	return &Extractor{ocr: ocr}
}

// Extract reads the image at locator and returns its recognized text.
func (e *Extractor) Extract(ctx context.Context, locator string) (string, error) {
	data, err := os.ReadFile(locator)
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", locator, err)
	}
	text, err := e.ocr.OCRImage(ctx, data)
	if err != nil {
		return "", fmt.Errorf("running OCR on %s: %w", locator, err)
	}
	return text, nil
}
