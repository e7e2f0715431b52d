package driven

import "context"

// Extractor turns a source locator (file path) into raw text. One
// implementation exists per document type: a UTF-8 reader for plain text,
// a page-capped PDF extractor, and an OCR caller for images. Extraction
// failure is fatal to ingestion and happens before anything is persisted.
type Extractor interface {
	// Extract reads the source behind locator and returns its text.
	Extract(ctx context.Context, locator string) (string, error)
}
