// Package pdf extracts text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// MaxPages caps how many pages are read from one PDF. Longer documents
// are truncated to the first MaxPages pages.
const MaxPages = 50

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDF text page by page.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the PDF at locator, pages joined by a
// blank line.
func (e *Extractor) Extract(_ context.Context, locator string) (string, error) {
	f, reader, err := pdf.Open(locator)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", locator, err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := total
	if pages > MaxPages {
		logger.Warn("PDF has %d pages, reading only the first %d", total, MaxPages)
		pages = MaxPages
	}

	out := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", i, locator, err)
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n\n"), nil
}
