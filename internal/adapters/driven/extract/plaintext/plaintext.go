// Package plaintext extracts text from plain text files: the file content
// read verbatim.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads a text file as-is.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the file content at locator.
func (e *Extractor) Extract(_ context.Context, locator string) (string, error) {
	data, err := os.ReadFile(locator)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", locator, err)
	}
	return string(data), nil
}
