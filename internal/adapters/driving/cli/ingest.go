package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var (
	ingestType  string
	ingestTitle string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the library",
	Long: `Extracts text from the given file, splits it into chunks, embeds each
chunk, and stores everything in the local library.

Supported types: text (any plain text file), pdf, image (OCR).`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestType, "type", "t", "", "document type: text, pdf, or image (default inferred from extension)")
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (default file name)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	docType := domain.DocType(ingestType)
	if ingestType == "" {
		docType = inferDocType(path)
	}
	title := ingestTitle
	if title == "" {
		title = filepath.Base(path)
	}

	res, err := ingestService.Ingest(cmd.Context(), title, docType, path, info.Size())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %q (%d chunks)\n", title, res.ChunkCount)
	cmd.Printf("Document id: %s\n", res.DocumentID)
	return nil
}

func inferDocType(path string) domain.DocType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.DocTypePDF
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return domain.DocTypeImage
	default:
		return domain.DocTypeText
	}
}
