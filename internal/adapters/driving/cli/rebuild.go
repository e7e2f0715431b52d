package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild-index",
	Short: "Recompute the centroid index from stored chunks",
	Long: `Recomputes every document's centroid from its persisted chunk
embeddings. Useful for libraries created before the centroid index
existed, or after manual database surgery.`,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	if err := libraryService.RebuildIndex(cmd.Context()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	cmd.Println("Centroid index rebuilt.")
	return nil
}
