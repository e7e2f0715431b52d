package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Delete a document and all its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	id := args[0]
	if _, err := libraryService.Get(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document with id %s", id)
		}
		return fmt.Errorf("looking up document: %w", err)
	}

	if err := libraryService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted document %s\n", id)
	return nil
}
