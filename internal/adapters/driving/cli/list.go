package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the library",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if listJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("Library is empty.")
		return nil
	}
	for _, doc := range docs {
		created := time.UnixMilli(doc.Date).Format("2006-01-02 15:04")
		cmd.Printf("%s  %-5s  %4d chunks  %s  %s\n", created, doc.Type, doc.ChunkCount, doc.ID, doc.Title)
	}
	return nil
}
