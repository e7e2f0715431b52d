package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var (
	askK       int
	askSources bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question over the library",
	Long: `Retrieves the chunks most similar to the question and passes them as
context to the chat model, printing the grounded answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askK, "top", "n", 4, "number of context chunks to retrieve")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the retrieved chunks after the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if retrievalService == nil || chatService == nil {
		return errors.New("chat services not configured")
	}

	question := args[0]
	results, err := retrievalService.TopK(cmd.Context(), question, askK, domain.RetrieveOptions{})
	if err != nil {
		return fmt.Errorf("retrieving context: %w", err)
	}

	chunks := make([]string, len(results))
	for i, r := range results {
		chunks[i] = r.Content
	}

	answer, err := chatService.Answer(cmd.Context(), question, chunks)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	cmd.Println(answer)

	if askSources {
		cmd.Println()
		for i, r := range results {
			cmd.Printf("[%d] %.3f  doc %s  chunk %d\n", i+1, r.Score, r.DocumentID, r.Seq)
		}
	}
	return nil
}
