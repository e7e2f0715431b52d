package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var (
	searchK       int
	searchType    string
	searchAfter   string
	searchBefore  string
	searchMaxScan int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the document library",
	Long: `Ranks stored chunks against the query by embedding similarity.
Documents are shortlisted by centroid first, then their chunks are scored
exactly, so large libraries stay fast.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "top", "n", 3, "number of results")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "restrict to one document type (text, pdf, image)")
	searchCmd.Flags().StringVar(&searchAfter, "after", "", "only documents created on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchBefore, "before", "", "only documents created on or before this date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchMaxScan, "max-scan", 0, "cap on the number of chunks scored (0 = no cap)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// parseDay parses a YYYY-MM-DD date into epoch milliseconds at midnight
// UTC. Empty input yields 0, meaning no bound.
func parseDay(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", value, err)
	}
	return day.UnixMilli(), nil
}

func searchOptions() (domain.RetrieveOptions, error) {
	after, err := parseDay(searchAfter)
	if err != nil {
		return domain.RetrieveOptions{}, err
	}
	before, err := parseDay(searchBefore)
	if err != nil {
		return domain.RetrieveOptions{}, err
	}
	if before != 0 {
		// Inclusive upper bound: the whole named day.
		before += int64(24*time.Hour/time.Millisecond) - 1
	}
	return domain.RetrieveOptions{
		DocType:         domain.DocType(searchType),
		DateStart:       after,
		DateEnd:         before,
		MaxChunksToScan: searchMaxScan,
	}, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	opts, err := searchOptions()
	if err != nil {
		return err
	}

	results, err := retrievalService.TopK(cmd.Context(), args[0], searchK, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for i, r := range results {
		cmd.Printf("[%d] %.3f  doc %s  chunk %d\n", i+1, r.Score, r.DocumentID, r.Seq)
		cmd.Printf("    %s\n", r.Content)
	}
	return nil
}
