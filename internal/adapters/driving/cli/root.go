// Package cli implements the docchat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is the CLI version, overridable at build time via -ldflags.
var version = "0.1.0"

// Services injected by the composition root before Execute.
var (
	ingestService    driving.IngestService
	retrievalService driving.RetrievalService
	libraryService   driving.LibraryService
	chatService      driven.ChatService
	secretStore      driven.SecretStore
)

// Services aggregates everything the commands depend on.
type Services struct {
	Ingest    driving.IngestService
	Retrieval driving.RetrievalService
	Library   driving.LibraryService
	Chat      driven.ChatService
	Secrets   driven.SecretStore
}

// SetServices injects the use-case services the commands call.
func SetServices(s Services) {
	ingestService = s.Ingest
	retrievalService = s.Retrieval
	libraryService = s.Library
	chatService = s.Chat
	secretStore = s.Secrets
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your local document library",
	Long: `docchat ingests text, PDF, and image documents into a local SQLite
library, embeds them via OpenAI, and answers questions over the library
with retrieval-augmented chat. All document data stays on disk locally;
only embedding and chat calls leave the machine.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
