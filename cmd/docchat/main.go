// Command docchat is a local document library with retrieval-augmented chat.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	chatopenai "github.com/custodia-labs/docchat/internal/adapters/driven/chat/openai"
	configfile "github.com/custodia-labs/docchat/internal/adapters/driven/config/file"
	embedopenai "github.com/custodia-labs/docchat/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docchat/internal/adapters/driven/extract/ocr"
	"github.com/custodia-labs/docchat/internal/adapters/driven/extract/pdf"
	"github.com/custodia-labs/docchat/internal/adapters/driven/extract/plaintext"
	secretsfile "github.com/custodia-labs/docchat/internal/adapters/driven/secrets/file"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for development; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := configfile.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	secrets, err := secretsfile.NewSecretStore("")
	if err != nil {
		return fmt.Errorf("opening secret store: %w", err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening library: %w", err)
	}
	defer store.Close()

	embeddingSvc := embedopenai.NewEmbeddingService(embedopenai.Config{
		Secrets: secrets,
		Model:   cfg.EmbeddingModel,
	})
	chatSvc := chatopenai.NewChatService(chatopenai.Config{
		Secrets: secrets,
		Model:   cfg.ChatModel,
	})

	embedder := services.NewEmbedder(embeddingSvc)
	caches := services.NewCaches()

	extractors := map[domain.DocType]driven.Extractor{
		domain.DocTypeText:  plaintext.New(),
		domain.DocTypePDF:   pdf.New(),
		domain.DocTypeImage: ocr.New(chatSvc),
	}

	ingestSvc := services.NewIngestService(store, embedder, extractors, caches)
	ingestSvc.SetChunkParams(cfg.ChunkSize, cfg.ChunkOverlap)

	cli.SetServices(cli.Services{
		Ingest:    ingestSvc,
		Retrieval: services.NewRetrievalService(store, embedder, caches),
		Library:   services.NewLibraryService(store, caches),
		Chat:      chatSvc,
		Secrets:   secrets,
	})

	return cli.Execute()
}
