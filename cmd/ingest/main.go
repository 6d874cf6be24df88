package main

import (
	"context"
	"flag"
	"log"

	"github.com/cihanuluisik/Dge-Advisor/internal/config"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/implementation"
	"github.com/cihanuluisik/Dge-Advisor/pkg/database"
	"github.com/cihanuluisik/Dge-Advisor/pkg/embedding"
	"github.com/cihanuluisik/Dge-Advisor/pkg/ingest"

	"github.com/fatih/color"
)

func main() {
	reset := flag.Bool("reset", false, "drop existing document chunks before ingesting")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: failed to connect to database: %v", err)
	}

	documents, err := ingest.LoadMarkdownDocuments(cfg.Rag.DocumentsDir)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if len(documents) == 0 {
		color.Yellow("No markdown documents found in %s, nothing to do", cfg.Rag.DocumentsDir)
		return
	}
	color.Cyan("Loaded %d documents from %s", len(documents), cfg.Rag.DocumentsDir)

	chunkRepo := implementation.NewDocumentChunkRepository(db)
	embedder := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)

	ingester := ingest.NewIngester(chunkRepo, embedder, func(format string, args ...interface{}) {
		color.White(format, args...)
	})

	written, err := ingester.Ingest(context.Background(), documents, *reset)
	if err != nil {
		log.Fatalf("Error: ingestion failed: %v", err)
	}

	total, err := chunkRepo.Count(context.Background())
	if err != nil {
		log.Fatalf("Error: failed to verify index: %v", err)
	}

	color.Green("Ingestion complete: %d chunks written, %d total in index", written, total)
}
