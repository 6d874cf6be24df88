// Package ingest loads converted markdown policy documents into the chunk
// index. It runs as a batch job, never on the live request path.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"
	"github.com/cihanuluisik/Dge-Advisor/pkg/embedding"
	"github.com/cihanuluisik/Dge-Advisor/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const (
	chunkSize    = 4000
	chunkOverlap = 800
	embedWorkers = 8
)

type Document struct {
	Source   string
	FileName string
	Text     string
}

// LoadMarkdownDocuments reads every .md file in dir. A document whose first
// line is "# Source: <name>" keeps that name as provenance; otherwise the
// file name is used.
func LoadMarkdownDocuments(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}

	var documents []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		text := string(raw)
		source := entry.Name()
		if firstLine, _, found := strings.Cut(text, "\n"); found || firstLine != "" {
			if strings.HasPrefix(firstLine, "# Source:") {
				source = strings.TrimSpace(strings.TrimPrefix(firstLine, "# Source:"))
			}
		}

		documents = append(documents, Document{
			Source:   source,
			FileName: entry.Name(),
			Text:     text,
		})
	}
	return documents, nil
}

type Ingester struct {
	chunks   contract.DocumentChunkRepository
	embedder embedding.EmbeddingProvider
	report   func(format string, args ...interface{})
}

func NewIngester(chunks contract.DocumentChunkRepository, embedder embedding.EmbeddingProvider, report func(format string, args ...interface{})) *Ingester {
	if report == nil {
		report = func(string, ...interface{}) {}
	}
	return &Ingester{
		chunks:   chunks,
		embedder: embedder,
		report:   report,
	}
}

// Ingest chunks every document, embeds the chunks concurrently and bulk
// inserts them. With reset set the existing index is dropped first.
func (in *Ingester) Ingest(ctx context.Context, documents []Document, reset bool) (int, error) {
	if reset {
		if err := in.chunks.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("reset index: %w", err)
		}
		in.report("Cleared existing document index")
	}

	var (
		mu         sync.Mutex
		entities   []*entity.DocumentChunk
		embeddings [][]float32
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedWorkers)

	for _, doc := range documents {
		doc := doc
		pieces := utils.SplitText(doc.Text, chunkSize, chunkOverlap)
		in.report("Processing %s: %d chunks", doc.Source, len(pieces))

		for page, piece := range pieces {
			page, piece := page+1, piece
			g.Go(func() error {
				vector, err := in.embedder.Generate(gctx, piece)
				if err != nil {
					return fmt.Errorf("embed chunk %d of %s: %w", page, doc.Source, err)
				}

				mu.Lock()
				entities = append(entities, &entity.DocumentChunk{
					DocSource:  doc.Source,
					PageNumber: page,
					Content:    piece,
					Metadata:   map[string]interface{}{"file_name": doc.FileName},
				})
				embeddings = append(embeddings, vector)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	if len(entities) == 0 {
		return 0, nil
	}

	if err := in.chunks.CreateBulk(ctx, entities, embeddings); err != nil {
		return 0, fmt.Errorf("write chunks: %w", err)
	}
	return len(entities), nil
}
