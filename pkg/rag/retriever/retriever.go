// Package retriever queries the hybrid document index.
package retriever

import (
	"context"
	"fmt"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"
	"github.com/cihanuluisik/Dge-Advisor/pkg/embedding"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

// Config bounds what the index returns per query.
type Config struct {
	DenseTopK  int
	SparseTopK int
	Alpha      float64
}

// HybridRetriever embeds the query and runs a combined dense+lexical search
// against the chunk index. It returns raw scored candidates; threshold
// filtering is the caller's responsibility. Failures propagate, nothing is
// retried here.
type HybridRetriever struct {
	embedder embedding.EmbeddingProvider
	chunks   contract.DocumentChunkRepository
	cfg      Config
	log      logger.ILogger
}

func NewHybridRetriever(
	embedder embedding.EmbeddingProvider,
	chunks contract.DocumentChunkRepository,
	cfg Config,
	log logger.ILogger,
) *HybridRetriever {
	return &HybridRetriever{
		embedder: embedder,
		chunks:   chunks,
		cfg:      cfg,
		log:      log,
	}
}

// Search returns scored candidates best-first. An empty slice, never an
// error, when the index has no relevant matches.
func (r *HybridRetriever) Search(ctx context.Context, query string) ([]rag.Candidate, error) {
	queryEmbedding, err := r.embedder.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := r.chunks.HybridSearch(ctx, queryEmbedding, query, contract.HybridSearchParams{
		DenseTopK:  r.cfg.DenseTopK,
		SparseTopK: r.cfg.SparseTopK,
		Alpha:      r.cfg.Alpha,
	})
	if err != nil {
		return nil, fmt.Errorf("hybrid search failed: %w", err)
	}

	r.log.Debug("retriever", "hybrid search results", map[string]interface{}{
		"candidates": len(scored),
	})

	candidates := make([]rag.Candidate, 0, len(scored))
	for _, s := range scored {
		if s.Chunk == nil {
			continue
		}
		candidates = append(candidates, rag.Candidate{
			DocSource: s.Chunk.DocSource,
			Page:      s.Chunk.PageNumber,
			Score:     s.Score,
			Content:   s.Chunk.Content,
		})
	}
	return candidates, nil
}
