package contract

import (
	"context"

	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
)

// ScoredDocumentChunk pairs a chunk with its hybrid relevance score.
type ScoredDocumentChunk struct {
	Chunk *entity.DocumentChunk
	Score float64
}

// HybridSearchParams bounds the candidate set the index returns: DenseTopK
// caps the vector branch, SparseTopK the lexical branch, Alpha weights the
// blended score towards the dense signal.
type HybridSearchParams struct {
	DenseTopK  int
	SparseTopK int
	Alpha      float64
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk, embeddings [][]float32) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error

	// HybridSearch combines dense cosine similarity with lexical full-text
	// rank and returns the blended top results, best first.
	HybridSearch(ctx context.Context, embedding []float32, query string, params HybridSearchParams) ([]*ScoredDocumentChunk, error)
}
