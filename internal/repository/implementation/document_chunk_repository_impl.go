package implementation

import (
	"context"

	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/mapper"
	"github.com/cihanuluisik/Dge-Advisor/internal/model"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk, embeddings [][]float32) error {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c, embeddings[i])
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 50).Error; err != nil {
		return err
	}

	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DocumentChunk{}).Count(&count).Error
	return count, err
}

func (r *DocumentChunkRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM document_chunks").Error
}

// HybridSearch unions the dense (cosine) and sparse (ts_rank) branches, each
// bounded to its own top-K, then blends the two signals into one score:
//
//	score = alpha * cosine_similarity + (1 - alpha) * least(ts_rank, 1)
//
// ts_rank is capped at 1 so a pathological lexical rank cannot swamp the
// dense signal. Rows matched by only one branch keep the other term at 0.
func (r *DocumentChunkRepositoryImpl) HybridSearch(ctx context.Context, embedding []float32, query string, params contract.HybridSearchParams) ([]*contract.ScoredDocumentChunk, error) {
	if params.DenseTopK <= 0 {
		params.DenseTopK = 2
	}
	if params.SparseTopK <= 0 {
		params.SparseTopK = 1
	}

	type result struct {
		model.DocumentChunk
		Score float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).Raw(`
		WITH dense AS (
			SELECT id, 1 - (embedding <=> ?) AS vscore
			FROM document_chunks
			ORDER BY embedding <=> ?
			LIMIT ?
		), sparse AS (
			SELECT id, ts_rank_cd(to_tsvector('english', content), plainto_tsquery('english', ?)) AS lscore
			FROM document_chunks
			WHERE to_tsvector('english', content) @@ plainto_tsquery('english', ?)
			ORDER BY lscore DESC
			LIMIT ?
		)
		SELECT c.*,
		       ? * COALESCE(d.vscore, 0) + (1 - ?) * LEAST(COALESCE(s.lscore, 0), 1) AS score
		FROM document_chunks c
		LEFT JOIN dense d ON d.id = c.id
		LEFT JOIN sparse s ON s.id = c.id
		WHERE d.id IS NOT NULL OR s.id IS NOT NULL
		ORDER BY score DESC`,
		queryVector, queryVector, params.DenseTopK,
		query, query, params.SparseTopK,
		params.Alpha, params.Alpha,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentChunk{
			Chunk: r.mapper.ToEntity(&res.DocumentChunk),
			Score: res.Score,
		}
	}
	return scored, nil
}
