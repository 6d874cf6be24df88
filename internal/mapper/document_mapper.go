package mapper

import (
	"encoding/json"

	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(c.Metadata) > 0 {
		// Malformed metadata degrades to nil rather than failing the read
		_ = json.Unmarshal(c.Metadata, &metadata)
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		DocSource:  c.DocSource,
		PageNumber: c.PageNumber,
		Content:    c.Content,
		Metadata:   metadata,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(c *entity.DocumentChunk, embedding []float32) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var metadata datatypes.JSON
	if c.Metadata != nil {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		DocSource:  c.DocSource,
		PageNumber: c.PageNumber,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(embedding),
		Metadata:   metadata,
		CreatedAt:  c.CreatedAt,
	}
}
