package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID
	DocSource  string
	PageNumber int
	Content    string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
