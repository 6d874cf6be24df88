package contract

import (
	"context"

	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error

	// RecentHistory returns up to limit most recent messages for the session
	// in chronological order (oldest first). An empty slice, not an error,
	// when the session has no history yet.
	RecentHistory(ctx context.Context, chatId string, limit int) ([]*entity.ChatMessage, error)

	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
