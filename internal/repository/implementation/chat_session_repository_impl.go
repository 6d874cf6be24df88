package implementation

import (
	"context"

	"github.com/cihanuluisik/Dge-Advisor/internal/model"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatSessionRepositoryImpl struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{db: db}
}

func (r *ChatSessionRepositoryImpl) EnsureSession(ctx context.Context, chatId string) error {
	// INSERT ... ON CONFLICT (chat_id) DO NOTHING
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoNothing: true,
		}).
		Create(&model.ChatSession{ChatId: chatId}).Error
}
