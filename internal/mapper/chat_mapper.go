package mapper

import (
	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		ChatId:    s.ChatId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		ChatId:    s.ChatId,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Message:   msg.Message,
		Role:      msg.Role,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Message:   msg.Message,
		Role:      msg.Role,
		CreatedAt: msg.CreatedAt,
	}
}
