package model

import "time"

type ChatSession struct {
	ChatId    string    `gorm:"type:text;primaryKey;column:chat_id"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
