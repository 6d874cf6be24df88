package model

import "time"

// ChatMessage rows are append-only; nothing updates or deletes them on the
// live request path. The bigserial id preserves write order within a session.
type ChatMessage struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	ChatId    string    `gorm:"type:text;not null;index;column:chat_id"`
	Message   string    `gorm:"type:text;not null"`
	Role      string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
