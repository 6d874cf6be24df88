package entity

import "time"

type ChatSession struct {
	ChatId    string
	CreatedAt time.Time
}

type ChatMessage struct {
	Id        int64
	ChatId    string
	Message   string
	Role      string
	CreatedAt time.Time
}
