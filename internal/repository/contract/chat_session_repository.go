package contract

import "context"

type ChatSessionRepository interface {
	// EnsureSession creates the session row if absent. Safe to call
	// repeatedly for the same chat id.
	EnsureSession(ctx context.Context, chatId string) error
}
