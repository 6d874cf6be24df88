package service

import (
	"context"
	"strings"

	"github.com/cihanuluisik/Dge-Advisor/internal/constant"
	"github.com/cihanuluisik/Dge-Advisor/internal/dto"
	"github.com/cihanuluisik/Dge-Advisor/internal/entity"
	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/internal/repository/contract"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag/pipeline"

	"github.com/google/uuid"
)

// IChatService runs one query through the full pipeline and owns the
// persistence policy around it.
type IChatService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.PipelineResult, error)
}

// PipelineExecutor is the guardrail/retrieve/synthesize core; it degrades
// internally and never fails.
type PipelineExecutor interface {
	Execute(ctx context.Context, query string, history []llm.Message) pipeline.Result
}

type chatService struct {
	sessions      contract.ChatSessionRepository
	messages      contract.ChatMessageRepository
	pipeline      PipelineExecutor
	historyWindow int
	log           logger.ILogger
}

func NewChatService(
	sessions contract.ChatSessionRepository,
	messages contract.ChatMessageRepository,
	executor PipelineExecutor,
	historyWindow int,
	log logger.ILogger,
) IChatService {
	if historyWindow <= 0 {
		historyWindow = 3
	}
	return &chatService{
		sessions:      sessions,
		messages:      messages,
		pipeline:      executor,
		historyWindow: historyWindow,
		log:           log,
	}
}

// Ask executes the fixed sequence: resolve session, persist the user turn,
// run the pipeline, persist exactly one assistant turn. Only persistence
// failures abort; everything inside the pipeline degrades to a best-effort
// answer. The verdict and retrieved documents never reach the message log.
func (cs *chatService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.PipelineResult, error) {
	// Do-not-lose-writes: a client disconnect must not cancel persistence of
	// an in-flight turn, so the whole execution runs detached from the
	// request's cancellation. Stage timeouts still bound each step.
	ctx = context.WithoutCancel(ctx)

	chatId := resolveChatID(request)

	if err := cs.sessions.EnsureSession(ctx, chatId); err != nil {
		return nil, &rag.PersistenceError{Op: "ensure session", Err: err}
	}

	// Prior turns only; the current query is passed to synthesis separately.
	history := cs.loadHistory(ctx, chatId)

	userMessage := &entity.ChatMessage{
		ChatId:  chatId,
		Message: request.Query,
		Role:    constant.ChatMessageRoleUser,
	}
	if err := cs.messages.Create(ctx, userMessage); err != nil {
		return nil, &rag.PersistenceError{Op: "persist user turn", Err: err}
	}

	result := cs.pipeline.Execute(ctx, request.Query, history)

	assistantMessage := &entity.ChatMessage{
		ChatId:  chatId,
		Message: result.Answer,
		Role:    constant.ChatMessageRoleAssistant,
	}
	if err := cs.messages.Create(ctx, assistantMessage); err != nil {
		return nil, &rag.PersistenceError{Op: "persist assistant turn", Err: err}
	}

	cs.log.Info("chat", "turn completed", map[string]interface{}{
		"chat_id":       chatId,
		"answer_length": len(result.Answer),
	})

	return &dto.PipelineResult{
		Answer:    result.Answer,
		SessionID: chatId,
	}, nil
}

func (cs *chatService) loadHistory(ctx context.Context, chatId string) []llm.Message {
	recent, err := cs.messages.RecentHistory(ctx, chatId, cs.historyWindow)
	if err != nil {
		cs.log.Warn("chat", "history load failed, continuing without context", map[string]interface{}{
			"chat_id": chatId,
			"error":   err.Error(),
		})
		return nil
	}

	history := make([]llm.Message, 0, len(recent))
	for _, m := range recent {
		history = append(history, llm.Message{
			Role:    m.Role,
			Content: m.Message,
		})
	}
	return history
}

// resolveChatID picks the session identity: the external session token wins
// over a body-supplied chat id, which wins over a fresh one.
func resolveChatID(request *dto.AskRequest) string {
	if request.SessionToken != "" {
		return request.SessionToken
	}
	if request.ChatId != "" {
		return request.ChatId
	}
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "chat_" + hex[:16]
}
