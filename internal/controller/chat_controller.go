package controller

import (
	"bufio"
	"strings"
	"time"

	"github.com/cihanuluisik/Dge-Advisor/internal/config"
	"github.com/cihanuluisik/Dge-Advisor/internal/constant"
	"github.com/cihanuluisik/Dge-Advisor/internal/dto"
	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/internal/service"
	"github.com/cihanuluisik/Dge-Advisor/pkg/sse"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const sessionCookieName = "pga4_session"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ChatCompletions(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	responder   *sse.Responder
	ragCfg      config.RagConfig
	log         logger.ILogger
}

func NewChatController(chatService service.IChatService, ragCfg config.RagConfig, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		responder:   sse.NewResponder(),
		ragCfg:      ragCfg,
		log:         log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	v1 := r.Group("/v1")
	v1.Post("/chat/completions", c.ChatCompletions)
	v1.Get("/models", c.ListModels)
}

func (c *chatController) ChatCompletions(ctx *fiber.Ctx) error {
	var req dto.ChatCompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	query := lastUserMessage(req.Messages)
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "No user message found")
	}

	sessionToken := extractSessionToken(ctx.Cookies(sessionCookieName))

	c.log.Info("controller", "chat completion request", map[string]interface{}{
		"stream":     req.Stream,
		"has_cookie": sessionToken != "",
	})

	result, err := c.chatService.Ask(ctx.Context(), &dto.AskRequest{
		SessionToken: sessionToken,
		ChatId:       req.ChatId,
		Query:        query,
	})
	if err != nil {
		c.log.Error("controller", "pipeline failed", map[string]interface{}{
			"error": err.Error(),
		})
		return fiber.NewError(fiber.StatusInternalServerError, "Error: failed to process chat completion")
	}

	if !req.Stream {
		return ctx.JSON(c.responder.Completion(result, req.Model))
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	// The answer is already complete; the stream writer only frames it.
	// Write errors here mean the client went away, and the turn is already
	// persisted, so they are dropped.
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		_ = c.responder.Emit(w, result, req.Model)
		_ = w.Flush()
	}))

	return nil
}

func (c *chatController) ListModels(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ModelList{
		Object: "list",
		Data: []dto.ModelDescriptor{
			{
				Id:            c.ragCfg.ServedModelID,
				Object:        "model",
				Created:       time.Date(2023, 7, 22, 0, 0, 0, 0, time.UTC).Unix(),
				OwnedBy:       "organization",
				Permission:    []interface{}{},
				Root:          c.ragCfg.ServedModelID,
				Parent:        nil,
				MaxTokens:     c.ragCfg.ContextLength,
				ContextLength: c.ragCfg.ContextLength,
				Capabilities: dto.ModelCapabilities{
					Completion:     true,
					ChatCompletion: true,
				},
			},
		},
	})
}

// lastUserMessage scans the turns newest-first for the user prompt.
func lastUserMessage(messages []dto.ChatCompletionMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constant.ChatMessageRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// extractSessionToken normalizes the pga4_session cookie value: quotes are
// stripped and anything after the first '!' (the signature part) is dropped.
func extractSessionToken(raw string) string {
	if raw == "" {
		return ""
	}
	token := strings.Trim(raw, `"`)
	if idx := strings.Index(token, "!"); idx >= 0 {
		token = token[:idx]
	}
	return token
}
