// Package sse packages a finished pipeline result into chat-completion wire
// responses: a one-shot SSE stream for streaming callers and a plain
// completion object for the rest.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cihanuluisik/Dge-Advisor/internal/constant"
	"github.com/cihanuluisik/Dge-Advisor/internal/dto"

	"github.com/google/uuid"
)

const doneMarker = "[DONE]"

type Responder struct{}

func NewResponder() *Responder {
	return &Responder{}
}

// NewResponseID mirrors the chatcmpl id shape: "chatcmpl-" + 29 hex chars.
func NewResponseID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "chatcmpl-" + hex[:29]
}

// Emit writes the whole answer as a single delta frame followed by the
// terminal [DONE] frame. There is no incremental emission: the answer is
// already complete when streaming starts, the framing just satisfies the
// SSE contract.
func (r *Responder) Emit(w io.Writer, result *dto.PipelineResult, model string) error {
	chunk := dto.ChatCompletionChunk{
		Id:      NewResponseID(),
		Object:  "chat.completion.chunk",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []dto.ChunkChoice{
			{
				Index: 0,
				Delta: dto.ChunkDelta{
					Role:    constant.ChatMessageRoleAssistant,
					Content: result.Answer,
				},
			},
		},
	}

	payload, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("marshal chunk: %w", err)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", doneMarker)
	return err
}

// Completion builds the non-streaming response with the same content.
func (r *Responder) Completion(result *dto.PipelineResult, model string) *dto.ChatCompletion {
	return &dto.ChatCompletion{
		Id:      NewResponseID(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []dto.CompletionChoice{
			{
				Index: 0,
				Message: dto.ChatCompletionMessage{
					Role:    constant.ChatMessageRoleAssistant,
					Content: result.Answer,
				},
				FinishReason: "stop",
			},
		},
	}
}
