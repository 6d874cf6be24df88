package dto

// ChatCompletionMessage is one turn in the OpenAI-style request body.
type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []ChatCompletionMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
	ChatId   string                  `json:"chat_id,omitempty"`
}

// AskRequest is the orchestrator's unit of work. SessionToken comes from the
// pga4_session cookie and wins over the body-supplied ChatId.
type AskRequest struct {
	SessionToken string
	ChatId       string
	Query        string
}

// PipelineResult is the only artifact that is persisted and streamed.
type PipelineResult struct {
	Answer    string
	SessionID string
}

// Chat-completion wire envelopes

type ChunkDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

type ChunkChoice struct {
	Index int        `json:"index"`
	Delta ChunkDelta `json:"delta"`
}

type ChatCompletionChunk struct {
	Id      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

type CompletionChoice struct {
	Index        int                   `json:"index"`
	Message      ChatCompletionMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type ChatCompletion struct {
	Id      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
}

// Model descriptor for GET /v1/models

type ModelCapabilities struct {
	Completion     bool `json:"completion"`
	ChatCompletion bool `json:"chat_completion"`
}

type ModelDescriptor struct {
	Id            string            `json:"id"`
	Object        string            `json:"object"`
	Created       int64             `json:"created"`
	OwnedBy       string            `json:"owned_by"`
	Permission    []interface{}     `json:"permission"`
	Root          string            `json:"root"`
	Parent        *string           `json:"parent"`
	MaxTokens     int               `json:"max_tokens"`
	ContextLength int               `json:"context_length"`
	Capabilities  ModelCapabilities `json:"capabilities"`
}

type ModelList struct {
	Object string            `json:"object"`
	Data   []ModelDescriptor `json:"data"`
}
