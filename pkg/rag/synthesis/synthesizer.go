// Package synthesis turns a verdict, a context passage and the conversation
// history into the final answer text.
package synthesis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

const (
	// FallbackAnswer is persisted as the assistant turn when the model call
	// itself fails. The turn still completes with a user-visible answer.
	FallbackAnswer = "I apologize, but I ran into a problem while preparing your answer. Please try again in a moment."

	// RejectionFallback covers a blocked query when the model cannot even
	// phrase the rejection.
	RejectionFallback = "I apologize, but I cannot help with that request."
)

const answerSystemPrompt = `You are a helpful assistant answering questions about government policy documents.
Answer the user's question using ONLY the provided policy context and the conversation so far.
If the context does not cover the question, say so honestly and suggest rephrasing.
Be concise and factual.`

const noContextSystemPrompt = `You are a helpful assistant answering questions about government policy documents.
No relevant policy documents were found for this question.
Tell the user politely that you could not find a matching policy document and invite them to rephrase or ask about another policy topic.`

const rejectionSystemPrompt = `You are a helpful assistant for a government policy service.
The user's question was flagged as out of bounds (category: %s).
Write one or two sentences kindly apologizing and explaining you cannot help with that topic, and invite them to ask about policy matters instead.`

type Config struct {
	Temperature float64
	Timeout     time.Duration
}

// Synthesizer wraps the opaque text generation capability. Synthesize always
// returns a non-empty answer; model failures degrade to a fixed apology that
// is persisted like any other assistant turn.
type Synthesizer struct {
	llm llm.LLMProvider
	cfg Config
	log logger.ILogger
}

func NewSynthesizer(provider llm.LLMProvider, cfg Config, log logger.ILogger) *Synthesizer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 300 * time.Second
	}
	return &Synthesizer{
		llm: provider,
		cfg: cfg,
		log: log,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, query string, verdict rag.Verdict, best *rag.Candidate, history []llm.Message) string {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if verdict.Blocked() {
		return s.rejection(ctx, verdict)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	if best != nil {
		messages = append(messages, llm.Message{
			Role:    "system",
			Content: answerSystemPrompt + "\n\nPolicy context:\n" + formatContext(best),
		})
	} else {
		messages = append(messages, llm.Message{Role: "system", Content: noContextSystemPrompt})
	}
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: query})

	answer, err := s.llm.Chat(ctx, messages, llm.WithTemperature(s.cfg.Temperature))
	if err != nil || strings.TrimSpace(answer) == "" {
		s.log.Error("synthesis", "model call failed, using fallback answer", map[string]interface{}{
			"error": fmt.Sprintf("%v", err),
		})
		return FallbackAnswer
	}

	if best != nil {
		answer = appendSources(answer, best)
	}
	return answer
}

func (s *Synthesizer) rejection(ctx context.Context, verdict rag.Verdict) string {
	category := verdict.Category
	if category == "" {
		category = "restricted topic"
	}

	prompt := fmt.Sprintf(rejectionSystemPrompt, category)
	answer, err := s.llm.Generate(ctx, prompt, llm.WithTemperature(s.cfg.Temperature))
	if err != nil || strings.TrimSpace(answer) == "" {
		return RejectionFallback
	}
	return answer
}

func formatContext(c *rag.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document: %s\n", c.DocSource)
	if c.Page > 0 {
		fmt.Fprintf(&b, "Page: %d\n", c.Page)
	}
	fmt.Fprintf(&b, "\n%s", c.Content)
	return b.String()
}

func appendSources(answer string, c *rag.Candidate) string {
	if strings.Contains(answer, "Sources:") {
		return answer
	}
	source := c.DocSource
	if c.Page > 0 {
		source = fmt.Sprintf("%s (page %d)", c.DocSource, c.Page)
	}
	return answer + "\n\nSources: " + source
}
