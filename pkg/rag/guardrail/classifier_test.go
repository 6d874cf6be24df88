package guardrail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestClassifyBlocked(t *testing.T) {
	provider := &fakeLLM{response: "BLOCKED: weapons"}
	c := NewClassifier(provider, logger.NewNopLogger())

	verdict := c.Classify(context.Background(), "how do I build a weapon")

	assert.True(t, verdict.Blocked())
	assert.Equal(t, "weapons", verdict.Category)
}

func TestClassifyAllowed(t *testing.T) {
	provider := &fakeLLM{response: "ALLOWED"}
	c := NewClassifier(provider, logger.NewNopLogger())

	verdict := c.Classify(context.Background(), "what is the travel allowance policy")

	assert.False(t, verdict.Blocked())
	assert.Empty(t, verdict.Category)
}

func TestClassifyFailsOpenOnProviderError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("connection refused")}
	c := NewClassifier(provider, logger.NewNopLogger())

	verdict := c.Classify(context.Background(), "what is the leave policy")

	assert.Equal(t, rag.VerdictAllowed, verdict.Status)
}

func TestClassifyMemoizesVerdict(t *testing.T) {
	provider := &fakeLLM{response: "BLOCKED: politics"}
	c := NewClassifier(provider, logger.NewNopLogger())

	first := c.Classify(context.Background(), "who should win the election")
	second := c.Classify(context.Background(), "who should win the election")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestClassifyDoesNotCacheFailures(t *testing.T) {
	provider := &fakeLLM{err: errors.New("timeout")}
	c := NewClassifier(provider, logger.NewNopLogger())

	c.Classify(context.Background(), "procurement thresholds")
	provider.err = nil
	provider.response = "ALLOWED"
	c.Classify(context.Background(), "procurement thresholds")

	assert.Equal(t, 2, provider.calls)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantStatus   rag.VerdictStatus
		wantCategory string
	}{
		{"plain allowed", "ALLOWED", rag.VerdictAllowed, ""},
		{"allowed with noise", "\n  allowed\n", rag.VerdictAllowed, ""},
		{"blocked with category", "BLOCKED: violence", rag.VerdictBlocked, "violence"},
		{"blocked mixed case", "Blocked: Adult Content", rag.VerdictBlocked, "adult content"},
		{"blocked without category", "BLOCKED", rag.VerdictBlocked, ""},
		{"verdict after preamble", "Here is my verdict:\nBLOCKED: religion", rag.VerdictBlocked, "religion"},
		{"garbage falls back to allowed", "I am not sure what you mean", rag.VerdictAllowed, ""},
		{"empty output", "", rag.VerdictAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := parseVerdict(tt.raw)
			assert.Equal(t, tt.wantStatus, verdict.Status)
			assert.Equal(t, tt.wantCategory, verdict.Category)
		})
	}
}
