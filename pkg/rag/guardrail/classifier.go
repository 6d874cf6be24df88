// Package guardrail classifies incoming queries before they reach synthesis.
package guardrail

import (
	"context"
	"strings"
	"time"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"

	gocache "github.com/patrickmn/go-cache"
)

const classifyPrompt = `You are a safety classifier for a government policy assistant.
Decide whether the user query below is acceptable for a policy Q&A system.

Block queries about: violence, weapons, politics and elections, religion,
adult content, or instructions for illegal activity.
Allow everything else, including ordinary questions about policies,
procedures, procurement, HR and regulations.

Reply with exactly one line:
ALLOWED
or
BLOCKED: <category>

Query: %QUERY%`

// Classifier wraps the LLM in an allow/block decision. It is a pure function
// of the query text, which makes the verdict safe to memoize; identical
// queries within the TTL reuse the cached verdict instead of a model call.
type Classifier struct {
	llm   llm.LLMProvider
	cache *gocache.Cache
	log   logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		llm:   provider,
		cache: gocache.New(10*time.Minute, 30*time.Minute),
		log:   log,
	}
}

// Classify never fails: if the model cannot produce a verdict the query is
// allowed with no category. Fail-open is a deliberate policy choice here so
// a broken classifier degrades to normal answering instead of refusing
// everything; real blocks are unaffected because they only exist when the
// model did answer.
func (c *Classifier) Classify(ctx context.Context, query string) rag.Verdict {
	key := strings.TrimSpace(query)
	if cached, found := c.cache.Get(key); found {
		return cached.(rag.Verdict)
	}

	prompt := strings.Replace(classifyPrompt, "%QUERY%", query, 1)
	raw, err := c.llm.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		c.log.Warn("guardrail", "classification failed, allowing query", map[string]interface{}{
			"error": err.Error(),
		})
		return rag.Verdict{Status: rag.VerdictAllowed}
	}

	verdict := parseVerdict(raw)
	c.cache.Set(key, verdict, gocache.DefaultExpiration)

	if verdict.Blocked() {
		c.log.Info("guardrail", "query blocked", map[string]interface{}{
			"category": verdict.Category,
		})
	}
	return verdict
}

func parseVerdict(raw string) rag.Verdict {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "BLOCKED") {
			category := ""
			if idx := strings.Index(line, ":"); idx >= 0 {
				category = strings.ToLower(strings.TrimSpace(line[idx+1:]))
			}
			return rag.Verdict{Status: rag.VerdictBlocked, Category: category}
		}
		if strings.HasPrefix(upper, "ALLOWED") {
			return rag.Verdict{Status: rag.VerdictAllowed}
		}
	}
	// Unparseable model output counts as a failed classification
	return rag.Verdict{Status: rag.VerdictAllowed}
}
