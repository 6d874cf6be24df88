// Package pipeline composes guardrail, retrieval, reranking and synthesis
// into one fixed execution sequence.
package pipeline

import (
	"context"
	"time"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"

	"golang.org/x/sync/errgroup"
)

type GuardrailClassifier interface {
	Classify(ctx context.Context, query string) rag.Verdict
}

type Retriever interface {
	Search(ctx context.Context, query string) ([]rag.Candidate, error)
}

type Reranker interface {
	SelectBest(candidates []rag.Candidate) (rag.Candidate, bool)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, query string, verdict rag.Verdict, best *rag.Candidate, history []llm.Message) string
}

type Config struct {
	MinScore        float64
	ClassifyTimeout time.Duration
	RetrieveTimeout time.Duration
}

// Result is what a pipeline run produces. Verdict and candidate details are
// deliberately not part of it; only the answer text survives the request.
type Result struct {
	Answer string
}

// Executor runs the guardrail branch and the retrieve+rerank branch in
// parallel, joins, and synthesizes once. A failing branch degrades its own
// output (allow verdict, or no context) instead of failing the run, so
// Execute never returns an error.
type Executor struct {
	classifier  GuardrailClassifier
	retriever   Retriever
	reranker    Reranker
	synthesizer Synthesizer
	cfg         Config
	log         logger.ILogger
}

func NewExecutor(
	classifier GuardrailClassifier,
	retriever Retriever,
	reranker Reranker,
	synthesizer Synthesizer,
	cfg Config,
	log logger.ILogger,
) *Executor {
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = 30 * time.Second
	}
	if cfg.RetrieveTimeout <= 0 {
		cfg.RetrieveTimeout = 30 * time.Second
	}
	return &Executor{
		classifier:  classifier,
		retriever:   retriever,
		reranker:    reranker,
		synthesizer: synthesizer,
		cfg:         cfg,
		log:         log,
	}
}

func (e *Executor) Execute(ctx context.Context, query string, history []llm.Message) Result {
	var (
		verdict rag.Verdict
		best    *rag.Candidate
	)

	// Both branches always report success so one failing branch cannot
	// cancel the other; synthesis is the join point.
	var g errgroup.Group

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(ctx, e.cfg.ClassifyTimeout)
		defer cancel()
		verdict = e.classifier.Classify(cctx, query)
		return nil
	})

	g.Go(func() error {
		rctx, cancel := context.WithTimeout(ctx, e.cfg.RetrieveTimeout)
		defer cancel()
		best = e.retrieve(rctx, query)
		return nil
	})

	_ = g.Wait()

	answer := e.synthesizer.Synthesize(ctx, query, verdict, best, history)

	e.log.Info("pipeline", "pipeline completed", map[string]interface{}{
		"blocked":     verdict.Blocked(),
		"has_context": best != nil,
	})

	return Result{Answer: answer}
}

// retrieve runs search, applies the score threshold and reranks down to the
// single best candidate. Any failure degrades to "no context available".
func (e *Executor) retrieve(ctx context.Context, query string) *rag.Candidate {
	candidates, err := e.retriever.Search(ctx, query)
	if err != nil {
		retrievalErr := &rag.RetrievalError{Err: err}
		e.log.Warn("pipeline", "retrieval degraded to empty context", map[string]interface{}{
			"error": retrievalErr.Error(),
		})
		return nil
	}

	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Score >= e.cfg.MinScore {
			filtered = append(filtered, c)
		}
	}

	bestCandidate, ok := e.reranker.SelectBest(filtered)
	if !ok {
		return nil
	}
	return &bestCandidate
}
