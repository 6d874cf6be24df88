package pipeline

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cihanuluisik/Dge-Advisor/internal/pkg/logger"
	"github.com/cihanuluisik/Dge-Advisor/pkg/llm"
	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

type fakeClassifier struct {
	verdict rag.Verdict
}

func (f *fakeClassifier) Classify(ctx context.Context, query string) rag.Verdict {
	return f.verdict
}

type fakeRetriever struct {
	candidates []rag.Candidate
	err        error
}

func (f *fakeRetriever) Search(ctx context.Context, query string) ([]rag.Candidate, error) {
	return f.candidates, f.err
}

type fakeReranker struct {
	seen []rag.Candidate
}

func (f *fakeReranker) SelectBest(candidates []rag.Candidate) (rag.Candidate, bool) {
	f.seen = candidates
	if len(candidates) == 0 {
		return rag.Candidate{}, false
	}
	sorted := append([]rag.Candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	return sorted[0], true
}

type fakeSynthesizer struct {
	answer      string
	gotVerdict  rag.Verdict
	gotBest     *rag.Candidate
	gotHistory  []llm.Message
	gotQuestion string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, query string, verdict rag.Verdict, best *rag.Candidate, history []llm.Message) string {
	f.gotQuestion = query
	f.gotVerdict = verdict
	f.gotBest = best
	f.gotHistory = history
	return f.answer
}

func newExecutor(c *fakeClassifier, r *fakeRetriever, rr *fakeReranker, s *fakeSynthesizer, minScore float64) *Executor {
	return NewExecutor(c, r, rr, s, Config{MinScore: minScore}, logger.NewNopLogger())
}

func TestExecuteHappyPath(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictAllowed}}
	retriever := &fakeRetriever{candidates: []rag.Candidate{
		{DocSource: "a.pdf", Page: 1, Score: 0.9, Content: "alpha"},
		{DocSource: "b.pdf", Page: 2, Score: 0.6, Content: "beta"},
	}}
	reranker := &fakeReranker{}
	synth := &fakeSynthesizer{answer: "final answer"}

	result := newExecutor(classifier, retriever, reranker, synth, 0.5).
		Execute(context.Background(), "what is the policy", nil)

	assert.Equal(t, "final answer", result.Answer)
	if assert.NotNil(t, synth.gotBest) {
		assert.Equal(t, "a.pdf", synth.gotBest.DocSource)
	}
	assert.Equal(t, "what is the policy", synth.gotQuestion)
	assert.False(t, synth.gotVerdict.Blocked())
}

func TestExecuteFiltersBelowMinScore(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictAllowed}}
	retriever := &fakeRetriever{candidates: []rag.Candidate{
		{DocSource: "a.pdf", Score: 0.49, Content: "too weak"},
		{DocSource: "b.pdf", Score: 0.75, Content: "strong"},
	}}
	reranker := &fakeReranker{}
	synth := &fakeSynthesizer{answer: "x"}

	newExecutor(classifier, retriever, reranker, synth, 0.5).
		Execute(context.Background(), "q", nil)

	if assert.Len(t, reranker.seen, 1) {
		assert.Equal(t, "b.pdf", reranker.seen[0].DocSource)
	}
}

func TestExecuteAllBelowThresholdYieldsNoContext(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictAllowed}}
	retriever := &fakeRetriever{candidates: []rag.Candidate{
		{DocSource: "a.pdf", Score: 0.2, Content: "weak"},
	}}
	synth := &fakeSynthesizer{answer: "x"}

	newExecutor(classifier, retriever, &fakeReranker{}, synth, 0.5).
		Execute(context.Background(), "q", nil)

	assert.Nil(t, synth.gotBest)
}

func TestExecuteRetrievalFailureDegradesToNoContext(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictAllowed}}
	retriever := &fakeRetriever{err: errors.New("index unavailable")}
	synth := &fakeSynthesizer{answer: "degraded answer"}

	result := newExecutor(classifier, retriever, &fakeReranker{}, synth, 0.5).
		Execute(context.Background(), "q", nil)

	assert.Equal(t, "degraded answer", result.Answer)
	assert.Nil(t, synth.gotBest)
}

func TestExecuteBlockedVerdictStillJoinsRetrieval(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictBlocked, Category: "weapons"}}
	retriever := &fakeRetriever{candidates: []rag.Candidate{
		{DocSource: "a.pdf", Score: 0.9, Content: "alpha"},
	}}
	synth := &fakeSynthesizer{answer: "rejection"}

	result := newExecutor(classifier, retriever, &fakeReranker{}, synth, 0.5).
		Execute(context.Background(), "q", nil)

	assert.Equal(t, "rejection", result.Answer)
	assert.True(t, synth.gotVerdict.Blocked())
	assert.Equal(t, "weapons", synth.gotVerdict.Category)
}

func TestExecutePassesHistoryThrough(t *testing.T) {
	classifier := &fakeClassifier{verdict: rag.Verdict{Status: rag.VerdictAllowed}}
	retriever := &fakeRetriever{}
	synth := &fakeSynthesizer{answer: "x"}

	history := []llm.Message{{Role: "user", Content: "earlier"}}
	newExecutor(classifier, retriever, &fakeReranker{}, synth, 0.5).
		Execute(context.Background(), "q", history)

	assert.Equal(t, history, synth.gotHistory)
}
