// Package reranker picks the single best candidate out of a retrieved batch.
package reranker

import (
	"sort"

	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

// Reranker reduces a scored candidate batch to the one highest-scoring
// document. Forwarding only the top-1 trades recall for a smaller,
// higher-precision synthesis context.
type Reranker struct{}

func New() *Reranker {
	return &Reranker{}
}

// SelectBest drops malformed candidates, sorts the rest by score descending
// (stable, so the first-seen candidate wins a tie) and returns the winner.
// ok is false when nothing survives filtering; that is a normal outcome,
// not an error.
func (r *Reranker) SelectBest(candidates []rag.Candidate) (best rag.Candidate, ok bool) {
	valid := make([]rag.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Valid() {
			valid = append(valid, c)
		}
	}

	if len(valid) == 0 {
		return rag.Candidate{}, false
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Score > valid[j].Score
	})

	return valid[0], true
}
