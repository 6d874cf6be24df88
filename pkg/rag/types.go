// Package rag holds the types shared by the pipeline stages: retrieval
// candidates, guardrail verdicts and the stage error taxonomy.
package rag

// Candidate is one scored chunk coming back from the index. Candidates are
// per-request and never persisted.
type Candidate struct {
	DocSource string
	Page      int
	Score     float64
	Content   string
}

// Valid reports whether the candidate carries every field the reranker
// needs. Page may legitimately be zero for unpaged sources.
func (c Candidate) Valid() bool {
	return c.DocSource != "" && c.Content != ""
}

type VerdictStatus string

const (
	VerdictAllowed VerdictStatus = "ALLOWED"
	VerdictBlocked VerdictStatus = "BLOCKED"
)

// Verdict is the guardrail outcome. It only steers what the synthesizer is
// asked to produce and is never written to the conversation log.
type Verdict struct {
	Status   VerdictStatus
	Category string
}

func (v Verdict) Blocked() bool {
	return v.Status == VerdictBlocked
}
