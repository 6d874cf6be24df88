package reranker

import (
	"testing"

	"github.com/cihanuluisik/Dge-Advisor/pkg/rag"
)

func TestSelectBest(t *testing.T) {
	tests := []struct {
		name       string
		candidates []rag.Candidate
		wantOk     bool
		wantSource string
	}{
		{
			name: "highest score wins",
			candidates: []rag.Candidate{
				{DocSource: "procurement.pdf", Page: 3, Score: 0.92, Content: "a"},
				{DocSource: "hr-policy.pdf", Page: 1, Score: 0.75, Content: "b"},
				{DocSource: "travel.pdf", Page: 7, Score: 0.40, Content: "c"},
			},
			wantOk:     true,
			wantSource: "procurement.pdf",
		},
		{
			name: "tie keeps first-seen candidate",
			candidates: []rag.Candidate{
				{DocSource: "first.pdf", Score: 0.80, Content: "a"},
				{DocSource: "second.pdf", Score: 0.80, Content: "b"},
			},
			wantOk:     true,
			wantSource: "first.pdf",
		},
		{
			name:       "empty input returns sentinel",
			candidates: nil,
			wantOk:     false,
		},
		{
			name: "all malformed returns sentinel",
			candidates: []rag.Candidate{
				{DocSource: "", Score: 0.9, Content: "no source"},
				{DocSource: "empty.pdf", Score: 0.8, Content: ""},
			},
			wantOk: false,
		},
		{
			name: "malformed candidates are discarded before sorting",
			candidates: []rag.Candidate{
				{DocSource: "", Score: 0.99, Content: "broken"},
				{DocSource: "ok.pdf", Score: 0.60, Content: "fine"},
			},
			wantOk:     true,
			wantSource: "ok.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			best, ok := r.SelectBest(tt.candidates)

			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if tt.wantOk && best.DocSource != tt.wantSource {
				t.Errorf("DocSource = %q, want %q", best.DocSource, tt.wantSource)
			}
		})
	}
}

func TestSelectBestDoesNotReorderInput(t *testing.T) {
	candidates := []rag.Candidate{
		{DocSource: "low.pdf", Score: 0.1, Content: "a"},
		{DocSource: "high.pdf", Score: 0.9, Content: "b"},
	}

	_, _ = New().SelectBest(candidates)

	if candidates[0].DocSource != "low.pdf" {
		t.Errorf("input slice was reordered: %v", candidates)
	}
}
