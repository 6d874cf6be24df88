package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 100, 20)

	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Fatalf("chunks = %v", chunks)
	}
}

func TestSplitTextChunkAndOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 40 {
			t.Errorf("chunk %d has length %d, want <= 40", i, len(c))
		}
	}

	// Consecutive chunks share the overlap region.
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-10:]) {
		t.Errorf("second chunk does not start with the overlap of the first")
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("policy clause. ", 50)
	chunks := SplitText(text, 100, 25)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk is not the tail of the input")
	}
}

func TestSplitTextOverlapLargerThanChunkFallsBack(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 15)

	if len(chunks) != 5 {
		t.Fatalf("expected 5 non-overlapping chunks, got %d", len(chunks))
	}
}

func TestSplitTextMultibyteRunes(t *testing.T) {
	text := strings.Repeat("政策文件内容", 20) // 120 runes
	chunks := SplitText(text, 50, 10)

	for i, c := range chunks {
		if strings.ContainsRune(c, '�') {
			t.Errorf("chunk %d contains a broken rune", i)
		}
	}
}
