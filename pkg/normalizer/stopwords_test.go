package normalizer

import (
	"strings"
	"testing"

	"github.com/mnohosten/searchidx/pkg/token"
)

func TestLoadStopwordsSkipsBlankLines(t *testing.T) {
	r := strings.NewReader("the\n\n  \nand\nTHE\n")
	sw, err := LoadStopwordsReader(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seq := token.NewSequence("the", "cat", "and", "dog")
	sw.Normalize(seq)

	if got := seq.Strings(); len(got) != 2 || got[0] != "cat" || got[1] != "dog" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestDefaultEnglishStopwordsFiltersCommonWords(t *testing.T) {
	sw := DefaultEnglishStopwords()
	seq := token.NewSequence("the", "quick", "brown", "fox", "is", "fast")
	sw.Normalize(seq)

	if got := seq.Strings(); len(got) != 4 {
		t.Fatalf("expected 4 survivors, got %v", got)
	}
}
