package token

import (
	"testing"
	"unicode"
)

func TestSequenceDropEmpty(t *testing.T) {
	seq := NewSequence("cat", "", "dog")
	seq.DropEmpty()

	if seq.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", seq.Len())
	}
	if seq.At(0).String() != "cat" || seq.At(1).String() != "dog" {
		t.Fatalf("unexpected tokens after DropEmpty: %v", seq.Strings())
	}
}

func TestTokenRetain(t *testing.T) {
	tok := New("hel!lo,")
	tok.Retain(func(r rune) bool { return !unicode.IsPunct(r) })

	if tok.String() != "hello" {
		t.Fatalf("expected %q, got %q", "hello", tok.String())
	}
}

func TestSequenceForEachMutatesInPlace(t *testing.T) {
	seq := NewSequence("cat", "dog")
	seq.ForEach(func(tok *Token) {
		tok.SetString(tok.String() + "s")
	})

	if got := seq.Strings(); got[0] != "cats" || got[1] != "dogs" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}

func TestRetainFuncPreservesOrder(t *testing.T) {
	seq := NewSequence("a", "the", "b", "an", "c")
	stop := map[string]bool{"the": true, "an": true}

	seq.RetainFunc(func(tok *Token) bool { return !stop[tok.String()] })

	if got := seq.Strings(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected tokens: %v", got)
	}
}
