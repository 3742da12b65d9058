package tokenizer

import "testing"

func TestWhitespaceTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "This is a test", []string{"This", "is", "a", "test"}},
		{"empty", "", nil},
		{"multiple spaces", "This  is    a test", []string{"This", "is", "a", "test"}},
		{"leading and trailing", "   This is a test   ", []string{"This", "is", "a", "test"}},
		{"only whitespace", "   \t\n  ", nil},
	}

	w := NewWhitespace()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := w.Tokenize(tt.input)
			assertTokens(t, seq.Strings(), tt.expected)
		})
	}
}

func TestStandardTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"basic", "The quick brown fox jumps over the lazy dog",
			[]string{"The", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}},
		{"punctuation", "Hello, world! This is a test.",
			[]string{"Hello", "world", "This", "is", "a", "test"}},
		{"empty", "", nil},
		{"tabs and newlines", "The quick\nbrown\tfox", []string{"The", "quick", "brown", "fox"}},
		{"unicode", "एकाधिक - ಭಾಷೆಗಳು - work", []string{"एकाधिक", "ಭಾಷೆಗಳು", "work"}},
	}

	s := NewStandard()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := s.Tokenize(tt.input)
			assertTokens(t, seq.Strings(), tt.expected)
		})
	}
}

func assertTokens(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("got %v, want %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("got %v, want %v", got, expected)
		}
	}
}
