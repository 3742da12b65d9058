package config

import (
	"fmt"

	"github.com/mnohosten/searchidx/pkg/normalizer"
	"github.com/mnohosten/searchidx/pkg/tokenizer"
)

// BuildTokenizer returns the tokenizer named by cfg.Tokenizer ("whitespace"
// or "standard", defaulting to Standard for any other value, matching
// spec.md §4.1's two provided variants).
func (c *Config) BuildTokenizer() tokenizer.Tokenizer {
	if c.Tokenizer == "whitespace" {
		return tokenizer.NewWhitespace()
	}
	return tokenizer.NewStandard()
}

// BuildPipeline assembles the normalizer pipeline a demo host runs before
// every insert/search: Lowercase, Punctuation, Stopwords (loaded from
// cfg.StopwordsFile if set, else the built-in English list), and Replacer
// (only when cfg.ReplacementsFile is set). Order matches spec.md §8's
// Scenario A pipeline shape.
func (c *Config) BuildPipeline() (*normalizer.Pipeline, error) {
	p := normalizer.New()
	p.Insert(normalizer.NewLowercase())
	p.Insert(normalizer.NewPunctuation())

	stopwords, err := c.buildStopwords()
	if err != nil {
		return nil, fmt.Errorf("config: building stopwords: %w", err)
	}
	p.Insert(stopwords)

	if c.ReplacementsFile != "" {
		replacer, err := LoadReplacementsFile(c.ReplacementsFile)
		if err != nil {
			return nil, fmt.Errorf("config: loading replacements file %q: %w", c.ReplacementsFile, err)
		}
		p.Insert(replacer)
	}

	return p, nil
}

func (c *Config) buildStopwords() (*normalizer.Stopwords, error) {
	if c.StopwordsFile == "" {
		return normalizer.DefaultEnglishStopwords(), nil
	}
	return LoadStopwordsFile(c.StopwordsFile)
}
