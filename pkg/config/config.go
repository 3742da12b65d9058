// Package config holds the host-side configuration surface: the tunables a
// `cmd/searchidx-server`-style entrypoint parses from flags and hands to
// pkg/engine, pkg/httpapi, pkg/wsapi, and pkg/gqlapi. None of this is
// consulted by the core engine/index packages themselves — spec.md §6
// places configuration loading, like file ingestion, at the host boundary.
// Modeled on the teacher's pkg/server.Config / DefaultConfig().
package config

import "time"

// Config bundles every tunable the demo host needs at startup.
type Config struct {
	Host string // Server host address
	Port int    // Server port

	ReadTimeout    time.Duration // HTTP read timeout
	WriteTimeout   time.Duration // HTTP write timeout
	IdleTimeout    time.Duration // HTTP idle timeout
	MaxRequestSize int64         // Maximum request body size in bytes

	EnableCORS     bool     // Enable CORS middleware
	AllowedOrigins []string // CORS allowed origins

	EnableLogging bool   // Enable request logging
	LogFormat     string // Log format (text or json) - informational only, see pkg/httpapi doc comment

	// Engine construction.
	Capacity  int     // Initial capacity hint passed to engine.Config
	Threshold float64 // Advisory score-cutoff threshold, carried but unused by the core (spec.md §9.2)

	Tokenizer string // "whitespace" or "standard" (spec.md §4.1)

	StopwordsFile    string // optional path to a newline-delimited stop-word list (.txt or .txt.gz)
	ReplacementsFile string // optional path to a newline-delimited "key=value" replacement list (.txt or .txt.gz)

	DefaultScorer string // "tfidf" or "bm25" - which Engine method pkg/httpapi's GET /search uses absent a ?scorer= override

	CacheCapacity int           // Max entries in the search-result LRU cache
	CacheTTL      time.Duration // TTL for cached search results

	EnableGraphQL   bool // Enable the GraphQL endpoint (/graphql); no playground is served
	EnableWebSocket bool // Enable the search-as-you-type WebSocket endpoint (/ws/search)

	EnableProfiling    bool          // Record a per-stage ProfileResult for the most recent Insert/Search, exposed at GET /debug/profile
	SlowOperationLimit time.Duration // Insert/Search calls at or above this duration are appended to the slow-operation log; zero disables logging
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host: "localhost",
		Port: 8080,

		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxRequestSize: 10 * 1024 * 1024, // 10MB

		EnableCORS:     true,
		AllowedOrigins: []string{"*"},

		EnableLogging: true,
		LogFormat:     "text",

		Capacity:  1024,
		Threshold: 0,

		Tokenizer: "standard",

		StopwordsFile:    "",
		ReplacementsFile: "",

		DefaultScorer: "tfidf",

		CacheCapacity: 1000,
		CacheTTL:      5 * time.Minute,

		EnableGraphQL:   false,
		EnableWebSocket: true,

		EnableProfiling:    false,
		SlowOperationLimit: 100 * time.Millisecond,
	}
}
