// Command searchidx-server is the demo host: it flag-parses a
// config.Config, builds a tokenizer + normalizer pipeline from it,
// constructs an engine.Engine[ingest.WebPage], optionally bulk-ingests a
// directory of text files, and starts pkg/httpapi's HTTP server. Modeled on
// the teacher's cmd/server/main.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mnohosten/searchidx/pkg/config"
	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/httpapi"
	"github.com/mnohosten/searchidx/pkg/ingest"
)

func main() {
	host := flag.String("host", "localhost", "Server host address")
	port := flag.Int("port", 8080, "Server port")
	tokenizerKind := flag.String("tokenizer", "standard", "Tokenizer: \"whitespace\" or \"standard\"")
	stopwordsFile := flag.String("stopwords-file", "", "Optional path to a stop-word list (.txt or .txt.gz)")
	replacementsFile := flag.String("replacements-file", "", "Optional path to a replacement list (.txt or .txt.gz)")
	defaultScorer := flag.String("scorer", "tfidf", "Default scoring mode: \"tfidf\" or \"bm25\"")
	capacity := flag.Int("capacity", 1024, "Capacity value carried in the engine config (not read by the engine)")
	corsOrigin := flag.String("cors-origin", "*", "CORS allowed origin")
	enableGraphQL := flag.Bool("graphql", false, "Enable the GraphQL endpoint (/graphql)")
	enableWebSocket := flag.Bool("websocket", true, "Enable the search-as-you-type WebSocket endpoint (/ws/search)")
	ingestDir := flag.String("ingest-dir", "", "Optional directory of .txt files to index at startup")
	ingestFile := flag.String("ingest-file", "", "Optional single .json or .csv file of webpage records to index at startup")
	flag.Parse()

	cfg := config.DefaultConfig()
	cfg.Host = *host
	cfg.Port = *port
	cfg.Tokenizer = *tokenizerKind
	cfg.StopwordsFile = *stopwordsFile
	cfg.ReplacementsFile = *replacementsFile
	cfg.DefaultScorer = *defaultScorer
	cfg.Capacity = *capacity
	cfg.AllowedOrigins = []string{*corsOrigin}
	cfg.EnableGraphQL = *enableGraphQL
	cfg.EnableWebSocket = *enableWebSocket

	logger := log.New(os.Stdout, "searchidx: ", log.LstdFlags)

	pipeline, err := cfg.BuildPipeline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build normalizer pipeline: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New[ingest.WebPage](
		engine.Config{Capacity: cfg.Capacity, Threshold: cfg.Threshold},
		cfg.BuildTokenizer(),
		pipeline,
	)

	if *ingestDir != "" {
		pages, err := ingest.LoadDir(*ingestDir, ".txt")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to ingest directory %q: %v\n", *ingestDir, err)
			os.Exit(1)
		}
		for _, page := range pages {
			eng.Insert(page, page.Excerpt)
		}
		logger.Printf("ingested %d documents from %s", len(pages), *ingestDir)
	}

	if *ingestFile != "" {
		pages, err := loadIngestFile(*ingestFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to ingest file %q: %v\n", *ingestFile, err)
			os.Exit(1)
		}
		for _, page := range pages {
			eng.Insert(page, page.Excerpt)
		}
		logger.Printf("ingested %d documents from %s", len(pages), *ingestFile)
	}

	srv := httpapi.New(cfg, eng, logger)

	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// loadIngestFile reads a bulk corpus file, dispatching on extension to
// pkg/ingest's JSON or CSV importer.
func loadIngestFile(path string) ([]ingest.WebPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".json"):
		return ingest.NewJSONImporter().Import(f)
	case strings.HasSuffix(path, ".csv"):
		return ingest.NewCSVImporter().Import(f)
	default:
		return nil, fmt.Errorf("unsupported ingest file extension for %q (want .json or .csv)", path)
	}
}
