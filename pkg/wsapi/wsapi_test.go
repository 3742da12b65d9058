package wsapi

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/ingest"
	"github.com/mnohosten/searchidx/pkg/normalizer"
	"github.com/mnohosten/searchidx/pkg/tokenizer"
)

func newTestEngine() *engine.Engine[ingest.WebPage] {
	pipeline := normalizer.New()
	pipeline.Insert(normalizer.NewLowercase())
	pipeline.Insert(normalizer.NewPunctuation())

	eng := engine.New[ingest.WebPage](engine.Config{Capacity: 16}, tokenizer.NewStandard(), pipeline)
	eng.Insert(ingest.WebPage{Title: "Cats", Excerpt: "cats sat on the mat"}, "cats sat on the mat")
	eng.Insert(ingest.WebPage{Title: "Dogs", Excerpt: "dogs barked loudly"}, "dogs barked loudly")
	return eng
}

func dialTestServer(t *testing.T, handler *Handler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing test websocket server: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestSearchAsYouType(t *testing.T) {
	handler := NewHandler(newTestEngine(), nil)
	conn := dialTestServer(t, handler)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	if err := conn.WriteJSON(searchRequest{Query: "cats"}); err != nil {
		t.Fatalf("writing search request: %v", err)
	}

	var resp searchResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading search response: %v", err)
	}

	if resp.Type != "results" {
		t.Fatalf("expected type results, got %q", resp.Type)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Cats" {
		t.Fatalf("expected one match titled Cats, got %+v", resp.Results)
	}
}

func TestSearchAsYouTypeSuccessiveQueries(t *testing.T) {
	handler := NewHandler(newTestEngine(), nil)
	conn := dialTestServer(t, handler)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	queries := []string{"c", "ca", "cat", "cats"}
	for _, q := range queries {
		if err := conn.WriteJSON(searchRequest{Query: q}); err != nil {
			t.Fatalf("writing query %q: %v", q, err)
		}
		var resp searchResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("reading response for query %q: %v", q, err)
		}
		if resp.Query != q {
			t.Errorf("expected echoed query %q, got %q", q, resp.Query)
		}
	}
}

func TestSearchBM25Scorer(t *testing.T) {
	handler := NewHandler(newTestEngine(), nil)
	conn := dialTestServer(t, handler)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	if err := conn.WriteJSON(searchRequest{Query: "dogs", Scorer: "bm25"}); err != nil {
		t.Fatalf("writing search request: %v", err)
	}

	var resp searchResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading search response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Title != "Dogs" {
		t.Fatalf("expected one match titled Dogs, got %+v", resp.Results)
	}
}

func TestSearchUnknownTermReturnsNoResults(t *testing.T) {
	handler := NewHandler(newTestEngine(), nil)
	conn := dialTestServer(t, handler)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	if err := conn.WriteJSON(searchRequest{Query: "xyzzy"}); err != nil {
		t.Fatalf("writing search request: %v", err)
	}

	var resp searchResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading search response: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no matches for unknown term, got %+v", resp.Results)
	}
}
