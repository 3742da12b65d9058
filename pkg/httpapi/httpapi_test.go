package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mnohosten/searchidx/pkg/config"
	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/ingest"
	"github.com/mnohosten/searchidx/pkg/normalizer"
	"github.com/mnohosten/searchidx/pkg/tokenizer"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Port = 0
	cfg.CacheCapacity = 100

	pipeline := normalizer.New()
	pipeline.Insert(normalizer.NewLowercase())
	pipeline.Insert(normalizer.NewPunctuation())
	pipeline.Insert(normalizer.NewStopwords([]string{"the", "a"}))

	eng := engine.New[ingest.WebPage](engine.Config{Capacity: 16}, tokenizer.NewStandard(), pipeline)

	return New(cfg, eng, nil)
}

func TestHandleInsertAndSearch(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(insertRequest{
		Resource: ingest.WebPage{URL: "http://example.com/ai", Title: "AI", Excerpt: "Artificial intelligence research"},
	})
	req := httptest.NewRequest(http.MethodPost, "/resources", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from insert, got %d: %s", rec.Code, rec.Body.String())
	}

	searchReq := httptest.NewRequest(http.MethodGet, "/search?q=intelligence", nil)
	searchRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(searchRec, searchReq)

	if searchRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from search, got %d: %s", searchRec.Code, searchRec.Body.String())
	}

	var resp struct {
		OK     bool             `json:"ok"`
		Result []ingest.WebPage `json:"result"`
		Count  int              `json:"count"`
	}
	if err := json.Unmarshal(searchRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 search result, got %d", resp.Count)
	}
	if resp.Result[0].Title != "AI" {
		t.Errorf("expected matched page title AI, got %q", resp.Result[0].Title)
	}
}

func TestHandleInsertEmptyDocumentRejected(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(insertRequest{
		Resource: ingest.WebPage{Excerpt: "the a"}, // normalizes to zero tokens
	})
	req := httptest.NewRequest(http.MethodPost, "/resources", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty document, got %d", rec.Code)
	}
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/search?q=", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected empty ranked result for empty query, got %d", resp.Count)
	}
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleGetResource(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(insertRequest{
		Resource: ingest.WebPage{URL: "http://example.com/ai", Title: "AI", Excerpt: "Artificial intelligence research"},
	})
	req := httptest.NewRequest(http.MethodPost, "/resources", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from insert, got %d", rec.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/resources/0", nil)
	getRec := httptest.NewRecorder()
	srv.Router().ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a known id, got %d: %s", getRec.Code, getRec.Body.String())
	}

	var resp struct {
		Result ingest.WebPage `json:"result"`
	}
	if err := json.Unmarshal(getRec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Result.Title != "AI" {
		t.Errorf("expected to get back the inserted page, got %+v", resp.Result)
	}
}

func TestHandleGetResourceUnknownID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/resources/42", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown id, got %d", rec.Code)
	}
}

func TestHandleDebugProfileDisabledByDefault(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/debug/profile", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Result struct {
			Available bool `json:"available"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Result.Available {
		t.Error("expected no profile available when EnableProfiling is false")
	}
}

func TestHandleDebugSlowOperations(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/debug/slow-operations", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty metrics body")
	}
}

func TestSearchLimit(t *testing.T) {
	srv := newTestServer(t)

	for _, excerpt := range []string{"cats are great", "cats and dogs", "cats everywhere"} {
		body, _ := json.Marshal(insertRequest{Resource: ingest.WebPage{Excerpt: excerpt}})
		req := httptest.NewRequest(http.MethodPost, "/resources", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
	}

	req := httptest.NewRequest(http.MethodGet, "/search?q=cats&limit=2", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var resp struct {
		Result []ingest.WebPage `json:"result"`
		Count  int              `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("expected total count to reflect all matches (3), got %d", resp.Count)
	}
	if len(resp.Result) != 2 {
		t.Errorf("expected limit=2 to truncate returned results, got %d", len(resp.Result))
	}
}
