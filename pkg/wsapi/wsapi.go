// Package wsapi implements the search-as-you-type WebSocket surface,
// adapted from the teacher's pkg/server/handlers/websocket.go: the same
// upgrader/connection/heartbeat/read-write-loop shape, repurposed from
// streaming oplog change events to streaming ranked search results for
// successive partial queries a client sends as the user types.
package wsapi

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/ingest"
)

// upgrader upgrades an HTTP connection to a WebSocket. Origin checking is
// left permissive, matching the teacher's own CheckOrigin (restricting it
// is a deployment concern, not a protocol one).
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades and serves the search-as-you-type WebSocket endpoint
// over a single Engine.
type Handler struct {
	engine *engine.Engine[ingest.WebPage]
	logger *log.Logger
}

// NewHandler builds a Handler over eng. logger defaults to log.Default()
// when nil.
func NewHandler(eng *engine.Engine[ingest.WebPage], logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{engine: eng, logger: logger}
}

// searchRequest is one query sent by the client over the socket.
type searchRequest struct {
	Query  string `json:"query"`
	Scorer string `json:"scorer,omitempty"` // "tfidf" (default) or "bm25"
}

// searchResponse is pushed back for every searchRequest received, or for a
// protocol error / periodic heartbeat.
type searchResponse struct {
	Type    string           `json:"type"` // "results", "error", or "heartbeat"
	Query   string           `json:"query,omitempty"`
	Results []ingest.WebPage `json:"results,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ServeHTTP upgrades the request and runs the connection's read/write
// loops until the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("wsapi: failed to upgrade connection: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-heartbeat.C:
				if err := writeJSON(searchResponse{Type: "heartbeat"}); err != nil {
					h.logger.Printf("wsapi: heartbeat write failed: %v", err)
					cancel()
					return
				}
			}
		}
	}()

	for {
		var req searchRequest
		if err := conn.ReadJSON(&req); err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				_ = sendError(conn, "invalid request: expected {\"query\": \"...\"}")
			}
			return
		}

		results := h.search(req)
		resp := searchResponse{Type: "results", Query: req.Query, Results: results}
		if err := writeJSON(resp); err != nil {
			h.logger.Printf("wsapi: failed to send results: %v", err)
			return
		}
	}
}

func (h *Handler) search(req searchRequest) []ingest.WebPage {
	if req.Scorer == "bm25" {
		return h.engine.SearchBM25(req.Query)
	}
	return h.engine.Search(req.Query)
}

// sendError pushes a protocol-level error response.
func sendError(conn *websocket.Conn, message string) error {
	return conn.WriteJSON(searchResponse{Type: "error", Error: message})
}
