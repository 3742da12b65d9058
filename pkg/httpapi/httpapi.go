// Package httpapi is the chi-routed HTTP surface over a pkg/engine.Engine,
// adapted from the teacher's pkg/server.Server. The collection/document/
// bulk/index/cursor routes that surface do not apply here - this engine has
// exactly two operations (Insert, Search) - so setupRoutes trims down to
// POST /resources, GET /resources/{id}, GET /search, GET /stats,
// GET /metrics, GET /debug/profile, and GET /debug/slow-operations, but the
// middleware stack, graceful Start/Shutdown, and WriteJSON/WriteError/
// WriteSuccess helpers are kept nearly verbatim.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"

	"github.com/mnohosten/searchidx/pkg/cache"
	"github.com/mnohosten/searchidx/pkg/config"
	"github.com/mnohosten/searchidx/pkg/engine"
	"github.com/mnohosten/searchidx/pkg/gqlapi"
	"github.com/mnohosten/searchidx/pkg/ingest"
	"github.com/mnohosten/searchidx/pkg/metrics"
	"github.com/mnohosten/searchidx/pkg/store"
	"github.com/mnohosten/searchidx/pkg/wsapi"
)

// Server is the HTTP surface over one Engine[ingest.WebPage] instance.
type Server struct {
	config *config.Config
	engine *engine.Engine[ingest.WebPage]
	logger *log.Logger

	router    *chi.Mux
	httpSrv   *http.Server
	startTime time.Time

	collector       *metrics.Collector
	resourceTracker *metrics.ResourceTracker
	promExporter    *metrics.PrometheusExporter
	resultCache     *cache.LRUCache
	slowLog         *metrics.SlowQueryLog
}

// New builds a Server wired to eng and cfg. logger defaults to log.Default()
// when nil, per SPEC_FULL.md's ambient-stack requirement that pkg/httpapi
// log lifecycle events through the standard log package rather than the
// teacher's raw fmt.Printf-with-emoji style.
func New(cfg *config.Config, eng *engine.Engine[ingest.WebPage], logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	collector := metrics.NewCollector()
	resourceTracker := metrics.NewResourceTracker(nil)
	promExporter := metrics.NewPrometheusExporter(collector, resourceTracker)

	slowLog, err := metrics.NewSlowQueryLog(&metrics.SlowQueryLogConfig{
		Threshold:  cfg.SlowOperationLimit,
		MaxEntries: 1000,
		Enabled:    cfg.SlowOperationLimit > 0,
	})
	if err != nil {
		logger.Printf("warning: slow operation log disabled: %v", err)
		slowLog, _ = metrics.NewSlowQueryLog(&metrics.SlowQueryLogConfig{Enabled: false})
	}

	if cfg.EnableProfiling {
		eng.EnableProfiling()
	}

	s := &Server{
		config:          cfg,
		engine:          eng,
		logger:          logger,
		router:          chi.NewRouter(),
		startTime:       time.Now(),
		collector:       collector,
		resourceTracker: resourceTracker,
		promExporter:    promExporter,
		resultCache:     cache.NewLRUCache(cfg.CacheCapacity, cfg.CacheTTL),
		slowLog:         slowLog,
	}

	s.setupMiddleware()
	s.setupRoutes()

	if cfg.EnableWebSocket {
		s.MountWebSocket()
	}
	if cfg.EnableGraphQL {
		if err := s.MountGraphQL(); err != nil {
			s.logger.Printf("warning: %v", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	if s.config.EnableLogging {
		s.router.Use(middleware.Logger)
	}
	if s.config.EnableCORS {
		s.router.Use(s.corsMiddleware)
	}

	s.router.Use(s.requestSizeLimitMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(gzhttp.GzipHandler)
}

func (s *Server) setupRoutes() {
	s.router.Post("/resources", s.handleInsert)
	s.router.Get("/resources/{id}", s.handleGetResource)
	s.router.Get("/search", s.handleSearch)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/metrics", s.handleMetrics)
	s.router.Get("/debug/profile", s.handleDebugProfile)
	s.router.Get("/debug/slow-operations", s.handleDebugSlowOperations)
}

// insertRequest is the JSON body POST /resources expects: the resource
// (spec.md §8 Scenario F's webpage record) plus an optional explicit text
// field. When Text is empty, Resource.Excerpt is indexed, matching "host
// supplies the excerpt as the text, the whole record as the resource".
type insertRequest struct {
	Resource ingest.WebPage `json:"resource"`
	Text     string         `json:"text,omitempty"`
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("reading request body: %v", err))
		return
	}
	s.resourceTracker.RecordRead(uint64(len(body)))

	var req insertRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("invalid request body: %v", err))
		return
	}

	text := req.Text
	if text == "" {
		text = req.Resource.Excerpt
	}

	start := time.Now()
	err = s.engine.InsertChecked(req.Resource, text)
	duration := time.Since(start)
	s.collector.RecordInsert(duration, err == nil)

	entry := metrics.SlowQueryEntry{Duration: duration, Operation: "insert"}
	if err != nil {
		entry.Error = err.Error()
	}
	s.slowLog.LogQuery(entry)

	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "empty_document", err.Error())
		return
	}

	s.resultCache.Clear()
	WriteSuccess(w, map[string]interface{}{"inserted": true})
}

// handleGetResource looks up a previously inserted resource by its
// engine-assigned DocID, exercising engine.ErrUnknownDocID for IDs the
// engine never assigned.
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_id", "id must be a non-negative integer")
		return
	}

	res, err := s.engine.GetResource(store.DocID(n))
	if err != nil {
		WriteError(w, http.StatusNotFound, "unknown_id", err.Error())
		return
	}
	WriteSuccess(w, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	scorer := r.URL.Query().Get("scorer")
	if scorer == "" {
		scorer = s.config.DefaultScorer
	}

	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	cacheKey := cache.GenerateKey(query, scorer)
	if cached, ok := s.resultCache.Get(cacheKey); ok {
		s.collector.RecordCacheHit()
		WriteSuccessWithCount(w, applyLimit(cached.([]ingest.WebPage), limit), len(cached.([]ingest.WebPage)))
		return
	}
	s.collector.RecordCacheMiss()

	start := time.Now()
	var results []ingest.WebPage
	if scorer == "bm25" {
		results = s.engine.SearchBM25(query)
	} else {
		results = s.engine.Search(query)
	}
	duration := time.Since(start)
	s.collector.RecordSearch(duration, true)

	s.slowLog.LogQuery(metrics.SlowQueryEntry{
		Duration:     duration,
		Operation:    "search",
		Query:        query,
		Scorer:       scorer,
		DocsReturned: len(results),
	})

	s.resultCache.Put(cacheKey, results)
	limited := applyLimit(results, limit)
	if encoded, err := json.Marshal(limited); err == nil {
		s.resourceTracker.RecordWrite(uint64(len(encoded)))
	}
	WriteSuccessWithCount(w, limited, len(results))
}

// handleDebugProfile returns the most recent profiled Insert/Search call's
// per-stage timing breakdown. Empty if profiling is disabled (see
// config.Config.EnableProfiling) or no call has run yet.
func (s *Server) handleDebugProfile(w http.ResponseWriter, r *http.Request) {
	profile := s.engine.LastProfile()
	if profile == nil {
		WriteSuccess(w, map[string]interface{}{"available": false})
		return
	}
	WriteSuccess(w, profile)
}

// handleDebugSlowOperations returns the Insert/Search calls that exceeded
// config.Config.SlowOperationLimit.
func (s *Server) handleDebugSlowOperations(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, s.slowLog.GetEntries())
}

func applyLimit(results []ingest.WebPage, limit int) []ingest.WebPage {
	if limit < 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]interface{}{
		"total_documents": s.engine.TotalDocuments(),
		"avg_doc_length":  s.engine.AvgDocLength(),
		"cache":           s.resultCache.Stats(),
		"uptime_seconds":  time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	if err := s.promExporter.WriteMetrics(w); err != nil {
		http.Error(w, fmt.Sprintf("error writing metrics: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(s.config.AllowedOrigins) > 0 {
			origin = s.config.AllowedOrigins[0]
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestSizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
		next.ServeHTTP(w, r)
	})
}

// MountWebSocket mounts the search-as-you-type WebSocket endpoint at
// /ws/search, sharing this server's engine and logger.
func (s *Server) MountWebSocket() {
	handler := wsapi.NewHandler(s.engine, s.logger)
	s.router.Get("/ws/search", handler.ServeHTTP)
	s.logger.Printf("websocket search-as-you-type enabled at /ws/search")
}

// MountGraphQL mounts the GraphQL endpoint at /graphql, sharing this
// server's engine. Returns an error if schema construction fails.
func (s *Server) MountGraphQL() error {
	handler, err := gqlapi.NewHandler(s.engine)
	if err != nil {
		return fmt.Errorf("httpapi: mounting graphql: %w", err)
	}
	s.router.Post("/graphql", handler.ServeHTTP)
	s.logger.Printf("graphql enabled at /graphql")
	return nil
}

// Router exposes the underlying chi.Mux so pkg/wsapi and pkg/gqlapi can
// mount additional routes on the same server.
func (s *Server) Router() chi.Router { return s.router }

// Engine returns the wrapped engine, for collaborators that need direct
// access (pkg/wsapi, pkg/gqlapi, cmd/searchidx-server).
func (s *Server) Engine() *engine.Engine[ingest.WebPage] { return s.engine }

// Collector returns the metrics collector shared with any mounted
// collaborator that should record against the same counters.
func (s *Server) Collector() *metrics.Collector { return s.collector }

// Start starts the HTTP server and blocks until a shutdown signal arrives
// or the listener fails.
func (s *Server) Start() error {
	s.logger.Printf("searchidx server starting on http://%s:%d", s.config.Host, s.config.Port)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Printf("received signal: %v, shutting down", sig)
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the HTTP server and the background resource
// tracker.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpSrv.Shutdown(ctx)
	s.resourceTracker.Disable()
	if closeErr := s.slowLog.Close(); closeErr != nil {
		s.logger.Printf("slow operation log close error: %v", closeErr)
	}

	if err != nil {
		s.logger.Printf("server shutdown error: %v", err)
		return err
	}
	s.logger.Printf("server shutdown complete")
	return nil
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"ok":      false,
		"error":   errorType,
		"message": message,
		"code":    statusCode,
	})
}

// WriteSuccess writes a structured success response.
func WriteSuccess(w http.ResponseWriter, result interface{}) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"result": result,
	})
}

// WriteSuccessWithCount writes a structured success response that also
// reports a result count (used by GET /search).
func WriteSuccessWithCount(w http.ResponseWriter, result interface{}, count int) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"result": result,
		"count":  count,
	})
}
