// Package http is the JSON host for the ledger: entry sessions, the
// transaction list with totals, and deletion.
package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"bukukas/internal/cache"
	"bukukas/internal/entry"
	applog "bukukas/internal/log"
	"bukukas/internal/middleware/ratelimit"
	"bukukas/internal/middleware/security"
	"bukukas/internal/middleware/trace"
	"bukukas/internal/services"
)

// Options tune the server. Zero values fall back to defaults.
type Options struct {
	SessionTTL         time.Duration
	SessionMax         int
	RateLimitPerMinute int

	// Now is the clock new entry flows start from.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.SessionTTL <= 0 {
		o.SessionTTL = 30 * time.Minute
	}
	if o.SessionMax <= 0 {
		o.SessionMax = 256
	}
	if o.RateLimitPerMinute <= 0 {
		o.RateLimitPerMinute = ratelimit.DefaultConfig().RequestsPerMinute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Server struct {
	http.Server
	service *services.LedgerService
	logger  *applog.Logger
	now     func() time.Time

	// Open entry flows keyed by session id
	sessions     *cache.LRUCache[*entry.Form]
	cacheManager *cache.Manager

	rateLimiter *ratelimit.Limiter
	tracer      *trace.Middleware
	detector    *security.Detector
	metrics     appMetrics

	shutdownOnce sync.Once
}

// appMetrics counts entry flow outcomes for /metrics.
type appMetrics struct {
	startedAt        time.Time
	entriesOpened    atomic.Int64
	entriesSubmitted atomic.Int64
	entriesRejected  atomic.Int64
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, logger *applog.Logger, opts Options) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	opts = opts.withDefaults()

	detector := security.NewDetector()

	s := &Server{
		service:      svc,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		now:          opts.Now,
		sessions:     cache.NewLRUCache[*entry.Form](opts.SessionMax, opts.SessionTTL),
		cacheManager: cache.NewManager(logger.WithComponent(applog.ComponentEntry)),
		rateLimiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		tracer:       trace.NewMiddleware(logger, detector.ExtractClientIP),
		detector:     detector,
	}
	s.metrics.startedAt = time.Now()

	s.cacheManager.Register(s.sessions)
	s.cacheManager.StartCleanup(time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /transactions", s.handleListTransactions)
	mux.HandleFunc("GET /totals", s.handleTotals)
	mux.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /entries", s.handleOpenEntry)
	mux.HandleFunc("GET /entries/{id}", s.handleGetEntry)
	mux.HandleFunc("PATCH /entries/{id}", s.handleEditEntry)
	mux.HandleFunc("DELETE /entries/{id}", s.handleDiscardEntry)
	mux.HandleFunc("POST /entries/{id}/submit", s.handleSubmitEntry)

	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(detector.ExtractClientIP, s.handleRateLimited)(handler)
	handler = detector.Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Totals(r.Context()); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", applog.FieldError, err)
		writeError(w, r, http.StatusServiceUnavailable, "ledger unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, try again later")
}
