package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"finboard/internal/core"
	"finboard/internal/ingest"
	"finboard/internal/services"
	"finboard/internal/session"
	appweb "finboard/web"
)

const sessionCookieName = "finboard_session"

// Ledger source labels shown in the dashboard header.
const (
	SourceSample = "sample"
	SourceUpload = "upload"
	SourceManual = "manual"
)

// Options carries the tunable server settings.
type Options struct {
	MaxUploadBytes int64
	SamplePath     string
}

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.LedgerService
	sessions  *session.Manager
	opts      Options

	rateLimiter *rateLimiter

	// Cached per-session filtered views, invalidated on every ledger write.
	viewCache *lruCache[dashboardView]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// dashboardView bundles everything the partials need for one filter of one
// session's ledger, so the filter and aggregation passes run once per key.
type dashboardView struct {
	Records    []core.Transaction
	Summary    core.Summary
	ByCategory []core.CategoryAmount
	ByMonth    []core.MonthAmount
	Top        []core.Transaction
}

const topCount = 5

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, svc *services.LedgerService, sessions *session.Manager, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 8 << 20
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:              svc,
		sessions:         sessions,
		opts:             opts,
		rateLimiter:      newRateLimiter(60, time.Minute),
		viewCache:        newLRUCache[dashboardView](256, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("/upload", s.withSecurityHeaders(s.handleUpload))
	mux.HandleFunc("/source/sample", s.withSecurityHeaders(s.handleUseSample))
	mux.HandleFunc("/export", s.withSecurityHeaders(s.handleExport))
	// UI partials
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummary))
	mux.HandleFunc("/ui/breakdown", s.withSecurityHeaders(s.handleBreakdown))
	mux.HandleFunc("/ui/trend", s.withSecurityHeaders(s.handleTrend))
	mux.HandleFunc("/ui/top", s.withSecurityHeaders(s.handleTop))
	mux.HandleFunc("/ui/transactions", s.withSecurityHeaders(s.handleTransactionsTable))

	return s
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Apply rate limiting to write endpoints.
		if r.Method == http.MethodPost && !s.rateLimiter.Allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// resolveSession returns the session for the request cookie, creating and
// seeding a fresh sample-backed session when the cookie is missing or the
// session has been evicted.
func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		if sess, ok := s.sessions.Lookup(c.Value); ok {
			return sess, nil
		}
	}

	sess := s.sessions.Create(SourceSample)
	records := ingest.Sample(s.opts.SamplePath)
	if err := s.svc.Seed(r.Context(), sess.ID, records); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.InfoContext(r.Context(), "Session created",
		"session_id", sess.ID, "source", sess.Source, "record_count", len(records))
	return sess, nil
}

// filteredView loads the session ledger, applies the query filter, and
// returns the aggregated view, serving repeats from the cache.
func (s *Server) filteredView(ctx context.Context, sessionID string, query url.Values) (dashboardView, core.Filter, error) {
	records, err := s.svc.List(ctx, sessionID)
	if err != nil {
		return dashboardView{}, core.Filter{}, err
	}

	f := FilterFromQuery(query, records)
	key := sessionID + "|" + filterKey(f)

	if view, found := s.viewCache.Get(key); found {
		slog.DebugContext(ctx, "View cache hit", "session_id", sessionID)
		return view, f, nil
	}

	subset := f.Apply(records)
	view := dashboardView{
		Records:    subset,
		Summary:    core.Summarize(subset),
		ByCategory: core.ByCategory(subset),
		ByMonth:    core.ByMonth(subset),
		Top:        core.TopN(subset, topCount),
	}

	s.viewCache.Set(key, view)
	return view, f, nil
}

// invalidateSession drops every cached view for the session after a write.
func (s *Server) invalidateSession(sessionID string) {
	s.viewCache.DeletePrefix(sessionID + "|")
}

// startCacheCleanup runs periodic cleanup for the view cache.
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.viewCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
