// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Codenames backend.
// Responsibilities:
//   - Router + middleware (access log, JSON, CORS, timeouts, panic recovery,
//     request IDs, tracing).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: mounted under /games (routes_games.go).
//   - Daily Challenge endpoints: mounted under /daily (routes_daily.go).
//
// Notes:
//   - Actions on one game run under a per-id lock from store.Locks, so the
//     get → action → update sequence never interleaves.
//   - Redaction of hidden card data happens in views.go.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/robalobadob/codenames/apps/go-server/internal/config"
	"github.com/robalobadob/codenames/apps/go-server/internal/daily"
	"github.com/robalobadob/codenames/apps/go-server/internal/game"
	"github.com/robalobadob/codenames/apps/go-server/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Service *game.Service
	Store   store.Store
	Daily   *daily.Store // nil disables /daily
	Words   interface{ Len() int }
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Server bundles router, game service, stores and per-game locks.
type Server struct {
	r       *chi.Mux
	handler http.Handler
	cfg     config.Config
	svc     *game.Service
	store   store.Store
	daily   *daily.Store
	words   interface{ Len() int }
	locks   *store.Locks
	now     func() time.Time
	srv     *http.Server
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, d Deps) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		svc:   d.Service,
		store: d.Store,
		daily: d.Daily,
		words: d.Words,
		locks: store.NewLocks(),
		now:   d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(d.Logger))         // request-scoped logger
	s.r.Use(accessLog)                         // one line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"codenames-go","endpoints":["/health","POST /games","GET /games/{id}","POST /daily/new"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if s.words != nil {
			n = s.words.Len()
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"words": n})
	})

	s.mountGames(s.r)
	if s.daily != nil {
		s.mountDaily(s.r)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	s.handler = otelhttp.NewHandler(s.r, "codenames",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
	s.srv = &http.Server{Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	return s
}

// Start begins serving HTTP on addr. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start(addr string) error {
	s.srv.Addr = addr
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

// Handler exposes the fully wrapped handler (useful for tests).
func (s *Server) Handler() http.Handler { return s.handler }

// Router exposes the internal router.
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// accessLog writes one zerolog line per request with status, size and latency.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
})

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin (CLIENT_ORIGIN).
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
