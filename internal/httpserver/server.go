// internal/httpserver/server.go
//
// HTTP server wiring for the Friendle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Word game endpoints: /game/* (routes_game.go).
//   - Daily puzzles, leaderboard and stats: /daily/*, /leaderboard, /stats/me (routes_daily.go).
//   - Connections endpoints: /connections/* (routes_connections.go).
//   - Friend challenges: /challenge, /challenge/accept (routes_challenge.go).
//
// Notes:
//   - Players are anonymous; a long-lived cookie carries a random player ID.
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Live sessions are held in memory; only finished daily results reach the DB.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/internal/challenge"
	"github.com/robalobadob/friendle/internal/config"
	"github.com/robalobadob/friendle/internal/connections"
	"github.com/robalobadob/friendle/internal/daily"
	"github.com/robalobadob/friendle/internal/keys"
	"github.com/robalobadob/friendle/internal/store"
	"github.com/robalobadob/friendle/internal/words"
)

// Server bundles router, in-memory session stores and the results DB.
type Server struct {
	r          *chi.Mux
	cfg        *config.Config
	games      store.Store[*wordleEntry]
	boards     store.Store[*connectionsEntry]
	results    *daily.Store
	catalog    *connections.Catalog
	challenges *challenge.Issuer
	dailyKey   []byte
	now        func() time.Time

	mu         sync.Mutex        // guards dailyGames
	dailyGames map[string]string // player|game|date → session ID
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, db *sql.DB, catalog *connections.Catalog) (*Server, error) {
	dailyKey, err := keys.Derive([]byte(cfg.Secret), keys.PurposeDaily)
	if err != nil {
		return nil, err
	}
	challengeKey, err := keys.Derive([]byte(cfg.Secret), keys.PurposeChallenge)
	if err != nil {
		return nil, err
	}

	s := &Server{
		r:          chi.NewRouter(),
		cfg:        cfg,
		games:      store.NewMemoryStore[*wordleEntry](),
		boards:     store.NewMemoryStore[*connectionsEntry](),
		results:    daily.NewStore(db),
		catalog:    catalog,
		challenges: challenge.NewIssuer(challengeKey, cfg.ChallengeTTL),
		dailyKey:   dailyKey,
		now:        time.Now,
		dailyGames: make(map[string]string),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"friendle","endpoints":["/health","/game/*","/daily/*","/connections/*","/challenge","/leaderboard","/stats/me"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{
			"answers":    a,
			"allowed":    g,
			"puzzles":    s.catalog.Len(),
			"liveGames":  s.games.Len(),
			"liveBoards": s.boards.Len(),
		})
	})

	s.mountGame(s.r)
	s.mountDaily(s.r)
	s.mountConnections(s.r)
	s.mountChallenge(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Start serves HTTP on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
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

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- players -----------------------------------

const playerCookieName = "friendle_player"

// playerID returns the player cookie value or sets a new one.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
		Expires:  s.now().Add(180 * 24 * time.Hour),
	})
	return id
}

// ------------------------------ small util ---------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
