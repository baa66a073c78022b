package http

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"teaminsight/frontend/insight"
	sharedcontext "teaminsight/frontend/shared/context"
	"teaminsight/infrastructure/cache"
	"teaminsight/infrastructure/i18n"
	viewercookie "teaminsight/infrastructure/session"
	"teaminsight/infrastructure/sqlite"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB            *sqlite.DB
	Client        insight.Client
	Views         *cache.ViewCache[*insight.Controller]
	Validate      *validator.Validate
	DefaultLocale language.Tag
}

// NewServer creates a new http server. client feeds the dashboard; db backs
// the teams page, the JSON API and the health check.
func NewServer(addr string, db *sqlite.DB, client insight.Client, views *cache.ViewCache[*insight.Controller], defaultLocale language.Tag) *Server {
	s := &Server{
		Addr:          addr,
		router:        chi.NewRouter(),
		DB:            db,
		Client:        client,
		Views:         views,
		Validate:      validator.New(),
		DefaultLocale: defaultLocale,
		server: &http.Server{
			MaxHeaderBytes: 1 << 20,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)
	s.router.Use(s.ViewerMiddleware)
	s.router.Use(s.LocaleMiddleware)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if s.DB != nil {
			if err := s.DB.Ping(r.Context()); err != nil {
				slog.Error("health check failed", slog.Any("err", err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.RegisterDashboardRoutes(s.router)
	s.RegisterAPIRoutes(s.router)

	s.server.Handler = s.router
	return s
}

// ViewerMiddleware issues and resolves the anonymous viewer token that keys
// per-viewer dashboard state.
func (s *Server) ViewerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := viewercookie.EnsureViewerToken(w, r)
		ctx := sharedcontext.NewContextWithViewer(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LocaleMiddleware resolves the request language and persists an explicit
// ?lang= choice in a cookie.
func (s *Server) LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.ResolveTag(r, s.DefaultLocale)
		if persist {
			http.SetCookie(w, i18n.LanguageCookie(tag))
		}
		w.Header().Set("Content-Language", tag.String())
		ctx := sharedcontext.NewContextWithLocalizer(r.Context(), i18n.NewLocalizer(tag))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
