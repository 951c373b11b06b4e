package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/catalog"
	"github.com/mkyawt/nutrilog/internal/config"
	"github.com/mkyawt/nutrilog/internal/profile"
	"github.com/mkyawt/nutrilog/internal/recommend"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the Nutrilog web UI
// and JSON API.
func NewServer(cat *catalog.Catalog, users *profile.Store, rec *recommend.Recommender, a *assistant.Assistant, cfg *config.Config, version, bind string, port int) *http.Server {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	h := &Handlers{
		catalog:   cat,
		users:     users,
		rec:       rec,
		assistant: a,
		cfg:       cfg,
		renderer:  renderer,
	}

	mux := http.NewServeMux()

	// Pages, using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
	mux.HandleFunc("GET /dashboard", h.HandleDashboard)
	mux.HandleFunc("GET /foods", h.HandleFoods)
	mux.HandleFunc("GET /login", h.HandleLoginPage)
	mux.HandleFunc("POST /login", h.HandleLogin)
	mux.HandleFunc("POST /logout", h.HandleLogout)

	// JSON API
	mux.HandleFunc("POST /api/login", h.HandleAPILogin)
	mux.HandleFunc("GET /api/search", h.HandleAPISearch)
	mux.HandleFunc("GET /api/all_foods", h.HandleAPIAllFoods)
	mux.HandleFunc("GET /api/recommend", h.HandleAPIRecommend)
	mux.HandleFunc("POST /api/add_food", h.HandleAPIAddFood)
	mux.HandleFunc("POST /api/clean_database", h.HandleAPIClean)
	mux.HandleFunc("POST /api/log_food", h.HandleAPILogFood)
	mux.HandleFunc("POST /api/remove_food", h.HandleAPIRemoveFood)
	mux.HandleFunc("POST /api/clear_daily_logs", h.HandleAPIClearDate)
	mux.HandleFunc("GET /api/daily_summary", h.HandleAPISummary)
	mux.HandleFunc("POST /api/profile", h.HandleAPICreateProfile)
	mux.HandleFunc("PATCH /api/profile", h.HandleAPIUpdateProfile)
	mux.HandleFunc("GET /api/profile", h.HandleAPIGetProfile)
	mux.HandleFunc("POST /api/calculate_nutrition", h.HandleAPICalculate)
	mux.HandleFunc("POST /api/chat", h.HandleAPIChat)
	mux.HandleFunc("GET /api/health", h.HandleAPIHealth)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Nutrilog UI running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
