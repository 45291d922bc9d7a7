package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/wadjakorntonsri/linkvault/pkg/config"
	"github.com/wadjakorntonsri/linkvault/pkg/logging"
	"github.com/wadjakorntonsri/linkvault/pkg/ports"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Profiles    ports.ProfileService
	Links       ports.LinkService
	Clicks      ports.ClickService
	Analytics   ports.AnalyticsService
	Public      ports.PublicService
	Suggestions ports.SuggestionService
}

// NewRouter creates and configures the main application router.
// limiter may be nil.
func NewRouter(cfg *config.Config, svc Services, limiter ports.RateLimiter, log *logging.Log) http.Handler {
	lh := NewLinkHandler(svc.Links, svc.Analytics, log)
	ph := NewPublicHandler(svc.Public, svc.Clicks, log)
	prof := NewProfileHandler(svc.Profiles, svc.Suggestions, log)
	authHandler := NewAuthHandler(cfg, svc.Profiles, log)
	mw := NewMiddleware(cfg, limiter, log)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.Handle("GET /api/v1/public/profiles/{handle}", mw.RateLimit(http.HandlerFunc(ph.Profile)))
	mux.Handle("POST /api/v1/public/clicks", mw.RateLimit(http.HandlerFunc(ph.RecordClick)))
	mux.Handle("GET /go/{linkID}", mw.RateLimit(http.HandlerFunc(ph.Follow)))
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Owner Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/me", prof.Me)
	protectedMux.HandleFunc("PUT /api/v1/me", prof.Update)
	protectedMux.HandleFunc("PUT /api/v1/me/theme", prof.SetTheme)
	protectedMux.HandleFunc("POST /api/v1/suggestions", prof.Suggest)

	protectedMux.HandleFunc("GET /api/v1/links", lh.List)
	protectedMux.HandleFunc("POST /api/v1/links", lh.Create)
	protectedMux.HandleFunc("PUT /api/v1/links/order", lh.Reorder)
	protectedMux.HandleFunc("PUT /api/v1/links/{id}", lh.Update)
	protectedMux.HandleFunc("DELETE /api/v1/links/{id}", lh.Delete)
	protectedMux.HandleFunc("PUT /api/v1/links/{id}/active", lh.SetActive)
	protectedMux.HandleFunc("GET /api/v1/links/{id}/stats", lh.Stats)
	protectedMux.HandleFunc("GET /api/v1/analytics", lh.Dashboard)

	// Everything else under /api/v1/ needs a session; the public patterns above are more specific.
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	var h http.Handler = mux
	h = middleware.Recoverer(h)
	h = mw.AccessLog(h)
	if cfg.TrustProxyHeaders {
		h = middleware.RealIP(h)
	}
	h = middleware.RequestID(h)
	return h
}
