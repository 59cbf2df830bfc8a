package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger) // Custom conditional HTTP logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	if h.staticServer != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))
	}

	// Public pages
	r.Get("/", h.handleIndex)
	r.Get("/bracket/{id}", h.handleBracketPage)

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Prometheus
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// Tournament API (public, read-only)
	r.Route("/api/tournaments", func(r chi.Router) {
		r.Get("/", h.handleListTournaments)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetTournament)
			r.Get("/view", h.handleGetView)
			r.Get("/rounds/{round}", h.handleGetRoundStatus)
			r.Get("/rounds/{round}/results", h.handleGetRoundResults)
			r.Get("/rounds/{round}/games/{game}/winner", h.handleGetWinner)
			r.Get("/advancing", h.handleGetAdvancing)
			r.Get("/teams/search", h.handleSearchTeams)
			r.Get("/teams/{teamID}/history", h.handleGetTeamHistory)
			r.Get("/statistics", h.handleGetStatistics)
			r.Get("/events", h.handleGetEvents)
			r.Get("/report", h.handleGetReport)
			r.Get("/export.xlsx", h.handleExportXLSX)
			r.Get("/chart.png", h.handleScoreChart)
			r.Get("/share", h.handleGetShareLink)
			r.Get("/qr", h.handleGetQRImage)
		})
	})

	// Auth routes (public)
	r.Get("/admin/login", h.handleLoginPage)
	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	// Admin pages (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuth)
		r.Get("/admin", h.handleAdminDashboard)
		r.Get("/admin/settings", h.handleAdminSettings)
	})

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		// Tournaments
		r.Post("/api/admin/tournaments", h.handleCreateTournament)
		r.Post("/api/admin/tournaments/import", h.handleImportTournament)
		r.Delete("/api/admin/tournaments/{id}", h.handleDeleteTournament)

		// Scores & Advancement
		r.Put("/api/admin/tournaments/{id}/scores", h.handleUpdateScore)
		r.Post("/api/admin/tournaments/{id}/advance", h.handleAdvance)
		r.Post("/api/admin/tournaments/{id}/auto-advance", h.handleAutoAdvance)

		// Settings
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Post("/api/admin/settings", h.handleUpdateSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)

		// Database Management
		r.Post("/api/admin/reset-database", h.handleResetDatabase)
		r.Post("/api/admin/seed-mock-data", h.handleSeedMockData)
	})

	return r
}
