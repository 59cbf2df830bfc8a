package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/derbybracket/internal/auth"
	"github.com/abrezinsky/derbybracket/internal/config"
	"github.com/abrezinsky/derbybracket/internal/handlers"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/metrics"
	"github.com/abrezinsky/derbybracket/internal/repository"
	"github.com/abrezinsky/derbybracket/internal/services"
	"github.com/abrezinsky/derbybracket/internal/websocket"
	"github.com/abrezinsky/derbybracket/pkg/webhook"
)

// gaugeInterval is how often the tournament count gauge is refreshed
const gaugeInterval = 30 * time.Second

// App holds all application dependencies
type App struct {
	log         logger.Logger
	cfg         *config.Config
	handlers    *handlers.Handlers
	repo        *repository.Repository
	tournaments *services.TournamentService
	metrics     *metrics.Metrics
	cancelGauge context.CancelFunc
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config, templatesFS, staticFS fs.FS, adminAuth *auth.Auth) (*App, error) {
	defaults, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	repo, err := repository.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// Initialize services
	settingsService := services.NewSettingsService(log, repo, defaults)
	settingsService.SetDefaultWebhookURL(cfg.Webhook.URL)
	tournamentService := services.NewTournamentService(log, repo, settingsService)
	shareService := services.NewShareService(log, tournamentService, settingsService)

	// Metrics see committed engine notifications and operation outcomes
	m := metrics.New()
	tournamentService.AddObserver(m)
	tournamentService.SetOperationRecorder(m)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, tournamentService)
	hub.SetClientCountHook(m.SetWebSocketClients)
	hub.Start()
	tournamentService.AddPublisher(hub)

	webhookClient := webhook.NewHTTPClient(cfg.Webhook.URL, cfg.Webhook.Timeout, log)
	tournamentService.AddPublisher(services.NewWebhookPublisher(log, webhookClient, settingsService))

	// Create static file server
	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(
		tournamentService,
		settingsService,
		shareService,
		templatesFS,
		staticServer,
		adminAuth,
		hub,
		m.Handler(),
		log,
	)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	a := &App{
		log:         log,
		cfg:         cfg,
		handlers:    h,
		repo:        repo,
		tournaments: tournamentService,
		metrics:     m,
	}

	// Keep the tournament gauge current; stopped by Close
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelGauge = cancel
	a.refreshTournamentGauge(ctx)
	go a.runGauge(ctx, gaugeInterval)

	return a, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.cancelGauge != nil {
		a.cancelGauge()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

func (a *App) runGauge(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refreshTournamentGauge(ctx)
		}
	}
}

func (a *App) refreshTournamentGauge(ctx context.Context) {
	list, err := a.tournaments.List(ctx)
	if err != nil {
		a.log.Warn("Failed to count tournaments", "error", err)
		return
	}
	a.metrics.SetTournaments(len(list))
}

// Run starts the HTTP server
func (a *App) Run(addr string) error {
	// A configured base URL wins; otherwise use the detected LAN address
	baseURL := a.cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s%s", lanHost(interfaceAddrs), addr)
		a.setDefaultBaseURL(baseURL)
	} else {
		a.forceBaseURL(baseURL)
	}

	a.log.Info("Server starting", "url", baseURL)
	a.log.Info("Admin URL", "url", baseURL+"/admin")
	a.log.Info("Metrics URL", "url", baseURL+"/metrics")
	return http.ListenAndServe(addr, a.Router())
}

// setDefaultBaseURL stores the detected URL unless an admin already set one
// that other devices can reach
func (a *App) setDefaultBaseURL(baseURL string) {
	existing, _ := a.repo.GetSetting(context.Background(), services.SettingBaseURL)
	if unreachableURL(existing) {
		a.forceBaseURL(baseURL)
	}
}

func (a *App) forceBaseURL(baseURL string) {
	if err := a.repo.SetSetting(context.Background(), services.SettingBaseURL, baseURL); err != nil {
		a.log.Warn("Failed to set default base_url", "error", err)
	} else {
		a.log.Info("Default base URL set", "url", baseURL)
	}
}
