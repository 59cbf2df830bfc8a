package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/abrezinsky/derbybracket/internal/auth"
	"github.com/abrezinsky/derbybracket/internal/config"
	"github.com/abrezinsky/derbybracket/internal/logger"
)

func TestNew_InitializesApp(t *testing.T) {
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.New()
	adminAuth := auth.New("test-password")

	app, err := New(log, testConfig(), templatesFS, staticFS, adminAuth)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if app == nil {
		t.Fatal("expected app to be created")
	}
	if app.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if app.repo == nil {
		t.Error("expected repo to be initialized")
	}
	if app.cancelGauge == nil {
		t.Error("expected cancelGauge to be set")
	}
	app.Close()
}

func TestNew_FailsWithBadEngineConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Bracket.TieBreaker = "coin-flip"

	_, err := New(logger.Discard(), cfg, createTestTemplatesFS(), fstest.MapFS{}, auth.New("test-password"))

	if err == nil {
		t.Error("expected error for unknown tie-breaker")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.New()
	adminAuth := auth.New("test-password")

	// Invalid path should fail
	cfg := testConfig()
	cfg.Database.Path = "/nonexistent/path/db.sqlite"
	_, err := New(log, cfg, templatesFS, staticFS, adminAuth)

	if err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestNew_FailsWithMissingTemplates(t *testing.T) {
	// Empty templates FS
	templatesFS := fstest.MapFS{}
	staticFS := fstest.MapFS{}
	log := logger.New()
	adminAuth := auth.New("test-password")

	_, err := New(log, testConfig(), templatesFS, staticFS, adminAuth)

	if err == nil {
		t.Error("expected error for missing templates")
	}
}

func TestApp_Router_ReturnsRouter(t *testing.T) {
	app := createTestApp(t)

	router := app.Router()

	if router == nil {
		t.Fatal("expected router to be returned")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t)
	server := httptest.NewServer(app.Router())
	defer server.Close()

	// Test that static route exists (should not 404)
	resp, err := http.Get(server.URL + "/admin/login")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	// Should get 200 (login page)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for /admin/login, got %d", resp.StatusCode)
	}
}

func TestApp_Close_StopsGauge(t *testing.T) {
	app := createTestApp(t)

	// Close should not panic
	app.Close()

	// Calling Close multiple times should be safe
	app.Close()
}

func TestApp_Run_Integration(t *testing.T) {
	app := createTestApp(t)
	defer app.Close()

	// Start server in background on random port
	done := make(chan error, 1)
	go func() {
		// This will block, so we run it in a goroutine
		done <- app.Run(":0")
	}()

	// Give server time to start (or fail)
	select {
	case err := <-done:
		// If it returns immediately, it's likely a bind error (port already in use)
		// which is fine for testing - we just want to exercise the code
		if err != nil {
			t.Logf("Run returned (expected): %v", err)
		}
	case <-time.After(100 * time.Millisecond):
		// Server started successfully, close the app to stop it
		app.Close()
	}
}

func TestApp_MetricsEndpoint(t *testing.T) {
	app := createTestApp(t)
	defer app.Close()

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "derbybracket_tournaments") {
		t.Error("expected tournament gauge in metrics output")
	}
}

func TestApp_ForceBaseURL(t *testing.T) {
	app := createTestApp(t)
	defer app.Close()

	ctx := context.Background()
	app.repo.SetSetting(ctx, "base_url", "http://192.168.1.50:8080")

	app.forceBaseURL("https://derby.example.org")

	val, _ := app.repo.GetSetting(ctx, "base_url")
	if val != "https://derby.example.org" {
		t.Errorf("expected configured base_url, got: %s", val)
	}
}

// Helper functions

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Database.Path = ":memory:"
	return cfg
}

func createTestTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"index.html": &fstest.MapFile{
			Data: []byte(`<html><body>Index</body></html>`),
		},
		"bracket.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Tournament.Name}}</body></html>`),
		},
		"admin/login.html": &fstest.MapFile{
			Data: []byte(`<html><body>Login</body></html>`),
		},
		"admin/layout.html": &fstest.MapFile{
			Data: []byte(`{{define "admin"}}<html><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}Dashboard{{end}}`),
		},
		"admin/settings.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}Settings{{end}}`),
		},
	}
}

func createTestApp(t *testing.T) *App {
	t.Helper()
	templatesFS := createTestTemplatesFS()
	staticFS := fstest.MapFS{}
	log := logger.New()
	adminAuth := auth.New("test-password")

	app, err := New(log, testConfig(), templatesFS, staticFS, adminAuth)
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}
	return app
}
