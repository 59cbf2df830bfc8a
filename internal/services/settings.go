package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/repository"
)

// Setting keys stored in the settings table
const (
	SettingBaseURL        = "base_url"
	SettingWebhookURL     = "webhook_url"
	SettingTieBreaker     = "tie_breaker"
	SettingPreserveScores = "preserve_scores"
	SettingByeLabel       = "bye_label"
	SettingShowByeGames   = "show_bye_games"
)

// SettingsService handles runtime-editable settings. Values not stored in
// the database fall back to the configured engine defaults.
type SettingsService struct {
	log      logger.Logger
	repo     repository.SettingsRepository
	defaults bracket.Config
	webhook  string
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository, defaults bracket.Config) *SettingsService {
	return &SettingsService{log: log, repo: repo, defaults: defaults}
}

// SetDefaultWebhookURL sets the webhook URL used when none is stored
func (s *SettingsService) SetDefaultWebhookURL(url string) {
	s.webhook = url
}

// getOr returns the stored value or fallback when the key is unset
func (s *SettingsService) getOr(ctx context.Context, key, fallback string) (string, error) {
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if err == repository.ErrNotFound {
			return fallback, nil
		}
		return "", err // Propagate database errors
	}
	return value, nil
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	return s.getOr(ctx, SettingBaseURL, "")
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, SettingBaseURL, strings.TrimRight(url, "/"))
}

// GetWebhookURL returns the notification webhook URL
func (s *SettingsService) GetWebhookURL(ctx context.Context) (string, error) {
	return s.getOr(ctx, SettingWebhookURL, s.webhook)
}

// SetWebhookURL saves the notification webhook URL; empty disables delivery
func (s *SettingsService) SetWebhookURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, SettingWebhookURL, url)
}

// GetSetting retrieves an arbitrary setting
func (s *SettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting saves an arbitrary setting
func (s *SettingsService) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}

// EngineConfig returns the configured engine defaults with stored overrides applied
func (s *SettingsService) EngineConfig(ctx context.Context) (bracket.Config, error) {
	cfg := s.defaults

	stored, err := s.repo.ListSettings(ctx)
	if err != nil {
		return bracket.Config{}, err
	}

	if v, ok := stored[SettingTieBreaker]; ok {
		tb, err := bracket.ParseTieBreaker(v)
		if err != nil {
			s.log.Warn("Ignoring stored tie-breaker", "value", v, "error", err)
		} else {
			cfg.TieBreaker = tb
		}
	}
	if v, ok := stored[SettingPreserveScores]; ok {
		cfg.PreserveScores = v == "true"
	}
	if v, ok := stored[SettingByeLabel]; ok && v != "" {
		cfg.ByeLabel = v
	}
	if v, ok := stored[SettingShowByeGames]; ok {
		cfg.ShowByeGames = v == "true"
	}
	return bracket.NewConfig(func(c *bracket.Config) { *c = cfg }), nil
}

// AllSettings returns the effective settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	cfg, err := s.EngineConfig(ctx)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]interface{})

	baseURL, _ := s.GetBaseURL(ctx)
	settings[SettingBaseURL] = baseURL

	webhookURL, _ := s.GetWebhookURL(ctx)
	settings[SettingWebhookURL] = webhookURL

	settings[SettingTieBreaker] = cfg.TieBreaker.String()
	settings[SettingPreserveScores] = cfg.PreserveScores
	settings[SettingByeLabel] = cfg.ByeLabel
	settings[SettingShowByeGames] = cfg.ShowByeGames
	settings["bye_class"] = cfg.ByeClass
	settings["champion_marker"] = cfg.ChampionMarker.String()
	settings["round_labels"] = cfg.RoundLabels

	return settings, nil
}

// Settings represents application settings for update operations
type Settings struct {
	BaseURL        string
	WebhookURL     *string
	TieBreaker     string
	PreserveScores *bool
	ByeLabel       string
	ShowByeGames   *bool
}

// UpdateSettings updates multiple settings at once. The tie-breaker name is
// validated before anything is written.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) error {
	if settings.TieBreaker != "" {
		if _, err := bracket.ParseTieBreaker(settings.TieBreaker); err != nil {
			return err
		}
	}

	if settings.BaseURL != "" {
		if err := s.SetBaseURL(ctx, settings.BaseURL); err != nil {
			return err
		}
	}
	if settings.WebhookURL != nil {
		if err := s.SetWebhookURL(ctx, *settings.WebhookURL); err != nil {
			return err
		}
	}
	if settings.TieBreaker != "" {
		if err := s.repo.SetSetting(ctx, SettingTieBreaker, strings.ToLower(settings.TieBreaker)); err != nil {
			return err
		}
	}
	if settings.PreserveScores != nil {
		if err := s.repo.SetSetting(ctx, SettingPreserveScores, strconv.FormatBool(*settings.PreserveScores)); err != nil {
			return err
		}
	}
	if settings.ByeLabel != "" {
		if err := s.repo.SetSetting(ctx, SettingByeLabel, settings.ByeLabel); err != nil {
			return err
		}
	}
	if settings.ShowByeGames != nil {
		if err := s.repo.SetSetting(ctx, SettingShowByeGames, strconv.FormatBool(*settings.ShowByeGames)); err != nil {
			return err
		}
	}
	s.log.Info("Settings updated")
	return nil
}

// ResetTablesResult contains the result of a database reset
type ResetTablesResult struct {
	Tables  []string
	Message string
}

// ValidTables defines which tables can be reset
var ValidTables = map[string]bool{
	"tournaments": true, "events": true, "settings": true,
}

// ResetTables validates and resets the specified database tables.
// Clearing tournaments clears their event log first.
func (s *SettingsService) ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error) {
	if len(tables) == 0 {
		return nil, ErrNoTablesSpecified
	}

	var tablesToReset []string
	for _, table := range tables {
		if !ValidTables[table] {
			return nil, &InvalidTableError{Table: table}
		}
		if !containsTable(tablesToReset, table) {
			tablesToReset = append(tablesToReset, table)
		}
	}

	if containsTable(tablesToReset, "tournaments") && !containsTable(tablesToReset, "events") {
		tablesToReset = append([]string{"events"}, tablesToReset...)
	}

	for _, table := range tablesToReset {
		if err := s.repo.ClearTable(ctx, table); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to clear "+table)
		}
	}

	s.log.Info("Tables reset", "tables", tablesToReset)
	return &ResetTablesResult{
		Tables:  tablesToReset,
		Message: "Successfully deleted data from tables",
	}, nil
}

func containsTable(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
