// Package config loads server and bracket defaults from a YAML file, an
// optional .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/logger"
)

// Config holds the configuration settings
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	Bracket  BracketConfig  `yaml:"bracket"`
	Webhook  WebhookConfig  `yaml:"webhook"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

// AdminConfig holds admin authentication configuration.
type AdminConfig struct {
	Password string `yaml:"password"` // generated when empty
}

// BracketConfig holds the engine defaults.
type BracketConfig struct {
	TieBreaker     string   `yaml:"tie_breaker"`
	PreserveScores bool     `yaml:"preserve_scores"`
	CreateRounds   bool     `yaml:"create_rounds"`
	StopAtRound    *int     `yaml:"stop_at_round"`
	ByeLabel       string   `yaml:"bye_label"`
	ByeClass       string   `yaml:"bye_class"`
	ShowByeGames   bool     `yaml:"show_bye_games"`
	RoundLabels    []string `yaml:"round_labels"`
	ChampionMarker string   `yaml:"champion_marker"`
}

// WebhookConfig holds the outbound notification target.
type WebhookConfig struct {
	URL     string        `yaml:"url"` // empty disables delivery
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8081},
		Database: DatabaseConfig{Path: "bracket.db"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Bracket: BracketConfig{
			TieBreaker:     "error",
			ByeLabel:       "BYE",
			ByeClass:       "bye",
			ShowByeGames:   true,
			ChampionMarker: bracket.MarkerMultiRound.String(),
		},
		Webhook: WebhookConfig{Timeout: 5 * time.Second},
	}
}

// LoadDotEnv reads an optional .env file into the environment.
// A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadConfig loads the configuration from a YAML file. When the file does not
// exist the defaults are used. Environment variables override both.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields with environment variables if present.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %v", err)
		}
		c.Server.Port = port
	}
	if v := getenv("BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := getenv("ADMIN_PASSWORD"); v != "" {
		c.Admin.Password = v
	}
	if v := getenv("TIE_BREAKER"); v != "" {
		c.Bracket.TieBreaker = v
	}
	if v := getenv("PRESERVE_SCORES"); v != "" {
		c.Bracket.PreserveScores = v == "true"
	}
	if v := getenv("CREATE_ROUNDS"); v != "" {
		c.Bracket.CreateRounds = v == "true"
	}
	if v := getenv("STOP_AT_ROUND"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STOP_AT_ROUND value: %v", err)
		}
		c.Bracket.StopAtRound = &n
	}
	if v := getenv("BYE_LABEL"); v != "" {
		c.Bracket.ByeLabel = v
	}
	if v := getenv("BYE_CLASS"); v != "" {
		c.Bracket.ByeClass = v
	}
	if v := getenv("SHOW_BYE_GAMES"); v != "" {
		c.Bracket.ShowByeGames = v == "true"
	}
	if v := getenv("ROUND_LABELS"); v != "" {
		c.Bracket.RoundLabels = SplitList(v)
	}
	if v := getenv("CHAMPION_MARKER"); v != "" {
		c.Bracket.ChampionMarker = v
	}
	if v := getenv("WEBHOOK_URL"); v != "" {
		c.Webhook.URL = v
	}
	if v := getenv("WEBHOOK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WEBHOOK_TIMEOUT value: %v", err)
		}
		c.Webhook.Timeout = d
	}
	return nil
}

// Validate checks values that cannot be repaired with a default.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", string(logger.FormatText), string(logger.FormatJSON):
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	return nil
}

// EngineConfig builds the engine configuration from the bracket section.
func (c *Config) EngineConfig() (bracket.Config, error) {
	tb, err := bracket.ParseTieBreaker(c.Bracket.TieBreaker)
	if err != nil {
		return bracket.Config{}, err
	}
	marker, err := bracket.ParseChampionMarker(c.Bracket.ChampionMarker)
	if err != nil {
		return bracket.Config{}, err
	}

	opts := []bracket.Option{
		bracket.WithTieBreaker(tb),
		bracket.WithPreserveScores(c.Bracket.PreserveScores),
		bracket.WithCreateRounds(c.Bracket.CreateRounds),
		bracket.WithRoundLabels(c.Bracket.RoundLabels...),
		bracket.WithByeDisplay(c.Bracket.ByeLabel, c.Bracket.ByeClass, c.Bracket.ShowByeGames),
		bracket.WithChampionMarker(marker),
	}
	if c.Bracket.StopAtRound != nil {
		opts = append(opts, bracket.WithStopAtRound(*c.Bracket.StopAtRound))
	}
	return bracket.NewConfig(opts...), nil
}

// LoggerOptions returns the logger settings.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
	}
}

// SplitList splits a comma separated list, trimming blanks and dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
