package services

import (
	"context"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// TournamentServicer defines the interface for tournament operations
type TournamentServicer interface {
	Create(ctx context.Context, req CreateTournament) (*models.Tournament, error)
	Import(ctx context.Context, req ImportTournament) (*models.Tournament, error)
	Get(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.TournamentSummary, error)
	Delete(ctx context.Context, id string) error
	UpdateScore(ctx context.Context, id string, round, game, team int, score float64) (*models.Tournament, error)
	Advance(ctx context.Context, id string, req AdvanceRequest) (*AdvanceResult, error)
	AutoAdvance(ctx context.Context, id string, req AutoAdvanceRequest) (*AutoAdvanceResult, error)
	MatchWinner(ctx context.Context, id string, round, game int) (*bracket.Team, error)
	RoundStatus(ctx context.Context, id string, round int) (*RoundStatus, error)
	AdvancingTeams(ctx context.Context, id string, round *int) ([]bracket.Team, error)
	RoundResults(ctx context.Context, id string, round int) ([]bracket.MatchResult, error)
	TeamHistory(ctx context.Context, id, teamID string) (*bracket.TeamHistory, error)
	Statistics(ctx context.Context, id string) (*bracket.Statistics, error)
	Report(ctx context.Context, id string, includeStats bool) (*bracket.Report, error)
	RenderReport(ctx context.Context, id, format string, includeScores, includeStats bool) (*RenderedReport, error)
	SearchTeams(ctx context.Context, id, query string) ([]TeamMatch, error)
	Events(ctx context.Context, id string, limit int) ([]models.Event, error)
	SeedMockTournament(ctx context.Context, name string, teamCount int, seed uint64) (*models.Tournament, error)
	BracketView(ctx context.Context, id string) (*BracketView, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetWebhookURL(ctx context.Context) (string, error)
	SetWebhookURL(ctx context.Context, url string) error
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	EngineConfig(ctx context.Context) (bracket.Config, error)
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	UpdateSettings(ctx context.Context, settings Settings) error
	ResetTables(ctx context.Context, tables []string) (*ResetTablesResult, error)
}

// ShareServicer defines the interface for public bracket links
type ShareServicer interface {
	BracketURL(ctx context.Context, id string) (string, error)
	BracketQRCode(ctx context.Context, id string, size int) ([]byte, error)
}

// Ensure concrete types implement interfaces
var (
	_ TournamentServicer = (*TournamentService)(nil)
	_ SettingsServicer   = (*SettingsService)(nil)
	_ ShareServicer      = (*ShareService)(nil)
	_ EngineSettings     = (*SettingsService)(nil)
	_ Publisher          = (*WebhookPublisher)(nil)
)
