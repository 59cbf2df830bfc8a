package repository

import (
	"context"
	"time"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// TournamentRepository defines tournament data operations
type TournamentRepository interface {
	CreateTournament(ctx context.Context, t *models.Tournament) error
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	// SaveTournamentData replaces the rounds of a tournament and appends the
	// events produced by the change in one transaction.
	SaveTournamentData(ctx context.Context, id string, data bracket.Tournament, updatedAt time.Time, events []models.Event) error
	DeleteTournament(ctx context.Context, id string) error
}

// EventRepository defines event log operations
type EventRepository interface {
	ListEvents(ctx context.Context, tournamentID string, limit int) ([]models.Event, error)
	CountEvents(ctx context.Context, tournamentID string) (int, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) (map[string]string, error)
	ClearTable(ctx context.Context, table string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	TournamentRepository
	EventRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
