package mock

import (
	"context"
	"time"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveTournamentDataError = errors.New("database error")
//	svc := services.NewTournamentService(log, mockRepo, settings)
//	err := svc.UpdateScore(ctx, id, 0, 0, 0, 21)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Tournament Errors =====
	CreateTournamentError   error
	GetTournamentError      error
	ListTournamentsError    error
	SaveTournamentDataError error
	DeleteTournamentError   error

	// ===== Event Errors =====
	ListEventsError  error
	CountEventsError error

	// ===== Settings Errors =====
	GetSettingError   error
	SetSettingError   error
	ListSettingsError error
	ClearTableError   error

	// SaveCalls counts SaveTournamentData invocations, including failed ones.
	SaveCalls int
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

func (m *Repository) CreateTournament(ctx context.Context, t *models.Tournament) error {
	if m.CreateTournamentError != nil {
		return m.CreateTournamentError
	}
	return m.FullRepository.CreateTournament(ctx, t)
}

func (m *Repository) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	if m.GetTournamentError != nil {
		return nil, m.GetTournamentError
	}
	return m.FullRepository.GetTournament(ctx, id)
}

func (m *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	if m.ListTournamentsError != nil {
		return nil, m.ListTournamentsError
	}
	return m.FullRepository.ListTournaments(ctx)
}

func (m *Repository) SaveTournamentData(ctx context.Context, id string, data bracket.Tournament, updatedAt time.Time, events []models.Event) error {
	m.SaveCalls++
	if m.SaveTournamentDataError != nil {
		return m.SaveTournamentDataError
	}
	return m.FullRepository.SaveTournamentData(ctx, id, data, updatedAt, events)
}

func (m *Repository) DeleteTournament(ctx context.Context, id string) error {
	if m.DeleteTournamentError != nil {
		return m.DeleteTournamentError
	}
	return m.FullRepository.DeleteTournament(ctx, id)
}

func (m *Repository) ListEvents(ctx context.Context, tournamentID string, limit int) ([]models.Event, error) {
	if m.ListEventsError != nil {
		return nil, m.ListEventsError
	}
	return m.FullRepository.ListEvents(ctx, tournamentID, limit)
}

func (m *Repository) CountEvents(ctx context.Context, tournamentID string) (int, error) {
	if m.CountEventsError != nil {
		return 0, m.CountEventsError
	}
	return m.FullRepository.CountEvents(ctx, tournamentID)
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}

func (m *Repository) ListSettings(ctx context.Context) (map[string]string, error) {
	if m.ListSettingsError != nil {
		return nil, m.ListSettingsError
	}
	return m.FullRepository.ListSettings(ctx)
}

func (m *Repository) ClearTable(ctx context.Context, table string) error {
	if m.ClearTableError != nil {
		return m.ClearTableError
	}
	return m.FullRepository.ClearTable(ctx, table)
}
