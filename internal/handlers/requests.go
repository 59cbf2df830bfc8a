package handlers

import "github.com/abrezinsky/derbybracket/internal/bracket"

// TournamentCreateRequest represents a request to seed a new tournament
type TournamentCreateRequest struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Teams       []bracket.Team `json:"teams"`
	Strategy    string         `json:"strategy"`
	RoundLabels []string       `json:"round_labels"`
}

// TournamentImportRequest represents a request to store a prebuilt bracket
type TournamentImportRequest struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	RoundLabels []string           `json:"round_labels"`
	Data        bracket.Tournament `json:"data"`
}

// ScoreUpdateRequest represents a request to record one team's score
type ScoreUpdateRequest struct {
	Round int      `json:"round"`
	Game  int      `json:"game"`
	Team  int      `json:"team"`
	Score *float64 `json:"score"`
}

// AdvanceRequest represents a request to generate the next round.
// A missing round advances the first incomplete round.
type AdvanceRequest struct {
	Round          *int   `json:"round"`
	TieBreaker     string `json:"tie_breaker"`
	PreserveScores *bool  `json:"preserve_scores"`
	CreateRounds   *bool  `json:"create_rounds"`
}

// AutoAdvanceRequest represents a request to generate rounds until one is incomplete
type AutoAdvanceRequest struct {
	TieBreaker     string `json:"tie_breaker"`
	PreserveScores *bool  `json:"preserve_scores"`
	StopAtRound    *int   `json:"stop_at_round"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	BaseURL        string  `json:"base_url"`
	WebhookURL     *string `json:"webhook_url"`
	TieBreaker     string  `json:"tie_breaker"`
	PreserveScores *bool   `json:"preserve_scores"`
	ByeLabel       string  `json:"bye_label"`
	ShowByeGames   *bool   `json:"show_bye_games"`
}

// DatabaseResetRequest represents a request to reset database tables
type DatabaseResetRequest struct {
	Tables []string `json:"tables"`
}

// SeedMockDataRequest represents a request to seed a demo tournament
type SeedMockDataRequest struct {
	Name  string `json:"name"`
	Teams int    `json:"teams"`
	Seed  uint64 `json:"seed"`
}
