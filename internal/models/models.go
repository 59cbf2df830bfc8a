package models

import (
	"time"

	"github.com/abrezinsky/derbybracket/internal/bracket"
)

// Tournament is a persisted bracket
type Tournament struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	RoundLabels []string           `json:"round_labels,omitempty"`
	Data        bracket.Tournament `json:"data"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TournamentSummary is the list view of a tournament
type TournamentSummary struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Rounds           int       `json:"rounds"`
	TotalMatches     int       `json:"total_matches"`
	CompletedMatches int       `json:"completed_matches"`
	Champion         string    `json:"champion,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Event types recorded in the event log and pushed to clients
const (
	EventScoreUpdated   = "score_updated"
	EventRoundCompleted = "round_completed"
	EventRoundGenerated = "round_generated"
)

// Event is a recorded engine notification
type Event struct {
	ID           int64     `json:"id"`
	TournamentID string    `json:"tournament_id"`
	Type         string    `json:"type"`
	Round        int       `json:"round"`
	Game         *int      `json:"game,omitempty"`
	Team         *int      `json:"team,omitempty"`
	Score        *float64  `json:"score,omitempty"`
	Payload      string    `json:"payload,omitempty"` // JSON of the generated round
	CreatedAt    time.Time `json:"created_at"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
