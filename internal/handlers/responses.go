package handlers

import "github.com/abrezinsky/derbybracket/internal/bracket"

// WinnerResponse is the response for a single game's winner
type WinnerResponse struct {
	Round   int           `json:"round"`
	Game    int           `json:"game"`
	Decided bool          `json:"decided"`
	Winner  *bracket.Team `json:"winner"`
}

// AdvancingResponse lists the teams advancing out of a round
type AdvancingResponse struct {
	Round *int           `json:"round,omitempty"`
	Teams []bracket.Team `json:"teams"`
}

// ShareResponse is the response for a bracket's public link
type ShareResponse struct {
	URL   string `json:"url"`
	QRURL string `json:"qr_url"`
}

// SeedMockDataResponse is the response for seeding a demo tournament
type SeedMockDataResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Teams   int    `json:"teams"`
	Message string `json:"message"`
}

// ResetResponse is the response for a database reset
type ResetResponse struct {
	Tables  []string `json:"tables"`
	Message string   `json:"message"`
}
