package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/services"
)

// Team count of a demo tournament when none is requested
const defaultMockTeams = 8

// ==================== Admin Pages ====================

func (h *Handlers) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tournaments.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load tournaments", http.StatusInternalServerError)
		return
	}
	data := AdminPageData{
		Title:     "Admin Dashboard",
		PageTitle: "Admin Dashboard",
		ActiveNav: "dashboard",
		Data:      list,
	}
	h.templates.AdminDashboard.ExecuteTemplate(w, "admin", data)
}

func (h *Handlers) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	data := AdminPageData{
		Title:     "Admin Settings",
		PageTitle: "Admin Settings",
		ActiveNav: "settings",
		Data:      settings,
	}
	h.templates.AdminSettings.ExecuteTemplate(w, "admin", data)
}

// ==================== Tournaments ====================

func (h *Handlers) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.Tournaments.Create(r.Context(), services.CreateTournament{
		ID:          req.ID,
		Name:        req.Name,
		Teams:       req.Teams,
		Strategy:    req.Strategy,
		RoundLabels: req.RoundLabels,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, t)
}

func (h *Handlers) handleImportTournament(w http.ResponseWriter, r *http.Request) {
	var req TournamentImportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	t, err := h.Tournaments.Import(r.Context(), services.ImportTournament{
		ID:          req.ID,
		Name:        req.Name,
		RoundLabels: req.RoundLabels,
		Data:        req.Data,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, t)
}

func (h *Handlers) handleDeleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := h.Tournaments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// ==================== Scores & Advancement ====================

func (h *Handlers) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Score == nil {
		respondError(w, errors.InvalidInput("score is required"))
		return
	}

	t, err := h.Tournaments.UpdateScore(r.Context(), chi.URLParam(r, "id"), req.Round, req.Game, req.Team, *req.Score)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, t)
}

func (h *Handlers) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Tournaments.Advance(r.Context(), chi.URLParam(r, "id"), services.AdvanceRequest{
		Round:          req.Round,
		TieBreaker:     req.TieBreaker,
		PreserveScores: req.PreserveScores,
		CreateRounds:   req.CreateRounds,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

func (h *Handlers) handleAutoAdvance(w http.ResponseWriter, r *http.Request) {
	var req AutoAdvanceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Tournaments.AutoAdvance(r.Context(), chi.URLParam(r, "id"), services.AutoAdvanceRequest{
		TieBreaker:     req.TieBreaker,
		PreserveScores: req.PreserveScores,
		StopAtRound:    req.StopAtRound,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// ==================== Settings ====================

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	settings := services.Settings{
		BaseURL:        req.BaseURL,
		WebhookURL:     req.WebhookURL,
		TieBreaker:     req.TieBreaker,
		PreserveScores: req.PreserveScores,
		ByeLabel:       req.ByeLabel,
		ShowByeGames:   req.ShowByeGames,
	}
	if err := h.Settings.UpdateSettings(r.Context(), settings); err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "Settings updated")
}

// ==================== Database Management ====================

func (h *Handlers) handleResetDatabase(w http.ResponseWriter, r *http.Request) {
	var req DatabaseResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settings.ResetTables(r.Context(), req.Tables)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ResetResponse{Tables: result.Tables, Message: result.Message})
}

func (h *Handlers) handleSeedMockData(w http.ResponseWriter, r *http.Request) {
	var req SeedMockDataRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Teams == 0 {
		req.Teams = defaultMockTeams
	}

	t, err := h.Tournaments.SeedMockTournament(r.Context(), req.Name, req.Teams, req.Seed)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, SeedMockDataResponse{
		ID:      t.ID,
		Name:    t.Name,
		Teams:   req.Teams,
		Message: fmt.Sprintf("Created %s with %d teams", t.Name, req.Teams),
	})
}
