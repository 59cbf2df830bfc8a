package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/derbybracket/internal/export"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/internal/services"
)

// DefaultEventLimit caps the events returned when no limit is given
const DefaultEventLimit = 100

// IndexPageData holds data for the index template
type IndexPageData struct {
	Tournaments []models.TournamentSummary
}

// ==================== Public Pages ====================

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tournaments.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to load tournaments", http.StatusInternalServerError)
		return
	}
	h.templates.Index.Execute(w, IndexPageData{Tournaments: list})
}

func (h *Handlers) handleBracketPage(w http.ResponseWriter, r *http.Request) {
	view, err := h.Tournaments.BracketView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apiErr := ToAPIError(err)
		http.Error(w, apiErr.Message, apiErr.Status)
		return
	}
	h.templates.Bracket.Execute(w, view)
}

// ==================== Tournaments ====================

func (h *Handlers) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tournaments.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, list)
}

func (h *Handlers) handleGetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.Tournaments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, t)
}

func (h *Handlers) handleGetView(w http.ResponseWriter, r *http.Request) {
	view, err := h.Tournaments.BracketView(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// ==================== Queries ====================

func (h *Handlers) handleGetWinner(w http.ResponseWriter, r *http.Request) {
	round, err := parseIntParam(r, "round")
	if err != nil {
		respondError(w, err)
		return
	}
	game, err := parseIntParam(r, "game")
	if err != nil {
		respondError(w, err)
		return
	}

	winner, err := h.Tournaments.MatchWinner(r.Context(), chi.URLParam(r, "id"), round, game)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, WinnerResponse{Round: round, Game: game, Decided: winner != nil, Winner: winner})
}

func (h *Handlers) handleGetRoundStatus(w http.ResponseWriter, r *http.Request) {
	round, err := parseIntParam(r, "round")
	if err != nil {
		respondError(w, err)
		return
	}

	status, err := h.Tournaments.RoundStatus(r.Context(), chi.URLParam(r, "id"), round)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, status)
}

func (h *Handlers) handleGetRoundResults(w http.ResponseWriter, r *http.Request) {
	round, err := parseIntParam(r, "round")
	if err != nil {
		respondError(w, err)
		return
	}

	results, err := h.Tournaments.RoundResults(r.Context(), chi.URLParam(r, "id"), round)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

func (h *Handlers) handleGetAdvancing(w http.ResponseWriter, r *http.Request) {
	round, err := parseIntQuery(r, "round")
	if err != nil {
		respondError(w, err)
		return
	}

	teams, err := h.Tournaments.AdvancingTeams(r.Context(), chi.URLParam(r, "id"), round)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, AdvancingResponse{Round: round, Teams: teams})
}

func (h *Handlers) handleGetTeamHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Tournaments.TeamHistory(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "teamID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, history)
}

func (h *Handlers) handleSearchTeams(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Tournaments.SearchTeams(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, matches)
}

func (h *Handlers) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Tournaments.Statistics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func (h *Handlers) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntQuery(r, "limit")
	if err != nil {
		respondError(w, err)
		return
	}
	n := DefaultEventLimit
	if limit != nil {
		n = *limit
	}

	events, err := h.Tournaments.Events(r.Context(), chi.URLParam(r, "id"), n)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, events)
}

// ==================== Reports & Exports ====================

func (h *Handlers) handleGetReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	includeScores, err := parseBoolQuery(r, "scores", true)
	if err != nil {
		respondError(w, err)
		return
	}
	includeStats, err := parseBoolQuery(r, "stats", false)
	if err != nil {
		respondError(w, err)
		return
	}

	report, err := h.Tournaments.RenderReport(r.Context(), chi.URLParam(r, "id"), format, includeScores, includeStats)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Write([]byte(report.Body))
}

func (h *Handlers) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.Tournaments.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	report, err := h.Tournaments.Report(r.Context(), id, true)
	if err != nil {
		respondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, t.Name, *report); err != nil {
		respondError(w, InternalError(err))
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, downloadName(t.ID)))
	writeBytes(w, export.XLSXContentType, buf.Bytes())
}

func (h *Handlers) handleScoreChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.Tournaments.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	report, err := h.Tournaments.Report(r.Context(), id, false)
	if err != nil {
		respondError(w, err)
		return
	}
	labels := make([]string, len(report.AllResults))
	for i, rr := range report.AllResults {
		labels[i] = rr.RoundLabel
	}

	var buf bytes.Buffer
	if err := export.WriteScoreChart(&buf, t.Name, t.Data, labels); err != nil {
		respondError(w, err)
		return
	}
	writeBytes(w, export.PNGContentType, buf.Bytes())
}

// downloadName keeps an id safe for a Content-Disposition filename
func downloadName(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, id)
}

// ==================== Sharing ====================

func (h *Handlers) handleGetShareLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	link, err := h.Share.BracketURL(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ShareResponse{URL: link, QRURL: "/api/tournaments/" + id + "/qr"})
}

func (h *Handlers) handleGetQRImage(w http.ResponseWriter, r *http.Request) {
	size, err := parseIntQuery(r, "size")
	if err != nil {
		respondError(w, err)
		return
	}
	px := services.DefaultQRSize
	if size != nil {
		px = *size
	}

	png, err := h.Share.BracketQRCode(r.Context(), chi.URLParam(r, "id"), px)
	if err != nil {
		respondError(w, err)
		return
	}
	writeBytes(w, export.PNGContentType, png)
}
