package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// newTestRepo creates a new in-memory repository for testing.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

var baseTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleTournament(id string) *models.Tournament {
	return &models.Tournament{
		ID:          id,
		Name:        "Spring Derby",
		RoundLabels: []string{"Semifinal", "Final"},
		Data: bracket.Tournament{
			{
				{{Name: "Alpha", ID: "a", Seed: 1, Score: bracket.Score(21)}, {Name: "Beta", ID: "b", Seed: 4}},
				{{Name: "Gamma", ID: "c", Seed: 2, DisplaySeed: "2*"}},
			},
			{{{Name: "Winner 1", ID: "winner-r1-g0", Seed: 1}, {Name: "Winner 2", ID: "winner-r1-g1", Seed: 2}}},
			{{{Name: "Champion", ID: "champion", Seed: 1}}},
		},
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
}

// ==================== Tournament Tests ====================

func TestCreateAndGetTournament(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := sampleTournament("spring")
	if err := repo.CreateTournament(ctx, want); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	got, err := repo.GetTournament(ctx, "spring")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tournament mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateTournament_NoLabels(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tour := sampleTournament("plain")
	tour.RoundLabels = nil
	if err := repo.CreateTournament(ctx, tour); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	got, err := repo.GetTournament(ctx, "plain")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if got.RoundLabels != nil {
		t.Errorf("expected nil labels, got %v", got.RoundLabels)
	}
}

func TestCreateTournament_DuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTournament(ctx, sampleTournament("dup")); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	err := repo.CreateTournament(ctx, sampleTournament("dup"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestGetTournament_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetTournament(context.Background(), "missing")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListTournaments_OrderedByUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := sampleTournament("older")
	newer := sampleTournament("newer")
	newer.UpdatedAt = baseTime.Add(time.Hour)
	for _, tour := range []*models.Tournament{older, newer} {
		if err := repo.CreateTournament(ctx, tour); err != nil {
			t.Fatalf("CreateTournament failed: %v", err)
		}
	}

	list, err := repo.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("ListTournaments failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != "newer" || list[1].ID != "older" {
		t.Errorf("unexpected order: %+v", list)
	}
}

func TestListTournaments_Empty(t *testing.T) {
	repo := newTestRepo(t)

	list, err := repo.ListTournaments(context.Background())
	if err != nil {
		t.Fatalf("ListTournaments failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no tournaments, got %d", len(list))
	}
}

func TestSaveTournamentData_WithEvents(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tour := sampleTournament("spring")
	if err := repo.CreateTournament(ctx, tour); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}

	data := tour.Data.Clone()
	data[0][0][1].Score = bracket.Score(10)
	game, team, score := 0, 1, 10.0
	events := []models.Event{
		{Type: models.EventScoreUpdated, Round: 0, Game: &game, Team: &team, Score: &score, CreatedAt: baseTime},
		{Type: models.EventRoundCompleted, Round: 0, CreatedAt: baseTime},
		{Type: models.EventRoundGenerated, Round: 1, Payload: `[[{"name":"Alpha"}]]`, CreatedAt: baseTime},
	}
	updated := baseTime.Add(time.Minute)

	if err := repo.SaveTournamentData(ctx, "spring", data, updated, events); err != nil {
		t.Fatalf("SaveTournamentData failed: %v", err)
	}

	got, err := repo.GetTournament(ctx, "spring")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if !got.Data[0][0][1].HasScore() || got.Data[0][0][1].ScoreValue() != 10 {
		t.Errorf("score not persisted: %+v", got.Data[0][0][1])
	}
	if !got.UpdatedAt.Equal(updated) || !got.CreatedAt.Equal(baseTime) {
		t.Errorf("unexpected timestamps %v / %v", got.CreatedAt, got.UpdatedAt)
	}

	stored, err := repo.ListEvents(ctx, "spring", 0)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 events, got %d", len(stored))
	}
	first := stored[0]
	if first.Type != models.EventScoreUpdated || first.Game == nil || *first.Game != 0 || *first.Team != 1 || *first.Score != 10 {
		t.Errorf("unexpected score event %+v", first)
	}
	if stored[1].Game != nil || stored[1].Score != nil || stored[1].Payload != "" {
		t.Errorf("round completed event must have no game/score/payload: %+v", stored[1])
	}
	if stored[2].Payload == "" || stored[2].Round != 1 {
		t.Errorf("unexpected generated event %+v", stored[2])
	}
}

func TestSaveTournamentData_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.SaveTournamentData(context.Background(), "missing", bracket.Tournament{}, baseTime, nil)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListEvents_Limit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTournament(ctx, sampleTournament("spring")); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	var events []models.Event
	for i := 0; i < 5; i++ {
		events = append(events, models.Event{Type: models.EventRoundCompleted, Round: i, CreatedAt: baseTime})
	}
	if err := repo.SaveTournamentData(ctx, "spring", sampleTournament("spring").Data, baseTime, events); err != nil {
		t.Fatalf("SaveTournamentData failed: %v", err)
	}

	latest, err := repo.ListEvents(ctx, "spring", 2)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(latest) != 2 || latest[0].Round != 3 || latest[1].Round != 4 {
		t.Errorf("expected the two newest events in order, got %+v", latest)
	}

	n, err := repo.CountEvents(ctx, "spring")
	if err != nil || n != 5 {
		t.Errorf("CountEvents = %d, %v; want 5", n, err)
	}
}

func TestDeleteTournament(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTournament(ctx, sampleTournament("spring")); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	events := []models.Event{{Type: models.EventRoundCompleted, CreatedAt: baseTime}}
	if err := repo.SaveTournamentData(ctx, "spring", sampleTournament("spring").Data, baseTime, events); err != nil {
		t.Fatalf("SaveTournamentData failed: %v", err)
	}

	if err := repo.DeleteTournament(ctx, "spring"); err != nil {
		t.Fatalf("DeleteTournament failed: %v", err)
	}
	if _, err := repo.GetTournament(ctx, "spring"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if n, _ := repo.CountEvents(ctx, "spring"); n != 0 {
		t.Errorf("expected events to be deleted, %d remain", n)
	}

	if err := repo.DeleteTournament(ctx, "spring"); err != ErrNotFound {
		t.Errorf("second delete should report ErrNotFound, got %v", err)
	}
}

// ==================== Settings Tests ====================

func TestSettings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetSetting(ctx, "tie_breaker"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for unset key, got %v", err)
	}
	if err := repo.SetSetting(ctx, "tie_breaker", "higher-seed"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := repo.SetSetting(ctx, "tie_breaker", "lower-seed"); err != nil {
		t.Fatalf("SetSetting overwrite failed: %v", err)
	}
	if err := repo.SetSetting(ctx, "bye_label", "Free pass"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}

	value, err := repo.GetSetting(ctx, "tie_breaker")
	if err != nil || value != "lower-seed" {
		t.Errorf("GetSetting = %q, %v", value, err)
	}

	all, err := repo.ListSettings(ctx)
	if err != nil {
		t.Fatalf("ListSettings failed: %v", err)
	}
	want := map[string]string{"tie_breaker": "lower-seed", "bye_label": "Free pass"}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestClearTable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateTournament(ctx, sampleTournament("spring")); err != nil {
		t.Fatalf("CreateTournament failed: %v", err)
	}
	if err := repo.ClearTable(ctx, "tournaments"); err != nil {
		t.Fatalf("ClearTable failed: %v", err)
	}
	list, _ := repo.ListTournaments(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty table, got %d rows", len(list))
	}

	if err := repo.ClearTable(ctx, "sqlite_master; DROP TABLE settings"); err != ErrInvalidTable {
		t.Errorf("expected ErrInvalidTable, got %v", err)
	}
}

func TestPing(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	if repo.DB() == nil {
		t.Error("DB() returned nil")
	}
}
