package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/internal/services"
	"github.com/abrezinsky/derbybracket/internal/testutil"
	"github.com/abrezinsky/derbybracket/pkg/webhook"
)

// recordingPublisher keeps every committed event it is handed
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, events []models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// scoreRound gives team 0 of every game the win
func scoreRound(t *testing.T, svc *services.TournamentService, id string, round int) {
	t.Helper()
	ctx := context.Background()
	tour, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	for g, game := range tour.Data[round] {
		if len(game) < 2 {
			continue
		}
		if _, err := svc.UpdateScore(ctx, id, round, g, 0, 10); err != nil {
			t.Fatalf("UpdateScore failed: %v", err)
		}
		if _, err := svc.UpdateScore(ctx, id, round, g, 1, 5); err != nil {
			t.Fatalf("UpdateScore failed: %v", err)
		}
	}
}

// ============================================================================
// Integration Test: Full Tournament Workflow
// ============================================================================

// TestIntegration_FullTournamentWorkflow plays an eight team bracket to a champion
func TestIntegration_FullTournamentWorkflow(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	log := logger.Discard()

	settingsSvc := services.NewSettingsService(log, repo, bracket.DefaultConfig())
	tournamentSvc := services.NewTournamentService(log, repo, settingsSvc)

	recorder := &recordingPublisher{}
	hook := webhook.NewMockClient()
	tournamentSvc.AddPublisher(recorder)
	tournamentSvc.AddPublisher(services.NewWebhookPublisher(log, hook, settingsSvc))

	if err := settingsSvc.SetWebhookURL(ctx, "http://scoreboard.local/hook"); err != nil {
		t.Fatalf("SetWebhookURL failed: %v", err)
	}

	// Step 1: Create the bracket
	tour, err := tournamentSvc.Create(ctx, services.CreateTournament{
		ID:          "spring",
		Name:        "Spring Derby",
		Teams:       testutil.Teams(8),
		RoundLabels: []string{"Quarterfinal", "Semifinal", "Final", "Champion"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(tour.Data) != 4 || len(tour.Data[0]) != 4 {
		t.Fatalf("expected 4 rounds with 4 opening games, got %d rounds", len(tour.Data))
	}

	// Step 2: Play each round and let auto-advance fill the next one
	for round := 0; round < 3; round++ {
		scoreRound(t, tournamentSvc, "spring", round)

		res, err := tournamentSvc.AutoAdvance(ctx, "spring", services.AutoAdvanceRequest{})
		if err != nil {
			t.Fatalf("AutoAdvance after round %d failed: %v", round, err)
		}
		if res.Error != "" {
			t.Fatalf("AutoAdvance after round %d reported %s", round, res.Error)
		}
		if len(res.Generated) != 1 || res.Generated[0] != round+1 {
			t.Errorf("after round %d expected round %d generated, got %v", round, round+1, res.Generated)
		}
	}

	// Step 3: Verify the champion and the report
	final, err := tournamentSvc.Get(ctx, "spring")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	finalWinner := final.Data[2][0][0]

	report, err := tournamentSvc.Report(ctx, "spring", true)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.Champion == nil || report.Champion.Name != finalWinner.Name {
		t.Errorf("expected champion %s, got %+v", finalWinner.Name, report.Champion)
	}
	if report.TotalMatches != 7 || report.CompletedMatches != 7 || report.RemainingMatches != 0 {
		t.Errorf("unexpected match counts %d/%d/%d", report.TotalMatches, report.CompletedMatches, report.RemainingMatches)
	}
	if report.Statistics == nil || report.Statistics.CompletionPercentage != 100 {
		t.Errorf("expected 100%% completion, got %+v", report.Statistics)
	}
	if report.AllResults[2].RoundLabel != "Final" {
		t.Errorf("expected custom round label, got %q", report.AllResults[2].RoundLabel)
	}

	history, err := tournamentSvc.TeamHistory(ctx, "spring", finalWinner.ID)
	if err != nil {
		t.Fatalf("TeamHistory failed: %v", err)
	}
	if history.FinalPlacement != 1 || history.Wins != 3 || history.Losses != 0 {
		t.Errorf("unexpected champion history %+v", history)
	}

	// Step 4: Every committed event reached the publishers and the event log
	if got := recorder.count(models.EventScoreUpdated); got != 14 {
		t.Errorf("expected 14 score events, got %d", got)
	}
	if got := recorder.count(models.EventRoundGenerated); got < 3 {
		t.Errorf("expected at least 3 round generated events, got %d", got)
	}

	logged, err := tournamentSvc.Events(ctx, "spring", 1000)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(logged) != len(recorder.events) {
		t.Errorf("event log has %d events, publisher saw %d", len(logged), len(recorder.events))
	}

	delivered := 0
	for _, n := range hook.Sent() {
		delivered += len(n.Events)
	}
	if delivered != len(recorder.events) {
		t.Errorf("webhook delivered %d events, publisher saw %d", delivered, len(recorder.events))
	}
}

// ============================================================================
// Integration Test: Settings Cascade
// ============================================================================

// TestIntegration_SettingsCascade checks that runtime settings change how
// the next operation behaves
func TestIntegration_SettingsCascade(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	log := logger.Discard()

	settingsSvc := services.NewSettingsService(log, repo, bracket.DefaultConfig())
	tournamentSvc := services.NewTournamentService(log, repo, settingsSvc)

	tour, err := tournamentSvc.Create(ctx, services.CreateTournament{
		ID:    "spring",
		Name:  "Spring Derby",
		Teams: testutil.Teams(4),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Tie the first game and decide the second
	for g, scores := range [][]float64{{7, 7}, {9, 4}} {
		for team, s := range scores {
			if _, err := tournamentSvc.UpdateScore(ctx, "spring", 0, g, team, s); err != nil {
				t.Fatalf("UpdateScore failed: %v", err)
			}
		}
	}

	round := 0
	if _, err := tournamentSvc.Advance(ctx, "spring", services.AdvanceRequest{Round: &round}); err == nil {
		t.Fatal("expected tied score error with the default tie-breaker")
	}

	preserve := true
	if err := settingsSvc.UpdateSettings(ctx, services.Settings{TieBreaker: "higher-seed", PreserveScores: &preserve}); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	res, err := tournamentSvc.Advance(ctx, "spring", services.AdvanceRequest{Round: &round})
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	a, b := tour.Data[0][0][0], tour.Data[0][0][1]
	want := a
	if b.Seed < a.Seed {
		want = b
	}
	got := res.Generated[0][0]
	if got.Name != want.Name {
		t.Errorf("expected higher seed %s to advance, got %s", want.Name, got.Name)
	}
	if got.Score == nil || *got.Score != 7 {
		t.Errorf("expected preserved score 7, got %v", got.Score)
	}
}

// ============================================================================
// Integration Test: Concurrent Operations
// ============================================================================

// TestIntegration_ConcurrentTournaments scores several tournaments at once
func TestIntegration_ConcurrentTournaments(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	ctx := context.Background()
	log := logger.Discard()

	settingsSvc := services.NewSettingsService(log, repo, bracket.DefaultConfig())
	tournamentSvc := services.NewTournamentService(log, repo, settingsSvc)

	const numTournaments = 5
	for i := 0; i < numTournaments; i++ {
		_, err := tournamentSvc.Create(ctx, services.CreateTournament{
			ID:    fmt.Sprintf("heat-%d", i),
			Name:  fmt.Sprintf("Heat %d", i+1),
			Teams: testutil.Teams(4),
		})
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, numTournaments*4)

	for i := 0; i < numTournaments; i++ {
		for g := 0; g < 2; g++ {
			for team := 0; team < 2; team++ {
				wg.Add(1)
				go func(id string, g, team int) {
					defer wg.Done()
					score := float64(10 - team*5)
					if _, err := tournamentSvc.UpdateScore(ctx, id, 0, g, team, score); err != nil {
						errs <- fmt.Errorf("%s game %d team %d: %w", id, g, team, err)
					}
				}(fmt.Sprintf("heat-%d", i), g, team)
			}
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent score error: %v", err)
	}

	// No score was lost to a concurrent write
	for i := 0; i < numTournaments; i++ {
		status, err := tournamentSvc.RoundStatus(ctx, fmt.Sprintf("heat-%d", i), 0)
		if err != nil {
			t.Fatalf("RoundStatus failed: %v", err)
		}
		if !status.IsComplete {
			t.Errorf("heat-%d: expected round 0 complete", i)
		}
	}

	list, err := tournamentSvc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != numTournaments {
		t.Errorf("expected %d tournaments, got %d", numTournaments, len(list))
	}
}
