package services

import (
	"context"
	"testing"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/testutil"
)

func lockCount(s *TournamentService) int {
	n := 0
	s.locks.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestTournamentService_DeleteReleasesLock(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	settings := NewSettingsService(logger.Discard(), repo, bracket.DefaultConfig())
	svc := NewTournamentService(logger.Discard(), repo, settings)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, CreateTournament{ID: "spring", Name: "Spring", Teams: testutil.Teams(4)}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		if _, err := svc.UpdateScore(ctx, "spring", 0, 0, 0, 5); err != nil {
			t.Fatalf("UpdateScore %d failed: %v", i, err)
		}
		if lockCount(svc) != 1 {
			t.Fatalf("expected one lock entry, got %d", lockCount(svc))
		}
		if err := svc.Delete(ctx, "spring"); err != nil {
			t.Fatalf("Delete %d failed: %v", i, err)
		}
		if n := lockCount(svc); n != 0 {
			t.Errorf("expected lock entry dropped after delete, got %d", n)
		}
	}

	if err := svc.Delete(ctx, "missing"); err == nil {
		t.Error("expected not found deleting a missing tournament")
	}
	if n := lockCount(svc); n != 0 {
		t.Errorf("expected no lock entry for a missing tournament, got %d", n)
	}
}
