package testutil

import (
	"fmt"
	"testing"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/repository"
)

// NewTestRepository creates a new in-memory repository for testing.
// Each call creates a fresh database with all migrations applied.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}

// Teams returns n teams named "Team 1".."Team n" with ids t1..tn and seeds 1..n.
func Teams(n int) []bracket.Team {
	teams := make([]bracket.Team, n)
	for i := range teams {
		teams[i] = bracket.Team{Name: fmt.Sprintf("Team %d", i+1), ID: fmt.Sprintf("t%d", i+1), Seed: i + 1}
	}
	return teams
}
