package bracket

import (
	"strconv"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// winnerIndex returns the position of the game's winner, or -1 when the
// game is undetermined (tie, missing score, or invalid length).
func winnerIndex(g Game) int {
	switch len(g) {
	case 1:
		return 0
	case 2:
		a, b := g[0].Score, g[1].Score
		if a == nil || b == nil {
			return -1
		}
		if *a > *b {
			return 0
		}
		if *b > *a {
			return 1
		}
		return -1
	default:
		return -1
	}
}

// MatchWinner resolves a game. A bye always resolves to its team, score or
// not. A match resolves to the strictly higher score. The second result is
// false when the game is undetermined.
func MatchWinner(g Game) (Team, bool) {
	idx := winnerIndex(g)
	if idx < 0 {
		return Team{}, false
	}
	return g[idx], true
}

// IsRoundComplete reports whether every game in the round has a winner.
// An empty round is never complete.
func IsRoundComplete(r Round) bool {
	if len(r) == 0 {
		return false
	}
	for _, g := range r {
		if winnerIndex(g) < 0 {
			return false
		}
	}
	return true
}

// MatchWinnerAt resolves the game at (round, game). Out-of-range indices are
// undetermined rather than an error.
func MatchWinnerAt(t Tournament, round, game int) (Team, bool) {
	if round < 0 || round >= len(t) || game < 0 || game >= len(t[round]) {
		return Team{}, false
	}
	return MatchWinner(t[round][game])
}

// RoundCompleteAt is IsRoundComplete by index; out of range is false.
func RoundCompleteAt(t Tournament, round int) bool {
	if round < 0 || round >= len(t) {
		return false
	}
	return IsRoundComplete(t[round])
}

// FirstIncompleteRound returns the index of the first round that is not
// complete, or -1.
func FirstIncompleteRound(t Tournament) int {
	for i, r := range t {
		if !IsRoundComplete(r) {
			return i
		}
	}
	return -1
}

// ValidateRoundComplete returns a descriptive error for the first game in
// the round that has no winner. roundIndex is 0-based; messages are 1-based.
func ValidateRoundComplete(r Round, roundIndex int) error {
	for gameIndex, g := range r {
		if winnerIndex(g) >= 0 {
			continue
		}
		if err := gameError(g, roundIndex, gameIndex); err != nil {
			return err
		}
	}
	return nil
}

// gameError explains why an undetermined game has no winner.
func gameError(g Game, roundIndex, gameIndex int) error {
	rn, gn := roundIndex+1, gameIndex+1
	if len(g) != 2 {
		return errors.Sentinel(errors.ErrValidation, ErrInvalidGame,
			"Round %d, Game %d: Invalid game structure (%d teams)", rn, gn, len(g))
	}
	a, b := g[0], g[1]
	if a.Score == nil || b.Score == nil {
		return errors.Sentinel(errors.ErrConflict, ErrMissingScores,
			"Round %d, Game %d: Missing scores (%s vs %s)", rn, gn, a.Name, b.Name)
	}
	if *a.Score == *b.Score {
		return errors.Sentinel(errors.ErrConflict, ErrTiedScore,
			"Round %d, Game %d: Tied score (%s %s - %s %s). Use tie-breaker option.",
			rn, gn, a.Name, FormatScore(*a.Score), b.Name, FormatScore(*b.Score))
	}
	return nil
}

// Validate checks the bracket's structure: at least one round, a non-empty
// opening round, every game one or two teams, and every team named. Later
// rounds may be empty until advancement fills them.
func Validate(t Tournament) error {
	if len(t) == 0 {
		return errors.Sentinel(errors.ErrValidation, ErrEmptyTournament, "Tournament has no rounds")
	}
	for r, round := range t {
		if len(round) == 0 && r == 0 {
			return errors.Sentinel(errors.ErrValidation, ErrInvalidGame, "Round %d has no games", r+1)
		}
		for g, game := range round {
			if len(game) < 1 || len(game) > 2 {
				return errors.Sentinel(errors.ErrValidation, ErrInvalidGame,
					"Round %d, Game %d: Invalid game structure (%d teams)", r+1, g+1, len(game))
			}
			for i, team := range game {
				if team.Name == "" {
					return errors.Sentinel(errors.ErrValidation, ErrInvalidGame,
						"Round %d, Game %d: Team %d has no name", r+1, g+1, i+1)
				}
			}
		}
	}
	return nil
}

// FormatScore renders a score without a trailing ".0" for whole numbers.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
