package bracket

import (
	stderrors "errors"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// Sentinel causes carried by the engine's errors. Match them with errors.Is;
// the returned error text carries the round, game, team and score context.
var (
	ErrTooFewTeams       = stderrors.New("tournament must have at least 2 teams")
	ErrInvalidGame       = stderrors.New("invalid game structure")
	ErrMissingScores     = stderrors.New("missing scores")
	ErrTiedScore         = stderrors.New("tied score")
	ErrNoIncompleteRound = stderrors.New("no incomplete rounds found")
	ErrRoundMissing      = stderrors.New("round does not exist")
	ErrNoTieBreakFunc    = stderrors.New("tie-breaker function is required")
	ErrUnknownStrategy   = stderrors.New("unknown strategy")
	ErrIndexOutOfRange   = stderrors.New("index out of range")
	ErrNotImplemented    = stderrors.New("not implemented")
	ErrEmptyTournament   = stderrors.New("tournament has no rounds")
)

func invalidRoundIndex(round int) error {
	return errors.Sentinel(errors.ErrInvalidInput, ErrIndexOutOfRange, "Invalid round index: %d", round)
}

func invalidGameIndex(round, game int) error {
	return errors.Sentinel(errors.ErrInvalidInput, ErrIndexOutOfRange, "Invalid game index: %d in round %d", game, round)
}

func invalidTeamIndex(round, game, team int) error {
	return errors.Sentinel(errors.ErrInvalidInput, ErrIndexOutOfRange, "Invalid team index: %d in round %d, game %d", team, round, game)
}
