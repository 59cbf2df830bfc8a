package bracket

import (
	"math"

	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/logger"
)

// FirstIncomplete asks Advance to pick the first round that is not complete.
const FirstIncomplete = -1

// Engine runs mutations over a caller-owned Tournament and reports them to
// its Observer. It holds no tournament state of its own.
type Engine struct {
	cfg      Config
	log      logger.Logger
	observer Observer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithLogger(l logger.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

func WithObserver(o Observer) EngineOption {
	return func(e *Engine) { e.observer = o }
}

// NewEngine creates an engine with a private copy of cfg.
func NewEngine(cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:      cfg.clone(),
		log:      logger.Discard(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.observer == nil {
		e.observer = NopObserver{}
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg.clone()
}

// Reporter returns a reporter using the engine's labels and marker.
func (e *Engine) Reporter() Reporter {
	return NewReporter(e.cfg)
}

// UpdateScore sets one team's score in place. Notifies score-updated, then
// round-completed if this score completed the round.
func (e *Engine) UpdateScore(t Tournament, round, game, team int, score float64) error {
	if round < 0 || round >= len(t) {
		return invalidRoundIndex(round)
	}
	if game < 0 || game >= len(t[round]) {
		return invalidGameIndex(round, game)
	}
	if team < 0 || team >= len(t[round][game]) {
		return invalidTeamIndex(round, game, team)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return errors.InvalidInputf("Invalid score: %v", score)
	}

	wasComplete := IsRoundComplete(t[round])
	t[round][game][team].Score = Score(score)

	e.observer.OnScoreUpdate(round, game, team, score)
	if !wasComplete && IsRoundComplete(t[round]) {
		e.observer.OnRoundComplete(round)
	}
	return nil
}

// CollectWinners returns one winner per game in game order. Ties go through
// tb; undetermined games that are not ties are errors.
func CollectWinners(r Round, roundIndex int, tb TieBreaker) ([]Team, error) {
	winners := make([]Team, 0, len(r))
	for gameIndex, g := range r {
		if idx := winnerIndex(g); idx >= 0 {
			winners = append(winners, g[idx])
			continue
		}
		if len(g) == 2 && g[0].Score != nil && g[1].Score != nil && *g[0].Score == *g[1].Score {
			w, err := tb.Break(g[0], g[1])
			if err != nil {
				return nil, err
			}
			winners = append(winners, w)
			continue
		}
		return nil, gameError(g, roundIndex, gameIndex)
	}
	return winners, nil
}

// NextRound pairs winners two at a time in order. An odd count gives the
// last winner a bye; a single winner yields the champion round.
func NextRound(winners []Team, preserveScores bool) Round {
	next := make(Round, 0, (len(winners)+1)/2)
	for i := 0; i < len(winners); i += 2 {
		if i+1 < len(winners) {
			next = append(next, Game{winners[i].promote(preserveScores), winners[i+1].promote(preserveScores)})
		} else {
			next = append(next, Game{winners[i].promote(preserveScores)})
		}
	}
	return next
}

// Advance builds the round after roundIndex from its winners and stores it
// at roundIndex+1, replacing whatever was there. Only that round changes.
// Pass FirstIncomplete to pick the first round that is not complete.
func (e *Engine) Advance(t *Tournament, roundIndex int, opts AdvanceOptions) (Round, error) {
	if roundIndex == FirstIncomplete {
		roundIndex = FirstIncompleteRound(*t)
		if roundIndex < 0 {
			return nil, errors.Sentinel(errors.ErrConflict, ErrNoIncompleteRound, "No incomplete rounds found")
		}
	}
	if roundIndex < 0 || roundIndex >= len(*t) {
		return nil, invalidRoundIndex(roundIndex)
	}

	round := (*t)[roundIndex]
	if opts.TieBreaker.IsError() {
		if err := ValidateRoundComplete(round, roundIndex); err != nil {
			return nil, err
		}
	}

	winners, err := CollectWinners(round, roundIndex, opts.TieBreaker)
	if err != nil {
		return nil, err
	}
	next := NextRound(winners, opts.PreserveScores)

	target := roundIndex + 1
	switch {
	case target < len(*t):
		(*t)[target] = next
	case opts.CreateRounds:
		*t = append(*t, next)
	default:
		return nil, errors.Sentinel(errors.ErrConflict, ErrRoundMissing,
			"Round %d does not exist. Enable create rounds to create it.", target+1)
	}

	e.log.Debug("advanced round", "round", roundIndex, "winners", len(winners), "next_games", len(next))
	e.observer.OnRoundComplete(roundIndex)
	e.observer.OnRoundGenerated(target, next)
	return next, nil
}

// AdvanceDefault is Advance with the engine's configured options.
func (e *Engine) AdvanceDefault(t *Tournament, roundIndex int) (Round, error) {
	return e.Advance(t, roundIndex, e.cfg.AdvanceOptions())
}

// StopReason says why AutoAdvance stopped.
type StopReason string

const (
	StopIncompleteRound StopReason = "incomplete_round"
	StopAtLimit         StopReason = "stop_at_round"
	StopLastRound       StopReason = "last_round"
	StopFailed          StopReason = "advance_failed"
)

// AutoResult summarizes an AutoAdvance run.
type AutoResult struct {
	Advanced  int        `json:"advanced"`
	StoppedAt int        `json:"stopped_at"`
	Reason    StopReason `json:"reason"`
	// Failure is the advancement error that ended the run, if any. It is
	// logged, never returned.
	Failure error `json:"-"`
}

// AutoAdvance advances round after round, always creating missing rounds,
// until it reaches an incomplete round, the stop limit, or the last round.
// A round whose successor already holds exactly its winners is skipped so
// scores entered there survive. An advancement failure is logged and ends
// the run.
func (e *Engine) AutoAdvance(t *Tournament, opts AutoOptions) AutoResult {
	adv := opts.AdvanceOptions
	adv.CreateRounds = true

	res := AutoResult{}
	current := 0
	for current < len(*t) {
		res.StoppedAt = current
		if !IsRoundComplete((*t)[current]) {
			res.Reason = StopIncompleteRound
			return res
		}
		if opts.StopAtRound != nil && current >= *opts.StopAtRound {
			res.Reason = StopAtLimit
			return res
		}
		if current == len(*t)-1 {
			res.Reason = StopLastRound
			return res
		}

		if alreadyAdvanced(*t, current) {
			current++
			continue
		}

		next, err := e.Advance(t, current, adv)
		if err != nil {
			e.log.Warn("auto-generation stopped", "round", current, "error", err)
			res.Reason = StopFailed
			res.Failure = err
			return res
		}
		res.Advanced++
		if opts.OnRoundGenerated != nil {
			opts.OnRoundGenerated(current+1, next)
		}
		current++
	}
	res.StoppedAt = current
	res.Reason = StopLastRound
	return res
}

// AutoAdvanceDefault is AutoAdvance with the engine's configured options.
func (e *Engine) AutoAdvanceDefault(t *Tournament) AutoResult {
	return e.AutoAdvance(t, e.cfg.AutoOptions())
}

// alreadyAdvanced reports whether round r+1 already pairs round r's winners
// in bracket order.
func alreadyAdvanced(t Tournament, r int) bool {
	if r+1 >= len(t) {
		return false
	}
	winners := AdvancingTeams(t[r])
	if len(winners) != len(t[r]) {
		return false
	}
	want := NextRound(winners, false)
	got := t[r+1]
	if len(want) != len(got) {
		return false
	}
	for g := range want {
		if len(want[g]) != len(got[g]) {
			return false
		}
		for i := range want[g] {
			if want[g][i].ID != got[g][i].ID || want[g][i].Name != got[g][i].Name {
				return false
			}
		}
	}
	return true
}
