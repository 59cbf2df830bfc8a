package bracket

import (
	"strings"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// TieBreakFunc picks the winner of a tied match.
type TieBreakFunc func(a, b Team) Team

type tieBreakKind int

const (
	tieBreakError tieBreakKind = iota
	tieBreakHigherSeed
	tieBreakLowerSeed
	tieBreakCustom
)

// TieBreaker resolves tied matches when collecting winners. The zero value
// is TieBreakError.
type TieBreaker struct {
	kind tieBreakKind
	fn   TieBreakFunc
}

var (
	// TieBreakError refuses to resolve ties; advancing a round with a tie fails.
	TieBreakError = TieBreaker{kind: tieBreakError}
	// HigherSeed advances the better-ranked (numerically lower) seed.
	HigherSeed = TieBreaker{kind: tieBreakHigherSeed}
	// LowerSeed advances the numerically higher seed.
	LowerSeed = TieBreaker{kind: tieBreakLowerSeed}
)

// Custom returns a tie-breaker that delegates to fn.
func Custom(fn TieBreakFunc) TieBreaker {
	return TieBreaker{kind: tieBreakCustom, fn: fn}
}

// ParseTieBreaker maps a strategy name to a TieBreaker. "callback" is
// rejected because a name cannot carry a function; build it with Custom.
func ParseTieBreaker(name string) (TieBreaker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return TieBreakError, nil
	case "higher-seed":
		return HigherSeed, nil
	case "lower-seed":
		return LowerSeed, nil
	case "callback":
		return TieBreaker{}, errors.Sentinel(errors.ErrInvalidInput, ErrNoTieBreakFunc,
			"Tie-breaker callback function is required when strategy is %q", "callback")
	default:
		return TieBreaker{}, errors.Sentinel(errors.ErrInvalidInput, ErrUnknownStrategy,
			"Unknown tie-breaker strategy: %s", name)
	}
}

func (tb TieBreaker) String() string {
	switch tb.kind {
	case tieBreakHigherSeed:
		return "higher-seed"
	case tieBreakLowerSeed:
		return "lower-seed"
	case tieBreakCustom:
		return "callback"
	default:
		return "error"
	}
}

// IsError reports whether ties are left unresolved.
func (tb TieBreaker) IsError() bool {
	return tb.kind == tieBreakError
}

// MarshalText implements encoding.TextMarshaler.
func (tb TieBreaker) MarshalText() ([]byte, error) {
	return []byte(tb.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseTieBreaker.
func (tb *TieBreaker) UnmarshalText(text []byte) error {
	parsed, err := ParseTieBreaker(string(text))
	if err != nil {
		return err
	}
	*tb = parsed
	return nil
}

// Break picks a winner between two tied teams. Equal seeds go to a.
func (tb TieBreaker) Break(a, b Team) (Team, error) {
	switch tb.kind {
	case tieBreakHigherSeed:
		if a.Seed <= b.Seed {
			return a, nil
		}
		return b, nil
	case tieBreakLowerSeed:
		if a.Seed >= b.Seed {
			return a, nil
		}
		return b, nil
	case tieBreakCustom:
		if tb.fn == nil {
			return Team{}, errors.Sentinel(errors.ErrInvalidInput, ErrNoTieBreakFunc,
				"Tie-breaker callback function is required when strategy is %q", "callback")
		}
		return tb.fn(a, b), nil
	default:
		return Team{}, errors.Sentinel(errors.ErrConflict, ErrTiedScore,
			"Tied score between %s and %s. Specify tie-breaker option.", a.Name, b.Name)
	}
}

// BreakTie is tb.Break(a, b).
func BreakTie(a, b Team, tb TieBreaker) (Team, error) {
	return tb.Break(a, b)
}
