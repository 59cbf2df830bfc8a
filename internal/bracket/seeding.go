package bracket

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// ByeStrategy decides which teams receive first-round byes.
type ByeStrategy string

const (
	ByeTopSeeds ByeStrategy = "top-seeds"
	ByeRandom   ByeStrategy = "random"
	ByeCustom   ByeStrategy = "custom"
)

// ParseByeStrategy validates a strategy name. Empty means top-seeds.
func ParseByeStrategy(name string) (ByeStrategy, error) {
	switch s := ByeStrategy(strings.ToLower(strings.TrimSpace(name))); s {
	case "":
		return ByeTopSeeds, nil
	case ByeTopSeeds, ByeRandom, ByeCustom:
		return s, nil
	default:
		return "", errors.Sentinel(errors.ErrInvalidInput, ErrUnknownStrategy, "Unknown bye seeding strategy: %s", name)
	}
}

// ChampionID is the id of the terminal placeholder team.
const ChampionID = "champion"

// PlaceholderID is the id of the placeholder for slot in the given round.
func PlaceholderID(round, slot int) string {
	return fmt.Sprintf("winner-r%d-g%d", round, slot)
}

// IsPlaceholder reports whether the team is a generated future-round slot.
func IsPlaceholder(t Team) bool {
	return t.ID == ChampionID || strings.HasPrefix(t.ID, "winner-r")
}

// ByesNeeded is the number of byes that pad count up to a power of two.
func ByesNeeded(count int) (int, error) {
	if count < 2 {
		return 0, errors.Sentinel(errors.ErrInvalidInput, ErrTooFewTeams, "Tournament must have at least 2 teams")
	}
	return NextPowerOfTwo(count) - count, nil
}

type seedOptions struct {
	rng *rand.Rand
}

// SeedOption configures SeedWithByes.
type SeedOption func(*seedOptions)

// WithRand sets the source used by the random strategy.
func WithRand(r *rand.Rand) SeedOption {
	return func(o *seedOptions) {
		o.rng = r
	}
}

// SeedWithByes builds a bracket from a flat team list. Round 0 holds the
// real pairings followed by the bye games; every later round is filled with
// placeholder teams down to a final one-team champion round.
func SeedWithByes(teams []Team, strategy ByeStrategy, opts ...SeedOption) (Tournament, error) {
	byes, err := ByesNeeded(len(teams))
	if err != nil {
		return nil, err
	}

	o := seedOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	// A full field needs no byes, so every strategy pairs in seed order.
	if byes == 0 {
		return withPlaceholderRounds(Tournament{pairUp(bySeed(teams), nil)}), nil
	}

	var ordered []Team
	switch strategy {
	case ByeTopSeeds, "":
		ordered = bySeed(teams)
	case ByeRandom:
		ordered = slices.Clone(teams)
		shuffle := rand.Shuffle
		if o.rng != nil {
			shuffle = o.rng.Shuffle
		}
		shuffle(len(ordered), func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	case ByeCustom:
		return nil, errors.Sentinel(errors.ErrInvalidInput, ErrNotImplemented,
			"Custom bye strategy not implemented. Please manually create tournament structure with single-team games for byes.")
	default:
		return nil, errors.Sentinel(errors.ErrInvalidInput, ErrUnknownStrategy, "Unknown bye seeding strategy: %s", strategy)
	}

	for i := range ordered {
		ordered[i].Score = nil
	}

	return withPlaceholderRounds(Tournament{pairUp(ordered[byes:], ordered[:byes])}), nil
}

// bySeed returns an unscored copy of teams in ascending seed order.
func bySeed(teams []Team) []Team {
	ordered := slices.Clone(teams)
	slices.SortStableFunc(ordered, func(a, b Team) int { return cmp.Compare(a.Seed, b.Seed) })
	for i := range ordered {
		ordered[i].Score = nil
	}
	return ordered
}

// pairUp builds round 0: consecutive pairs of playing teams, then one
// single-team game per bye.
func pairUp(playing, byeTeams []Team) Round {
	first := make(Round, 0, len(playing)/2+len(byeTeams)+1)
	for i := 0; i < len(playing); i += 2 {
		if i+1 < len(playing) {
			first = append(first, Game{playing[i], playing[i+1]})
		} else {
			first = append(first, Game{playing[i]})
		}
	}
	for _, t := range byeTeams {
		first = append(first, Game{t})
	}
	return first
}

// withPlaceholderRounds appends placeholder rounds until one slot remains,
// then the champion round.
func withPlaceholderRounds(t Tournament) Tournament {
	slots := len(t[len(t)-1])
	for slots > 1 {
		r := len(t)
		next := make(Round, 0, (slots+1)/2)
		for i := 0; i < slots/2; i++ {
			next = append(next, Game{placeholder(r, i*2), placeholder(r, i*2+1)})
		}
		if slots%2 == 1 {
			next = append(next, Game{placeholder(r, slots-1)})
		}
		t = append(t, next)
		slots = len(next)
	}
	return append(t, Round{Game{{Name: "Champion", Seed: 1, ID: ChampionID}}})
}

func placeholder(round, slot int) Team {
	return Team{
		Name: fmt.Sprintf("Winner %d", slot+1),
		Seed: slot + 1,
		ID:   PlaceholderID(round, slot),
	}
}

// HasByes reports whether any round contains a single-team game.
func HasByes(t Tournament) bool {
	for _, r := range t {
		for _, g := range r {
			if g.IsBye() {
				return true
			}
		}
	}
	return false
}

// ByeTeams returns the teams holding byes in the round.
func ByeTeams(r Round) []Team {
	var teams []Team
	for _, g := range r {
		if g.IsBye() {
			teams = append(teams, g[0])
		}
	}
	return teams
}
