// Package bracket is the single-elimination rules engine: match resolution,
// round completeness, tie-breaking, bye seeding, round advancement and
// reporting over an in-memory Tournament value.
//
// Nothing in this package performs I/O or locking. The caller owns the
// Tournament and serializes mutation.
package bracket

import (
	"encoding/json"
	"fmt"
	"math/bits"
)

// Team is one entrant in a game. Seed is a 1-based rank where lower is
// stronger. A nil Score means the team has not been scored yet.
type Team struct {
	Name        string      `json:"name"`
	ID          string      `json:"id,omitempty"`
	Seed        int         `json:"seed"`
	DisplaySeed DisplaySeed `json:"display_seed,omitempty"`
	Score       *float64    `json:"score,omitempty"`
}

// HasScore reports whether the team has a recorded score.
func (t Team) HasScore() bool {
	return t.Score != nil
}

// ScoreValue returns the score, or 0 when unscored.
func (t Team) ScoreValue() float64 {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}

// SeedLabel is the seed shown to people: DisplaySeed when set, else Seed.
func (t Team) SeedLabel() string {
	if t.DisplaySeed != "" {
		return string(t.DisplaySeed)
	}
	return fmt.Sprintf("%d", t.Seed)
}

// promote copies a team into a freshly generated round.
func (t Team) promote(preserveScore bool) Team {
	out := t
	out.Score = nil
	if preserveScore && t.Score != nil {
		out.Score = Score(*t.Score)
	}
	return out
}

// Score returns a pointer to v, for building teams with a score.
func Score(v float64) *float64 {
	return &v
}

// DisplaySeed is the seed label a renderer shows. It decodes from either a
// JSON string or a JSON number.
type DisplaySeed string

// UnmarshalJSON implements json.Unmarshaler for DisplaySeed
func (d *DisplaySeed) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DisplaySeed(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DisplaySeed(n.String())
		return nil
	}

	return fmt.Errorf("display seed: cannot unmarshal %s", string(data))
}

// Game holds one team (a bye) or two teams (a match). Other lengths are
// structurally invalid.
type Game []Team

// IsBye reports whether the game is a single-team bye.
func (g Game) IsBye() bool {
	return len(g) == 1
}

// Round is an ordered list of games. Games 2k and 2k+1 feed game k of the
// next round.
type Round []Game

// Tournament is the full bracket, index 0 being the first round.
type Tournament []Round

// Clone returns a deep copy, scores included.
func (t Tournament) Clone() Tournament {
	if t == nil {
		return nil
	}
	out := make(Tournament, len(t))
	for r, round := range t {
		out[r] = round.Clone()
	}
	return out
}

// Clone returns a deep copy of the round.
func (r Round) Clone() Round {
	if r == nil {
		return nil
	}
	out := make(Round, len(r))
	for g, game := range r {
		cp := make(Game, len(game))
		for i, team := range game {
			cp[i] = team
			if team.Score != nil {
				cp[i].Score = Score(*team.Score)
			}
		}
		out[g] = cp
	}
	return out
}

// Teams returns every team in the round in game order.
func (r Round) Teams() []Team {
	var teams []Team
	for _, game := range r {
		teams = append(teams, game...)
	}
	return teams
}

// NextPowerOfTwo returns the smallest power of two >= n. n <= 1 gives 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
