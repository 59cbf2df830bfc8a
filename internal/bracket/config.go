package bracket

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// ChampionMarker decides when a lone one-team game in the last round is a
// display marker for the champion rather than a bye.
type ChampionMarker int

const (
	// MarkerMultiRound treats the terminal one-team round as a marker only
	// when the bracket has more than one round.
	MarkerMultiRound ChampionMarker = iota
	// MarkerAlways never counts the terminal one-team round as a bye or match.
	MarkerAlways
)

// ParseChampionMarker maps "multi-round" (or "") and "always".
func ParseChampionMarker(name string) (ChampionMarker, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "multi-round":
		return MarkerMultiRound, nil
	case "always":
		return MarkerAlways, nil
	default:
		return 0, errors.InvalidInputf("unknown champion marker: %s", name)
	}
}

func (m ChampionMarker) String() string {
	if m == MarkerAlways {
		return "always"
	}
	return "multi-round"
}

// isMarker reports whether game g of round r is the champion display row.
func (m ChampionMarker) isMarker(t Tournament, r, g int) bool {
	if r != len(t)-1 {
		return false
	}
	round := t[r]
	if len(round) != 1 || len(round[g]) != 1 {
		return false
	}
	return m == MarkerAlways || len(t) > 1
}

// Config is the engine's immutable configuration. Build it once and pass it
// to NewEngine; per-call options start from its defaults.
type Config struct {
	TieBreaker     TieBreaker
	PreserveScores bool
	CreateRounds   bool
	// StopAtRound limits auto-generation; nil means no limit.
	StopAtRound *int
	RoundLabels []string

	// Renderer hints. The engine itself ignores these.
	ByeLabel     string
	ByeClass     string
	ShowByeGames bool

	ChampionMarker ChampionMarker
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TieBreaker:   TieBreakError,
		ByeLabel:     "BYE",
		ByeClass:     "bye",
		ShowByeGames: true,
	}
}

// Option adjusts a Config.
type Option func(*Config)

func WithTieBreaker(tb TieBreaker) Option {
	return func(c *Config) { c.TieBreaker = tb }
}

func WithPreserveScores(v bool) Option {
	return func(c *Config) { c.PreserveScores = v }
}

func WithCreateRounds(v bool) Option {
	return func(c *Config) { c.CreateRounds = v }
}

func WithStopAtRound(round int) Option {
	return func(c *Config) { c.StopAtRound = &round }
}

func WithRoundLabels(labels ...string) Option {
	return func(c *Config) { c.RoundLabels = slices.Clone(labels) }
}

func WithByeDisplay(label, class string, show bool) Option {
	return func(c *Config) {
		c.ByeLabel = label
		c.ByeClass = class
		c.ShowByeGames = show
	}
}

func WithChampionMarker(m ChampionMarker) Option {
	return func(c *Config) { c.ChampionMarker = m }
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c.clone()
}

func (c Config) clone() Config {
	c.RoundLabels = slices.Clone(c.RoundLabels)
	if c.StopAtRound != nil {
		v := *c.StopAtRound
		c.StopAtRound = &v
	}
	return c
}

// RoundLabel returns the configured label for round i, or "Round i+1".
func (c Config) RoundLabel(i int) string {
	return roundLabel(c.RoundLabels, i)
}

func roundLabel(labels []string, i int) string {
	if i >= 0 && i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("Round %d", i+1)
}

// AdvanceOptions are the per-call knobs of Engine.Advance.
type AdvanceOptions struct {
	TieBreaker     TieBreaker
	PreserveScores bool
	CreateRounds   bool
}

// AdvanceOptions returns the configured advancement defaults.
func (c Config) AdvanceOptions() AdvanceOptions {
	return AdvanceOptions{
		TieBreaker:     c.TieBreaker,
		PreserveScores: c.PreserveScores,
		CreateRounds:   c.CreateRounds,
	}
}

// AutoOptions are the per-call knobs of Engine.AutoAdvance.
type AutoOptions struct {
	AdvanceOptions
	// StopAtRound stops the loop once it reaches this round index.
	StopAtRound *int
	// OnRoundGenerated is called after each successful advancement, in
	// addition to the engine's observer.
	OnRoundGenerated func(roundIndex int, round Round)
}

// AutoOptions returns the configured auto-generation defaults.
func (c Config) AutoOptions() AutoOptions {
	c = c.clone()
	return AutoOptions{
		AdvanceOptions: c.AdvanceOptions(),
		StopAtRound:    c.StopAtRound,
	}
}
