package bracket

import (
	"math"
	"slices"
	"strings"
)

// MatchResult is the outcome of a resolved game.
type MatchResult struct {
	Winner      Team     `json:"winner"`
	Loser       *Team    `json:"loser"`
	WinnerScore *float64 `json:"winner_score,omitempty"`
	LoserScore  *float64 `json:"loser_score,omitempty"`
	IsBye       bool     `json:"is_bye"`
}

// MatchEntry is one round of a team's history.
type MatchEntry struct {
	RoundIndex    int      `json:"round_index"`
	RoundLabel    string   `json:"round_label"`
	Opponent      *Team    `json:"opponent"`
	Won           bool     `json:"won"`
	Score         *float64 `json:"score,omitempty"`
	OpponentScore *float64 `json:"opponent_score,omitempty"`
	IsBye         bool     `json:"is_bye"`
}

// TeamHistory tracks one team through the bracket. FinalPlacement is 1 for
// the champion, 2 for the runner-up and 0 otherwise.
type TeamHistory struct {
	Team           Team         `json:"team"`
	Matches        []MatchEntry `json:"matches"`
	FinalPlacement int          `json:"final_placement,omitempty"`
	Wins           int          `json:"wins"`
	Losses         int          `json:"losses"`
}

// RoundReport summarizes one round.
type RoundReport struct {
	RoundIndex     int           `json:"round_index"`
	RoundLabel     string        `json:"round_label"`
	IsComplete     bool          `json:"is_complete"`
	Matches        []MatchResult `json:"matches"`
	AdvancingTeams []Team        `json:"advancing_teams"`
}

// HighScore is the single best score seen and where it happened.
type HighScore struct {
	Team  Team    `json:"team"`
	Score float64 `json:"score"`
	Round int     `json:"round"`
}

// Statistics aggregates a whole bracket.
type Statistics struct {
	ParticipantCount     int        `json:"participant_count"`
	TotalRounds          int        `json:"total_rounds"`
	ByeCount             int        `json:"bye_count"`
	AverageScore         *float64   `json:"average_score,omitempty"`
	HighestScore         *HighScore `json:"highest_score,omitempty"`
	CompletionPercentage int        `json:"completion_percentage"`
}

// Report is the full derived view of a bracket.
type Report struct {
	TotalRounds      int           `json:"total_rounds"`
	TotalMatches     int           `json:"total_matches"`
	CompletedMatches int           `json:"completed_matches"`
	RemainingMatches int           `json:"remaining_matches"`
	CurrentRound     int           `json:"current_round"`
	Champion         *Team         `json:"champion,omitempty"`
	Finalists        []Team        `json:"finalists,omitempty"`
	AllResults       []RoundReport `json:"all_results"`
	Statistics       *Statistics   `json:"statistics,omitempty"`
}

// AdvancingTeams returns the winner of every resolved game in order.
func AdvancingTeams(r Round) []Team {
	teams := []Team{}
	for _, g := range r {
		if w, ok := MatchWinner(g); ok {
			teams = append(teams, w)
		}
	}
	return teams
}

// AdvancingTeamsLatest returns the advancing teams of the latest complete
// round, or nil when no round is complete.
func AdvancingTeamsLatest(t Tournament) []Team {
	for i := len(t) - 1; i >= 0; i-- {
		if IsRoundComplete(t[i]) {
			return AdvancingTeams(t[i])
		}
	}
	return nil
}

// RoundResult returns the game's result, or nil when it is unresolved.
func RoundResult(g Game) *MatchResult {
	idx := winnerIndex(g)
	if idx < 0 {
		return nil
	}
	if g.IsBye() {
		return &MatchResult{Winner: g[0], WinnerScore: g[0].Score, IsBye: true}
	}
	winner, loser := g[idx], g[1-idx]
	return &MatchResult{
		Winner:      winner,
		Loser:       &loser,
		WinnerScore: winner.Score,
		LoserScore:  loser.Score,
	}
}

// RoundResults returns the results of every resolved game in order.
func RoundResults(r Round) []MatchResult {
	results := []MatchResult{}
	for _, g := range r {
		if res := RoundResult(g); res != nil {
			results = append(results, *res)
		}
	}
	return results
}

// CountTotalMatches counts games, excluding the champion marker.
func CountTotalMatches(t Tournament, m ChampionMarker) int {
	total := 0
	for r, round := range t {
		for g := range round {
			if !m.isMarker(t, r, g) {
				total++
			}
		}
	}
	return total
}

// CountCompletedMatches counts resolved games, excluding the champion marker.
func CountCompletedMatches(t Tournament, m ChampionMarker) int {
	done := 0
	for r, round := range t {
		for g, game := range round {
			if !m.isMarker(t, r, g) && winnerIndex(game) >= 0 {
				done++
			}
		}
	}
	return done
}

// CountByes counts single-team games, excluding the champion marker.
func CountByes(t Tournament, m ChampionMarker) int {
	byes := 0
	for r, round := range t {
		for g, game := range round {
			if game.IsBye() && !m.isMarker(t, r, g) {
				byes++
			}
		}
	}
	return byes
}

// Reporter derives read-only views of a bracket.
type Reporter struct {
	RoundLabels []string
	Marker      ChampionMarker
}

// NewReporter takes labels and marker from cfg.
func NewReporter(cfg Config) Reporter {
	return Reporter{RoundLabels: slices.Clone(cfg.RoundLabels), Marker: cfg.ChampionMarker}
}

// TeamHistory walks every round looking for teamID. It returns nil when the
// team never appears.
func (rp Reporter) TeamHistory(t Tournament, teamID string) *TeamHistory {
	if teamID == "" {
		return nil
	}

	var (
		found bool
		h     = TeamHistory{Matches: []MatchEntry{}}
	)
	for r, round := range t {
		for g, game := range round {
			pos := slices.IndexFunc(game, func(tm Team) bool { return tm.ID == teamID })
			if pos < 0 {
				continue
			}
			found = true
			self := game[pos]
			h.Team = self

			if rp.Marker.isMarker(t, r, g) {
				break
			}

			entry := MatchEntry{RoundIndex: r, RoundLabel: roundLabel(rp.RoundLabels, r), Score: self.Score}
			switch len(game) {
			case 1:
				entry.Won = true
				entry.IsBye = true
				h.Matches = append(h.Matches, entry)
				h.Wins++
			case 2:
				idx := winnerIndex(game)
				if idx < 0 {
					break
				}
				opp := game[1-pos]
				entry.Opponent = &opp
				entry.OpponentScore = opp.Score
				entry.Won = game[idx].ID == teamID
				h.Matches = append(h.Matches, entry)
				if entry.Won {
					h.Wins++
				} else {
					h.Losses++
				}
			}
			break
		}
	}
	if !found {
		return nil
	}

	if champ := championOf(t); champ != nil && champ.ID == teamID {
		h.FinalPlacement = 1
	} else if finals := finalsGame(t); finals != nil {
		inFinals := slices.ContainsFunc(finals, func(tm Team) bool { return tm.ID == teamID })
		if w, ok := MatchWinner(finals); inFinals && ok && w.ID != teamID {
			h.FinalPlacement = 2
		}
	}
	return &h
}

// championOf returns the team in a terminal one-team round.
func championOf(t Tournament) *Team {
	if len(t) == 0 {
		return nil
	}
	last := t[len(t)-1]
	if len(last) == 1 && len(last[0]) == 1 {
		champ := last[0][0]
		return &champ
	}
	return nil
}

// finalsGame returns the second-to-last round's game when that round is a
// single two-team match.
func finalsGame(t Tournament) Game {
	if len(t) < 2 {
		return nil
	}
	finals := t[len(t)-2]
	if len(finals) == 1 && len(finals[0]) == 2 {
		return finals[0]
	}
	return nil
}

// Statistics aggregates participants, byes, scores and completion.
func (rp Reporter) Statistics(t Tournament) Statistics {
	total := CountTotalMatches(t, rp.Marker)
	done := CountCompletedMatches(t, rp.Marker)

	st := Statistics{
		TotalRounds: len(t),
		ByeCount:    CountByes(t, rp.Marker),
	}

	if len(t) > 0 {
		seen := map[string]struct{}{}
		for _, g := range t[0] {
			for _, tm := range g {
				if tm.ID != "" && tm.Name != "" && !strings.Contains(tm.Name, "TBD") {
					seen[tm.ID] = struct{}{}
				}
			}
		}
		st.ParticipantCount = len(seen)
	}

	var sum float64
	var n int
	for r, round := range t {
		for _, g := range round {
			for _, tm := range g {
				if tm.Score == nil {
					continue
				}
				sum += *tm.Score
				n++
				if st.HighestScore == nil || *tm.Score > st.HighestScore.Score {
					st.HighestScore = &HighScore{Team: tm, Score: *tm.Score, Round: r}
				}
			}
		}
	}
	if n > 0 {
		st.AverageScore = Score(sum / float64(n))
	}
	if total > 0 {
		st.CompletionPercentage = int(math.Round(float64(done) / float64(total) * 100))
	}
	return st
}

// RoundReport summarizes round i of t.
func (rp Reporter) RoundReport(t Tournament, i int) RoundReport {
	round := t[i]
	matches := RoundResults(round)
	return RoundReport{
		RoundIndex:     i,
		RoundLabel:     roundLabel(rp.RoundLabels, i),
		IsComplete:     len(round) > 0 && len(matches) == len(round),
		Matches:        matches,
		AdvancingTeams: AdvancingTeams(round),
	}
}

// Report builds the full report. CurrentRound is the index just past the
// leading run of complete rounds, so a finished bracket reports len(t). Generated
// placeholders are never reported as champion or finalists.
func (rp Reporter) Report(t Tournament, includeStats bool) Report {
	total := CountTotalMatches(t, rp.Marker)
	done := CountCompletedMatches(t, rp.Marker)

	rep := Report{
		TotalRounds:      len(t),
		TotalMatches:     total,
		CompletedMatches: done,
		RemainingMatches: total - done,
		AllResults:       make([]RoundReport, 0, len(t)),
	}
	if champ := championOf(t); champ != nil && !IsPlaceholder(*champ) {
		rep.Champion = champ
	}

	current := -1
	for i := range t {
		rr := rp.RoundReport(t, i)
		if !rr.IsComplete && current < 0 {
			current = i
		}
		rep.AllResults = append(rep.AllResults, rr)
	}
	if current < 0 {
		current = len(t)
	}
	rep.CurrentRound = current

	if finals := finalsGame(t); finals != nil && !slices.ContainsFunc(finals, IsPlaceholder) {
		rep.Finalists = slices.Clone([]Team(finals))
	}
	if includeStats {
		st := rp.Statistics(t)
		rep.Statistics = &st
	}
	return rep
}

// TeamHistoryFor is Reporter{RoundLabels: labels}.TeamHistory(t, teamID).
func TeamHistoryFor(t Tournament, teamID string, labels ...string) *TeamHistory {
	return Reporter{RoundLabels: labels}.TeamHistory(t, teamID)
}

// BuildStatistics uses the default champion marker.
func BuildStatistics(t Tournament) Statistics {
	return Reporter{}.Statistics(t)
}

// BuildReport uses the default champion marker.
func BuildReport(t Tournament, labels []string, includeStats bool) Report {
	return Reporter{RoundLabels: labels}.Report(t, includeStats)
}
