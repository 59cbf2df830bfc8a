package bracket_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abrezinsky/derbybracket/internal/bracket"
)

// finishedFour is a completed four-team bracket: A beats B, D beats C,
// A beats D in the final.
func finishedFour() bracket.Tournament {
	return bracket.Tournament{
		{{scored("A", 1, 21), scored("B", 4, 10)}, {scored("C", 2, 7), scored("D", 3, 9)}},
		{{scored("A", 1, 15), scored("D", 3, 12)}},
		{{team("A", 1)}},
	}
}

func TestAdvancingTeams(t *testing.T) {
	round := bracket.Round{
		{scored("A", 1, 2), scored("B", 2, 1)},
		{scored("C", 3, 1), scored("D", 4, 1)},
		{team("E", 5)},
	}
	got := bracket.AdvancingTeams(round)
	var names []string
	for _, tm := range got {
		names = append(names, tm.Name)
	}
	if diff := cmp.Diff([]string{"A", "E"}, names); diff != "" {
		t.Errorf("advancing mismatch (-want +got):\n%s", diff)
	}

	if got := bracket.AdvancingTeams(bracket.Round{}); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAdvancingTeamsLatest(t *testing.T) {
	tour := finishedFour()
	tour[1][0][1].Score = bracket.Score(15) // final tied

	got := bracket.AdvancingTeamsLatest(tour)
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("expected champion round A, got %+v", got)
	}

	if got := bracket.AdvancingTeamsLatest(bracket.Tournament{{{team("A", 1), team("B", 2)}}}); got != nil {
		t.Errorf("expected nil with no complete round, got %+v", got)
	}
}

func TestRoundResult(t *testing.T) {
	bye := bracket.RoundResult(bracket.Game{scored("A", 1, 4)})
	if bye == nil || !bye.IsBye || bye.Loser != nil || *bye.WinnerScore != 4 {
		t.Errorf("unexpected bye result %+v", bye)
	}

	res := bracket.RoundResult(bracket.Game{scored("A", 1, 2), scored("B", 2, 5)})
	want := &bracket.MatchResult{
		Winner:      scored("B", 2, 5),
		Loser:       ptr(scored("A", 1, 2)),
		WinnerScore: bracket.Score(5),
		LoserScore:  bracket.Score(2),
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	if bracket.RoundResult(bracket.Game{scored("A", 1, 2), team("B", 2)}) != nil {
		t.Error("unresolved game must have no result")
	}
	if bracket.RoundResult(bracket.Game{}) != nil {
		t.Error("invalid game must have no result")
	}
}

func ptr(t bracket.Team) *bracket.Team {
	return &t
}

func TestCounts_ChampionMarker(t *testing.T) {
	tour := finishedFour()

	if got := bracket.CountTotalMatches(tour, bracket.MarkerMultiRound); got != 3 {
		t.Errorf("total = %d, want 3", got)
	}
	if got := bracket.CountCompletedMatches(tour, bracket.MarkerMultiRound); got != 3 {
		t.Errorf("completed = %d, want 3", got)
	}
	if got := bracket.CountByes(tour, bracket.MarkerMultiRound); got != 0 {
		t.Errorf("byes = %d, want 0", got)
	}

	single := bracket.Tournament{{{team("A", 1)}}}
	if got := bracket.CountByes(single, bracket.MarkerMultiRound); got != 1 {
		t.Errorf("single-round lone team should be a bye under multi-round, got %d", got)
	}
	if got := bracket.CountByes(single, bracket.MarkerAlways); got != 0 {
		t.Errorf("single-round lone team should be a marker under always, got %d", got)
	}
	if got := bracket.CountTotalMatches(single, bracket.MarkerAlways); got != 0 {
		t.Errorf("always marker leaves no matches, got %d", got)
	}
}

func TestParseChampionMarker(t *testing.T) {
	for in, want := range map[string]bracket.ChampionMarker{"": bracket.MarkerMultiRound, "multi-round": bracket.MarkerMultiRound, "ALWAYS": bracket.MarkerAlways} {
		got, err := bracket.ParseChampionMarker(in)
		if err != nil || got != want {
			t.Errorf("ParseChampionMarker(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := bracket.ParseChampionMarker("never"); err == nil {
		t.Error("expected error for unknown marker")
	}
}

func TestTeamHistory(t *testing.T) {
	tour := finishedFour()
	labels := []string{"Semifinal", "Final"}

	champ := bracket.TeamHistoryFor(tour, "a", labels...)
	if champ == nil {
		t.Fatal("expected history for a")
	}
	if champ.Wins != 2 || champ.Losses != 0 || champ.FinalPlacement != 1 {
		t.Errorf("unexpected champion history %+v", champ)
	}
	if len(champ.Matches) != 2 {
		t.Fatalf("champion display row must be skipped, got %d matches", len(champ.Matches))
	}
	if champ.Matches[0].RoundLabel != "Semifinal" || champ.Matches[1].RoundLabel != "Final" {
		t.Errorf("unexpected labels %q, %q", champ.Matches[0].RoundLabel, champ.Matches[1].RoundLabel)
	}
	if champ.Matches[1].Opponent == nil || champ.Matches[1].Opponent.Name != "D" || *champ.Matches[1].OpponentScore != 12 {
		t.Errorf("unexpected final entry %+v", champ.Matches[1])
	}

	runner := bracket.TeamHistoryFor(tour, "d")
	if runner.FinalPlacement != 2 || runner.Wins != 1 || runner.Losses != 1 {
		t.Errorf("unexpected runner-up history %+v", runner)
	}
	if runner.Matches[0].RoundLabel != "Round 1" {
		t.Errorf("expected default label, got %q", runner.Matches[0].RoundLabel)
	}

	out := bracket.TeamHistoryFor(tour, "b")
	if out.FinalPlacement != 0 || out.Losses != 1 || out.Wins != 0 {
		t.Errorf("unexpected first-round loser history %+v", out)
	}

	if bracket.TeamHistoryFor(tour, "zz") != nil {
		t.Error("unknown team must return nil")
	}
	if bracket.TeamHistoryFor(tour, "") != nil {
		t.Error("empty id must return nil")
	}
}

func TestTeamHistory_ByeAndPending(t *testing.T) {
	tour := bracket.Tournament{
		{{scored("A", 1, 3), scored("B", 2, 1)}, {team("C", 3)}},
		{{team("A", 1), team("C", 3)}},
		{{team("Champion", 1)}},
	}
	h := bracket.TeamHistoryFor(tour, "c")
	if h == nil {
		t.Fatal("expected history")
	}
	want := []bracket.MatchEntry{{RoundIndex: 0, RoundLabel: "Round 1", Won: true, IsBye: true}}
	if diff := cmp.Diff(want, h.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	if h.Wins != 1 || h.FinalPlacement != 0 {
		t.Errorf("unexpected history %+v", h)
	}
}

func TestStatistics(t *testing.T) {
	tour := bracket.Tournament{
		{
			{scored("A", 1, 10), scored("B", 2, 30)},
			{{Name: "TBD", ID: "tbd-1", Seed: 3}, {Name: "C", ID: "c", Seed: 4}},
			{{Name: "NoID", Seed: 5}},
		},
		{{scored("B", 2, 30), team("C", 4)}},
		{{team("Champion", 1)}},
	}
	tour[1][0][1].Score = bracket.Score(20)

	st := bracket.BuildStatistics(tour)

	if st.ParticipantCount != 3 {
		t.Errorf("participants = %d, want 3 (a, b, c)", st.ParticipantCount)
	}
	if st.TotalRounds != 3 || st.ByeCount != 1 {
		t.Errorf("unexpected rounds/byes %d/%d", st.TotalRounds, st.ByeCount)
	}
	if st.AverageScore == nil || *st.AverageScore != 22.5 {
		t.Errorf("average = %v, want 22.5", st.AverageScore)
	}
	if st.HighestScore == nil || st.HighestScore.Team.Name != "B" || st.HighestScore.Round != 0 {
		t.Errorf("highest score should be B's first 30 in round 0, got %+v", st.HighestScore)
	}
	// 4 matches counted; A/B, NoID bye and the round 1 match resolve.
	if st.CompletionPercentage != 75 {
		t.Errorf("completion = %d, want 75", st.CompletionPercentage)
	}

	empty := bracket.BuildStatistics(nil)
	if empty.CompletionPercentage != 0 || empty.AverageScore != nil || empty.HighestScore != nil {
		t.Errorf("unexpected empty statistics %+v", empty)
	}
}

func TestReport(t *testing.T) {
	rep := bracket.BuildReport(finishedFour(), []string{"Semis"}, true)

	if rep.TotalRounds != 3 || rep.TotalMatches != 3 || rep.CompletedMatches != 3 || rep.RemainingMatches != 0 {
		t.Errorf("unexpected counts %+v", rep)
	}
	if rep.CurrentRound != 3 {
		t.Errorf("current round = %d, want 3", rep.CurrentRound)
	}
	if rep.Champion == nil || rep.Champion.Name != "A" {
		t.Errorf("unexpected champion %+v", rep.Champion)
	}
	if len(rep.Finalists) != 2 || rep.Finalists[1].Name != "D" {
		t.Errorf("unexpected finalists %+v", rep.Finalists)
	}
	if rep.AllResults[0].RoundLabel != "Semis" || rep.AllResults[1].RoundLabel != "Round 2" {
		t.Errorf("unexpected labels %q/%q", rep.AllResults[0].RoundLabel, rep.AllResults[1].RoundLabel)
	}
	if rep.Statistics == nil || rep.Statistics.CompletionPercentage != 100 {
		t.Errorf("expected statistics at 100%%, got %+v", rep.Statistics)
	}
}

func TestReport_SeededBracketHasNoChampion(t *testing.T) {
	tour, err := bracket.SeedWithByes(makeTeams(4), bracket.ByeTopSeeds)
	if err != nil {
		t.Fatalf("SeedWithByes: %v", err)
	}
	rep := bracket.BuildReport(tour, nil, false)

	if rep.Champion != nil || rep.Finalists != nil {
		t.Errorf("placeholders must not be reported, got champion=%v finalists=%v", rep.Champion, rep.Finalists)
	}
	if rep.CurrentRound != 0 || rep.CompletedMatches != 0 || rep.TotalMatches != 3 {
		t.Errorf("unexpected progress %+v", rep)
	}
	if rep.Statistics != nil {
		t.Error("statistics must be omitted unless requested")
	}
}

func TestReport_CurrentRound(t *testing.T) {
	midway := finishedFour()
	midway[1] = bracket.Round{{team("A", 1), team("D", 3)}}

	tests := []struct {
		name string
		tour bracket.Tournament
		want int
	}{
		{"empty", nil, 0},
		{"semis played", midway, 1},
		{"finished", finishedFour(), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bracket.BuildReport(tt.tour, nil, false).CurrentRound; got != tt.want {
				t.Errorf("current round = %d, want %d", got, tt.want)
			}
		})
	}
}
