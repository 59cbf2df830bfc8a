package export

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/errors"
)

func scoredBracket() bracket.Tournament {
	return bracket.Tournament{
		{
			{{Name: "Rockets", ID: "r", Seed: 1, Score: bracket.Score(21)}, {Name: "Bolts", ID: "b", Seed: 4, Score: bracket.Score(15)}},
			{{Name: "Gliders", ID: "g", Seed: 2, Score: bracket.Score(10)}, {Name: "Comets", ID: "c", Seed: 3, Score: bracket.Score(12)}},
		},
		{
			{{Name: "Rockets", ID: "r", Seed: 1, Score: bracket.Score(30)}, {Name: "Comets", ID: "c", Seed: 3, Score: bracket.Score(20)}},
		},
		{
			{{Name: "Rockets", ID: "r", Seed: 1}},
		},
	}
}

func TestWriteXLSX(t *testing.T) {
	rp := bracket.Reporter{RoundLabels: []string{"Semifinal", "Final", "Champion"}}
	rep := rp.Report(scoredBracket(), true)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, "Spring Derby", rep); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Semifinal", "Final", "Champion"}
	if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	champion, err := f.GetCellValue("Summary", "B6")
	if err != nil || champion != "Rockets" {
		t.Errorf("champion cell = %q, %v", champion, err)
	}

	rows, err := f.GetRows("Semifinal")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 matches, got %d rows", len(rows))
	}
	if rows[2][1] != "Comets" || rows[2][4] != "Gliders" {
		t.Errorf("unexpected second match row %v", rows[2])
	}
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Summary": true}

	tests := []struct {
		label string
		index int
		want  string
	}{
		{"Quarter/Final", 0, "Quarter-Final"},
		{"", 1, "Round 2"},
		{"Summary", 2, "Summary (2)"},
		{"A very long round label that will not fit", 3, "A very long round label that wi"},
	}
	for _, tt := range tests {
		if got := sheetName(tt.label, tt.index, used); got != tt.want {
			t.Errorf("sheetName(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestRoundAverages(t *testing.T) {
	got := RoundAverages(scoredBracket(), []string{"Semifinal"})
	want := []RoundAverage{
		{Label: "Semifinal", Average: 14.5, Scores: 4},
		{Label: "Round 2", Average: 25, Scores: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("averages mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteScoreChart(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScoreChart(&buf, "Spring Derby", scoredBracket(), nil); err != nil {
		t.Fatalf("WriteScoreChart failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}

func TestWriteScoreChart_NoScores(t *testing.T) {
	empty := bracket.Tournament{{{{Name: "A"}, {Name: "B"}}}}
	err := WriteScoreChart(&bytes.Buffer{}, "Empty", empty, nil)
	if !errors.IsKind(err, errors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
