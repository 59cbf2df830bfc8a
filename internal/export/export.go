// Package export writes bracket reports as spreadsheet workbooks and charts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/errors"
)

// Content types of the generated documents
const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PNGContentType  = "image/png"
)

const summarySheet = "Summary"

var matchHeader = []interface{}{"Game", "Winner", "Winner Seed", "Winner Score", "Loser", "Loser Seed", "Loser Score", "Bye"}

// WriteXLSX writes a workbook with a summary sheet and one sheet per round.
func WriteXLSX(w io.Writer, title string, rep bracket.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return err
	}

	champion := ""
	if rep.Champion != nil {
		champion = rep.Champion.Name
	}
	summary := [][]interface{}{
		{"Tournament", title},
		{"Rounds", rep.TotalRounds},
		{"Matches", rep.TotalMatches},
		{"Completed", rep.CompletedMatches},
		{"Remaining", rep.RemainingMatches},
		{"Champion", champion},
	}
	if st := rep.Statistics; st != nil {
		summary = append(summary,
			[]interface{}{"Participants", st.ParticipantCount},
			[]interface{}{"Byes", st.ByeCount},
			[]interface{}{"Completion %", st.CompletionPercentage},
		)
		if st.AverageScore != nil {
			summary = append(summary, []interface{}{"Average Score", *st.AverageScore})
		}
		if hs := st.HighestScore; hs != nil {
			summary = append(summary, []interface{}{"Highest Score", hs.Score, hs.Team.Name, fmt.Sprintf("Round %d", hs.Round+1)})
		}
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	used := map[string]bool{summarySheet: true}
	for _, rr := range rep.AllResults {
		name := sheetName(rr.RoundLabel, rr.RoundIndex, used)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}

		rows := [][]interface{}{matchHeader}
		for i, m := range rr.Matches {
			row := []interface{}{i + 1, m.Winner.Name, m.Winner.SeedLabel(), optional(m.WinnerScore)}
			if m.Loser != nil {
				row = append(row, m.Loser.Name, m.Loser.SeedLabel(), optional(m.LoserScore))
			} else {
				row = append(row, "", "", "")
			}
			row = append(row, m.IsBye)
			rows = append(rows, row)
		}
		if err := writeRows(f, name, rows); err != nil {
			return err
		}
		if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// sheetName makes a unique, valid worksheet name from a round label.
func sheetName(label string, index int, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(label))
	if name == "" {
		name = fmt.Sprintf("Round %d", index+1)
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		r := []rune(base)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[name] = true
	return name
}

// RoundAverage is the mean score entered in one round
type RoundAverage struct {
	Label   string
	Average float64
	Scores  int
}

// RoundAverages computes the mean score of each round that has scores.
func RoundAverages(t bracket.Tournament, labels []string) []RoundAverage {
	cfg := bracket.NewConfig(bracket.WithRoundLabels(labels...))
	var out []RoundAverage
	for r, round := range t {
		var sum float64
		var n int
		for _, team := range round.Teams() {
			if team.Score != nil {
				sum += *team.Score
				n++
			}
		}
		if n > 0 {
			out = append(out, RoundAverage{Label: cfg.RoundLabel(r), Average: sum / float64(n), Scores: n})
		}
	}
	return out
}

// WriteScoreChart renders a bar chart of the average score per round as PNG.
func WriteScoreChart(w io.Writer, title string, t bracket.Tournament, labels []string) error {
	averages := RoundAverages(t, labels)
	if len(averages) == 0 {
		return errors.NotFound("No scores recorded yet")
	}

	top := 0.0
	bars := make([]chart.Value, len(averages))
	for i, a := range averages {
		bars[i] = chart.Value{
			Label: a.Label,
			Value: a.Average,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2b6cb0"),
				StrokeColor: drawing.ColorFromHex("2c5282"),
				StrokeWidth: 1,
			},
		}
		if a.Average > top {
			top = a.Average
		}
	}
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    160*len(bars) + 160,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:  "Average score",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
