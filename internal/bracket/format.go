package bracket

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/abrezinsky/derbybracket/internal/errors"
)

// ReportFormat names an output rendering of a Report.
type ReportFormat string

const (
	FormatJSON     ReportFormat = "json"
	FormatText     ReportFormat = "text"
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
)

// ParseReportFormat validates a format name. Empty means json.
func ParseReportFormat(name string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText, FormatHTML, FormatMarkdown:
		return f, nil
	default:
		return "", errors.Sentinel(errors.ErrInvalidInput, ErrUnknownStrategy, "Unknown report format: %s", name)
	}
}

// ContentType is the HTTP content type for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render writes the report in the given format.
func Render(rep Report, format ReportFormat, includeScores bool) (string, error) {
	switch format {
	case FormatJSON, "":
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", errors.Internal(err)
		}
		return string(b), nil
	case FormatText:
		return FormatReportText(rep, includeScores), nil
	case FormatHTML:
		return FormatReportHTML(rep, includeScores), nil
	case FormatMarkdown:
		return FormatReportMarkdown(rep, includeScores), nil
	default:
		return "", errors.Sentinel(errors.ErrInvalidInput, ErrUnknownStrategy, "Unknown report format: %s", format)
	}
}

const banner = "=================================================="

func optScore(v *float64, dash string) string {
	if v == nil {
		return dash
	}
	return FormatScore(*v)
}

func teamNames(teams []Team) string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func loserName(m MatchResult) string {
	if m.Loser == nil || m.Loser.Name == "" {
		return "-"
	}
	return m.Loser.Name
}

func showAdvancing(rep Report, rr RoundReport) bool {
	return len(rr.AdvancingTeams) > 0 && rr.RoundIndex < rep.TotalRounds-1
}

// FormatReportText renders a plain-text report.
func FormatReportText(rep Report, includeScores bool) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(banner)
	line("TOURNAMENT REPORT")
	line(banner)
	line("")

	if st := rep.Statistics; st != nil {
		line("Tournament Statistics:")
		line("- Total Participants: %d", st.ParticipantCount)
		line("- Total Rounds: %d", st.TotalRounds)
		line("- Total Matches: %d", rep.TotalMatches)
		line("- Completed: %d/%d (%d%%)", rep.CompletedMatches, rep.TotalMatches, st.CompletionPercentage)
		if st.ByeCount > 0 {
			line("- Byes: %d", st.ByeCount)
		}
		if st.AverageScore != nil {
			line("- Average Score: %.1f", *st.AverageScore)
		}
		line("")
	}

	for _, rr := range rep.AllResults {
		line("%s", strings.ToUpper(rr.RoundLabel))
		if len(rr.Matches) == 0 {
			line("  (No completed matches)")
		}
		for i, m := range rr.Matches {
			if m.IsBye {
				line("  ✓ Match %d: %s (BYE)", i+1, m.Winner.Name)
				continue
			}
			ws, ls := "", ""
			if includeScores && m.WinnerScore != nil {
				ws = " (" + FormatScore(*m.WinnerScore) + ")"
			}
			if includeScores && m.LoserScore != nil {
				ls = " (" + FormatScore(*m.LoserScore) + ")"
			}
			line("  ✓ Match %d: %s%s defeated %s%s", i+1, m.Winner.Name, ws, loserName(m), ls)
		}
		if showAdvancing(rep, rr) {
			line("")
			line("  Advancing: %s", teamNames(rr.AdvancingTeams))
		}
		line("")
	}

	if rep.Champion != nil {
		line("CHAMPION: %s (Seed %s)", rep.Champion.Name, rep.Champion.SeedLabel())
		b.WriteString(banner)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatReportMarkdown renders a Markdown report. Scores switch match
// listings from bullets to tables.
func FormatReportMarkdown(rep Report, includeScores bool) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Tournament Report")
	add("")

	if st := rep.Statistics; st != nil {
		add("## Statistics")
		add("")
		add("- **Participants**: %d", st.ParticipantCount)
		add("- **Total Rounds**: %d", st.TotalRounds)
		add("- **Completion**: %d/%d (%d%%)", rep.CompletedMatches, rep.TotalMatches, st.CompletionPercentage)
		if st.ByeCount > 0 {
			add("- **Byes**: %d", st.ByeCount)
		}
		if st.AverageScore != nil {
			add("- **Average Score**: %.1f", *st.AverageScore)
		}
		add("")
	}

	for _, rr := range rep.AllResults {
		add("## %s", rr.RoundLabel)
		add("")

		if len(rr.Matches) == 0 {
			add("_(No completed matches)_")
			add("")
			continue
		}

		if includeScores {
			add("| Match | Winner | Score | Loser | Score |")
			add("|-------|--------|-------|-------|-------|")
			for i, m := range rr.Matches {
				if m.IsBye {
					add("| %d | %s | - | BYE | - |", i+1, m.Winner.Name)
					continue
				}
				add("| %d | %s | %s | %s | %s |", i+1, m.Winner.Name, optScore(m.WinnerScore, "-"), loserName(m), optScore(m.LoserScore, "-"))
			}
		} else {
			for i, m := range rr.Matches {
				if m.IsBye {
					add("- **Match %d**: %s (BYE)", i+1, m.Winner.Name)
					continue
				}
				add("- **Match %d**: %s defeated %s", i+1, m.Winner.Name, loserName(m))
			}
		}
		add("")

		if showAdvancing(rep, rr) {
			add("**Advancing**: %s", teamNames(rr.AdvancingTeams))
			add("")
		}
	}

	if rep.Champion != nil {
		add("## 🏆 Champion: %s", rep.Champion.Name)
		add("")
	}
	return strings.Join(lines, "\n")
}

// FormatReportHTML renders an HTML fragment. Team names are escaped.
func FormatReportHTML(rep Report, includeScores bool) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	esc := html.EscapeString

	add(`<div class="tournament-report">`)
	add("  <h2>Tournament Report</h2>")

	if st := rep.Statistics; st != nil {
		add(`  <div class="statistics">`)
		add("    <h3>Statistics</h3>")
		add("    <ul>")
		add("      <li>Participants: %d</li>", st.ParticipantCount)
		add("      <li>Total Rounds: %d</li>", st.TotalRounds)
		add("      <li>Completion: %d/%d (%d%%)</li>", rep.CompletedMatches, rep.TotalMatches, st.CompletionPercentage)
		if st.ByeCount > 0 {
			add("      <li>Byes: %d</li>", st.ByeCount)
		}
		if st.AverageScore != nil {
			add("      <li>Average Score: %.1f</li>", *st.AverageScore)
		}
		add("    </ul>")
		add("  </div>")
	}

	for _, rr := range rep.AllResults {
		add(`  <div class="round-report">`)
		add("    <h3>%s</h3>", esc(rr.RoundLabel))

		if len(rr.Matches) == 0 {
			add("    <p><em>No completed matches</em></p>")
			add("  </div>")
			continue
		}

		add("    <table>")
		add("      <thead>")
		add("        <tr>")
		add("          <th>Match</th>")
		add("          <th>Winner</th>")
		if includeScores {
			add("          <th>Score</th>")
		}
		add("          <th>Loser</th>")
		if includeScores {
			add("          <th>Score</th>")
		}
		add("        </tr>")
		add("      </thead>")
		add("      <tbody>")
		for i, m := range rr.Matches {
			add("        <tr>")
			add("          <td>%d</td>", i+1)
			add("          <td>%s</td>", esc(m.Winner.Name))
			if includeScores {
				add("          <td>%s</td>", optScore(m.WinnerScore, "-"))
			}
			loser := "BYE"
			if !m.IsBye {
				loser = esc(loserName(m))
			}
			add("          <td>%s</td>", loser)
			if includeScores {
				add("          <td>%s</td>", optScore(m.LoserScore, "-"))
			}
			add("        </tr>")
		}
		add("      </tbody>")
		add("    </table>")

		if showAdvancing(rep, rr) {
			names := make([]string, len(rr.AdvancingTeams))
			for i, t := range rr.AdvancingTeams {
				names[i] = esc(t.Name)
			}
			add("    <p><strong>Advancing:</strong> %s</p>", strings.Join(names, ", "))
		}
		add("  </div>")
	}

	if rep.Champion != nil {
		add(`  <div class="champion">`)
		add("    <h3>🏆 Champion: %s</h3>", esc(rep.Champion.Name))
		add("  </div>")
	}

	add("</div>")
	return strings.Join(lines, "\n")
}
