package services

import (
	"context"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// BracketView is the display model of a bracket: rounds as columns, games
// as boxes.
type BracketView struct {
	Tournament *models.Tournament
	Rounds     []RoundView
	Champion   *bracket.Team
	ByeLabel   string
	ByeClass   string
}

// RoundView is one column of the bracket
type RoundView struct {
	Index    int
	Label    string
	Complete bool
	Games    []GameView
}

// GameView is one game box
type GameView struct {
	Index int
	IsBye bool
	Class string
	Teams []TeamView
}

// TeamView is one line of a game box
type TeamView struct {
	Index       int
	Name        string
	Seed        string
	Score       string
	Winner      bool
	Placeholder bool
}

// BuildView lays out a bracket for display. Byes carry the configured label
// and class and are left out entirely when ShowByeGames is off. The lone
// game of the final round is always shown.
func BuildView(t *models.Tournament, cfg bracket.Config) BracketView {
	view := BracketView{
		Tournament: t,
		Rounds:     make([]RoundView, 0, len(t.Data)),
		ByeLabel:   cfg.ByeLabel,
		ByeClass:   cfg.ByeClass,
	}
	last := len(t.Data) - 1

	for r, round := range t.Data {
		rv := RoundView{
			Index:    r,
			Label:    cfg.RoundLabel(r),
			Complete: bracket.IsRoundComplete(round),
		}
		for g, game := range round {
			terminal := r == last && len(round) == 1 && last > 0
			bye := game.IsBye() && !terminal
			if bye && !cfg.ShowByeGames {
				continue
			}

			gv := GameView{Index: g, IsBye: bye}
			if bye {
				gv.Class = cfg.ByeClass
			}
			winner, decided := bracket.MatchWinner(game)
			for i, team := range game {
				tv := TeamView{
					Index:       i,
					Name:        team.Name,
					Seed:        team.SeedLabel(),
					Placeholder: bracket.IsPlaceholder(team),
					Winner:      decided && !terminal && team.ID == winner.ID && team.Name == winner.Name,
				}
				if team.Score != nil {
					tv.Score = bracket.FormatScore(*team.Score)
				}
				gv.Teams = append(gv.Teams, tv)
			}
			rv.Games = append(rv.Games, gv)
		}
		view.Rounds = append(view.Rounds, rv)
	}

	if last > 0 && len(t.Data[last]) == 1 && len(t.Data[last][0]) == 1 {
		if champ := t.Data[last][0][0]; !bracket.IsPlaceholder(champ) {
			view.Champion = &champ
		}
	}
	return view
}

// BracketView loads a tournament and lays it out for display
func (s *TournamentService) BracketView(ctx context.Context, id string) (*BracketView, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := s.engineConfig(ctx, t)
	if err != nil {
		return nil, err
	}
	view := BuildView(t, cfg)
	return &view, nil
}
