package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/config"
	"github.com/abrezinsky/derbybracket/internal/logger"
)

// teamFile is the YAML team list read by the seed command
type teamFile struct {
	Teams []teamEntry `yaml:"teams"`
}

type teamEntry struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
	Seed *int   `yaml:"seed"`
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	inFlag := &cli.StringFlag{Name: "in", Aliases: []string{"i"}, Value: "-", Usage: "bracket JSON file, - for stdin"}
	tieFlag := &cli.StringFlag{Name: "tie-breaker", Value: "error", Usage: "error, higher-seed or lower-seed"}
	preserveFlag := &cli.BoolFlag{Name: "preserve-scores", Usage: "carry scores into the next round"}

	return &cli.App{
		Name:      "bracketctl",
		Usage:     "seed, score, advance and report elimination brackets",
		Version:   version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log engine activity to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "build a bracket from a YAML team list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "teams", Aliases: []string{"t"}, Required: true, Usage: "YAML file with a teams list"},
					&cli.StringFlag{Name: "strategy", Value: string(bracket.ByeTopSeeds), Usage: "bye strategy: top-seeds or random"},
					&cli.Uint64Flag{Name: "rand-seed", Usage: "seed for the random strategy (default: time based)"},
				},
				Action: func(c *cli.Context) error {
					teams, err := readTeams(c.String("teams"))
					if err != nil {
						return err
					}
					strategy, err := bracket.ParseByeStrategy(c.String("strategy"))
					if err != nil {
						return err
					}
					seed := c.Uint64("rand-seed")
					if seed == 0 {
						seed = uint64(time.Now().UnixNano())
					}
					t, err := bracket.SeedWithByes(teams, strategy, bracket.WithRand(rand.New(rand.NewPCG(seed, seed))))
					if err != nil {
						return err
					}
					return writeBracket(c.App.Writer, t)
				},
			},
			{
				Name:  "score",
				Usage: "record one team's score",
				Flags: []cli.Flag{
					inFlag,
					&cli.IntFlag{Name: "round", Required: true},
					&cli.IntFlag{Name: "game", Required: true},
					&cli.IntFlag{Name: "team", Required: true, Usage: "0 or 1"},
					&cli.Float64Flag{Name: "score", Required: true},
				},
				Action: func(c *cli.Context) error {
					t, err := readBracket(c.App.Reader, c.String("in"))
					if err != nil {
						return err
					}
					e := bracket.NewEngine(bracket.DefaultConfig(), bracket.WithLogger(cliLogger(c)))
					if err := e.UpdateScore(t, c.Int("round"), c.Int("game"), c.Int("team"), c.Float64("score")); err != nil {
						return err
					}
					return writeBracket(c.App.Writer, t)
				},
			},
			{
				Name:  "advance",
				Usage: "advance completed rounds; --round advances only that round",
				Flags: []cli.Flag{
					inFlag,
					tieFlag,
					preserveFlag,
					&cli.IntFlag{Name: "round", Value: -1, Usage: "advance this round only"},
					&cli.IntFlag{Name: "stop-at", Value: -1, Usage: "stop automatic advancement at this round index"},
				},
				Action: func(c *cli.Context) error {
					t, err := readBracket(c.App.Reader, c.String("in"))
					if err != nil {
						return err
					}
					tb, err := bracket.ParseTieBreaker(c.String("tie-breaker"))
					if err != nil {
						return err
					}
					e := bracket.NewEngine(bracket.NewConfig(
						bracket.WithTieBreaker(tb),
						bracket.WithPreserveScores(c.Bool("preserve-scores")),
						bracket.WithCreateRounds(true),
					), bracket.WithLogger(cliLogger(c)))

					if round := c.Int("round"); round >= 0 {
						if _, err := e.AdvanceDefault(&t, round); err != nil {
							return err
						}
						return writeBracket(c.App.Writer, t)
					}

					opts := e.Config().AutoOptions()
					if stop := c.Int("stop-at"); stop >= 0 {
						opts.StopAtRound = &stop
					}
					res := e.AutoAdvance(&t, opts)
					fmt.Fprintf(c.App.ErrWriter, "advanced %d round(s), stopped at round %d (%s)\n", res.Advanced, res.StoppedAt, res.Reason)
					if res.Failure != nil {
						fmt.Fprintf(c.App.ErrWriter, "last advancement failed: %v\n", res.Failure)
					}
					return writeBracket(c.App.Writer, t)
				},
			},
			{
				Name:  "report",
				Usage: "print a tournament report",
				Flags: []cli.Flag{
					inFlag,
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(bracket.FormatText), Usage: "json, text, html or markdown"},
					&cli.BoolFlag{Name: "scores", Value: true, Usage: "include scores"},
					&cli.BoolFlag{Name: "stats", Usage: "include statistics"},
					&cli.StringFlag{Name: "labels", Usage: "comma separated round labels"},
					&cli.StringFlag{Name: "champion-marker", Value: bracket.MarkerMultiRound.String()},
				},
				Action: func(c *cli.Context) error {
					t, err := readBracket(c.App.Reader, c.String("in"))
					if err != nil {
						return err
					}
					format, err := bracket.ParseReportFormat(c.String("format"))
					if err != nil {
						return err
					}
					marker, err := bracket.ParseChampionMarker(c.String("champion-marker"))
					if err != nil {
						return err
					}
					rp := bracket.Reporter{RoundLabels: config.SplitList(c.String("labels")), Marker: marker}
					out, err := bracket.Render(rp.Report(t, c.Bool("stats")), format, c.Bool("scores"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, out)
					return err
				},
			},
		},
	}
}

func cliLogger(c *cli.Context) logger.Logger {
	if c.Bool("verbose") {
		return logger.NewWithOptions(logger.Options{Level: slog.LevelDebug, Output: c.App.ErrWriter})
	}
	return logger.Discard()
}

// readTeams loads the team list. Teams without an id get a random one and
// teams without a seed are seeded in file order.
func readTeams(path string) ([]bracket.Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}
	var f teamFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse teams: %w", err)
	}
	if len(f.Teams) == 0 {
		return nil, fmt.Errorf("%s lists no teams", path)
	}

	teams := make([]bracket.Team, len(f.Teams))
	for i, entry := range f.Teams {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("team %d has no name", i+1)
		}
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		seed := i + 1
		if entry.Seed != nil {
			seed = *entry.Seed
		}
		teams[i] = bracket.Team{Name: name, ID: id, Seed: seed}
	}
	return teams, nil
}

func readBracket(stdin io.Reader, path string) (bracket.Tournament, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bracket: %w", err)
		}
		defer f.Close()
		r = f
	}

	var t bracket.Tournament
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode bracket: %w", err)
	}
	if err := bracket.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

func writeBracket(w io.Writer, t bracket.Tournament) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
