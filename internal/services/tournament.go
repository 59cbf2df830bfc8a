package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/errors"
	"github.com/abrezinsky/derbybracket/internal/logger"
	"github.com/abrezinsky/derbybracket/internal/models"
	"github.com/abrezinsky/derbybracket/internal/repository"
)

// MaxTeams is the largest field a tournament may be created with
const MaxTeams = 128

// TournamentServiceRepository defines the repository methods needed by TournamentService
type TournamentServiceRepository interface {
	repository.TournamentRepository
	repository.EventRepository
}

// EngineSettings supplies the engine configuration in effect for an operation
type EngineSettings interface {
	EngineConfig(ctx context.Context) (bracket.Config, error)
}

// Publisher receives events after they have been committed
type Publisher interface {
	Publish(ctx context.Context, tournamentID string, events []models.Event)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, tournamentID string, events []models.Event)

// Publish implements Publisher
func (f PublisherFunc) Publish(ctx context.Context, tournamentID string, events []models.Event) {
	f(ctx, tournamentID, events)
}

// OperationRecorder records the outcome of a service operation
type OperationRecorder interface {
	ObserveOperation(op string, started time.Time, err error)
}

// TournamentService owns persisted tournaments. Mutations of one tournament
// are serialized; different tournaments proceed independently.
type TournamentService struct {
	log        logger.Logger
	repo       TournamentServiceRepository
	settings   EngineSettings
	observers  bracket.Observers
	publishers []Publisher
	recorder   OperationRecorder
	now        func() time.Time
	rng        *rand.Rand
	locks      sync.Map // tournament id -> *sync.Mutex
}

// NewTournamentService creates a new TournamentService
func NewTournamentService(log logger.Logger, repo TournamentServiceRepository, settings EngineSettings) *TournamentService {
	return &TournamentService{
		log:      log,
		repo:     repo,
		settings: settings,
		now:      time.Now,
	}
}

// AddObserver registers an engine observer. Observers see events only after
// they were persisted.
func (s *TournamentService) AddObserver(o bracket.Observer) {
	s.observers = append(s.observers, o)
}

// AddPublisher registers a destination for committed events
func (s *TournamentService) AddPublisher(p Publisher) {
	s.publishers = append(s.publishers, p)
}

// SetOperationRecorder sets the recorder for operation outcomes
func (s *TournamentService) SetOperationRecorder(r OperationRecorder) {
	s.recorder = r
}

// SetClock replaces the time source
func (s *TournamentService) SetClock(now func() time.Time) {
	s.now = now
}

// SetRand sets the source used by the random bye strategy
func (s *TournamentService) SetRand(r *rand.Rand) {
	s.rng = r
}

func (s *TournamentService) lock(id string) func() {
	m, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *TournamentService) record(op string, started time.Time, err error) {
	if s.recorder != nil {
		s.recorder.ObserveOperation(op, started, err)
	}
}

// translateRepoError maps repository sentinels to application errors
func translateRepoError(err error, id string) error {
	switch err {
	case nil:
		return nil
	case repository.ErrNotFound:
		return errors.NotFoundf("Tournament not found: %s", id)
	case repository.ErrDuplicateID:
		return errors.Conflictf("Tournament already exists: %s", id)
	default:
		return err
	}
}

// engineConfig returns the effective configuration for a tournament. Labels
// stored on the tournament take precedence.
func (s *TournamentService) engineConfig(ctx context.Context, t *models.Tournament) (bracket.Config, error) {
	cfg, err := s.settings.EngineConfig(ctx)
	if err != nil {
		return bracket.Config{}, err
	}
	if t != nil && len(t.RoundLabels) > 0 {
		cfg = bracket.NewConfig(func(c *bracket.Config) { *c = cfg }, bracket.WithRoundLabels(t.RoundLabels...))
	}
	return cfg, nil
}

// collected is an engine notification waiting for commit
type collected struct {
	event models.Event
	round bracket.Round
}

// eventCollector buffers engine notifications until the mutation is saved
type eventCollector struct {
	tournamentID string
	at           time.Time
	items        []collected
}

func (c *eventCollector) OnScoreUpdate(round, game, team int, score float64) {
	c.items = append(c.items, collected{event: models.Event{
		TournamentID: c.tournamentID,
		Type:         models.EventScoreUpdated,
		Round:        round,
		Game:         &game,
		Team:         &team,
		Score:        &score,
		CreatedAt:    c.at,
	}})
}

func (c *eventCollector) OnRoundComplete(round int) {
	c.items = append(c.items, collected{event: models.Event{
		TournamentID: c.tournamentID,
		Type:         models.EventRoundCompleted,
		Round:        round,
		CreatedAt:    c.at,
	}})
}

func (c *eventCollector) OnRoundGenerated(round int, data bracket.Round) {
	payload, _ := json.Marshal(data)
	c.items = append(c.items, collected{
		event: models.Event{
			TournamentID: c.tournamentID,
			Type:         models.EventRoundGenerated,
			Round:        round,
			Payload:      string(payload),
			CreatedAt:    c.at,
		},
		round: data.Clone(),
	})
}

func (c *eventCollector) events() []models.Event {
	out := make([]models.Event, len(c.items))
	for i, it := range c.items {
		out[i] = it.event
	}
	return out
}

// mutate runs op against a copy of the tournament under its lock. When op
// produced events the copy is saved together with them and the events are
// replayed to observers and publishers.
func (s *TournamentService) mutate(ctx context.Context, op, id string, fn func(e *bracket.Engine, data *bracket.Tournament) error) (*models.Tournament, error) {
	started := s.now()
	unlock := s.lock(id)
	defer unlock()

	t, err := s.repo.GetTournament(ctx, id)
	if err != nil {
		err = translateRepoError(err, id)
		s.record(op, started, err)
		return nil, err
	}

	cfg, err := s.engineConfig(ctx, t)
	if err != nil {
		s.record(op, started, err)
		return nil, err
	}

	collector := &eventCollector{tournamentID: id, at: s.now().UTC()}
	engine := bracket.NewEngine(cfg, bracket.WithLogger(s.log), bracket.WithObserver(collector))

	data := t.Data.Clone()
	if err := fn(engine, &data); err != nil {
		s.record(op, started, err)
		return nil, err
	}

	if len(collector.items) == 0 {
		s.record(op, started, nil)
		return t, nil
	}

	updatedAt := s.now().UTC()
	events := collector.events()
	if err := s.repo.SaveTournamentData(ctx, id, data, updatedAt, events); err != nil {
		err = translateRepoError(err, id)
		s.record(op, started, err)
		return nil, err
	}
	t.Data = data
	t.UpdatedAt = updatedAt

	s.replay(ctx, id, collector)
	s.record(op, started, nil)
	return t, nil
}

func (s *TournamentService) replay(ctx context.Context, id string, c *eventCollector) {
	for _, it := range c.items {
		e := it.event
		switch e.Type {
		case models.EventScoreUpdated:
			s.observers.OnScoreUpdate(e.Round, *e.Game, *e.Team, *e.Score)
		case models.EventRoundCompleted:
			s.observers.OnRoundComplete(e.Round)
		case models.EventRoundGenerated:
			s.observers.OnRoundGenerated(e.Round, it.round)
		}
	}
	events := c.events()
	for _, p := range s.publishers {
		p.Publish(ctx, id, events)
	}
}

// CreateTournament describes a bracket to seed from a flat team list
type CreateTournament struct {
	ID          string
	Name        string
	Teams       []bracket.Team
	Strategy    string
	RoundLabels []string
}

// Create seeds and stores a new tournament
func (s *TournamentService) Create(ctx context.Context, req CreateTournament) (*models.Tournament, error) {
	started := s.now()
	t, err := s.create(ctx, req)
	s.record("create", started, err)
	return t, err
}

func (s *TournamentService) create(ctx context.Context, req CreateTournament) (*models.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.InvalidInput("Tournament name is required")
	}
	if len(req.Teams) < 2 || len(req.Teams) > MaxTeams {
		return nil, ErrInvalidTeamCount
	}
	strategy, err := bracket.ParseByeStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	teams := make([]bracket.Team, len(req.Teams))
	seen := make(map[string]bool, len(req.Teams))
	for i, team := range req.Teams {
		team.Name = strings.TrimSpace(team.Name)
		if team.Name == "" {
			return nil, errors.InvalidInputf("Team %d has no name", i+1)
		}
		if team.Seed < 0 {
			return nil, errors.InvalidInputf("Team %s has a negative seed", team.Name)
		}
		if team.ID == "" {
			team.ID = uuid.NewString()
		}
		if seen[team.ID] {
			return nil, errors.InvalidInputf("Duplicate team id: %s", team.ID)
		}
		seen[team.ID] = true
		teams[i] = team
	}

	var opts []bracket.SeedOption
	if s.rng != nil {
		opts = append(opts, bracket.WithRand(s.rng))
	}
	data, err := bracket.SeedWithByes(teams, strategy, opts...)
	if err != nil {
		return nil, err
	}

	return s.store(ctx, req.ID, req.Name, req.RoundLabels, data)
}

// ImportTournament describes a prebuilt bracket
type ImportTournament struct {
	ID          string
	Name        string
	RoundLabels []string
	Data        bracket.Tournament
}

// Import validates and stores a prebuilt bracket
func (s *TournamentService) Import(ctx context.Context, req ImportTournament) (*models.Tournament, error) {
	started := s.now()
	t, err := s.importTournament(ctx, req)
	s.record("import", started, err)
	return t, err
}

func (s *TournamentService) importTournament(ctx context.Context, req ImportTournament) (*models.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.InvalidInput("Tournament name is required")
	}
	if err := bracket.Validate(req.Data); err != nil {
		return nil, err
	}
	return s.store(ctx, req.ID, req.Name, req.RoundLabels, req.Data.Clone())
}

func (s *TournamentService) store(ctx context.Context, id, name string, labels []string, data bracket.Tournament) (*models.Tournament, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now().UTC()
	t := &models.Tournament{
		ID:          id,
		Name:        strings.TrimSpace(name),
		RoundLabels: labels,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateTournament(ctx, t); err != nil {
		return nil, translateRepoError(err, id)
	}
	s.log.Info("Tournament created", "tournament_id", id, "rounds", len(data))
	return t, nil
}

// Get returns a tournament
func (s *TournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.repo.GetTournament(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}
	return t, nil
}

// List returns a summary of every tournament
func (s *TournamentService) List(ctx context.Context) ([]models.TournamentSummary, error) {
	all, err := s.repo.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.settings.EngineConfig(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.TournamentSummary, 0, len(all))
	for _, t := range all {
		rep := bracket.NewReporter(cfg).Report(t.Data, false)
		sum := models.TournamentSummary{
			ID:               t.ID,
			Name:             t.Name,
			Rounds:           len(t.Data),
			TotalMatches:     rep.TotalMatches,
			CompletedMatches: rep.CompletedMatches,
			UpdatedAt:        t.UpdatedAt,
		}
		if rep.Champion != nil {
			sum.Champion = rep.Champion.Name
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// Delete removes a tournament and its event log
func (s *TournamentService) Delete(ctx context.Context, id string) error {
	started := s.now()
	unlock := s.lock(id)
	defer unlock()

	err := translateRepoError(s.repo.DeleteTournament(ctx, id), id)
	s.record("delete", started, err)
	if err == nil || errors.IsKind(err, errors.ErrNotFound) {
		// Waiters already holding this mutex finish against a missing row.
		s.locks.Delete(id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Tournament deleted", "tournament_id", id)
	return nil
}

// UpdateScore sets one team's score
func (s *TournamentService) UpdateScore(ctx context.Context, id string, round, game, team int, score float64) (*models.Tournament, error) {
	t, err := s.mutate(ctx, "update_score", id, func(e *bracket.Engine, data *bracket.Tournament) error {
		return e.UpdateScore(*data, round, game, team, score)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Score updated", "tournament_id", id, "round", round, "game", game, "team", team, "score", score)
	return t, nil
}

// AdvanceRequest holds per-call overrides of the configured defaults.
// A nil Round advances the first incomplete round.
type AdvanceRequest struct {
	Round          *int
	TieBreaker     string
	PreserveScores *bool
	CreateRounds   *bool
}

// AdvanceResult is the outcome of a single advancement
type AdvanceResult struct {
	Round      int                `json:"round"`
	Generated  bracket.Round      `json:"generated"`
	Tournament *models.Tournament `json:"tournament"`
}

func applyOverrides(opts *bracket.AdvanceOptions, tieBreaker string, preserve, create *bool) error {
	if tieBreaker != "" {
		tb, err := bracket.ParseTieBreaker(tieBreaker)
		if err != nil {
			return err
		}
		opts.TieBreaker = tb
	}
	if preserve != nil {
		opts.PreserveScores = *preserve
	}
	if create != nil {
		opts.CreateRounds = *create
	}
	return nil
}

// Advance generates the round after req.Round from its winners
func (s *TournamentService) Advance(ctx context.Context, id string, req AdvanceRequest) (*AdvanceResult, error) {
	roundIndex := bracket.FirstIncomplete
	if req.Round != nil {
		roundIndex = *req.Round
	}

	var generated bracket.Round
	target := -1
	t, err := s.mutate(ctx, "advance", id, func(e *bracket.Engine, data *bracket.Tournament) error {
		opts := e.Config().AdvanceOptions()
		if err := applyOverrides(&opts, req.TieBreaker, req.PreserveScores, req.CreateRounds); err != nil {
			return err
		}
		ri := roundIndex
		if ri == bracket.FirstIncomplete {
			if first := bracket.FirstIncompleteRound(*data); first >= 0 {
				ri = first
			}
		}
		next, err := e.Advance(data, ri, opts)
		if err != nil {
			return err
		}
		generated = next
		target = ri + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Round advanced", "tournament_id", id, "round", target)
	return &AdvanceResult{Round: target, Generated: generated, Tournament: t}, nil
}

// AutoAdvanceRequest holds per-call overrides for auto-generation
type AutoAdvanceRequest struct {
	TieBreaker     string
	PreserveScores *bool
	StopAtRound    *int
}

// AutoAdvanceResult is the outcome of an auto-generation run
type AutoAdvanceResult struct {
	bracket.AutoResult
	Generated  []int              `json:"generated"`
	Error      string             `json:"error,omitempty"`
	Tournament *models.Tournament `json:"tournament"`
}

// AutoAdvance generates rounds until one is incomplete or the bracket ends.
// A failed advancement ends the run without undoing earlier rounds.
func (s *TournamentService) AutoAdvance(ctx context.Context, id string, req AutoAdvanceRequest) (*AutoAdvanceResult, error) {
	res := &AutoAdvanceResult{Generated: []int{}}
	t, err := s.mutate(ctx, "auto_advance", id, func(e *bracket.Engine, data *bracket.Tournament) error {
		opts := e.Config().AutoOptions()
		if err := applyOverrides(&opts.AdvanceOptions, req.TieBreaker, req.PreserveScores, nil); err != nil {
			return err
		}
		if req.StopAtRound != nil {
			opts.StopAtRound = req.StopAtRound
		}
		opts.OnRoundGenerated = func(round int, _ bracket.Round) {
			res.Generated = append(res.Generated, round)
		}
		res.AutoResult = e.AutoAdvance(data, opts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Failure != nil {
		res.Error = res.Failure.Error()
	}
	res.Tournament = t
	s.log.Info("Auto-generation finished", "tournament_id", id, "advanced", res.Advanced, "reason", res.Reason)
	return res, nil
}

// MatchWinner returns the winner of a game, or nil when it is undetermined
func (s *TournamentService) MatchWinner(ctx context.Context, id string, round, game int) (*bracket.Team, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w, ok := bracket.MatchWinnerAt(t.Data, round, game)
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// RoundStatus describes one round
type RoundStatus struct {
	Round      int            `json:"round"`
	Label      string         `json:"label"`
	IsComplete bool           `json:"is_complete"`
	Games      int            `json:"games"`
	Byes       []bracket.Team `json:"byes"`
}

// RoundStatus reports whether a round is complete
func (s *TournamentService) RoundStatus(ctx context.Context, id string, round int) (*RoundStatus, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if round < 0 || round >= len(t.Data) {
		return nil, errors.InvalidInputf("Invalid round index: %d", round)
	}
	cfg, err := s.engineConfig(ctx, t)
	if err != nil {
		return nil, err
	}
	byes := bracket.ByeTeams(t.Data[round])
	if byes == nil {
		byes = []bracket.Team{}
	}
	return &RoundStatus{
		Round:      round,
		Label:      cfg.RoundLabel(round),
		IsComplete: bracket.RoundCompleteAt(t.Data, round),
		Games:      len(t.Data[round]),
		Byes:       byes,
	}, nil
}

// AdvancingTeams returns the winners of a round. A nil round means the
// latest complete round.
func (s *TournamentService) AdvancingTeams(ctx context.Context, id string, round *int) ([]bracket.Team, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if round == nil {
		teams := bracket.AdvancingTeamsLatest(t.Data)
		if teams == nil {
			teams = []bracket.Team{}
		}
		return teams, nil
	}
	if *round < 0 || *round >= len(t.Data) {
		return nil, errors.InvalidInputf("Invalid round index: %d", *round)
	}
	return bracket.AdvancingTeams(t.Data[*round]), nil
}

// RoundResults returns the results of every resolved game in a round
func (s *TournamentService) RoundResults(ctx context.Context, id string, round int) ([]bracket.MatchResult, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if round < 0 || round >= len(t.Data) {
		return nil, errors.InvalidInputf("Invalid round index: %d", round)
	}
	return bracket.RoundResults(t.Data[round]), nil
}

func (s *TournamentService) reporter(ctx context.Context, t *models.Tournament) (bracket.Reporter, error) {
	cfg, err := s.engineConfig(ctx, t)
	if err != nil {
		return bracket.Reporter{}, err
	}
	return bracket.NewReporter(cfg), nil
}

// TeamHistory returns one team's path through the bracket
func (s *TournamentService) TeamHistory(ctx context.Context, id, teamID string) (*bracket.TeamHistory, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rp, err := s.reporter(ctx, t)
	if err != nil {
		return nil, err
	}
	h := rp.TeamHistory(t.Data, teamID)
	if h == nil {
		return nil, errors.NotFoundf("Team not found: %s", teamID)
	}
	return h, nil
}

// Statistics returns aggregate figures for a tournament
func (s *TournamentService) Statistics(ctx context.Context, id string) (*bracket.Statistics, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rp, err := s.reporter(ctx, t)
	if err != nil {
		return nil, err
	}
	stats := rp.Statistics(t.Data)
	return &stats, nil
}

// Report returns the full derived view of a tournament
func (s *TournamentService) Report(ctx context.Context, id string, includeStats bool) (*bracket.Report, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rp, err := s.reporter(ctx, t)
	if err != nil {
		return nil, err
	}
	rep := rp.Report(t.Data, includeStats)
	return &rep, nil
}

// RenderedReport is a report serialized in one of the supported formats
type RenderedReport struct {
	Body        string
	ContentType string
	Format      bracket.ReportFormat
}

// RenderReport renders a report in the named format
func (s *TournamentService) RenderReport(ctx context.Context, id, format string, includeScores, includeStats bool) (*RenderedReport, error) {
	f, err := bracket.ParseReportFormat(format)
	if err != nil {
		return nil, err
	}
	rep, err := s.Report(ctx, id, includeStats)
	if err != nil {
		return nil, err
	}
	body, err := bracket.Render(*rep, f, includeScores)
	if err != nil {
		return nil, err
	}
	return &RenderedReport{Body: body, ContentType: f.ContentType(), Format: f}, nil
}

// TeamMatch is a search hit
type TeamMatch struct {
	Team     bracket.Team `json:"team"`
	Distance int          `json:"distance"`
}

// SearchTeams finds entrants whose names approximately match query, closest
// first. An empty query returns every entrant.
func (s *TournamentService) SearchTeams(ctx context.Context, id, query string) ([]TeamMatch, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(t.Data) == 0 {
		return []TeamMatch{}, nil
	}

	var teams []bracket.Team
	for _, team := range t.Data[0].Teams() {
		if !bracket.IsPlaceholder(team) {
			teams = append(teams, team)
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]TeamMatch, len(teams))
		for i, team := range teams {
			out[i] = TeamMatch{Team: team}
		}
		return out, nil
	}

	names := make([]string, len(teams))
	for i, team := range teams {
		names[i] = team.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	out := make([]TeamMatch, len(ranks))
	for i, r := range ranks {
		out[i] = TeamMatch{Team: teams[r.OriginalIndex], Distance: r.Distance}
	}
	return out, nil
}

// Events returns the most recent events of a tournament, oldest first
func (s *TournamentService) Events(ctx context.Context, id string, limit int) ([]models.Event, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.repo.ListEvents(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// SeedMockTournament creates a demo tournament with generated team names.
// The same seed always produces the same teams.
func (s *TournamentService) SeedMockTournament(ctx context.Context, name string, teamCount int, seed uint64) (*models.Tournament, error) {
	if teamCount < 2 || teamCount > MaxTeams {
		return nil, ErrInvalidTeamCount
	}
	if name == "" {
		name = "Demo Bracket"
	}

	faker := gofakeit.New(seed)
	used := make(map[string]bool, teamCount)
	teams := make([]bracket.Team, 0, teamCount)
	for len(teams) < teamCount {
		teamName := capitalize(faker.Color()) + " " + capitalize(faker.Animal())
		if used[teamName] {
			teamName = fmt.Sprintf("%s %d", teamName, len(teams)+1)
		}
		used[teamName] = true
		teams = append(teams, bracket.Team{
			Name: teamName,
			ID:   fmt.Sprintf("team-%d", len(teams)+1),
			Seed: len(teams) + 1,
		})
	}

	return s.Create(ctx, CreateTournament{Name: name, Teams: teams, Strategy: string(bracket.ByeTopSeeds)})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
