package bracket

// Observer receives engine notifications synchronously, in the order
// score-updated, round-completed, round-generated.
type Observer interface {
	OnScoreUpdate(round, game, team int, score float64)
	OnRoundComplete(round int)
	OnRoundGenerated(round int, data Round)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) OnScoreUpdate(int, int, int, float64) {}
func (NopObserver) OnRoundComplete(int)                  {}
func (NopObserver) OnRoundGenerated(int, Round)          {}

// Observers fans a notification out to each observer in order.
type Observers []Observer

func (obs Observers) OnScoreUpdate(round, game, team int, score float64) {
	for _, o := range obs {
		o.OnScoreUpdate(round, game, team, score)
	}
}

func (obs Observers) OnRoundComplete(round int) {
	for _, o := range obs {
		o.OnRoundComplete(round)
	}
}

func (obs Observers) OnRoundGenerated(round int, data Round) {
	for _, o := range obs {
		o.OnRoundGenerated(round, data)
	}
}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	ScoreUpdate    func(round, game, team int, score float64)
	RoundComplete  func(round int)
	RoundGenerated func(round int, data Round)
}

func (f ObserverFuncs) OnScoreUpdate(round, game, team int, score float64) {
	if f.ScoreUpdate != nil {
		f.ScoreUpdate(round, game, team, score)
	}
}

func (f ObserverFuncs) OnRoundComplete(round int) {
	if f.RoundComplete != nil {
		f.RoundComplete(round)
	}
}

func (f ObserverFuncs) OnRoundGenerated(round int, data Round) {
	if f.RoundGenerated != nil {
		f.RoundGenerated(round, data)
	}
}

var (
	_ Observer = NopObserver{}
	_ Observer = Observers(nil)
	_ Observer = ObserverFuncs{}
)
