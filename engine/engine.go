package engine

import (
	"fmt"

	"conquest/experiments/metrics"
	"conquest/game"
)

// Selector picks the successor of an applied move among its outcomes.
type Selector func(outcomes game.Outcomes) game.GameState

// SampleSelector draws an outcome with probability proportional to its weight.
func SampleSelector(rng game.Rand) Selector {
	return func(outcomes game.Outcomes) game.GameState {
		return outcomes.Sample(rng)
	}
}

// MostLikelySelector always continues with the heaviest outcome.
func MostLikelySelector(outcomes game.Outcomes) game.GameState {
	return outcomes.MostLikely()
}

// Adjudicator decides a game stopped at the round cap. It returns false for a draw.
type Adjudicator func(state game.GameState) (game.Player, bool)

func DrawAdjudicator(game.GameState) (game.Player, bool) {
	return 0, false
}

// TerritoryAdjudicator awards the game to the player holding more territories.
func TerritoryAdjudicator(state game.GameState) (game.Player, bool) {
	a, b := state.TerritoryCount(game.PlayerA), state.TerritoryCount(game.PlayerB)
	switch {
	case a > b:
		return game.PlayerA, true
	case b > a:
		return game.PlayerB, true
	default:
		return 0, false
	}
}

// Result summarizes a finished run.
type Result struct {
	Winner      game.Player
	Draw        bool
	Adjudicated bool
	Rounds      int
	Moves       int
	State       game.GameState
	MoveMetrics []metrics.MoveMetric
}

func (r Result) String() string {
	switch {
	case r.Draw:
		return fmt.Sprintf("draw after %d rounds", r.Rounds)
	case r.Adjudicated:
		return fmt.Sprintf("%s adjudicated winner after %d rounds", r.Winner, r.Rounds)
	default:
		return fmt.Sprintf("%s won after %d rounds", r.Winner, r.Rounds)
	}
}

// RunawayError reports a player that kept the turn for more moves than allowed.
type RunawayError struct {
	Player game.Player
	Round  int
	Moves  int
}

func (e *RunawayError) Error() string {
	return fmt.Sprintf("%s: player %s made %d moves in round %d", game.ErrTooManyMoves, e.Player, e.Moves, e.Round)
}

func (e *RunawayError) Unwrap() error {
	return game.ErrTooManyMoves
}
