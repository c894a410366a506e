package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
)

type Agent interface {
	// FindMove returns a move from the legal moves of state
	FindMove(state game.GameState) game.Move
}

// SearchReporter is implemented by agents that search before moving.
type SearchReporter interface {
	// LastSearch returns the metrics of the search behind the last move
	LastSearch() metrics.SearchMetric
}

type randomAgent struct {
	rng game.Rand
}

// NewRandomAgent returns an agent picking uniformly among the legal moves.
func NewRandomAgent(rng game.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(state game.GameState) game.Move {
	return randomMove(state, a.rng)
}

func randomMove(state game.GameState, rng game.Rand) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.PassMove{}
	}
	return moves[rng.Intn(len(moves))]
}
