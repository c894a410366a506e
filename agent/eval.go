package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
	last metrics.SearchMetric
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return &evaluationAgent{mcts: mcts}
}

func (a *evaluationAgent) FindMove(state game.GameState) game.Move {
	policy, metric := a.mcts.Simulate(state)
	a.last = metric
	if len(policy) == 0 {
		return game.PassMove{}
	}
	return findMax(policy)
}

func (a *evaluationAgent) LastSearch() metrics.SearchMetric {
	return a.last
}

// findMax returns the most visited move, breaking ties by move order.
func findMax(policy map[game.Move]float64) game.Move {
	var maxMove game.Move
	maxVisit := -1.0
	for _, move := range sortedMoves(policy) {
		if visit := policy[move]; visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
