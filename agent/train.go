package agent

import (
	"math"
	"slices"
	"strings"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	rng         floatRand
	temperature float64
	last        metrics.SearchMetric
}

type floatRand interface {
	Float64() float64
}

// NewTrainingAgent returns a new agent for self-play during training. Moves
// are sampled from the visit counts sharpened by 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, rng floatRand, temperature float64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{mcts: mcts, rng: rng, temperature: temperature}
}

func (a *trainingAgent) FindMove(state game.GameState) game.Move {
	policy, metric := a.mcts.Simulate(state)
	a.last = metric
	if len(policy) == 0 {
		return game.PassMove{}
	}
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, a.rng)
}

func (a *trainingAgent) LastSearch() metrics.SearchMetric {
	return a.last
}

func adjustTemperature(policy map[game.Move]float64, temperature float64) map[game.Move]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Move]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 {
		for move := range adjusted {
			adjusted[move] = 1.0 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

func sample(policy map[game.Move]float64, rng floatRand) game.Move {
	sampled := rng.Float64()
	cumulative := 0.0
	var lastMove game.Move
	for _, move := range sortedMoves(policy) {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}

// sortedMoves orders the moves of a policy so seeded sampling is reproducible.
func sortedMoves(policy map[game.Move]float64) []game.Move {
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, func(a, b game.Move) int {
		return strings.Compare(a.String(), b.String())
	})
	return moves
}
