package searcher

import "math"

// Rewards lie in [Loss, Win] from the perspective of a node's player.
const (
	Win  = 1.0
	Loss = -Win

	// CSquared weighs exploration against the mean reward.
	CSquared = 2.0
)

// uct scores a child with total reward q over n visits below a parent whose
// visit count has natural logarithm logN. n must be positive.
func uct(q, n, logN float64) float64 {
	return q/n + math.Sqrt(CSquared*logN/n)
}
