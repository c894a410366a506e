package searcher

import (
	"math"
	"testing"

	"conquest/game"

	"github.com/stretchr/testify/require"
)

func TestUCT(t *testing.T) {
	logN := math.Log(100)

	t.Run("computing UCT value", func(t *testing.T) {
		expected := 5.0/10 + math.Sqrt(CSquared*math.Log(100)/10.0)
		require.InDelta(t, expected, uct(5.0, 10, logN), 0.0001,
			"Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("single parent visit only exploits", func(t *testing.T) {
		require.Equal(t, 0.5, uct(1, 2, math.Log(1)))
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		require.Greater(t, uct(5.0, 10, math.Log(1000)), uct(5.0, 10, logN),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, uct(5.0, 10, logN), uct(5.0, 20, logN),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		require.Greater(t, uct(10.0, 10, logN), uct(5.0, 10, logN),
			"More rewards should increase exploitation term")
	})
}

func TestComputeReward(t *testing.T) {
	t.Run("same player keeps the score", func(t *testing.T) {
		require.Equal(t, 0.5, computeReward(game.PlayerA, 0.5, game.PlayerA))
	})

	t.Run("opponent negates the score", func(t *testing.T) {
		require.Equal(t, Loss, computeReward(game.PlayerB, Win, game.PlayerA))
	})
}
