package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReinforcements(t *testing.T) {
	t.Run("tiers", func(t *testing.T) {
		require.Equal(t, uint8(3), Reinforcements(0))
		require.Equal(t, uint8(3), Reinforcements(13))
		require.Equal(t, uint8(4), Reinforcements(14))
		require.Equal(t, uint8(4), Reinforcements(16))
		require.Equal(t, uint8(5), Reinforcements(17))
		require.Equal(t, uint8(5), Reinforcements(NumTerritories))
	})

	t.Run("non-decreasing with exactly two steps", func(t *testing.T) {
		var steps []int
		for n := 1; n <= NumTerritories; n++ {
			require.GreaterOrEqual(t, Reinforcements(n), Reinforcements(n-1))
			if Reinforcements(n) > Reinforcements(n-1) {
				steps = append(steps, n)
			}
		}
		require.Equal(t, []int{14, 17}, steps)
	})
}

func TestNumberOfReinforcements(t *testing.T) {
	t.Run("no continent", func(t *testing.T) {
		gs := board(PlayerA, AttackPhase(), map[Territory]TerritoryState{Alaska: owned(PlayerA, 1)})
		require.Equal(t, uint8(3), gs.NumberOfReinforcements(PlayerA))
	})

	t.Run("continent bonus", func(t *testing.T) {
		overrides := map[Territory]TerritoryState{Alaska: owned(PlayerA, 1)}
		for _, territory := range Oceania.Territories() {
			overrides[territory] = owned(PlayerA, 1)
		}
		gs := board(PlayerA, AttackPhase(), overrides)

		require.Equal(t, uint8(3+2), gs.NumberOfReinforcements(PlayerA), "Oceania should add 2")
		require.Equal(t, uint8(5+2+5+3+7), gs.NumberOfReinforcements(PlayerB),
			"B should get the 17+ tier plus South America, Europe, Africa and Asia")
	})

	t.Run("every bonus", func(t *testing.T) {
		gs := board(PlayerA, AttackPhase(), nil)
		require.Equal(t, uint8(5+5+2+5+3+7+2), gs.NumberOfReinforcements(PlayerB))
		require.Equal(t, uint8(3), gs.NumberOfReinforcements(PlayerA))
	})
}
