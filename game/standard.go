package game

import (
	"slices"
	"sort"
)

// StandardRules pairs dice highest against highest and resolves ties in
// favour of the defender.
type StandardRules struct {
	MaxAttack int
	MaxDefend int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MaxAttack: 3,
		MaxDefend: 2,
	}
}

func (sr *StandardRules) MaxAttackDice() int {
	return sr.MaxAttack
}

func (sr *StandardRules) MaxDefendDice() int {
	return sr.MaxDefend
}

func (sr *StandardRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	attacker := descending(attackerRolls)
	defender := descending(defenderRolls)
	battles := min(len(attacker), len(defender))
	for i := 0; i < battles; i++ {
		if attacker[i] > defender[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}

func descending(rolls []int) []int {
	sorted := slices.Clone(rolls)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	return sorted
}
