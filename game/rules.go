package game

// Rules decides how a single round of dice is resolved.
type Rules interface {
	MaxAttackDice() int
	MaxDefendDice() int
	// DetermineAttackOutcome compares the rolls of both sides and returns the
	// armies each side loses.
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}
