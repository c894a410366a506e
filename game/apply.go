package game

import "fmt"

// Apply validates m against the state and returns its successors. Every move
// but an attack has exactly one successor of weight 1; an attack returns one
// successor per distinct (attacker losses, defender losses) result.
func (gs GameState) Apply(m Move) (Outcomes, error) {
	if gs.IsFinished() {
		return nil, ErrGameFinished
	}

	switch m := m.(type) {
	case PassMove:
		return gs.applyPass(m)
	case ReinforceMove:
		return gs.applyReinforce(m)
	case FortifyMove:
		return gs.applyFortify(m)
	case AttackMove:
		return gs.applyAttack(m)
	default:
		return nil, fmt.Errorf("%w: unsupported move %T", ErrMoveNotInPhase, m)
	}
}

// Play applies a deterministic move and returns its only successor.
func (gs GameState) Play(m Move) (GameState, error) {
	outcomes, err := gs.Apply(m)
	if err != nil {
		return GameState{}, err
	}
	if len(outcomes) != 1 {
		return GameState{}, fmt.Errorf("move %s has %d outcomes, select one from Apply", m, len(outcomes))
	}
	return outcomes[0].State, nil
}

func (gs GameState) notInPhase(m Move) error {
	return fmt.Errorf("%w: %s during %s", ErrMoveNotInPhase, m, gs.phase)
}

// endTurn hands the turn to the next player with freshly computed reinforcements.
func (gs GameState) endTurn() GameState {
	next := gs.currentPlayer.Next()
	gs.currentPlayer = next
	gs.phase = ReinforcePhase(gs.NumberOfReinforcements(next))
	return gs
}

func (gs GameState) applyPass(m PassMove) (Outcomes, error) {
	if gs.phase.kind == Reinforcing {
		return nil, gs.notInPhase(m)
	}
	return single(gs.endTurn()), nil
}

func (gs GameState) applyReinforce(m ReinforceMove) (Outcomes, error) {
	if gs.phase.kind != Reinforcing {
		return nil, gs.notInPhase(m)
	}
	if !m.Territory.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTerritory, m.Territory)
	}
	if m.Armies == 0 {
		return nil, fmt.Errorf("%w: reinforcing with zero armies", ErrTooManyUnitsMoved)
	}
	if m.Armies > gs.phase.remaining {
		return nil, fmt.Errorf("%w: %d of %d", ErrTooManyReinforcements, m.Armies, gs.phase.remaining)
	}

	next := gs
	if remaining := gs.phase.remaining - m.Armies; remaining == 0 {
		next.phase = AttackPhase()
	} else {
		next.phase = ReinforcePhase(remaining)
	}
	if err := next.addArmies(m.Territory, int(m.Armies)); err != nil {
		return nil, err
	}
	return single(next), nil
}

func (gs GameState) applyFortify(m FortifyMove) (Outcomes, error) {
	if gs.phase.kind != Attacking && gs.phase.kind != Fortifying {
		return nil, gs.notInPhase(m)
	}
	if err := gs.checkRoute(m.From, m.To); err != nil {
		return nil, err
	}
	if m.Armies == 0 {
		return nil, fmt.Errorf("%w: fortifying with zero armies", ErrTooManyUnitsMoved)
	}
	if gs.territories[m.From].Owner == gs.currentPlayer && m.Armies >= gs.territories[m.From].Armies {
		return nil, fmt.Errorf("%w: %s holds %d armies, cannot move %d",
			ErrTooManyUnitsMoved, m.From, gs.territories[m.From].Armies, m.Armies)
	}

	next := gs
	if err := next.addArmies(m.From, -int(m.Armies)); err != nil {
		return nil, err
	}
	if err := next.addArmies(m.To, int(m.Armies)); err != nil {
		return nil, err
	}
	return single(next.endTurn()), nil
}

func (gs GameState) applyAttack(m AttackMove) (Outcomes, error) {
	if gs.phase.kind != Attacking {
		return nil, gs.notInPhase(m)
	}
	if m.Attacking == 0 {
		return nil, ErrZeroUnitsInAttack
	}
	if err := gs.checkRoute(m.From, m.To); err != nil {
		return nil, err
	}
	from := gs.territories[m.From]
	if from.Owner != gs.currentPlayer {
		return nil, fmt.Errorf("%w: %s", ErrFromTerritoryNotOwned, m.From)
	}
	if gs.territories[m.To].Owner == gs.currentPlayer {
		return nil, fmt.Errorf("%w: %s", ErrToTerritoryOwned, m.To)
	}
	if m.Attacking >= from.Armies {
		return nil, fmt.Errorf("%w: %s holds %d armies, cannot attack with %d",
			ErrTooManyUnitsMoved, m.From, from.Armies, m.Attacking)
	}

	defending := gs.territories[m.To].Armies
	attackDice := min(int(m.Attacking), standardRules.MaxAttack)
	defendDice := min(int(defending), standardRules.MaxDefend)

	battle := standardOdds[attackDice][defendDice]
	outcomes := make(Outcomes, 0, len(battle))
	for _, b := range battle {
		next, err := gs.resolveBattle(m, b)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, Outcome{State: next, Weight: b.Weight})
	}
	return outcomes, nil
}

// resolveBattle applies one dice result. A defender wiped out by the losses
// is captured: the attacking force relocates into it.
func (gs GameState) resolveBattle(m AttackMove, b BattleOutcome) (GameState, error) {
	next := gs
	target := &next.territories[m.To]
	if target.Owner == next.currentPlayer {
		return GameState{}, fmt.Errorf("%w: %s", ErrToTerritoryOwned, m.To)
	}
	if b.DefenderLosses > target.Armies {
		return GameState{}, fmt.Errorf("%w: %d losses against %d armies",
			ErrTooManyUnitsDefended, b.DefenderLosses, target.Armies)
	}

	if b.DefenderLosses > 0 && b.DefenderLosses == target.Armies {
		target.Owner = next.currentPlayer
		target.Armies = m.Attacking
		if err := next.addArmies(m.From, -int(m.Attacking)); err != nil {
			return GameState{}, err
		}
		return next, nil
	}

	target.Armies -= b.DefenderLosses
	if err := next.addArmies(m.From, -int(b.AttackerLosses)); err != nil {
		return GameState{}, err
	}
	return next, nil
}

// checkRoute validates the territory pair of a fortification or attack.
func (gs GameState) checkRoute(from, to Territory) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownTerritory, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownTerritory, to)
	}
	if !Adjacent(from, to) {
		return fmt.Errorf("%w: %s and %s", ErrNonAdjacentTerritories, from, to)
	}
	return nil
}
