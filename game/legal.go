package game

// LegalMoves returns every move the current player may apply, in a stable
// order. It is empty once the game is finished.
func (gs GameState) LegalMoves() []Move {
	if gs.IsFinished() {
		return nil
	}

	switch gs.phase.kind {
	case Reinforcing:
		return gs.reinforcementMoves()
	case Attacking, Fortifying:
		return gs.turnMoves()
	default:
		return nil
	}
}

// reinforcementMoves emits every split of the remaining reinforcements onto
// owned territories that can hold them.
func (gs GameState) reinforcementMoves() []Move {
	owned := gs.TerritoriesOf(gs.currentPlayer)
	remaining := int(gs.phase.remaining)
	moves := make([]Move, 0, remaining*len(owned))
	for armies := 1; armies <= remaining; armies++ {
		for _, t := range owned {
			if int(gs.territories[t].Armies)+armies <= maxArmies {
				moves = append(moves, ReinforceMove{Territory: t, Armies: uint8(armies)})
			}
		}
	}
	return moves
}

// turnMoves emits fortifications, attacks (only while attacking) and Pass.
func (gs GameState) turnMoves() []Move {
	var moves []Move
	for _, from := range gs.TerritoriesOf(gs.currentPlayer) {
		own := gs.territories[from].Armies
		if own < 2 {
			continue
		}
		for _, to := range neighborLists[from] {
			target := gs.territories[to]
			if target.Owner == gs.currentPlayer {
				for armies := 1; armies < int(own); armies++ {
					if int(target.Armies)+armies <= maxArmies {
						moves = append(moves, FortifyMove{From: from, To: to, Armies: uint8(armies)})
					}
				}
				continue
			}
			if gs.phase.kind != Attacking {
				continue
			}
			for attacking := 1; attacking <= min(3, int(own)-1); attacking++ {
				moves = append(moves, AttackMove{From: from, To: to, Attacking: uint8(attacking)})
			}
		}
	}
	return append(moves, PassMove{})
}
