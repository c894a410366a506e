package agent

import "conquest/game"

type ruleBasedAgent struct {
	rng game.Rand
}

// NewRuleBasedAgent returns an agent that reinforces its most threatened
// territory one army at a time and attacks only with a two to one majority.
func NewRuleBasedAgent(rng game.Rand) Agent {
	return ruleBasedAgent{rng: rng}
}

func (a ruleBasedAgent) FindMove(state game.GameState) game.Move {
	switch state.Phase().Kind() {
	case game.Reinforcing:
		return a.reinforce(state)
	case game.Attacking:
		return a.attack(state)
	default:
		return randomMove(state, a.rng)
	}
}

// reinforce scores weakly held territories and enemy pressure on them.
func (a ruleBasedAgent) reinforce(state game.GameState) game.Move {
	player := state.CurrentPlayer()
	var candidates []game.Territory
	for _, t := range state.TerritoriesOf(player) {
		if state.Armies(t) < 255 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) < 2 {
		return randomMove(state, a.rng)
	}

	best, bestScore := candidates[0], -1
	for _, t := range candidates {
		armies := float64(max(state.Armies(t), 1))
		score := int(1 / armies * 10)
		for _, n := range t.Neighbors() {
			if state.Owner(n) != player {
				score += 1 + int(float64(state.Armies(n))/armies)
			}
		}
		// Later territories win ties
		if score >= bestScore {
			best, bestScore = t, score
		}
	}
	return game.ReinforceMove{Territory: best, Armies: 1}
}

// attack commits everything but one army from the strongest border against
// its weakest neighbour, or passes without a two to one majority.
func (a ruleBasedAgent) attack(state game.GameState) game.Move {
	player := state.CurrentPlayer()
	var best game.AttackMove
	bestScore := -1
	for _, from := range state.TerritoriesOf(player) {
		own := state.Armies(from)
		if own <= 2 {
			continue
		}
		for _, to := range from.Neighbors() {
			if state.Owner(to) == player {
				continue
			}
			score := int(float64(own) / float64(max(state.Armies(to), 1)))
			if score >= bestScore {
				best = game.AttackMove{From: from, To: to, Attacking: own - 1}
				bestScore = score
			}
		}
	}
	if bestScore < 2 {
		return game.PassMove{}
	}
	return best
}
