package searcher

import (
	"slices"
	"sync"

	"conquest/game"
)

// chance stands for an attack. Its children are the outcomes drawn so far,
// told apart by the hash of the state each leads to. It and its outcomes
// belong to the attacker.
type chance struct {
	sync.RWMutex
	parent   *decision
	player   game.Player
	children []*decision
	rewards  float64
	visits   float64
}

func newChance(parent *decision, attacker game.Player) *chance {
	return &chance{parent: parent, player: attacker}
}

// SelectOrExpand finds the outcome matching the already sampled state, adding
// it on first sight.
func (c *chance) SelectOrExpand(state State, _ game.Rand) (Node, State, bool) {
	c.Lock()
	defer c.Unlock()

	hash := state.Hash()
	i := slices.IndexFunc(c.children, func(d *decision) bool { return d.hash == hash })
	known := i >= 0
	var outcome *decision
	if known {
		outcome = c.children[i]
	} else {
		outcome = newDecision(c, c.player, state)
		c.children = append(c.children, outcome)
	}
	outcome.applyLoss()
	return outcome, state, known
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) stats() (float64, float64) {
	c.RLock()
	defer c.RUnlock()

	return c.rewards, c.visits
}

func (c *chance) Backup(player game.Player, score float64) Node {
	c.Lock()
	c.rewards += computeReward(player, score, c.player) - Loss
	c.Unlock()

	if c.parent == nil {
		return nil
	}
	return c.parent
}
