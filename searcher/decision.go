package searcher

import (
	"math"
	"sync"

	"conquest/game"
)

// decision is a state where a player picks a move. explored[i] leads to
// children[i]; a stochastic move leads to a chance node.
type decision struct {
	sync.RWMutex
	parent     Node
	player     game.Player
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []Node
	rewards    float64
	visits     float64
}

// newDecision creates a node for state. The root belongs to the player to
// move; every other node to the player who moved into it.
func newDecision(parent Node, player game.Player, state State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		player:     player,
		hash:       state.Hash(),
		unexplored: append([]game.Move(nil), moves...),
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state State, rng game.Rand) (Node, State, bool) {
	d.Lock()
	defer d.Unlock()

	switch {
	case len(d.unexplored) > 0:
		child, childState := d.expand(state, rng)
		child.applyLoss()
		return child, childState, false
	case len(d.children) == 0: // Terminal
		return d, state, false
	default:
		i := d.selectChild()
		d.children[i].applyLoss()
		return d.children[i], state.Play(d.explored[i], rng), true
	}
}

// expand adds a child for the last unexplored move.
func (d *decision) expand(state State, rng game.Rand) (Node, State) {
	move := d.unexplored[len(d.unexplored)-1]
	d.unexplored = d.unexplored[:len(d.unexplored)-1]

	mover := state.Player()
	next := state.Play(move, rng)
	var child Node
	if move.IsStochastic() {
		child = newChance(d, mover)
	} else {
		child = newDecision(d, mover, next)
	}
	d.explored = append(d.explored, move)
	d.children = append(d.children, child)
	return child, next
}

// selectChild returns the index of the child with the highest UCT value, or
// of the first child nobody has visited yet.
func (d *decision) selectChild() int {
	rewards := make([]float64, len(d.children))
	visits := make([]float64, len(d.children))
	total := 0.0
	for i, child := range d.children {
		rewards[i], visits[i] = child.stats()
		if visits[i] == 0 {
			return i
		}
		total += visits[i]
	}

	logN := math.Log(total)
	best, bestScore := 0, math.Inf(-1)
	for i := range d.children {
		if score := uct(rewards[i], visits[i], logN); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) stats() (float64, float64) {
	d.RLock()
	defer d.RUnlock()

	return d.rewards, d.visits
}

// Backup replaces the virtual loss of a non-root node by the actual reward.
// The visit counted by the loss stays.
func (d *decision) Backup(player game.Player, score float64) Node {
	d.Lock()
	defer d.Unlock()

	reward := computeReward(player, score, d.player)
	if d.parent == nil {
		d.rewards += reward
		d.visits++
		return nil
	}
	d.rewards += reward - Loss
	return d.parent
}

// Policy returns the visit count of every explored move.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		_, visits := child.stats()
		policy[d.explored[i]] = visits
	}
	return policy
}
