package searcher

import "conquest/game"

// Node is a vertex of the search tree. Rewards are kept from the perspective
// of the player who chose the move leading into the node.
type Node interface {
	// SelectOrExpand descends one level from the node. selected is false when
	// the returned child was just created or the node is terminal.
	SelectOrExpand(state State, rng game.Rand) (child Node, childState State, selected bool)
	// Backup records an episode scored for player and returns the parent.
	Backup(player game.Player, score float64) Node
	applyLoss()
	stats() (rewards float64, visits float64)
}

// computeReward converts a score from the perspective of player into the
// perspective of the node's player.
func computeReward(player game.Player, score float64, nodePlayer game.Player) float64 {
	if player == nodePlayer {
		return score
	}
	return -score
}
