package searcher

import "conquest/game"

// mockMove returns a distinct move per id; attacks are the stochastic moves.
func mockMove(id int, stochastic bool) game.Move {
	if stochastic {
		return game.AttackMove{From: game.Territory(id), To: game.Territory(id + 1), Attacking: 1}
	}
	return game.ReinforceMove{Territory: game.Territory(id), Armies: 1}
}

type mockState struct {
	player game.Player
	moves  []game.Move
	played []game.Move
	hash   game.StateHash
}

func (m mockState) Player() game.Player {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move, _ game.Rand) State {
	played := append(append([]game.Move(nil), m.played...), move)
	return mockState{player: m.player, played: played}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winner() (game.Player, bool) {
	return 0, false
}

func (m mockState) Evaluate(game.Evaluate) float64 {
	return 0
}
