package searcher

import "conquest/game"

// State is the view of a game the search tree works on. It must be
// immutable: Play returns a new State.
type State interface {
	Player() game.Player
	LegalMoves() []game.Move
	// Play applies a move, drawing one outcome of a stochastic move from rng.
	Play(move game.Move, rng game.Rand) State
	Hash() game.StateHash
	Winner() (game.Player, bool)
	Evaluate(game.Evaluate) float64
}

type gameState struct {
	gs game.GameState
}

// NewState wraps a game state for the search tree.
func NewState(gs game.GameState) State {
	return gameState{gs: gs}
}

func (s gameState) Player() game.Player {
	return s.gs.CurrentPlayer()
}

func (s gameState) LegalMoves() []game.Move {
	return s.gs.LegalMoves()
}

func (s gameState) Play(move game.Move, rng game.Rand) State {
	outcomes, err := s.gs.Apply(move)
	if err != nil {
		// Moves come from LegalMoves
		panic(err)
	}
	return gameState{gs: outcomes.Sample(rng)}
}

func (s gameState) Hash() game.StateHash {
	return s.gs.Hash()
}

func (s gameState) Winner() (game.Player, bool) {
	return s.gs.Winner()
}

func (s gameState) Evaluate(evaluate game.Evaluate) float64 {
	return evaluate(s.gs)
}
