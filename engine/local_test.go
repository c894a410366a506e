package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"conquest/agent"
	"conquest/experiments/metrics"
	"conquest/game"
)

// scripted plays the move returned by next for every state.
type scripted struct {
	next func(state game.GameState) game.Move
}

func (s scripted) FindMove(state game.GameState) game.Move {
	return s.next(state)
}

type reporting struct {
	scripted
	searches int
}

func (r *reporting) FindMove(state game.GameState) game.Move {
	r.searches++
	return r.scripted.FindMove(state)
}

func (r *reporting) LastSearch() metrics.SearchMetric {
	return metrics.SearchMetric{Episodes: r.searches}
}

// lastMove reinforces everything at once and then passes.
var lastMove = scripted{next: func(state game.GameState) game.Move {
	moves := state.LegalMoves()
	return moves[len(moves)-1]
}}

// board gives every territory to player A with two armies, then applies the
// overrides.
func board(current game.Player, phase game.Phase, overrides map[game.Territory]game.TerritoryState) game.GameState {
	var territories [game.NumTerritories]game.TerritoryState
	for i := range territories {
		territories[i] = game.TerritoryState{Owner: game.PlayerA, Armies: 2}
	}
	for t, ts := range overrides {
		territories[t] = ts
	}
	return game.NewGameState(current, territories, phase)
}

func TestRun(t *testing.T) {
	t.Run("capture ends the game", func(t *testing.T) {
		state := board(game.PlayerA, game.AttackPhase(), map[game.Territory]game.TerritoryState{
			game.Alaska:    {Owner: game.PlayerA, Armies: 10},
			game.Kamchatka: {Owner: game.PlayerB, Armies: 1},
		})
		attack := scripted{next: func(game.GameState) game.Move {
			return game.AttackMove{From: game.Alaska, To: game.Kamchatka, Attacking: 3}
		}}
		e := LocalEngine([game.NumPlayers]agent.Agent{attack, lastMove}, state)

		result, err := e.Run()
		require.NoError(t, err)
		require.Equal(t, game.PlayerA, result.Winner)
		require.False(t, result.Draw)
		require.False(t, result.Adjudicated)
		require.Equal(t, 1, result.Rounds)
		require.Equal(t, 1, result.Moves)
		require.True(t, result.State.IsFinished())
		require.Equal(t, game.TerritoryState{Owner: game.PlayerA, Armies: 3}, result.State.Territory(game.Kamchatka))
	})

	t.Run("round cap draws", func(t *testing.T) {
		state := game.InitialState(rand.New(rand.NewSource(4)))
		e := LocalEngine([game.NumPlayers]agent.Agent{lastMove, lastMove}, state, WithMaxRounds(4))

		result, err := e.Run()
		require.NoError(t, err)
		require.True(t, result.Draw)
		require.Equal(t, 4, result.Rounds)
		require.Equal(t, 8, result.Moves, "one reinforcement and one pass per round")
		require.Empty(t, result.MoveMetrics)
		require.Equal(t, game.PlayerA, result.State.CurrentPlayer())
	})

	t.Run("round cap adjudicates by territory", func(t *testing.T) {
		state := board(game.PlayerA, game.AttackPhase(), map[game.Territory]game.TerritoryState{
			game.Kamchatka: {Owner: game.PlayerB, Armies: 1},
		})
		e := LocalEngine([game.NumPlayers]agent.Agent{lastMove, lastMove}, state,
			WithMaxRounds(3), WithAdjudicator(TerritoryAdjudicator))

		result, err := e.Run()
		require.NoError(t, err)
		require.False(t, result.Draw)
		require.True(t, result.Adjudicated)
		require.Equal(t, game.PlayerA, result.Winner)
		require.Equal(t, 3, result.Rounds)
	})

	t.Run("illegal move is reported with its round", func(t *testing.T) {
		state := game.InitialState(rand.New(rand.NewSource(4)))
		pass := scripted{next: func(game.GameState) game.Move { return game.PassMove{} }}
		e := LocalEngine([game.NumPlayers]agent.Agent{pass, pass}, state)

		_, err := e.Run()
		require.ErrorIs(t, err, game.ErrMoveNotInPhase)
		require.Contains(t, err.Error(), "round 1 player A")
	})

	t.Run("runaway sub-turn", func(t *testing.T) {
		state := board(game.PlayerA, game.ReinforcePhase(200), map[game.Territory]game.TerritoryState{
			game.Kamchatka: {Owner: game.PlayerB, Armies: 1},
		})
		trickle := scripted{next: func(game.GameState) game.Move {
			return game.ReinforceMove{Territory: game.Alaska, Armies: 1}
		}}
		e := LocalEngine([game.NumPlayers]agent.Agent{trickle, lastMove}, state, WithMaxMovesPerTurn(5))

		result, err := e.Run()
		require.ErrorIs(t, err, game.ErrTooManyMoves)
		var runaway *RunawayError
		require.True(t, errors.As(err, &runaway))
		require.Equal(t, RunawayError{Player: game.PlayerA, Round: 1, Moves: 5}, *runaway)
		require.Equal(t, 5, result.Moves)
		require.Equal(t, uint8(7), result.State.Armies(game.Alaska))
	})

	t.Run("search metrics are recorded per move", func(t *testing.T) {
		state := game.InitialState(rand.New(rand.NewSource(4)))
		reporter := &reporting{scripted: lastMove}
		e := LocalEngine([game.NumPlayers]agent.Agent{reporter, lastMove}, state, WithMaxRounds(3))

		result, err := e.Run()
		require.NoError(t, err)
		require.Len(t, result.MoveMetrics, 4, "player A plays rounds 1 and 3")
		require.Equal(t, 1, result.MoveMetrics[0].Step)
		require.Equal(t, 5, result.MoveMetrics[2].Step)
		require.Equal(t, game.PlayerA, result.MoveMetrics[3].Player)
		require.Equal(t, 4, result.MoveMetrics[3].Episodes)
	})
}

func TestPlayRound(t *testing.T) {
	state := game.InitialState(rand.New(rand.NewSource(4)))
	e := LocalEngine([game.NumPlayers]agent.Agent{lastMove, lastMove}, state)

	done, err := e.PlayRound()
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 1, e.Round())
	require.Equal(t, game.PlayerB, e.State().CurrentPlayer())
	require.Equal(t, game.Reinforcing, e.State().Phase().Kind())

	t.Run("finished game", func(t *testing.T) {
		finished := board(game.PlayerB, game.ReinforcePhase(3), nil)
		e := LocalEngine([game.NumPlayers]agent.Agent{lastMove, lastMove}, finished)
		done, err := e.PlayRound()
		require.NoError(t, err)
		require.True(t, done)
		require.Equal(t, 0, e.Round())
	})
}

func TestRandomAgentsFinishOrStop(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	state := game.InitialState(rng)
	agents := [game.NumPlayers]agent.Agent{agent.NewRuleBasedAgent(rng), agent.NewRandomAgent(rng)}
	e := LocalEngine(agents, state, WithSelector(SampleSelector(rng)), WithMaxRounds(200))

	result, err := e.Run()
	if err != nil {
		// A random agent can keep fortifying and attacking past the move cap
		require.ErrorIs(t, err, game.ErrTooManyMoves)
		return
	}
	require.LessOrEqual(t, result.Rounds, 200)
	if !result.Draw {
		require.True(t, result.State.IsFinished())
	}
}

func TestAdjudicators(t *testing.T) {
	even := board(game.PlayerA, game.AttackPhase(), nil)
	_, ok := DrawAdjudicator(even)
	require.False(t, ok)

	winner, ok := TerritoryAdjudicator(board(game.PlayerB, game.AttackPhase(), map[game.Territory]game.TerritoryState{
		game.Japan: {Owner: game.PlayerB, Armies: 1},
	}))
	require.True(t, ok)
	require.Equal(t, game.PlayerA, winner)
}
