package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"conquest/agent"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"
)

type Option func(e *Engine)

func WithMaxRounds(rounds int) Option {
	return func(e *Engine) {
		e.maxRounds = rounds
	}
}

func WithMaxMovesPerTurn(moves int) Option {
	return func(e *Engine) {
		e.maxMovesPerTurn = moves
	}
}

func WithSelector(selector Selector) Option {
	return func(e *Engine) {
		e.selector = selector
	}
}

func WithAdjudicator(adjudicator Adjudicator) Option {
	return func(e *Engine) {
		e.adjudicator = adjudicator
	}
}

// Engine drives a game between two agents in the current process. A round is
// one player's sub-turn, from its first reinforcement to the move ending it.
type Engine struct {
	agents          [game.NumPlayers]agent.Agent
	state           game.GameState
	selector        Selector
	adjudicator     Adjudicator
	maxRounds       int
	maxMovesPerTurn int

	round       int
	moves       int
	moveMetrics []metrics.MoveMetric
}

func LocalEngine(agents [game.NumPlayers]agent.Agent, state game.GameState, options ...Option) *Engine {
	for p, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("no agent for player %s", game.Player(p)))
		}
	}
	e := &Engine{ // Default values
		agents:          agents,
		state:           state,
		selector:        MostLikelySelector,
		adjudicator:     DrawAdjudicator,
		maxRounds:       meta.MAX_ROUNDS,
		maxMovesPerTurn: meta.MAX_MOVES_PER_TURN,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// State returns the current state of the game.
func (e *Engine) State() game.GameState {
	return e.state
}

// Round returns the number of rounds played so far.
func (e *Engine) Round() int {
	return e.round
}

// PlayRound lets the current player move until it hands over the turn or the
// game ends. It reports whether the game is finished.
func (e *Engine) PlayRound() (bool, error) {
	if e.state.IsFinished() {
		return true, nil
	}
	e.round++
	player := e.state.CurrentPlayer()
	a := e.agents[player]

	for moves := 1; ; moves++ {
		move := a.FindMove(e.state)
		outcomes, err := e.state.Apply(move)
		if err != nil {
			return false, fmt.Errorf("round %d player %s: %w", e.round, player, err)
		}
		e.state = e.selector(outcomes)
		e.moves++
		e.record(player, a)

		log.Debug().Int("round", e.round).Int("move", moves).Msgf("player %s played %s", player, move)

		if e.state.IsFinished() {
			return true, nil
		}
		if e.state.CurrentPlayer() != player {
			return false, nil
		}
		if moves >= e.maxMovesPerTurn {
			return false, &RunawayError{Player: player, Round: e.round, Moves: moves}
		}
	}
}

func (e *Engine) record(player game.Player, a agent.Agent) {
	reporter, ok := a.(agent.SearchReporter)
	if !ok {
		return
	}
	e.moveMetrics = append(e.moveMetrics, metrics.MoveMetric{
		Step:         e.moves,
		Player:       player,
		SearchMetric: reporter.LastSearch(),
	})
}

// Run executes the entire game loop until a winner is found or the round cap
// is reached, in which case the adjudicator decides.
func (e *Engine) Run() (Result, error) {
	log.Info().Msgf("player %s is starting", e.state.CurrentPlayer())

	for e.round < e.maxRounds {
		done, err := e.PlayRound()
		if err != nil {
			return e.result(), err
		}
		if done {
			break
		}
	}

	result := e.result()
	if winner, ok := e.state.Winner(); ok {
		result.Winner = winner
		log.Info().Int("rounds", e.round).Msgf("player %s won", winner)
		return result, nil
	}

	if winner, ok := e.adjudicator(e.state); ok {
		result.Winner = winner
		result.Adjudicated = true
	} else {
		result.Draw = true
	}
	log.Info().Int("rounds", e.round).Msgf("stopped at the round cap: %s", result)
	return result, nil
}

func (e *Engine) result() Result {
	return Result{
		Rounds:      e.round,
		Moves:       e.moves,
		State:       e.state,
		MoveMetrics: e.moveMetrics,
	}
}
