package experiments

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"conquest/agent"
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"
)

// AgentFactory builds a fresh agent for one game from its own random source.
type AgentFactory func(rng *rand.Rand) agent.Agent

type MatchConfig struct {
	Games           int
	Workers         int // Defaults to meta.ARENA_WORKERS
	Seed            uint64
	MaxRounds       int // Defaults to meta.MAX_ROUNDS
	MaxMovesPerTurn int // Defaults to meta.MAX_MOVES_PER_TURN
	Adjudicator     engine.Adjudicator
	AgentA          int // metrics.AgentConfig.ID of the agent playing A
	AgentB          int // metrics.AgentConfig.ID of the agent playing B
}

const (
	ResultWin         = "win"
	ResultDraw        = "draw"
	ResultAdjudicated = "adjudicated"
	ResultForfeit     = "forfeit"
)

// ArenaResult holds the records of a match, ordered by game number.
type ArenaResult struct {
	Records     []metrics.GameRecord
	MoveRecords []metrics.MoveRecord
}

// Wins counts the games won by p, forfeits and adjudications included.
func (r ArenaResult) Wins(p game.Player) int {
	wins := 0
	for _, record := range r.Records {
		if record.Result != ResultDraw && record.Winner == p.String() {
			wins++
		}
	}
	return wins
}

func (r ArenaResult) Draws() int {
	return r.count(ResultDraw)
}

func (r ArenaResult) Forfeits() int {
	return r.count(ResultForfeit)
}

func (r ArenaResult) count(result string) int {
	n := 0
	for _, record := range r.Records {
		if record.Result == result {
			n++
		}
	}
	return n
}

// Winner returns the player with more wins, false on a tie.
func (r ArenaResult) Winner() (game.Player, bool) {
	a, b := r.Wins(game.PlayerA), r.Wins(game.PlayerB)
	switch {
	case a > b:
		return game.PlayerA, true
	case b > a:
		return game.PlayerB, true
	default:
		return 0, false
	}
}

func (r ArenaResult) AvgRounds() float64 {
	if len(r.Records) == 0 {
		return 0
	}
	total := 0
	for _, record := range r.Records {
		total += record.Rounds
	}
	return float64(total) / float64(len(r.Records))
}

func (r ArenaResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games: ", len(r.Records))
	for _, p := range game.AllPlayers() {
		fmt.Fprintf(&sb, "%s won %d, ", p, r.Wins(p))
	}
	fmt.Fprintf(&sb, "%d draws, %d forfeits, %.1f rounds on average", r.Draws(), r.Forfeits(), r.AvgRounds())
	return sb.String()
}

type job struct {
	game int
	seed uint64
}

type outcome struct {
	record metrics.GameRecord
	moves  []metrics.MoveRecord
	err    error
}

// PlayGames plays cfg.Games games between the agents built by factoryA and
// factoryB on a pool of workers. Every game derives the placement, the dice
// and the agents' sources from a seed drawn from cfg.Seed, so the number of
// workers never changes a game. Games are reproducible as long as the agents
// only draw from their source: random and rule agents do, search agents only
// with one goroutine and an episode budget. A game whose player keeps the
// turn past the move cap is forfeited to the opponent; any other engine error
// aborts the match.
func PlayGames(ctx context.Context, cfg MatchConfig, factoryA, factoryB AgentFactory) (ArenaResult, error) {
	if cfg.Games <= 0 {
		return ArenaResult{}, fmt.Errorf("invalid number of games: %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = meta.ARENA_WORKERS
	}
	workers = min(workers, cfg.Games)

	jobs := make(chan job, cfg.Games)
	results := make(chan outcome, cfg.Games)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results <- playGame(cfg, j, [game.NumPlayers]AgentFactory{factoryA, factoryB})
			}
		}()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for i := 0; i < cfg.Games; i++ {
		jobs <- job{game: i + 1, seed: rng.Uint64()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var result ArenaResult
	var errs []error
	for o := range results {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		result.Records = append(result.Records, o.record)
		result.MoveRecords = append(result.MoveRecords, o.moves...)
	}
	slices.SortFunc(result.Records, func(a, b metrics.GameRecord) int {
		return a.Game - b.Game
	})
	slices.SortStableFunc(result.MoveRecords, func(a, b metrics.MoveRecord) int {
		return a.Game - b.Game
	})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, errors.Join(errs...)
}

func playGame(cfg MatchConfig, j job, factories [game.NumPlayers]AgentFactory) outcome {
	rng := rand.New(rand.NewSource(j.seed))
	var agents [game.NumPlayers]agent.Agent
	for p, factory := range factories {
		agents[p] = factory(rand.New(rand.NewSource(rng.Uint64())))
	}

	options := []engine.Option{engine.WithSelector(engine.SampleSelector(rng))}
	if cfg.MaxRounds > 0 {
		options = append(options, engine.WithMaxRounds(cfg.MaxRounds))
	}
	if cfg.MaxMovesPerTurn > 0 {
		options = append(options, engine.WithMaxMovesPerTurn(cfg.MaxMovesPerTurn))
	}
	if cfg.Adjudicator != nil {
		options = append(options, engine.WithAdjudicator(cfg.Adjudicator))
	}

	log.Debug().Int("game", j.game).Msg("starting game")
	start := time.Now()
	e := engine.LocalEngine(agents, game.InitialState(rng), options...)
	result, err := e.Run()
	end := time.Now()

	record := metrics.GameRecord{
		ID:        uuid.NewString(),
		Game:      j.game,
		AgentA:    cfg.AgentA,
		AgentB:    cfg.AgentB,
		Rounds:    result.Rounds,
		Moves:     result.Moves,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	var runaway *engine.RunawayError
	switch {
	case errors.As(err, &runaway):
		record.Winner = runaway.Player.Next().String()
		record.Result = ResultForfeit
	case err != nil:
		return outcome{err: fmt.Errorf("game %d: %w", j.game, err)}
	case result.Draw:
		record.Result = ResultDraw
	case result.Adjudicated:
		record.Winner = result.Winner.String()
		record.Result = ResultAdjudicated
	default:
		record.Winner = result.Winner.String()
		record.Result = ResultWin
	}
	log.Info().Int("game", j.game).Int("rounds", record.Rounds).Msgf("completed game with %s: %s", record.Result, record.Winner)

	moves := make([]metrics.MoveRecord, 0, len(result.MoveMetrics))
	for _, mm := range result.MoveMetrics {
		moves = append(moves, metrics.MoveRecord{Game: j.game, MoveMetric: mm})
	}
	return outcome{record: record, moves: moves}
}
