package searcher

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"
)

type Option func(m *MCTS)

// MCTS is a tree-parallel Monte Carlo tree search with virtual loss. Every
// search goroutine draws its playouts and attack outcomes from its own
// source; with a single goroutine and an episode budget a search seeded
// through WithRand is reproducible. Simulate must not be called concurrently
// on one MCTS.
type MCTS struct {
	goroutines int
	episodes   int
	duration   time.Duration
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
	rng        *rand.Rand
}

// WithEpisodes bounds a search by its number of episodes. It takes
// precedence over WithDuration.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithCutoff sets the playout depth after which the evaluation replaces the
// outcome of the game.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// WithRand seeds the search goroutines from rng instead of the global source.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		m.rng = rng
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{
		goroutines: max(goroutines, 1),
		cutoff:     meta.WITH_CUTOFF,
		evaluate:   game.EvaluateResources,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from gs and returns the visit count of every explored
// root move together with the search metrics.
func (m *MCTS) Simulate(gs game.GameState) (map[game.Move]float64, metrics.SearchMetric) {
	return m.Search(NewState(gs))
}

func (m *MCTS) Search(state State) (map[game.Move]float64, metrics.SearchMetric) {
	root := newDecision(nil, state.Player(), state)

	m.metrics.Start(m.goroutines, m.cutoff)
	b := m.budget()
	var wg sync.WaitGroup
	for _, seed := range m.seeds() {
		w := worker{
			root:     root,
			rng:      rand.New(rand.NewSource(seed)),
			cutoff:   m.cutoff,
			evaluate: m.evaluate,
			metrics:  m.metrics,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b.take() {
				w.episode(state)
			}
		}()
	}
	wg.Wait()
	metric := m.metrics.Complete()

	policy := root.Policy()
	log.Debug().Int("moves", len(policy)).Msgf("search finished after %s", metric.Duration)
	return policy, metric
}

func (m *MCTS) seeds() []uint64 {
	seeds := make([]uint64, m.goroutines)
	for i := range seeds {
		if m.rng != nil {
			seeds[i] = m.rng.Uint64()
		} else {
			seeds[i] = rand.Uint64()
		}
	}
	return seeds
}

func (m *MCTS) budget() *budget {
	b := &budget{}
	if m.episodes > 0 {
		b.remaining.Store(int64(m.episodes))
	} else {
		b.deadline = time.Now().Add(m.duration)
	}
	return b
}

// budget hands out episodes to the search goroutines until either the count
// or, without a count, the deadline runs out.
type budget struct {
	remaining atomic.Int64
	deadline  time.Time
}

func (b *budget) take() bool {
	if !b.deadline.IsZero() {
		return time.Now().Before(b.deadline)
	}
	return b.remaining.Add(-1) >= 0
}

// worker runs the episodes of one search goroutine.
type worker struct {
	root     *decision
	rng      *rand.Rand
	cutoff   int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func (w worker) episode(state State) {
	leaf, leafState := descend(w.root, state, w.rng)
	player, score := playout(leafState, w.rng, w.cutoff, w.evaluate, w.metrics)
	for node := leaf; node != nil; node = node.Backup(player, score) {
	}
	w.metrics.AddEpisode()
}

// descend selects down the tree and stops at the first expanded or terminal node.
func descend(root Node, state State, rng game.Rand) (Node, State) {
	node := root
	for {
		next, nextState, selected := node.SelectOrExpand(state, rng)
		if !selected {
			return next, nextState
		}
		node, state = next, nextState
	}
}

// playout plays random moves until the game ends or cutoff moves were made.
// A finished game scores a win for its winner; otherwise the reached state is
// evaluated for the player to move.
func playout(state State, rng game.Rand, cutoff int, evaluate game.Evaluate, collector metrics.Collector) (game.Player, float64) {
	for depth := 0; depth < cutoff; depth++ {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			break
		}
		state = state.Play(moves[rng.Intn(len(moves))], rng)
	}

	if winner, ok := state.Winner(); ok {
		collector.AddFullPlayout()
		return winner, Win
	}
	return state.Player(), state.Evaluate(evaluate)
}
