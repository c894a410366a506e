package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"conquest/agent"
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
)

const (
	KindRandom    = "random"
	KindRule      = "rule"
	KindMCTS      = "mcts"
	KindMCTSTrain = "mcts-train"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: KindMCTS, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Kind: KindMCTS, Goroutines: 16, Duration: TimeBudget},
}

// Experiments maps the name of a preset to the match ups it plays. Each
// match up pairs agent A against agent B for NumGames games.
var Experiments = map[string][][2]metrics.AgentConfig{
	"parallelization": parallelizationMatchUps(),
	"cutoff":          cutoffMatchUps(),
	"baseline":        baselineMatchUps(),
	"evaluation":      evaluationMatchUps(),
}

// parallelizationMatchUps pairs each agent against the sequential baseline.
func parallelizationMatchUps() [][2]metrics.AgentConfig {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return matchUps
}

// cutoffMatchUps pairs full playouts against playouts cut off after a number of moves.
func cutoffMatchUps() [][2]metrics.AgentConfig {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget}
	matchUps := [][2]metrics.AgentConfig{}
	for i, cutoff := range []int{10, 75, 150, 200} {
		config := baseline
		config.ID = i + 1
		config.Cutoff = cutoff
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return matchUps
}

// baselineMatchUps measures the searcher against the scripted agents.
func baselineMatchUps() [][2]metrics.AgentConfig {
	mcts := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget}
	return [][2]metrics.AgentConfig{
		{mcts, {ID: 1, Kind: KindRandom}},
		{mcts, {ID: 2, Kind: KindRule}},
	}
}

// evaluationMatchUps pairs the resource tally against every other heuristic
// at equal search budget.
func evaluationMatchUps() [][2]metrics.AgentConfig {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget, Cutoff: 20, Evaluation: "resources"}
	matchUps := [][2]metrics.AgentConfig{}
	for i, name := range game.EvaluationNames() {
		if name == baseline.Evaluation {
			continue
		}
		config := baseline
		config.ID = i + 1
		config.Evaluation = name
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return matchUps
}

// RunExperiment plays every match up of a preset.
func RunExperiment(ctx context.Context, name string, cfg MatchConfig, outDir string) error {
	matchUps, ok := Experiments[name]
	if !ok {
		return fmt.Errorf("unknown experiment: %s", name)
	}
	if cfg.Games <= 0 {
		cfg.Games = NumGames
	}

	log.Info().Msgf("starting %s experiment...", name)
	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agentA=%+v and agentB=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])
		result, err := RunMatchup(ctx, fmt.Sprintf("%s_%d", name, mi+1), cfg, matchUp[0], matchUp[1], outDir)
		if err != nil {
			return err
		}
		log.Info().Msgf("completed matchup %d of %d: %s", mi+1, len(matchUps), result)
	}
	log.Info().Msgf("completed %s experiment", name)
	return nil
}

// RunMatchup plays a match between the agents described by a and b and stores
// the agent configs, game records and move records under outDir/name.
func RunMatchup(ctx context.Context, name string, cfg MatchConfig, a, b metrics.AgentConfig, outDir string) (ArenaResult, error) {
	factoryA, err := NewAgentFactory(a)
	if err != nil {
		return ArenaResult{}, err
	}
	factoryB, err := NewAgentFactory(b)
	if err != nil {
		return ArenaResult{}, err
	}
	cfg.AgentA, cfg.AgentB = a.ID, b.ID
	if cfg.Adjudicator == nil {
		cfg.Adjudicator = engine.TerritoryAdjudicator
	}

	result, err := PlayGames(ctx, cfg, factoryA, factoryB)
	if err != nil {
		return result, err
	}

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	configs := []metrics.AgentConfig{a, b}
	if a.ID == b.ID {
		configs = configs[:1]
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return result, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")
	if err := writer.WriteGameRecords(result.Records); err != nil {
		return result, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.MoveRecords); err != nil {
		return result, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.BaseDir())
	return result, nil
}

// NewAgentFactory returns the factory for the kind of agent in config. Search
// agents are seeded from the factory's random source.
func NewAgentFactory(config metrics.AgentConfig) (AgentFactory, error) {
	switch config.Kind {
	case KindRandom:
		return func(rng *rand.Rand) agent.Agent { return agent.NewRandomAgent(rng) }, nil
	case KindRule:
		return func(rng *rand.Rand) agent.Agent { return agent.NewRuleBasedAgent(rng) }, nil
	case KindMCTS, KindMCTSTrain:
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}

	if config.Episodes <= 0 && config.Duration <= 0 {
		return nil, fmt.Errorf("agent %d: %s needs episodes or a duration", config.ID, config.Kind)
	}
	evaluate, err := game.ParseEvaluation(config.Evaluation)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	if config.Kind == KindMCTSTrain {
		return func(rng *rand.Rand) agent.Agent {
			return agent.NewTrainingAgent(createMCTS(config, evaluate, rng), rng, config.Temperature)
		}, nil
	}
	return func(rng *rand.Rand) agent.Agent {
		return agent.NewEvaluationAgent(createMCTS(config, evaluate, rng))
	}, nil
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate, rng *rand.Rand) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	return searcher.NewMCTS(config.Goroutines, options...)
}
