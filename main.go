package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"conquest/engine"
	"conquest/experiments"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"
)

type summary struct {
	Games     int     `json:"games"`
	WinsA     int     `json:"wins_a"`
	WinsB     int     `json:"wins_b"`
	Draws     int     `json:"draws"`
	Forfeits  int     `json:"forfeits"`
	AvgRounds float64 `json:"avg_rounds"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		experiment string
		kindA      string
		kindB      string
		numGames   int
		workers    int
		seed       uint64
		maxRounds  int
		outDir     string
		goroutines int
		episodes   int
		duration   time.Duration
		cutoff     int
		evaluation string
		temp       float64
		logLevel   string
		jsonOut    bool
	)

	flag.StringVar(&experiment, "experiment", "", "Preset experiment to run (parallelization, cutoff, baseline, evaluation)")
	flag.StringVar(&kindA, "a", experiments.KindMCTS, "Agent playing A (random, rule, mcts, mcts-train)")
	flag.StringVar(&kindB, "b", experiments.KindRule, "Agent playing B (random, rule, mcts, mcts-train)")
	flag.IntVar(&numGames, "games", 10, "Number of games to run")
	flag.IntVar(&workers, "workers", meta.ARENA_WORKERS, "Concurrency (parallel games)")
	flag.Uint64Var(&seed, "seed", 0, "Base seed (0 = time based)")
	flag.IntVar(&maxRounds, "max-rounds", meta.MAX_ROUNDS, "Rounds before a game is adjudicated")
	flag.StringVar(&outDir, "out", envOrDefault("CONQUEST_OUT", "results"), "Directory for the experiment records (or use CONQUEST_OUT env)")
	flag.IntVar(&goroutines, "goroutines", meta.GO_ROUTINES, "Search goroutines of mcts agents")
	flag.IntVar(&episodes, "episodes", meta.EPISODES, "Search episodes per move of mcts agents")
	flag.DurationVar(&duration, "duration", 0, "Search duration per move of mcts agents, replaces episodes")
	flag.IntVar(&cutoff, "cutoff", meta.WITH_CUTOFF, "Playout depth before mcts agents evaluate")
	flag.StringVar(&evaluation, "eval", "resources", fmt.Sprintf("Heuristic of mcts agents at the cutoff %v", game.EvaluationNames()))
	flag.Float64Var(&temp, "temperature", 1.0, "Sampling temperature of mcts-train agents")
	flag.StringVar(&logLevel, "log-level", envOrDefault("CONQUEST_LOG_LEVEL", "info"), "Log level (or use CONQUEST_LOG_LEVEL env)")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")

	flag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	cfg := experiments.MatchConfig{
		Games:       numGames,
		Workers:     workers,
		Seed:        seed,
		MaxRounds:   maxRounds,
		Adjudicator: engine.TerritoryAdjudicator,
	}

	if experiment != "" {
		if err := experiments.RunExperiment(ctx, experiment, cfg, outDir); err != nil {
			log.Fatal().Err(err).Msgf("Experiment %s failed", experiment)
		}
		return
	}

	agentConfig := func(id int, kind string) metrics.AgentConfig {
		config := metrics.AgentConfig{ID: id, Kind: kind}
		switch kind {
		case experiments.KindMCTS, experiments.KindMCTSTrain:
			config.Goroutines = goroutines
			config.Cutoff = cutoff
			config.Evaluation = evaluation
			if kind == experiments.KindMCTSTrain {
				config.Temperature = temp
			}
			if duration > 0 {
				config.Duration = duration
			} else {
				config.Episodes = episodes
			}
		}
		return config
	}

	name := fmt.Sprintf("%s_vs_%s", kindA, kindB)
	log.Info().Uint64("seed", seed).Msgf("Running %d games of %s", numGames, name)
	result, err := experiments.RunMatchup(ctx, name, cfg, agentConfig(1, kindA), agentConfig(2, kindB), outDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Matchup failed")
	}

	if jsonOut {
		out := summary{
			Games:     len(result.Records),
			WinsA:     result.Wins(game.PlayerA),
			WinsB:     result.Wins(game.PlayerB),
			Draws:     result.Draws(),
			Forfeits:  result.Forfeits(),
			AvgRounds: result.AvgRounds(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode results")
		}
		return
	}
	fmt.Println(result)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
