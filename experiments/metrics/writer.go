package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type AgentConfig struct {
	ID          int
	Kind        string // random, rule, mcts or mcts-train
	Goroutines  int
	Duration    time.Duration
	Episodes    int
	Cutoff      int
	Evaluation  string  // game.ParseEvaluation name, empty for the default
	Temperature float64 // mcts-train only
}

type GameRecord struct {
	ID        string // uuid
	Game      int
	AgentA    int // AgentConfig.ID
	AgentB    int // AgentConfig.ID
	Winner    string
	Result    string // win, draw, adjudicated or forfeit
	Rounds    int
	Moves     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type MoveRecord struct {
	Game int // GameRecord.Game
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates dir/name/<timestamp> for the files of one experiment.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Goroutines),
			config.Duration.String(),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Cutoff),
			config.Evaluation,
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
		})
	}
	header := []string{"id", "kind", "goroutines", "duration", "episodes", "cutoff", "evaluation", "temperature"}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			strconv.Itoa(record.Game),
			strconv.Itoa(record.AgentA),
			strconv.Itoa(record.AgentB),
			record.Winner,
			record.Result,
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "game", "agent_a", "agent_b", "winner", "result", "rounds", "moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player.String(),
			strconv.Itoa(record.Goroutines),
			record.Duration.String(),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Cutoff),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	header := []string{"game", "step", "player", "goroutines", "duration", "episodes", "cutoff", "full_playouts"}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
