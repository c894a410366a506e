package metrics

import (
	"sync/atomic"
	"time"

	"conquest/game"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
}

type MoveMetric struct {
	Step   int
	Player game.Player
	SearchMetric
}

// Collector gathers the statistics of one search. Its counters may be
// updated from every search goroutine; Start and Complete may not.
type Collector interface {
	Start(goroutines, cutoff int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
