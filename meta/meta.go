// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the playout depth after which MCTS evaluates instead of simulating.
const WITH_CUTOFF = 100

// MAX_ROUNDS caps a game; a game still running afterwards is adjudicated.
const MAX_ROUNDS = 1000

// MAX_MOVES_PER_TURN caps the moves of a single sub-turn.
const MAX_MOVES_PER_TURN = 100

// STARTING_ARMIES is the army total of each player after the initial placement.
const STARTING_ARMIES = 40

// ARENA_WORKERS is the default size of the arena worker pool.
const ARENA_WORKERS = 4
