package game

import (
	"fmt"
	"iter"
	"strings"
)

type PhaseKind uint8

const (
	Reinforcing PhaseKind = iota
	Attacking
	// Fortifying is handled like Attacking without attacks. No transition
	// currently produces it: Pass and Fortify moves end the turn directly.
	Fortifying
)

// Phase is the current step of a turn. Only a reinforcing phase carries a
// payload: the number of armies the current player still has to place.
type Phase struct {
	kind      PhaseKind
	remaining uint8
}

func ReinforcePhase(remaining uint8) Phase {
	return Phase{kind: Reinforcing, remaining: remaining}
}

func AttackPhase() Phase {
	return Phase{kind: Attacking}
}

func FortifyPhase() Phase {
	return Phase{kind: Fortifying}
}

func (p Phase) Kind() PhaseKind {
	return p.kind
}

// Remaining returns the reinforcements left to place, 0 outside Reinforcing.
func (p Phase) Remaining() uint8 {
	return p.remaining
}

func (p Phase) String() string {
	switch p.kind {
	case Reinforcing:
		return fmt.Sprintf("Reinforce(%d)", p.remaining)
	case Attacking:
		return "Attack"
	case Fortifying:
		return "Fortify"
	default:
		return fmt.Sprintf("Phase(%d)", p.kind)
	}
}

// TerritoryState is the owner and army count of a single territory.
type TerritoryState struct {
	Owner  Player
	Armies uint8
}

// GameState is an immutable snapshot of a game. It is passed by value; every
// operation that changes the game returns a new GameState.
type GameState struct {
	currentPlayer Player
	territories   [NumTerritories]TerritoryState
	phase         Phase
}

// NewGameState builds a state from a complete territory table.
func NewGameState(current Player, territories [NumTerritories]TerritoryState, phase Phase) GameState {
	return GameState{
		currentPlayer: current,
		territories:   territories,
		phase:         phase,
	}
}

func (gs GameState) CurrentPlayer() Player {
	return gs.currentPlayer
}

func (gs GameState) Phase() Phase {
	return gs.phase
}

func (gs GameState) Territory(t Territory) TerritoryState {
	return gs.territories[t]
}

func (gs GameState) Owner(t Territory) Player {
	return gs.territories[t].Owner
}

func (gs GameState) Armies(t Territory) uint8 {
	return gs.territories[t].Armies
}

// Territories returns a copy of the full territory table.
func (gs GameState) Territories() [NumTerritories]TerritoryState {
	return gs.territories
}

// All iterates over every territory and its state in identifier order.
func (gs GameState) All() iter.Seq2[Territory, TerritoryState] {
	return func(yield func(Territory, TerritoryState) bool) {
		for i, ts := range gs.territories {
			if !yield(Territory(i), ts) {
				return
			}
		}
	}
}

// TerritoriesOf returns the territories owned by p.
func (gs GameState) TerritoriesOf(p Player) []Territory {
	var territories []Territory
	for t, ts := range gs.All() {
		if ts.Owner == p {
			territories = append(territories, t)
		}
	}
	return territories
}

func (gs GameState) TerritoryCount(p Player) int {
	count := 0
	for _, ts := range gs.territories {
		if ts.Owner == p {
			count++
		}
	}
	return count
}

// ArmyCount sums the armies of every territory owned by p.
func (gs GameState) ArmyCount(p Player) int {
	armies := 0
	for _, ts := range gs.territories {
		if ts.Owner == p {
			armies += int(ts.Armies)
		}
	}
	return armies
}

// ContinentsOf returns the continents p owns completely.
func (gs GameState) ContinentsOf(p Player) []Continent {
	var continents []Continent
	for _, c := range AllContinents() {
		if gs.continentOwner(c) == p {
			continents = append(continents, c)
		}
	}
	return continents
}

// continentOwner returns the sole owner of c, or NumPlayers if it is split.
func (gs GameState) continentOwner(c Continent) Player {
	members := continentMembers[c]
	owner := gs.territories[members[0]].Owner
	for _, t := range members[1:] {
		if gs.territories[t].Owner != owner {
			return NumPlayers
		}
	}
	return owner
}

// IsFinished reports whether a single player owns the whole board.
func (gs GameState) IsFinished() bool {
	owner := gs.territories[0].Owner
	for _, ts := range gs.territories[1:] {
		if ts.Owner != owner {
			return false
		}
	}
	return true
}

// Winner returns the player owning the whole board, if any.
func (gs GameState) Winner() (Player, bool) {
	if !gs.IsFinished() {
		return 0, false
	}
	return gs.territories[0].Owner, true
}

func (gs GameState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current player: %s (%s)\n", gs.currentPlayer, gs.phase)
	for t, ts := range gs.All() {
		fmt.Fprintf(&sb, "%-24s - %s %d\n", t, ts.Owner, ts.Armies)
	}
	return sb.String()
}

// addArmies adds delta armies to a territory of the current player.
func (gs *GameState) addArmies(t Territory, delta int) error {
	ts := &gs.territories[t]
	if ts.Owner != gs.currentPlayer {
		if delta < 0 {
			return fmt.Errorf("%w: %s", ErrFromTerritoryNotOwned, t)
		}
		return fmt.Errorf("%w: %s", ErrToTerritoryNotOwned, t)
	}
	armies := int(ts.Armies) + delta
	if armies < 0 || armies > maxArmies {
		return fmt.Errorf("%w: %s would hold %d armies", ErrTooManyUnitsMoved, t, armies)
	}
	ts.Armies = uint8(armies)
	return nil
}

const maxArmies = 255
