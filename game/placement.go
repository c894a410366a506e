package game

import (
	"fmt"

	"conquest/meta"
)

type placementSlot struct {
	owner   Player
	claimed bool
	armies  uint8
}

// InitialPlacement is the board while players are still claiming territories
// and distributing their starting armies. It is converted once by Start.
type InitialPlacement struct {
	currentPlayer Player
	territories   [NumTerritories]placementSlot
}

func NewInitialPlacement() *InitialPlacement {
	return &InitialPlacement{currentPlayer: PlayerA}
}

// Claim assigns an unclaimed territory with one army to the active player and
// hands the claim to the other player.
func (ip *InitialPlacement) Claim(t Territory) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownTerritory, t)
	}
	slot := &ip.territories[t]
	if slot.claimed {
		return fmt.Errorf("%w: %s already claimed by %s", ErrToTerritoryOwned, t, slot.owner)
	}
	*slot = placementSlot{owner: ip.currentPlayer, claimed: true, armies: 1}
	ip.currentPlayer = ip.currentPlayer.Next()
	return nil
}

// ClaimRandom claims every remaining territory round-robin, each pick uniform
// among the unclaimed ones.
func (ip *InitialPlacement) ClaimRandom(rng Rand) {
	unclaimed := ip.unclaimed()
	for len(unclaimed) > 0 {
		i := rng.Intn(len(unclaimed))
		t := unclaimed[i]
		unclaimed[i] = unclaimed[len(unclaimed)-1]
		unclaimed = unclaimed[:len(unclaimed)-1]
		// t comes from the unclaimed list, so Claim cannot fail
		_ = ip.Claim(t)
	}
}

// DistributeRandom tops every player up to the starting army total, one army
// at a time on a uniformly random territory the player owns.
func (ip *InitialPlacement) DistributeRandom(rng Rand) {
	for _, p := range AllPlayers() {
		owned := ip.owned(p)
		if len(owned) == 0 {
			continue
		}
		for armies := ip.armies(p); armies < meta.STARTING_ARMIES; armies++ {
			ip.territories[owned[rng.Intn(len(owned))]].armies++
		}
	}
}

// PlaceRandom runs the whole randomized setup.
func (ip *InitialPlacement) PlaceRandom(rng Rand) {
	ip.ClaimRandom(rng)
	ip.DistributeRandom(rng)
}

// Start converts the placement into the first GameState: player A begins
// with its reinforcements for the initial holdings.
func (ip *InitialPlacement) Start() (GameState, error) {
	var territories [NumTerritories]TerritoryState
	for i, slot := range ip.territories {
		if !slot.claimed {
			return GameState{}, fmt.Errorf("%w: %s", ErrPlacementIncomplete, Territory(i))
		}
		territories[i] = TerritoryState{Owner: slot.owner, Armies: slot.armies}
	}
	gs := NewGameState(PlayerA, territories, Phase{})
	gs.phase = ReinforcePhase(gs.NumberOfReinforcements(PlayerA))
	return gs, nil
}

// InitialState returns a freshly placed game.
func InitialState(rng Rand) GameState {
	ip := NewInitialPlacement()
	ip.PlaceRandom(rng)
	gs, err := ip.Start()
	if err != nil {
		// PlaceRandom claims every territory
		panic(err)
	}
	return gs
}

func (ip *InitialPlacement) unclaimed() []Territory {
	var territories []Territory
	for i, slot := range ip.territories {
		if !slot.claimed {
			territories = append(territories, Territory(i))
		}
	}
	return territories
}

func (ip *InitialPlacement) owned(p Player) []Territory {
	var territories []Territory
	for i, slot := range ip.territories {
		if slot.claimed && slot.owner == p {
			territories = append(territories, Territory(i))
		}
	}
	return territories
}

func (ip *InitialPlacement) armies(p Player) int {
	armies := 0
	for _, slot := range ip.territories {
		if slot.claimed && slot.owner == p {
			armies += int(slot.armies)
		}
	}
	return armies
}
