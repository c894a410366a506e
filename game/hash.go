package game

import "github.com/cespare/xxhash/v2"

// StateHash identifies a GameState. Equal states always share a hash.
type StateHash uint64

// Hash returns the xxhash of the current player, the phase and every territory.
func (gs GameState) Hash() StateHash {
	var buf [3 + 2*NumTerritories]byte
	buf[0] = byte(gs.currentPlayer)
	buf[1] = byte(gs.phase.kind)
	buf[2] = gs.phase.remaining
	for i, ts := range gs.territories {
		buf[3+2*i] = byte(ts.Owner)
		buf[4+2*i] = ts.Armies
	}
	return StateHash(xxhash.Sum64(buf[:]))
}
