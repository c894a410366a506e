package game

// Player is one of the two sides of a game.
type Player uint8

const (
	PlayerA Player = iota
	PlayerB
)

const NumPlayers = 2

// Next returns the player whose turn follows p.
func (p Player) Next() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "?"
	}
}

// AllPlayers returns both players, starting player first.
func AllPlayers() []Player {
	return []Player{PlayerA, PlayerB}
}
