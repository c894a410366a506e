package game

import "fmt"

// Move is a request to change the game. The set of moves is closed:
// PassMove, ReinforceMove, FortifyMove and AttackMove.
type Move interface {
	// IsStochastic reports whether applying the move can yield more than one outcome.
	IsStochastic() bool
	String() string
	isMove()
}

// PassMove ends the current turn.
type PassMove struct{}

// ReinforceMove places armies on a territory of the current player.
type ReinforceMove struct {
	Territory Territory
	Armies    uint8
}

// FortifyMove shifts armies between two adjacent own territories and ends the turn.
type FortifyMove struct {
	From   Territory
	To     Territory
	Armies uint8
}

// AttackMove commits Attacking armies from From against the enemy territory To.
type AttackMove struct {
	From      Territory
	To        Territory
	Attacking uint8
}

func (PassMove) isMove()      {}
func (ReinforceMove) isMove() {}
func (FortifyMove) isMove()   {}
func (AttackMove) isMove()    {}

func (PassMove) IsStochastic() bool      { return false }
func (ReinforceMove) IsStochastic() bool { return false }
func (FortifyMove) IsStochastic() bool   { return false }
func (AttackMove) IsStochastic() bool    { return true }

func (PassMove) String() string {
	return "Pass"
}

func (m ReinforceMove) String() string {
	return fmt.Sprintf("Reinforce(%s, %d)", m.Territory, m.Armies)
}

func (m FortifyMove) String() string {
	return fmt.Sprintf("Fortify(%s -> %s, %d)", m.From, m.To, m.Armies)
}

func (m AttackMove) String() string {
	return fmt.Sprintf("Attack(%s -> %s, %d)", m.From, m.To, m.Attacking)
}
