package game

import "errors"

// Move application errors. Apply wraps them with the offending move or phase,
// so match with errors.Is.
var (
	ErrMoveNotInPhase         = errors.New("move not allowed in current phase")
	ErrTooManyReinforcements  = errors.New("more reinforcements than remaining")
	ErrTooManyMoves           = errors.New("too many moves in one turn")
	ErrTooManyUnitsMoved      = errors.New("army count out of range")
	ErrTooManyUnitsDefended   = errors.New("defender losses exceed defending armies")
	ErrFromTerritoryNotOwned  = errors.New("source territory not owned by current player")
	ErrToTerritoryNotOwned    = errors.New("target territory not owned by current player")
	ErrToTerritoryOwned       = errors.New("target territory owned by current player")
	ErrNonAdjacentTerritories = errors.New("territories are not adjacent")
	ErrZeroUnitsInAttack      = errors.New("attack with zero units")
	ErrGameFinished           = errors.New("game is finished")
	ErrUnknownTerritory       = errors.New("unknown territory")
	ErrPlacementIncomplete    = errors.New("initial placement incomplete")
)
