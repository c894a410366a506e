package game

// Reinforcements returns the base allotment for holding territoryCount territories.
func Reinforcements(territoryCount int) uint8 {
	switch {
	case territoryCount <= 13:
		return 3
	case territoryCount <= 16:
		return 4
	default:
		return 5
	}
}

// NumberOfReinforcements returns the base allotment of p plus the bonus of
// every continent p controls completely.
func (gs GameState) NumberOfReinforcements(p Player) uint8 {
	troops := Reinforcements(gs.TerritoryCount(p))
	for _, c := range gs.ContinentsOf(p) {
		troops += c.Bonus()
	}
	return troops
}
