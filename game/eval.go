package game

import (
	"fmt"
	"math"
	"slices"
)

// Evaluate scores a state between -1 and 1 indicating how favorable it is to
// the current player (positive) or the opponent (negative).
type Evaluate func(GameState) float64

// EvaluateResources tallies each player's territories, armies and continent
// bonuses into a relative score from the current player's perspective.
func EvaluateResources(gs GameState) float64 {
	territoryScore, armyScore := gs.resourceScores()
	bonusScore := gs.bonusScore()

	return (territoryScore + armyScore + bonusScore) / 3.0
}

// EvaluateBorderStrength adds the strength of each player's front line to the
// resource tally.
func EvaluateBorderStrength(gs GameState) float64 {
	territoryScore, armyScore := gs.resourceScores()
	bonusScore := gs.bonusScore()
	borderScore := gs.borderScore()

	return (territoryScore + armyScore + bonusScore + borderScore) / 4
}

// EvaluateConnectivity adds the size of each player's largest connected
// holding to the resource tally.
func EvaluateConnectivity(gs GameState) float64 {
	territoryScore, armyScore := gs.resourceScores()
	bonusScore := gs.bonusScore()
	connectivityScore := gs.connectivityScore()

	return (territoryScore + armyScore + bonusScore + connectivityScore) / 4
}

func EvaluateBorderConnectivity(gs GameState) float64 {
	territoryScore, armyScore := gs.resourceScores()
	bonusScore := gs.bonusScore()
	borderScore := gs.borderScore()
	connectivityScore := gs.connectivityScore()

	return (territoryScore + armyScore + bonusScore + borderScore + connectivityScore) / 5
}

var evaluations = map[string]Evaluate{
	"resources":           EvaluateResources,
	"border":              EvaluateBorderStrength,
	"connectivity":        EvaluateConnectivity,
	"border_connectivity": EvaluateBorderConnectivity,
}

// ParseEvaluation returns the heuristic registered under name. The empty name
// selects EvaluateResources.
func ParseEvaluation(name string) (Evaluate, error) {
	if name == "" {
		return EvaluateResources, nil
	}
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q, want one of %v", name, EvaluationNames())
	}
	return evaluate, nil
}

// EvaluationNames lists the registered heuristics in sorted order.
func EvaluationNames() []string {
	names := make([]string, 0, len(evaluations))
	for name := range evaluations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (gs GameState) resourceScores() (territoryScore, armyScore float64) {
	current := gs.currentPlayer
	opponent := current.Next()
	territoryScore = normalize(float64(gs.TerritoryCount(current)), float64(gs.TerritoryCount(opponent)))
	armyScore = normalize(float64(gs.ArmyCount(current)), float64(gs.ArmyCount(opponent)))
	return territoryScore, armyScore
}

// bonusScore compares the bonuses of fully controlled continents.
func (gs GameState) bonusScore() float64 {
	var bonus [NumPlayers]float64
	for _, c := range AllContinents() {
		if owner := gs.continentOwner(c); owner < NumPlayers {
			bonus[owner] += float64(c.Bonus())
		}
	}
	return normalize(bonus[gs.currentPlayer], bonus[gs.currentPlayer.Next()])
}

func (gs GameState) connectivityScore() float64 {
	var connectivity [NumPlayers]float64
	for _, p := range AllPlayers() {
		var visited [NumTerritories]bool
		largest := 0
		for _, t := range gs.TerritoriesOf(p) {
			if size := gs.component(t, p, &visited); size > largest {
				largest = size
			}
		}
		connectivity[p] = float64(largest)
	}
	return normalize(connectivity[gs.currentPlayer], connectivity[gs.currentPlayer.Next()])
}

func (gs GameState) borderScore() float64 {
	var strength [NumPlayers]float64
	for t, ts := range gs.All() {
		own := float64(ts.Armies)
		enemyBorders := 0
		armyDiff := 0.0
		// Every enemy neighbour is a line of attack; the difference is not
		// capped since attacks can continue until one army is left.
		for _, n := range neighborLists[t] {
			if gs.territories[n].Owner != ts.Owner {
				enemyBorders++
				armyDiff += own - float64(gs.territories[n].Armies)
			}
		}
		// Square root favours several lines of attack without letting them dominate.
		if enemyBorders > 0 {
			strength[ts.Owner] += armyDiff / math.Sqrt(float64(enemyBorders))
		}
	}
	return normalize(strength[gs.currentPlayer], strength[gs.currentPlayer.Next()])
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

// component returns the size of the connected holding of p containing start,
// skipping territories already visited.
func (gs GameState) component(start Territory, p Player, visited *[NumTerritories]bool) int {
	if visited[start] || gs.territories[start].Owner != p {
		return 0
	}
	visited[start] = true

	size := 1
	for _, n := range neighborLists[start] {
		size += gs.component(n, p, visited)
	}
	return size
}
