package game

import (
	"fmt"
	"math/bits"
	"strings"
)

// Territory identifies one of the 42 fixed territories of the board.
type Territory uint8

const (
	Alaska Territory = iota
	NorthwestTerritory
	Greenland
	Alberta
	Ontario
	Quebec
	WesternUnitedStates
	EasternUnitedStates
	CentralAmerica
	Venezuela
	Peru
	Brazil
	Argentina
	Iceland
	Scandinavia
	Ukraine
	GreatBritain
	NorthernEurope
	WesternEurope
	SouthernEurope
	NorthAfrica
	Egypt
	EastAfrica
	Congo
	SouthAfrica
	Madagascar
	Ural
	Siberia
	Yakutsk
	Kamchatka
	Irkutsk
	Mongolia
	China
	Afghanistan
	MiddleEast
	India
	Siam
	Indonesia
	NewGuinea
	WesternAustralia
	EasternAustralia
	Japan
)

const NumTerritories = 42

// Continent groups territories for reinforcement bonuses.
type Continent uint8

const (
	NorthAmerica Continent = iota
	SouthAmerica
	Europe
	Africa
	Asia
	Oceania
)

const NumContinents = 6

var territoryNames = [NumTerritories]string{
	"Alaska", "Northwest Territory", "Greenland", "Alberta", "Ontario", "Quebec",
	"Western United States", "Eastern United States", "Central America",
	"Venezuela", "Peru", "Brazil", "Argentina",
	"Iceland", "Scandinavia", "Ukraine", "Great Britain", "Northern Europe",
	"Western Europe", "Southern Europe",
	"North Africa", "Egypt", "East Africa", "Congo", "South Africa", "Madagascar",
	"Ural", "Siberia", "Yakutsk", "Kamchatka", "Irkutsk", "Mongolia", "China",
	"Afghanistan", "Middle East", "India", "Siam",
	"Indonesia", "New Guinea", "Western Australia", "Eastern Australia",
	"Japan",
}

var territoryContinents = [NumTerritories]Continent{
	NorthAmerica, NorthAmerica, NorthAmerica, NorthAmerica, NorthAmerica, NorthAmerica,
	NorthAmerica, NorthAmerica, NorthAmerica,
	SouthAmerica, SouthAmerica, SouthAmerica, SouthAmerica,
	Europe, Europe, Europe, Europe, Europe, Europe, Europe,
	Africa, Africa, Africa, Africa, Africa, Africa,
	Asia, Asia, Asia, Asia, Asia, Asia, Asia, Asia, Asia, Asia, Asia,
	Oceania, Oceania, Oceania, Oceania,
	Asia,
}

var continentNames = [NumContinents]string{
	"North America", "South America", "Europe", "Africa", "Asia", "Oceania",
}

var continentBonuses = [NumContinents]uint8{5, 2, 5, 3, 7, 2}

// borders lists every undirected edge of the board once.
var borders = [][2]Territory{
	{Alaska, NorthwestTerritory},
	{Alaska, Alberta},
	{Alaska, Kamchatka},

	{NorthwestTerritory, Greenland},
	{NorthwestTerritory, Alberta},
	{NorthwestTerritory, Ontario},

	{Greenland, Ontario},
	{Greenland, Quebec},
	{Greenland, Iceland},

	{Alberta, Ontario},
	{Alberta, WesternUnitedStates},

	{Ontario, Quebec},
	{Ontario, WesternUnitedStates},
	{Ontario, EasternUnitedStates},

	{Quebec, EasternUnitedStates},

	{WesternUnitedStates, EasternUnitedStates},
	{WesternUnitedStates, CentralAmerica},

	{EasternUnitedStates, CentralAmerica},

	{CentralAmerica, Venezuela},

	{Venezuela, Peru},
	{Venezuela, Brazil},

	{Peru, Brazil},
	{Peru, Argentina},

	{Brazil, Argentina},
	{Brazil, NorthAfrica},

	{Iceland, GreatBritain},
	{Iceland, Scandinavia},

	{Scandinavia, NorthernEurope},
	{Scandinavia, Ukraine},
	{Scandinavia, GreatBritain},

	{Ukraine, NorthernEurope},
	{Ukraine, SouthernEurope},
	{Ukraine, MiddleEast},
	{Ukraine, Afghanistan},
	{Ukraine, Ural},

	{GreatBritain, NorthernEurope},
	{GreatBritain, WesternEurope},

	{NorthernEurope, SouthernEurope},
	{NorthernEurope, WesternEurope},

	{WesternEurope, SouthernEurope},
	{WesternEurope, NorthAfrica},

	{SouthernEurope, MiddleEast},
	{SouthernEurope, Egypt},
	{SouthernEurope, NorthAfrica},

	{NorthAfrica, Egypt},
	{NorthAfrica, EastAfrica},
	{NorthAfrica, Congo},

	{Egypt, MiddleEast},
	{Egypt, EastAfrica},

	{EastAfrica, Congo},
	{EastAfrica, SouthAfrica},
	{EastAfrica, Madagascar},

	{Congo, SouthAfrica},

	{SouthAfrica, Madagascar},

	{Ural, Siberia},
	{Ural, China},
	{Ural, Afghanistan},

	{Siberia, Yakutsk},
	{Siberia, Irkutsk},
	{Siberia, Mongolia},
	{Siberia, China},

	{Yakutsk, Kamchatka},
	{Yakutsk, Irkutsk},

	{Kamchatka, Irkutsk},
	{Kamchatka, Mongolia},
	{Kamchatka, Japan},

	{Irkutsk, Mongolia},

	{Mongolia, China},
	{Mongolia, Japan},

	{China, Afghanistan},
	{China, India},
	{China, Siam},

	{Afghanistan, MiddleEast},
	{Afghanistan, India},

	{MiddleEast, India},

	{India, Siam},

	{Siam, Indonesia},

	{Indonesia, NewGuinea},
	{Indonesia, WesternAustralia},

	{NewGuinea, WesternAustralia},
	{NewGuinea, EasternAustralia},

	{WesternAustralia, EasternAustralia},
}

// adjacency holds one neighbour bit mask per territory.
var adjacency [NumTerritories]uint64

// neighborLists caches the neighbours of each territory in ascending order.
var neighborLists [NumTerritories][]Territory

var continentMembers [NumContinents][]Territory

func init() {
	for _, border := range borders {
		addBorder(border[0], border[1])
	}
	for i := range adjacency {
		mask := adjacency[i]
		for mask != 0 {
			n := bits.TrailingZeros64(mask)
			neighborLists[i] = append(neighborLists[i], Territory(n))
			mask &= mask - 1
		}
	}
	for _, t := range AllTerritories() {
		c := t.Continent()
		continentMembers[c] = append(continentMembers[c], t)
	}
}

// addBorder adds a bidirectional border between two territories.
func addBorder(a, b Territory) {
	adjacency[a] |= 1 << b
	adjacency[b] |= 1 << a
}

// AllTerritories returns every territory in identifier order.
func AllTerritories() []Territory {
	territories := make([]Territory, NumTerritories)
	for i := range territories {
		territories[i] = Territory(i)
	}
	return territories
}

// Borders returns the undirected edge list of the board, each pair once.
func Borders() [][2]Territory {
	out := make([][2]Territory, len(borders))
	copy(out, borders)
	return out
}

// ParseTerritory looks a territory up by its display name, ignoring case.
func ParseTerritory(name string) (Territory, error) {
	for i, n := range territoryNames {
		if strings.EqualFold(n, name) {
			return Territory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTerritory, name)
}

// Valid reports whether t is one of the 42 board territories.
func (t Territory) Valid() bool {
	return t < NumTerritories
}

func (t Territory) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Territory(%d)", uint8(t))
	}
	return territoryNames[t]
}

// Neighbors returns the territories sharing a border with t.
func (t Territory) Neighbors() []Territory {
	if !t.Valid() {
		return nil
	}
	out := make([]Territory, len(neighborLists[t]))
	copy(out, neighborLists[t])
	return out
}

// AdjacentTo reports whether t and other share a border.
func (t Territory) AdjacentTo(other Territory) bool {
	return Adjacent(t, other)
}

// Adjacent reports whether a and b share a border.
func Adjacent(a, b Territory) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return adjacency[a]&(1<<b) != 0
}

func (t Territory) Continent() Continent {
	return territoryContinents[t]
}

// AllContinents returns the six continents in declaration order.
func AllContinents() []Continent {
	return []Continent{NorthAmerica, SouthAmerica, Europe, Africa, Asia, Oceania}
}

// Bonus is the number of extra reinforcements for holding every territory of c.
func (c Continent) Bonus() uint8 {
	return continentBonuses[c]
}

// Territories returns the members of c in identifier order.
func (c Continent) Territories() []Territory {
	out := make([]Territory, len(continentMembers[c]))
	copy(out, continentMembers[c])
	return out
}

func (c Continent) String() string {
	if c >= NumContinents {
		return fmt.Sprintf("Continent(%d)", uint8(c))
	}
	return continentNames[c]
}
