package game

import "sort"

const DieFaces = 6

// BattleOutcome is one distinct result of a dice round. Weight counts the
// equally likely ordered rolls that produce it.
type BattleOutcome struct {
	AttackerLosses uint8
	DefenderLosses uint8
	Weight         int
}

// roll is a multiset of die faces in descending order together with the
// number of ordered rolls it stands for.
type roll struct {
	faces     []int
	orderings int
}

var standardRules = NewStandardRules()

// standardOdds caches the standard table for 1-3 attack and 0-2 defence dice.
var standardOdds [4][3][]BattleOutcome

func init() {
	for a := 1; a <= standardRules.MaxAttack; a++ {
		for d := 0; d <= standardRules.MaxDefend; d++ {
			standardOdds[a][d] = EnumerateBattle(standardRules, a, d)
		}
	}
}

// BattleOdds returns the standard outcome table for the given dice counts.
func BattleOdds(attackDice, defendDice int) []BattleOutcome {
	if attackDice < 1 || attackDice > 3 || defendDice < 0 || defendDice > 2 {
		return nil
	}
	odds := standardOdds[attackDice][defendDice]
	out := make([]BattleOutcome, len(odds))
	copy(out, odds)
	return out
}

// EnumerateBattle resolves every multiset of attacker faces against every
// multiset of defender faces and groups the results by losses. The weights sum
// to 6^attackDice * 6^defendDice. Outcomes are ordered by attacker losses.
func EnumerateBattle(r Rules, attackDice, defendDice int) []BattleOutcome {
	attacker := multisets(attackDice)
	defender := multisets(defendDice)

	type losses struct{ attacker, defender int }
	counts := make(map[losses]int)
	for _, a := range attacker {
		for _, d := range defender {
			al, dl := r.DetermineAttackOutcome(a.faces, d.faces)
			counts[losses{al, dl}] += a.orderings * d.orderings
		}
	}

	outcomes := make([]BattleOutcome, 0, len(counts))
	for l, weight := range counts {
		outcomes = append(outcomes, BattleOutcome{
			AttackerLosses: uint8(l.attacker),
			DefenderLosses: uint8(l.defender),
			Weight:         weight,
		})
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].AttackerLosses != outcomes[j].AttackerLosses {
			return outcomes[i].AttackerLosses < outcomes[j].AttackerLosses
		}
		return outcomes[i].DefenderLosses < outcomes[j].DefenderLosses
	})
	return outcomes
}

// multisets enumerates the combinations with replacement of n dice, each in
// descending order, in a fixed order.
func multisets(n int) []roll {
	var rolls []roll
	faces := make([]int, n)
	var walk func(pos, highest int)
	walk = func(pos, highest int) {
		if pos == n {
			rolls = append(rolls, roll{
				faces:     append([]int(nil), faces...),
				orderings: orderings(faces),
			})
			return
		}
		for f := highest; f >= 1; f-- {
			faces[pos] = f
			walk(pos+1, f)
		}
	}
	walk(0, DieFaces)
	return rolls
}

// orderings returns the multinomial n! / (k1! k2! ...) of a sorted multiset.
func orderings(faces []int) int {
	result := factorial(len(faces))
	run := 1
	for i := 1; i <= len(faces); i++ {
		if i < len(faces) && faces[i] == faces[i-1] {
			run++
			continue
		}
		result /= factorial(run)
		run = 1
	}
	return result
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
