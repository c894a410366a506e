package game

// Rand is the random source consumed by placement and outcome sampling.
// *golang.org/x/exp/rand.Rand and *math/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
}

// Outcome is one successor state of a move with its relative weight.
type Outcome struct {
	State  GameState
	Weight int
}

// Outcomes is the weighted set of successors produced by Apply. Weights are
// multiplicities of equally likely dice rolls, not normalized probabilities.
type Outcomes []Outcome

func single(gs GameState) Outcomes {
	return Outcomes{{State: gs, Weight: 1}}
}

func (o Outcomes) TotalWeight() int {
	total := 0
	for _, outcome := range o {
		total += outcome.Weight
	}
	return total
}

// Probability returns the normalized probability of the i-th outcome.
func (o Outcomes) Probability(i int) float64 {
	total := o.TotalWeight()
	if total == 0 {
		return 0
	}
	return float64(o[i].Weight) / float64(total)
}

// Sample draws one successor with probability proportional to its weight.
func (o Outcomes) Sample(rng Rand) GameState {
	if len(o) == 1 {
		return o[0].State
	}
	r := rng.Intn(o.TotalWeight())
	for _, outcome := range o {
		if r < outcome.Weight {
			return outcome.State
		}
		r -= outcome.Weight
	}
	panic("outcome weights changed while sampling")
}

// MostLikely returns the successor with the largest weight, the first one on ties.
func (o Outcomes) MostLikely() GameState {
	best := 0
	for i, outcome := range o {
		if outcome.Weight > o[best].Weight {
			best = i
		}
	}
	return o[best].State
}

// Expectation returns the exact weighted mean of fn over all successors.
func (o Outcomes) Expectation(fn func(GameState) float64) float64 {
	total := o.TotalWeight()
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, outcome := range o {
		sum += float64(outcome.Weight) * fn(outcome.State)
	}
	return sum / float64(total)
}
