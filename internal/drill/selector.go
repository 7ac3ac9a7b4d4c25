package drill

import (
	"fmt"
	"strings"
)

// NoCard marks the absence of a previously shown card.
const NoCard = -1

// Policy decides what happens once the first coverage pass is exhausted.
type Policy int

const (
	// Continuous samples by weight forever after the first pass.
	Continuous Policy = iota
	// Rounds alternates a weighted round of Len() picks with a freshly
	// shuffled coverage pass. Weights carry over between rounds.
	Rounds
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case Continuous:
		return "continuous"
	case Rounds:
		return "rounds"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a config name to a Policy. Empty means Continuous.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continuous":
		return Continuous, nil
	case "rounds":
		return Rounds, nil
	}
	return 0, fmt.Errorf("drill: unknown policy %q", s)
}

// PickWeighted draws a card index with probability proportional to its
// weight. If the draw lands on last and the deck has another card, the next
// index (wrapping) is returned instead; the draw is not repeated.
func PickWeighted(d *Deck, last int, src Source) int {
	n := d.Len()
	if n == 1 {
		return 0
	}

	r := src.Intn(d.TotalWeight())
	picked := n - 1
	sum := 0
	for i, c := range d.cards {
		sum += c.Weight
		if sum > r {
			picked = i
			break
		}
	}

	if picked == last {
		return (picked + 1) % n
	}
	return picked
}

// coveragePass returns a shuffled order of all indices that does not start
// with last when an alternative exists.
func coveragePass(n, last int, src Source) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle(n, src, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	if n > 1 && order[0] == last {
		order[0], order[1] = order[1], order[0]
	}
	return order
}
