package drill

import "fmt"

// Source is the randomness a session draws from. *rand.Rand satisfies it.
// Intn must return a value in [0, n).
type Source interface {
	Intn(n int) int
}

// Deck holds the cards of one study session. Cards are kept in their shuffled
// presentation order and indices stay valid for the lifetime of the deck.
type Deck struct {
	cards []Card
}

// NewDeck builds one card per pair with weight 1 and shuffles them using src.
func NewDeck(pairs []Pair, src Source) (*Deck, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyList
	}

	cards := make([]Card, len(pairs))
	for i, p := range pairs {
		cards[i] = Card{
			Term:       p.Term,
			Definition: p.Definition,
			Weight:     minWeight,
		}
	}

	shuffle(len(cards), src, func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}, nil
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Card returns a copy of the card at index i.
func (d *Deck) Card(i int) (Card, error) {
	if i < 0 || i >= len(d.cards) {
		return Card{}, fmt.Errorf("%w: %d", ErrCardIndex, i)
	}
	return d.cards[i], nil
}

// TotalWeight is the sum of all card weights. It is at least Len().
func (d *Deck) TotalWeight() int {
	total := 0
	for _, c := range d.cards {
		total += c.Weight
	}
	return total
}

// ApplyOutcome scores an answer for the card at index i. A correct answer
// lowers the weight by 1 down to the floor of 1, a wrong one raises it by 2.
func (d *Deck) ApplyOutcome(i int, o Outcome) error {
	if i < 0 || i >= len(d.cards) {
		return fmt.Errorf("%w: %d", ErrCardIndex, i)
	}
	if o != Correct && o != Wrong {
		return fmt.Errorf("drill: invalid outcome %v", o)
	}
	d.applyOutcome(i, o)
	return nil
}

// applyOutcome is ApplyOutcome for a known valid index and outcome.
func (d *Deck) applyOutcome(i int, o Outcome) {
	c := &d.cards[i]
	switch o {
	case Correct:
		c.Correct++
		c.Weight += correctDelta
		if c.Weight < minWeight {
			c.Weight = minWeight
		}
	case Wrong:
		c.Wrong++
		c.Weight += wrongDelta
	}
}

// Stats returns a snapshot of every card's statistics in deck order.
// Mutating the result does not affect the deck.
func (d *Deck) Stats() []CardStats {
	stats := make([]CardStats, len(d.cards))
	for i, c := range d.cards {
		stats[i] = CardStats{
			Term:    c.Term,
			Correct: c.Correct,
			Wrong:   c.Wrong,
			Weight:  c.Weight,
		}
	}
	return stats
}

// shuffle is a Fisher-Yates permutation of n elements driven by src.
func shuffle(n int, src Source, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
