package drill

import (
	"errors"
	"fmt"
)

// Sentinel errors for the drill package.
var (
	ErrEmptyList = errors.New("drill: empty card list")
	ErrCardIndex = errors.New("drill: card index out of range")
)

// Pair is one (term, definition) entry of a card list.
type Pair struct {
	Term       string
	Definition string
}

// Card is a flashcard together with its session statistics.
type Card struct {
	Term       string // prompt shown to the user
	Definition string // expected answer
	Weight     int    // relative likelihood of being shown again, never below 1
	Correct    int
	Wrong      int
}

// CardStats is the read-only projection of a card used by stats views.
type CardStats struct {
	Term    string
	Correct int
	Wrong   int
	Weight  int
}

// Outcome is the scored result of an answer.
type Outcome int

const (
	Correct Outcome = iota + 1
	Wrong
)

// String returns "Correct" or "Wrong", or "Outcome(n)" for invalid values.
func (o Outcome) String() string {
	switch o {
	case Correct:
		return "Correct"
	case Wrong:
		return "Wrong"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

const (
	correctDelta = -1
	wrongDelta   = 2
	minWeight    = 1
)
