package drill

import (
	"fmt"
	"strings"
)

// Stage is the retry gate of the displayed card.
type Stage int

const (
	// Free accepts normal attempts.
	Free Stage = iota
	// Forced requires the revealed definition to be retyped before advancing.
	Forced
)

// String returns "Free" or "Forced".
func (s Stage) String() string {
	switch s {
	case Free:
		return "Free"
	case Forced:
		return "Forced"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// RetryState tracks attempts on the card currently displayed.
type RetryState struct {
	Stage    Stage
	Attempts int // wrong attempts since the card was shown
}

// missesBeforeReveal is the number of wrong answers that reveal the definition.
const missesBeforeReveal = 2

// Verdict describes how a submission was handled.
type Verdict int

const (
	// VerdictCorrect: answer accepted, card scored and advanced.
	VerdictCorrect Verdict = iota + 1
	// VerdictTryAgain: first miss, same card, no scoring.
	VerdictTryAgain
	// VerdictRevealed: second miss, card penalized, definition revealed.
	VerdictRevealed
	// VerdictRetypeRequired: forced retype did not match.
	VerdictRetypeRequired
	// VerdictRetyped: forced retype matched, card advanced without scoring.
	VerdictRetyped
)

var verdictNames = [...]string{
	VerdictCorrect:        "Correct",
	VerdictTryAgain:       "TryAgain",
	VerdictRevealed:       "Revealed",
	VerdictRetypeRequired: "RetypeRequired",
	VerdictRetyped:        "Retyped",
}

// String returns the name of the verdict.
func (v Verdict) String() string {
	if v >= VerdictCorrect && v <= VerdictRetyped {
		return verdictNames[v]
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Prompt is what the caller displays for the current card.
type Prompt struct {
	Index int
	Term  string
}

// Result is returned by Submit.
type Result struct {
	Verdict  Verdict
	Index    int    // card the answer was for
	Expected string // definition, set on Revealed and RetypeRequired
	Advanced bool
	Next     Prompt // current card after the submission
}

// Options configures a Scheduler. The zero value is valid.
type Options struct {
	Policy Policy
}

// Scheduler picks cards from a deck and runs the retry state machine.
// It is not safe for concurrent use; a session owns exactly one.
type Scheduler struct {
	deck   *Deck
	src    Source
	policy Policy

	current  int
	last     int
	retry    RetryState
	coverage []int
	// current came from a coverage pass
	covering bool
	// weighted picks since the last coverage pass, used by Rounds
	drawn int
}

// NewScheduler starts scheduling over deck and selects the first card. The
// first coverage pass follows the deck's shuffled order.
func NewScheduler(deck *Deck, src Source, opts Options) (*Scheduler, error) {
	if deck == nil || deck.Len() == 0 {
		return nil, ErrEmptyList
	}

	coverage := make([]int, deck.Len())
	for i := range coverage {
		coverage[i] = i
	}

	s := &Scheduler{
		deck:     deck,
		src:      src,
		policy:   opts.Policy,
		last:     NoCard,
		coverage: coverage,
	}
	s.current = s.next()
	return s, nil
}

// Deck returns the deck being scheduled.
func (s *Scheduler) Deck() *Deck {
	return s.deck
}

// Current returns the prompt for the displayed card.
func (s *Scheduler) Current() Prompt {
	return Prompt{Index: s.current, Term: s.deck.cards[s.current].Term}
}

// Last returns the previously shown index, or NoCard.
func (s *Scheduler) Last() int {
	return s.last
}

// Retry returns the retry state of the displayed card.
func (s *Scheduler) Retry() RetryState {
	return s.retry
}

// Remaining returns how many cards are still unseen in the current pass.
func (s *Scheduler) Remaining() int {
	return len(s.coverage)
}

// Progress reports the 1-based position of the displayed card within the
// running coverage pass and the deck size. ok is false once cards are picked
// by weight.
func (s *Scheduler) Progress() (pos, total int, ok bool) {
	if !s.covering {
		return 0, 0, false
	}
	total = s.deck.Len()
	return total - s.Remaining(), total, true
}

// Submit evaluates an answer for the displayed card. Answers are trimmed;
// free attempts compare case-insensitively, a forced retype must match exactly.
func (s *Scheduler) Submit(answer string) Result {
	idx := s.current
	card := s.deck.cards[idx]
	given := strings.TrimSpace(answer)
	expected := strings.TrimSpace(card.Definition)

	res := Result{Index: idx}

	if s.retry.Stage == Forced {
		if given != expected {
			res.Verdict = VerdictRetypeRequired
			res.Expected = card.Definition
			res.Next = s.Current()
			return res
		}
		// the penalty was applied on entering Forced
		res.Verdict = VerdictRetyped
		s.advance()
		res.Advanced = true
		res.Next = s.Current()
		return res
	}

	if strings.EqualFold(given, expected) {
		s.deck.applyOutcome(idx, Correct)
		res.Verdict = VerdictCorrect
		s.advance()
		res.Advanced = true
		res.Next = s.Current()
		return res
	}

	s.retry.Attempts++
	if s.retry.Attempts < missesBeforeReveal {
		res.Verdict = VerdictTryAgain
		res.Next = s.Current()
		return res
	}

	s.deck.applyOutcome(idx, Wrong)
	s.retry.Stage = Forced
	res.Verdict = VerdictRevealed
	res.Expected = card.Definition
	res.Next = s.Current()
	return res
}

func (s *Scheduler) advance() {
	s.retry = RetryState{}
	s.last = s.current
	s.current = s.next()
}

// next selects the index to show after s.last.
func (s *Scheduler) next() int {
	n := s.deck.Len()
	if len(s.coverage) == 0 && s.policy == Rounds && s.drawn >= n {
		s.coverage = coveragePass(n, s.last, s.src)
		s.drawn = 0
	}

	if len(s.coverage) > 0 {
		idx := s.coverage[0]
		s.coverage = s.coverage[1:]
		s.covering = true
		return idx
	}

	s.covering = false
	s.drawn++
	return PickWeighted(s.deck, s.last, s.src)
}

// Mastered reports whether every card has been answered correctly at least
// target times. A target of 0 or less is never reached.
func (s *Scheduler) Mastered(target int) bool {
	if target <= 0 {
		return false
	}
	for _, c := range s.deck.cards {
		if c.Correct < target {
			return false
		}
	}
	return true
}
