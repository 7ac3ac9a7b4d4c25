// Package session drives one user's study flow: choosing a list, the loading
// pause, studying with a drill.Scheduler and, optionally, finishing once every
// card is mastered.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/drillbot/internal/drill"
)

// Sentinel errors for the session package.
var (
	ErrNotStudying   = errors.New("session: not studying")
	ErrNoPendingList = errors.New("session: no list pending")
)

// Stage is the position of a session in its outer state machine.
type Stage int

const (
	Selecting Stage = iota
	Loading
	Studying
	Done
)

var stageNames = [...]string{
	Selecting: "selecting",
	Loading:   "loading",
	Studying:  "studying",
	Done:      "done",
}

func (s Stage) String() string {
	if s >= Selecting && s <= Done {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Config holds per-session behaviour.
type Config struct {
	Policy drill.Policy
	// MasteryTarget ends the session once every card has this many correct
	// answers. Zero keeps the session going until restarted.
	MasteryTarget int
}

// Session is owned by a single actor; it is not safe for concurrent use.
type Session struct {
	id     uuid.UUID
	cfg    Config
	src    drill.Source
	stage  Stage
	gen    uint64
	list   string
	sched  *drill.Scheduler
	stats  bool
	loaded []drill.Pair
}

// New creates a session in the Selecting stage. src is the only randomness
// the session uses.
func New(cfg Config, src drill.Source) *Session {
	return &Session{
		id:  uuid.New(),
		cfg: cfg,
		src: src,
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// ListName returns the name of the chosen list.
func (s *Session) ListName() string { return s.list }

// ShowingStats reports whether the stats overlay is open.
func (s *Session) ShowingStats() bool { return s.stats }

// Choose starts loading the named list. It can be called from any stage and
// supersedes earlier choices. The returned token must be passed to
// FinishLoading; completions carrying an older token are ignored.
func (s *Session) Choose(name string, pairs []drill.Pair) (uint64, error) {
	if len(pairs) == 0 {
		s.reset()
		return 0, fmt.Errorf("choose %q: %w", name, drill.ErrEmptyList)
	}

	s.reset()
	s.stage = Loading
	s.list = name
	s.loaded = append([]drill.Pair(nil), pairs...)
	return s.gen, nil
}

// FinishLoading builds the deck for the pending list. It returns false
// without error when token is stale or the session left the Loading stage.
func (s *Session) FinishLoading(token uint64) (bool, error) {
	if s.stage != Loading || token != s.gen {
		return false, nil
	}
	if s.loaded == nil {
		return false, ErrNoPendingList
	}

	deck, err := drill.NewDeck(s.loaded, s.src)
	if err != nil {
		s.reset()
		return false, fmt.Errorf("build deck: %w", err)
	}
	sched, err := drill.NewScheduler(deck, s.src, drill.Options{Policy: s.cfg.Policy})
	if err != nil {
		s.reset()
		return false, fmt.Errorf("start scheduler: %w", err)
	}

	s.sched = sched
	s.loaded = nil
	s.stage = Studying
	return true, nil
}

// Current returns the displayed card.
func (s *Session) Current() (drill.Prompt, error) {
	if s.stage != Studying {
		return drill.Prompt{}, ErrNotStudying
	}
	return s.sched.Current(), nil
}

// Retry returns the retry state of the displayed card.
func (s *Session) Retry() (drill.RetryState, error) {
	if s.stage != Studying {
		return drill.RetryState{}, ErrNotStudying
	}
	return s.sched.Retry(), nil
}

// Progress reports the displayed card's position in the running coverage
// pass. ok is false outside Studying and once cards are picked by weight.
func (s *Session) Progress() (pos, total int, ok bool) {
	if s.stage != Studying {
		return 0, 0, false
	}
	return s.sched.Progress()
}

// Submit passes an answer to the scheduler. When a mastery target is set and
// reached after an advancing answer, the session moves to Done.
func (s *Session) Submit(answer string) (drill.Result, error) {
	if s.stage != Studying {
		return drill.Result{}, ErrNotStudying
	}

	res := s.sched.Submit(answer)
	if res.Advanced && s.sched.Mastered(s.cfg.MasteryTarget) {
		s.stage = Done
		s.stats = false
	}
	return res, nil
}

// ShowStats opens the stats overlay.
func (s *Session) ShowStats() error {
	if s.stage != Studying {
		return ErrNotStudying
	}
	s.stats = true
	return nil
}

// HideStats closes the stats overlay.
func (s *Session) HideStats() {
	s.stats = false
}

// Stats returns the per-card statistics of the current or finished deck.
func (s *Session) Stats() ([]drill.CardStats, error) {
	if s.sched == nil || (s.stage != Studying && s.stage != Done) {
		return nil, ErrNotStudying
	}
	return s.sched.Deck().Stats(), nil
}

// Restart drops the deck and returns to Selecting. Any loading in flight
// becomes stale.
func (s *Session) Restart() {
	s.reset()
}

func (s *Session) reset() {
	s.gen++
	s.stage = Selecting
	s.list = ""
	s.sched = nil
	s.stats = false
	s.loaded = nil
}
