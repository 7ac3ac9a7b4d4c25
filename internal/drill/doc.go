// Package drill implements the adaptive card scheduler of a study session.
//
// A Deck holds the shuffled cards and their weights. A Scheduler shows every
// card once (the coverage pass), then samples cards in proportion to their
// weight, never showing the same card twice in a row when another exists.
// Each answer runs through a small retry machine: the first miss asks for
// another try, the second reveals the definition, penalizes the card and
// requires the definition to be retyped before moving on.
//
// All randomness comes from a single Source so sessions are reproducible
// under a fixed seed:
//
//	src := rand.New(rand.NewSource(42))
//	deck, err := drill.NewDeck(pairs, src)
//	if err != nil {
//		return err
//	}
//	s, _ := drill.NewScheduler(deck, src, drill.Options{})
//	res := s.Submit("life")
package drill
