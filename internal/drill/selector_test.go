package drill

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightedDeck(t *testing.T) *Deck {
	t.Helper()
	d, err := NewDeck(pairs("a", "b", "c"), zeros())
	require.NoError(t, err)
	require.NoError(t, d.ApplyOutcome(1, Wrong))
	require.Equal(t, 5, d.TotalWeight())
	return d
}

func TestPickWeighted(t *testing.T) {
	t.Parallel()

	// weights are [1, 3, 1]
	testCases := []struct {
		name string
		last int
		draw int
		want int
	}{
		{"first slot", NoCard, 0, 0},
		{"heavy card start", NoCard, 1, 1},
		{"heavy card end", NoCard, 3, 1},
		{"last slot", NoCard, 4, 2},
		{"repeat of heavy card rotates", 1, 2, 2},
		{"repeat of last card wraps", 2, 4, 0},
		{"repeat of first card rotates", 0, 0, 1},
		{"no repeat leaves draw alone", 0, 2, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := weightedDeck(t)
			got := PickWeighted(d, tc.last, &scripted{vals: []int{tc.draw}})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPickWeightedSingleCard(t *testing.T) {
	d, err := NewDeck(pairs("only"), zeros())
	require.NoError(t, err)

	src := rand.New(rand.NewSource(1))
	for _, last := range []int{NoCard, 0, 5} {
		for i := 0; i < 20; i++ {
			assert.Equal(t, 0, PickWeighted(d, last, src))
		}
	}
}

func TestPickWeightedFavoursHeavyCards(t *testing.T) {
	d, err := NewDeck(pairs("a", "b", "c", "d"), zeros())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, d.ApplyOutcome(2, Wrong))
	}

	src := rand.New(rand.NewSource(7))
	counts := make([]int, d.Len())
	for i := 0; i < 4000; i++ {
		counts[PickWeighted(d, NoCard, src)]++
	}
	// card 2 carries 11 of 14 units of weight
	assert.Greater(t, counts[2], counts[0]+counts[1]+counts[3])
}

func TestCoveragePass(t *testing.T) {
	src := rand.New(rand.NewSource(3))
	for last := 0; last < 5; last++ {
		order := coveragePass(5, last, src)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, order)
		assert.NotEqual(t, last, order[0])
	}

	assert.Equal(t, []int{0}, coveragePass(1, 0, src))
}

func TestParsePolicy(t *testing.T) {
	testCases := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", Continuous, false},
		{"continuous", Continuous, false},
		{" Rounds ", Rounds, false},
		{"forever", 0, true},
	}

	for _, tc := range testCases {
		got, err := ParsePolicy(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
	assert.Equal(t, "rounds", Rounds.String())
	assert.Equal(t, "Policy(4)", Policy(4).String())
}
