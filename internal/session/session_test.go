package session

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/drillbot/internal/drill"
)

var twoCards = []drill.Pair{{Term: "sed", Definition: "sit"}, {Term: "viv", Definition: "life"}}

func newSession(cfg Config) *Session {
	return New(cfg, rand.New(rand.NewSource(1)))
}

func definition(t *testing.T, s *Session) string {
	t.Helper()
	p, err := s.Current()
	require.NoError(t, err)
	for _, pair := range twoCards {
		if pair.Term == p.Term {
			return pair.Definition
		}
	}
	t.Fatalf("unknown term %q", p.Term)
	return ""
}

func TestNewSessionSelecting(t *testing.T) {
	s := newSession(Config{})
	assert.Equal(t, Selecting, s.Stage())
	assert.NotEqual(t, uuid.Nil, s.ID())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotStudying)
	_, err = s.Submit("x")
	assert.ErrorIs(t, err, ErrNotStudying)
	assert.ErrorIs(t, s.ShowStats(), ErrNotStudying)
}

func TestChooseAndFinishLoading(t *testing.T) {
	s := newSession(Config{})

	token, err := s.Choose("roots", twoCards)
	require.NoError(t, err)
	assert.Equal(t, Loading, s.Stage())
	assert.Equal(t, "roots", s.ListName())

	ok, err := s.FinishLoading(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Studying, s.Stage())

	p, err := s.Current()
	require.NoError(t, err)
	assert.Contains(t, []string{"sed", "viv"}, p.Term)

	ok, err = s.FinishLoading(token)
	require.NoError(t, err)
	assert.False(t, ok, "second completion must be ignored")
}

func TestChooseEmptyList(t *testing.T) {
	s := newSession(Config{})

	_, err := s.Choose("empty", nil)
	assert.ErrorIs(t, err, drill.ErrEmptyList)
	assert.Equal(t, Selecting, s.Stage())
}

func TestStaleLoadingIgnored(t *testing.T) {
	s := newSession(Config{})

	first, err := s.Choose("first", twoCards)
	require.NoError(t, err)
	second, err := s.Choose("second", twoCards[:1])
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	ok, err := s.FinishLoading(first)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Loading, s.Stage())

	ok, err = s.FinishLoading(second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", s.ListName())

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Len(t, stats, 1)
}

func TestRestartDuringLoading(t *testing.T) {
	s := newSession(Config{})

	token, err := s.Choose("roots", twoCards)
	require.NoError(t, err)
	s.Restart()

	ok, err := s.FinishLoading(token)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Selecting, s.Stage())
}

func TestStatsOverlay(t *testing.T) {
	s := newSession(Config{})
	token, _ := s.Choose("roots", twoCards)
	_, err := s.FinishLoading(token)
	require.NoError(t, err)

	require.NoError(t, s.ShowStats())
	assert.True(t, s.ShowingStats())
	assert.Equal(t, Studying, s.Stage())

	before, _ := s.Current()
	stats, err := s.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	stats[0].Weight = 42
	after, _ := s.Current()
	assert.Equal(t, before, after)

	fresh, _ := s.Stats()
	assert.Equal(t, 1, fresh[0].Weight)

	s.HideStats()
	assert.False(t, s.ShowingStats())
}

func TestMasteryTargetEndsSession(t *testing.T) {
	s := newSession(Config{MasteryTarget: 1})
	token, _ := s.Choose("roots", twoCards)
	_, err := s.FinishLoading(token)
	require.NoError(t, err)

	res, err := s.Submit(definition(t, s))
	require.NoError(t, err)
	assert.Equal(t, drill.VerdictCorrect, res.Verdict)
	assert.Equal(t, Studying, s.Stage())

	_, err = s.Submit(definition(t, s))
	require.NoError(t, err)
	assert.Equal(t, Done, s.Stage())

	_, err = s.Submit("anything")
	assert.ErrorIs(t, err, ErrNotStudying)

	stats, err := s.Stats()
	require.NoError(t, err)
	for _, st := range stats {
		assert.Equal(t, 1, st.Correct)
	}

	s.Restart()
	assert.Equal(t, Selecting, s.Stage())
	_, err = s.Stats()
	assert.ErrorIs(t, err, ErrNotStudying)
}

func TestNoMasteryTargetKeepsStudying(t *testing.T) {
	s := newSession(Config{Policy: drill.Rounds})
	token, _ := s.Choose("roots", twoCards)
	_, err := s.FinishLoading(token)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err := s.Submit(definition(t, s))
		require.NoError(t, err)
	}
	assert.Equal(t, Studying, s.Stage())

	r, err := s.Retry()
	require.NoError(t, err)
	assert.Equal(t, drill.Free, r.Stage)
}

func TestProgress(t *testing.T) {
	s := newSession(Config{})
	_, _, ok := s.Progress()
	assert.False(t, ok)

	token, _ := s.Choose("roots", twoCards)
	_, err := s.FinishLoading(token)
	require.NoError(t, err)

	pos, total, ok := s.Progress()
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 2, total)

	_, err = s.Submit(definition(t, s))
	require.NoError(t, err)
	pos, _, ok = s.Progress()
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	_, err = s.Submit(definition(t, s))
	require.NoError(t, err)
	_, _, ok = s.Progress()
	assert.False(t, ok)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "Stage(9)", Stage(9).String())
}
