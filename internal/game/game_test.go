package game

import (
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func testPlayers(t *testing.T, bids ...float64) []*Player {
	t.Helper()
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank"}
	var players []*Player
	for i, bid := range bids {
		p, err := NewPlayer(names[i%len(names)], bid)
		require.NoError(t, err)
		players = append(players, p)
	}
	return players
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	g, err := NewGame(nil, testPlayers(t, 10, 20))
	require.NoError(t, err)

	require.Equal(t, StatePending, g.State())
	require.Equal(t, 0, g.Count())
	require.Equal(t, 2, g.NumPlayers())
	require.Equal(t, AlgorithmSpreadSplit, g.Algorithm())
	require.True(t, g.StartTime().IsZero())
	require.True(t, g.EndTime().IsZero())
	require.NotEmpty(t, g.ID())
}

func TestNewGameOptions(t *testing.T) {
	t.Parallel()

	g, err := NewGame(nil, testPlayers(t, 5),
		WithName("friday night"),
		WithAlgorithm(AlgorithmPriceIsRight))
	require.NoError(t, err)
	require.Equal(t, "friday night", g.Name())
	require.Equal(t, AlgorithmPriceIsRight, g.Algorithm())
}

func TestNewGameValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGame(nil, nil)
	require.ErrorIs(t, err, ErrValidation)

	p := testPlayers(t, 4)[0]
	_, err = NewGame(nil, []*Player{p, p})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGameLifecycle(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	g, err := NewGame(clock, testPlayers(t, 10, 20))
	require.NoError(t, err)

	require.NoError(t, g.Start())
	require.Equal(t, StateActive, g.State())
	require.Equal(t, clock.Now(), g.StartTime())

	clock.Advance(3 * time.Minute)
	require.NoError(t, g.End())
	require.Equal(t, StateEnded, g.State())
	require.Equal(t, clock.Now(), g.EndTime())
	require.Equal(t, 3*time.Minute, g.EndTime().Sub(g.StartTime()))
}

func TestGameStartTwice(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	require.NoError(t, g.Start())
	require.ErrorIs(t, g.Start(), ErrInvalidState)
}

func TestGameEndBeforeStart(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	require.ErrorIs(t, g.End(), ErrInvalidState)
}

func TestGameEndedIsTerminal(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	require.NoError(t, g.Start())
	require.NoError(t, g.End())

	require.ErrorIs(t, g.Start(), ErrInvalidState)
	require.ErrorIs(t, g.End(), ErrInvalidState)
}

func TestGameCountBeforeStart(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	require.ErrorIs(t, g.IncCount(), ErrInvalidState)
	require.ErrorIs(t, g.DecCount(), ErrInvalidState)
	require.Equal(t, 0, g.Count())
}

func TestGameCount(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	for i := 0; i < 5; i++ {
		require.NoError(t, g.IncCount())
	}
	require.Equal(t, 5, g.Count())

	require.NoError(t, g.DecCount())
	require.Equal(t, 4, g.Count())
}

func TestGameDecCountSaturatesAtZero(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)
	require.NoError(t, g.Start())

	// Decrementing past zero clamps instead of failing.
	for i := 0; i < 10; i++ {
		require.NoError(t, g.DecCount())
	}
	require.Equal(t, 0, g.Count())
}

func TestGameCountAfterEnd(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	require.NoError(t, g.End())

	// Late corrections are allowed once the game has ended.
	require.NoError(t, g.IncCount())
	require.NoError(t, g.DecCount())
	require.Equal(t, 0, g.Count())
}

func TestGameSetAlgorithmAcceptsUnknownTags(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	g.SetAlgorithm(Algorithm("legacy-tag"))
	require.Equal(t, Algorithm("legacy-tag"), g.Algorithm())
}

func TestGameElapsed(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	g, err := NewGame(clock, testPlayers(t, 10))
	require.NoError(t, err)

	require.Equal(t, time.Duration(0), g.Elapsed())

	require.NoError(t, g.Start())
	clock.Advance(90 * time.Second)
	require.Equal(t, 90*time.Second, g.Elapsed())

	require.NoError(t, g.End())
	clock.Advance(time.Hour)
	require.Equal(t, 90*time.Second, g.Elapsed())
}

func TestGamePlayersCopied(t *testing.T) {
	t.Parallel()

	players := testPlayers(t, 10, 20)
	g, err := NewGame(quartz.NewMock(t), players)
	require.NoError(t, err)

	got := g.Players()
	got[0] = nil
	require.NotNil(t, g.Players()[0])
}

func TestGameRecordRoundTrip(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	g, err := NewGame(clock, testPlayers(t, 10, 20, 30), WithName("round trip"))
	require.NoError(t, err)
	require.NoError(t, g.Start())
	clock.Advance(2 * time.Minute)
	require.NoError(t, g.IncCount())
	require.NoError(t, g.IncCount())
	g.SetAlgorithm(AlgorithmPriceIsRight)
	require.NoError(t, g.End())

	back, err := GameFromRecord(clock, g.Record())
	require.NoError(t, err)

	require.Equal(t, g.ID(), back.ID())
	require.Equal(t, g.Name(), back.Name())
	require.Equal(t, g.Count(), back.Count())
	require.Equal(t, g.Algorithm(), back.Algorithm())
	require.Equal(t, g.State(), back.State())

	// RFC 3339 keeps second precision.
	require.Equal(t, g.StartTime().Truncate(time.Second), back.StartTime().Truncate(time.Second))
	require.Equal(t, g.EndTime().Truncate(time.Second), back.EndTime().Truncate(time.Second))

	require.Equal(t, len(g.Players()), len(back.Players()))
	for i, p := range g.Players() {
		bp := back.Players()[i]
		require.Equal(t, p.ID(), bp.ID())
		require.Equal(t, p.Name(), bp.Name())
		require.Equal(t, p.Bid(), bp.Bid())
	}
}

func TestGameRecordPendingHasNilTimestamps(t *testing.T) {
	t.Parallel()

	g, err := NewGame(quartz.NewMock(t), testPlayers(t, 10))
	require.NoError(t, err)

	rec := g.Record()
	require.Nil(t, rec.StartTime)
	require.Nil(t, rec.EndTime)
}

func TestGameFromRecordValidation(t *testing.T) {
	t.Parallel()

	start := "2025-03-01T12:00:00Z"
	end := "2025-03-01T11:00:00Z"
	player := PlayerRecord{ID: "tok", Name: "Alice", Bid: 5}

	tests := []struct {
		name string
		rec  Record
	}{
		{"no players", Record{ID: "g1"}},
		{"negative count", Record{ID: "g1", Players: []PlayerRecord{player}, Count: -1}},
		{"end without start", Record{ID: "g1", Players: []PlayerRecord{player}, EndTime: &end}},
		{"end before start", Record{ID: "g1", Players: []PlayerRecord{player}, StartTime: &start, EndTime: &end}},
		{"bad start time", Record{ID: "g1", Players: []PlayerRecord{player}, StartTime: ptr("yesterday")}},
		{"duplicate players", Record{ID: "g1", Players: []PlayerRecord{player, player}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GameFromRecord(nil, tt.rec)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestGameFromRecordBackfills(t *testing.T) {
	t.Parallel()

	// Early persisted revisions carried neither game id nor algorithm tag.
	g, err := GameFromRecord(nil, Record{
		Players: []PlayerRecord{{Name: "Alice", Bid: 5}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, g.ID())
	require.Equal(t, AlgorithmSpreadSplit, g.Algorithm())
}

func ptr(s string) *string { return &s }
