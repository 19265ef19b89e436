package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeepscore/jeepscore/internal/config"
	"github.com/jeepscore/jeepscore/internal/game"
	"github.com/jeepscore/jeepscore/internal/manager"
	"github.com/jeepscore/jeepscore/internal/store"
)

func testApp(t *testing.T) *appContext {
	t.Helper()
	logger := log.New(io.Discard)
	m := manager.New(store.NewMemoryStore(), logger,
		manager.WithClock(quartz.NewMock(t)))
	return &appContext{
		logger:  logger,
		config:  config.Default(),
		manager: m,
	}
}

func startTestGame(t *testing.T, app *appContext) *game.Game {
	t.Helper()
	players, err := parsePlayers([]string{"alice=10", "bob=20"})
	require.NoError(t, err)
	g, err := app.manager.StartGame(players)
	require.NoError(t, err)
	return g
}

func TestResetAbandonsActiveGame(t *testing.T) {
	t.Parallel()
	app := testApp(t)
	startTestGame(t, app)

	cmd := &ResetCmd{}
	require.NoError(t, cmd.Run(app))

	assert.Nil(t, app.manager.CurrentGame())
	records, err := app.manager.GetSavedGames()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResetAfterEndKeepsHistory(t *testing.T) {
	t.Parallel()
	app := testApp(t)
	g := startTestGame(t, app)
	require.NoError(t, app.manager.EndGame())

	// With no unfinished game, reset is a no-op and must not touch the
	// just-ended game's history entry.
	cmd := &ResetCmd{}
	require.NoError(t, cmd.Run(app))

	records, err := app.manager.GetSavedGames()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, g.ID(), records[0].ID)
}

func TestHistoryDeleteRejectsMalformedID(t *testing.T) {
	t.Parallel()
	app := testApp(t)
	startTestGame(t, app)

	cmd := &HistoryDeleteCmd{ID: "not-a-game-id"}
	err := cmd.Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid game id")

	// Nothing was deleted.
	records, err := app.manager.GetSavedGames()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHistoryShowRejectsMalformedID(t *testing.T) {
	t.Parallel()
	app := testApp(t)

	cmd := &HistoryShowCmd{ID: "zzz"}
	err := cmd.Run(app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid game id")
}
