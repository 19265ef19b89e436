package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeepscore/jeepscore/internal/game"
	"github.com/jeepscore/jeepscore/internal/manager"
	"github.com/jeepscore/jeepscore/internal/score"
	"github.com/jeepscore/jeepscore/internal/tui"
)

// ensureCurrent returns the manager's current game, resuming the latest
// saved one when this process has none yet. Ended games resume too:
// they remain viewable and their count stays correctable.
func ensureCurrent(app *appContext) (*game.Game, error) {
	if g := app.manager.CurrentGame(); g != nil {
		return g, nil
	}
	return app.manager.ResumeLatest()
}

// ensureActive is ensureCurrent restricted to a game that has not
// ended.
func ensureActive(app *appContext) (*game.Game, error) {
	if g := app.manager.CurrentGame(); g != nil {
		return g, nil
	}
	return app.manager.ResumeActive()
}

type StartCmd struct {
	Players   []string `arg:"" name:"player" help:"Players as name=bid pairs"`
	Name      string   `help:"Display name for the game"`
	Algorithm string   `help:"Scoring algorithm (spread-split or price-is-right)"`
}

func (c *StartCmd) Run(app *appContext) error {
	players, err := parsePlayers(c.Players)
	if err != nil {
		return err
	}

	// Pick up an unfinished game first so starting over it conflicts
	// instead of silently burying it.
	if _, err := app.manager.ResumeActive(); err != nil && !errors.Is(err, manager.ErrNotFound) {
		return err
	}

	algorithm := game.Algorithm(c.Algorithm)
	if algorithm == "" {
		algorithm = game.Algorithm(app.config.Game.DefaultAlgorithm)
	}
	opts := []game.Option{game.WithAlgorithm(algorithm)}
	if c.Name != "" {
		opts = append(opts, game.WithName(c.Name))
	}

	g, err := app.manager.StartGame(players, opts...)
	if errors.Is(err, manager.ErrConflict) {
		return fmt.Errorf("%w; end it or run 'jeepscore reset' first", err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("started game %s with %d players\n", g.ID(), g.NumPlayers())
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(app *appContext) error {
	g, err := ensureCurrent(app)
	if err != nil {
		return err
	}

	fmt.Printf("id:        %s\n", g.ID())
	if g.Name() != "" {
		fmt.Printf("name:      %s\n", g.Name())
	}
	fmt.Printf("state:     %s\n", g.State())
	fmt.Printf("players:   %d\n", g.NumPlayers())
	fmt.Printf("count:     %d\n", g.Count())
	fmt.Printf("scoring:   %s\n", g.Algorithm())
	if !g.StartTime().IsZero() {
		fmt.Printf("started:   %s\n", g.StartTime().Local().Format(time.RFC1123))
		fmt.Printf("elapsed:   %s\n", game.FormatElapsed(g.Elapsed(), "hms0"))
	}
	return nil
}

type BoardCmd struct{}

func (c *BoardCmd) Run(app *appContext) error {
	g, err := ensureCurrent(app)
	if err != nil {
		return err
	}
	fmt.Printf("count: %d\n\n", g.Count())
	fmt.Print(tui.RenderBoard(score.Compute(g)))
	return nil
}

type IncCmd struct {
	N int `arg:"" optional:"" default:"1" help:"How much to add"`
}

func (c *IncCmd) Run(app *appContext) error {
	if c.N < 1 {
		return fmt.Errorf("count step must be positive, got %d", c.N)
	}
	if _, err := ensureCurrent(app); err != nil {
		return err
	}

	count := 0
	for i := 0; i < c.N; i++ {
		var err error
		if count, err = app.manager.IncCount(); err != nil {
			return err
		}
	}
	fmt.Printf("count: %d\n", count)
	return nil
}

type DecCmd struct {
	N int `arg:"" optional:"" default:"1" help:"How much to subtract"`
}

func (c *DecCmd) Run(app *appContext) error {
	if c.N < 1 {
		return fmt.Errorf("count step must be positive, got %d", c.N)
	}
	if _, err := ensureCurrent(app); err != nil {
		return err
	}

	count := 0
	for i := 0; i < c.N; i++ {
		var err error
		if count, err = app.manager.DecCount(); err != nil {
			return err
		}
	}
	fmt.Printf("count: %d\n", count)
	return nil
}

type EndCmd struct{}

func (c *EndCmd) Run(app *appContext) error {
	g, err := ensureActive(app)
	if err != nil {
		return err
	}
	if err := app.manager.EndGame(); err != nil {
		return err
	}

	fmt.Printf("ended game %s at count %d after %s\n\n",
		g.ID(), g.Count(), game.FormatElapsed(g.Elapsed(), "hms"))
	fmt.Print(tui.RenderBoard(score.Compute(g)))
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(app *appContext) error {
	// Only an unfinished game can be abandoned. Resuming the latest game
	// here would let a reset right after an end delete the freshly saved
	// history entry.
	g, err := ensureActive(app)
	if errors.Is(err, manager.ErrNotFound) {
		fmt.Println("nothing to reset")
		return nil
	}
	if err != nil {
		return err
	}
	if err := app.manager.ResetGame(); err != nil {
		return err
	}
	fmt.Printf("abandoned game %s\n", g.ID())
	return nil
}

type NameCmd struct {
	Name string `arg:"" help:"Display name for the game"`
}

func (c *NameCmd) Run(app *appContext) error {
	if _, err := ensureCurrent(app); err != nil {
		return err
	}
	return app.manager.SetName(c.Name)
}

type AlgorithmCmd struct {
	Algorithm string `arg:"" enum:"spread-split,price-is-right" help:"Scoring algorithm"`
}

func (c *AlgorithmCmd) Run(app *appContext) error {
	if _, err := ensureCurrent(app); err != nil {
		return err
	}
	if err := app.manager.SetAlgorithm(game.Algorithm(c.Algorithm)); err != nil {
		return err
	}
	fmt.Printf("scoring: %s\n", c.Algorithm)
	return nil
}

type PlayCmd struct{}

func (c *PlayCmd) Run(app *appContext) error {
	if _, err := ensureActive(app); err != nil {
		if errors.Is(err, manager.ErrNotFound) {
			return fmt.Errorf("%w; start one with 'jeepscore start'", err)
		}
		return err
	}
	return tui.Run(app.manager, app.logger)
}
