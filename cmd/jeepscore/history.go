package main

import (
	"fmt"
	"time"

	"github.com/jeepscore/jeepscore/internal/game"
	"github.com/jeepscore/jeepscore/internal/gameid"
	"github.com/jeepscore/jeepscore/internal/manager"
	"github.com/jeepscore/jeepscore/internal/score"
	"github.com/jeepscore/jeepscore/internal/tui"
)

type HistoryCmd struct {
	List   HistoryListCmd   `cmd:"" default:"1" help:"List saved games"`
	Show   HistoryShowCmd   `cmd:"" help:"Show a saved game's board"`
	Delete HistoryDeleteCmd `cmd:"" help:"Delete a saved game"`
}

type HistoryListCmd struct{}

func (c *HistoryListCmd) Run(app *appContext) error {
	records, err := app.manager.GetSavedGames()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no saved games")
		return nil
	}

	fmt.Printf("%-26s  %-16s  %7s  %5s  %-16s  %s\n",
		"ID", "NAME", "PLAYERS", "COUNT", "STARTED", "DURATION")
	for _, rec := range records {
		fmt.Printf("%-26s  %-16s  %7d  %5d  %-16s  %s\n",
			rec.ID,
			rec.Name,
			len(rec.Players),
			rec.Count,
			formatRecordTime(rec.StartTime),
			recordDuration(rec))
	}
	return nil
}

type HistoryShowCmd struct {
	ID string `arg:"" optional:"" help:"Game id, latest when omitted"`
}

func (c *HistoryShowCmd) Run(app *appContext) error {
	rec, err := c.findRecord(app)
	if err != nil {
		return err
	}

	g, err := game.GameFromRecord(nil, rec)
	if err != nil {
		return err
	}

	fmt.Printf("game %s (%s), count %d\n\n", g.ID(), g.State(), g.Count())
	fmt.Print(tui.RenderBoard(score.Compute(g)))
	return nil
}

func (c *HistoryShowCmd) findRecord(app *appContext) (game.Record, error) {
	if c.ID == "" {
		return app.manager.GetLatestSavedGame()
	}
	if err := gameid.Validate(c.ID); err != nil {
		return game.Record{}, fmt.Errorf("invalid game id %q: %w", c.ID, err)
	}
	records, err := app.manager.GetSavedGames()
	if err != nil {
		return game.Record{}, err
	}
	for _, rec := range records {
		if rec.ID == c.ID {
			return rec, nil
		}
	}
	return game.Record{}, fmt.Errorf("%w: %s", manager.ErrNotFound, c.ID)
}

type HistoryDeleteCmd struct {
	ID string `arg:"" help:"Game id to delete"`
}

func (c *HistoryDeleteCmd) Run(app *appContext) error {
	if err := gameid.Validate(c.ID); err != nil {
		return fmt.Errorf("invalid game id %q: %w", c.ID, err)
	}
	if err := app.manager.DeleteSavedGame(c.ID); err != nil {
		return err
	}
	fmt.Printf("deleted game %s\n", c.ID)
	return nil
}

func formatRecordTime(ts *string) string {
	if ts == nil {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, *ts)
	if err != nil {
		return *ts
	}
	return t.Local().Format("2006-01-02 15:04")
}

func recordDuration(rec game.Record) string {
	if rec.StartTime == nil || rec.EndTime == nil {
		return "-"
	}
	start, err := time.Parse(time.RFC3339, *rec.StartTime)
	if err != nil {
		return "-"
	}
	end, err := time.Parse(time.RFC3339, *rec.EndTime)
	if err != nil {
		return "-"
	}
	return game.FormatElapsed(end.Sub(start), "hms")
}
