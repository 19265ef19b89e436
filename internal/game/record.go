package game

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/jeepscore/jeepscore/internal/gameid"
)

// PlayerRecord is a player flattened to persisted primitives.
type PlayerRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bid  int    `json:"bid"`
}

// Record is a game flattened to persisted primitives. Timestamps are
// ISO-8601 strings, nil while unset.
type Record struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Players        []PlayerRecord `json:"players"`
	StartTime      *string        `json:"startTime"`
	EndTime        *string        `json:"endTime"`
	Count          int            `json:"count"`
	ScoreAlgorithm string         `json:"scoreAlgorithm"`
}

// Record flattens the game for persistence.
func (g *Game) Record() Record {
	rec := Record{
		ID:             g.id,
		Name:           g.name,
		Players:        make([]PlayerRecord, 0, len(g.players)),
		Count:          g.count,
		ScoreAlgorithm: string(g.algorithm),
	}
	for _, p := range g.players {
		rec.Players = append(rec.Players, p.Record())
	}
	if !g.startTime.IsZero() {
		s := g.startTime.Format(time.RFC3339)
		rec.StartTime = &s
	}
	if !g.endTime.IsZero() {
		s := g.endTime.Format(time.RFC3339)
		rec.EndTime = &s
	}
	return rec
}

// GameFromRecord rebuilds a game from persisted primitives, validating
// the lifecycle invariants the in-memory type maintains: an end time
// requires a start time and must not precede it, and the count must not
// be negative. A record without an id is assigned a fresh one. A nil
// clock falls back to the real clock.
func GameFromRecord(clock quartz.Clock, rec Record) (*Game, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if len(rec.Players) == 0 {
		return nil, fmt.Errorf("%w: game record has no players", ErrValidation)
	}
	if rec.Count < 0 {
		return nil, fmt.Errorf("%w: game record has negative count %d", ErrValidation, rec.Count)
	}

	g := &Game{
		clock:     clock,
		id:        rec.ID,
		name:      rec.Name,
		count:     rec.Count,
		algorithm: Algorithm(rec.ScoreAlgorithm),
	}
	if g.id == "" {
		g.id = gameid.New()
	}
	if g.algorithm == "" {
		g.algorithm = AlgorithmSpreadSplit
	}

	seen := make(map[string]bool, len(rec.Players))
	for _, pr := range rec.Players {
		p, err := PlayerFromRecord(pr)
		if err != nil {
			return nil, err
		}
		if seen[p.ID()] {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrValidation, p.ID())
		}
		seen[p.ID()] = true
		g.players = append(g.players, p)
	}

	if rec.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *rec.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start time %q: %v", ErrValidation, *rec.StartTime, err)
		}
		g.startTime = t
	}
	if rec.EndTime != nil {
		if rec.StartTime == nil {
			return nil, fmt.Errorf("%w: game record has end time but no start time", ErrValidation)
		}
		t, err := time.Parse(time.RFC3339, *rec.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end time %q: %v", ErrValidation, *rec.EndTime, err)
		}
		if t.Before(g.startTime) {
			return nil, fmt.Errorf("%w: end time %s precedes start time %s", ErrValidation, t, g.startTime)
		}
		g.endTime = t
	}

	return g, nil
}
