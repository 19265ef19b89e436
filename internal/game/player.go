package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeepscore/jeepscore/internal/gameid"
)

// Player is an immutable participant: an opaque id, a display name, and
// the bid submitted before play starts.
type Player struct {
	id   string
	name string
	bid  int
}

// NewPlayer creates a player from user input. The name must not trim to
// empty and the bid must be non-negative; the bid is rounded half away
// from zero to the nearest integer.
func NewPlayer(name string, bid float64) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: player name must not be empty", ErrValidation)
	}
	if bid < 0 {
		return nil, fmt.Errorf("%w: bid must not be negative, got %v", ErrValidation, bid)
	}

	return &Player{
		id:   gameid.NewPlayerToken(),
		name: name,
		bid:  int(math.Round(bid)),
	}, nil
}

// PlayerFromRecord rebuilds a player from persisted primitives. Records
// written before player ids existed have no id; a fresh one is generated
// so older data keeps loading.
func PlayerFromRecord(rec PlayerRecord) (*Player, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: player record has empty name", ErrValidation)
	}
	if rec.Bid < 0 {
		return nil, fmt.Errorf("%w: player record has negative bid %d", ErrValidation, rec.Bid)
	}

	id := rec.ID
	if id == "" {
		id = gameid.NewPlayerToken()
	}
	return &Player{id: id, name: name, bid: rec.Bid}, nil
}

// ID returns the player's opaque token, stable for the game's lifetime.
func (p *Player) ID() string { return p.id }

// Name returns the player's display name.
func (p *Player) Name() string { return p.name }

// Bid returns the player's bid.
func (p *Player) Bid() int { return p.bid }

// Record flattens the player to persisted primitives.
func (p *Player) Record() PlayerRecord {
	return PlayerRecord{ID: p.id, Name: p.name, Bid: p.bid}
}
