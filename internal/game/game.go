package game

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/jeepscore/jeepscore/internal/gameid"
)

// Algorithm tags the scoring strategy attached to a game. The tag is an
// open string so legacy data with unrecognized tags still loads; the
// scoring engine resolves unknown tags to AlgorithmSpreadSplit.
type Algorithm string

const (
	// AlgorithmSpreadSplit gives each player a tolerance window around
	// their bid, sized by the spread between the lowest and highest bids.
	AlgorithmSpreadSplit Algorithm = "spread-split"
	// AlgorithmPriceIsRight rewards the players whose bid is closest to
	// the count without exceeding it.
	AlgorithmPriceIsRight Algorithm = "price-is-right"
)

// State is a game's lifecycle state.
type State int

const (
	StatePending State = iota
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Game tracks one round of Jeep: an ordered player list, the shared
// running count, and lifecycle timestamps. Zero timestamps mean unset.
type Game struct {
	clock     quartz.Clock
	id        string
	name      string
	players   []*Player
	startTime time.Time
	endTime   time.Time
	count     int
	algorithm Algorithm
}

// Option configures a new game.
type Option func(*Game)

// WithName sets the game's display name.
func WithName(name string) Option {
	return func(g *Game) { g.name = name }
}

// WithAlgorithm sets the initial scoring algorithm tag.
func WithAlgorithm(algorithm Algorithm) Option {
	return func(g *Game) { g.algorithm = algorithm }
}

// NewGame creates a pending game from a validated player list. The id is
// generated from the creation time, so ids order chronologically. A nil
// clock falls back to the real clock.
func NewGame(clock quartz.Clock, players []*Player, opts ...Option) (*Game, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: a game needs at least one player", ErrValidation)
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.ID()] {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrValidation, p.ID())
		}
		seen[p.ID()] = true
	}

	g := &Game{
		clock:     clock,
		id:        gameid.New(),
		players:   append([]*Player(nil), players...),
		algorithm: AlgorithmSpreadSplit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ID returns the game's id.
func (g *Game) ID() string { return g.id }

// Name returns the game's display name, empty by default.
func (g *Game) Name() string { return g.name }

// SetName sets the display name. Allowed in any state.
func (g *Game) SetName(name string) { g.name = name }

// Players returns the players in entry order.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// NumPlayers returns the number of players.
func (g *Game) NumPlayers() int { return len(g.players) }

// Count returns the shared running count.
func (g *Game) Count() int { return g.count }

// StartTime returns when the game started, zero if pending.
func (g *Game) StartTime() time.Time { return g.startTime }

// EndTime returns when the game ended, zero if not ended.
func (g *Game) EndTime() time.Time { return g.endTime }

// Algorithm returns the active scoring algorithm tag as set, which may
// be a legacy tag the scoring engine does not recognize.
func (g *Game) Algorithm() Algorithm { return g.algorithm }

// SetAlgorithm sets the scoring algorithm tag. Unknown tags are accepted
// and resolve to the default algorithm at scoring time.
func (g *Game) SetAlgorithm(algorithm Algorithm) { g.algorithm = algorithm }

// State derives the lifecycle state from the timestamps. Exactly one of
// the three states holds at any time.
func (g *Game) State() State {
	switch {
	case !g.endTime.IsZero():
		return StateEnded
	case !g.startTime.IsZero():
		return StateActive
	default:
		return StatePending
	}
}

// Start moves the game from Pending to Active, stamping the start time.
func (g *Game) Start() error {
	switch g.State() {
	case StateActive:
		return fmt.Errorf("%w: game already started", ErrInvalidState)
	case StateEnded:
		return fmt.Errorf("%w: game already ended", ErrInvalidState)
	}
	g.startTime = g.clock.Now()
	return nil
}

// End moves the game from Active to Ended, stamping the end time. Ended
// is terminal.
func (g *Game) End() error {
	switch g.State() {
	case StatePending:
		return fmt.Errorf("%w: game has not started", ErrInvalidState)
	case StateEnded:
		return fmt.Errorf("%w: game already ended", ErrInvalidState)
	}
	g.endTime = g.clock.Now()
	return nil
}

// IncCount increments the running count. The count only has meaning once
// play has begun, so this fails while the game is pending.
func (g *Game) IncCount() error {
	if g.State() == StatePending {
		return fmt.Errorf("%w: cannot change count before the game starts", ErrInvalidState)
	}
	g.count++
	return nil
}

// DecCount decrements the running count, saturating at zero. Like
// IncCount it fails while the game is pending, but decrementing an
// already-zero count is not an error.
func (g *Game) DecCount() error {
	if g.State() == StatePending {
		return fmt.Errorf("%w: cannot change count before the game starts", ErrInvalidState)
	}
	if g.count > 0 {
		g.count--
	}
	return nil
}

// Elapsed returns how long the game has run: zero while pending, the
// running duration while active, and the final duration once ended.
func (g *Game) Elapsed() time.Duration {
	switch g.State() {
	case StatePending:
		return 0
	case StateActive:
		return g.clock.Now().Sub(g.startTime)
	default:
		return g.endTime.Sub(g.startTime)
	}
}
