// Package game implements the core scorekeeping model for Jeep: players
// with hidden bids, a shared running count, and a game lifecycle.
//
// The main type is Game, which owns an ordered set of Players, the
// running count, and the lifecycle timestamps. A Game moves through
// three states:
//
//	Pending -> Active -> Ended
//
// Start and End are the only transitions, and Ended is terminal. The
// count may only change once the game has started, and decrements
// saturate at zero rather than failing (an over-count is a
// user-correctable action, not an error).
//
// # Deterministic Testing
//
// Games take a quartz.Clock so tests can control the lifecycle
// timestamps:
//
//	clock := quartz.NewMock(t)
//	g, _ := game.NewGame(clock, players)
//	g.Start()
//	clock.Advance(time.Minute)
//	g.End()
//
// # Serialization
//
// Game.Record flattens a game to primitive fields and GameFromRecord
// rebuilds one; the round trip preserves players, timestamps (at second
// precision), count, and the scoring algorithm tag. Unknown algorithm
// tags survive the round trip untouched and fall back to the default
// algorithm at scoring time.
package game
