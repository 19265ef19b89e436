// Package gameid generates identifiers for games and players.
//
// Game ids are UUIDv7 values encoded as 26-character Crockford base32
// strings. UUIDv7 leads with a 48-bit millisecond timestamp and the
// encoding is big-endian, so lexicographic order on game ids matches
// creation order. The repository relies on this: evicting the smallest
// ids evicts the oldest games.
package gameid

import (
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet (no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// New returns a fresh time-ordered game id.
func New() string {
	u := uuid.Must(uuid.NewV7())
	return encoding.EncodeToString(u[:])
}

// NewPlayerToken returns a random opaque token for a player. Tokens only
// need to be unique within a single game's player set, so a random UUID
// is more than enough.
func NewPlayerToken() string {
	return uuid.NewString()
}

// Validate checks that id is a well-formed game id.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("game id must be 26 characters, got %d", len(id))
	}
	// 128 bits across 130 bit positions: the first character carries only
	// 3 significant bits, so it cannot exceed '7'.
	if id[0] > '7' {
		return fmt.Errorf("game id first character must be 0-7, got %c", id[0])
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("game id is not valid base32: %w", err)
	}
	return nil
}
