package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeepscore/jeepscore/internal/game"
)

// parsePlayers turns "name=bid" arguments into players.
func parsePlayers(args []string) ([]*game.Player, error) {
	players := make([]*game.Player, 0, len(args))
	for _, arg := range args {
		name, bidStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid player %q, expected name=bid", arg)
		}
		bid, err := strconv.ParseFloat(strings.TrimSpace(bidStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bid for player %q: %w", name, err)
		}
		p, err := game.NewPlayer(name, bid)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}
