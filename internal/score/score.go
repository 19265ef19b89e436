// Package score computes per-player standings for a game. Scoring is a
// pure function of the players' bids and the running count; it holds no
// state and is safe to recompute on every count change.
package score

import (
	"math"
	"strconv"

	"github.com/jeepscore/jeepscore/internal/game"
)

// Column describes one scoreboard column. Styles carry presentation
// class names ("player", "num") for the rendering layer to map; the
// engine itself attaches no meaning to them.
type Column struct {
	Title  string
	Key    string
	Styles []string
}

// Row holds one player's standing. Cells are display strings keyed by
// the column Key. IsLow and IsHigh are informational flags relative to
// the player's target; IsWin is the algorithm's verdict.
type Row struct {
	Cells  map[string]string
	IsWin  bool
	IsLow  bool
	IsHigh bool
	Styles []string
}

// Board is the computed scoreboard. Rows are keyed by player id and
// Order preserves the players' entry order.
type Board struct {
	Algorithm game.Algorithm
	Columns   []Column
	Order     []string
	Rows      map[string]Row
}

// Compute scores the game under its active algorithm. The dispatch is
// total over the known algorithms; unknown or legacy tags fall back to
// spread/split rather than failing, so older persisted games keep
// scoring.
func Compute(g *game.Game) Board {
	switch g.Algorithm() {
	case game.AlgorithmPriceIsRight:
		return computePriceIsRight(g)
	case game.AlgorithmSpreadSplit:
		return computeSpreadSplit(g)
	default:
		return computeSpreadSplit(g)
	}
}

// computeSpreadSplit gives each player a symmetric win window around
// their bid. The window half-width is the bid spread divided by the
// number of players, rounded half away from zero. When all bids are
// equal the window collapses to exactly the bid.
func computeSpreadSplit(g *game.Game) Board {
	players := g.Players()
	count := g.Count()

	low, high := players[0].Bid(), players[0].Bid()
	for _, p := range players[1:] {
		if p.Bid() < low {
			low = p.Bid()
		}
		if p.Bid() > high {
			high = p.Bid()
		}
	}
	split := int(math.Round(float64(high-low) / float64(len(players))))

	board := Board{
		Algorithm: game.AlgorithmSpreadSplit,
		Columns: []Column{
			{Title: "Player", Key: "name", Styles: []string{"player"}},
			{Title: "Bid", Key: "bid", Styles: []string{"num"}},
			{Title: "Min", Key: "min", Styles: []string{"num"}},
			{Title: "Max", Key: "max", Styles: []string{"num"}},
		},
		Rows: make(map[string]Row, len(players)),
	}

	for _, p := range players {
		pmin := p.Bid() - split
		if pmin < 0 {
			pmin = 0
		}
		pmax := p.Bid() + split

		row := Row{
			Cells: map[string]string{
				"name": p.Name(),
				"bid":  strconv.Itoa(p.Bid()),
				"min":  strconv.Itoa(pmin),
				"max":  strconv.Itoa(pmax),
			},
			IsLow:  count < pmin,
			IsHigh: count > pmax,
		}
		row.IsWin = !row.IsLow && !row.IsHigh
		row.Styles = rowStyles(row)

		board.Order = append(board.Order, p.ID())
		board.Rows[p.ID()] = row
	}
	return board
}

// computePriceIsRight rewards the players whose bid comes closest to the
// count without exceeding it. Ties at the smallest non-negative
// difference all win; if every bid exceeds the count nobody wins.
func computePriceIsRight(g *game.Game) Board {
	players := g.Players()
	count := g.Count()

	smallest := -1
	for _, p := range players {
		diff := count - p.Bid()
		if diff < 0 {
			continue
		}
		if smallest < 0 || diff < smallest {
			smallest = diff
		}
	}

	board := Board{
		Algorithm: game.AlgorithmPriceIsRight,
		Columns: []Column{
			{Title: "Player", Key: "name", Styles: []string{"player"}},
			{Title: "Bid", Key: "bid", Styles: []string{"num"}},
			{Title: "Diff", Key: "diff", Styles: []string{"num"}},
		},
		Rows: make(map[string]Row, len(players)),
	}

	for _, p := range players {
		diff := count - p.Bid()
		row := Row{
			Cells: map[string]string{
				"name": p.Name(),
				"bid":  strconv.Itoa(p.Bid()),
				"diff": strconv.Itoa(diff),
			},
			IsLow:  p.Bid() < count,
			IsHigh: p.Bid() > count,
			IsWin:  smallest >= 0 && diff >= 0 && diff <= smallest,
		}
		row.Styles = rowStyles(row)

		board.Order = append(board.Order, p.ID())
		board.Rows[p.ID()] = row
	}
	return board
}

func rowStyles(row Row) []string {
	switch {
	case row.IsWin:
		return []string{"win"}
	case row.IsHigh:
		return []string{"high"}
	case row.IsLow:
		return []string{"low"}
	default:
		return nil
	}
}
