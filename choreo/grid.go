package choreo

import "fmt"

// Grid is a deterministic row-major layout for a number of equally sized
// cells inside a container. Positions are indexed by slot.
type Grid struct {
	Width          int
	Height         int
	CardsPerRow    int
	Positions      []Position
	RequiredHeight int
	// Warnings records degenerate inputs the layout corrected rather than
	// dropped (non-positive cell sizes, coinciding positions).
	Warnings []string
}

// ComputeGrid lays out itemCount cells of cellW x cellH inside a container of
// containerW x containerH. It is pure: same inputs, same grid. A container
// width <= 0 or an item count <= 0 yields an empty layout, which callers
// treat as "nothing to animate".
func ComputeGrid(containerW, containerH, itemCount, cellW, cellH int) Grid {
	g := Grid{Width: containerW, Height: containerH, CardsPerRow: 1}
	if containerW <= 0 || itemCount <= 0 {
		return g
	}
	if cellW <= 0 {
		g.Warnings = append(g.Warnings, fmt.Sprintf("cell width %d clamped to 1", cellW))
		cellW = 1
	}
	if cellH <= 0 {
		g.Warnings = append(g.Warnings, fmt.Sprintf("cell height %d clamped to 1", cellH))
		cellH = 1
	}

	perRow := containerW / cellW
	if perRow < 1 {
		perRow = 1
	}
	g.CardsPerRow = perRow

	g.Positions = make([]Position, itemCount)
	seen := make(map[Position]int, itemCount)
	for i := 0; i < itemCount; i++ {
		row := i / perRow
		col := i % perRow
		pos := Position{X: float64(col * cellW), Y: float64(row * cellH)}
		// The formula cannot produce duplicates on its own, but corrected
		// degenerate cell sizes can. Nudge rather than drop.
		for {
			prev, dup := seen[pos]
			if !dup {
				break
			}
			g.Warnings = append(g.Warnings,
				fmt.Sprintf("positions %d and %d coincide at (%.0f,%.0f); nudging", prev, i, pos.X, pos.Y))
			pos.X++
		}
		seen[pos] = i
		g.Positions[i] = pos
	}

	rows := (itemCount + perRow - 1) / perRow
	g.RequiredHeight = rows * cellH
	return g
}
