// Package life implements Conway's Game of Life on a bounded square grid.
//
// A live cell with 0 or 1 live neighbours dies, a live cell with 2 or 3 lives
// on, a live cell with 4 or more dies and a dead cell with exactly 3 live
// neighbours comes alive. Cells outside the grid count as dead.
package life

import (
	"fmt"

	"conway/pkg/core"
)

// Neighbors counts alive Moore neighbours of (x, y) that lie inside the grid.
func Neighbors(cells []bool, size, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= size {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := x + dx
			if nx < 0 || nx >= size {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			if cells[ny*size+nx] {
				n++
			}
		}
	}
	return n
}

// Next applies the Life rule to one cell.
func Next(alive bool, neighbors int) bool {
	if alive && (neighbors <= 1 || neighbors >= 4) {
		return false
	}
	if !alive && neighbors == 3 {
		return true
	}
	return alive
}

// evolve returns the next state of cell i read from snap and whether it
// differs from the current one.
func evolve(snap []bool, size, i int) (next, changed bool) {
	alive := snap[i]
	next = Next(alive, Neighbors(snap, size, i%size, i/size))
	return next, next != alive
}

// snapshot copies the live cells and refuses to continue if the copy shares
// storage with them.
func snapshot(g *core.Grid) ([]bool, error) {
	snap := g.Snapshot()
	live := g.Cells()
	if len(snap) != len(live) {
		return nil, fmt.Errorf("%w: snapshot holds %d cells, grid %d", core.ErrInvariant, len(snap), len(live))
	}
	if len(snap) > 0 && &snap[0] == &live[0] {
		return nil, fmt.Errorf("%w: snapshot aliases live storage", core.ErrInvariant)
	}
	return snap, nil
}

// checkVisuals rejects a colour store that does not match the grid.
func checkVisuals(g *core.Grid, vis *core.Visuals) error {
	if n, m := len(vis.Colors()), g.Len(); n != m {
		return fmt.Errorf("%w: %d colours for %d cells", core.ErrInvariant, n, m)
	}
	return nil
}

func init() {
	core.Register(core.Parallel, func(opts core.StrategyOptions) core.Strategy {
		return NewParallel(opts.Workers, opts.ChunkSize)
	})
	core.Register(core.Sequential, func(core.StrategyOptions) core.Strategy {
		return NewSequential()
	})
}
