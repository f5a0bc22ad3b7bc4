package life

import "conway/pkg/core"

// Sequential updates the whole grid on the calling goroutine.
type Sequential struct{}

// NewSequential returns the single-threaded strategy.
func NewSequential() *Sequential { return &Sequential{} }

// Mode identifies the strategy.
func (s *Sequential) Mode() core.ExecutionMode { return core.Sequential }

// Step walks every cell in row-major order against a private snapshot and
// recolours changed cells through the position-keyed lookup.
func (s *Sequential) Step(g *core.Grid, vis *core.Visuals, pal core.Palette) ([]core.CellUpdate, error) {
	snap, err := snapshot(g)
	if err != nil {
		return nil, err
	}
	if err := checkVisuals(g, vis); err != nil {
		return nil, err
	}
	size := g.Size()
	var updates []core.CellUpdate
	for i := range snap {
		next, changed := evolve(snap, size, i)
		if !changed {
			continue
		}
		pos := g.Coord(i)
		col := pal.For(next)
		g.Set(i, next)
		vis.SetAt(pos, col)
		updates = append(updates, core.CellUpdate{Pos: pos, Color: col})
	}
	return updates, nil
}
