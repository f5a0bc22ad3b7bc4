package life

import (
	"conway/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Initialize resizes g and vis to side*side and randomises every cell.
// Cell i draws from stream i mod pool.Len(), and each stream visits its cells
// in ascending order, so the result depends only on the pool's seed and
// stream count, not on parallel.
func Initialize(g *core.Grid, vis *core.Visuals, side int, pool *core.Pool, pal core.Palette, parallel bool) error {
	if err := g.Resize(side); err != nil {
		return err
	}
	vis.Resize(side)

	cells := g.Cells()
	streams := pool.Len()
	if parallel {
		var eg errgroup.Group
		for s := 0; s < streams && s < len(cells); s++ {
			eg.Go(func() error {
				fillStride(cells, pool.Stream(s), s, streams)
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	} else {
		for i := range cells {
			cells[i] = pool.Stream(i % streams).Bool()
		}
	}

	vis.Paint(cells, pal)
	return nil
}

// fillStride assigns cells first, first+stride, ... from one stream.
func fillStride(cells []bool, rng *core.RNG, first, stride int) {
	for i := first; i < len(cells); i += stride {
		cells[i] = rng.Bool()
	}
}
