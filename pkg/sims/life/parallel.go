package life

import (
	"fmt"
	"runtime"

	"conway/pkg/core"

	"golang.org/x/sync/errgroup"
)

// span is a half-open index range [start, end) owned by one task.
type span struct{ start, end int }

// partition splits [0, total) into consecutive chunks of at most chunk cells.
func partition(total, chunk int) []span {
	if chunk <= 0 {
		chunk = core.DefaultChunkSize
	}
	spans := make([]span, 0, (total+chunk-1)/chunk)
	for start := 0; start < total; start += chunk {
		spans = append(spans, span{start: start, end: min(start+chunk, total)})
	}
	return spans
}

// checkPartition verifies spans are ordered, non-empty, disjoint and cover
// [0, total) exactly.
func checkPartition(spans []span, total int) error {
	next := 0
	for i, sp := range spans {
		if sp.start != next {
			if sp.start < next {
				return fmt.Errorf("%w: partition %d [%d,%d) overlaps previous ending at %d", core.ErrInvariant, i, sp.start, sp.end, next)
			}
			return fmt.Errorf("%w: cells [%d,%d) not covered by any partition", core.ErrInvariant, next, sp.start)
		}
		if sp.end <= sp.start {
			return fmt.Errorf("%w: partition %d [%d,%d) is empty", core.ErrInvariant, i, sp.start, sp.end)
		}
		next = sp.end
	}
	if next != total {
		return fmt.Errorf("%w: cells [%d,%d) not covered by any partition", core.ErrInvariant, next, total)
	}
	return nil
}

// Parallel splits each generation into fixed-size index chunks processed by a
// bounded set of goroutines.
type Parallel struct {
	workers int
	chunk   int
}

// NewParallel returns the partitioned strategy. workers <= 0 uses GOMAXPROCS
// and chunk <= 0 uses core.DefaultChunkSize.
func NewParallel(workers, chunk int) *Parallel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunk <= 0 {
		chunk = core.DefaultChunkSize
	}
	return &Parallel{workers: workers, chunk: chunk}
}

// Mode identifies the strategy.
func (p *Parallel) Mode() core.ExecutionMode { return core.Parallel }

// Workers reports the goroutine limit.
func (p *Parallel) Workers() int { return p.workers }

// Step computes the next generation. Every task reads the shared snapshot and
// writes cells and colours only inside its own span; the call returns after
// all tasks have finished.
func (p *Parallel) Step(g *core.Grid, vis *core.Visuals, pal core.Palette) ([]core.CellUpdate, error) {
	snap, err := snapshot(g)
	if err != nil {
		return nil, err
	}
	spans := partition(len(snap), p.chunk)
	if err := checkPartition(spans, len(snap)); err != nil {
		return nil, err
	}

	if err := checkVisuals(g, vis); err != nil {
		return nil, err
	}
	size := g.Size()
	cells := g.Cells()
	colors := vis.Colors()
	results := make([][]core.CellUpdate, len(spans))

	var eg errgroup.Group
	eg.SetLimit(p.workers)
	for k, sp := range spans {
		eg.Go(func() error {
			var local []core.CellUpdate
			for i := sp.start; i < sp.end; i++ {
				next, changed := evolve(snap, size, i)
				if !changed {
					continue
				}
				col := pal.For(next)
				cells[i] = next
				colors[i] = col
				local = append(local, core.CellUpdate{Pos: core.Coordinate{X: i % size, Y: i / size}, Color: col})
			}
			results[k] = local
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, r := range results {
		n += len(r)
	}
	if n == 0 {
		return nil, nil
	}
	updates := make([]core.CellUpdate, 0, n)
	for _, r := range results {
		updates = append(updates, r...)
	}
	return updates, nil
}
