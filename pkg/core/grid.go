package core

import "fmt"

// Coordinate addresses a cell on a square grid.
type Coordinate struct {
	X, Y int
}

// Grid stores a square grid of alive/dead cells in row-major order. It is not
// synchronised; callers partition access themselves.
type Grid struct {
	size int
	data []bool
}

func checkSide(side int) error {
	if side <= 0 {
		return fmt.Errorf("%w: grid size %d must be positive", ErrConfig, side)
	}
	if side > MaxGridSize {
		return fmt.Errorf("%w: grid size %d exceeds %d", ErrConfig, side, MaxGridSize)
	}
	return nil
}

// NewGrid returns an empty grid. Call Resize before use.
func NewGrid() *Grid { return &Grid{} }

// Resize discards all cells and allocates a dead side*side grid.
func (g *Grid) Resize(side int) error {
	if err := checkSide(side); err != nil {
		return err
	}
	g.size = side
	g.data = make([]bool, side*side)
	return nil
}

// Release drops the backing storage.
func (g *Grid) Release() {
	g.size = 0
	g.data = nil
}

// Size returns the side length.
func (g *Grid) Size() int { return g.size }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.data) }

// Get reports whether cell i is alive.
func (g *Grid) Get(i int) bool { return g.data[i] }

// Set stores the state of cell i.
func (g *Grid) Set(i int, alive bool) { g.data[i] = alive }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []bool { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.size + x }

// Coord is the inverse of Index.
func (g *Grid) Coord(i int) Coordinate {
	return Coordinate{X: i % g.size, Y: i / g.size}
}

// Snapshot returns a private copy of the current cells.
func (g *Grid) Snapshot() []bool {
	snap := make([]bool, len(g.data))
	copy(snap, g.data)
	return snap
}

// Population counts alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.data {
		if alive {
			n++
		}
	}
	return n
}
