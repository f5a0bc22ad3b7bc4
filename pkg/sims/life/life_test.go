package life

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"testing"

	"conway/pkg/core"
)

var testPalette = core.Palette{
	Dead:  core.Color{A: 1},
	Alive: core.Color{G: 1, A: 1},
}

// newTestGrid returns a dead grid with the listed cells alive.
func newTestGrid(t *testing.T, size int, alive ...core.Coordinate) (*core.Grid, *core.Visuals) {
	t.Helper()
	g := core.NewGrid()
	if err := g.Resize(size); err != nil {
		t.Fatalf("resize: %v", err)
	}
	for _, c := range alive {
		g.Set(g.Index(c.X, c.Y), true)
	}
	vis := core.NewVisuals()
	vis.Resize(size)
	vis.Paint(g.Cells(), testPalette)
	return g, vis
}

func strategiesUnderTest() []core.Strategy {
	return []core.Strategy{NewSequential(), NewParallel(4, 3), NewParallel(1, 0)}
}

func TestBlinkerOscillation(t *testing.T) {
	for _, s := range strategiesUnderTest() {
		g, vis := newTestGrid(t, 5, core.Coordinate{X: 2, Y: 1}, core.Coordinate{X: 2, Y: 2}, core.Coordinate{X: 2, Y: 3})
		w := g.Size()

		if _, err := s.Step(g, vis, testPalette); err != nil {
			t.Fatalf("%v: step: %v", s.Mode(), err)
		}
		expects := map[[2]int]bool{
			{1, 2}: true,
			{2, 2}: true,
			{3, 2}: true,
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				alive := g.Get(y*w + x)
				_, shouldBeAlive := expects[[2]int{x, y}]
				if shouldBeAlive != alive {
					t.Fatalf("%v: cell (%d,%d) alive=%v, expected %v", s.Mode(), x, y, alive, shouldBeAlive)
				}
			}
		}

		if _, err := s.Step(g, vis, testPalette); err != nil {
			t.Fatalf("%v: step: %v", s.Mode(), err)
		}
		expects = map[[2]int]bool{
			{2, 1}: true,
			{2, 2}: true,
			{2, 3}: true,
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				alive := g.Get(y*w + x)
				_, shouldBeAlive := expects[[2]int{x, y}]
				if shouldBeAlive != alive {
					t.Fatalf("%v: after second step cell (%d,%d) alive=%v, expected %v", s.Mode(), x, y, alive, shouldBeAlive)
				}
			}
		}
	}
}

func TestBlockIsStillLife(t *testing.T) {
	for _, s := range strategiesUnderTest() {
		g, vis := newTestGrid(t, 3,
			core.Coordinate{X: 0, Y: 0}, core.Coordinate{X: 1, Y: 0},
			core.Coordinate{X: 0, Y: 1}, core.Coordinate{X: 1, Y: 1})
		before := g.Snapshot()
		updates, err := s.Step(g, vis, testPalette)
		if err != nil {
			t.Fatalf("%v: step: %v", s.Mode(), err)
		}
		if len(updates) != 0 {
			t.Fatalf("%v: still life emitted %d updates", s.Mode(), len(updates))
		}
		for i, alive := range g.Cells() {
			if alive != before[i] {
				t.Fatalf("%v: cell %v changed", s.Mode(), g.Coord(i))
			}
		}
	}
}

func TestIsolatedCellDies(t *testing.T) {
	for _, size := range []int{1, 2, 5, 9} {
		for i := 0; i < size*size; i++ {
			for _, s := range strategiesUnderTest() {
				g, vis := newTestGrid(t, size)
				g.Set(i, true)
				pos := g.Coord(i)
				updates, err := s.Step(g, vis, testPalette)
				if err != nil {
					t.Fatalf("%v: step: %v", s.Mode(), err)
				}
				if g.Population() != 0 {
					t.Fatalf("%v: size %d: isolated cell %v survived", s.Mode(), size, pos)
				}
				if len(updates) != 1 || updates[0].Pos != pos || updates[0].Color != testPalette.Dead {
					t.Fatalf("%v: size %d: updates %+v, want one dead update at %v", s.Mode(), size, updates, pos)
				}
			}
		}
	}
}

func TestDeadCellNeighbourCounts(t *testing.T) {
	centre := core.Coordinate{X: 2, Y: 2}
	ring := []core.Coordinate{
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 1, Y: 2},
	}
	cases := []struct {
		neighbors int
		alive     bool
	}{
		{neighbors: 2, alive: false},
		{neighbors: 3, alive: true},
		{neighbors: 4, alive: false},
	}
	for _, tc := range cases {
		for _, s := range strategiesUnderTest() {
			g, vis := newTestGrid(t, 5, ring[:tc.neighbors]...)
			idx := g.Index(centre.X, centre.Y)
			if n := Neighbors(g.Cells(), 5, centre.X, centre.Y); n != tc.neighbors {
				t.Fatalf("setup: centre has %d neighbours, want %d", n, tc.neighbors)
			}
			if _, err := s.Step(g, vis, testPalette); err != nil {
				t.Fatalf("%v: step: %v", s.Mode(), err)
			}
			if got := g.Get(idx); got != tc.alive {
				t.Errorf("%v: dead centre with %d neighbours alive=%v, expected %v", s.Mode(), tc.neighbors, got, tc.alive)
			}
			if want := testPalette.For(tc.alive); vis.At(idx) != want {
				t.Errorf("%v: centre colour %+v, expected %+v", s.Mode(), vis.At(idx), want)
			}
		}
	}
}

func TestNeighborsNoWraparound(t *testing.T) {
	cells := make([]bool, 9)
	for i := range cells {
		cells[i] = true
	}
	corners := []core.Coordinate{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}}
	for _, c := range corners {
		if n := Neighbors(cells, 3, c.X, c.Y); n != 3 {
			t.Errorf("corner %v counted %d neighbours, expected 3", c, n)
		}
	}
	if n := Neighbors(cells, 3, 1, 0); n != 5 {
		t.Errorf("edge (1,0) counted %d neighbours, expected 5", n)
	}
	if n := Neighbors(cells, 3, 1, 1); n != 8 {
		t.Errorf("centre counted %d neighbours, expected 8", n)
	}

	// Opposite edges must not see each other.
	edge := make([]bool, 16)
	edge[3] = true  // (3,0)
	edge[12] = true // (0,3)
	if n := Neighbors(edge, 4, 0, 0); n != 0 {
		t.Errorf("corner (0,0) saw %d wrapped neighbours", n)
	}
}

func TestNextRule(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := n == 2 || n == 3
		if got := Next(true, n); got != wantAlive {
			t.Errorf("alive with %d neighbours -> %v, expected %v", n, got, wantAlive)
		}
		wantBorn := n == 3
		if got := Next(false, n); got != wantBorn {
			t.Errorf("dead with %d neighbours -> %v, expected %v", n, got, wantBorn)
		}
	}
}

func TestStrategiesAgree(t *testing.T) {
	for size := 1; size <= 24; size++ {
		pool, err := core.NewPool(uint64(1000+size), 5)
		if err != nil {
			t.Fatalf("pool: %v", err)
		}
		seqGrid, seqVis := core.NewGrid(), core.NewVisuals()
		if err := Initialize(seqGrid, seqVis, size, pool, testPalette, false); err != nil {
			t.Fatalf("initialize: %v", err)
		}
		parGrid, parVis := core.NewGrid(), core.NewVisuals()
		if err := parGrid.Resize(size); err != nil {
			t.Fatalf("resize: %v", err)
		}
		copy(parGrid.Cells(), seqGrid.Cells())
		parVis.Resize(size)
		copy(parVis.Colors(), seqVis.Colors())

		seq := NewSequential()
		par := NewParallel(3, 7)
		for gen := 1; gen <= 5; gen++ {
			seqUpdates, err := seq.Step(seqGrid, seqVis, testPalette)
			if err != nil {
				t.Fatalf("sequential step: %v", err)
			}
			parUpdates, err := par.Step(parGrid, parVis, testPalette)
			if err != nil {
				t.Fatalf("parallel step: %v", err)
			}
			for i := range seqGrid.Cells() {
				if seqGrid.Get(i) != parGrid.Get(i) {
					t.Fatalf("size %d gen %d: cell %v sequential=%v parallel=%v", size, gen, seqGrid.Coord(i), seqGrid.Get(i), parGrid.Get(i))
				}
				if seqVis.At(i) != parVis.At(i) {
					t.Fatalf("size %d gen %d: colour of %v differs", size, gen, seqGrid.Coord(i))
				}
			}
			if len(seqUpdates) != len(parUpdates) {
				t.Fatalf("size %d gen %d: %d sequential updates, %d parallel", size, gen, len(seqUpdates), len(parUpdates))
			}
			for i := range seqUpdates {
				if seqUpdates[i] != parUpdates[i] {
					t.Fatalf("size %d gen %d: update %d differs: %+v vs %+v", size, gen, i, seqUpdates[i], parUpdates[i])
				}
			}
		}
	}
}

func TestPartitionCoversRange(t *testing.T) {
	for _, total := range []int{0, 1, 7, 128, 129, 1000} {
		for _, chunk := range []int{0, 1, 3, 128, 4096} {
			spans := partition(total, chunk)
			if err := checkPartition(spans, total); err != nil {
				t.Fatalf("partition(%d, %d): %v", total, chunk, err)
			}
		}
	}
}

func TestCheckPartitionRejectsBadSpans(t *testing.T) {
	cases := map[string][]span{
		"overlap": {{0, 5}, {4, 10}},
		"gap":     {{0, 4}, {5, 10}},
		"short":   {{0, 4}, {4, 8}},
		"empty":   {{0, 5}, {5, 5}, {5, 10}},
	}
	for name, spans := range cases {
		err := checkPartition(spans, 10)
		if !errors.Is(err, core.ErrInvariant) {
			t.Errorf("%s: got %v, expected ErrInvariant", name, err)
		}
	}
}

func TestStepRejectsMismatchedVisuals(t *testing.T) {
	for _, s := range strategiesUnderTest() {
		g, _ := newTestGrid(t, 4, core.Coordinate{X: 1, Y: 1})
		vis := core.NewVisuals()
		vis.Resize(3)
		before := g.Snapshot()
		if _, err := s.Step(g, vis, testPalette); !errors.Is(err, core.ErrInvariant) {
			t.Fatalf("%v: got %v, expected ErrInvariant", s.Mode(), err)
		}
		for i := range before {
			if before[i] != g.Get(i) {
				t.Fatalf("%v: aborted step wrote cell %d", s.Mode(), i)
			}
		}
	}
}

// loadGolden reads generation 0 and 1 of a square grid from a text file of
// '.'/'#' rows separated by a blank line.
func loadGolden(t *testing.T, path string) (size int, gen0, gen1 []bool) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open golden: %v", err)
	}
	defer f.Close()

	var blocks [][]string
	var cur []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "//") {
			continue
		}
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("golden has %d blocks, expected 2", len(blocks))
	}
	parse := func(rows []string) []bool {
		out := make([]bool, 0, len(rows)*len(rows))
		for _, row := range rows {
			if len(row) != len(rows) {
				t.Fatalf("golden row %q is not %d wide", row, len(rows))
			}
			for _, ch := range row {
				out = append(out, ch == '#')
			}
		}
		return out
	}
	return len(blocks[0]), parse(blocks[0]), parse(blocks[1])
}

func TestGolden4x4(t *testing.T) {
	size, gen0, gen1 := loadGolden(t, "testdata/golden_4x4.txt")
	for _, s := range strategiesUnderTest() {
		g, vis := newTestGrid(t, size)
		copy(g.Cells(), gen0)
		updates, err := s.Step(g, vis, testPalette)
		if err != nil {
			t.Fatalf("%v: step: %v", s.Mode(), err)
		}
		for i, want := range gen1 {
			if g.Get(i) != want {
				t.Errorf("%v: cell %v alive=%v, golden %v", s.Mode(), g.Coord(i), g.Get(i), want)
			}
		}
		wantPos := []core.Coordinate{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 2, Y: 3}}
		if len(updates) != len(wantPos) {
			t.Fatalf("%v: %d updates, expected %d", s.Mode(), len(updates), len(wantPos))
		}
		for i, pos := range wantPos {
			if updates[i].Pos != pos {
				t.Errorf("%v: update %d at %v, expected %v", s.Mode(), i, updates[i].Pos, pos)
			}
		}
	}
}
