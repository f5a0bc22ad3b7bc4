package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrConfig marks a rejected configuration. Nothing is mutated when it is
	// returned.
	ErrConfig = errors.New("configuration error")
	// ErrInvariant marks a broken engine invariant such as overlapping
	// partitions or a snapshot aliasing live storage.
	ErrInvariant = errors.New("invariant violation")
)

// ExecutionMode selects the update strategy for a run.
type ExecutionMode int

const (
	// Parallel partitions each generation across worker goroutines.
	Parallel ExecutionMode = iota
	// Sequential walks the grid on the calling goroutine.
	Sequential
)

func (m ExecutionMode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Sequential:
		return "sequential"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseExecutionMode accepts the names returned by String, case-insensitively.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parallel", "jobs":
		return Parallel, nil
	case "sequential", "main":
		return Sequential, nil
	}
	return 0, fmt.Errorf("%w: unknown execution mode %q", ErrConfig, s)
}

// Color is an RGBA value with components in [0, 1]. The engine passes it
// through untouched.
type Color struct {
	R, G, B, A float32
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = unit16(c.A)
	r = unit16(c.R) * a / 0xffff
	g = unit16(c.G) * a / 0xffff
	b = unit16(c.B) * a / 0xffff
	return r, g, b, a
}

func unit16(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint32(v*0xffff + 0.5)
}

// Hex formats the colour as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A))
}

func unit8(v float32) uint8 {
	return uint8(unit16(v) >> 8)
}

// ParseColor reads #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: colour %q must be #rrggbb or #rrggbbaa", ErrConfig, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: colour %q: %v", ErrConfig, s, err)
	}
	return Color{
		R: float32(v>>24&0xff) / 255,
		G: float32(v>>16&0xff) / 255,
		B: float32(v>>8&0xff) / 255,
		A: float32(v&0xff) / 255,
	}, nil
}

// Palette maps cell states to colours.
type Palette struct {
	Dead  Color
	Alive Color
}

// For returns the colour for a cell state.
func (p Palette) For(alive bool) Color {
	if alive {
		return p.Alive
	}
	return p.Dead
}

// CellUpdate is the visual output for one cell whose state changed.
type CellUpdate struct {
	Pos   Coordinate
	Color Color
}

// Strategy computes one generation in place. Implementations must read
// neighbour states only from a private snapshot taken before any write.
type Strategy interface {
	Mode() ExecutionMode
	Step(g *Grid, vis *Visuals, pal Palette) ([]CellUpdate, error)
}

// StrategyOptions tunes a strategy for one run.
type StrategyOptions struct {
	Workers   int
	ChunkSize int
}

// StrategyFactory constructs a Strategy for a run.
type StrategyFactory func(opts StrategyOptions) Strategy

var strategies = map[ExecutionMode]StrategyFactory{}

// Register adds a strategy factory under the provided mode.
func Register(mode ExecutionMode, f StrategyFactory) {
	if f == nil {
		return
	}
	strategies[mode] = f
}

// Strategies exposes the registry of available strategy factories.
func Strategies() map[ExecutionMode]StrategyFactory {
	return strategies
}

// Modes lists registered modes in ascending order.
func Modes() []ExecutionMode {
	modes := make([]ExecutionMode, 0, len(strategies))
	for m := range strategies {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}
