package app

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"conway/pkg/core"

	"github.com/charmbracelet/log"
)

// Flags represents the command-line parameters shared by the frontends.
type Flags struct {
	Size     int
	Mode     string
	Seed     string
	Streams  int
	Workers  int
	Chunk    int
	Cell     float64
	TPS      int
	Dead     string
	Alive    string
	LogLevel string
}

// NewFlags returns Flags populated with sensible defaults.
func NewFlags() *Flags {
	def := core.DefaultConfig()
	return &Flags{
		Size:     def.GridSize,
		Mode:     def.Mode.String(),
		Streams:  def.Streams,
		Workers:  def.Workers,
		Chunk:    def.ChunkSize,
		Cell:     float64(def.CellSize),
		TPS:      30,
		Dead:     "#000000",
		Alive:    "#00ff00",
		LogLevel: "info",
	}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.IntVar(&f.Size, "size", f.Size, "grid side length in cells")
	fs.StringVar(&f.Mode, "mode", f.Mode, "execution mode: parallel or sequential")
	fs.StringVar(&f.Seed, "seed", f.Seed, "seed number or password; empty picks a random seed")
	fs.IntVar(&f.Streams, "streams", f.Streams, "number of RNG streams used for initialisation")
	fs.IntVar(&f.Workers, "workers", f.Workers, "parallel worker limit (0 = GOMAXPROCS)")
	fs.IntVar(&f.Chunk, "chunk", f.Chunk, "cells per parallel task")
	fs.Float64Var(&f.Cell, "cell", f.Cell, "cell size in world units")
	fs.IntVar(&f.TPS, "tps", f.TPS, "generations per second")
	fs.StringVar(&f.Dead, "dead", f.Dead, "dead cell colour (#rrggbb[aa])")
	fs.StringVar(&f.Alive, "alive", f.Alive, "alive cell colour (#rrggbb[aa])")
	fs.StringVar(&f.LogLevel, "log-level", f.LogLevel, "log level: debug, info, warn, error")
}

// Values renders the simulation flags as the key/value form read by
// core.FromMap.
func (f *Flags) Values() map[string]string {
	return map[string]string{
		"size":    strconv.Itoa(f.Size),
		"mode":    f.Mode,
		"seed":    f.Seed,
		"streams": strconv.Itoa(f.Streams),
		"workers": strconv.Itoa(f.Workers),
		"chunk":   strconv.Itoa(f.Chunk),
		"cell":    strconv.FormatFloat(f.Cell, 'g', -1, 64),
		"dead":    f.Dead,
		"alive":   f.Alive,
	}
}

// SimConfig converts the flags into a validated simulation config. An empty
// seed is resolved to a random one here so the value can be logged and
// replayed.
func (f *Flags) SimConfig() (core.Config, error) {
	cfg, err := core.FromMap(f.Values())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewLogger builds the command logger writing to w at the given level.
func NewLogger(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// NextSize steps the grid size for +/- controls, clamped to [min, max].
func NextSize(size, delta, min, max int) int {
	size += delta
	if size < min {
		return min
	}
	if size > max {
		return max
	}
	return size
}

// ToggleMode flips between the two execution modes.
func ToggleMode(m core.ExecutionMode) core.ExecutionMode {
	if m == core.Parallel {
		return core.Sequential
	}
	return core.Parallel
}
