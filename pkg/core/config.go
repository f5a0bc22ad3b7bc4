package core

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DefaultStreams is fixed rather than derived from the CPU count so that a
	// seed reproduces the same grid on every machine.
	DefaultStreams = 16
	// DefaultChunkSize is the number of cells handed to one parallel task.
	DefaultChunkSize = 128
	// MaxGridSize bounds the side length so side*side fits an int on 32-bit
	// platforms.
	MaxGridSize = 1 << 15
)

// Config describes one simulation run. The controller copies it on start.
type Config struct {
	Mode       ExecutionMode
	GridSize   int
	CellSize   float32
	DeadColor  Color
	AliveColor Color

	Seed      uint64
	Streams   int
	Workers   int
	ChunkSize int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Mode:       Parallel,
		GridSize:   64,
		CellSize:   0.1,
		DeadColor:  Color{R: 0, G: 0, B: 0, A: 1},
		AliveColor: Color{R: 0, G: 1, B: 0, A: 1},
		Seed:       42,
		Streams:    DefaultStreams,
		ChunkSize:  DefaultChunkSize,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Missing keys keep their defaults; a value that does not parse is an
// ErrConfig. The result is not validated.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	for key, v := range cfg {
		var err error
		switch key {
		case "size":
			c.GridSize, err = strconv.Atoi(v)
		case "mode":
			c.Mode, err = ParseExecutionMode(v)
		case "cell":
			var f float64
			f, err = strconv.ParseFloat(v, 32)
			c.CellSize = float32(f)
		case "seed":
			c.Seed = ParseSeed(v)
		case "streams":
			c.Streams, err = strconv.Atoi(v)
		case "workers":
			c.Workers, err = strconv.Atoi(v)
		case "chunk":
			c.ChunkSize, err = strconv.Atoi(v)
		case "dead":
			c.DeadColor, err = ParseColor(v)
		case "alive":
			c.AliveColor, err = ParseColor(v)
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			if errors.Is(err, ErrConfig) {
				return c, err
			}
			return c, fmt.Errorf("%w: %s=%q: %v", ErrConfig, key, v, err)
		}
	}
	return c, nil
}

// Validate reports the first invalid field as an ErrConfig.
func (c Config) Validate() error {
	if err := checkSide(c.GridSize); err != nil {
		return err
	}
	if c.Streams <= 0 {
		return fmt.Errorf("%w: rng stream count %d must be positive", ErrConfig, c.Streams)
	}
	if c.Mode != Parallel && c.Mode != Sequential {
		return fmt.Errorf("%w: unknown execution mode %v", ErrConfig, c.Mode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrConfig, c.Workers)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk size %d must not be negative", ErrConfig, c.ChunkSize)
	}
	return nil
}

// Palette returns the dead/alive colours of the run.
func (c Config) Palette() Palette {
	return Palette{Dead: c.DeadColor, Alive: c.AliveColor}
}

// StrategyOptions extracts the tuning knobs handed to strategy factories.
func (c Config) StrategyOptions() StrategyOptions {
	return StrategyOptions{Workers: c.Workers, ChunkSize: c.ChunkSize}
}

// Position returns the centre of cell pos in world units, with the grid
// centred on the origin. The bundled frontends draw in cell units; this is
// the layout for renderers that place cells in a world space.
func (c Config) Position(pos Coordinate) (x, y float32) {
	offset := float32(c.GridSize-1) * c.CellSize / 2
	return float32(pos.X)*c.CellSize - offset, float32(pos.Y)*c.CellSize - offset
}
