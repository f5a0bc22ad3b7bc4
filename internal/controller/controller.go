// Package controller owns the lifecycle of a simulation run: it validates
// configurations, builds and tears down the grid, and drives the selected
// update strategy one generation per tick.
package controller

import (
	"fmt"
	"io"
	"slices"
	"sync"

	params "conway/internal/core"
	"conway/pkg/core"
	"conway/pkg/sims/life"

	"github.com/charmbracelet/log"
)

// State is the engine state. There is no paused state; frontends pause by not
// calling Tick.
type State int

const (
	// Disabled means no grid exists and Tick does nothing.
	Disabled State = iota
	// Active means one strategy runs on every Tick.
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "disabled"
}

// Signal is a start or stop request from a control surface.
type Signal struct {
	Start  bool
	Config core.Config
}

// Listener receives the visual output of every completed generation. Each
// listener gets its own copy of the updates.
type Listener func(generation uint64, updates []core.CellUpdate)

// Frame is a copy of the grid and its colours for renderers.
type Frame struct {
	Size       int
	Generation uint64
	Cells      []bool
	Colors     []core.Color
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller logs to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller runs at most one grid at a time. All methods are safe for
// concurrent use; Stop and Start wait for an in-flight Tick to return.
type Controller struct {
	mu  sync.Mutex
	log *log.Logger

	cfg        core.Config
	state      State
	grid       *core.Grid
	vis        *core.Visuals
	pool       *core.Pool
	strategy   core.Strategy
	generation uint64

	listeners []Listener
}

// New returns a disabled controller.
func New(opts ...Option) *Controller {
	c := &Controller{log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUpdate registers l to be called after every generation.
func (c *Controller) OnUpdate(l Listener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Handle dispatches a control signal.
func (c *Controller) Handle(sig Signal) error {
	if sig.Start {
		return c.Start(sig.Config)
	}
	c.Stop()
	return nil
}

// Start validates cfg and, only if it is acceptable, tears down any current
// run and begins a fresh one. A rejected config leaves the controller as it
// was.
func (c *Controller) Start(cfg core.Config) error {
	if err := cfg.Validate(); err != nil {
		c.log.Warn("start rejected", "err", err)
		return err
	}
	factory, ok := core.Strategies()[cfg.Mode]
	if !ok {
		err := fmt.Errorf("%w: no strategy registered for %v (have %v)", core.ErrConfig, cfg.Mode, core.Modes())
		c.log.Warn("start rejected", "err", err)
		return err
	}
	pool, err := core.NewPool(cfg.Seed, cfg.Streams)
	if err != nil {
		c.log.Warn("start rejected", "err", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Active {
		c.log.Info("restarting", "size", cfg.GridSize, "mode", cfg.Mode)
	}
	c.stopLocked()

	grid, vis := core.NewGrid(), core.NewVisuals()
	if err := life.Initialize(grid, vis, cfg.GridSize, pool, cfg.Palette(), cfg.Mode == core.Parallel); err != nil {
		return fmt.Errorf("initialize grid: %w", err)
	}

	c.cfg = cfg
	c.grid = grid
	c.vis = vis
	c.pool = pool
	c.strategy = factory(cfg.StrategyOptions())
	c.generation = 0
	c.state = Active

	c.log.Info("simulation started",
		"size", cfg.GridSize,
		"mode", cfg.Mode,
		"seed", cfg.Seed,
		"streams", cfg.Streams,
		"population", grid.Population(),
	)
	return nil
}

// Stop deactivates the strategy and releases the grid. Stopping a stopped
// controller does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Close tears the controller down.
func (c *Controller) Close() error {
	c.Stop()
	return nil
}

func (c *Controller) stopLocked() {
	if c.state != Active {
		return
	}
	c.log.Info("simulation stopped", "generation", c.generation)
	c.state = Disabled
	c.strategy = nil
	c.grid.Release()
	c.vis.Release()
	c.grid = nil
	c.vis = nil
	c.pool = nil
}

// Tick advances the active run by one generation and returns the colour
// updates of cells that changed. It does nothing while disabled. A failed
// step leaves the grid as it was before the tick.
func (c *Controller) Tick() ([]core.CellUpdate, error) {
	c.mu.Lock()
	if c.state != Active {
		c.mu.Unlock()
		return nil, nil
	}
	updates, err := c.strategy.Step(c.grid, c.vis, c.cfg.Palette())
	if err != nil {
		gen := c.generation + 1
		c.mu.Unlock()
		c.log.Error("tick aborted", "generation", gen, "err", err)
		return nil, fmt.Errorf("generation %d: %w", gen, err)
	}
	c.generation++
	gen := c.generation
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	c.log.Debug("tick", "generation", gen, "changed", len(updates))
	for _, l := range listeners {
		l(gen, slices.Clone(updates))
	}
	return updates, nil
}

// State reports whether a run is active.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns the configuration of the current or last run.
func (c *Controller) Config() core.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Generation returns the number of completed generations in the current run.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Population counts alive cells, zero when disabled.
func (c *Controller) Population() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid == nil {
		return 0
	}
	return c.grid.Population()
}

// Frame copies the current grid. The zero Frame is returned when disabled.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Active {
		return Frame{}
	}
	colors := make([]core.Color, len(c.vis.Colors()))
	copy(colors, c.vis.Colors())
	return Frame{
		Size:       c.grid.Size(),
		Generation: c.generation,
		Cells:      c.grid.Snapshot(),
		Colors:     colors,
	}
}

// Parameters describes the run for status panels.
func (c *Controller) Parameters() params.ParameterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	population := 0
	if c.grid != nil {
		population = c.grid.Population()
	}
	cfg := c.cfg
	workers := cfg.Workers
	if w, ok := c.strategy.(interface{ Workers() int }); ok {
		workers = w.Workers()
	}
	return params.ParameterSnapshot{Groups: []params.ParameterGroup{
		{
			Name: "Simulation",
			Params: []params.Parameter{
				params.StringParam("state", "State", c.state.String()),
				params.StringParam("mode", "Mode", cfg.Mode.String()),
				params.IntParam("size", "Grid size", cfg.GridSize),
				params.UintParam("generation", "Generation", c.generation),
				params.IntParam("population", "Population", population),
			},
		},
		{
			Name: "Seeding",
			Params: []params.Parameter{
				params.UintParam("seed", "Seed", cfg.Seed),
				params.IntParam("streams", "RNG streams", cfg.Streams),
			},
		},
		{
			Name: "Execution",
			Params: []params.Parameter{
				params.IntParam("workers", "Workers", workers),
				params.IntParam("chunk", "Chunk size", cfg.ChunkSize),
			},
		},
		{
			Name: "Display",
			Params: []params.Parameter{
				params.FloatParam("cell", "Cell size", float64(cfg.CellSize)),
				params.StringParam("dead", "Dead colour", cfg.DeadColor.Hex()),
				params.StringParam("alive", "Alive colour", cfg.AliveColor.Hex()),
			},
		},
	}}
}
