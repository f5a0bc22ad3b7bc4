// Package sweep runs the parallel and sequential strategies side by side and
// reports whether they diverge.
package sweep

import (
	"fmt"
	"time"

	"conway/internal/controller"
	"conway/pkg/core"
)

// Scenario is one grid size and seed to run for a number of generations.
type Scenario struct {
	Size    int
	Seed    uint64
	Steps   int
	Streams int
	Workers int
	Chunk   int
}

func (s Scenario) String() string {
	return fmt.Sprintf("size=%d seed=%d steps=%d", s.Size, s.Seed, s.Steps)
}

func (s Scenario) config(mode core.ExecutionMode) core.Config {
	cfg := core.DefaultConfig()
	cfg.Mode = mode
	cfg.GridSize = s.Size
	cfg.Seed = s.Seed
	if s.Streams > 0 {
		cfg.Streams = s.Streams
	}
	cfg.Workers = s.Workers
	if s.Chunk > 0 {
		cfg.ChunkSize = s.Chunk
	}
	return cfg
}

// Result summarises one scenario.
type Result struct {
	Scenario Scenario

	Sequential time.Duration
	Parallel   time.Duration

	InitialPopulation int
	FinalPopulation   int
	Changes           int

	// DivergedAt is the first generation where the strategies disagree, or 0.
	DivergedAt int
}

// Speedup is sequential time over parallel time.
func (r Result) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// Plan expands every size/seed combination into scenarios.
func Plan(sizes []int, seeds []uint64, steps int) []Scenario {
	plan := make([]Scenario, 0, len(sizes)*len(seeds))
	for _, size := range sizes {
		for _, seed := range seeds {
			plan = append(plan, Scenario{Size: size, Seed: seed, Steps: steps})
		}
	}
	return plan
}

// Run executes the scenario on two controllers, comparing their frames after
// every generation.
func Run(s Scenario) (Result, error) {
	seq, par := controller.New(), controller.New()
	defer seq.Close()
	defer par.Close()

	if err := seq.Start(s.config(core.Sequential)); err != nil {
		return Result{}, err
	}
	if err := par.Start(s.config(core.Parallel)); err != nil {
		return Result{}, err
	}
	res := Result{Scenario: s, InitialPopulation: seq.Population()}
	if !sameFrame(seq.Frame(), par.Frame()) {
		return res, fmt.Errorf("%v: initial grids differ", s)
	}

	for step := 1; step <= s.Steps; step++ {
		t0 := time.Now()
		updates, err := seq.Tick()
		if err != nil {
			return res, err
		}
		res.Sequential += time.Since(t0)

		t0 = time.Now()
		if _, err := par.Tick(); err != nil {
			return res, err
		}
		res.Parallel += time.Since(t0)

		res.Changes += len(updates)
		if res.DivergedAt == 0 && !sameFrame(seq.Frame(), par.Frame()) {
			res.DivergedAt = step
		}
	}
	res.FinalPopulation = seq.Population()
	return res, nil
}

func sameFrame(a, b controller.Frame) bool {
	if a.Size != b.Size || len(a.Cells) != len(b.Cells) {
		return false
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] || a.Colors[i] != b.Colors[i] {
			return false
		}
	}
	return true
}
