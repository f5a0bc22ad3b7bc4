package app

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"conway/pkg/core"
)

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	f := NewFlags()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f
}

func TestFlagsSimConfig(t *testing.T) {
	f := parse(t, "-size", "20", "-mode", "sequential", "-seed", "7", "-streams", "3", "-alive", "#ff0000")
	cfg, err := f.SimConfig()
	if err != nil {
		t.Fatalf("SimConfig: %v", err)
	}
	if cfg.GridSize != 20 || cfg.Mode != core.Sequential || cfg.Seed != 7 || cfg.Streams != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.AliveColor != (core.Color{R: 1, A: 1}) {
		t.Fatalf("alive colour %+v", cfg.AliveColor)
	}
}

func TestFlagsPasswordSeed(t *testing.T) {
	cfg, err := parse(t, "-seed", "hello").SimConfig()
	if err != nil {
		t.Fatalf("SimConfig: %v", err)
	}
	if cfg.Seed != core.SeedFromPassword("hello") {
		t.Fatalf("seed %d", cfg.Seed)
	}
}

func TestFlagsRejectInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-size", "0"},
		{"-mode", "gpu"},
		{"-streams", "0"},
		{"-dead", "black"},
		{"-size", "40000"},
	} {
		if _, err := parse(t, args...).SimConfig(); !errors.Is(err, core.ErrConfig) {
			t.Errorf("%v: got %v, expected ErrConfig", args, err)
		}
	}
}

func TestFlagsValuesRoundTrip(t *testing.T) {
	f := parse(t, "-size", "9", "-cell", "0.25", "-chunk", "7", "-workers", "3", "-seed", "11")
	cfg, err := core.FromMap(f.Values())
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.GridSize != 9 || cfg.CellSize != 0.25 || cfg.ChunkSize != 7 || cfg.Workers != 3 || cfg.Seed != 11 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "gol")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "size", 4)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "size=4") {
		t.Fatalf("unexpected log output %q", out)
	}
	if _, err := NewLogger(&buf, "loud", ""); err == nil {
		t.Fatalf("accepted an unknown level")
	}
}

func TestNextSizeAndToggleMode(t *testing.T) {
	if got := NextSize(10, -20, 1, 512); got != 1 {
		t.Errorf("NextSize clamp low = %d", got)
	}
	if got := NextSize(510, 8, 1, 512); got != 512 {
		t.Errorf("NextSize clamp high = %d", got)
	}
	if ToggleMode(core.Parallel) != core.Sequential || ToggleMode(core.Sequential) != core.Parallel {
		t.Errorf("ToggleMode did not flip")
	}
}
