package app

import (
	"context"
	"flag"
	"testing"
	"time"

	"squarelife/internal/core"
)

type countingSim struct {
	steps     int
	extinctAt int
}

func (s *countingSim) Name() string    { return "counting" }
func (s *countingSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (s *countingSim) Reset(int64)     { s.steps = 0 }
func (s *countingSim) Step()           { s.steps++ }
func (s *countingSim) Cells() []uint8  { return []uint8{0} }

type populationSim struct{ countingSim }

func (s *populationSim) Population() core.Population {
	alive := 1
	if s.extinctAt > 0 && s.steps >= s.extinctAt {
		alive = 0
	}
	return core.Population{Tick: s.steps, Alive: alive}
}

func TestRunnerRunsRequestedTicks(t *testing.T) {
	sim := &countingSim{}
	r := NewRunner(sim, nil, 0, 3)
	done, err := r.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if done != 10 || sim.steps != 10 {
		t.Fatalf("done=%d steps=%d, want 10", done, sim.steps)
	}
}

func TestRunnerStopsOnExtinction(t *testing.T) {
	sim := &populationSim{countingSim{extinctAt: 4}}
	r := NewRunner(sim, nil, 0, 0)
	done, err := r.Run(context.Background(), 100)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if done != 4 {
		t.Fatalf("done=%d, want 4", done)
	}
}

func TestRunnerHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := &countingSim{}
	done, err := NewRunner(sim, nil, 0, 0).Run(ctx, 5)
	if err == nil || done != 0 || sim.steps != 0 {
		t.Fatalf("done=%d steps=%d err=%v, want cancellation before any step", done, sim.steps, err)
	}
}

func TestRunnerPacedLoopSleepsBetweenTicks(t *testing.T) {
	sim := &countingSim{}
	r := NewRunner(sim, nil, 1000, 0)
	var slept time.Duration
	r.sleep = func(d time.Duration) {
		slept += d
		time.Sleep(d)
	}

	if _, err := r.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.steps != 3 {
		t.Fatalf("steps=%d, want 3", sim.steps)
	}
	if slept == 0 {
		t.Fatal("paced run should wait between ticks")
	}
}

func TestConfigBindAndOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-ticks", "25", "-set", "w=40", "-set", " max_population = 9 ", "-set", "junk"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Ticks != 25 || cfg.TPS != -1 || cfg.Sim != "squarelife" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	m := cfg.Set.Map()
	if len(m) != 2 || m["w"] != "40" || m["max_population"] != "9" {
		t.Fatalf("unexpected overrides %v", m)
	}
}
