// Package squarelife hosts a population of square-bodied organisms on a
// toroidal display grid. It is the collaborator that owns the population:
// it advances every organism once per tick, then removes the dead and adds
// the newborn.
package squarelife

import (
	"image"

	"go.uber.org/zap"

	"squarelife/internal/core"
	"squarelife/internal/data"
	"squarelife/internal/organism"
	pcore "squarelife/pkg/core"
)

var (
	_ core.Sim                = (*World)(nil)
	_ core.PopulationReporter = (*World)(nil)
	_ core.ParameterProvider  = (*World)(nil)
	_ core.IntParameterSetter = (*World)(nil)
)

// World stores the population and its display raster.
type World struct {
	cfg Config

	w, h int

	organisms []*organism.Organism
	states    []organism.State
	born      []*organism.Organism
	display   *core.ByteGrid

	tick    int
	births  int
	deaths  int
	dropped int
	nextID  int

	rng *pcore.RNG
	log *zap.Logger
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options. The
// population is empty until Reset is called.
func NewWithConfig(cfg Config) *World {
	return &World{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		rng:     pcore.NewRNG(cfg.Seed),
		log:     zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger.
func (w *World) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	w.log = log
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "squarelife" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the occupancy raster: the number of body squares covering
// each cell, saturating at 255.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Organisms exposes the live population. Callers must not retain it across
// Step.
func (w *World) Organisms() []*organism.Organism { return w.organisms }

// Population summarises the current tick.
func (w *World) Population() core.Population {
	lineages := make(map[int]struct{}, len(w.organisms))
	for _, o := range w.organisms {
		lineages[o.ID] = struct{}{}
	}
	return core.Population{
		Tick:     w.tick,
		Alive:    len(w.organisms),
		Births:   w.births,
		Deaths:   w.deaths,
		Lineages: len(lineages),
	}
}

// Dropped reports how many viable offspring were discarded by the
// population cap.
func (w *World) Dropped() int { return w.dropped }

// Reset seeds a fresh population. A zero seed falls back to the configured
// seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)

	w.organisms = w.organisms[:0]
	w.tick, w.births, w.deaths, w.dropped, w.nextID = 0, 0, 0, 0, 0

	if len(w.cfg.Genomes) > 0 {
		for i := 0; i < w.cfg.Params.InitialOrganisms; i++ {
			ng := w.cfg.Genomes[i%len(w.cfg.Genomes)]
			w.spawn(ng)
		}
	}
	w.log.Debug("world reset",
		zap.Int64("seed", effective),
		zap.Int("organisms", len(w.organisms)),
		zap.Int("genomes", len(w.cfg.Genomes)),
	)
	w.rebuildDisplay()
}

func (w *World) spawn(ng data.NamedGenome) {
	o, err := organism.New(w.nextID, ng.Genome.Clone())
	if err != nil {
		w.log.Warn("skipping genome", zap.String("genome", ng.Name), zap.Error(err))
		return
	}
	w.nextID++
	o.Location = image.Pt(w.rng.IntN(w.w), w.rng.IntN(w.h))
	w.organisms = append(w.organisms, o)
}

// Step advances every organism by one frame. Deaths and births are applied
// only after the whole population has moved.
func (w *World) Step() {
	w.tick++
	if len(w.organisms) == 0 {
		return
	}

	w.states = w.states[:0]
	w.born = w.born[:0]
	for _, o := range w.organisms {
		state, child := o.NextFrame(w.rng)
		w.states = append(w.states, state)
		if child != nil {
			w.born = append(w.born, child)
		}
	}

	survivors := w.organisms[:0]
	deaths := 0
	for i, o := range w.organisms {
		if w.states[i] == organism.Dead {
			deaths++
			continue
		}
		survivors = append(survivors, o)
	}
	for i := len(survivors); i < len(w.organisms); i++ {
		w.organisms[i] = nil
	}

	born := w.born
	if limit := w.cfg.Params.MaxPopulation; limit > 0 {
		room := max(limit-len(survivors), 0)
		if len(born) > room {
			w.dropped += len(born) - room
			born = born[:room]
		}
	}
	w.organisms = append(survivors, born...)
	w.births += len(born)
	w.deaths += deaths

	if deaths > 0 || len(born) > 0 {
		w.log.Debug("population changed",
			zap.Int("tick", w.tick),
			zap.Int("born", len(born)),
			zap.Int("died", deaths),
			zap.Int("alive", len(w.organisms)),
		)
	}
	if len(w.organisms) == 0 {
		w.log.Info("population extinct", zap.Int("tick", w.tick), zap.Int("deaths", w.deaths))
	}
	w.rebuildDisplay()
}

func (w *World) rebuildDisplay() {
	w.display.Clear()
	for _, o := range w.organisms {
		for _, sq := range o.Body.Squares() {
			w.display.Inc(o.Location.X+int(sq.Position.X), o.Location.Y+int(sq.Position.Y))
		}
	}
}

func init() {
	core.Register("squarelife", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
