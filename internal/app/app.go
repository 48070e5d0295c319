package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"squarelife/internal/core"
)

// Runner drives a core simulation headlessly.
type Runner struct {
	sim   core.Sim
	log   *zap.Logger
	pacer *core.FixedStep

	reportEvery int
	sleep       func(time.Duration)
}

// NewRunner constructs a Runner. A tps of zero runs unpaced; a reportEvery
// of zero only reports at the end of the run.
func NewRunner(sim core.Sim, log *zap.Logger, tps, reportEvery int) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		sim:         sim,
		log:         log,
		reportEvery: reportEvery,
		sleep:       time.Sleep,
	}
	if tps > 0 {
		r.pacer = core.NewFixedStep(tps)
	}
	return r
}

// Reset reinitializes the simulation state with the provided seed. Sims
// treat zero as their configured seed.
func (r *Runner) Reset(seed int64) {
	r.sim.Reset(seed)
	r.log.Info("simulation reset", zap.String("sim", r.sim.Name()), zap.Int64("seed", seed))
	if p, ok := r.sim.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			for _, param := range g.Params {
				r.log.Debug("parameter", zap.String("group", g.Name), zap.String("key", param.Key), zap.String("value", param.Value))
			}
		}
	}
}

// Run advances the simulation up to ticks times. It stops early when the
// context is done or a population-tracking sim goes extinct, and returns the
// number of ticks executed.
func (r *Runner) Run(ctx context.Context, ticks int) (int, error) {
	done := 0
	for done < ticks {
		if err := ctx.Err(); err != nil {
			r.report(done)
			return done, err
		}
		if r.pacer != nil && !r.pacer.ShouldStep() {
			r.sleep(r.pacer.Interval() / 4)
			continue
		}

		r.sim.Step()
		done++

		if r.reportEvery > 0 && done%r.reportEvery == 0 {
			r.report(done)
		}
		if rep, ok := r.sim.(core.PopulationReporter); ok && rep.Population().Alive == 0 {
			r.log.Warn("stopping early, population extinct", zap.Int("tick", done))
			break
		}
	}
	if r.reportEvery == 0 || done%r.reportEvery != 0 {
		r.report(done)
	}
	return done, nil
}

func (r *Runner) report(done int) {
	fields := []zap.Field{zap.String("sim", r.sim.Name()), zap.Int("ticks", done)}
	if rep, ok := r.sim.(core.PopulationReporter); ok {
		pop := rep.Population()
		fields = append(fields,
			zap.Int("alive", pop.Alive),
			zap.Int("births", pop.Births),
			zap.Int("deaths", pop.Deaths),
			zap.Int("lineages", pop.Lineages),
		)
	}
	r.log.Info("progress", fields...)
}
