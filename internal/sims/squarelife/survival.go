package squarelife

import (
	"squarelife/internal/data"
	"squarelife/internal/organism"
)

// PopulationResult captures telemetry from a deterministic population run.
type PopulationResult struct {
	// PeakPopulation is the largest population seen, including the
	// initial state.
	PeakPopulation int
	// PeakTick is the first tick at which PeakPopulation was reached.
	PeakTick int
	// FinalPopulation is the population after the last simulated tick.
	FinalPopulation int
	// ExtinctionTick is the tick at which the population reached zero, or
	// -1 if it survived.
	ExtinctionTick int
	// StepsSimulated reports how many ticks were executed.
	StepsSimulated int

	Births  int
	Deaths  int
	Dropped int
}

// Survived reports whether any organism was alive at the end of the run.
func (r PopulationResult) Survived() bool { return r.ExtinctionTick < 0 }

// SurvivalRun resets a world built from cfg with its configured seed,
// advances it for up to steps ticks and reports population telemetry. The
// run stops early on extinction.
func SurvivalRun(cfg Config, steps int) PopulationResult {
	world := NewWithConfig(cfg)
	world.Reset(0)

	result := PopulationResult{ExtinctionTick: -1}
	result.PeakPopulation = len(world.organisms)

	for step := 1; step <= steps; step++ {
		world.Step()
		result.StepsSimulated = step
		alive := len(world.organisms)
		if alive > result.PeakPopulation {
			result.PeakPopulation = alive
			result.PeakTick = step
		}
		if alive == 0 {
			result.ExtinctionTick = step
			break
		}
	}

	pop := world.Population()
	result.FinalPopulation = pop.Alive
	result.Births = pop.Births
	result.Deaths = pop.Deaths
	result.Dropped = world.Dropped()
	return result
}

// AugmentGenomes returns copies of genomes with extra genes appended to each.
func AugmentGenomes(genomes []data.NamedGenome, extra ...organism.Gene) []data.NamedGenome {
	out := make([]data.NamedGenome, len(genomes))
	for i, ng := range genomes {
		g := ng.Genome.Clone()
		g.Genes = append(g.Genes, organism.Genome{Genes: extra}.Clone().Genes...)
		out[i] = data.NamedGenome{Name: ng.Name, Genome: g}
	}
	return out
}
