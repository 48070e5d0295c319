package squarelife

import "squarelife/internal/core"

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				core.IntParam("initial_organisms", "Initial organisms", params.InitialOrganisms),
				core.IntParam("max_population", "Max population", params.MaxPopulation),
				core.IntParam("genomes", "Seed genomes", len(w.cfg.Genomes)),
			},
		},
	}}
}

// SetIntParameter updates a population tunable. Initial organisms take
// effect on the next Reset; the cap applies from the next Step.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		return false
	}
	switch key {
	case "initial_organisms":
		w.cfg.Params.InitialOrganisms = value
	case "max_population":
		w.cfg.Params.MaxPopulation = value
	default:
		return false
	}
	return true
}
