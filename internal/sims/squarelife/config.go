package squarelife

import (
	"strconv"

	"squarelife/internal/data"
)

// Params holds population tunables.
type Params struct {
	InitialOrganisms int
	// MaxPopulation caps the population; offspring beyond it are dropped.
	// Zero disables the cap.
	MaxPopulation int
}

// Config controls the world dimensions, seed and seed genomes.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params

	// Genomes are assigned round-robin to the initial organisms.
	Genomes []data.NamedGenome
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  128,
		Height: 128,
		Seed:   1337,
		Params: Params{
			InitialOrganisms: 32,
			MaxPopulation:    4096,
		},
		Genomes: data.DefaultGenomes(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["initial_organisms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.InitialOrganisms = parsed
		}
	}
	if v, ok := cfg["max_population"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxPopulation = parsed
		}
	}
	return c
}
