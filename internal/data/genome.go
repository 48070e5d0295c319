package data

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"squarelife/internal/organism"
)

// Gene kinds accepted in genome files.
const (
	KindMaxEnergy        = "max_energy"
	KindMaxAge           = "max_age"
	KindMaxSize          = "max_size"
	KindReproductionRate = "reproduction_rate"
	KindMutationRate     = "mutation_rate"
	KindPubertyAge       = "puberty_age"
	KindMetabolism       = "metabolism"
	KindBodyStates       = "body_states"
)

// GeneEntry is one gene as written in a genome file. Body states are lists
// of [x, y] pairs.
type GeneEntry struct {
	ID         int           `yaml:"id"`
	Name       string        `yaml:"name"`
	Value      int           `yaml:"value"`
	Kind       string        `yaml:"kind"`
	Delta      float64       `yaml:"delta"`
	BodyStates [][][]float64 `yaml:"body_states"`
}

// GenomeEntry is a named genome as written in a genome file.
type GenomeEntry struct {
	Name  string      `yaml:"name"`
	Genes []GeneEntry `yaml:"genes"`
}

// NamedGenome pairs a decoded genome with its library name.
type NamedGenome struct {
	Name   string
	Genome organism.Genome
}

// LoadGenomes reads a YAML genome library.
func LoadGenomes(path string) ([]NamedGenome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genome file %s: %w", path, err)
	}
	genomes, err := ParseGenomes(raw)
	if err != nil {
		return nil, fmt.Errorf("parse genome file %s: %w", path, err)
	}
	return genomes, nil
}

// ParseGenomes decodes a YAML genome library from raw bytes.
func ParseGenomes(raw []byte) ([]NamedGenome, error) {
	var entries []GenomeEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	out := make([]NamedGenome, 0, len(entries))
	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("genome-%d", i)
		}
		g, err := e.toGenome()
		if err != nil {
			return nil, fmt.Errorf("genome %q: %w", name, err)
		}
		out = append(out, NamedGenome{Name: name, Genome: g})
	}
	return out, nil
}

func (e GenomeEntry) toGenome() (organism.Genome, error) {
	genes := make([]organism.Gene, 0, len(e.Genes))
	for _, ge := range e.Genes {
		t, err := ge.attributeType()
		if err != nil {
			return organism.Genome{}, fmt.Errorf("gene %d (%s): %w", ge.ID, ge.Name, err)
		}
		genes = append(genes, organism.Gene{ID: ge.ID, Name: ge.Name, Value: ge.Value, Type: t})
	}
	return organism.Genome{Genes: genes}, nil
}

func (g GeneEntry) attributeType() (organism.AttributeType, error) {
	switch g.Kind {
	case KindMaxEnergy, KindMaxAge, KindMaxSize, KindPubertyAge:
		if g.Delta != math.Trunc(g.Delta) {
			return nil, fmt.Errorf("%s delta must be a whole number, got %v", g.Kind, g.Delta)
		}
		d := int(g.Delta)
		switch g.Kind {
		case KindMaxEnergy:
			return organism.MaxEnergy(d), nil
		case KindMaxAge:
			return organism.MaxAge(d), nil
		case KindMaxSize:
			return organism.MaxSize(d), nil
		default:
			return organism.PubertyAge(d), nil
		}
	case KindReproductionRate:
		return organism.ReproductionRate(g.Delta), nil
	case KindMutationRate:
		return organism.MutationRate(g.Delta), nil
	case KindMetabolism:
		return organism.Metabolism(g.Delta), nil
	case KindBodyStates:
		if len(g.BodyStates) == 0 {
			return nil, fmt.Errorf("body_states gene lists no bodies")
		}
		states := make(organism.BodyStates, 0, len(g.BodyStates))
		for i, squares := range g.BodyStates {
			var body organism.Body
			for j, pos := range squares {
				if len(pos) != 2 {
					return nil, fmt.Errorf("body %d square %d: want [x, y], got %v", i, j, pos)
				}
				body.AddSquare(organism.Square(pos[0], pos[1]))
			}
			states = append(states, body)
		}
		return states, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", g.Kind)
	}
}

// DefaultGenomes returns the built-in genome library.
func DefaultGenomes() []NamedGenome {
	return []NamedGenome{
		{
			Name: "crawler",
			Genome: organism.Genome{Genes: []organism.Gene{
				{ID: 1, Name: "gait", Type: organism.BodyStates{
					organism.NewBody(organism.Square(0, 0), organism.Square(1, 0)),
					organism.NewBody(organism.Square(0, 0), organism.Square(1, 1)),
				}},
				{ID: 2, Name: "frugal", Value: -1, Type: organism.Metabolism(-0.05)},
			}},
		},
		{
			Name: "inchworm",
			Genome: organism.Genome{Genes: []organism.Gene{
				{ID: 1, Name: "arch", Type: organism.BodyStates{
					organism.NewBody(organism.Square(0, 0), organism.Square(1, 0), organism.Square(2, 0)),
					organism.NewBody(organism.Square(0, 0), organism.Square(1, 1), organism.Square(2, 0)),
					organism.NewBody(organism.Square(1, 0), organism.Square(1, 1), organism.Square(2, 0)),
				}},
				{ID: 2, Name: "hardy", Value: 500, Type: organism.MaxAge(500)},
				{ID: 3, Name: "fertile", Type: organism.ReproductionRate(0.05)},
				{ID: 4, Name: "hungry", Value: 1, Type: organism.Metabolism(1.9)},
			}},
		},
	}
}
