// Package organism implements a single square-bodied organism: attribute
// derivation from its genome, shape-driven movement, geometry mutation and
// energy-gated reproduction. It never looks at other organisms; the owner of
// the population inserts offspring and removes the dead.
package organism

import (
	"errors"
	"image"
)

// MovementScale converts summed internal displacement into whole-organism
// translation. The sign makes the body push off in the opposite direction.
const MovementScale = -2

// InitialEnergy is the energy a newly constructed organism starts with.
const InitialEnergy = 1000

// ErrNoBodyStates is returned when a genome yields no body states.
var ErrNoBodyStates = errors.New("organism: genome defines no body states")

// Rand is the random source used for every draw. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// State is the life status reported after each frame.
type State uint8

const (
	Alive State = iota
	Dead
)

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// Organism is one simulated creature. It owns its genome, attributes and
// current body; none of them are shared with offspring.
type Organism struct {
	ID       int
	Genome   Genome
	Energy   int
	Age      int
	Location image.Point
	// Body is the current geometry snapshot, separate from the body states
	// in Attributes.
	Body             Body
	CurrentBodyState int
	Attributes       Attribute
}

// New builds an organism from its genome. The genome must define at least
// one body state.
func New(id int, genome Genome) (*Organism, error) {
	o := &Organism{
		ID:         id,
		Genome:     genome,
		Energy:     InitialEnergy,
		Attributes: DefaultAttribute(),
	}
	o.ApplyGeneEffects()
	if len(o.Attributes.BodyStates) == 0 {
		return nil, ErrNoBodyStates
	}
	o.Body = o.Attributes.BodyStates[0].Clone()
	return o, nil
}

// ApplyGeneEffects folds the genome onto the organism's attributes. New
// calls it exactly once; calling it again double-applies every gene.
func (o *Organism) ApplyGeneEffects() {
	o.Attributes.ApplyGenes(o.Genome)
}

// CalculateMovement sums the displacement between corresponding squares of
// two bodies, truncating each coordinate toward zero, and scales the sum by
// MovementScale. Extra squares in the longer body are ignored.
func CalculateMovement(current, next Body) image.Point {
	var m image.Point
	n := min(len(current.squares), len(next.squares))
	for i := 0; i < n; i++ {
		d := next.squares[i].Position.Sub(current.squares[i].Position)
		m = m.Add(image.Pt(int(d.X), int(d.Y)))
	}
	return m.Mul(MovementScale)
}

// Mutate perturbs the geometry of every body state.
func (o *Organism) Mutate(rng Rand) {
	o.Attributes.Mutate(rng)
}

// Reproduce builds a candidate offspring. It carries the parent's id, a
// copy of its genome and current body, half its energy, and attributes that
// are cloned and then mutated on their own.
func (o *Organism) Reproduce(rng Rand) *Organism {
	offset := image.Pt(rng.IntN(2)-1, rng.IntN(2)-1)
	child := &Organism{
		ID:         o.ID,
		Genome:     o.Genome.Clone(),
		Energy:     o.Energy / 2,
		Location:   o.Location.Add(offset),
		Body:       o.Body.Clone(),
		Attributes: o.Attributes.Clone(),
	}
	child.Mutate(rng)
	return child
}

// NextFrame advances the organism by one tick. It returns Dead once energy
// or age runs out; a Dead organism must not be advanced again. The offspring
// is non-nil only when the reproduction roll passes and every body state of
// the candidate connects to the parent's current body.
func (o *Organism) NextFrame(rng Rand) (State, *Organism) {
	next := o.Attributes.BodyState(o.CurrentBodyState)
	o.Location = o.Location.Add(CalculateMovement(o.Body, next))

	if o.CurrentBodyState < len(o.Attributes.BodyStates)-1 {
		o.CurrentBodyState++
	} else {
		o.CurrentBodyState = 0
	}

	o.Energy -= int(o.Attributes.Metabolism * float64(o.Body.Len()))
	if o.Energy <= 0 {
		return Dead, nil
	}

	o.Age++
	if o.Age >= o.Attributes.MaxAge {
		return Dead, nil
	}

	if rng.Float64() < o.Attributes.MutationRate {
		o.Mutate(rng)
	}
	willReproduce := rng.Float64() < o.Attributes.ReproductionRate

	// The candidate is built on every living frame, rolled or not.
	child := o.Reproduce(rng)
	if !willReproduce {
		return Alive, nil
	}
	for _, body := range child.Attributes.BodyStates {
		if !o.Body.CheckBlueprintValidity(body.squares) {
			return Alive, nil
		}
	}
	o.Energy -= child.Energy
	return Alive, child
}
