package organism

// AttributeType is the effect a gene has on an Attribute. Exactly one of the
// variant types below is held by any value.
type AttributeType interface {
	attributeType()
}

// Additive deltas applied to the matching Attribute field.
type (
	MaxEnergy        int
	MaxAge           int
	MaxSize          int
	ReproductionRate float64
	MutationRate     float64
	PubertyAge       int
	Metabolism       float64
)

// BodyStates appends body states to the attribute's animation cycle.
type BodyStates []Body

func (MaxEnergy) attributeType()        {}
func (MaxAge) attributeType()           {}
func (MaxSize) attributeType()          {}
func (ReproductionRate) attributeType() {}
func (MutationRate) attributeType()     {}
func (PubertyAge) attributeType()       {}
func (Metabolism) attributeType()       {}
func (BodyStates) attributeType()       {}

// Gene is a named modifier. Value is informational and not read by the fold.
type Gene struct {
	ID    int
	Name  string
	Value int
	Type  AttributeType
}

// Genome is the ordered list of genes an organism is built from.
type Genome struct {
	Genes []Gene
}

// Clone deep-copies the genome, including any body geometry in its genes.
func (g Genome) Clone() Genome {
	if g.Genes == nil {
		return Genome{}
	}
	genes := make([]Gene, len(g.Genes))
	for i, gene := range g.Genes {
		genes[i] = gene
		if states, ok := gene.Type.(BodyStates); ok {
			genes[i].Type = BodyStates(cloneBodies(states))
		}
	}
	return Genome{Genes: genes}
}

// Attribute is the effective profile derived from a genome.
type Attribute struct {
	MaxEnergy        int
	MaxAge           int
	MaxSize          int
	ReproductionRate float64
	MutationRate     float64
	PubertyAge       int
	BodyStates       []Body
	Metabolism       float64
}

// DefaultAttribute returns the baseline every genome is folded onto.
func DefaultAttribute() Attribute {
	return Attribute{
		MaxEnergy:        1000,
		MaxAge:           1000,
		MaxSize:          1000,
		ReproductionRate: 0.1,
		MutationRate:     0.1,
		PubertyAge:       100,
		Metabolism:       0.1,
	}
}

// ApplyGenes folds every gene of g onto a in genome order. It is not
// idempotent: a second call applies every delta again.
func (a *Attribute) ApplyGenes(g Genome) {
	for _, gene := range g.Genes {
		switch v := gene.Type.(type) {
		case MaxEnergy:
			a.MaxEnergy += int(v)
		case MaxAge:
			a.MaxAge += int(v)
		case MaxSize:
			a.MaxSize += int(v)
		case ReproductionRate:
			a.ReproductionRate += float64(v)
		case MutationRate:
			a.MutationRate += float64(v)
		case PubertyAge:
			a.PubertyAge += int(v)
		case Metabolism:
			a.Metabolism += float64(v)
		case BodyStates:
			a.BodyStates = append(a.BodyStates, cloneBodies(v)...)
		}
	}
}

// BodyState returns body state i, or the first state when i is out of range.
// The frame step keeps the index in range; the fallback covers callers that
// set Organism.CurrentBodyState directly. Panics if there are no states.
func (a Attribute) BodyState(i int) Body {
	if i < 0 || i >= len(a.BodyStates) {
		return a.BodyStates[0]
	}
	return a.BodyStates[i]
}

// Mutate replaces every body state with a copy whose squares are each
// displaced by an independent uniform offset in [-1, 1) on both axes.
func (a *Attribute) Mutate(rng Rand) {
	states := make([]Body, 0, len(a.BodyStates))
	for _, body := range a.BodyStates {
		next := Body{}
		for _, sq := range body.squares {
			dx := uniform(rng, -1, 1)
			dy := uniform(rng, -1, 1)
			next.AddSquare(BodySquare{Position: sq.Position.Add(Vec2{X: dx, Y: dy})})
		}
		states = append(states, next)
	}
	a.BodyStates = states
}

// Clone deep-copies the attribute set.
func (a Attribute) Clone() Attribute {
	c := a
	c.BodyStates = cloneBodies(a.BodyStates)
	return c
}

func cloneBodies(bodies []Body) []Body {
	if bodies == nil {
		return nil
	}
	out := make([]Body, len(bodies))
	for i, b := range bodies {
		out[i] = b.Clone()
	}
	return out
}
