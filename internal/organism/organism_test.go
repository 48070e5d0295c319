package organism

import (
	"image"
	"math/rand/v2"
	"testing"
)

// scriptedRand replays queued draws. Once a queue is empty Float64 returns
// 0.5 (no perturbation) and IntN returns n-1 (no jitter).
type scriptedRand struct {
	floats []float64
	ints   []int
	calls  int
}

func (r *scriptedRand) Float64() float64 {
	r.calls++
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	r.calls++
	if len(r.ints) == 0 {
		return n - 1
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// forbiddenRand fails the test on any draw.
type forbiddenRand struct{ t *testing.T }

func (r forbiddenRand) Float64() float64 {
	r.t.Helper()
	r.t.Fatal("unexpected Float64 draw")
	return 0
}

func (r forbiddenRand) IntN(int) int {
	r.t.Helper()
	r.t.Fatal("unexpected IntN draw")
	return 0
}

var _ Rand = (*rand.Rand)(nil)

func newOrganism(t *testing.T, states ...Body) *Organism {
	t.Helper()
	o, err := New(7, Genome{Genes: []Gene{{ID: 1, Name: "shape", Type: BodyStates(states)}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func TestNewStartsFromFirstBodyState(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0), Square(1, 0)), NewBody(Square(0, 0), Square(1, 1)))

	if !o.Body.Equal(o.Attributes.BodyStates[0]) {
		t.Fatalf("initial body = %+v, want first body state", o.Body.Squares())
	}
	if o.Energy != InitialEnergy || o.Age != 0 || o.CurrentBodyState != 0 || o.Location != (image.Point{}) {
		t.Fatalf("unexpected initial state: %+v", o)
	}
}

func TestCalculateMovement(t *testing.T) {
	cases := []struct {
		name          string
		current, next Body
		want          image.Point
	}{
		{"unit step", NewBody(Square(0, 0)), NewBody(Square(1, 0)), image.Pt(-2, 0)},
		{"truncates toward zero", NewBody(Square(0, 0)), NewBody(Square(0.9, -1.7)), image.Pt(0, 2)},
		{"sums pairs", NewBody(Square(0, 0), Square(1, 0)), NewBody(Square(1, 1), Square(2, 0)), image.Pt(-4, -2)},
		{"truncates length", NewBody(Square(0, 0)), NewBody(Square(0, 1), Square(5, 5)), image.Pt(0, -2)},
		{"still", NewBody(Square(3, 3)), NewBody(Square(3, 3)), image.Pt(0, 0)},
	}
	for _, tc := range cases {
		if got := CalculateMovement(tc.current, tc.next); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNextFrameCyclesBodyStatesAndMoves(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)), NewBody(Square(1, 0)), NewBody(Square(0, 1)))
	o.Attributes.MutationRate = 0
	o.Attributes.ReproductionRate = 0

	wantIdx := []int{1, 2, 0, 1}
	wantLoc := []image.Point{{0, 0}, {-2, 0}, {-2, -2}, {-2, -2}}
	for i := range wantIdx {
		state, child := o.NextFrame(&scriptedRand{})
		if state != Alive || child != nil {
			t.Fatalf("frame %d: got %v/%v, want alive without offspring", i, state, child)
		}
		if o.CurrentBodyState != wantIdx[i] {
			t.Fatalf("frame %d: body state index %d, want %d", i, o.CurrentBodyState, wantIdx[i])
		}
		if o.Location != wantLoc[i] {
			t.Fatalf("frame %d: location %v, want %v", i, o.Location, wantLoc[i])
		}
	}
	if o.Age != len(wantIdx) {
		t.Fatalf("age = %d, want %d", o.Age, len(wantIdx))
	}
}

func TestNextFrameStarvation(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0), Square(1, 0)))
	o.Attributes.Metabolism = 10
	o.Energy = 10*o.Body.Len() - 1

	state, child := o.NextFrame(forbiddenRand{t})
	if state != Dead || child != nil {
		t.Fatalf("got %v/%v, want dead without offspring", state, child)
	}
	if o.Age != 0 {
		t.Fatalf("starved organism must not age, got %d", o.Age)
	}
}

func TestNextFrameOldAge(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)))
	o.Age = o.Attributes.MaxAge - 1

	state, child := o.NextFrame(forbiddenRand{t})
	if state != Dead || child != nil {
		t.Fatalf("got %v/%v, want dead without offspring", state, child)
	}
}

func TestNextFrameOneFrameBeforeOldAge(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)))
	o.Attributes.MutationRate = 0
	o.Attributes.ReproductionRate = 0
	o.Age = o.Attributes.MaxAge - 2

	if state, _ := o.NextFrame(&scriptedRand{}); state != Alive {
		t.Fatalf("expected alive at age %d", o.Age)
	}
	if state, _ := o.NextFrame(forbiddenRand{t}); state != Dead {
		t.Fatal("expected death on reaching max age")
	}
}

func TestNextFrameReproductionAccepted(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)), NewBody(Square(1, 0)))

	// Skip mutation, pass the reproduction roll, jitter (-1, 0).
	rng := &scriptedRand{floats: []float64{0.99, 0}, ints: []int{0, 1}}
	state, child := o.NextFrame(rng)
	if state != Alive || child == nil {
		t.Fatalf("got %v/%v, want alive with offspring", state, child)
	}

	if child.Energy != InitialEnergy/2 {
		t.Fatalf("offspring energy %d, want %d", child.Energy, InitialEnergy/2)
	}
	if o.Energy != InitialEnergy-child.Energy {
		t.Fatalf("parent energy %d, want %d", o.Energy, InitialEnergy-child.Energy)
	}
	if child.ID != o.ID || child.Age != 0 || child.CurrentBodyState != 0 {
		t.Fatalf("unexpected offspring identity: id=%d age=%d state=%d", child.ID, child.Age, child.CurrentBodyState)
	}
	if want := o.Location.Add(image.Pt(-1, 0)); child.Location != want {
		t.Fatalf("offspring location %v, want %v", child.Location, want)
	}
	if !child.Body.Equal(o.Body) {
		t.Fatal("offspring should start with the parent's current body")
	}

	child.Mutate(&scriptedRand{floats: []float64{0, 0, 0, 0}})
	if !o.Attributes.BodyStates[1].Equal(NewBody(Square(1, 0))) {
		t.Fatal("offspring geometry must not alias the parent's")
	}
}

func TestNextFrameReproductionAbort(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)))
	o.Attributes.BodyStates = []Body{NewBody(Square(0, 0)), NewBody(Square(10, 10))}
	before := o.Energy - int(o.Attributes.Metabolism*float64(o.Body.Len()))

	rng := &scriptedRand{floats: []float64{0.99, 0}}
	state, child := o.NextFrame(rng)
	if state != Alive || child != nil {
		t.Fatalf("got %v/%v, want alive without offspring", state, child)
	}
	if o.Energy != before {
		t.Fatalf("aborted birth charged the parent: energy %d, want %d", o.Energy, before)
	}
}

func TestNextFrameBuildsCandidateWithoutRoll(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)))
	rng := &scriptedRand{floats: []float64{0.99, 0.99}}

	state, child := o.NextFrame(rng)
	if state != Alive || child != nil {
		t.Fatalf("got %v/%v, want alive without offspring", state, child)
	}
	// Two rolls, two jitter draws, two perturbation draws for one square.
	if rng.calls != 6 {
		t.Fatalf("got %d draws, want 6", rng.calls)
	}
	if o.Energy != InitialEnergy {
		t.Fatalf("energy %d, want %d", o.Energy, InitialEnergy)
	}
}

func TestNextFrameMutationRollRewritesGeometry(t *testing.T) {
	o := newOrganism(t, NewBody(Square(0, 0)))
	o.Attributes.ReproductionRate = 0

	rng := &scriptedRand{floats: []float64{0, 1.0 / 4, 3.0 / 4}}
	if state, _ := o.NextFrame(rng); state != Alive {
		t.Fatal("expected alive")
	}
	if want := NewBody(Square(-0.5, 0.5)); !o.Attributes.BodyStates[0].Equal(want) {
		t.Fatalf("mutated state %+v, want %+v", o.Attributes.BodyStates[0].Squares(), want.Squares())
	}
	if !o.Body.Equal(NewBody(Square(0, 0))) {
		t.Fatal("mutation must not touch the current body")
	}
}

func TestSeededRunIsDeterministic(t *testing.T) {
	run := func() (image.Point, int, int) {
		rng := rand.New(rand.NewPCG(11, 0))
		o := newOrganism(t, NewBody(Square(0, 0), Square(1, 0)), NewBody(Square(0, 0), Square(1, 1)))
		births := 0
		for i := 0; i < 200; i++ {
			state, child := o.NextFrame(rng)
			if state == Dead {
				break
			}
			if child != nil {
				births++
			}
		}
		return o.Location, o.Energy, births
	}

	loc1, energy1, births1 := run()
	loc2, energy2, births2 := run()
	if loc1 != loc2 || energy1 != energy2 || births1 != births2 {
		t.Fatalf("same seed diverged: %v/%d/%d vs %v/%d/%d", loc1, energy1, births1, loc2, energy2, births2)
	}
}
