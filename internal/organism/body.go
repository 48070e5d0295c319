package organism

import "math"

// AdjacencyRadius is the distance under which two squares count as touching.
// It admits diagonal neighbours on a unit grid.
const AdjacencyRadius = 1.5

// Vec2 is a position in continuous body space.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// BodySquare is a single unit cell of a body.
type BodySquare struct {
	Position Vec2
}

// Square is shorthand for a BodySquare at (x, y).
func Square(x, y float64) BodySquare {
	return BodySquare{Position: Vec2{X: x, Y: y}}
}

// Body is an ordered list of squares. Square i of one body state corresponds
// to square i of the next, so order is significant.
type Body struct {
	squares []BodySquare
}

// NewBody builds a body from the given squares in order.
func NewBody(squares ...BodySquare) Body {
	b := Body{}
	for _, sq := range squares {
		b.AddSquare(sq)
	}
	return b
}

// AddSquare appends a square without validating its placement.
func (b *Body) AddSquare(sq BodySquare) {
	b.squares = append(b.squares, sq)
}

// Len reports the number of squares.
func (b Body) Len() int { return len(b.squares) }

// Squares returns a copy of the squares in insertion order.
func (b Body) Squares() []BodySquare {
	return append([]BodySquare(nil), b.squares...)
}

// Clone returns a body that shares no storage with b.
func (b Body) Clone() Body {
	return Body{squares: b.Squares()}
}

// Equal reports whether both bodies hold the same squares in the same order.
func (b Body) Equal(o Body) bool {
	if len(b.squares) != len(o.squares) {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != o.squares[i] {
			return false
		}
	}
	return true
}

// CheckBlueprintValidity reports whether every proposed square touches at
// least one square of b. An empty proposal is valid.
func (b Body) CheckBlueprintValidity(proposed []BodySquare) bool {
	for _, sq := range proposed {
		if !b.isAdjacent(sq) {
			return false
		}
	}
	return true
}

func (b Body) isAdjacent(sq BodySquare) bool {
	for _, existing := range b.squares {
		if sq.Position.Sub(existing.Position).Len() < AdjacencyRadius {
			return true
		}
	}
	return false
}
