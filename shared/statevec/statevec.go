// Package statevec holds the flat world-state record shared by the simulation
// and the wire. Slot positions are a fixed contract with the server.
package statevec

import (
	"errors"
	"fmt"

	"github.com/automoto/airhockey-mp/shared/gamemath"
)

// Len is the number of slots in a state vector.
const Len = 10

// Slot indices. Slots [PuckStart, PuckEnd) hold the puck block, whose inner
// layout belongs to the physics package.
const (
	PuckStart = 0
	PuckEnd   = 6
	P1X       = 6
	P1Y       = 7
	P2X       = 8
	P2Y       = 9
)

// ErrMalformedState is wrapped by Decode when a sequence is not Len long.
var ErrMalformedState = errors.New("malformed state")

// StateVector is the whole table state in wire slot order: the puck block,
// then paddle 1 x/y, then paddle 2 x/y.
type StateVector [Len]float64

// Paddle identifies one of the two paddles.
type Paddle int

const (
	Paddle1 Paddle = 1
	Paddle2 Paddle = 2
)

func (p Paddle) Valid() bool { return p == Paddle1 || p == Paddle2 }

func (p Paddle) String() string {
	switch p {
	case Paddle1:
		return "p1"
	case Paddle2:
		return "p2"
	}
	return fmt.Sprintf("paddle(%d)", int(p))
}

// Slots returns the x and y slot indices of a paddle.
func Slots(p Paddle) (x, y int, ok bool) {
	switch p {
	case Paddle1:
		return P1X, P1Y, true
	case Paddle2:
		return P2X, P2Y, true
	}
	return 0, 0, false
}

// Positions is the named, by-value view handed to renderers.
type Positions struct {
	Puck gamemath.Vec2
	P1   gamemath.Vec2
	P2   gamemath.Vec2
}

// Paddle returns the position of p from the view.
func (p Positions) Paddle(which Paddle) gamemath.Vec2 {
	if which == Paddle2 {
		return p.P2
	}
	return p.P1
}

// Encode returns a fresh slice in wire order.
func (v StateVector) Encode() []float64 {
	out := make([]float64, Len)
	copy(out, v[:])
	return out
}

// Decode builds a vector from a wire sequence. Only the length is checked;
// ranges are enforced by the simulation on its next step.
func Decode(seq []float64) (StateVector, error) {
	var v StateVector
	if len(seq) != Len {
		return v, fmt.Errorf("%w: got %d slots, want %d", ErrMalformedState, len(seq), Len)
	}
	copy(v[:], seq)
	return v, nil
}

// PaddlePos reads a paddle position. Unknown paddles read as the zero vector.
func (v StateVector) PaddlePos(p Paddle) gamemath.Vec2 {
	x, y, ok := Slots(p)
	if !ok {
		return gamemath.Vec2{}
	}
	return gamemath.Vec2{X: v[x], Y: v[y]}
}

func (v *StateVector) SetPaddlePos(p Paddle, pos gamemath.Vec2) {
	x, y, ok := Slots(p)
	if !ok {
		return
	}
	v[x], v[y] = pos.X, pos.Y
}

// PuckBlock returns a copy of the opaque puck slots.
func (v StateVector) PuckBlock() [PuckEnd - PuckStart]float64 {
	var b [PuckEnd - PuckStart]float64
	copy(b[:], v[PuckStart:PuckEnd])
	return b
}

// Positions derives the render view. The puck position is the first two
// slots of the puck block.
func (v StateVector) Positions() Positions {
	return Positions{
		Puck: gamemath.Vec2{X: v[PuckStart], Y: v[PuckStart+1]},
		P1:   v.PaddlePos(Paddle1),
		P2:   v.PaddlePos(Paddle2),
	}
}
