package tablephysics

import (
	"math"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/statevec"
	"github.com/solarlune/resolv"
)

// The resolv space works on an integer cell grid, so table units are scaled
// up and offset by a margin that keeps the goal mouths inside the space.
const (
	broadphaseScale  = 1000.0
	broadphaseCell   = 50
	broadphaseMargin = 200

	tagPuck   = "puck"
	tagPaddle = "paddle"
)

type broadphase struct {
	space      *resolv.Space
	halfLength float64
	puck       *resolv.Object
	paddles    [2]*resolv.Object
}

func newBroadphase(t Table) *broadphase {
	spaceW := int(math.Ceil(t.Width*broadphaseScale)) + 2*broadphaseMargin
	spaceH := int(math.Ceil(t.Length*broadphaseScale)) + 2*broadphaseMargin

	b := &broadphase{
		space:      resolv.NewSpace(spaceW, spaceH, broadphaseCell, broadphaseCell),
		halfLength: t.HalfLength(),
	}

	puckSize := 2 * t.PuckRadius * broadphaseScale
	b.puck = resolv.NewObject(0, 0, puckSize, puckSize, tagPuck)

	paddleSize := 2 * t.PaddleRadius * broadphaseScale
	for i, p := range paddles {
		o := resolv.NewObject(0, 0, paddleSize, paddleSize, tagPaddle)
		o.Data = p
		b.paddles[i] = o
	}

	b.space.Add(b.puck, b.paddles[0], b.paddles[1])
	return b
}

func (b *broadphase) place(o *resolv.Object, center gamemath.Vec2) {
	o.X = center.X*broadphaseScale + broadphaseMargin - o.W/2
	o.Y = (center.Y+b.halfLength)*broadphaseScale + broadphaseMargin - o.H/2
	o.Update()
}

func (b *broadphase) placePaddle(p statevec.Paddle, center gamemath.Vec2) {
	b.place(b.paddles[paddleIndex(p)], center)
}

// paddlesNear returns the paddles sharing a grid cell with the puck.
func (b *broadphase) paddlesNear(puck gamemath.Vec2) []statevec.Paddle {
	b.place(b.puck, puck)

	check := b.puck.Check(0, 0, tagPaddle)
	if check == nil {
		return nil
	}

	var near []statevec.Paddle
	for _, o := range check.ObjectsByTags(tagPaddle) {
		if p, ok := o.Data.(statevec.Paddle); ok {
			near = append(near, p)
		}
	}
	return near
}
