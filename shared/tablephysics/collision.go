package tablephysics

import (
	"math"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/statevec"
)

func (w *World) collidePaddles(puck *puckState) {
	for _, p := range w.broad.paddlesNear(puck.Pos) {
		w.hitPaddle(p, puck)
	}
}

// hitPaddle resolves circle-circle contact between the puck and paddle p.
// Paddles are kinematic, so only the puck responds, relative to the paddle's
// own velocity.
func (w *World) hitPaddle(p statevec.Paddle, puck *puckState) {
	center := w.state.PaddlePos(p)
	minDist := w.table.PuckRadius + w.table.PaddleRadius

	d := puck.Pos.Sub(center)
	if d.Len() >= minDist {
		return
	}

	n := d.Normalize()
	if n == (gamemath.Vec2{}) {
		// Dead centre: push toward the opponent's end.
		n = gamemath.Vec2{Y: 1}
		if p == Paddle2 {
			n.Y = -1
		}
	}
	puck.Pos = center.Add(n.Scale(minDist))

	paddleVel := w.paddleVel[paddleIndex(p)]
	rel := puck.Vel.Sub(paddleVel)
	vn := rel.Dot(n)
	if vn >= 0 {
		return
	}

	rel = rel.Sub(n.Scale((1 + w.cfg.PaddleRestitution) * vn))
	puck.Spin += rel.Dot(n.Perp()) / w.table.PuckRadius * w.cfg.SpinTransfer
	puck.Vel = gamemath.ClampSpeed(rel.Add(paddleVel), w.cfg.MaxPuckSpeed)

	w.emit(Event{Kind: EventPaddle, Paddle: p, Speed: -vn})
}

// collideWalls reflects the puck off the rails by mirroring the overshoot.
// It returns true when the puck crossed an end line inside a goal mouth; the
// puck is then back on its spawn point.
func (w *World) collideWalls(puck *puckState) bool {
	r := w.table.PuckRadius
	e := w.cfg.WallRestitution
	left, right := r, w.table.Width-r

	if puck.Pos.X < left {
		puck.Pos.X = left + (left - puck.Pos.X)
		w.bounce(&puck.Vel.X, 1, e)
	} else if puck.Pos.X > right {
		puck.Pos.X = right - (puck.Pos.X - right)
		w.bounce(&puck.Vel.X, -1, e)
	}

	h := w.table.HalfLength()
	near, far := -h+r, h-r

	if w.table.InGoalMouth(puck.Pos.X) {
		switch {
		case puck.Pos.Y < -h:
			w.goal(Paddle2, puck)
			return true
		case puck.Pos.Y > h:
			w.goal(Paddle1, puck)
			return true
		}
		return false
	}

	if puck.Pos.Y < near {
		puck.Pos.Y = near + (near - puck.Pos.Y)
		w.bounce(&puck.Vel.Y, 1, e)
	} else if puck.Pos.Y > far {
		puck.Pos.Y = far - (puck.Pos.Y - far)
		w.bounce(&puck.Vel.Y, -1, e)
	}
	return false
}

// bounce flips a velocity component that points out of the table. inward is
// the sign a component must have after the bounce.
func (w *World) bounce(v *float64, inward, restitution float64) {
	if *v*inward >= 0 {
		return
	}
	w.emit(Event{Kind: EventWall, Speed: math.Abs(*v)})
	*v = -*v * restitution
}

func (w *World) goal(scorer statevec.Paddle, puck *puckState) {
	w.emit(Event{Kind: EventGoal, Paddle: scorer, Speed: puck.Vel.Len()})
	*puck = puckState{Pos: w.table.PuckSpawn}
}
