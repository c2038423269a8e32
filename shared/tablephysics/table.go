package tablephysics

import (
	"errors"
	"fmt"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/statevec"
)

var ErrInvalidTable = errors.New("invalid table")

// Table is the playing surface geometry in table-local units. X runs from 0
// to Width, Y from -Length/2 (paddle 1's end) to Length/2 (paddle 2's end).
type Table struct {
	Width        float64
	Length       float64
	GoalWidth    float64
	PuckRadius   float64
	PaddleRadius float64
	PuckSpawn    gamemath.Vec2
	PaddleSpawn  [2]gamemath.Vec2
}

// StandardTable is the 1.25 x 2.5 table used when no asset is available.
func StandardTable() Table {
	return Table{
		Width:        1.25,
		Length:       2.5,
		GoalWidth:    0.35,
		PuckRadius:   0.04,
		PaddleRadius: 0.06,
		PuckSpawn:    gamemath.Vec2{X: 0.625, Y: 0},
		PaddleSpawn: [2]gamemath.Vec2{
			{X: 0.625, Y: -0.9},
			{X: 0.625, Y: 0.9},
		},
	}
}

func (t Table) HalfLength() float64 { return t.Length / 2 }

// Validate reports geometry that the simulation cannot run on.
func (t Table) Validate() error {
	switch {
	case !(t.Width > 0) || !(t.Length > 0):
		return fmt.Errorf("%w: size %.3fx%.3f", ErrInvalidTable, t.Width, t.Length)
	case !(t.PuckRadius > 0) || !(t.PaddleRadius > 0):
		return fmt.Errorf("%w: radii puck=%.3f paddle=%.3f", ErrInvalidTable, t.PuckRadius, t.PaddleRadius)
	case 2*t.PaddleRadius >= t.Width || 2*t.PaddleRadius >= t.HalfLength():
		return fmt.Errorf("%w: paddle radius %.3f does not fit", ErrInvalidTable, t.PaddleRadius)
	case t.GoalWidth < 0 || t.GoalWidth > t.Width:
		return fmt.Errorf("%w: goal width %.3f", ErrInvalidTable, t.GoalWidth)
	}
	return nil
}

// PaddleBounds returns the rectangle the centre of paddle p may occupy.
func (t Table) PaddleBounds(p statevec.Paddle) (min, max gamemath.Vec2) {
	r := t.PaddleRadius
	h := t.HalfLength()
	min.X, max.X = r, t.Width-r
	if p == Paddle2 {
		min.Y, max.Y = 0, h-r
	} else {
		min.Y, max.Y = -h+r, 0
	}
	return min, max
}

// ClampPaddle moves pos inside paddle p's half. NaN components fall back to
// the paddle's spawn point.
func (t Table) ClampPaddle(p statevec.Paddle, pos gamemath.Vec2) gamemath.Vec2 {
	min, max := t.PaddleBounds(p)
	spawn := t.PaddleSpawn[paddleIndex(p)]
	return gamemath.Vec2{
		X: gamemath.Sanitize(pos.X, min.X, max.X, spawn.X),
		Y: gamemath.Sanitize(pos.Y, min.Y, max.Y, spawn.Y),
	}
}

// InGoalMouth reports whether a puck centred at x fits through the goal opening.
func (t Table) InGoalMouth(x float64) bool {
	half := t.GoalWidth/2 - t.PuckRadius
	if half <= 0 {
		return false
	}
	d := x - t.Width/2
	return d >= -half && d <= half
}

// clampPuck keeps the puck centre on the table. Inside the goal mouth the
// puck may reach the end line itself.
func (t Table) clampPuck(pos gamemath.Vec2) gamemath.Vec2 {
	r := t.PuckRadius
	h := t.HalfLength()
	x := gamemath.Sanitize(pos.X, r, t.Width-r, t.PuckSpawn.X)
	lo, hi := -h+r, h-r
	if t.InGoalMouth(x) {
		lo, hi = -h, h
	}
	return gamemath.Vec2{X: x, Y: gamemath.Sanitize(pos.Y, lo, hi, t.PuckSpawn.Y)}
}

const (
	Paddle1 = statevec.Paddle1
	Paddle2 = statevec.Paddle2
)

var paddles = [2]statevec.Paddle{Paddle1, Paddle2}

func paddleIndex(p statevec.Paddle) int {
	if p == Paddle2 {
		return 1
	}
	return 0
}
