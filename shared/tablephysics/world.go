// Package tablephysics advances the puck and both paddles by fixed steps.
// It owns one state vector and never produces non-finite state.
package tablephysics

import (
	"math"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/statevec"
)

// Puck block layout inside the state vector.
const (
	PuckX     = statevec.PuckStart
	PuckY     = statevec.PuckStart + 1
	PuckVX    = statevec.PuckStart + 2
	PuckVY    = statevec.PuckStart + 3
	PuckAngle = statevec.PuckStart + 4
	PuckSpin  = statevec.PuckStart + 5
)

type puckState struct {
	Pos   gamemath.Vec2
	Vel   gamemath.Vec2
	Angle float64
	Spin  float64
}

func loadPuck(v statevec.StateVector) puckState {
	return puckState{
		Pos:   gamemath.Vec2{X: v[PuckX], Y: v[PuckY]},
		Vel:   gamemath.Vec2{X: v[PuckVX], Y: v[PuckVY]},
		Angle: v[PuckAngle],
		Spin:  v[PuckSpin],
	}
}

func (p puckState) store(v *statevec.StateVector) {
	v[PuckX], v[PuckY] = p.Pos.X, p.Pos.Y
	v[PuckVX], v[PuckVY] = p.Vel.X, p.Vel.Y
	v[PuckAngle] = p.Angle
	v[PuckSpin] = p.Spin
}

type World struct {
	table Table
	cfg   Config

	state     statevec.StateVector
	targets   [2]gamemath.Vec2
	paddleVel [2]gamemath.Vec2

	broad  *broadphase
	events []Event
}

func NewWorld(table Table, cfg Config) *World {
	w := &World{
		table: table,
		cfg:   cfg,
		broad: newBroadphase(table),
	}
	w.Reset()
	return w
}

// Reset puts the puck and paddles back on their spawn points.
func (w *World) Reset() {
	w.state = statevec.StateVector{}
	puckState{Pos: w.table.PuckSpawn}.store(&w.state)
	for i, p := range paddles {
		spawn := w.table.ClampPaddle(p, w.table.PaddleSpawn[i])
		w.state.SetPaddlePos(p, spawn)
		w.targets[i] = spawn
		w.paddleVel[i] = gamemath.Vec2{}
	}
	w.events = w.events[:0]
	w.syncPaddles()
}

func (w *World) Table() Table { return w.table }

// State returns a copy of the current vector.
func (w *World) State() statevec.StateVector { return w.state }

func (w *World) Positions() statevec.Positions { return w.state.Positions() }

// Events returns what happened during the last Advance.
func (w *World) Events() []Event {
	out := make([]Event, len(w.events))
	copy(out, w.events)
	return out
}

// Target returns the position paddle p is moving toward.
func (w *World) Target(p statevec.Paddle) gamemath.Vec2 {
	return w.targets[paddleIndex(p)]
}

// SetPaddleTarget records where paddle p should move on the following steps.
// The target is clamped into the paddle's half and returned.
func (w *World) SetPaddleTarget(p statevec.Paddle, target gamemath.Vec2) (gamemath.Vec2, bool) {
	if !p.Valid() {
		return gamemath.Vec2{}, false
	}
	clamped := w.table.ClampPaddle(p, target)
	w.targets[paddleIndex(p)] = clamped
	return clamped, true
}

// ApplyRemote installs v as the whole state. A paddle whose position changed
// is retargeted to where it now stands; an untouched paddle keeps its target.
// Ranges are enforced by the next Advance.
func (w *World) ApplyRemote(v statevec.StateVector) {
	prev := w.state
	w.state = v
	for i, p := range paddles {
		pos := v.PaddlePos(p)
		if pos == prev.PaddlePos(p) {
			continue
		}
		w.targets[i] = w.table.ClampPaddle(p, pos)
		w.paddleVel[i] = gamemath.Vec2{}
	}
}

// Advance integrates one step of dt seconds. A non-finite or non-positive dt
// only sanitizes the state.
func (w *World) Advance(dt float64) {
	w.events = w.events[:0]
	w.sanitize()
	if !gamemath.IsFinite(dt) || dt <= 0 {
		return
	}
	dt = math.Min(dt, w.cfg.MaxStep)

	w.stepPaddles(dt)
	w.stepPuck(dt)
	w.sanitize()
}

func (w *World) stepPaddles(dt float64) {
	maxStep := w.cfg.PaddleMaxSpeed * dt
	for i, p := range paddles {
		pos := w.state.PaddlePos(p)
		next := w.targets[i]
		if delta := next.Sub(pos); delta.Len() > maxStep {
			next = pos.Add(delta.Scale(maxStep / delta.Len()))
		}
		next = w.table.ClampPaddle(p, next)
		w.paddleVel[i] = next.Sub(pos).Scale(1 / dt)
		w.state.SetPaddlePos(p, next)
	}
	w.syncPaddles()
}

func (w *World) stepPuck(dt float64) {
	puck := loadPuck(w.state)
	puck.Vel = gamemath.ApplyFriction(puck.Vel, w.cfg.PuckFriction*dt)
	puck.Vel = gamemath.ClampSpeed(puck.Vel, w.cfg.MaxPuckSpeed)
	puck.Spin *= math.Max(0, 1-w.cfg.SpinDamping*dt)

	// Sub-step so the puck never moves more than its radius at once.
	steps := int(math.Ceil(puck.Vel.Len() * dt / w.table.PuckRadius))
	steps = max(1, min(steps, w.cfg.MaxSubsteps))
	h := dt / float64(steps)

	for range steps {
		puck.Pos = puck.Pos.Add(puck.Vel.Scale(h))
		w.collidePaddles(&puck)
		if w.collideWalls(&puck) {
			break
		}
	}

	puck.Angle = gamemath.WrapAngle(puck.Angle + puck.Spin*dt)
	puck.store(&w.state)
}

// sanitize clamps every slot into range and replaces NaN with spawn values.
func (w *World) sanitize() {
	for i, p := range paddles {
		w.state.SetPaddlePos(p, w.table.ClampPaddle(p, w.state.PaddlePos(p)))
		w.targets[i] = w.table.ClampPaddle(p, w.targets[i])
	}

	puck := loadPuck(w.state)
	puck.Pos = w.table.clampPuck(puck.Pos)
	maxSpeed := w.cfg.MaxPuckSpeed
	puck.Vel = gamemath.ClampSpeed(gamemath.Vec2{
		X: gamemath.Sanitize(puck.Vel.X, -maxSpeed, maxSpeed, 0),
		Y: gamemath.Sanitize(puck.Vel.Y, -maxSpeed, maxSpeed, 0),
	}, maxSpeed)
	puck.Angle = gamemath.WrapAngle(puck.Angle)
	puck.Spin = gamemath.Sanitize(puck.Spin, -w.cfg.MaxSpin, w.cfg.MaxSpin, 0)
	puck.store(&w.state)
}

func (w *World) syncPaddles() {
	for _, p := range paddles {
		w.broad.placePaddle(p, w.state.PaddlePos(p))
	}
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}
