package tablephysics

import "github.com/automoto/airhockey-mp/shared/statevec"

type EventKind int

const (
	EventWall EventKind = iota
	EventPaddle
	EventGoal
)

func (k EventKind) String() string {
	switch k {
	case EventWall:
		return "wall"
	case EventPaddle:
		return "paddle"
	case EventGoal:
		return "goal"
	}
	return "unknown"
}

// Event is something the puck hit during a step. Paddle is the paddle struck
// for EventPaddle and the scoring side for EventGoal.
type Event struct {
	Kind   EventKind
	Paddle statevec.Paddle
	Speed  float64
}
