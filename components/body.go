package components

import (
	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

type BodyKind int

const (
	BodyPuck BodyKind = iota
	BodyPaddle1
	BodyPaddle2
)

// BodyData is a round thing on the table, in table-local units.
type BodyData struct {
	Kind   BodyKind
	Pos    gamemath.Vec2
	Radius float64
}

var Body = donburi.NewComponentType[BodyData]()
