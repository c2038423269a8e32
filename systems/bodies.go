package systems

import (
	"github.com/automoto/airhockey-mp/components"
	"github.com/automoto/airhockey-mp/shared/statevec"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// BodySync copies rendered positions onto the body entities.
type BodySync struct {
	ecs    *ecs.ECS
	frames uint64
}

func NewBodySync(ecs *ecs.ECS) *BodySync {
	return &BodySync{ecs: ecs}
}

func (b *BodySync) Render(pos statevec.Positions) {
	b.frames++
	components.Body.Each(b.ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		switch body.Kind {
		case components.BodyPuck:
			body.Pos = pos.Puck
		case components.BodyPaddle1:
			body.Pos = pos.P1
		case components.BodyPaddle2:
			body.Pos = pos.P2
		}
	})
}

func (b *BodySync) Frames() uint64 { return b.frames }
