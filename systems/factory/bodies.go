package factory

import (
	"github.com/automoto/airhockey-mp/archetypes"
	"github.com/automoto/airhockey-mp/components"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreatePuck(ecs *ecs.ECS, table tablephysics.Table) *donburi.Entry {
	puck := archetypes.Puck.Spawn(ecs)
	components.Body.SetValue(puck, components.BodyData{
		Kind:   components.BodyPuck,
		Pos:    table.PuckSpawn,
		Radius: table.PuckRadius,
	})
	return puck
}

func CreatePaddles(ecs *ecs.ECS, table tablephysics.Table) {
	for i, kind := range []components.BodyKind{components.BodyPaddle1, components.BodyPaddle2} {
		paddle := archetypes.Paddle.Spawn(ecs)
		components.Body.SetValue(paddle, components.BodyData{
			Kind:   kind,
			Pos:    table.PaddleSpawn[i],
			Radius: table.PaddleRadius,
		})
	}
}
