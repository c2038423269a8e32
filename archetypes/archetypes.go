package archetypes

import (
	"github.com/automoto/airhockey-mp/components"
	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Puck = newArchetype(
		tags.Puck,
		components.Body,
	)
	Paddle = newArchetype(
		tags.Paddle,
		components.Body,
	)
	Table = newArchetype(
		components.Table,
	)
	Camera = newArchetype(
		components.Camera,
	)
	HUD = newArchetype(
		components.HUD,
		components.NetSession,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
