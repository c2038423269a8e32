package factory

import (
	"math"

	"github.com/automoto/airhockey-mp/archetypes"
	"github.com/automoto/airhockey-mp/components"
	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateTable(ecs *ecs.ECS, table tablephysics.Table) *donburi.Entry {
	entry := archetypes.Table.Spawn(ecs)
	components.Table.SetValue(entry, components.TableData{Table: table})
	return entry
}

// CreateCamera fits the table's long axis to the window height.
func CreateCamera(ecs *ecs.ECS, table tablephysics.Table) *donburi.Entry {
	w := float64(cfg.C.Width) - 2*cfg.View.Margin
	h := float64(cfg.C.Height) - 2*cfg.View.Margin

	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.SetValue(camera, components.CameraData{
		Scale:   math.Min(w/table.Width, h/table.Length),
		CenterX: float64(cfg.C.Width) / 2,
		CenterY: float64(cfg.C.Height) / 2,
	})
	return camera
}

// CreateHUD spawns the overlay state and the session handle systems read from.
func CreateHUD(ecs *ecs.ECS, loop *network.SyncLoop, client *network.Client) *donburi.Entry {
	hud := archetypes.HUD.Spawn(ecs)
	components.HUD.SetValue(hud, components.HUDData{})
	components.NetSession.SetValue(hud, components.NetSessionData{
		Loop:   loop,
		Client: client,
	})
	return hud
}
