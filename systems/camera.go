package systems

import (
	"math"

	"github.com/automoto/airhockey-mp/components"
	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// TableToScreen maps a table point to screen pixels. The table's centre
// line sits on the camera centre and +y points up the screen at rotation 0.
func TableToScreen(c *components.CameraData, width float64, p gamemath.Vec2) (float64, float64) {
	dx, dy := p.X-width/2, p.Y
	sin, cos := math.Sincos(c.Rotation)
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	return c.CenterX + rx*c.Scale, c.CenterY - ry*c.Scale
}

// ScreenToTable is the inverse of TableToScreen.
func ScreenToTable(c *components.CameraData, width float64, sx, sy float64) gamemath.Vec2 {
	if c.Scale == 0 {
		return gamemath.Vec2{X: math.NaN(), Y: math.NaN()}
	}
	rx := (sx - c.CenterX) / c.Scale
	ry := (c.CenterY - sy) / c.Scale
	sin, cos := math.Sincos(c.Rotation)
	return gamemath.Vec2{
		X: rx*cos + ry*sin + width/2,
		Y: -rx*sin + ry*cos,
	}
}

// ViewRotation is the camera angle that puts role's own end at the bottom.
func ViewRotation(role network.Role) float64 {
	if role == network.RolePaddle2 {
		return math.Pi
	}
	return 0
}

// ViewSwitch turns the camera when the session takes a paddle.
type ViewSwitch struct {
	ecs *ecs.ECS
}

func NewViewSwitch(ecs *ecs.ECS) *ViewSwitch {
	return &ViewSwitch{ecs: ecs}
}

func (v *ViewSwitch) SwitchView(role network.Role) {
	entry, ok := components.Camera.First(v.ecs.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(entry)
	target := ViewRotation(role)
	if camera.Rotation == target {
		return
	}
	camera.Turn = gween.New(float32(camera.Rotation), float32(target), cfg.View.FlipDuration, ease.InOutCubic)
}

func UpdateCamera(ecs *ecs.ECS) {
	entry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(entry)
	if camera.Turn == nil {
		return
	}
	rot, done := camera.Turn.Update(float32(1 / float64(ebiten.TPS())))
	camera.Rotation = float64(rot)
	if done {
		camera.Turn = nil
	}
}
