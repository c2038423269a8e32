package systems

import (
	"image/color"
	"math"

	"github.com/automoto/airhockey-mp/components"
	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var drawOp = &ebiten.DrawImageOptions{}

const railWidth = 6

// DrawTable draws the playing surface under the current camera rotation.
func DrawTable(ecs *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.View.Background)

	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}
	tableEntry, ok := components.Table.First(ecs.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	table := components.Table.Get(tableEntry)
	if table.Surface == nil {
		table.Surface = renderSurface(table.Table, camera.Scale)
	}

	w, h := table.Surface.Bounds().Dx(), table.Surface.Bounds().Dy()
	drawOp.GeoM.Reset()
	drawOp.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	drawOp.GeoM.Rotate(-camera.Rotation)
	drawOp.GeoM.Translate(camera.CenterX, camera.CenterY)
	screen.DrawImage(table.Surface, drawOp)
}

// renderSurface paints the table once at the given scale. Row 0 of the
// image is paddle 2's end.
func renderSurface(t tablephysics.Table, scale float64) *ebiten.Image {
	w := float32(math.Ceil(t.Width*scale)) + 2*railWidth
	h := float32(math.Ceil(t.Length*scale)) + 2*railWidth
	img := ebiten.NewImage(int(w), int(h))

	img.Fill(cfg.View.Rail)
	vector.FillRect(img, railWidth, railWidth, w-2*railWidth, h-2*railWidth, cfg.View.Surface, false)

	mid := h / 2
	vector.StrokeLine(img, railWidth, mid, w-railWidth, mid, 2, cfg.View.Line, true)
	vector.StrokeCircle(img, w/2, mid, float32(0.15*scale), 2, cfg.View.Line, true)

	goalX := railWidth + float32((t.Width-t.GoalWidth)/2*scale)
	goalW := float32(t.GoalWidth * scale)
	vector.FillRect(img, goalX, 0, goalW, railWidth, cfg.View.Goal, false)
	vector.FillRect(img, goalX, h-railWidth, goalW, railWidth, cfg.View.Goal, false)
	return img
}

// DrawBodies draws the puck and both paddles.
func DrawBodies(ecs *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}
	tableEntry, ok := components.Table.First(ecs.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)
	width := components.Table.Get(tableEntry).Table.Width

	components.Body.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		x, y := TableToScreen(camera, width, body.Pos)
		r := float32(body.Radius * camera.Scale)

		switch body.Kind {
		case components.BodyPuck:
			vector.FillCircle(screen, float32(x), float32(y), r, cfg.View.Puck, true)
		case components.BodyPaddle1:
			drawPaddle(screen, float32(x), float32(y), r, cfg.View.Paddle1)
		case components.BodyPaddle2:
			drawPaddle(screen, float32(x), float32(y), r, cfg.View.Paddle2)
		}
	})
}

func drawPaddle(screen *ebiten.Image, x, y, r float32, clr color.RGBA) {
	vector.FillCircle(screen, x, y, r, clr, true)
	vector.StrokeCircle(screen, x, y, r*0.55, 2, color.RGBA{255, 255, 255, 120}, true)
}
