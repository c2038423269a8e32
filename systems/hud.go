package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/airhockey-mp/components"
	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/fonts"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const inactiveNotice = "Session inactive - input disabled"

// HUDNotifier shows the inactivity banner when the session is dropped.
type HUDNotifier struct {
	ecs *ecs.ECS
}

func NewHUDNotifier(ecs *ecs.ECS) *HUDNotifier {
	return &HUDNotifier{ecs: ecs}
}

func (n *HUDNotifier) SessionInactive() {
	entry, ok := components.HUD.First(n.ecs.World)
	if !ok {
		return
	}
	components.HUD.Get(entry).Notice = inactiveNotice
}

// RecordEvents flashes goals from the last physics step. These come from
// local prediction, so nothing is tallied; the server owns the score.
func RecordEvents(ecs *ecs.ECS, events []tablephysics.Event) {
	entry, ok := components.HUD.First(ecs.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	for _, ev := range events {
		if ev.Kind != tablephysics.EventGoal || !ev.Paddle.Valid() {
			continue
		}
		hud.Flash = fmt.Sprintf("GOAL %s", ev.Paddle)
		hud.FlashTicks = cfg.View.GoalFlashTicks
	}
}

func UpdateHUD(ecs *ecs.ECS) {
	entry, ok := components.HUD.First(ecs.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	if hud.FlashTicks > 0 {
		hud.FlashTicks--
		if hud.FlashTicks == 0 {
			hud.Flash = ""
		}
	}
}

func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.HUD.First(ecs.World)
	if !ok {
		return
	}
	hud := components.HUD.Get(entry)
	net := components.NetSession.Get(entry)
	width := cfg.C.Width
	small := fonts.Small.Get()

	if net.Loop != nil {
		role := net.Loop.Session().Role()
		text.Draw(screen, roleLabel(role), small, 8, 16, cfg.View.Text)
	}

	if hud.Flash != "" {
		drawCentered(screen, hud.Flash, fonts.Title, cfg.C.Height/2, cfg.View.Warning)
	}

	if hud.Notice != "" {
		y := float32(cfg.C.Height - 48)
		vector.FillRect(screen, 0, y, float32(width), 28, color.RGBA{0, 0, 0, 180}, false)
		drawCentered(screen, hud.Notice, fonts.Regular, int(y)+19, cfg.View.Warning)
	}

	if cfg.Debug.ShowStats && net.Loop != nil {
		drawStats(screen, net.Loop.Stats())
	}
}

func roleLabel(role network.Role) string {
	switch role {
	case network.RolePaddle1:
		return "You: paddle 1"
	case network.RolePaddle2:
		return "You: paddle 2"
	}
	return "Spectating"
}

func drawCentered(screen *ebiten.Image, s string, name fonts.FontName, y int, clr color.Color) {
	face := name.Get()
	bounds := text.BoundString(face, s) //nolint:staticcheck // TODO: migrate to text/v2
	x := (cfg.C.Width - bounds.Dx()) / 2
	text.Draw(screen, s, face, x, y, clr)
}

func drawStats(screen *ebiten.Image, s network.Stats) {
	lag := "?"
	if s.LagTicks >= 0 {
		lag = fmt.Sprintf("%d", s.LagTicks)
	}
	line := fmt.Sprintf("tick %d  upd %d  bad %d  drop %d  lag %s  err %.3f",
		s.Ticks, s.Applied, s.Malformed, s.DroppedUpdates, lag, s.PredictionErr)
	text.Draw(screen, line, fonts.Small.Get(), 8, cfg.C.Height-8, color.RGBA{160, 160, 160, 255})
}
