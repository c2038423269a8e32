package systems

import (
	"github.com/automoto/airhockey-mp/components"
	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

var touchIDs []ebiten.TouchID

type pointer struct {
	x, y int
}

var lastPointer pointer

// readPointer prefers the first active touch over the mouse cursor.
func readPointer() pointer {
	touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return pointer{x: x, y: y}
	}
	x, y := ebiten.CursorPosition()
	return pointer{x: x, y: y}
}

// UpdatePointer converts pointer motion into a table hit point and hands it
// to the sync loop. A stationary pointer sends nothing.
func UpdatePointer(ecs *ecs.ECS) {
	p := readPointer()
	if p == lastPointer {
		return
	}
	lastPointer = p

	hit, ok := pointerHit(ecs, float64(p.x), float64(p.y))
	if !ok {
		return
	}
	sessionEntry, ok := components.NetSession.First(ecs.World)
	if !ok {
		return
	}
	loop := components.NetSession.Get(sessionEntry).Loop
	if loop == nil {
		return
	}
	loop.PointerMove(hit)
}

func pointerHit(ecs *ecs.ECS, sx, sy float64) (gamemath.Vec2, bool) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return gamemath.Vec2{}, false
	}
	tableEntry, ok := components.Table.First(ecs.World)
	if !ok {
		return gamemath.Vec2{}, false
	}
	camera := components.Camera.Get(cameraEntry)
	table := components.Table.Get(tableEntry).Table
	hit := ScreenToTable(camera, table.Width, sx, sy)
	return hit, hit.Finite()
}
