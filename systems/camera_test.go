package systems

import (
	"math"
	"testing"

	"github.com/automoto/airhockey-mp/components"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/gamemath"
)

func testCamera(rotation float64) *components.CameraData {
	return &components.CameraData{
		Rotation: rotation,
		Scale:    300,
		CenterX:  240,
		CenterY:  420,
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTableToScreenDefaultView(t *testing.T) {
	c := testCamera(0)
	x, y := TableToScreen(c, 1.25, gamemath.Vec2{X: 0.625, Y: 0})
	if !near(x, 240) || !near(y, 420) {
		t.Fatalf("centre maps to (%v, %v)", x, y)
	}
	// paddle 1's end is at the bottom
	_, y = TableToScreen(c, 1.25, gamemath.Vec2{X: 0.625, Y: -1})
	if y <= 420 {
		t.Fatalf("negative y drawn above centre: %v", y)
	}
}

func TestTableToScreenFlippedView(t *testing.T) {
	c := testCamera(ViewRotation(network.RolePaddle2))
	_, y := TableToScreen(c, 1.25, gamemath.Vec2{X: 0.625, Y: 1})
	if y <= 420 {
		t.Fatalf("paddle 2's end should be at the bottom, got y=%v", y)
	}
	x, _ := TableToScreen(c, 1.25, gamemath.Vec2{X: 0, Y: 0})
	if x <= 240 {
		t.Fatalf("flipped view should mirror x, got %v", x)
	}
}

func TestScreenToTableRoundTrip(t *testing.T) {
	for _, rot := range []float64{0, math.Pi, 0.7} {
		c := testCamera(rot)
		p := gamemath.Vec2{X: 0.3, Y: -0.8}
		sx, sy := TableToScreen(c, 1.25, p)
		got := ScreenToTable(c, 1.25, sx, sy)
		if !near(got.X, p.X) || !near(got.Y, p.Y) {
			t.Fatalf("rotation %v: got %+v, want %+v", rot, got, p)
		}
	}
}

func TestScreenToTableZeroScale(t *testing.T) {
	c := testCamera(0)
	c.Scale = 0
	if ScreenToTable(c, 1.25, 10, 10).Finite() {
		t.Fatal("zero scale should give a non-finite hit")
	}
}

func TestViewRotation(t *testing.T) {
	if ViewRotation(network.RoleSpectator) != 0 || ViewRotation(network.RolePaddle1) != 0 {
		t.Fatal("spectator and paddle 1 share the default view")
	}
	if ViewRotation(network.RolePaddle2) != math.Pi {
		t.Fatal("paddle 2 looks from the far end")
	}
}
