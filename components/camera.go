package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// CameraData maps table coordinates to the screen. Rotation is in radians;
// 0 puts paddle 1's end at the bottom of the screen.
type CameraData struct {
	Rotation float64
	Scale    float64 // pixels per table unit
	CenterX  float64
	CenterY  float64
	Turn     *gween.Tween // running rotation animation, nil when idle
}

var Camera = donburi.NewComponentType[CameraData]()
