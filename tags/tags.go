package tags

import "github.com/yohamta/donburi"

var (
	Puck   = donburi.NewTag().SetName("Puck")
	Paddle = donburi.NewTag().SetName("Paddle")
)
