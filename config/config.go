package config

import (
	"image/color"
	"time"

	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
)

type Config struct {
	Width  int
	Height int
	Title  string
}

// TableConfig selects the table asset. Fallback is used when the asset
// cannot be loaded.
type TableConfig struct {
	Name     string
	Fallback tablephysics.Table
}

type NetConfig struct {
	Address string
	Loop    network.LoopConfig
}

// ViewConfig holds drawing and camera settings for the viewer.
type ViewConfig struct {
	Margin         float64 // screen pixels around the table
	FlipDuration   float32 // seconds for the role camera turn
	GoalFlashTicks int

	Background color.RGBA
	Surface    color.RGBA
	Rail       color.RGBA
	Line       color.RGBA
	Goal       color.RGBA
	Puck       color.RGBA
	Paddle1    color.RGBA
	Paddle2    color.RGBA
	Text       color.RGBA
	Warning    color.RGBA
}

type DebugConfig struct {
	ShowStats bool
}

// Global configuration instances
var C *Config
var Table TableConfig
var Physics tablephysics.Config
var Net NetConfig
var View ViewConfig
var Debug DebugConfig

func init() {
	C = &Config{
		Width:  480,
		Height: 840,
		Title:  "Air Hockey",
	}

	Table = TableConfig{
		Name:     "standard",
		Fallback: tablephysics.StandardTable(),
	}

	Physics = tablephysics.DefaultConfig()

	loop := network.DefaultLoopConfig()
	loop.RenderInterval = time.Second / 30
	Net = NetConfig{
		Address: "localhost:7373",
		Loop:    loop,
	}

	View = ViewConfig{
		Margin:         24,
		FlipDuration:   0.6,
		GoalFlashTicks: 90,

		Background: color.RGBA{16, 18, 24, 255},
		Surface:    color.RGBA{200, 222, 235, 255},
		Rail:       color.RGBA{60, 70, 90, 255},
		Line:       color.RGBA{200, 60, 60, 255},
		Goal:       color.RGBA{30, 30, 30, 255},
		Puck:       color.RGBA{20, 20, 20, 255},
		Paddle1:    color.RGBA{220, 50, 50, 255},
		Paddle2:    color.RGBA{40, 90, 220, 255},
		Text:       color.RGBA{235, 235, 235, 255},
		Warning:    color.RGBA{250, 190, 40, 255},
	}

	Debug = DebugConfig{
		ShowStats: true,
	}
}
