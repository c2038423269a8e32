package components

import (
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

type TableData struct {
	Table   tablephysics.Table
	Surface *ebiten.Image // pre-rendered at camera scale
}

var Table = donburi.NewComponentType[TableData]()
