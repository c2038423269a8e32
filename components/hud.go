package components

import (
	"github.com/automoto/airhockey-mp/network"
	"github.com/yohamta/donburi"
)

type HUDData struct {
	Notice     string // sticky message, e.g. inactivity
	Flash      string
	FlashTicks int
}

var HUD = donburi.NewComponentType[HUDData]()

// NetSessionData gives systems access to the running session.
type NetSessionData struct {
	Loop   *network.SyncLoop
	Client *network.Client // nil when playing offline
}

var NetSession = donburi.NewComponentType[NetSessionData]()
