package scenes

import (
	"log"
	"sync"

	cfg "github.com/automoto/airhockey-mp/config"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/systems"
	"github.com/automoto/airhockey-mp/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ConnectScene collects a server address and waits for the connection
// before handing the client to a TableScene.
type ConnectScene struct {
	sceneChanger SceneChanger
	connectUI    *ui.ConnectUI
	netClient    *network.Client
	pending      *TableScene
	once         sync.Once
	status       string
	practice     bool
}

// NewConnectScene opens the connect screen. status is shown on entry, e.g.
// why the previous session ended.
func NewConnectScene(sc SceneChanger, status string) *ConnectScene {
	return &ConnectScene{
		sceneChanger: sc,
		status:       status,
	}
}

func (s *ConnectScene) Update() {
	s.once.Do(s.configure)

	s.connectUI.Update()

	if s.practice {
		s.sceneChanger.ChangeScene(NewTableScene(s.sceneChanger, nil))
		return
	}

	if s.netClient == nil {
		return
	}
	switch s.netClient.State() {
	case network.StateConnected, network.StateInactive:
		// an early inactive still shows the table, with the banner up
		table := s.pending
		systems.RememberAddress(s.netClient.Address())
		s.netClient = nil
		s.pending = nil
		s.sceneChanger.ChangeScene(table)

	case network.StateError:
		errMsg := "Connection failed"
		if err := s.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		s.connectUI.SetStatus(errMsg)
		s.connectUI.SetConnecting(false)
		s.abandon()

	case network.StateConnecting:
		s.connectUI.SetStatus("Connecting...")

	case network.StateDisconnected:
		s.connectUI.SetStatus("Disconnected")
		s.connectUI.SetConnecting(false)
		s.abandon()
	}
}

func (s *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(cfg.View.Background)

	if s.connectUI == nil {
		return
	}
	s.connectUI.UI.Draw(screen)
}

func (s *ConnectScene) configure() {
	s.connectUI = ui.NewConnectUI(
		cfg.Net.Address,
		func(address string) { s.onConnect(address) },
		func() { s.practice = true },
	)
	s.connectUI.SetStatus(s.status)
}

func (s *ConnectScene) onConnect(address string) {
	s.abandon()

	log.Printf("[connect] dialing %s", address)
	s.connectUI.SetStatus("Connecting...")
	s.connectUI.SetConnecting(true)

	// The table subscribes before the dial so a role sent on connect is seen.
	s.netClient = network.NewClient()
	s.pending = NewTableScene(s.sceneChanger, s.netClient)
	s.netClient.Connect(address)
}

// abandon drops a connection attempt that never reached the table.
func (s *ConnectScene) abandon() {
	if s.pending != nil {
		s.pending.Close()
		s.pending = nil
	} else if s.netClient != nil {
		s.netClient.Disconnect()
	}
	s.netClient = nil
}
