package scenes

import (
	"log"

	"github.com/automoto/airhockey-mp/assets"
	"github.com/automoto/airhockey-mp/network"
	"github.com/automoto/airhockey-mp/shared/messages"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/automoto/airhockey-mp/systems"
	"github.com/automoto/airhockey-mp/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/airhockey-mp/config"
)

// TableScene runs the sync loop for one session. A nil client plays a local
// practice table with the session assigned paddle 1. The scene subscribes to
// the client when built, so build it before dialing.
type TableScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	world        *tablephysics.World
	loop         *network.SyncLoop
	sub          *network.Subscription
}

func NewTableScene(sc SceneChanger, client *network.Client) *TableScene {
	ts := &TableScene{
		sceneChanger: sc,
		netClient:    client,
	}
	ts.configure()
	return ts
}

func (ts *TableScene) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ts.leave("")
		return
	}

	if ts.netClient != nil {
		switch ts.netClient.State() {
		case network.StateDisconnected:
			ts.leave("Disconnected from table")
			return
		case network.StateError:
			msg := "Connection lost"
			if err := ts.netClient.LastError(); err != nil {
				msg = err.Error()
			}
			ts.leave(msg)
			return
		}
	}

	ts.loop.FixedTick()
	systems.RecordEvents(ts.ecsWorld, ts.world.Events())
	ts.ecsWorld.Update()
}

func (ts *TableScene) Draw(screen *ebiten.Image) {
	ts.loop.RenderTick()
	ts.ecsWorld.Draw(screen)
}

func (ts *TableScene) configure() {
	table, err := assets.LoadTable(cfg.Table.Name)
	if err != nil {
		log.Printf("[table] %v, using built-in table", err)
		table = cfg.Table.Fallback
	}

	ts.ecsWorld = ecs.NewECS(donburi.NewWorld())
	ts.world = tablephysics.NewWorld(table, cfg.Physics)

	factory.CreateTable(ts.ecsWorld, table)
	factory.CreateCamera(ts.ecsWorld, table)
	factory.CreatePuck(ts.ecsWorld, table)
	factory.CreatePaddles(ts.ecsWorld, table)

	collab := network.Collaborators{
		Renderer: systems.NewBodySync(ts.ecsWorld),
		Views:    systems.NewViewSwitch(ts.ecsWorld),
		Notifier: systems.NewHUDNotifier(ts.ecsWorld),
	}
	if ts.netClient != nil {
		collab.Publisher = ts.netClient
	}
	ts.loop = network.NewSyncLoop(ts.world, network.NewSession(), cfg.Net.Loop, collab)
	factory.CreateHUD(ts.ecsWorld, ts.loop, ts.netClient)

	if ts.netClient != nil {
		ts.sub = ts.netClient.Subscribe(ts.loop.Deliver)
	} else {
		ts.loop.Deliver(network.Inbound{Kind: network.InboundActive, Player: messages.PlayerOne})
	}

	ts.ecsWorld.AddSystem(systems.UpdatePointer)
	ts.ecsWorld.AddSystem(systems.UpdateCamera)
	ts.ecsWorld.AddSystem(systems.UpdateHUD)
	ts.ecsWorld.AddRenderer(cfg.Default, systems.DrawTable)
	ts.ecsWorld.AddRenderer(cfg.Default, systems.DrawBodies)
	ts.ecsWorld.AddRenderer(cfg.Overlay, systems.DrawHUD)
}

// Close releases the subscription and drops the connection.
func (ts *TableScene) Close() {
	if ts.sub != nil {
		ts.sub.Release()
		ts.sub = nil
	}
	if ts.netClient != nil {
		ts.netClient.Disconnect()
		ts.netClient = nil
	}
}

func (ts *TableScene) leave(status string) {
	ts.Close()
	ts.sceneChanger.ChangeScene(NewConnectScene(ts.sceneChanger, status))
}
