package network

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/messages"
	"github.com/automoto/airhockey-mp/shared/statevec"
)

// World is the simulation the loop drives.
type World interface {
	StateStore
	Advance(dt float64)
	SetPaddleTarget(p statevec.Paddle, target gamemath.Vec2) (gamemath.Vec2, bool)
	Positions() statevec.Positions
}

// Renderer receives entity positions once per render tick.
type Renderer interface {
	Render(statevec.Positions)
}

type Publisher interface {
	PublishPosition(messages.Position) error
}

// ViewSwitcher is told when the session takes a paddle.
type ViewSwitcher interface {
	SwitchView(Role)
}

// Notifier surfaces an inactivity drop to the user.
type Notifier interface {
	SessionInactive()
}

// Recorder is handed every inbound event with the tick it is applied on.
type Recorder interface {
	Record(tick uint32, ev Inbound) error
}

// Collaborators are the loop's optional outside parts. Nil members are skipped.
type Collaborators struct {
	Renderer  Renderer
	Publisher Publisher
	Views     ViewSwitcher
	Notifier  Notifier
	Recorder  Recorder
}

type LoopConfig struct {
	FixedDt         float64       // seconds per physics step
	RenderInterval  time.Duration // used by Run only
	GripOffset      float64       // pointer to paddle-centre offset
	PublishInterval time.Duration // 0 publishes every accepted move
	InboxSize       int
	LagTolerance    float64
}

func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		FixedDt:        1.0 / 60.0,
		RenderInterval: time.Second / 30,
		GripOffset:     0.1,
		InboxSize:      64,
		LagTolerance:   0.005,
	}
}

type Stats struct {
	Ticks          uint64
	Applied        uint64 // snapshots reconciled
	Malformed      uint64
	DroppedUpdates uint64
	TickFailures   uint64
	Published      uint64
	PublishErrors  uint64
	LagTicks       int // -1 when unknown
	PredictionErr  float64
}

// SyncLoop ties the fixed physics tick, the render tick, local pointer input
// and inbound snapshots together. All methods except Deliver must be called
// from one goroutine.
type SyncLoop struct {
	cfg        LoopConfig
	world      World
	session    *Session
	reconciler *Reconciler
	history    PaddleHistory
	collab     Collaborators
	inbox      *inbox
	now        func() time.Time

	tick  uint32
	stats Stats

	lastSent   messages.Position
	sentAny    bool
	lastSentAt time.Time
	pending    *messages.Position
}

func NewSyncLoop(world World, session *Session, cfg LoopConfig, collab Collaborators) *SyncLoop {
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = DefaultLoopConfig().InboxSize
	}
	return &SyncLoop{
		cfg:        cfg,
		world:      world,
		session:    session,
		reconciler: NewReconciler(world, session),
		collab:     collab,
		inbox:      &inbox{limit: cfg.InboxSize},
		now:        time.Now,
		stats:      Stats{LagTicks: -1},
	}
}

func (l *SyncLoop) Session() *Session { return l.session }
func (l *SyncLoop) Tick() uint32      { return l.tick }

func (l *SyncLoop) Stats() Stats {
	s := l.stats
	s.DroppedUpdates = l.inbox.droppedCount()
	return s
}

// Deliver queues an inbound event for the next fixed tick. It is safe to
// call from any goroutine and can be passed to Client.Subscribe.
func (l *SyncLoop) Deliver(ev Inbound) {
	l.inbox.push(ev)
}

// FixedTick applies queued events and advances the world by one step. A
// panic anywhere in the tick is logged and counted; the next tick runs as
// usual.
func (l *SyncLoop) FixedTick() {
	defer func() {
		if r := recover(); r != nil {
			l.stats.TickFailures++
			log.Printf("[syncloop] tick %d failed: %v", l.tick, r)
		}
	}()

	for _, ev := range l.inbox.drain() {
		l.handleSafely(ev)
	}
	l.flushPending()

	l.world.Advance(l.cfg.FixedDt)
	l.tick++
	l.stats.Ticks++

	if p, ok := l.session.Owned(); ok {
		l.history.Store(l.tick, l.world.State().PaddlePos(p))
	}
}

// RenderTick hands the current positions to the renderer. It never advances
// the simulation.
func (l *SyncLoop) RenderTick() {
	if l.collab.Renderer != nil {
		l.collab.Renderer.Render(l.world.Positions())
	}
}

// PointerMove steers the owned paddle toward a point on the table surface
// and publishes the resulting target. It reports whether the move was
// accepted.
func (l *SyncLoop) PointerMove(hit gamemath.Vec2) bool {
	if !l.session.CanDriveInput() || !hit.Finite() {
		return false
	}
	p, _ := l.session.Owned()

	target, ok := l.world.SetPaddleTarget(p, PointerTarget(p, hit, l.cfg.GripOffset))
	if !ok {
		return false
	}
	l.publish(messages.Position{X: target.X, Y: target.Y})
	return true
}

// PointerTarget converts a surface hit to a paddle target: the grip offset
// is taken off x, and y is offset toward the paddle's own end and kept on
// its half of the centre line.
func PointerTarget(p statevec.Paddle, hit gamemath.Vec2, grip float64) gamemath.Vec2 {
	target := gamemath.Vec2{X: hit.X - grip}
	if p == statevec.Paddle2 {
		target.Y = math.Max(hit.Y+grip, 0)
	} else {
		target.Y = math.Min(hit.Y-grip, 0)
	}
	return target
}

// Run drives FixedTick and RenderTick from tickers until ctx is done.
func (l *SyncLoop) Run(ctx context.Context) error {
	if !(l.cfg.FixedDt > 0) || l.cfg.RenderInterval <= 0 {
		return fmt.Errorf("invalid loop timing: fixed=%v render=%v", l.cfg.FixedDt, l.cfg.RenderInterval)
	}

	fixed := time.NewTicker(time.Duration(l.cfg.FixedDt * float64(time.Second)))
	defer fixed.Stop()
	render := time.NewTicker(l.cfg.RenderInterval)
	defer render.Stop()

	log.Printf("[syncloop] running: fixed=%v render=%v", time.Duration(l.cfg.FixedDt*float64(time.Second)), l.cfg.RenderInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[syncloop] stopped after %d ticks", l.stats.Ticks)
			return nil
		case <-fixed.C:
			l.FixedTick()
		case <-render.C:
			l.RenderTick()
		}
	}
}

func (l *SyncLoop) handleSafely(ev Inbound) {
	defer func() {
		if r := recover(); r != nil {
			l.stats.TickFailures++
			log.Printf("[syncloop] %s event failed: %v", ev.Kind, r)
		}
	}()

	if l.collab.Recorder != nil {
		if err := l.collab.Recorder.Record(l.tick, ev); err != nil {
			log.Printf("[syncloop] record: %v", err)
		}
	}

	switch ev.Kind {
	case InboundActive:
		if !l.session.Assign(ev.Player) {
			return
		}
		l.history.Reset()
		if l.collab.Views != nil {
			l.collab.Views.SwitchView(l.session.Role())
		}
	case InboundInactive:
		if !l.session.MarkInactive() {
			return
		}
		l.pending = nil
		if l.collab.Notifier != nil {
			l.collab.Notifier.SessionInactive()
		}
	case InboundUpdate:
		remote, err := statevec.Decode(ev.State)
		if err != nil {
			l.stats.Malformed++
			log.Printf("[syncloop] discarding snapshot: %v", err)
			return
		}
		l.observe(remote)
		l.reconciler.Reconcile(remote)
		l.stats.Applied++
	default:
		log.Printf("[syncloop] unknown inbound kind %d", ev.Kind)
	}
}

// observe compares the server's view of our paddle with recent predictions.
func (l *SyncLoop) observe(remote statevec.StateVector) {
	p, ok := l.session.Owned()
	if !ok {
		return
	}
	theirs := remote.PaddlePos(p)
	l.stats.PredictionErr = l.world.State().PaddlePos(p).Sub(theirs).Len()
	if lag, ok := l.history.EstimateLag(theirs, l.cfg.LagTolerance); ok {
		l.stats.LagTicks = int(lag)
	} else {
		l.stats.LagTicks = -1
	}
}

func (l *SyncLoop) publish(pos messages.Position) {
	if l.collab.Publisher == nil {
		return
	}
	if l.sentAny && pos == l.lastSent {
		l.pending = nil
		return
	}
	if l.cfg.PublishInterval > 0 && l.sentAny && l.now().Sub(l.lastSentAt) < l.cfg.PublishInterval {
		l.pending = &pos
		return
	}
	l.send(pos)
}

func (l *SyncLoop) flushPending() {
	if l.pending == nil {
		return
	}
	if !l.session.CanDriveInput() {
		l.pending = nil
		return
	}
	if l.now().Sub(l.lastSentAt) < l.cfg.PublishInterval {
		return
	}
	l.send(*l.pending)
}

func (l *SyncLoop) send(pos messages.Position) {
	l.pending = nil
	if err := l.collab.Publisher.PublishPosition(pos); err != nil {
		l.stats.PublishErrors++
		log.Printf("[syncloop] publish failed: %v", err)
		return
	}
	l.lastSent = pos
	l.sentAny = true
	l.lastSentAt = l.now()
	l.stats.Published++
}
