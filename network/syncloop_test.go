package network

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/messages"
	"github.com/automoto/airhockey-mp/shared/statevec"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
)

type fakeRenderer struct{ frames []statevec.Positions }

func (r *fakeRenderer) Render(p statevec.Positions) { r.frames = append(r.frames, p) }

type fakePublisher struct {
	sent []messages.Position
	err  error
}

func (p *fakePublisher) PublishPosition(pos messages.Position) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, pos)
	return nil
}

type fakeViews struct{ roles []Role }

func (v *fakeViews) SwitchView(r Role) { v.roles = append(v.roles, r) }

type fakeNotifier struct{ calls int }

func (n *fakeNotifier) SessionInactive() { n.calls++ }

// panickyWorld panics on Advance while armed.
type panickyWorld struct {
	*tablephysics.World
	armed bool
}

func (w *panickyWorld) Advance(dt float64) {
	if w.armed {
		panic("boom")
	}
	w.World.Advance(dt)
}

type harness struct {
	world    *tablephysics.World
	loop     *SyncLoop
	render   *fakeRenderer
	pub      *fakePublisher
	views    *fakeViews
	notifier *fakeNotifier
}

func newHarness(cfg LoopConfig) *harness {
	h := &harness{
		world:    tablephysics.NewWorld(tablephysics.StandardTable(), tablephysics.DefaultConfig()),
		render:   &fakeRenderer{},
		pub:      &fakePublisher{},
		views:    &fakeViews{},
		notifier: &fakeNotifier{},
	}
	h.loop = NewSyncLoop(h.world, NewSession(), cfg, Collaborators{
		Renderer:  h.render,
		Publisher: h.pub,
		Views:     h.views,
		Notifier:  h.notifier,
	})
	return h
}

func (h *harness) assign(player string) {
	h.loop.Deliver(Inbound{Kind: InboundActive, Player: player})
	h.loop.FixedTick()
}

func TestSnapshotAppliedOnNextFixedTick(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	remote := statevec.StateVector{0.62, 0.3, 0, 0, 0, 0, 0.4, -0.5, 0.8, 0.6}

	h.loop.Deliver(Inbound{Kind: InboundUpdate, State: remote.Encode()})
	if h.world.State() == remote {
		t.Fatal("snapshot applied before the tick boundary")
	}

	h.loop.FixedTick()

	if got := h.world.State(); got != remote {
		t.Errorf("spectator should take the snapshot: got %v, want %v", got, remote)
	}
	if h.loop.Stats().Applied != 1 {
		t.Errorf("expected 1 applied snapshot, got %d", h.loop.Stats().Applied)
	}
}

func TestMalformedSnapshotLeavesStateUnchanged(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	before := h.world.State()

	h.loop.Deliver(Inbound{Kind: InboundUpdate, State: make([]float64, 9)})
	h.loop.Deliver(Inbound{Kind: InboundUpdate, State: make([]float64, 11)})
	h.loop.FixedTick()

	if got := h.world.State(); got != before {
		t.Errorf("malformed snapshot changed state: %v -> %v", before, got)
	}
	stats := h.loop.Stats()
	if stats.Malformed != 2 || stats.Applied != 0 {
		t.Errorf("expected 2 malformed / 0 applied, got %d / %d", stats.Malformed, stats.Applied)
	}
	if stats.Ticks != 1 {
		t.Errorf("tick should still run, got %d ticks", stats.Ticks)
	}
}

func TestRenderTickDoesNotAdvance(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	moving := h.world.State()
	moving[tablephysics.PuckVX], moving[tablephysics.PuckVY] = 1, 1
	h.world.ApplyRemote(moving)

	for i := 0; i < 5; i++ {
		h.loop.RenderTick()
	}

	if h.world.State() != moving {
		t.Error("render tick advanced the simulation")
	}
	if len(h.render.frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(h.render.frames))
	}
	if h.render.frames[0] != h.world.Positions() {
		t.Errorf("frame %+v does not match world %+v", h.render.frames[0], h.world.Positions())
	}
}

func TestPointerMoveRequiresRole(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	if h.loop.PointerMove(gamemath.Vec2{X: 0.5, Y: -0.3}) {
		t.Error("spectator pointer move should be rejected")
	}
	if len(h.pub.sent) != 0 {
		t.Errorf("spectator published %v", h.pub.sent)
	}
}

func TestPointerMoveDrivesOwnedPaddle(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	h.assign("p1")

	if len(h.views.roles) != 1 || h.views.roles[0] != RolePaddle1 {
		t.Fatalf("expected a view switch to p1, got %v", h.views.roles)
	}

	hit := gamemath.Vec2{X: 0.5, Y: -0.3}
	if !h.loop.PointerMove(hit) {
		t.Fatal("owner pointer move rejected")
	}
	h.loop.PointerMove(hit)

	want := PointerTarget(statevec.Paddle1, hit, DefaultLoopConfig().GripOffset)
	if len(h.pub.sent) != 1 {
		t.Fatalf("expected one publish for two identical moves, got %v", h.pub.sent)
	}
	if h.pub.sent[0] != (messages.Position{X: want.X, Y: want.Y}) {
		t.Errorf("published %+v, want %+v", h.pub.sent[0], want)
	}

	for i := 0; i < 60; i++ {
		h.loop.FixedTick()
	}
	if got := h.world.State().PaddlePos(statevec.Paddle1); got.Sub(want).Len() > 1e-9 {
		t.Errorf("paddle 1 at %+v, want %+v", got, want)
	}
}

func TestPointerTarget(t *testing.T) {
	p1 := PointerTarget(statevec.Paddle1, gamemath.Vec2{X: 0.6, Y: 0.4}, 0.1)
	if p1.Y != 0 {
		t.Errorf("paddle 1 target must stay on its half, got %+v", p1)
	}
	p2 := PointerTarget(statevec.Paddle2, gamemath.Vec2{X: 0.6, Y: -0.4}, 0.1)
	if p2.Y != 0 {
		t.Errorf("paddle 2 target must stay on its half, got %+v", p2)
	}
	p2 = PointerTarget(statevec.Paddle2, gamemath.Vec2{X: 0.6, Y: 0.4}, 0.1)
	if p2.Y <= 0.4 || p2.X >= 0.6 {
		t.Errorf("paddle 2 grip offset not applied: %+v", p2)
	}
}

func TestDuplicateActiveIgnored(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	h.loop.Deliver(Inbound{Kind: InboundActive, Player: "p1"})
	h.loop.Deliver(Inbound{Kind: InboundActive, Player: "p2"})
	h.loop.Deliver(Inbound{Kind: InboundActive, Player: "bogus"})
	h.loop.FixedTick()

	if h.loop.Session().Role() != RolePaddle1 {
		t.Errorf("expected p1, got %s", h.loop.Session().Role())
	}
	if len(h.views.roles) != 1 {
		t.Errorf("expected one view switch, got %v", h.views.roles)
	}
}

func TestInactiveStopsInput(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	h.assign("p2")
	h.loop.PointerMove(gamemath.Vec2{X: 0.5, Y: 0.5})

	h.loop.Deliver(Inbound{Kind: InboundInactive})
	h.loop.Deliver(Inbound{Kind: InboundInactive})
	h.loop.FixedTick()

	if h.notifier.calls != 1 {
		t.Errorf("expected one inactivity notice, got %d", h.notifier.calls)
	}
	if h.loop.PointerMove(gamemath.Vec2{X: 0.3, Y: 0.3}) {
		t.Error("pointer move accepted after inactivity")
	}
	if len(h.pub.sent) != 1 {
		t.Errorf("expected only the pre-inactivity publish, got %v", h.pub.sent)
	}
}

func TestTickPanicIsRecovered(t *testing.T) {
	world := &panickyWorld{
		World: tablephysics.NewWorld(tablephysics.StandardTable(), tablephysics.DefaultConfig()),
		armed: true,
	}
	loop := NewSyncLoop(world, NewSession(), DefaultLoopConfig(), Collaborators{})

	loop.FixedTick()
	if loop.Stats().TickFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", loop.Stats().TickFailures)
	}

	world.armed = false
	loop.FixedTick()
	if loop.Stats().Ticks != 1 || loop.Tick() != 1 {
		t.Errorf("loop should keep ticking after a failure, got %d ticks", loop.Stats().Ticks)
	}
}

func TestPublishIntervalCoalesces(t *testing.T) {
	cfg := DefaultLoopConfig()
	cfg.PublishInterval = 100 * time.Millisecond
	h := newHarness(cfg)

	clock := time.Unix(1000, 0)
	h.loop.now = func() time.Time { return clock }
	h.assign("p1")

	h.loop.PointerMove(gamemath.Vec2{X: 0.5, Y: -0.3})
	clock = clock.Add(10 * time.Millisecond)
	h.loop.PointerMove(gamemath.Vec2{X: 0.6, Y: -0.3})
	clock = clock.Add(10 * time.Millisecond)
	h.loop.PointerMove(gamemath.Vec2{X: 0.7, Y: -0.3})

	clock = clock.Add(30 * time.Millisecond)
	h.loop.FixedTick()
	if len(h.pub.sent) != 1 {
		t.Fatalf("burst should be held back, got %v", h.pub.sent)
	}

	clock = clock.Add(100 * time.Millisecond)
	h.loop.FixedTick()
	if len(h.pub.sent) != 2 {
		t.Fatalf("expected the latest target to be flushed, got %v", h.pub.sent)
	}
	last := PointerTarget(statevec.Paddle1, gamemath.Vec2{X: 0.7, Y: -0.3}, cfg.GripOffset)
	if h.pub.sent[1] != (messages.Position{X: last.X, Y: last.Y}) {
		t.Errorf("flushed %+v, want %+v", h.pub.sent[1], last)
	}
}

func TestPublishErrorIsCounted(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	h.pub.err = errors.New("socket closed")
	h.assign("p1")

	if !h.loop.PointerMove(gamemath.Vec2{X: 0.5, Y: -0.3}) {
		t.Fatal("a publish failure must not reject the local move")
	}
	if h.loop.Stats().PublishErrors != 1 {
		t.Errorf("expected 1 publish error, got %d", h.loop.Stats().PublishErrors)
	}
}

func TestEndToEndOwnedPaddleKept(t *testing.T) {
	h := newHarness(DefaultLoopConfig())
	h.assign("p1")

	local := h.world.State()
	local[statevec.P1X], local[statevec.P1Y] = 0.30, -0.10
	h.world.ApplyRemote(local)

	remote := statevec.StateVector{0.62, 1.25, 0, 0, 0, 0, 0.10, 0.00, 0.55, 0.40}
	h.loop.Deliver(Inbound{Kind: InboundUpdate, State: remote.Encode()})
	h.loop.FixedTick()

	got := h.world.State()
	if p1 := got.PaddlePos(statevec.Paddle1); p1 != (gamemath.Vec2{X: 0.30, Y: -0.10}) {
		t.Errorf("paddle 1 should stay at (0.30, -0.10), got %+v", p1)
	}
	if puck := got.Positions().Puck; puck != (gamemath.Vec2{X: 0.62, Y: 1.25}) {
		t.Errorf("puck should come from the snapshot, got %+v", puck)
	}
	if p2 := got.PaddlePos(statevec.Paddle2); p2 != (gamemath.Vec2{X: 0.55, Y: 0.40}) {
		t.Errorf("paddle 2 should come from the snapshot, got %+v", p2)
	}
}

func TestInboxDropsOldestUpdateWhenFull(t *testing.T) {
	q := &inbox{limit: 2}
	q.push(Inbound{Kind: InboundUpdate, State: []float64{1}})
	q.push(Inbound{Kind: InboundUpdate, State: []float64{2}})
	q.push(Inbound{Kind: InboundActive, Player: "p1"})

	got := q.drain()
	if len(got) != 2 || got[0].State[0] != 2 || got[1].Kind != InboundActive {
		t.Errorf("unexpected queue contents %+v", got)
	}
	if q.droppedCount() != 1 {
		t.Errorf("expected 1 drop, got %d", q.droppedCount())
	}
	if len(q.drain()) != 0 {
		t.Error("drain should empty the queue")
	}
}

func TestInboxCollapsesRepeatedLifecycleEvents(t *testing.T) {
	q := &inbox{limit: 2}
	for range 1000 {
		q.push(Inbound{Kind: InboundInactive})
	}
	q.push(Inbound{Kind: InboundActive, Player: "p1"})
	q.push(Inbound{Kind: InboundActive, Player: "p2"})

	got := q.drain()
	if len(got) != 2 || got[0].Kind != InboundInactive || got[1].Player != "p1" {
		t.Fatalf("unexpected queue contents %+v", got)
	}
}

func TestInboxStaysBoundedWithLifecycleQueued(t *testing.T) {
	q := &inbox{limit: 2}
	q.push(Inbound{Kind: InboundActive, Player: "p1"})
	q.push(Inbound{Kind: InboundInactive})
	for i := range 50 {
		q.push(Inbound{Kind: InboundUpdate, State: []float64{float64(i)}})
	}

	if got := q.drain(); len(got) != 2 {
		t.Fatalf("queue grew to %d: %+v", len(got), got)
	}
	if q.droppedCount() != 50 {
		t.Errorf("expected 50 drops, got %d", q.droppedCount())
	}
}
