package network

import "testing"

func TestClientDispatchToSubscribers(t *testing.T) {
	c := NewClient()
	var a, b []Inbound
	subA := c.Subscribe(func(ev Inbound) { a = append(a, ev) })
	c.Subscribe(func(ev Inbound) { b = append(b, ev) })

	c.dispatch(Inbound{Kind: InboundActive, Player: "p1"})
	subA.Release()
	subA.Release()
	c.dispatch(Inbound{Kind: InboundInactive})

	if len(a) != 1 || a[0].Player != "p1" {
		t.Errorf("released subscriber got %+v", a)
	}
	if len(b) != 2 || b[1].Kind != InboundInactive {
		t.Errorf("live subscriber got %+v", b)
	}
}

func TestClientSendWithoutConnection(t *testing.T) {
	c := NewClient()
	if err := c.SendMessage(struct{}{}); err != ErrNotConnected {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
	if c.State() != StateDisconnected {
		t.Errorf("expected disconnected, got %s", c.State())
	}
}

func TestClientHoldsEventsUntilFirstSubscriber(t *testing.T) {
	c := NewClient()
	// The server can assign a role before the table is listening.
	c.dispatch(Inbound{Kind: InboundActive, Player: "p1"})
	c.dispatch(Inbound{Kind: InboundUpdate, State: make([]float64, 10)})

	h := newHarness(DefaultLoopConfig())
	c.Subscribe(h.loop.Deliver)
	h.loop.FixedTick()

	if got := h.loop.Session().Role(); got != RolePaddle1 {
		t.Fatalf("role after late subscribe: %s", got)
	}
	if !h.loop.Session().CanDriveInput() {
		t.Fatal("owned paddle should accept input")
	}
	if h.loop.Stats().Applied != 1 {
		t.Errorf("held update not applied, stats %+v", h.loop.Stats())
	}

	var second []Inbound
	c.Subscribe(func(ev Inbound) { second = append(second, ev) })
	if len(second) != 0 {
		t.Errorf("held events replayed twice: %+v", second)
	}
}

func TestClientDisconnectDiscardsHeldEvents(t *testing.T) {
	c := NewClient()
	c.dispatch(Inbound{Kind: InboundActive, Player: "p2"})
	c.Disconnect()

	var got []Inbound
	c.Subscribe(func(ev Inbound) { got = append(got, ev) })
	if len(got) != 0 {
		t.Errorf("events from a closed connection leaked: %+v", got)
	}
}
