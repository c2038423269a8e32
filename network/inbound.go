package network

import (
	"log"
	"sync"
)

type InboundKind int

const (
	InboundActive InboundKind = iota
	InboundInactive
	InboundUpdate
)

func (k InboundKind) String() string {
	switch k {
	case InboundActive:
		return "active"
	case InboundInactive:
		return "inactive"
	case InboundUpdate:
		return "update"
	}
	return "unknown"
}

// Inbound is one event received from the server. Player is set for
// InboundActive, State for InboundUpdate.
type Inbound struct {
	Kind   InboundKind
	Player string
	State  []float64
}

// Handler receives inbound events. It may be called from any goroutine.
type Handler func(Inbound)

// inbox queues inbound events until the next tick. When full it drops the
// oldest queued update. A lifecycle event whose kind is already queued is
// dropped, so the queue never holds more than max(limit, 2) events.
type inbox struct {
	mu      sync.Mutex
	events  []Inbound
	limit   int
	dropped uint64
}

func (q *inbox) push(ev Inbound) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if ev.Kind != InboundUpdate {
		for _, old := range q.events {
			if old.Kind == ev.Kind {
				log.Printf("[syncloop] %s already queued, dropping %+v", ev.Kind, ev)
				return
			}
		}
	}

	if len(q.events) >= q.limit {
		evicted := false
		for i, old := range q.events {
			if old.Kind == InboundUpdate {
				q.events = append(q.events[:i], q.events[i+1:]...)
				evicted = true
				break
			}
		}
		if !evicted && ev.Kind == InboundUpdate {
			// only lifecycle events are queued
			q.noteDrop()
			return
		}
		if evicted {
			q.noteDrop()
		}
	}
	q.events = append(q.events, ev)
}

func (q *inbox) noteDrop() {
	q.dropped++
	if q.dropped%100 == 1 {
		log.Printf("[syncloop] inbox full, dropped %d stale updates", q.dropped)
	}
}

func (q *inbox) drain() []Inbound {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func (q *inbox) droppedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
