package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/airhockey-mp/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateInactive
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateInactive:
		return "inactive"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages the WebSocket connection to the table server and fans
// inbound events out to subscribers.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	// dispatchMu orders deliveries against the replay of held events.
	dispatchMu sync.Mutex
	held       *inbox

	state     ClientState
	lastError error
	address   string
	conn      *websocket.Conn

	subs    []subscriber
	nextSub uint64
}

type subscriber struct {
	id uint64
	h  Handler
}

// Subscription detaches its handler when released.
type Subscription struct {
	once    sync.Once
	release func()
}

// Release stops further deliveries. Safe to call more than once.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(s.release)
}

func NewClient() *Client {
	return &Client{
		state: StateDisconnected,
		held:  &inbox{limit: heldLimit},
	}
}

// heldLimit bounds the events kept while nobody is subscribed.
const heldLimit = 64

// Subscribe registers h for every inbound event until the returned
// subscription is released or the client disconnects. Events that arrived
// while there were no subscribers are handed to h first, in order.
func (c *Client) Subscribe(h Handler) *Subscription {
	c.dispatchMu.Lock()
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	first := len(c.subs) == 0
	c.subs = append(c.subs, subscriber{id: id, h: h})
	c.mu.Unlock()

	if first {
		for _, ev := range c.held.drain() {
			h(ev)
		}
	}
	c.dispatchMu.Unlock()

	return &Subscription{release: func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}}
}

func (c *Client) dispatch(ev Inbound) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	c.mu.RLock()
	handlers := make([]Handler, len(c.subs))
	for i, s := range c.subs {
		handlers[i] = s.h
	}
	c.mu.RUnlock()

	if len(handlers) == 0 {
		c.held.push(ev)
		return
	}
	for _, h := range handlers {
		h(ev)
	}
}

// Connect dials the server in a background goroutine.
func (c *Client) Connect(address string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.address = address
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Printf("[client] connected to %s", address)
		c.mu.Lock()
		if c.state == StateConnecting {
			c.state = StateConnected
		}
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.Active) {
		log.Printf("[client] active: player=%q", msg.Player)
		c.dispatch(Inbound{Kind: InboundActive, Player: msg.Player})
	})

	router.On(func(_ *router.NetworkClient, _ messages.Inactive) {
		log.Println("[client] inactive")
		c.mu.Lock()
		c.state = StateInactive
		c.mu.Unlock()
		c.dispatch(Inbound{Kind: InboundInactive})
	})

	router.On(func(_ *router.NetworkClient, msg messages.Update) {
		c.dispatch(Inbound{Kind: InboundUpdate, State: msg.State})
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError && c.state != StateInactive {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// Disconnect closes the connection, releases every subscription and clears
// the router's handlers.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.subs = nil
	c.mu.Unlock()
	c.held.drain()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// PublishPosition sends the owned paddle's target to the server.
func (c *Client) PublishPosition(pos messages.Position) error {
	return c.SendMessage(pos)
}

func (c *Client) setError(err error) {
	log.Printf("[client] %v", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
