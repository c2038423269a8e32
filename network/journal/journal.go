// Package journal records inbound server events to a msgpack stream so a
// session can be replayed offline.
package journal

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/automoto/airhockey-mp/network"
	"github.com/vmihailenco/msgpack/v5"
)

const formatVersion = 1

var (
	ErrUnknownKind = errors.New("unknown frame kind")
	ErrBadHeader   = errors.New("bad journal header")
)

type Header struct {
	Version   int       `msgpack:"v"`
	Session   string    `msgpack:"session"`
	Table     string    `msgpack:"table"`
	StartedAt time.Time `msgpack:"started"`
}

// Frame is one inbound event and the tick it was applied on.
type Frame struct {
	Tick   uint32    `msgpack:"t"`
	Kind   string    `msgpack:"k"`
	Player string    `msgpack:"p,omitempty"`
	State  []float64 `msgpack:"s,omitempty"`
}

func FrameOf(tick uint32, ev network.Inbound) Frame {
	return Frame{Tick: tick, Kind: ev.Kind.String(), Player: ev.Player, State: ev.State}
}

// Inbound converts the frame back to the event the loop consumes.
func (f Frame) Inbound() (network.Inbound, error) {
	var kind network.InboundKind
	switch f.Kind {
	case network.InboundActive.String():
		kind = network.InboundActive
	case network.InboundInactive.String():
		kind = network.InboundInactive
	case network.InboundUpdate.String():
		kind = network.InboundUpdate
	default:
		return network.Inbound{}, fmt.Errorf("%w: %q", ErrUnknownKind, f.Kind)
	}
	return network.Inbound{Kind: kind, Player: f.Player, State: f.State}, nil
}

// Writer appends frames after a header. It satisfies network.Recorder.
type Writer struct {
	mu     sync.Mutex
	enc    *msgpack.Encoder
	frames int
}

func NewWriter(w io.Writer, h Header) (*Writer, error) {
	h.Version = formatVersion
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Writer{enc: enc}, nil
}

func (w *Writer) Record(tick uint32, ev network.Inbound) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f := FrameOf(tick, ev)
	if err := w.enc.Encode(&f); err != nil {
		return fmt.Errorf("write frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

func (w *Writer) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(r)
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

func (r *Reader) Header() Header { return r.header }

// Next returns the following frame, or io.EOF at the end of the stream.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, io.EOF
		}
		return f, fmt.Errorf("read frame: %w", err)
	}
	return f, nil
}

// Replayer hands recorded frames back to a loop as its tick count catches up
// with the tick each frame was recorded on.
type Replayer struct {
	r       *Reader
	next    *Frame
	done    bool
	skipped int
}

func NewReplayer(r *Reader) *Replayer {
	return &Replayer{r: r}
}

// Pump delivers every frame recorded at or before tick. It returns true once
// the recording is exhausted.
func (p *Replayer) Pump(tick uint32, deliver network.Handler) (bool, error) {
	for !p.done {
		if p.next == nil {
			f, err := p.r.Next()
			if errors.Is(err, io.EOF) {
				p.done = true
				break
			}
			if err != nil {
				return false, err
			}
			p.next = &f
		}
		if p.next.Tick > tick {
			return false, nil
		}

		ev, err := p.next.Inbound()
		p.next = nil
		if err != nil {
			p.skipped++
			continue
		}
		deliver(ev)
	}
	return true, nil
}

// Skipped is the number of frames with an unknown kind.
func (p *Replayer) Skipped() int { return p.skipped }
