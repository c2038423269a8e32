package network

import "github.com/automoto/airhockey-mp/shared/gamemath"

const historySize = 64

// PaddleSample is the predicted position of the owned paddle after a tick.
type PaddleSample struct {
	Tick uint32
	Pos  gamemath.Vec2
}

// PaddleHistory is a ring buffer of recent owned-paddle predictions. It is
// used to estimate how far behind the server's view of our paddle is.
type PaddleHistory struct {
	samples [historySize]PaddleSample
	filled  [historySize]bool
	latest  uint32
	stored  bool
}

func (h *PaddleHistory) Store(tick uint32, pos gamemath.Vec2) {
	idx := tick % historySize
	h.samples[idx] = PaddleSample{Tick: tick, Pos: pos}
	h.filled[idx] = true
	if !h.stored || tick > h.latest {
		h.latest = tick
	}
	h.stored = true
}

// Get returns the sample for tick, or false if it was never stored or has
// been overwritten.
func (h *PaddleHistory) Get(tick uint32) (gamemath.Vec2, bool) {
	idx := tick % historySize
	if !h.filled[idx] || h.samples[idx].Tick != tick {
		return gamemath.Vec2{}, false
	}
	return h.samples[idx].Pos, true
}

func (h *PaddleHistory) Latest() (PaddleSample, bool) {
	if !h.stored {
		return PaddleSample{}, false
	}
	return h.samples[h.latest%historySize], true
}

func (h *PaddleHistory) Reset() {
	*h = PaddleHistory{}
}

// EstimateLag walks back from the latest sample and returns how many ticks
// ago we last predicted a position within tolerance of remote.
func (h *PaddleHistory) EstimateLag(remote gamemath.Vec2, tolerance float64) (uint32, bool) {
	if !h.stored {
		return 0, false
	}
	for age := uint32(0); age < historySize && age <= h.latest; age++ {
		pos, ok := h.Get(h.latest - age)
		if !ok {
			continue
		}
		if pos.Sub(remote).Len() <= tolerance {
			return age, true
		}
	}
	return 0, false
}

// PredictionError is the distance between what we predicted at tick and
// what the server reports.
func (h *PaddleHistory) PredictionError(tick uint32, remote gamemath.Vec2) float64 {
	pos, ok := h.Get(tick)
	if !ok {
		return 0
	}
	return pos.Sub(remote).Len()
}
