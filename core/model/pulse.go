package model

// Pulse is one impulse traveling along a connection. From and To are
// arena indices, never owning references, so a pulse outliving a pruned
// entity degrades to a no-op delivery instead of dangling.
type Pulse struct {
	From     EntityID
	To       EntityID
	Progress float64 // in [0,1) while in flight
	Speed    float64 // progress per reference frame
}

// PulsePool is a bounded free list. Capacity caps how many retired pulses
// are retained for reuse, not how many can be in flight at once.
type PulsePool struct {
	free []*Pulse
	cap  int
}

func NewPulsePool(capacity int) *PulsePool {
	if capacity < 0 {
		capacity = 0
	}
	return &PulsePool{free: make([]*Pulse, 0, capacity), cap: capacity}
}

// Acquire returns a reset pulse, reusing a retired one when available.
// Ownership transfers to the caller (in practice the emitting entity's
// active-pulse list).
func (p *PulsePool) Acquire(from, to EntityID, speed float64) *Pulse {
	var pl *Pulse
	if n := len(p.free); n > 0 {
		pl = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		pl = &Pulse{}
	}
	pl.From = from
	pl.To = to
	pl.Progress = 0
	pl.Speed = speed
	return pl
}

// Release returns a retired pulse to the pool. Pulses beyond capacity are
// dropped for the collector.
func (p *PulsePool) Release(pl *Pulse) {
	if pl == nil || len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, pl)
}

// Free reports how many pulses are currently held for reuse.
func (p *PulsePool) Free() int { return len(p.free) }
