package model

import (
	game_log "nodepulse/internal/log"
)

const InvalidEntityID EntityID = -1

// EntityID is a stable index into the network's entity arena. Pruned slots
// stay nil so IDs held elsewhere (connections, pulses) never shift.
type EntityID int

// Kind is the closed set of entity roles.
type Kind int

const (
	KindSource Kind = iota
	KindProcess
	KindDestination
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindProcess:
		return "process"
	case KindDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Entity is one node of the network. Positions and velocities are in
// surface (pixel) coordinates; all timing fields are simulation-clock
// milliseconds.
type Entity struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Kind   Kind

	// Conns holds outgoing edges only, in insertion order, deduplicated.
	Conns []EntityID

	Opacity       float64
	TargetOpacity float64
	Active        bool
	Hovered       bool
	Dragged       bool

	// PendingWork counts impulses received but not yet forwarded.
	PendingWork int

	PhaseOffset float64 // fixed at creation, desynchronizes the activity cycle
	EmitEvery   float64 // source emission interval
	LastEmit    float64

	// Pulses in flight that this entity emitted. Sole owner while active.
	Pulses []*Pulse
}

type Network struct {
	Entities []*Entity
	logger   *game_log.Logger
}

func NewNetwork(logger *game_log.Logger) *Network {
	return &Network{logger: logger}
}

func (n *Network) Add(e *Entity) EntityID {
	id := EntityID(len(n.Entities))
	n.Entities = append(n.Entities, e)
	n.logger.Debugf("[NET] added %s entity %d at (%.1f, %.1f)", e.Kind, id, e.X, e.Y)
	return id
}

// Entity returns the entity for id, or nil for invalid or pruned IDs.
func (n *Network) Entity(id EntityID) *Entity {
	if id < 0 || int(id) >= len(n.Entities) {
		return nil
	}
	return n.Entities[id]
}

// Alive reports how many arena slots are still occupied.
func (n *Network) Alive() int {
	count := 0
	for _, e := range n.Entities {
		if e != nil {
			count++
		}
	}
	return count
}

// Connect adds a directed edge a→b. Self-loops and duplicate targets are
// silently suppressed; the return value reports whether an edge was added.
func (n *Network) Connect(a, b EntityID) bool {
	if a == b {
		return false
	}
	ea, eb := n.Entity(a), n.Entity(b)
	if ea == nil || eb == nil {
		return false
	}
	for _, c := range ea.Conns {
		if c == b {
			return false
		}
	}
	ea.Conns = append(ea.Conns, b)
	return true
}

// Remove clears the arena slot for id and strips the ID from every
// remaining entity's connection list.
func (n *Network) Remove(id EntityID) {
	e := n.Entity(id)
	if e == nil {
		return
	}
	n.Entities[id] = nil
	for _, other := range n.Entities {
		if other == nil {
			continue
		}
		kept := other.Conns[:0]
		for _, c := range other.Conns {
			if c != id {
				kept = append(kept, c)
			}
		}
		other.Conns = kept
	}
	n.logger.Debugf("[NET] removed %s entity %d", e.Kind, id)
}

// IncomingCounts returns the in-degree per arena slot.
func (n *Network) IncomingCounts() []int {
	counts := make([]int, len(n.Entities))
	for _, e := range n.Entities {
		if e == nil {
			continue
		}
		for _, c := range e.Conns {
			if n.Entity(c) != nil {
				counts[c]++
			}
		}
	}
	return counts
}

// Prune iteratively removes non-source entities with zero incoming
// connections, up to maxPasses passes, stopping early once a pass removes
// nothing. It returns the total number of entities removed.
func (n *Network) Prune(maxPasses int) int {
	removed := 0
	for pass := 0; pass < maxPasses; pass++ {
		counts := n.IncomingCounts()
		passRemoved := 0
		for id, e := range n.Entities {
			if e == nil || e.Kind == KindSource {
				continue
			}
			if counts[id] == 0 {
				n.Remove(EntityID(id))
				passRemoved++
			}
		}
		removed += passRemoved
		if passRemoved == 0 {
			break
		}
	}
	if removed > 0 {
		n.logger.Infof("[NET] pruned %d unreachable entities, %d remain", removed, n.Alive())
	}
	return removed
}

// HitTest returns the first entity in creation order whose padded radius
// contains (x, y), or InvalidEntityID.
func (n *Network) HitTest(x, y float64) EntityID {
	for id, e := range n.Entities {
		if e == nil {
			continue
		}
		dx, dy := x-e.X, y-e.Y
		r := e.Radius * 1.5
		if dx*dx+dy*dy <= r*r {
			return EntityID(id)
		}
	}
	return InvalidEntityID
}
