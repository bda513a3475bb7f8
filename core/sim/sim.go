package sim

import (
	"math"
	"math/rand"

	"nodepulse/core/layout"
	"nodepulse/core/model"
	"nodepulse/internal/config"
	game_log "nodepulse/internal/log"
)

// Sim drives the per-entity animation state machine and the pulses
// traveling between entities. It is pure with respect to time: callers
// feed elapsed milliseconds into Step and the internal clock accumulates.
type Sim struct {
	net    *model.Network
	pool   *model.PulsePool
	cfg    config.Sim
	rng    *rand.Rand
	logger *game_log.Logger

	// chance is the probability source for emission decisions. A field so
	// tests can pin it, like the scheduler's injected clock.
	chance func() float64

	clock float64 // ms since start

	Emitted   int
	Delivered int
}

func New(net *model.Network, cfg config.Sim, rng *rand.Rand, logger *game_log.Logger) *Sim {
	s := &Sim{
		net:    net,
		pool:   model.NewPulsePool(cfg.PoolSize),
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		chance: rng.Float64,
	}
	for _, e := range net.Entities {
		if e == nil {
			continue
		}
		e.PhaseOffset = rng.Float64() * cfg.CycleMs
		e.EmitEvery = cfg.EmitMinMs + rng.Float64()*(cfg.EmitMaxMs-cfg.EmitMinMs)
	}
	return s
}

func (s *Sim) Pool() *model.PulsePool { return s.pool }

// Clock returns the accumulated simulation time in milliseconds.
func (s *Sim) Clock() float64 { return s.clock }

// Step advances every entity's animation state and all in-flight pulses
// by elapsedMs of wall-clock time.
func (s *Sim) Step(elapsedMs float64) {
	s.clock += elapsedMs
	dt := elapsedMs / layout.ReferenceFrameMs

	for id, e := range s.net.Entities {
		if e == nil {
			continue
		}
		s.updateOpacity(e, dt)

		if e.Kind == model.KindSource && e.Active && s.clock-e.LastEmit > e.EmitEvery {
			e.LastEmit = s.clock
			s.Emit(model.EntityID(id))
		}
		if e.Kind == model.KindProcess && e.PendingWork > 0 && s.chance() < s.cfg.ProcessEmitChance {
			s.Emit(model.EntityID(id))
		}

		s.advancePulses(e, dt)
	}
}

// updateOpacity relaxes opacity toward the target picked by the activity
// cycle. Hover and drag force full visibility regardless of phase.
func (s *Sim) updateOpacity(e *model.Entity, dt float64) {
	phase := math.Mod(s.clock+e.PhaseOffset, s.cfg.CycleMs) / s.cfg.CycleMs
	target := s.cfg.DormantOpacity
	if phase < s.cfg.ActiveFraction || e.Hovered || e.Dragged {
		target = 1
	}
	e.TargetOpacity = target

	ease := s.cfg.OpacityEase * dt
	if ease > 1 {
		ease = 1
	}
	e.Opacity += (target - e.Opacity) * ease
	e.Active = e.Opacity > s.cfg.ActiveThreshold
}

// Emit attempts one impulse from the entity's outgoing connections. A
// fixed skip chance adds burstiness; the target must currently be visible
// enough to receive. Pending work, when present, is consumed.
func (s *Sim) Emit(id model.EntityID) bool {
	e := s.net.Entity(id)
	if e == nil || len(e.Conns) == 0 {
		return false
	}
	if s.chance() < s.cfg.SkipChance {
		return false
	}
	targetID := e.Conns[s.rng.Intn(len(e.Conns))]
	target := s.net.Entity(targetID)
	if target == nil || target.Opacity < s.cfg.VisibleThreshold {
		return false
	}
	speed := s.cfg.MinPulseSpeed + s.rng.Float64()*(s.cfg.MaxPulseSpeed-s.cfg.MinPulseSpeed)
	e.Pulses = append(e.Pulses, s.pool.Acquire(id, targetID, speed))
	if e.PendingWork > 0 {
		e.PendingWork--
	}
	s.Emitted++
	s.logger.Debugf("[SIM] entity %d (%s) emitted pulse to %d", id, e.Kind, targetID)
	return true
}

// advancePulses moves the entity's pulses forward and delivers any that
// cross 1. Delivery happens within the same step; completed pulses return
// to the pool.
func (s *Sim) advancePulses(e *model.Entity, dt float64) {
	kept := e.Pulses[:0]
	for _, p := range e.Pulses {
		p.Progress += p.Speed * dt
		if p.Progress < 1 {
			kept = append(kept, p)
			continue
		}
		s.deliver(p)
		s.pool.Release(p)
	}
	// Zero dropped tail slots so the pool stays the only holder.
	for i := len(kept); i < len(e.Pulses); i++ {
		e.Pulses[i] = nil
	}
	e.Pulses = kept
}

// deliver completes a pulse: the target gains pending work and becomes
// active immediately, opacity snapped rather than relaxed. A process
// target may forward straight away, chaining pulses in the same step.
func (s *Sim) deliver(p *model.Pulse) {
	target := s.net.Entity(p.To)
	if target == nil {
		return
	}
	target.PendingWork++
	target.Opacity = 1
	target.TargetOpacity = 1
	target.Active = true
	s.Delivered++
	s.logger.Debugf("[SIM] pulse delivered %d -> %d, pending=%d", p.From, p.To, target.PendingWork)

	if target.Kind == model.KindProcess && s.chance() < s.cfg.ForwardChance {
		s.Emit(p.To)
	}
}
