package layout

import (
	"math"

	"nodepulse/core/model"
	"nodepulse/internal/config"
	game_log "nodepulse/internal/log"
)

// ReferenceFrameMs is the frame interval all speed constants are tuned
// against. Elapsed time is normalized to it so the animation runs at the
// same apparent rate regardless of the actual frame rate.
const ReferenceFrameMs = 1000.0 / 60.0

// Rect is an axis-aligned region in surface coordinates, used for the
// reserved foreground area entities are pushed away from.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

func (r Rect) pad(p float64) Rect {
	return Rect{MinX: r.MinX - p, MinY: r.MinY - p, MaxX: r.MaxX + p, MaxY: r.MaxY + p}
}

func (r Rect) contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Engine runs force-directed layout passes over a network. A pass only
// writes velocities; position integration is a separate per-frame step.
type Engine struct {
	cfg    config.Layout
	logger *game_log.Logger
}

func NewEngine(cfg config.Layout, logger *game_log.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

type vec struct{ x, y float64 }

// Apply runs one layout pass at the given strength, which scales both the
// force magnitudes and the iteration count. Zero or negative strength is a
// strict no-op. Dragged entities never have their velocity written.
func (e *Engine) Apply(net *model.Network, w, h float64, obstacle Rect, strength float64) {
	if strength <= 0 {
		return
	}
	cfg := e.cfg

	prev := make([]vec, len(net.Entities))
	for id, en := range net.Entities {
		if en == nil || en.Dragged {
			continue
		}
		prev[id] = vec{en.VX, en.VY}
		en.VX, en.VY = 0, 0
	}

	iters := int(math.Ceil(float64(cfg.Iterations) * strength))
	cutoff := cfg.Spacing * cfg.CutoffFactor
	temp := cfg.MaxStep * strength

	for it := 0; it < iters; it++ {
		e.repulse(net, cutoff, strength)
		e.attract(net, strength)
		for _, en := range net.Entities {
			if en == nil || en.Dragged {
				continue
			}
			e.avoidObstacle(en, obstacle, strength)
			e.containBoundary(en, w, h, strength)
			clampMagnitude(&en.VX, &en.VY, temp)
		}
		temp *= cfg.Cooling
	}

	for id, en := range net.Entities {
		if en == nil || en.Dragged {
			continue
		}
		en.VX = cfg.Blend*en.VX + (1-cfg.Blend)*prev[id].x
		en.VY = cfg.Blend*en.VY + (1-cfg.Blend)*prev[id].y
	}
	e.logger.Debugf("[LAYOUT] pass done: strength=%.2f iters=%d entities=%d", strength, iters, net.Alive())
}

// repulse applies inverse-square repulsion between all pairs within the
// cutoff distance. Coincident entities fall back to a distance of 1 so the
// normalization never divides by zero.
func (e *Engine) repulse(net *model.Network, cutoff, strength float64) {
	ents := net.Entities
	for i := 0; i < len(ents); i++ {
		a := ents[i]
		if a == nil {
			continue
		}
		for j := i + 1; j < len(ents); j++ {
			b := ents[j]
			if b == nil {
				continue
			}
			dx, dy := b.X-a.X, b.Y-a.Y
			d := math.Hypot(dx, dy)
			if d < 1 {
				d = 1
			}
			if d > cutoff {
				continue
			}
			f := strength * e.cfg.Repulsion * (e.cfg.Spacing * e.cfg.Spacing) / (d * d)
			ux, uy := dx/d, dy/d
			if !a.Dragged {
				a.VX -= ux * f
				a.VY -= uy * f
			}
			if !b.Dragged {
				b.VX += ux * f
				b.VY += uy * f
			}
		}
	}
}

// attract applies a spring force along every connection, proportional to
// distance, pulling both endpoints together.
func (e *Engine) attract(net *model.Network, strength float64) {
	for _, a := range net.Entities {
		if a == nil {
			continue
		}
		for _, id := range a.Conns {
			b := net.Entity(id)
			if b == nil {
				continue
			}
			dx, dy := b.X-a.X, b.Y-a.Y
			d := math.Hypot(dx, dy)
			if d < 1 {
				d = 1
			}
			f := strength * e.cfg.Attraction * d
			ux, uy := dx/d, dy/d
			if !a.Dragged {
				a.VX += ux * f
				a.VY += uy * f
			}
			if !b.Dragged {
				b.VX -= ux * f
				b.VY -= uy * f
			}
		}
	}
}

// avoidObstacle pushes entities out of the padded reserved rectangle, and
// applies a gradient that decays to zero within ObstacleRange outside it.
func (e *Engine) avoidObstacle(en *model.Entity, obstacle Rect, strength float64) {
	if obstacle.Empty() {
		return
	}
	r := obstacle.pad(e.cfg.ObstaclePad)
	if r.contains(en.X, en.Y) {
		// Inside: push along the outward normal of the nearest edge.
		left := en.X - r.MinX
		right := r.MaxX - en.X
		top := en.Y - r.MinY
		bottom := r.MaxY - en.Y
		f := strength * e.cfg.Obstacle
		switch minOf(left, right, top, bottom) {
		case left:
			en.VX -= f
		case right:
			en.VX += f
		case top:
			en.VY -= f
		case bottom:
			en.VY += f
		}
		return
	}
	// Near field: force from the closest point on the rectangle, fading
	// out at ObstacleRange.
	cx := clampF(en.X, r.MinX, r.MaxX)
	cy := clampF(en.Y, r.MinY, r.MaxY)
	dx, dy := en.X-cx, en.Y-cy
	d := math.Hypot(dx, dy)
	if d < 1 {
		d = 1
	}
	if d >= e.cfg.ObstacleRange {
		return
	}
	f := strength * e.cfg.Obstacle * (1 - d/e.cfg.ObstacleRange)
	en.VX += dx / d * f
	en.VY += dy / d * f
}

// containBoundary pushes entities inward near each surface edge, with a
// quadratic ramp so correction sharpens close to the edge.
func (e *Engine) containBoundary(en *model.Entity, w, h, strength float64) {
	pad := e.cfg.BoundaryPad
	f := strength * e.cfg.Boundary
	if t := (pad - en.X) / pad; t > 0 {
		en.VX += f * t * t
	}
	if t := (en.X - (w - pad)) / pad; t > 0 {
		en.VX -= f * t * t
	}
	if t := (pad - en.Y) / pad; t > 0 {
		en.VY += f * t * t
	}
	if t := (en.Y - (h - pad)) / pad; t > 0 {
		en.VY -= f * t * t
	}
}

// Integrate advances positions from velocities. It runs every frame, is
// scaled by elapsed time relative to the reference frame, hard-clamps
// positions inside the surface with a reduced-velocity bounce, and applies
// passive damping so residual motion dies out between passes. Dragged
// entities are positioned directly by the interaction layer and skipped.
func (e *Engine) Integrate(net *model.Network, w, h, elapsedMs float64) {
	dt := elapsedMs / ReferenceFrameMs
	step := e.cfg.Speed * dt
	for _, en := range net.Entities {
		if en == nil || en.Dragged {
			continue
		}
		en.X += en.VX * step
		en.Y += en.VY * step

		margin := en.Radius * 2
		if en.X < margin {
			en.X = margin
			en.VX = -en.VX * e.cfg.Bounce
		} else if en.X > w-margin {
			en.X = w - margin
			en.VX = -en.VX * e.cfg.Bounce
		}
		if en.Y < margin {
			en.Y = margin
			en.VY = -en.VY * e.cfg.Bounce
		} else if en.Y > h-margin {
			en.Y = h - margin
			en.VY = -en.VY * e.cfg.Bounce
		}

		en.VX *= e.cfg.Damping
		en.VY *= e.cfg.Damping
	}
}

// ClampAll snaps every entity inside the surface bounds without touching
// velocities. Used after a resize shrinks the surface.
func (e *Engine) ClampAll(net *model.Network, w, h float64) {
	for _, en := range net.Entities {
		if en == nil {
			continue
		}
		margin := en.Radius * 2
		en.X = clampF(en.X, margin, w-margin)
		en.Y = clampF(en.Y, margin, h-margin)
	}
}

func clampMagnitude(vx, vy *float64, max float64) {
	m := math.Hypot(*vx, *vy)
	if m > max && m > 0 {
		s := max / m
		*vx *= s
		*vy *= s
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minOf(vals ...float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
