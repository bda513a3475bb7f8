package engine

import (
	"math/rand"

	"nodepulse/core/layout"
	"nodepulse/core/model"
	"nodepulse/core/sim"
	"nodepulse/internal/config"
	game_log "nodepulse/internal/log"
)

// Engine owns the network, the layout engine and the pulse simulation,
// and exposes the single Step(elapsedMs) the render loop (or a headless
// driver) feeds with elapsed time. It holds no clock of its own, so tests
// can run it on synthetic time.
type Engine struct {
	Net    *model.Network
	Layout *layout.Engine
	Sim    *sim.Sim

	W, H     float64
	Obstacle layout.Rect

	cfg         config.Layout
	sinceLayout float64
	logger      *game_log.Logger

	// Passes counts completed layout passes, strong and gentle.
	Passes int
}

// New builds the network for the given surface size and runs the initial
// strong layout pass.
func New(cfg config.Config, w, h float64, rng *rand.Rand, logger *game_log.Logger) *Engine {
	net := model.Build(cfg.Network, w, h, rng, logger)
	e := &Engine{
		Net:    net,
		Layout: layout.NewEngine(cfg.Layout, logger),
		Sim:    sim.New(net, cfg.Sim, rng, logger),
		cfg:    cfg.Layout,
		logger: logger,
	}
	e.Resize(w, h)
	return e
}

// Resize updates the surface dimensions, recomputes the reserved
// foreground rectangle, clamps stragglers inside the new bounds and runs
// a strong layout pass.
func (e *Engine) Resize(w, h float64) {
	e.W, e.H = w, h
	e.Obstacle = contentRect(w, h)
	e.Layout.ClampAll(e.Net, w, h)
	e.Layout.Apply(e.Net, w, h, e.Obstacle, e.cfg.StrongStrength)
	e.Passes++
	e.sinceLayout = 0
	e.logger.Infof("[ENGINE] resized to %.0fx%.0f, strong layout pass applied", w, h)
}

// Step advances the whole simulation by elapsedMs: a gentle layout pass
// on its wall-clock cadence, then entity/pulse updates, then position
// integration.
func (e *Engine) Step(elapsedMs float64) {
	e.sinceLayout += elapsedMs
	if e.sinceLayout >= e.cfg.IntervalMs {
		e.sinceLayout = 0
		e.Layout.Apply(e.Net, e.W, e.H, e.Obstacle, e.cfg.GentleStrength)
		e.Passes++
	}
	e.Sim.Step(elapsedMs)
	e.Layout.Integrate(e.Net, e.W, e.H, elapsedMs)
}

// RunFrames steps the engine through n synthetic frames at the reference
// interval, as fast as the host allows. Used by the headless mode; the
// windowed mode is driven by the display loop instead.
func (e *Engine) RunFrames(n int) {
	for i := 0; i < n; i++ {
		e.Step(layout.ReferenceFrameMs)
	}
}

// contentRect is the reserved foreground region: a centered block where
// the page headline sits, kept clear of entities.
func contentRect(w, h float64) layout.Rect {
	rw, rh := w*0.5, h*0.22
	return layout.Rect{
		MinX: (w - rw) / 2,
		MinY: (h - rh) / 2,
		MaxX: (w + rw) / 2,
		MaxY: (h + rh) / 2,
	}
}
