package ui

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"nodepulse/core/engine"
	"nodepulse/core/layout"
	"nodepulse/core/model"
	game_log "nodepulse/internal/log"
)

const (
	frameIntervalMs = layout.ReferenceFrameMs
	maxFrameMs      = 100 // ceiling on a single step after suspensions
	gridStep        = 48
)

// Game is the display-loop shell around the engine: it paces frames,
// feeds elapsed time into the simulation, routes input and draws.
type Game struct {
	eng    *engine.Engine
	inter  *Interactor
	logger *game_log.Logger

	winW, winH int

	now  func() time.Time // injected for tests
	last time.Time

	headline *text.GoTextFace
	subtitle *text.GoTextFace

	showStats bool
}

func New(eng *engine.Engine, logger *game_log.Logger) *Game {
	g := &Game{
		eng:       eng,
		inter:     NewInteractor(eng.Net, logger),
		logger:    logger,
		now:       time.Now,
		showStats: logger.Level() <= game_log.LevelDebug,
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		logger.Errorf("[GAME] load font: %v", err)
		return g
	}
	g.headline = &text.GoTextFace{Source: src, Size: 30}
	g.subtitle = &text.GoTextFace{Source: src, Size: 14}
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	if w != g.winW || h != g.winH {
		g.winW, g.winH = w, h
		g.eng.Resize(float64(w), float64(h))
	}
	return w, h
}

// Update runs at the display tick rate but gates actual simulation steps
// to the target frame interval, passing real elapsed time through so the
// animation speed is independent of the achieved rate.
func (g *Game) Update() error {
	t := g.now()
	if g.last.IsZero() {
		g.last = t
		return nil
	}
	elapsed := float64(t.Sub(g.last).Microseconds()) / 1000
	if elapsed < frameIntervalMs {
		return nil
	}
	g.last = t
	if elapsed > maxFrameMs {
		elapsed = maxFrameMs
	}

	g.inter.Update(g.eng.W, g.eng.H)
	g.eng.Step(elapsed)
	return nil
}

/* ─────────────── drawing ─────────────────────────────────────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)
	g.drawGrid(screen)
	g.drawContent(screen)
	g.drawEdges(screen)
	g.drawEntities(screen)
	g.drawPulses(screen)
	if g.showStats {
		msg := fmt.Sprintf("entities %d  delivered %d  layout passes %d  tps %.0f",
			g.eng.Net.Alive(), g.eng.Sim.Delivered, g.eng.Passes, ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, 8, 8)
	}
}

func (g *Game) drawGrid(dst *ebiten.Image) {
	w, h := float64(g.winW), float64(g.winH)
	for x := 0.0; x <= w; x += gridStep {
		strokeLine(dst, x, 0, x, h, 1, colGridLine)
	}
	for y := 0.0; y <= h; y += gridStep {
		strokeLine(dst, 0, y, w, y, 1, colGridLine)
	}
}

// drawContent renders the reserved foreground block the layout keeps
// entities away from.
func (g *Game) drawContent(dst *ebiten.Image) {
	if g.headline == nil {
		return
	}
	r := g.eng.Obstacle
	cx := (r.MinX + r.MaxX) / 2
	cy := (r.MinY + r.MaxY) / 2

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy-12)
	op.ColorScale.ScaleWithColor(colHeadline)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, "NODE PULSE", g.headline, op)

	op = &text.DrawOptions{}
	op.GeoM.Translate(cx, cy+16)
	op.ColorScale.ScaleWithColor(colSubtitle)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, "a decorative network, pushed and pulled every frame", g.subtitle, op)
}

func (g *Game) drawEdges(dst *ebiten.Image) {
	net := g.eng.Net
	for _, e := range net.Entities {
		if e == nil {
			continue
		}
		for _, id := range e.Conns {
			t := net.Entity(id)
			if t == nil {
				continue
			}
			a := e.Opacity
			if t.Opacity < a {
				a = t.Opacity
			}
			strokeLine(dst, e.X, e.Y, t.X, t.Y, 1, fade(colEdge, a*0.35))
		}
	}
}

func (g *Game) drawEntities(dst *ebiten.Image) {
	for _, e := range g.eng.Net.Entities {
		if e == nil {
			continue
		}
		c := kindColor(e.Kind)
		fillCircle(dst, e.X, e.Y, e.Radius, fade(c, e.Opacity))

		// kind indicator
		switch e.Kind {
		case model.KindSource:
			fillCircle(dst, e.X, e.Y, e.Radius*0.35, fade(colPulse, e.Opacity))
		case model.KindProcess:
			strokeCircle(dst, e.X, e.Y, e.Radius*0.55, 1, fade(colInset, e.Opacity))
		case model.KindDestination:
			s := e.Radius * 0.8
			strokeRect(dst, e.X-s/2, e.Y-s/2, s, s, 1, fade(colInset, e.Opacity))
		}

		if e.Hovered || e.Dragged {
			strokeCircle(dst, e.X, e.Y, e.Radius*1.6, 1, colHalo)
		}
	}
}

func (g *Game) drawPulses(dst *ebiten.Image) {
	net := g.eng.Net
	for _, e := range net.Entities {
		if e == nil {
			continue
		}
		for _, p := range e.Pulses {
			t := net.Entity(p.To)
			if t == nil {
				continue
			}
			px := e.X + (t.X-e.X)*p.Progress
			py := e.Y + (t.Y-e.Y)*p.Progress
			fillCircle(dst, px, py, 2.5, colPulse)
		}
	}
}
