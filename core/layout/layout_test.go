package layout

import (
	"io"
	"math"
	"testing"

	"nodepulse/core/model"
	"nodepulse/internal/config"
	game_log "nodepulse/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

func newTestEngine() *Engine {
	return NewEngine(config.Default().Layout, testLogger)
}

func addAt(n *model.Network, x, y float64, k model.Kind) model.EntityID {
	return n.Add(&model.Entity{X: x, Y: y, Radius: 5, Kind: k, Opacity: 1})
}

func TestZeroStrengthPassIsNoOp(t *testing.T) {
	n := model.NewNetwork(testLogger)
	a := addAt(n, 100, 100, model.KindSource)
	b := addAt(n, 110, 100, model.KindProcess)
	n.Connect(a, b)
	n.Entity(a).VX, n.Entity(a).VY = 3, -2
	n.Entity(b).VX, n.Entity(b).VY = -1, 4

	newTestEngine().Apply(n, 800, 600, Rect{}, 0)

	if n.Entity(a).VX != 3 || n.Entity(a).VY != -2 || n.Entity(b).VX != -1 || n.Entity(b).VY != 4 {
		t.Fatalf("zero-strength pass mutated velocities")
	}
}

func TestPassNeverWritesDraggedVelocity(t *testing.T) {
	n := model.NewNetwork(testLogger)
	a := addAt(n, 100, 100, model.KindSource)
	b := addAt(n, 120, 100, model.KindProcess)
	n.Connect(a, b)
	dragged := n.Entity(b)
	dragged.Dragged = true
	dragged.VX, dragged.VY = 7, 7

	newTestEngine().Apply(n, 800, 600, Rect{}, 1.5)

	if dragged.VX != 7 || dragged.VY != 7 {
		t.Fatalf("layout wrote velocity of dragged entity: (%v, %v)", dragged.VX, dragged.VY)
	}
	if n.Entity(a).VX == 0 && n.Entity(a).VY == 0 {
		t.Fatalf("expected forces on the free entity")
	}
}

func TestRepulsionSeparatesClosePair(t *testing.T) {
	n := model.NewNetwork(testLogger)
	a := addAt(n, 400, 300, model.KindProcess)
	b := addAt(n, 410, 300, model.KindProcess)

	newTestEngine().Apply(n, 800, 600, Rect{}, 1)

	if n.Entity(a).VX >= 0 {
		t.Fatalf("left entity should be pushed left, vx=%v", n.Entity(a).VX)
	}
	if n.Entity(b).VX <= 0 {
		t.Fatalf("right entity should be pushed right, vx=%v", n.Entity(b).VX)
	}
}

func TestAttractionPullsConnectedPairTogether(t *testing.T) {
	cfg := config.Default().Layout
	n := model.NewNetwork(testLogger)
	// Farther apart than the repulsion cutoff so only the spring acts.
	far := cfg.Spacing*cfg.CutoffFactor + 100
	a := addAt(n, 400-far/2, 300, model.KindSource)
	b := addAt(n, 400+far/2, 300, model.KindProcess)
	n.Connect(a, b)

	NewEngine(cfg, testLogger).Apply(n, 2000, 600, Rect{}, 1)

	if n.Entity(a).VX <= 0 {
		t.Fatalf("left endpoint should be pulled right, vx=%v", n.Entity(a).VX)
	}
	if n.Entity(b).VX >= 0 {
		t.Fatalf("right endpoint should be pulled left, vx=%v", n.Entity(b).VX)
	}
}

func TestObstaclePushesEntityOut(t *testing.T) {
	n := model.NewNetwork(testLogger)
	// Just inside the left edge of the obstacle.
	id := addAt(n, 310, 300, model.KindProcess)
	obstacle := Rect{MinX: 300, MinY: 250, MaxX: 500, MaxY: 350}

	newTestEngine().Apply(n, 800, 600, obstacle, 1)

	if n.Entity(id).VX >= 0 {
		t.Fatalf("entity inside obstacle should be pushed toward nearest edge, vx=%v", n.Entity(id).VX)
	}
}

func TestBoundaryPushesInward(t *testing.T) {
	n := model.NewNetwork(testLogger)
	id := addAt(n, 5, 300, model.KindProcess)

	newTestEngine().Apply(n, 800, 600, Rect{}, 1)

	if n.Entity(id).VX <= 0 {
		t.Fatalf("entity near left edge should be pushed right, vx=%v", n.Entity(id).VX)
	}
}

func TestIntegrateContainsAnyVelocity(t *testing.T) {
	e := newTestEngine()
	n := model.NewNetwork(testLogger)
	id := addAt(n, 400, 300, model.KindProcess)
	ent := n.Entity(id)
	ent.VX, ent.VY = 5000, -5000

	w, h := 800.0, 600.0
	for i := 0; i < 240; i++ {
		e.Integrate(n, w, h, ReferenceFrameMs)
	}

	margin := ent.Radius * 2
	if ent.X < margin || ent.X > w-margin || ent.Y < margin || ent.Y > h-margin {
		t.Fatalf("entity escaped bounds: (%v, %v)", ent.X, ent.Y)
	}
}

func TestIntegrateBouncesOffEdges(t *testing.T) {
	e := newTestEngine()
	n := model.NewNetwork(testLogger)
	id := addAt(n, 12, 300, model.KindProcess)
	ent := n.Entity(id)
	ent.VX = -100

	e.Integrate(n, 800, 600, ReferenceFrameMs)

	if ent.X != ent.Radius*2 {
		t.Fatalf("expected clamp at margin, x=%v", ent.X)
	}
	if ent.VX <= 0 {
		t.Fatalf("expected reflected velocity, vx=%v", ent.VX)
	}
	if math.Abs(ent.VX) >= 100 {
		t.Fatalf("expected reduced bounce, |vx|=%v", math.Abs(ent.VX))
	}
}

func TestIntegrateSkipsDraggedEntities(t *testing.T) {
	e := newTestEngine()
	n := model.NewNetwork(testLogger)
	id := addAt(n, 400, 300, model.KindProcess)
	ent := n.Entity(id)
	ent.Dragged = true
	ent.VX = 50

	e.Integrate(n, 800, 600, ReferenceFrameMs)

	if ent.X != 400 {
		t.Fatalf("dragged entity was integrated to x=%v", ent.X)
	}
	if ent.VX != 50 {
		t.Fatalf("dragged entity velocity was damped to %v", ent.VX)
	}
}

func TestIntegrateAppliesPassiveDamping(t *testing.T) {
	e := newTestEngine()
	n := model.NewNetwork(testLogger)
	id := addAt(n, 400, 300, model.KindProcess)
	ent := n.Entity(id)
	ent.VX = 10

	e.Integrate(n, 800, 600, ReferenceFrameMs)

	if ent.VX >= 10 {
		t.Fatalf("expected damping below initial velocity, vx=%v", ent.VX)
	}
}

func TestClampAllSnapsIntoShrunkSurface(t *testing.T) {
	e := newTestEngine()
	n := model.NewNetwork(testLogger)
	id := addAt(n, 780, 580, model.KindProcess)

	e.ClampAll(n, 400, 300)

	ent := n.Entity(id)
	margin := ent.Radius * 2
	if ent.X > 400-margin || ent.Y > 300-margin {
		t.Fatalf("entity outside shrunk surface: (%v, %v)", ent.X, ent.Y)
	}
}
