package ui

import (
	"math/rand"
	"testing"
	"time"

	"nodepulse/core/engine"
	"nodepulse/internal/config"
)

func newTestGame() (*Game, *engine.Engine) {
	eng := engine.New(config.Default(), 800, 600, rand.New(rand.NewSource(3)), testLogger)
	g := New(eng, testLogger)
	return g, eng
}

func TestUpdateGatesOnFrameInterval(t *testing.T) {
	in := &fakeInput{}
	defer in.install()()
	g, eng := newTestGame()

	now := time.Unix(0, 0)
	g.now = func() time.Time { return now }

	g.Update() // primes the frame clock
	if eng.Sim.Clock() != 0 {
		t.Fatalf("first update should not step the simulation")
	}

	now = now.Add(20 * time.Millisecond)
	g.Update()
	after := eng.Sim.Clock()
	if after == 0 {
		t.Fatalf("update past the frame interval did not step")
	}

	now = now.Add(5 * time.Millisecond) // under the 1000/60 gate
	g.Update()
	if eng.Sim.Clock() != after {
		t.Fatalf("sub-interval update stepped the simulation")
	}
}

func TestUpdatePassesElapsedTimeThrough(t *testing.T) {
	in := &fakeInput{}
	defer in.install()()
	g, eng := newTestGame()

	now := time.Unix(0, 0)
	g.now = func() time.Time { return now }
	g.Update()

	now = now.Add(33 * time.Millisecond)
	g.Update()

	if got := eng.Sim.Clock(); got != 33 {
		t.Fatalf("sim clock advanced by %v ms, want 33", got)
	}
}

func TestUpdateCapsRunawayFrames(t *testing.T) {
	in := &fakeInput{}
	defer in.install()()
	g, eng := newTestGame()

	now := time.Unix(0, 0)
	g.now = func() time.Time { return now }
	g.Update()

	now = now.Add(10 * time.Second) // e.g. window was suspended
	g.Update()

	if got := eng.Sim.Clock(); got != maxFrameMs {
		t.Fatalf("sim clock advanced by %v ms, want cap %v", got, float64(maxFrameMs))
	}
}

func TestLayoutResizeReappliesStrongPass(t *testing.T) {
	g, eng := newTestGame()
	passes := eng.Passes

	g.Layout(800, 600)
	if eng.Passes != passes+1 {
		t.Fatalf("first layout should size the engine")
	}
	g.Layout(800, 600) // unchanged: no extra pass
	if eng.Passes != passes+1 {
		t.Fatalf("unchanged layout re-ran the strong pass")
	}
	g.Layout(400, 300)
	if eng.Passes != passes+2 {
		t.Fatalf("resize did not run a strong pass")
	}
	for id, en := range eng.Net.Entities {
		if en == nil {
			continue
		}
		margin := en.Radius * 2
		if en.X < margin || en.X > 400-margin || en.Y < margin || en.Y > 300-margin {
			t.Fatalf("entity %d outside shrunk surface: (%v, %v)", id, en.X, en.Y)
		}
	}
}
