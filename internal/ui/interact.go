package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"nodepulse/core/model"
	game_log "nodepulse/internal/log"
)

// Interactor maps pointer and touch input to hit-testing, exclusive drag
// state and hover feedback. Touch input stands in for the mouse: the
// first active touch is the pointer, its disappearance the release.
type Interactor struct {
	net    *model.Network
	logger *game_log.Logger

	sel        model.EntityID
	offX, offY float64
	prevDown   bool
}

func NewInteractor(net *model.Network, logger *game_log.Logger) *Interactor {
	return &Interactor{net: net, logger: logger, sel: model.InvalidEntityID}
}

// Dragging returns the entity currently being dragged, if any.
func (it *Interactor) Dragging() model.EntityID { return it.sel }

func (it *Interactor) pointer() (x, y float64, down, touch bool) {
	if ids := touchIDs(); len(ids) > 0 {
		tx, ty := touchPosition(ids[0])
		return float64(tx), float64(ty), true, true
	}
	mx, my := cursorPosition()
	return float64(mx), float64(my), isMouseButtonPressed(ebiten.MouseButtonLeft), false
}

// Update processes one frame of input against the surface bounds. It must
// leave entity state consistent before returning: the next simulation
// step reads positions and drag flags directly.
func (it *Interactor) Update(w, h float64) {
	x, y, down, touch := it.pointer()

	if down && !it.prevDown {
		if id := it.net.HitTest(x, y); id != model.InvalidEntityID {
			e := it.net.Entity(id)
			it.sel = id
			it.offX, it.offY = x-e.X, y-e.Y
			e.Dragged = true
			it.logger.Debugf("[INPUT] drag start: entity %d at (%.1f, %.1f)", id, x, y)
		}
	}

	if down && it.sel != model.InvalidEntityID {
		if e := it.net.Entity(it.sel); e != nil {
			e.X = clamp(x-it.offX, e.Radius, w-e.Radius)
			e.Y = clamp(y-it.offY, e.Radius, h-e.Radius)
		} else {
			it.sel = model.InvalidEntityID
		}
	}

	if !down && it.prevDown && it.sel != model.InvalidEntityID {
		if e := it.net.Entity(it.sel); e != nil {
			e.Dragged = false
		}
		it.logger.Debugf("[INPUT] drag end: entity %d", it.sel)
		it.sel = model.InvalidEntityID
	}

	// Hover is mouse-only feedback, recomputed while not dragging.
	if !down && !touch {
		hit := it.net.HitTest(x, y)
		for id, e := range it.net.Entities {
			if e != nil {
				e.Hovered = model.EntityID(id) == hit
			}
		}
	}

	it.prevDown = down
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
