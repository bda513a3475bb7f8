package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw primitives are variables so tests can override them to capture
// draw calls without a graphics context.

var strokeLine = func(dst *ebiten.Image, x1, y1, x2, y2 float64, width float32, c color.Color) {
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), width, c, true)
}

var fillCircle = func(dst *ebiten.Image, x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), c, true)
}

var strokeCircle = func(dst *ebiten.Image, x, y, r float64, width float32, c color.Color) {
	vector.StrokeCircle(dst, float32(x), float32(y), float32(r), width, c, true)
}

var strokeRect = func(dst *ebiten.Image, x, y, w, h float64, width float32, c color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), width, c, true)
}
