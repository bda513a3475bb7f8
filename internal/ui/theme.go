package ui

import (
	"image/color"

	"nodepulse/core/model"
)

var (
	colBG       = color.RGBA{10, 14, 22, 255}
	colGridLine = color.RGBA{24, 32, 44, 255}

	colEdge  = color.NRGBA{90, 140, 190, 255}
	colInset = color.NRGBA{12, 16, 24, 255}
	colPulse = color.NRGBA{240, 248, 255, 255}
	colHalo  = color.NRGBA{255, 255, 255, 120}

	colSource      = color.NRGBA{80, 220, 130, 255}
	colProcess     = color.NRGBA{80, 180, 255, 255}
	colDestination = color.NRGBA{255, 170, 70, 255}

	colHeadline = color.NRGBA{225, 232, 240, 255}
	colSubtitle = color.NRGBA{140, 152, 168, 255}
)

func kindColor(k model.Kind) color.NRGBA {
	switch k {
	case model.KindSource:
		return colSource
	case model.KindProcess:
		return colProcess
	case model.KindDestination:
		return colDestination
	default:
		return colPulse
	}
}

// fade returns c with its alpha scaled by a in [0,1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(float64(c.A) * a)
	return c
}
