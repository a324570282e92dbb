package scene

import "image/color"

// Surface is a fixed-size RGBA drawing target with canvas-style primitives.
// Width and Height must not change while a Renderer is bound to it.
type Surface interface {
	Width() int
	Height() int

	FillRect(x, y, w, h float64, p Paint)
	Fill(path *Path, p Paint)
	Stroke(path *Path, p Paint, lineWidth float64)

	// ReadPixels copies the surface into dst (len W*H*4, row-major RGBA).
	ReadPixels(dst []byte)
	// WritePixels replaces the surface contents with src.
	WritePixels(src []byte)
}

// Paint is a fill or stroke source: Solid, *LinearGradient or *RadialGradient.
type Paint interface {
	paint()
}

// Solid is a flat non-premultiplied color.
type Solid color.NRGBA

func (Solid) paint() {}

// RGBA builds a Solid from 8-bit channels and a 0..1 alpha, like rgba() in CSS.
func RGBA(r, g, b uint8, a float64) Solid {
	return Solid{R: r, G: g, B: b, A: uint8(clamp01(a)*255 + 0.5)}
}

// Stop is a gradient color stop at Offset in [0,1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient interpolates along the line (X0,Y0)-(X1,Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

func (*LinearGradient) paint() {}

// RadialGradient interpolates between circle (X0,Y0,R0) and circle (X1,Y1,R1).
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
}

func (*RadialGradient) paint() {}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NRGBA returns the color as a color.NRGBA.
func (s Solid) NRGBA() color.NRGBA { return color.NRGBA(s) }
