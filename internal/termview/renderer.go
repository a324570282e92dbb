// Package termview draws RGBA frames into a terminal with half-block cells,
// or a brightness ramp when colour is unavailable.
package termview

import (
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Renderer converts frames to terminal strings. It reuses its scratch image
// and builder between calls and is not safe for concurrent use.
type Renderer struct {
	mode   ColorMode
	scaled *image.RGBA
	sb     strings.Builder
}

// NewRenderer creates a renderer for the current terminal's colour support.
func NewRenderer() *Renderer {
	return NewRendererMode(DetectColorMode())
}

// NewRendererMode creates a renderer with a fixed colour mode.
func NewRendererMode(mode ColorMode) *Renderer {
	return &Renderer{mode: mode}
}

// Mode reports the colour mode in use.
func (r *Renderer) Mode() ColorMode { return r.mode }

// Render scales img to outW x outH cells. In colour modes each cell packs
// two pixel rows using an upper half block.
func (r *Renderer) Render(img *image.RGBA, outW, outH int) string {
	if img == nil || img.Bounds().Empty() || outW <= 0 || outH <= 0 {
		return ""
	}

	pixH := outH
	if r.mode != ColorOff {
		pixH = outH * 2
	}
	src := r.scale(img, outW, pixH)

	r.sb.Reset()
	r.sb.Grow(outW * outH * 24)
	if r.mode == ColorOff {
		r.renderASCII(src, outW, outH)
	} else {
		r.renderHalfBlock(src, outW, outH)
	}
	return r.sb.String()
}

func (r *Renderer) scale(img *image.RGBA, w, h int) *image.RGBA {
	if r.scaled == nil || r.scaled.Rect.Dx() != w || r.scaled.Rect.Dy() != h {
		r.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	draw.ApproxBiLinear.Scale(r.scaled, r.scaled.Rect, img, img.Bounds(), draw.Src, nil)
	return r.scaled
}

func (r *Renderer) renderHalfBlock(src *image.RGBA, outW, outH int) {
	var lastFg, lastBg string
	for row := 0; row < outH; row++ {
		for col := 0; col < outW; col++ {
			top := src.RGBAAt(col, row*2)
			bot := src.RGBAAt(col, row*2+1)

			if fg := colorSeq(r.mode, false, top.R, top.G, top.B); fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bg := colorSeq(r.mode, true, bot.R, bot.G, bot.B); bg != lastBg {
				r.sb.WriteString(bg)
				lastBg = bg
			}
			r.sb.WriteString("▀")
		}
		r.sb.WriteString(ansiReset)
		lastFg, lastBg = "", ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(src *image.RGBA, outW, outH int) {
	for row := 0; row < outH; row++ {
		for col := 0; col < outW; col++ {
			c := src.RGBAAt(col, row)
			r.sb.WriteByte(brightnessChar(luminance(c.R, c.G, c.B)))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// FitCells returns the largest cell grid within termW x termH that keeps the
// frame's aspect ratio, assuming cells twice as tall as they are wide.
func FitCells(termW, termH, frameW, frameH int) (w, h int) {
	if termW <= 0 || termH <= 0 || frameW <= 0 || frameH <= 0 {
		return 0, 0
	}
	aspect := float64(frameW) / float64(frameH)
	// One cell row covers two pixel rows of a square-pixel grid.
	w = termW
	h = int(float64(w)/aspect/2 + 0.5)
	if h > termH {
		h = termH
		w = int(float64(h)*aspect*2 + 0.5)
	}
	return max(w, 4), max(h, 2)
}
