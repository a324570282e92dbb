package scene

import (
	"image/color"
	"math"
)

const (
	groundNodeCount      = 30
	groundHorizontalRows = 10
	groundPhaseSteps     = 120
)

var (
	backgroundPaint = RGBA(29, 20, 73, 1)

	skyGradientStops = []Stop{
		{Offset: 0, Color: color.NRGBA{R: 0x24, G: 0x3C, B: 0x4B, A: 0xFF}},
		{Offset: 0.25, Color: color.NRGBA{R: 0x3C, G: 0x7A, B: 0x8D, A: 0xFF}},
		{Offset: 0.5, Color: color.NRGBA{R: 0x6C, G: 0xB9, B: 0xB7, A: 0xFF}},
		{Offset: 0.75, Color: color.NRGBA{R: 0x9B, G: 0xC2, B: 0xB8, A: 0xFF}},
		{Offset: 1, Color: color.NRGBA{R: 0xD8, G: 0xE3, B: 0xC8, A: 0xFF}},
	}

	sunGlowStops = []Stop{
		{Offset: 0, Color: color.NRGBA{R: 255, G: 94, B: 77, A: 150}},
		{Offset: 0.6, Color: color.NRGBA{R: 255, G: 120, B: 90, A: 70}},
		{Offset: 1, Color: color.NRGBA{R: 255, G: 120, B: 90, A: 0}},
	}
	sunDiscStops = []Stop{
		{Offset: 0, Color: color.NRGBA{R: 244, G: 209, B: 107, A: 255}},
		{Offset: 1, Color: color.NRGBA{R: 255, G: 94, B: 77, A: 255}},
	}

	// Sun bands between the horizontal cuts, as clockwise angles in units of
	// pi measured on the right half of the disc (0 is due east, 0.5 due south).
	sunBands = [4][2]float64{
		{-0.5, 0.05},
		{0.08, 0.18},
		{0.23, 0.30},
		{0.38, 0.5},
	}

	mountainFill   = RGBA(255, 255, 255, 0.5)
	mountainStroke = RGBA(34, 138, 255, 0.5)

	groundLine   = RGBA(255, 56, 180, 0.85)
	horizonGlow  = RGBA(255, 150, 220, 1)
	groundWidth  = 1.5
	horizonWidth = 2.0
)

// horizon is the y coordinate separating sky layers from the ground.
func (r *Renderer) horizon() float64 { return r.height * 5 / 8 }

func (r *Renderer) drawBackground(gradient bool) {
	r.surface.FillRect(0, 0, r.width, r.height, backgroundPaint)
	if gradient {
		r.surface.FillRect(0, 0, r.width, r.height, &LinearGradient{
			X1: 0, Y1: r.height,
			Stops: skyGradientStops,
		})
	}
}

// sunPercent is the loudest bin mapped to [0.5, 1].
func sunPercent(buf []byte) float64 {
	maxPercent := 0.5
	for _, v := range buf {
		if p := 0.5 + 0.5*float64(v)/255; p > maxPercent {
			maxPercent = p
		}
	}
	return maxPercent
}

// sunRadius is the glow radius; the disc is three quarters of it.
func (r *Renderer) sunRadius(buf []byte) float64 {
	return r.scales.Sun * r.height / 6 * sunPercent(buf)
}

func (r *Renderer) drawSun(buf []byte) {
	radius := r.sunRadius(buf)
	if !(radius > 0) {
		return
	}
	cx, cy := r.width/2, r.height/3

	r.surface.Fill(Circle(cx, cy, radius), &RadialGradient{
		X0: cx, Y0: cy, R0: 0,
		X1: cx, Y1: cy, R1: radius,
		Stops: sunGlowStops,
	})

	disc := radius * 0.75
	paint := &LinearGradient{
		X0: cx, Y0: cy - disc,
		X1: cx, Y1: cy + disc,
		Stops: sunDiscStops,
	}
	for _, band := range sunBands {
		a0, a1 := band[0]*math.Pi, band[1]*math.Pi
		r.path.Reset()
		r.path.Arc(cx, cy, disc, a0, a1)
		r.path.Arc(cx, cy, disc, math.Pi-a1, math.Pi-a0)
		r.path.Close()
		r.surface.Fill(&r.path, paint)
	}
}

// mountainPeak is the height above the horizon for one bin.
func (r *Renderer) mountainPeak(v byte) float64 {
	return r.scales.Mountain * r.height * 2 / 8 * float64(v) / 255
}

// buildMountains traces a stepped silhouette: bins in order across the left
// half, then mirrored across the right half, closed along the horizon.
func (r *Renderer) buildMountains(buf []byte, p *Path) {
	p.Reset()
	horizon := r.horizon()
	n := len(buf)
	p.MoveTo(0, horizon)
	if n > 0 {
		step := r.width / 2 / float64(n)
		for i := 0; i < n; i++ {
			x := float64(i) * step
			y := horizon - r.mountainPeak(buf[i])
			p.LineTo(x, y)
			p.LineTo(x+step, y)
		}
		for i := n - 1; i >= 0; i-- {
			x := r.width - float64(i+1)*step
			y := horizon - r.mountainPeak(buf[i])
			p.LineTo(x, y)
			p.LineTo(x+step, y)
		}
	}
	p.LineTo(r.width, horizon)
	p.Close()
}

func (r *Renderer) drawMountains(buf []byte) {
	r.buildMountains(buf, &r.path)
	r.surface.Fill(&r.path, mountainFill)
	r.surface.Stroke(&r.path, mountainStroke, 1)
}

// groundRowY is the screen row of horizontal line i at the given phase.
// Non-finite or off-surface rows report ok=false.
func (r *Renderer) groundRowY(i, phase int) (float64, bool) {
	horizon := r.horizon()
	t := (float64(i) + float64(phase)/groundPhaseSteps) / (groundHorizontalRows - 1)
	y := horizon + (r.height-horizon)*math.Pow(t, r.scales.Ground)
	if math.IsNaN(y) || math.IsInf(y, 0) || y > r.height {
		return 0, false
	}
	return y, true
}

func (r *Renderer) drawGround() {
	horizon := r.horizon()
	center := r.width / 2
	top := r.width / groundNodeCount
	bottom := top * r.scales.Ground

	r.path.Reset()
	for i := 0; i < groundNodeCount; i++ {
		k := float64(i) - (groundNodeCount-1)/2.0
		r.path.MoveTo(center+k*top, horizon)
		r.path.LineTo(center+k*bottom, r.height)
	}
	for i := 0; i < groundHorizontalRows; i++ {
		if y, ok := r.groundRowY(i, r.phase); ok {
			r.path.MoveTo(0, y)
			r.path.LineTo(r.width, y)
		}
	}
	r.surface.Stroke(&r.path, groundLine, groundWidth)
	r.surface.Stroke(Line(0, horizon, r.width, horizon), horizonGlow, horizonWidth)

	r.phase = (r.phase + 1) % groundPhaseSteps
}
