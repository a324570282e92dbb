//go:build js && wasm

package webaudio

import (
	"syscall/js"

	"github.com/sunwave-viz/sunwave/internal/scene"
)

// Canvas draws scene primitives onto an HTML canvas 2D context.
type Canvas struct {
	el  js.Value
	ctx js.Value
	w   int
	h   int

	pixels js.Value // ImageData reused by WritePixels
}

// NewCanvas wraps a <canvas> element. Its size is read once.
func NewCanvas(el js.Value) *Canvas {
	c := &Canvas{
		el:  el,
		ctx: el.Call("getContext", "2d"),
		w:   el.Get("width").Int(),
		h:   el.Get("height").Int(),
	}
	c.pixels = c.ctx.Call("createImageData", c.w, c.h)
	return c
}

// Element returns the canvas element.
func (c *Canvas) Element() js.Value { return c.el }

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

func (c *Canvas) FillRect(x, y, w, h float64, p scene.Paint) {
	c.ctx.Set("fillStyle", c.style(p))
	c.ctx.Call("fillRect", x, y, w, h)
}

func (c *Canvas) Fill(path *scene.Path, p scene.Paint) {
	c.trace(path)
	c.ctx.Set("fillStyle", c.style(p))
	c.ctx.Call("fill")
}

func (c *Canvas) Stroke(path *scene.Path, p scene.Paint, lineWidth float64) {
	c.trace(path)
	c.ctx.Set("strokeStyle", c.style(p))
	c.ctx.Set("lineWidth", lineWidth)
	c.ctx.Call("stroke")
}

func (c *Canvas) ReadPixels(dst []byte) {
	data := c.ctx.Call("getImageData", 0, 0, c.w, c.h).Get("data")
	js.CopyBytesToGo(dst, data)
}

func (c *Canvas) WritePixels(src []byte) {
	js.CopyBytesToJS(c.pixels.Get("data"), src)
	c.ctx.Call("putImageData", c.pixels, 0, 0)
}

func (c *Canvas) trace(path *scene.Path) {
	c.ctx.Call("beginPath")
	for _, op := range path.Ops {
		switch op.Kind {
		case scene.OpMove:
			c.ctx.Call("moveTo", op.X, op.Y)
		case scene.OpLine:
			c.ctx.Call("lineTo", op.X, op.Y)
		case scene.OpArc:
			c.ctx.Call("arc", op.X, op.Y, op.R, op.A0, op.A1)
		case scene.OpClose:
			c.ctx.Call("closePath")
		}
	}
}

func (c *Canvas) style(p scene.Paint) any {
	switch p := p.(type) {
	case scene.Solid:
		return CSSColor(p.NRGBA())
	case *scene.LinearGradient:
		g := c.ctx.Call("createLinearGradient", p.X0, p.Y0, p.X1, p.Y1)
		addStops(g, p.Stops)
		return g
	case *scene.RadialGradient:
		g := c.ctx.Call("createRadialGradient", p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1)
		addStops(g, p.Stops)
		return g
	default:
		return "transparent"
	}
}

func addStops(g js.Value, stops []scene.Stop) {
	for _, s := range stops {
		g.Call("addColorStop", s.Offset, CSSColor(s.Color))
	}
}
