// Package surface rasterizes scene drawing calls into an in-memory RGBA image.
package surface

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/sunwave-viz/sunwave/internal/scene"
)

// Raster is a scene.Surface backed by an *image.RGBA. Every pixel is opaque
// once the scene background has been drawn, so the premultiplied storage of
// image.RGBA reads back as plain RGBA.
type Raster struct {
	img *image.RGBA
	dc  *gg.Context
}

// New allocates a w x h raster.
func New(w, h int) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Raster{
		img: img,
		dc:  gg.NewContextForRGBA(img),
	}
}

func (r *Raster) Width() int  { return r.img.Rect.Dx() }
func (r *Raster) Height() int { return r.img.Rect.Dy() }

// Image exposes the backing image. It is overwritten by every frame.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) FillRect(x, y, w, h float64, p scene.Paint) {
	r.dc.ClearPath()
	r.dc.DrawRectangle(x, y, w, h)
	r.setFill(p)
	r.dc.Fill()
}

func (r *Raster) Fill(path *scene.Path, p scene.Paint) {
	r.trace(path)
	r.setFill(p)
	r.dc.Fill()
}

func (r *Raster) Stroke(path *scene.Path, p scene.Paint, lineWidth float64) {
	r.trace(path)
	r.setStroke(p)
	r.dc.SetLineWidth(lineWidth)
	r.dc.Stroke()
}

func (r *Raster) ReadPixels(dst []byte) {
	copy(dst, r.img.Pix)
}

func (r *Raster) WritePixels(src []byte) {
	copy(r.img.Pix, src)
}

func (r *Raster) trace(path *scene.Path) {
	r.dc.ClearPath()
	for _, op := range path.Ops {
		switch op.Kind {
		case scene.OpMove:
			r.dc.MoveTo(op.X, op.Y)
		case scene.OpLine:
			r.dc.LineTo(op.X, op.Y)
		case scene.OpArc:
			r.dc.DrawArc(op.X, op.Y, op.R, op.A0, op.A1)
		case scene.OpClose:
			r.dc.ClosePath()
		}
	}
}

func (r *Raster) setFill(p scene.Paint) {
	if s, ok := p.(scene.Solid); ok {
		r.dc.SetColor(s.NRGBA())
		return
	}
	r.dc.SetFillStyle(pattern(p))
}

func (r *Raster) setStroke(p scene.Paint) {
	if s, ok := p.(scene.Solid); ok {
		r.dc.SetColor(s.NRGBA())
		return
	}
	r.dc.SetStrokeStyle(pattern(p))
}

func pattern(p scene.Paint) gg.Pattern {
	switch p := p.(type) {
	case *scene.LinearGradient:
		g := gg.NewLinearGradient(p.X0, p.Y0, p.X1, p.Y1)
		for _, s := range p.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	case *scene.RadialGradient:
		g := gg.NewRadialGradient(p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1)
		for _, s := range p.Stops {
			g.AddColorStop(s.Offset, s.Color)
		}
		return g
	case scene.Solid:
		return gg.NewSolidPattern(p.NRGBA())
	default:
		return gg.NewSolidPattern(image.Transparent)
	}
}
