package scene

import "math"

// OpKind identifies a path segment.
type OpKind uint8

const (
	OpMove OpKind = iota
	OpLine
	OpArc
	OpClose
)

// PathOp is one recorded path segment. Arc uses X,Y as the center, R as the
// radius and A0..A1 as the clockwise sweep in radians (y axis points down).
type PathOp struct {
	Kind   OpKind
	X, Y   float64
	R      float64
	A0, A1 float64
}

// Path is a reusable list of canvas-style path segments. An arc issued while
// a current point exists is joined to it by a straight line.
type Path struct {
	Ops []PathOp
}

// Reset empties the path, keeping its capacity.
func (p *Path) Reset() { p.Ops = p.Ops[:0] }

func (p *Path) MoveTo(x, y float64) {
	p.Ops = append(p.Ops, PathOp{Kind: OpMove, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.Ops = append(p.Ops, PathOp{Kind: OpLine, X: x, Y: y})
}

func (p *Path) Arc(cx, cy, r, a0, a1 float64) {
	p.Ops = append(p.Ops, PathOp{Kind: OpArc, X: cx, Y: cy, R: r, A0: a0, A1: a1})
}

func (p *Path) Close() {
	p.Ops = append(p.Ops, PathOp{Kind: OpClose})
}

// Line builds a two-point path.
func Line(x0, y0, x1, y1 float64) *Path {
	p := &Path{Ops: make([]PathOp, 0, 2)}
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	return p
}

// Circle builds a closed full circle.
func Circle(cx, cy, r float64) *Path {
	p := &Path{}
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	p.Close()
	return p
}
