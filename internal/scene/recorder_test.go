package scene

type drawCall struct {
	op    string
	ops   []PathOp
	paint Paint
	width float64
	rect  [4]float64
}

// recorder is an in-memory Surface that keeps every draw call. Solid
// FillRect calls covering the surface are also written to the pixels.
type recorder struct {
	w, h   int
	pix    []byte
	calls  []drawCall
	reads  int
	writes int
}

func newRecorder(w, h int) *recorder {
	pix := make([]byte, w*h*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &recorder{w: w, h: h, pix: pix}
}

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }

func (r *recorder) FillRect(x, y, w, h float64, p Paint) {
	r.calls = append(r.calls, drawCall{op: "rect", paint: p, rect: [4]float64{x, y, w, h}})
	s, ok := p.(Solid)
	if !ok || x != 0 || y != 0 || int(w) != r.w || int(h) != r.h {
		return
	}
	for i := 0; i < len(r.pix); i += 4 {
		r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3] = s.R, s.G, s.B, 255
	}
}

func (r *recorder) Fill(path *Path, p Paint) {
	r.calls = append(r.calls, drawCall{op: "fill", ops: append([]PathOp(nil), path.Ops...), paint: p})
}

func (r *recorder) Stroke(path *Path, p Paint, lineWidth float64) {
	r.calls = append(r.calls, drawCall{op: "stroke", ops: append([]PathOp(nil), path.Ops...), paint: p, width: lineWidth})
}

func (r *recorder) ReadPixels(dst []byte) {
	r.reads++
	copy(dst, r.pix)
}

func (r *recorder) WritePixels(src []byte) {
	r.writes++
	copy(r.pix, src)
}

func (r *recorder) filter(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

// fixedSamples serves the same magnitudes on every refresh.
type fixedSamples struct {
	values    []byte
	buf       []byte
	refreshes int
	emphasis  int
}

func newFixedSamples(values []byte) *fixedSamples {
	return &fixedSamples{values: values, buf: make([]byte, len(values))}
}

func uniformSamples(n int, v byte) *fixedSamples {
	values := make([]byte, n)
	for i := range values {
		values[i] = v
	}
	return newFixedSamples(values)
}

func (s *fixedSamples) Refresh() {
	s.refreshes++
	copy(s.buf, s.values)
}

func (s *fixedSamples) ApplyEmphasis([]byte) { s.emphasis++ }
func (s *fixedSamples) Buffer() []byte       { return s.buf }
