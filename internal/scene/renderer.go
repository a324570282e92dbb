// Package scene composes the per-frame visualizer image: background, sun,
// mountains and ground layers driven by a frequency buffer, followed by
// whole-image pixel effects.
package scene

import (
	"errors"
	"math/rand/v2"
	"time"
)

// ErrNotInitialized is returned by Render when no surface or sample source is bound.
var ErrNotInitialized = errors.New("scene renderer not initialized")

// Samples is the frequency buffer provider consulted once per frame.
type Samples interface {
	Refresh()
	ApplyEmphasis(buf []byte)
	Buffer() []byte
}

// Renderer draws one frame per Render call. It keeps the ground scroll phase
// between frames and must not be used from more than one goroutine at a time.
type Renderer struct {
	surface Surface
	samples Samples
	width   float64
	height  float64
	scales  Scales
	phase   int
	rng     *rand.Rand

	pixels   []byte
	snapshot []byte
	path     Path
}

// New binds a renderer to a surface and sample source. Either may be nil, in
// which case Render reports ErrNotInitialized.
func New(surface Surface, samples Samples) *Renderer {
	r := &Renderer{
		surface: surface,
		samples: samples,
		scales:  DefaultScales(),
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	if surface != nil {
		r.width = float64(surface.Width())
		r.height = float64(surface.Height())
		r.pixels = make([]byte, surface.Width()*surface.Height()*4)
	}
	return r
}

// SetRand replaces the noise source, mainly for reproducible frames.
func (r *Renderer) SetRand(rng *rand.Rand) { r.rng = rng }

func (r *Renderer) SetSunScale(v float64)      { r.scales.Sun = v }
func (r *Renderer) SetMountainScale(v float64) { r.scales.Mountain = v }
func (r *Renderer) SetGroundScale(v float64)   { r.scales.Ground = v }

// Scales returns the current intensity multipliers.
func (r *Renderer) Scales() Scales { return r.scales }

// Samples returns the bound sample source.
func (r *Renderer) Samples() Samples { return r.samples }

// Phase returns the ground scroll phase in [0, groundPhaseSteps).
func (r *Renderer) Phase() int { return r.phase }

// Render refreshes the sample buffer and draws one complete frame.
func (r *Renderer) Render(cfg Config) error {
	if r == nil || r.surface == nil || r.samples == nil {
		return ErrNotInitialized
	}

	r.samples.Refresh()
	buf := r.samples.Buffer()
	r.samples.ApplyEmphasis(buf)

	r.drawBackground(cfg.Gradient)
	if cfg.Sun {
		r.drawSun(buf)
	}
	if cfg.Mountains {
		r.drawMountains(buf)
	}
	if cfg.Ground {
		r.drawGround()
	}

	// No readback without an effect to apply.
	if !cfg.Filtered() {
		return nil
	}
	r.surface.ReadPixels(r.pixels)
	if cfg.Noise {
		Noise(r.pixels, r.rng)
	}
	if cfg.Invert {
		Invert(r.pixels)
	}
	if cfg.Emboss {
		r.snapshot = Emboss(r.pixels, r.surface.Width(), r.snapshot)
	}
	r.surface.WritePixels(r.pixels)
	return nil
}
