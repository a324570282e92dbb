// Package pipeline assembles the frame path shared by the desktop front-ends:
// playback tap, analyser, sample source, raster surface and scene renderer.
package pipeline

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sunwave-viz/sunwave/internal/analyser"
	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/sampler"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/surface"
)

// ErrInvalidOptions is returned for unusable frame or bin sizes.
var ErrInvalidOptions = errors.New("invalid pipeline options")

// Options sizes the pipeline.
type Options struct {
	Width  int
	Height int
	// Bins is the number of frequency bins; a power of two of at least 16.
	Bins int
	// Seed fixes the noise filter's random source when non-zero.
	Seed uint64

	// Smoothing is the analyser's averaging constant between frames.
	Smoothing float64
	// MinDB and MaxDB map analyser levels onto bytes. Both zero keeps the
	// analyser's default range.
	MinDB float64
	MaxDB float64
}

// DefaultOptions returns a 640x400 frame with 128 bins and the analyser's
// default smoothing and decibel range.
func DefaultOptions() Options {
	return Options{
		Width:     640,
		Height:    400,
		Bins:      sampler.DefaultBufferLength,
		Smoothing: analyser.DefaultSmoothing,
		MinDB:     analyser.DefaultMinDecibels,
		MaxDB:     analyser.DefaultMaxDecibels,
	}
}

// Pipeline owns every stage of frame production.
type Pipeline struct {
	Tap      *player.Tap
	Analyser *analyser.Analyser
	Samples  *sampler.Source
	Raster   *surface.Raster
	Renderer *scene.Renderer
}

// New builds a pipeline. Audio reaches it once a player is created with
// the returned Tap.
func New(o Options) (*Pipeline, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("%w: frame %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if o.Bins < 16 || o.Bins&(o.Bins-1) != 0 {
		return nil, fmt.Errorf("%w: %d bins is not a power of two >= 16", ErrInvalidOptions, o.Bins)
	}
	if (o.MinDB != 0 || o.MaxDB != 0) && o.MaxDB <= o.MinDB {
		return nil, fmt.Errorf("%w: decibel range %g..%g", ErrInvalidOptions, o.MinDB, o.MaxDB)
	}

	tap := player.NewTap(max(player.DefaultTapSize, 2*o.Bins))
	an, err := analyser.New(tap, 2*o.Bins)
	if err != nil {
		return nil, err
	}
	an.SetSmoothing(o.Smoothing)
	an.SetDecibelRange(o.MinDB, o.MaxDB)
	src, err := sampler.Configure(an, an.BufferLength())
	if err != nil {
		return nil, err
	}

	raster := surface.New(o.Width, o.Height)
	r := scene.New(raster, src)
	if o.Seed != 0 {
		r.SetRand(rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)))
	}
	return &Pipeline{Tap: tap, Analyser: an, Samples: src, Raster: raster, Renderer: r}, nil
}

// Render draws one frame with cfg.
func (p *Pipeline) Render(cfg scene.Config) error {
	return p.Renderer.Render(cfg)
}
