// Package analyser turns the most recent PCM window into byte frequency
// magnitudes, matching the scaling of a browser AnalyserNode.
package analyser

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	DefaultFFTSize     = 256
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// ErrInvalidFFTSize is returned for sizes that are not a power of two in [32, 32768].
var ErrInvalidFFTSize = errors.New("invalid fft size")

// Tap provides the latest mono samples in [-1, 1].
type Tap interface {
	// Latest fills dst with the most recent samples in playback order and
	// reports how many were available. Missing leading samples are zero.
	Latest(dst []float64) int
}

// Analyser computes smoothed frequency magnitudes over a Blackman-windowed
// FFT frame. It is not safe for concurrent use.
type Analyser struct {
	tap       Tap
	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	frame    []float64
	smoothed []float64
}

// New creates an analyser reading fftSize samples per frame from tap.
func New(tap Tap, fftSize int) (*Analyser, error) {
	if fftSize < minFFTSize || fftSize > maxFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	return &Analyser{
		tap:       tap,
		fftSize:   fftSize,
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDecibels,
		maxDB:     DefaultMaxDecibels,
		window:    window.Blackman(fftSize),
		frame:     make([]float64, fftSize),
		smoothed:  make([]float64, fftSize/2),
	}, nil
}

// BufferLength is the number of frequency bins, half the FFT size.
func (a *Analyser) BufferLength() int { return a.fftSize / 2 }

// SetSmoothing sets the averaging constant between frames, clamped to [0, 1).
func (a *Analyser) SetSmoothing(v float64) {
	a.smoothing = math.Max(0, math.Min(v, 0.99))
}

// Smoothing returns the averaging constant.
func (a *Analyser) Smoothing() float64 { return a.smoothing }

// SetDecibelRange sets the dB values mapped to byte 0 and 255. A range with
// maxDB <= minDB is ignored.
func (a *Analyser) SetDecibelRange(minDB, maxDB float64) {
	if maxDB > minDB {
		a.minDB, a.maxDB = minDB, maxDB
	}
}

// DecibelRange returns the dB values mapped to byte 0 and 255.
func (a *Analyser) DecibelRange() (minDB, maxDB float64) { return a.minDB, a.maxDB }

// ByteFrequencyData writes one magnitude per bin into dst. Bins past the
// analyser's bin count are zeroed.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.update()

	span := a.maxDB - a.minDB
	for i := range dst {
		if i >= len(a.smoothed) {
			dst[i] = 0
			continue
		}
		db := 20 * math.Log10(a.smoothed[i])
		v := math.Floor(255 * (db - a.minDB) / span)
		switch {
		case v < 0 || math.IsNaN(v):
			dst[i] = 0
		case v > 255:
			dst[i] = 255
		default:
			dst[i] = byte(v)
		}
	}
}

func (a *Analyser) update() {
	if a.tap == nil {
		clear(a.frame)
	} else {
		a.tap.Latest(a.frame)
	}
	for i, w := range a.window {
		a.frame[i] *= w
	}

	spectrum := fft.FFTReal(a.frame)
	scale := 1 / float64(a.fftSize)
	for k := range a.smoothed {
		mag := cmplx.Abs(spectrum[k]) * scale
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
	}
}
