// Package sampler holds the per-frame frequency magnitude buffer and the
// bass/treble emphasis applied to it before the scene reads it.
package sampler

import (
	"errors"
	"fmt"
	"math"
)

const (
	// SampleRate is the playback rate bin frequencies are derived from.
	SampleRate = 44100

	// DefaultBufferLength is half of the default 256-point FFT.
	DefaultBufferLength = 128

	shelfFrequency = 1000.0
	boostFactor    = 1.25
)

// ErrInvalidConfig is returned when the buffer length is not a positive even number.
var ErrInvalidConfig = errors.New("invalid sampler config")

// Analyser fills dst with the current byte frequency magnitudes.
type Analyser interface {
	ByteFrequencyData(dst []byte)
}

// Source owns the frequency buffer. It is not safe for concurrent use; the
// frame driver refreshes and reads it from a single goroutine.
type Source struct {
	analyser Analyser
	buf      []byte
	bass     bool
	treble   bool
}

// Configure allocates a buffer of n bins fed by a. A nil analyser is allowed
// and leaves the buffer silent.
func Configure(a Analyser, n int) (*Source, error) {
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("%w: buffer length %d must be positive and even", ErrInvalidConfig, n)
	}
	return &Source{
		analyser: a,
		buf:      make([]byte, n),
	}, nil
}

// Refresh overwrites the buffer with the analyser's current magnitudes.
func (s *Source) Refresh() {
	if s.analyser == nil {
		return
	}
	s.analyser.ByteFrequencyData(s.buf)
}

// Buffer returns the live buffer. Its contents change on every Refresh.
func (s *Source) Buffer() []byte { return s.buf }

// Len returns the number of frequency bins.
func (s *Source) Len() int { return len(s.buf) }

func (s *Source) SetBassBoost(enabled bool)   { s.bass = enabled }
func (s *Source) SetTrebleBoost(enabled bool) { s.treble = enabled }
func (s *Source) BassBoost() bool             { return s.bass }
func (s *Source) TrebleBoost() bool           { return s.treble }

// BinFrequency estimates the center frequency of bin i for a buffer of n bins.
func BinFrequency(i, n int) float64 {
	return float64(i) * (SampleRate / float64(n))
}

// ApplyEmphasis boosts bins below (bass) or above (treble) 1 kHz by 1.25x,
// clamped to 255. Applying it twice to the same buffer compounds the boost.
func (s *Source) ApplyEmphasis(buf []byte) {
	if !s.bass && !s.treble {
		return
	}
	n := len(buf)
	for i, v := range buf {
		f := BinFrequency(i, n)
		switch {
		case s.bass && f < shelfFrequency:
			buf[i] = boost(v)
		case s.treble && f > shelfFrequency:
			buf[i] = boost(v)
		}
	}
}

func boost(v byte) byte {
	return byte(math.Min(255, math.Round(float64(v)*boostFactor)))
}
