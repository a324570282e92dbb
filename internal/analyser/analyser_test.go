package analyser

import (
	"errors"
	"math"
	"testing"
)

type sineTap struct {
	bin     int
	fftSize int
	amp     float64
}

func (s sineTap) Latest(dst []float64) int {
	for i := range dst {
		dst[i] = s.amp * math.Sin(2*math.Pi*float64(s.bin)*float64(i)/float64(s.fftSize))
	}
	return len(dst)
}

type silentTap struct{}

func (silentTap) Latest(dst []float64) int {
	clear(dst)
	return 0
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	for _, n := range []int{0, 16, 100, 255, 65536} {
		if _, err := New(nil, n); !errors.Is(err, ErrInvalidFFTSize) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidFFTSize", n, err)
		}
	}
	a, err := New(nil, DefaultFFTSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.BufferLength() != 128 {
		t.Fatalf("BufferLength() = %d, want 128", a.BufferLength())
	}
}

func TestSilenceMapsToZero(t *testing.T) {
	for _, tap := range []Tap{nil, silentTap{}} {
		a, _ := New(tap, DefaultFFTSize)
		dst := make([]byte, a.BufferLength())
		for i := range dst {
			dst[i] = 99
		}
		a.ByteFrequencyData(dst)
		for i, v := range dst {
			if v != 0 {
				t.Fatalf("bin %d = %d for silence, want 0", i, v)
			}
		}
	}
}

func TestSinePeaksAtItsBin(t *testing.T) {
	const bin = 8
	a, _ := New(sineTap{bin: bin, fftSize: DefaultFFTSize, amp: 0.8}, DefaultFFTSize)
	dst := make([]byte, a.BufferLength())
	for range 10 {
		a.ByteFrequencyData(dst)
	}

	if dst[bin] != 255 {
		t.Fatalf("bin %d = %d, want 255 for a loud tone", bin, dst[bin])
	}
	if dst[60] >= 128 {
		t.Fatalf("far bin 60 = %d, expected little leakage", dst[60])
	}
}

func TestSmoothingAveragesAcrossFrames(t *testing.T) {
	tone := sineTap{bin: 20, fftSize: DefaultFFTSize, amp: 0.001}
	a, _ := New(tone, DefaultFFTSize)
	dst := make([]byte, a.BufferLength())

	a.ByteFrequencyData(dst)
	first := dst[20]
	for range 20 {
		a.ByteFrequencyData(dst)
	}
	if dst[20] <= first {
		t.Fatalf("expected smoothed level to rise from %d, got %d", first, dst[20])
	}
}

func TestExtraDestinationBinsAreZeroed(t *testing.T) {
	a, _ := New(sineTap{bin: 4, fftSize: 64, amp: 1}, 64)
	dst := make([]byte, 40)
	for i := range dst {
		dst[i] = 7
	}
	a.ByteFrequencyData(dst)
	for i := a.BufferLength(); i < len(dst); i++ {
		if dst[i] != 0 {
			t.Fatalf("bin %d = %d beyond bin count, want 0", i, dst[i])
		}
	}
}

func TestSetSmoothingClamps(t *testing.T) {
	a, _ := New(nil, DefaultFFTSize)
	tests := map[float64]float64{-1: 0, 0.5: 0.5, 1: 0.99, 2: 0.99}
	for in, want := range tests {
		a.SetSmoothing(in)
		if got := a.Smoothing(); got != want {
			t.Errorf("SetSmoothing(%v): Smoothing() = %v, want %v", in, got, want)
		}
	}
}

func TestZeroSmoothingHasNoHistory(t *testing.T) {
	a, _ := New(sineTap{bin: 20, fftSize: DefaultFFTSize, amp: 0.001}, DefaultFFTSize)
	a.SetSmoothing(0)
	dst := make([]byte, a.BufferLength())

	a.ByteFrequencyData(dst)
	first := dst[20]
	if first == 0 {
		t.Fatal("expected a level on the first frame")
	}
	for range 5 {
		a.ByteFrequencyData(dst)
	}
	if dst[20] != first {
		t.Fatalf("level moved from %d to %d without smoothing", first, dst[20])
	}
}

func TestDecibelRangeRescalesBytes(t *testing.T) {
	// About -73.6 dB at bin 20 after the Blackman window.
	tone := sineTap{bin: 20, fftSize: DefaultFFTSize, amp: 0.001}
	level := func(minDB, maxDB float64) byte {
		a, _ := New(tone, DefaultFFTSize)
		a.SetSmoothing(0)
		a.SetDecibelRange(minDB, maxDB)
		dst := make([]byte, a.BufferLength())
		a.ByteFrequencyData(dst)
		return dst[20]
	}

	def := level(DefaultMinDecibels, DefaultMaxDecibels)
	if def == 0 || def == 255 {
		t.Fatalf("default range level = %d, want mid-scale", def)
	}
	if got := level(-100, -80); got != 255 {
		t.Fatalf("narrow low range level = %d, want 255", got)
	}
	if got := level(-60, -30); got != 0 {
		t.Fatalf("range above the tone level = %d, want 0", got)
	}

	a, _ := New(nil, DefaultFFTSize)
	a.SetDecibelRange(-30, -100)
	if lo, hi := a.DecibelRange(); lo != DefaultMinDecibels || hi != DefaultMaxDecibels {
		t.Fatalf("inverted range applied: %v..%v", lo, hi)
	}
}
