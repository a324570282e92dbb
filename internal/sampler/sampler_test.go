package sampler

import (
	"errors"
	"math"
	"testing"
)

type stubAnalyser struct {
	fill  byte
	calls int
}

func (a *stubAnalyser) ByteFrequencyData(dst []byte) {
	a.calls++
	for i := range dst {
		dst[i] = a.fill
	}
}

func TestConfigureRejectsInvalidLengths(t *testing.T) {
	for _, n := range []int{0, -2, 1, 127} {
		if _, err := Configure(nil, n); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("Configure(%d) error = %v, want ErrInvalidConfig", n, err)
		}
	}
}

func TestConfigureStartsSilent(t *testing.T) {
	s, err := Configure(nil, DefaultBufferLength)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if s.Len() != DefaultBufferLength {
		t.Fatalf("Len() = %d, want %d", s.Len(), DefaultBufferLength)
	}
	s.Refresh()
	for i, v := range s.Buffer() {
		if v != 0 {
			t.Fatalf("bin %d = %d before any audio, want 0", i, v)
		}
	}
}

func TestRefreshOverwritesInPlace(t *testing.T) {
	a := &stubAnalyser{fill: 42}
	s, _ := Configure(a, 8)
	buf := s.Buffer()
	s.Refresh()
	if a.calls != 1 {
		t.Fatalf("analyser called %d times, want 1", a.calls)
	}
	if &buf[0] != &s.Buffer()[0] {
		t.Fatal("expected Refresh to reuse the buffer")
	}
	if buf[7] != 42 {
		t.Fatalf("buf[7] = %d, want 42", buf[7])
	}
}

func TestApplyEmphasisBass(t *testing.T) {
	s, _ := Configure(nil, DefaultBufferLength)
	s.SetBassBoost(true)

	in := make([]byte, DefaultBufferLength)
	for i := range in {
		in[i] = byte(i * 2)
	}
	in[1] = 250
	buf := append([]byte(nil), in...)
	s.ApplyEmphasis(buf)

	for i := range buf {
		want := in[i]
		if BinFrequency(i, len(buf)) < 1000 {
			want = byte(math.Min(255, math.Round(float64(in[i])*1.25)))
		}
		if buf[i] != want {
			t.Fatalf("bin %d = %d, want %d", i, buf[i], want)
		}
	}
	if buf[1] != 255 {
		t.Fatalf("expected clamp to 255, got %d", buf[1])
	}
}

func TestApplyEmphasisTrebleLeavesBassBins(t *testing.T) {
	s, _ := Configure(nil, DefaultBufferLength)
	s.SetTrebleBoost(true)

	buf := make([]byte, DefaultBufferLength)
	for i := range buf {
		buf[i] = 100
	}
	s.ApplyEmphasis(buf)

	for i, v := range buf {
		f := BinFrequency(i, len(buf))
		switch {
		case f > 1000 && v != 125:
			t.Fatalf("treble bin %d (%.0f Hz) = %d, want 125", i, f, v)
		case f < 1000 && v != 100:
			t.Fatalf("bass bin %d (%.0f Hz) = %d, want 100", i, f, v)
		}
	}
}

func TestApplyEmphasisCompounds(t *testing.T) {
	s, _ := Configure(nil, 4)
	s.SetBassBoost(true)
	s.SetTrebleBoost(true)

	buf := []byte{64, 64, 64, 64}
	s.ApplyEmphasis(buf)
	s.ApplyEmphasis(buf)
	// 64 -> 80 -> 100
	for i, v := range buf {
		if v != 100 {
			t.Fatalf("bin %d = %d after two passes, want 100", i, v)
		}
	}
}

func TestApplyEmphasisDisabledIsNoop(t *testing.T) {
	s, _ := Configure(nil, 4)
	buf := []byte{1, 2, 3, 4}
	s.ApplyEmphasis(buf)
	if buf[0] != 1 || buf[3] != 4 {
		t.Fatalf("buffer changed with both boosts off: %v", buf)
	}
}
