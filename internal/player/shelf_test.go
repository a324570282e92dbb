package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func constantStereo(frames int, v int16) []byte {
	out := make([]byte, frames*outputFrameSize)
	for i := 0; i < frames*outputChannels; i++ {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func alternatingStereo(frames int, v int16) []byte {
	out := make([]byte, frames*outputFrameSize)
	for i := 0; i < frames; i++ {
		s := v
		if i%2 == 1 {
			s = -v
		}
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

func lastFrame(t *testing.T, s *shelfReader) (int16, int16) {
	t.Helper()
	out, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	n := len(out)
	return int16(binary.LittleEndian.Uint16(out[n-4:])), int16(binary.LittleEndian.Uint16(out[n-2:]))
}

func TestShelfPassthroughWhenDisabled(t *testing.T) {
	data := alternatingStereo(64, 1234)
	out, err := io.ReadAll(newShelfReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("disabled shelves changed the signal")
	}
}

func TestBassShelfBoostsLowFrequencies(t *testing.T) {
	s := newShelfReader(bytes.NewReader(constantStereo(4096, 1000)))
	s.setBass(true)

	l, r := lastFrame(t, s)
	want := 1000 * math.Pow(10, bassGainDB/20)
	if math.Abs(float64(l)-want) > 5 || math.Abs(float64(r)-want) > 5 {
		t.Fatalf("DC through bass shelf = (%d, %d), want about %.0f", l, r, want)
	}
}

func TestTrebleShelfLeavesLowFrequencies(t *testing.T) {
	s := newShelfReader(bytes.NewReader(constantStereo(4096, 1000)))
	s.setTreble(true)

	l, _ := lastFrame(t, s)
	if math.Abs(float64(l)-1000) > 5 {
		t.Fatalf("DC through treble shelf = %d, want about 1000", l)
	}
}

func TestTrebleShelfBoostsNyquist(t *testing.T) {
	s := newShelfReader(bytes.NewReader(alternatingStereo(4096, 1000)))
	s.setTreble(true)

	l, _ := lastFrame(t, s)
	want := 1000 * math.Pow(10, trebleGainDB/20)
	if math.Abs(math.Abs(float64(l))-want) > 20 {
		t.Fatalf("Nyquist through treble shelf = %d, want magnitude about %.0f", l, want)
	}
}

func TestShelfClampsToInt16(t *testing.T) {
	s := newShelfReader(bytes.NewReader(constantStereo(4096, 20000)))
	s.setBass(true)

	l, r := lastFrame(t, s)
	if l != 32767 || r != 32767 {
		t.Fatalf("boosted loud DC = (%d, %d), want clamped 32767", l, r)
	}
}
