package scene

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"
)

func randomPixels(n int, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed))
	pix := make([]byte, n*4)
	for i := range pix {
		pix[i] = byte(rng.IntN(256))
	}
	return pix
}

func TestInvertIsSelfInverse(t *testing.T) {
	pix := randomPixels(500, 3)
	orig := append([]byte(nil), pix...)

	Invert(pix)
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 255-orig[i] || pix[i+3] != orig[i+3] {
			t.Fatalf("pixel %d: got %v from %v", i/4, pix[i:i+4], orig[i:i+4])
		}
	}
	Invert(pix)
	if !bytes.Equal(pix, orig) {
		t.Fatal("invert(invert(x)) != x")
	}
}

func TestNoiseTouchesBoundedPixelsAndKeepsAlpha(t *testing.T) {
	const n = 2000
	pix := make([]byte, n*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 200
	}
	Noise(pix, rand.New(rand.NewPCG(11, 12)))

	touched := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i+3] != 200 {
			t.Fatalf("alpha changed at pixel %d", i/4)
		}
		for c := 0; c < 3; c++ {
			if pix[i+c] > noiseAmplitude {
				t.Fatalf("pixel %d channel %d = %d, want <= %d", i/4, c, pix[i+c], noiseAmplitude)
			}
		}
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 0 {
			touched++
		}
	}
	limit := int(math.Round(noiseFraction * n))
	if touched == 0 || touched > limit {
		t.Fatalf("touched %d pixels, want 1..%d", touched, limit)
	}
}

func TestNoiseClampsAtWhite(t *testing.T) {
	pix := bytes.Repeat([]byte{255}, 400*4)
	Noise(pix, rand.New(rand.NewPCG(5, 5)))
	for i := 0; i < len(pix); i++ {
		if i%4 != 3 && pix[i] < 255-noiseAmplitude {
			t.Fatalf("byte %d = %d, below %d", i, pix[i], 255-noiseAmplitude)
		}
	}
}

func TestNoiseOnEmptyBuffer(t *testing.T) {
	Noise(nil, rand.New(rand.NewPCG(1, 1)))
}

func TestEmbossUniformImageIsMidGray(t *testing.T) {
	pix := bytes.Repeat([]byte{90, 10, 240, 255}, 6*4)
	Emboss(pix, 6, nil)
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 127 || pix[i+1] != 127 || pix[i+2] != 127 || pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want 127 gray with alpha kept", i/4, pix[i:i+4])
		}
	}
}

func TestEmbossReadsOriginalValues(t *testing.T) {
	// 3x2 image, single channel values shown; G/B mirror R.
	// row0: 10 50 90
	// row1: 20 60 100
	vals := []byte{10, 50, 90, 20, 60, 100}
	pix := make([]byte, len(vals)*4)
	for i, v := range vals {
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
	}

	snap := Emboss(pix, 3, nil)
	if len(snap) != len(pix) {
		t.Fatalf("snapshot len = %d, want %d", len(snap), len(pix))
	}

	want := []int{
		127 + 20 - 50 - 20,   // (0,0): right 50, below 20
		127 + 100 - 90 - 60,  // (1,0): right 90, below 60
		127 + 180 - 90 - 100, // (2,0): right clamps to self, below 100
		127 + 40 - 60 - 20,   // (0,1): below clamps to self
		127 + 120 - 100 - 60, // (1,1)
		127 + 200 - 100 - 100,
	}
	for i, w := range want {
		if got := int(pix[i*4]); got != clampInt(w) {
			t.Fatalf("pixel %d = %d, want %d", i, got, clampInt(w))
		}
		if pix[i*4+3] != 255 {
			t.Fatalf("alpha changed at pixel %d", i)
		}
	}
}

func TestEmbossClampsChannels(t *testing.T) {
	// Bright pixel with dark neighbours overflows; dark pixel with bright
	// neighbours underflows.
	pix := []byte{
		255, 0, 0, 255, 0, 255, 255, 255,
		0, 255, 255, 255, 0, 0, 0, 255,
	}
	Emboss(pix, 2, nil)
	if pix[0] != 255 {
		t.Fatalf("R at (0,0) = %d, want 255", pix[0])
	}
	if pix[1] != 0 {
		t.Fatalf("G at (0,0) = %d, want 0", pix[1])
	}
}

func TestEmbossReusesSnapshot(t *testing.T) {
	pix := randomPixels(16, 9)
	snap := make([]byte, 0, len(pix))
	out := Emboss(pix, 4, snap)
	if &out[:1][0] != &snap[:1][0] {
		t.Fatal("expected snapshot buffer to be reused")
	}
}

func clampInt(v int) int {
	return int(clampByte(v))
}
