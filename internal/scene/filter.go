package scene

import (
	"math"
	"math/rand/v2"
)

const (
	noiseFraction  = 0.05
	noiseAmplitude = 64
	embossBias     = 127
)

// Noise offsets the RGB channels of round(5%) of the pixels, picked with
// replacement, by independent amounts in [-64, 64]. Results are clamped to
// the byte range and alpha is left alone.
func Noise(pix []byte, rng *rand.Rand) {
	n := len(pix) / 4
	count := int(math.Round(noiseFraction * float64(n)))
	for range count {
		p := rng.IntN(n) * 4
		for c := 0; c < 3; c++ {
			offset := rng.IntN(2*noiseAmplitude+1) - noiseAmplitude
			pix[p+c] = clampByte(int(pix[p+c]) + offset)
		}
	}
}

// Invert replaces every RGB channel with its complement. Alpha is untouched.
func Invert(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = 255 - pix[i]
		pix[i+1] = 255 - pix[i+1]
		pix[i+2] = 255 - pix[i+2]
	}
}

// Emboss applies 127 + 2*c - right - below to every RGB channel, reading all
// taps from a copy of the original image. Taps past the last column or row
// use the edge pixel itself. The copy is made into snapshot, which is grown
// as needed and returned for reuse.
func Emboss(pix []byte, width int, snapshot []byte) []byte {
	stride := width * 4
	if width <= 0 || len(pix) < stride {
		return snapshot
	}
	snapshot = append(snapshot[:0], pix...)
	height := len(pix) / stride

	for y := 0; y < height; y++ {
		row := y * stride
		below := stride
		if y == height-1 {
			below = 0
		}
		for x := 0; x < width; x++ {
			i := row + x*4
			right := 4
			if x == width-1 {
				right = 0
			}
			for c := i; c < i+3; c++ {
				v := embossBias + 2*int(snapshot[c]) - int(snapshot[c+right]) - int(snapshot[c+below])
				pix[c] = clampByte(v)
			}
		}
	}
	return snapshot
}

func clampByte(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
