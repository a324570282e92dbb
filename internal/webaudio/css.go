// Package webaudio binds the visualizer to a browser: a WebAudio node graph
// feeding an AnalyserNode, and a 2D canvas implementing scene.Surface.
package webaudio

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

const (
	// MaxGain is the top of the page's volume slider.
	MaxGain = 2.0
	// MaxScale is the top of the page's sun, mountain and ground sliders.
	MaxScale = 4.0
)

// CSSColor formats c the way canvas fillStyle expects it.
func CSSColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}

// VolumePercent is the label shown next to the volume slider: the slider
// runs 0..MaxGain and the label 0..100.
func VolumePercent(gain float64) int {
	return int(math.Round(max(0, min(gain, MaxGain)) / MaxGain * 100))
}

// ParseSlider reads a range input's value, clamped to [lo, hi].
func ParseSlider(value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("slider value %q: %w", value, err)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("slider value %q is not a number", value)
	}
	return max(lo, min(v, hi)), nil
}
