package main

import (
	"flag"

	"github.com/sunwave-viz/sunwave/internal/scene"
)

var (
	// Size of the rendered frame in pixels before it is fitted to the terminal.
	widthFlag  = flag.Int("width", 640, "frame width in pixels")
	heightFlag = flag.Int("height", 400, "frame height in pixels")

	fpsFlag  = flag.Int("fps", 60, "frames rendered per second")
	binsFlag = flag.Int("bins", 128, "frequency bins (power of two, >= 16)")

	smoothingFlag = flag.Float64("smoothing", 0.8, "analyser smoothing between frames (0-0.99)")
	minDBFlag     = flag.Float64("min-db", -100, "analyser level drawn as silence")
	maxDBFlag     = flag.Float64("max-db", -30, "analyser level drawn at full height")

	volumeFlag = flag.Float64("volume", 0.5, "initial volume (0-1)")
	logFlag    = flag.String("log", "", "append debug logs to this file")

	gradientFlag  = flag.Bool("gradient", false, "draw the sky gradient")
	mountainsFlag = flag.Bool("mountains", true, "draw the frequency mountains")
	sunFlag       = flag.Bool("sun", true, "draw the pulsing sun")
	groundFlag    = flag.Bool("ground", true, "draw the scrolling ground grid")
	noiseFlag     = flag.Bool("noise", false, "sprinkle random noise")
	invertFlag    = flag.Bool("invert", false, "invert colours")
	embossFlag    = flag.Bool("emboss", false, "emboss the frame")
)

func sceneConfigFromFlags() scene.Config {
	return scene.Config{
		Gradient:  *gradientFlag,
		Mountains: *mountainsFlag,
		Sun:       *sunFlag,
		Ground:    *groundFlag,
		Noise:     *noiseFlag,
		Invert:    *invertFlag,
		Emboss:    *embossFlag,
	}
}
