package termview

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Brightness ramp from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

// ColorMode describes how cells are coloured.
type ColorMode uint8

const (
	ColorOff     ColorMode = iota // NO_COLOR or dumb terminal
	ColorANSI16                   // basic 16-color
	ColorANSI256                  // 256-color cube
	ColorTrue                     // 24-bit truecolor
)

var (
	detectOnce sync.Once
	termColor  ColorMode
)

// DetectColorMode checks terminal capabilities once.
func DetectColorMode() ColorMode {
	detectOnce.Do(func() {
		termColor = colorModeFor(os.Getenv("TERM"), os.Getenv("COLORTERM"), hasEnv("NO_COLOR"))
	})
	return termColor
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func colorModeFor(term, colorterm string, noColor bool) ColorMode {
	term, colorterm = strings.ToLower(term), strings.ToLower(colorterm)
	switch {
	case noColor:
		return ColorOff
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		return ColorTrue
	case strings.Contains(term, "256color"):
		return ColorANSI256
	case term == "dumb":
		return ColorOff
	case term == "" && runtime.GOOS == "windows":
		return ColorANSI16
	case term == "":
		return ColorOff
	default:
		return ColorANSI16
	}
}

// brightnessChar maps a 0-255 luminance to a ramp character.
func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// luminance is the BT.601 perceived brightness.
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

const ansiReset = "\x1b[0m"

// colorSeq returns the escape selecting rgb as foreground or background.
func colorSeq(mode ColorMode, bg bool, r, g, b uint8) string {
	layer := 38
	if bg {
		layer = 48
	}
	switch mode {
	case ColorTrue:
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, r, g, b)
	case ColorANSI256:
		return fmt.Sprintf("\x1b[%d;5;%dm", layer, cube256(r, g, b))
	case ColorANSI16:
		idx := nearest16(r, g, b)
		base := 30
		if bg {
			base = 40
		}
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		return fmt.Sprintf("\x1b[%dm", base+idx)
	default:
		return ""
	}
}

func cube256(r, g, b uint8) int {
	return 16 + 36*(int(r)*5/255) + 6*(int(g)*5/255) + int(b)*5/255
}

func nearest16(r, g, b uint8) int {
	best, bestDist := 0, 1<<31-1
	for i, c := range ansi16Palette {
		dr, dg, db := int(r)-int(c[0]), int(g)-int(c[1]), int(b)-int(c[2])
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}
