package ui

import (
	"fmt"
	"strings"

	"github.com/sunwave-viz/sunwave/internal/scene"
)

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

// renderLayers lists every layer and filter, highlighting the enabled ones.
func renderLayers(cfg scene.Config, bass, treble bool) string {
	items := []struct {
		label string
		on    bool
	}{
		{"gradient", cfg.Gradient},
		{"mountains", cfg.Mountains},
		{"sun", cfg.Sun},
		{"ground", cfg.Ground},
		{"noise", cfg.Noise},
		{"invert", cfg.Invert},
		{"emboss", cfg.Emboss},
		{"bass", bass},
		{"treble", treble},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		if it.on {
			parts[i] = layerOnStyle.Render(it.label)
		} else {
			parts[i] = layerOffStyle.Render(it.label)
		}
	}
	return strings.Join(parts, " ")
}

func renderScales(s scene.Scales) string {
	return fmt.Sprintf("sun %.2f  mountains %.2f  ground %.2f", s.Sun, s.Mountain, s.Ground)
}
