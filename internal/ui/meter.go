package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Levels exposes the most recent mono samples of the playing track.
type Levels interface {
	Latest(dst []float64) int
}

const (
	meterWindow  = 2048
	meterAttack  = 0.6
	meterRelease = 0.15
	meterDecay   = 0.02
	meterFloorDB = -40.0
)

var (
	meterLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#3CE074"))
	meterMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0C648"))
	meterHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F26056"))
	meterPeakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFCD2"))
)

// levelMeter is a mono RMS meter with peak hold.
type levelMeter struct {
	rms  float64
	peak float64
	buf  []float64
}

func newLevelMeter() *levelMeter {
	return &levelMeter{buf: make([]float64, meterWindow)}
}

func (v *levelMeter) update(src Levels) {
	if src == nil {
		return
	}
	src.Latest(v.buf)

	var sum float64
	for _, s := range v.buf {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(v.buf)))

	if rms > v.rms {
		v.rms += (rms - v.rms) * meterAttack
	} else {
		v.rms += (rms - v.rms) * meterRelease
	}
	if v.rms > v.peak {
		v.peak = v.rms
	} else {
		v.peak = max(0, v.peak-meterDecay)
	}
}

// rmsToLevel maps an RMS value onto 0..1 using a dB scale.
func rmsToLevel(rms float64) float64 {
	if rms < 1e-6 {
		return 0
	}
	db := 20 * math.Log10(rms)
	if db < meterFloorDB {
		return 0
	}
	return min((db-meterFloorDB)/-meterFloorDB, 1)
}

func (v *levelMeter) view(width int) string {
	if width < 4 {
		return ""
	}
	filled := int(rmsToLevel(v.rms) * float64(width))
	peakPos := min(int(rmsToLevel(v.peak)*float64(width)), width-1)

	var sb strings.Builder
	for i := range width {
		switch {
		case i < filled:
			sb.WriteString(meterSegmentStyle(i, width).Render("█"))
		case i == peakPos && peakPos > 0:
			sb.WriteString(meterPeakStyle.Render("│"))
		default:
			sb.WriteString(layerOffStyle.Render("─"))
		}
	}
	return sb.String()
}

func meterSegmentStyle(i, width int) lipgloss.Style {
	switch {
	case i < width*6/10:
		return meterLowStyle
	case i < width*8/10:
		return meterMidStyle
	default:
		return meterHighStyle
	}
}
