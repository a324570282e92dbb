package webaudio

import (
	"image/color"
	"testing"
)

func TestCSSColor(t *testing.T) {
	tests := []struct {
		c    color.NRGBA
		want string
	}{
		{color.NRGBA{29, 20, 73, 255}, "rgb(29,20,73)"},
		{color.NRGBA{255, 150, 80, 0}, "rgba(255,150,80,0)"},
		{color.NRGBA{10, 20, 30, 51}, "rgba(10,20,30,0.2)"},
	}
	for _, tt := range tests {
		if got := CSSColor(tt.c); got != tt.want {
			t.Errorf("CSSColor(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestVolumePercent(t *testing.T) {
	tests := map[float64]int{0: 0, 0.5: 25, 1: 50, 2: 100, 3: 100, -1: 0, 0.333: 17}
	for in, want := range tests {
		if got := VolumePercent(in); got != want {
			t.Errorf("VolumePercent(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSlider(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1.25", 1.25, false},
		{"0", 0, false},
		{"7", MaxScale, false},
		{"-2", 0, false},
		{"", 0, true},
		{"loud", 0, true},
		{"NaN", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSlider(tt.in, 0, MaxScale)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSlider(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSlider(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
