package scene

// Config selects the layers and pixel effects drawn by Render. Front-ends
// mutate it in place between frames.
type Config struct {
	Gradient  bool
	Mountains bool
	Sun       bool
	Ground    bool
	Noise     bool
	Invert    bool
	Emboss    bool
}

// DefaultConfig shows the sky layers and ground with no pixel effects.
func DefaultConfig() Config {
	return Config{
		Mountains: true,
		Sun:       true,
		Ground:    true,
	}
}

// Filtered reports whether any pixel effect is enabled.
func (c Config) Filtered() bool {
	return c.Noise || c.Invert || c.Emboss
}

// Scales holds the three intensity multipliers. Negative or zero values are
// accepted and collapse the affected geometry.
type Scales struct {
	Sun      float64
	Mountain float64
	Ground   float64
}

// DefaultScales returns sun 1, mountains 1, ground perspective 2.
func DefaultScales() Scales {
	return Scales{Sun: 1, Mountain: 1, Ground: 2}
}
