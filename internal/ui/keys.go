package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause, SeekBack, SeekFwd, VolUp, VolDown key.Binding
	Next, Prev, Repeat, Shuffle              key.Binding

	Gradient, Mountains, Sun, Ground key.Binding
	Noise, Invert, Emboss            key.Binding
	Bass, Treble                     key.Binding

	SunDown, SunUp           key.Binding
	MountainDown, MountainUp key.Binding
	GroundDown, GroundUp     key.Binding

	Fullscreen, Help, Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		SeekBack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-5s")),
		SeekFwd:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+5s")),
		VolUp:    key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/+", "vol up")),
		VolDown:  key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓/-", "vol down")),
		Next:     key.NewBinding(key.WithKeys("n", ">"), key.WithHelp("n", "next track")),
		Prev:     key.NewBinding(key.WithKeys("p", "<"), key.WithHelp("p", "prev track")),
		Repeat:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		Shuffle:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "shuffle")),

		Gradient:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gradient")),
		Mountains: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mountains")),
		Sun:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sun")),
		Ground:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "ground")),
		Noise:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "noise")),
		Invert:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invert")),
		Emboss:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "emboss")),
		Bass:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bass boost")),
		Treble:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "treble boost")),

		SunDown:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2", "sun scale")),
		SunUp:        key.NewBinding(key.WithKeys("2")),
		MountainDown: key.NewBinding(key.WithKeys("3"), key.WithHelp("3/4", "mountain scale")),
		MountainUp:   key.NewBinding(key.WithKeys("4")),
		GroundDown:   key.NewBinding(key.WithKeys("5"), key.WithHelp("5/6", "ground scale")),
		GroundUp:     key.NewBinding(key.WithKeys("6")),

		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.SeekFwd, k.VolUp, k.Next, k.Fullscreen, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.SeekBack, k.SeekFwd, k.VolUp, k.VolDown},
		{k.Next, k.Prev, k.Repeat, k.Shuffle, k.Fullscreen},
		{k.Gradient, k.Mountains, k.Sun, k.Ground},
		{k.Noise, k.Invert, k.Emboss, k.Bass, k.Treble},
		{k.SunDown, k.MountainDown, k.GroundDown, k.Help, k.Quit},
	}
}
