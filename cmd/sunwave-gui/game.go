package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sunwave-viz/sunwave/internal/deck"
	"github.com/sunwave-viz/sunwave/internal/pipeline"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/util"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	scaleStep  = 0.25
	maxScale   = 4.0
)

// Game shows the pipeline's raster in a window.
type Game struct {
	pl     *pipeline.Pipeline
	deck   *deck.Deck
	cfg    scene.Config
	logger *log.Logger

	w, h       int
	showHelp   bool
	fullscreen bool
	status     string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.deck.Close()
		return ebiten.Termination
	}
	g.handleToggles()
	g.handleScales()
	g.handlePlayback()

	if err := g.deck.Poll(); err != nil {
		g.report("playback", err)
	}
	if err := g.pl.Render(g.cfg); err != nil {
		g.report("render", err)
	}
	return nil
}

func (g *Game) handleToggles() {
	toggles := []struct {
		key ebiten.Key
		on  *bool
	}{
		{ebiten.KeyG, &g.cfg.Gradient},
		{ebiten.KeyM, &g.cfg.Mountains},
		{ebiten.KeyS, &g.cfg.Sun},
		{ebiten.KeyD, &g.cfg.Ground},
		{ebiten.KeyX, &g.cfg.Noise},
		{ebiten.KeyI, &g.cfg.Invert},
		{ebiten.KeyE, &g.cfg.Emboss},
	}
	for _, t := range toggles {
		if inpututil.IsKeyJustPressed(t.key) {
			*t.on = !*t.on
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.deck.SetBassBoost(!g.deck.BassBoost())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.deck.SetTrebleBoost(!g.deck.TrebleBoost())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) || inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fullscreen = !g.fullscreen
		ebiten.SetFullscreen(g.fullscreen)
	}
}

func (g *Game) handleScales() {
	r := g.pl.Renderer
	s := r.Scales()
	nudge := func(down, up ebiten.Key, v float64, set func(float64)) {
		switch {
		case inpututil.IsKeyJustPressed(down):
			set(max(0, v-scaleStep))
		case inpututil.IsKeyJustPressed(up):
			set(min(v+scaleStep, maxScale))
		}
	}
	nudge(ebiten.Key1, ebiten.Key2, s.Sun, r.SetSunScale)
	nudge(ebiten.Key3, ebiten.Key4, s.Mountain, r.SetMountainScale)
	nudge(ebiten.Key5, ebiten.Key6, s.Ground, r.SetGroundScale)
}

func (g *Game) handlePlayback() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.deck.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.deck.ToggleRepeat()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.deck.AdjustVolume(volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.deck.AdjustVolume(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		if err := g.deck.Seek(-seekStep); err != nil {
			g.report("seek", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		if err := g.deck.Seek(seekStep); err != nil {
			g.report("seek", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if err := g.deck.Next(); err != nil {
			g.report("next", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if err := g.deck.Previous(); err != nil {
			g.report("previous", err)
		}
	}
}

func (g *Game) report(what string, err error) {
	g.logger.Printf("%s: %v", what, err)
	g.status = err.Error()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pl.Raster.Image().Pix)
	if g.showHelp {
		ebitenutil.DebugPrint(screen, g.overlay())
	}
}

func (g *Game) overlay() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", g.deck.Title(), g.deck.Status())
	if g.status != "" {
		fmt.Fprintf(&b, "! %s\n", g.status)
	}
	c := g.cfg
	fmt.Fprintf(&b, "\n[g] gradient %s  [m] mountains %s  [s] sun %s  [d] ground %s\n",
		util.OnOff(c.Gradient), util.OnOff(c.Mountains), util.OnOff(c.Sun), util.OnOff(c.Ground))
	fmt.Fprintf(&b, "[x] noise %s  [i] invert %s  [e] emboss %s\n",
		util.OnOff(c.Noise), util.OnOff(c.Invert), util.OnOff(c.Emboss))
	fmt.Fprintf(&b, "[b] bass %s  [t] treble %s  [r] repeat one %s\n",
		util.OnOff(g.deck.BassBoost()), util.OnOff(g.deck.TrebleBoost()), util.OnOff(g.deck.RepeatOne()))
	s := g.pl.Renderer.Scales()
	fmt.Fprintf(&b, "[1/2] sun %.2f  [3/4] mountains %.2f  [5/6] ground %.2f\n", s.Sun, s.Mountain, s.Ground)
	b.WriteString("space pause  arrows seek/volume  n/p track  F11 fullscreen  q quit")
	return b.String()
}

func (g *Game) Layout(_, _ int) (int, int) { return g.w, g.h }
