package ui

import (
	"bytes"
	"errors"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/queue"
	"github.com/sunwave-viz/sunwave/internal/sampler"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/surface"
)

type stubPlayback struct {
	paused   bool
	pos      time.Duration
	volume   float64
	bass     bool
	treble   bool
	restarts int
	closed   bool
	seekErr  error
	done     chan struct{}
}

func newStubPlayback() *stubPlayback {
	return &stubPlayback{volume: 1, done: make(chan struct{})}
}

func (s *stubPlayback) TogglePause()            { s.paused = !s.paused }
func (s *stubPlayback) Paused() bool            { return s.paused }
func (s *stubPlayback) Position() time.Duration { return s.pos }
func (s *stubPlayback) Duration() time.Duration { return time.Minute }
func (s *stubPlayback) Seek(d time.Duration) error {
	if s.seekErr != nil {
		return s.seekErr
	}
	s.pos += d
	return nil
}
func (s *stubPlayback) Volume() float64        { return s.volume }
func (s *stubPlayback) SetVolume(v float64)    { s.volume = max(0, min(v, 1)) }
func (s *stubPlayback) AdjustVolume(d float64) { s.SetVolume(s.volume + d) }
func (s *stubPlayback) SetBassBoost(on bool)   { s.bass = on }
func (s *stubPlayback) SetTrebleBoost(on bool) { s.treble = on }
func (s *stubPlayback) Restart() error         { s.restarts++; s.pos = 0; return nil }
func (s *stubPlayback) Done() <-chan struct{}  { return s.done }
func (s *stubPlayback) Close()                 { s.closed = true }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, paths ...string) (Model, *bytes.Buffer) {
	t.Helper()
	src, err := sampler.Configure(nil, 16)
	if err != nil {
		t.Fatal(err)
	}
	raster := surface.New(64, 40)
	var logs bytes.Buffer
	m := New(Deps{
		Renderer: scene.New(raster, src),
		Raster:   raster,
		Samples:  src,
		Queue:    queue.New(paths, 0),
		Open:     func(string) (Playback, error) { return newStubPlayback(), nil },
		Config:   scene.DefaultConfig(),
		FPS:      30,
		Logger:   log.New(&logs, "", 0),
	})
	return m, &logs
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func opened(m Model, p *stubPlayback, path string) Model {
	next, _ := m.Update(trackOpenedMsg{index: m.deps.Queue.CurrentIndex(), path: path, meta: player.Metadata{Title: "Song", Artist: "Band"}, player: p})
	return next.(Model)
}

func TestLayerKeysToggleConfig(t *testing.T) {
	m, _ := newTestModel(t)
	for _, k := range []string{"g", "m", "s", "d", "x", "i", "e"} {
		m = update(t, m, runes(k))
	}
	want := scene.Config{Gradient: true, Noise: true, Invert: true, Emboss: true}
	if m.Config() != want {
		t.Fatalf("Config() = %+v, want %+v", m.Config(), want)
	}
}

func TestBoostKeysDriveSamplesAndPlayer(t *testing.T) {
	m, logs := newTestModel(t, "a.mp3")
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	m = update(t, m, runes("b"))
	m = update(t, m, runes("t"))
	if !m.deps.Samples.BassBoost() || !m.deps.Samples.TrebleBoost() {
		t.Fatal("expected visual emphasis enabled")
	}
	if !p.bass || !p.treble {
		t.Fatal("expected audible shelves enabled")
	}
	if !strings.Contains(logs.String(), "bass boost on") {
		t.Fatalf("expected boost change to be logged, got %q", logs.String())
	}
}

func TestTrackOpenedAppliesState(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3")
	m.deps.Samples.SetBassBoost(true)
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	if p.volume != player.DefaultVolume {
		t.Fatalf("player volume = %v, want default %v", p.volume, player.DefaultVolume)
	}
	if !p.bass {
		t.Fatal("expected existing bass boost to carry over to new track")
	}
	if m.title != "Band - Song" || m.deps.Queue.Current().Title != "Band - Song" {
		t.Fatalf("title = %q", m.title)
	}
}

func TestTrackOpenFailureIsLogged(t *testing.T) {
	m, logs := newTestModel(t, "a.mp3")
	next, _ := m.Update(trackOpenedMsg{path: "a.mp3", err: errors.New("bad header")})
	m = next.(Model)
	if !strings.Contains(m.status, "bad header") || !strings.Contains(logs.String(), "bad header") {
		t.Fatalf("status %q, logs %q", m.status, logs.String())
	}
}

func TestNextTrackClosesPreviousPlayer(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3", "b.mp3")
	first := newStubPlayback()
	m = opened(m, first, "a.mp3")

	next, cmd := m.Update(runes("n"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected open command for next track")
	}
	if m.deps.Queue.CurrentIndex() != 1 {
		t.Fatalf("queue index = %d, want 1", m.deps.Queue.CurrentIndex())
	}
	msg, ok := cmd().(trackOpenedMsg)
	if !ok || msg.path != "b.mp3" {
		t.Fatalf("open command produced %#v", msg)
	}
	m = update(t, m, msg)
	if !first.closed {
		t.Fatal("expected previous player to be closed")
	}
}

func TestPlaybackEndedRestartsSingleTrack(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3")
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	m = update(t, m, playbackEndedMsg{player: p})
	if p.restarts != 1 {
		t.Fatalf("restarts = %d, want 1", p.restarts)
	}

	m = update(t, m, playbackEndedMsg{player: newStubPlayback()})
	if p.restarts != 1 {
		t.Fatal("stale end message should be ignored")
	}
}

func TestPlaybackEndedAdvancesQueue(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3", "b.mp3")
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	next, cmd := m.Update(playbackEndedMsg{player: p})
	m = next.(Model)
	if cmd == nil || m.deps.Queue.CurrentIndex() != 1 {
		t.Fatalf("expected queue to advance, index %d", m.deps.Queue.CurrentIndex())
	}

	m.repeat = RepeatOne
	_ = update(t, m, playbackEndedMsg{player: p})
	if p.restarts != 1 {
		t.Fatalf("repeat-one restarts = %d, want 1", p.restarts)
	}
}

func TestTransportKeys(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3")
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !p.paused || !m.paused {
		t.Fatal("expected space to pause")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if p.pos != seekStep {
		t.Fatalf("position = %v, want %v", p.pos, seekStep)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if math.Abs(p.volume-(player.DefaultVolume-volumeStep)) > 1e-9 {
		t.Fatalf("volume = %v", p.volume)
	}

	p.seekErr = errors.New("no seek")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.status != "no seek" {
		t.Fatalf("status = %q, want seek error", m.status)
	}
}

func TestScaleKeysSpringTowardTarget(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.deps.Renderer.Scales().Sun
	m = update(t, m, runes("2"))
	m = update(t, m, runes("2"))
	if got := m.scaleTargets().Sun; got != start+2*scaleStep {
		t.Fatalf("sun target = %v, want %v", got, start+2*scaleStep)
	}

	m = update(t, m, frameMsg(time.Now()))
	first := m.deps.Renderer.Scales().Sun
	if first <= start || first >= start+2*scaleStep {
		t.Fatalf("after one frame sun scale = %v, want strictly between", first)
	}
	for range 120 {
		m = update(t, m, frameMsg(time.Now()))
	}
	if got := m.deps.Renderer.Scales().Sun; got < start+2*scaleStep-0.01 {
		t.Fatalf("spring settled at %v, want %v", got, start+2*scaleStep)
	}

	for range 40 {
		m = update(t, m, runes("3"))
	}
	if got := m.scaleTargets().Mountain; got != 0 {
		t.Fatalf("mountain target = %v, want clamp at 0", got)
	}
}

func TestFrameRendersPicture(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})
	m = update(t, m, frameMsg(time.Now()))
	if m.Frame() == "" {
		t.Fatal("expected a rendered frame")
	}
	if !strings.Contains(m.View(), m.Frame()[:10]) {
		t.Fatal("view should include the frame")
	}

	m = update(t, m, runes("f"))
	if m.View() == "" || strings.Contains(m.View(), "sunwave") {
		t.Fatal("fullscreen view should hide the chrome")
	}
}

func TestQuitClosesPlayer(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3")
	p := newStubPlayback()
	m = opened(m, p, "a.mp3")

	next, cmd := m.Update(runes("q"))
	if cmd == nil || !p.closed || next.(Model).View() != "" {
		t.Fatal("expected quit to close the player and clear the view")
	}
}

func TestOutOfOrderOpensKeepCurrentTrack(t *testing.T) {
	m, logs := newTestModel(t, "a.mp3", "b.mp3", "c.mp3")
	m = opened(m, newStubPlayback(), "a.mp3")

	next, openB := m.Update(runes("n"))
	m = next.(Model)
	next, openC := m.Update(runes("n"))
	m = next.(Model)
	if m.deps.Queue.CurrentIndex() != 2 {
		t.Fatalf("queue index = %d, want 2", m.deps.Queue.CurrentIndex())
	}

	// c finishes opening before b.
	msgC := openC().(trackOpenedMsg)
	msgB := openB().(trackOpenedMsg)
	m = update(t, m, msgC)
	m = update(t, m, msgB)

	if m.player != msgC.player {
		t.Fatal("late open of b replaced the player for c")
	}
	if !msgB.player.(*stubPlayback).closed {
		t.Fatal("stale player for b left running")
	}
	if msgC.player.(*stubPlayback).closed {
		t.Fatal("current player for c was closed")
	}
	if m.title != "c" {
		t.Fatalf("title = %q, want c", m.title)
	}
	if got := m.deps.Queue.Current().Title; got != "c" {
		t.Fatalf("current queue title = %q, want c", got)
	}
	if !strings.Contains(logs.String(), "discarding stale open of b.mp3") {
		t.Fatalf("stale open not logged: %q", logs.String())
	}
}

func TestStaleOpenFailureLeavesStatusAlone(t *testing.T) {
	m, _ := newTestModel(t, "a.mp3", "b.mp3")
	m = opened(m, newStubPlayback(), "a.mp3")
	m = update(t, m, trackOpenedMsg{index: 1, path: "b.mp3", err: errors.New("bad header")})
	if m.status != "" {
		t.Fatalf("status = %q, want empty for a track no longer selected", m.status)
	}
}

func TestEmphasisKeysReachRendererSamples(t *testing.T) {
	src, err := sampler.Configure(nil, 16)
	if err != nil {
		t.Fatal(err)
	}
	raster := surface.New(32, 20)
	m := New(Deps{Renderer: scene.New(raster, src), Raster: raster})
	if m.deps.Samples != src {
		t.Fatal("model did not adopt the renderer's sample source")
	}
	m = update(t, m, runes("b"))
	m = update(t, m, runes("t"))
	if !src.BassBoost() || !src.TrebleBoost() {
		t.Fatalf("renderer samples bass=%v treble=%v, want both on", src.BassBoost(), src.TrebleBoost())
	}
}
