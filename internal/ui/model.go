// Package ui contains the terminal front-end: a file browser and the
// visualizer screen that drives playback and frame rendering.
package ui

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/queue"
	"github.com/sunwave-viz/sunwave/internal/sampler"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/surface"
	"github.com/sunwave-viz/sunwave/internal/termview"
	"github.com/sunwave-viz/sunwave/internal/util"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	scaleStep  = 0.25
	maxScale   = 4.0
)

// Playback is the subset of *player.Player the screen drives.
type Playback interface {
	TogglePause()
	Paused() bool
	Position() time.Duration
	Duration() time.Duration
	Seek(delta time.Duration) error
	Volume() float64
	SetVolume(v float64)
	AdjustVolume(delta float64)
	SetBassBoost(on bool)
	SetTrebleBoost(on bool)
	Restart() error
	Done() <-chan struct{}
	Close()
}

// Deps wires the visualizer screen to the rest of the program.
type Deps struct {
	Renderer *scene.Renderer
	Raster   *surface.Raster
	Samples  *sampler.Source
	Queue    *queue.Queue
	// Levels feeds the level meter; usually the playback tap.
	Levels Levels
	// Open starts playback of a file.
	Open   func(path string) (Playback, error)
	Config scene.Config
	FPS    int
	Volume float64
	Logger *log.Logger
	Rand   *rand.Rand
}

type scaleSpring struct {
	pos, vel, target float64
}

func (s *scaleSpring) nudge(delta float64) {
	s.target = max(0, min(s.target+delta, maxScale))
}

// Model is the visualizer screen.
type Model struct {
	deps     Deps
	cfg      scene.Config
	keys     keyMap
	help     help.Model
	progress progress.Model
	term     *termview.Renderer
	meter    *levelMeter
	spring   harmonica.Spring
	scales   [3]scaleSpring // sun, mountains, ground

	player   Playback
	title    string
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	paused   bool
	repeat   RepeatMode

	frame      string
	status     string
	fullscreen bool
	width      int
	height     int
	quitting   bool
}

// New creates the visualizer screen. Missing optional deps get defaults.
func New(d Deps) Model {
	if d.FPS <= 0 {
		d.FPS = 60
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard, "", 0)
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if d.Volume <= 0 {
		d.Volume = player.DefaultVolume
	}
	if d.Queue == nil {
		d.Queue = queue.New(nil, 0)
	}
	// Emphasis keys must reach the buffer the renderer draws from.
	if d.Samples == nil && d.Renderer != nil {
		d.Samples, _ = d.Renderer.Samples().(*sampler.Source)
	}
	if d.Samples == nil {
		d.Samples, _ = sampler.Configure(nil, sampler.DefaultBufferLength)
	}

	s := scene.DefaultScales()
	if d.Renderer != nil {
		s = d.Renderer.Scales()
	}
	m := Model{
		deps:     d,
		cfg:      d.Config,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithGradient("#FF38B4", "#FF9650"), progress.WithoutPercentage()),
		term:     termview.NewRenderer(),
		meter:    newLevelMeter(),
		spring:   harmonica.NewSpring(harmonica.FPS(d.FPS), 6.0, 1.0),
		volume:   d.Volume,
		width:    80,
		height:   24,
	}
	for i, v := range []float64{s.Sun, s.Mountain, s.Ground} {
		m.scales[i] = scaleSpring{pos: v, target: v}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.openCurrent(), frameCmd(m.deps.FPS))
}

func (m Model) openCurrent() tea.Cmd {
	if m.deps.Open == nil {
		return nil
	}
	track := m.deps.Queue.Current()
	if track == nil {
		return nil
	}
	index, path, open := m.deps.Queue.CurrentIndex(), track.Path, m.deps.Open
	return func() tea.Msg {
		p, err := open(path)
		return trackOpenedMsg{index: index, path: path, meta: player.ReadMetadata(path), player: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.tick()
		return m, frameCmd(m.deps.FPS)

	case trackOpenedMsg:
		return m.handleTrackOpened(msg)

	case playbackEndedMsg:
		if msg.player != m.player {
			return m, nil
		}
		if m.repeat == RepeatOne || m.deps.Queue.Len() <= 1 {
			if err := m.player.Restart(); err != nil {
				m.deps.Logger.Printf("restart: %v", err)
				return m, nil
			}
			return m, checkDone(m.player)
		}
		m.deps.Queue.Advance()
		return m, m.openCurrent()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleTrackOpened(msg trackOpenedMsg) (tea.Model, tea.Cmd) {
	// Opens run concurrently; only the one for the current track counts.
	if cur := m.deps.Queue.Current(); cur == nil || msg.index != m.deps.Queue.CurrentIndex() || msg.path != cur.Path {
		if msg.player != nil {
			msg.player.Close()
		}
		m.deps.Logger.Printf("discarding stale open of %s", msg.path)
		return m, nil
	}
	if msg.err != nil {
		m.deps.Logger.Printf("open %s: %v", msg.path, msg.err)
		m.status = fmt.Sprintf("cannot play %s: %v", filepath.Base(msg.path), msg.err)
		return m, nil
	}
	if m.player != nil {
		m.player.Close()
	}
	m.player = msg.player
	m.player.SetVolume(m.volume)
	m.player.SetBassBoost(m.deps.Samples.BassBoost())
	m.player.SetTrebleBoost(m.deps.Samples.TrebleBoost())
	m.title = msg.meta.Display()
	m.deps.Queue.SetTitle(msg.index, m.title)
	m.duration = m.player.Duration()
	m.elapsed, m.paused, m.status = 0, false, ""
	m.deps.Logger.Printf("playing %s", msg.path)
	return m, tea.Batch(checkDone(m.player), tea.SetWindowTitle(windowTitle(m.title, false)))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		if m.player != nil {
			m.player.Close()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Fullscreen):
		m.fullscreen = !m.fullscreen

	case key.Matches(msg, k.Gradient):
		m.cfg.Gradient = !m.cfg.Gradient
	case key.Matches(msg, k.Mountains):
		m.cfg.Mountains = !m.cfg.Mountains
	case key.Matches(msg, k.Sun):
		m.cfg.Sun = !m.cfg.Sun
	case key.Matches(msg, k.Ground):
		m.cfg.Ground = !m.cfg.Ground
	case key.Matches(msg, k.Noise):
		m.cfg.Noise = !m.cfg.Noise
	case key.Matches(msg, k.Invert):
		m.cfg.Invert = !m.cfg.Invert
	case key.Matches(msg, k.Emboss):
		m.cfg.Emboss = !m.cfg.Emboss
	case key.Matches(msg, k.Bass):
		m.setBass(!m.deps.Samples.BassBoost())
	case key.Matches(msg, k.Treble):
		m.setTreble(!m.deps.Samples.TrebleBoost())

	case key.Matches(msg, k.SunDown):
		m.scales[0].nudge(-scaleStep)
	case key.Matches(msg, k.SunUp):
		m.scales[0].nudge(scaleStep)
	case key.Matches(msg, k.MountainDown):
		m.scales[1].nudge(-scaleStep)
	case key.Matches(msg, k.MountainUp):
		m.scales[1].nudge(scaleStep)
	case key.Matches(msg, k.GroundDown):
		m.scales[2].nudge(-scaleStep)
	case key.Matches(msg, k.GroundUp):
		m.scales[2].nudge(scaleStep)

	case key.Matches(msg, k.Repeat):
		m.repeat = m.repeat.Next()
	case key.Matches(msg, k.Shuffle):
		m.deps.Queue.ToggleShuffle(m.deps.Rand)
	case key.Matches(msg, k.Next):
		if m.deps.Queue.Len() > 1 {
			m.deps.Queue.Advance()
			return m, m.openCurrent()
		}
	case key.Matches(msg, k.Prev):
		if m.deps.Queue.Len() > 1 {
			m.deps.Queue.Previous()
			return m, m.openCurrent()
		}
	}

	if m.player == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Pause):
		m.player.TogglePause()
		m.paused = m.player.Paused()
		return m, tea.SetWindowTitle(windowTitle(m.title, m.paused))
	case key.Matches(msg, k.SeekBack):
		m.seek(-seekStep)
	case key.Matches(msg, k.SeekFwd):
		m.seek(seekStep)
	case key.Matches(msg, k.VolUp):
		m.player.AdjustVolume(volumeStep)
		m.volume = m.player.Volume()
	case key.Matches(msg, k.VolDown):
		m.player.AdjustVolume(-volumeStep)
		m.volume = m.player.Volume()
	}
	return m, nil
}

func (m *Model) seek(delta time.Duration) {
	if err := m.player.Seek(delta); err != nil {
		m.deps.Logger.Printf("seek: %v", err)
		m.status = err.Error()
	}
	m.elapsed = m.player.Position()
}

// setBass keeps the visual emphasis and the audible shelf in step.
func (m *Model) setBass(on bool) {
	m.deps.Samples.SetBassBoost(on)
	if m.player != nil {
		m.player.SetBassBoost(on)
	}
	m.deps.Logger.Printf("bass boost %s", util.OnOff(on))
}

func (m *Model) setTreble(on bool) {
	m.deps.Samples.SetTrebleBoost(on)
	if m.player != nil {
		m.player.SetTrebleBoost(on)
	}
	m.deps.Logger.Printf("treble boost %s", util.OnOff(on))
}

// tick advances the scale springs, renders one frame and converts it for
// the terminal.
func (m *Model) tick() {
	for i := range m.scales {
		s := &m.scales[i]
		s.pos, s.vel = m.spring.Update(s.pos, s.vel, s.target)
	}
	if m.player != nil {
		m.elapsed = m.player.Position()
		m.paused = m.player.Paused()
		m.volume = m.player.Volume()
	}
	m.meter.update(m.deps.Levels)

	r := m.deps.Renderer
	if r == nil || m.deps.Raster == nil {
		return
	}
	r.SetSunScale(m.scales[0].pos)
	r.SetMountainScale(m.scales[1].pos)
	r.SetGroundScale(m.scales[2].pos)
	if err := r.Render(m.cfg); err != nil {
		m.deps.Logger.Printf("render: %v", err)
		m.status = err.Error()
		return
	}

	img := m.deps.Raster.Image()
	w, h := termview.FitCells(m.width, m.frameRows(), img.Rect.Dx(), img.Rect.Dy())
	m.frame = m.term.Render(img, w, h)
}

// frameRows is the terminal height left for the picture.
func (m Model) frameRows() int {
	if m.fullscreen {
		return m.height
	}
	return max(2, m.height-lipgloss.Height(m.chrome()))
}

// Config returns the current layer toggles.
func (m Model) Config() scene.Config { return m.cfg }

// Frame returns the last rendered terminal frame.
func (m Model) Frame() string { return m.frame }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	frame := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.frame)
	if m.fullscreen {
		return frame
	}
	return frame + "\n" + m.chrome()
}

// chrome renders the lines below the picture.
func (m Model) chrome() string {
	w := max(m.width, 30)

	title := m.title
	if title == "" {
		title = "no track"
	}
	header := headerStyle.Render("sunwave") + "  " + titleStyle.Render(util.Truncate(title, w-12))
	if m.deps.Queue.Len() > 1 {
		header += timeStyle.Render(fmt.Sprintf("  %d/%d", m.deps.Queue.CurrentIndex()+1, m.deps.Queue.Len()))
	}

	elapsed, total := util.FormatDuration(m.elapsed), util.FormatDuration(m.duration)
	m.progress.Width = max(10, w-len(elapsed)-len(total)-6)
	ratio := 0.0
	if m.duration > 0 {
		ratio = m.elapsed.Seconds() / m.duration.Seconds()
	}
	progressLine := timeStyle.Render(elapsed) + " " + m.progress.ViewAs(max(0, min(ratio, 1))) + " " + timeStyle.Render(total)

	state := "▶ playing"
	if m.paused {
		state = "❚❚ paused"
	}
	var flags []string
	if icon := m.repeat.Icon(); icon != "" {
		flags = append(flags, icon)
	}
	if m.deps.Queue.Shuffled() {
		flags = append(flags, "[shuffle]")
	}
	statusLine := statusStyle.Render(strings.Join(append([]string{state, renderVolumePercent(m.volume)}, flags...), "  ")) +
		"  " + m.meter.view(min(24, w/4))

	lines := []string{
		header,
		progressLine,
		statusLine,
		renderLayers(m.cfg, m.deps.Samples.BassBoost(), m.deps.Samples.TrebleBoost()),
	}
	if m.help.ShowAll {
		lines = append(lines, timeStyle.Render(renderScales(m.scaleTargets())))
	}
	if m.status != "" {
		lines = append(lines, errorStyle.Render(util.Truncate(m.status, w-2)))
	}
	lines = append(lines, m.help.View(m.keys))
	return lipgloss.NewStyle().PaddingLeft(1).Render(strings.Join(lines, "\n"))
}

func (m Model) scaleTargets() scene.Scales {
	return scene.Scales{Sun: m.scales[0].target, Mountain: m.scales[1].target, Ground: m.scales[2].target}
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " · sunwave"
	}
	return "▶ " + title + " · sunwave"
}
