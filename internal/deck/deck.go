// Package deck drives playback for front-ends that poll once per frame
// instead of running an event loop of their own.
package deck

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/queue"
	"github.com/sunwave-viz/sunwave/internal/util"
)

// ErrEmpty is returned when there is nothing queued to play.
var ErrEmpty = errors.New("queue is empty")

// Playback is the subset of *player.Player a deck needs.
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

// Emphasis mirrors the audible shelf EQ on the visual side.
type Emphasis interface {
	SetBassBoost(on bool)
	SetTrebleBoost(on bool)
}

// Opener starts playback of one file.
type Opener func(path string) (Playback, error)

// Deck owns the current player and the queue around it.
type Deck struct {
	queue    *queue.Queue
	open     Opener
	emphasis Emphasis
	logger   *log.Logger

	player    Playback
	volume    float64
	bass      bool
	treble    bool
	repeatOne bool
	title     string
}

// New creates a deck. emphasis and logger may be nil.
func New(q *queue.Queue, open Opener, volume float64, emphasis Emphasis, logger *log.Logger) *Deck {
	if q == nil {
		q = queue.New(nil, 0)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if volume <= 0 {
		volume = player.DefaultVolume
	}
	return &Deck{queue: q, open: open, emphasis: emphasis, logger: logger, volume: min(volume, 1)}
}

// Open replaces the current player with one for the queue's current track.
func (d *Deck) Open() error {
	t := d.queue.Current()
	if t == nil {
		return ErrEmpty
	}
	if d.player != nil {
		d.volume = d.player.Volume()
		d.player.Close()
		d.player = nil
	}

	p, err := d.open(t.Path)
	if err != nil {
		d.logger.Printf("open %s: %v", t.Path, err)
		return fmt.Errorf("opening %s: %w", t.Title, err)
	}
	p.SetVolume(d.volume)
	p.SetBassBoost(d.bass)
	p.SetTrebleBoost(d.treble)
	d.player = p

	d.title = t.Title
	if meta := player.ReadMetadata(t.Path); meta.Title != "" {
		d.title = meta.Display()
		d.queue.SetTitle(d.queue.CurrentIndex(), d.title)
	}
	d.logger.Printf("playing %s", t.Path)
	return nil
}

// Next moves to the following track and opens it.
func (d *Deck) Next() error {
	if d.queue.Len() == 0 {
		return ErrEmpty
	}
	d.queue.Advance()
	return d.Open()
}

// Previous moves to the preceding track and opens it.
func (d *Deck) Previous() error {
	if d.queue.Len() == 0 {
		return ErrEmpty
	}
	d.queue.Previous()
	return d.Open()
}

// Poll handles the end of the current track. Call it once per frame.
func (d *Deck) Poll() error {
	if d.player == nil {
		return nil
	}
	select {
	case <-d.player.Done():
	default:
		return nil
	}
	if d.repeatOne {
		return d.player.Restart()
	}
	return d.Next()
}

func (d *Deck) TogglePause() {
	if d.player != nil {
		d.player.TogglePause()
	}
}

func (d *Deck) Paused() bool {
	return d.player != nil && d.player.Paused()
}

func (d *Deck) Seek(delta time.Duration) error {
	if d.player == nil {
		return nil
	}
	return d.player.Seek(delta)
}

func (d *Deck) AdjustVolume(delta float64) {
	if d.player == nil {
		d.volume = max(0, min(d.volume+delta, 1))
		return
	}
	d.player.AdjustVolume(delta)
	d.volume = d.player.Volume()
}

func (d *Deck) Volume() float64 { return d.volume }

// SetBassBoost switches the low shelf and the matching visual emphasis.
func (d *Deck) SetBassBoost(on bool) {
	d.bass = on
	if d.player != nil {
		d.player.SetBassBoost(on)
	}
	if d.emphasis != nil {
		d.emphasis.SetBassBoost(on)
	}
	d.logger.Printf("bass boost %s", util.OnOff(on))
}

// SetTrebleBoost switches the high shelf and the matching visual emphasis.
func (d *Deck) SetTrebleBoost(on bool) {
	d.treble = on
	if d.player != nil {
		d.player.SetTrebleBoost(on)
	}
	if d.emphasis != nil {
		d.emphasis.SetTrebleBoost(on)
	}
	d.logger.Printf("treble boost %s", util.OnOff(on))
}

func (d *Deck) BassBoost() bool   { return d.bass }
func (d *Deck) TrebleBoost() bool { return d.treble }

// ToggleRepeat switches between looping the current track and advancing.
func (d *Deck) ToggleRepeat() { d.repeatOne = !d.repeatOne }

func (d *Deck) RepeatOne() bool { return d.repeatOne }

// Title is the display name of the current track.
func (d *Deck) Title() string { return d.title }

// Status is a one-line summary of the playback state.
func (d *Deck) Status() string {
	if d.player == nil {
		return "stopped"
	}
	state := "playing"
	if d.player.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("%s %s / %s  vol %d%%",
		state,
		util.FormatDuration(d.player.Position()),
		util.FormatDuration(d.player.Duration()),
		int(d.volume*100+0.5))
}

// Close stops playback.
func (d *Deck) Close() {
	if d.player != nil {
		d.player.Close()
		d.player = nil
	}
}
