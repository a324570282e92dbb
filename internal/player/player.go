// Package player decodes local audio files and plays them through oto,
// feeding a Tap for analysis and optional shelf boosts on the way out.
package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultVolume is the initial output gain.
const DefaultVolume = 0.5

// ErrClosed is returned when restarting a closed player.
var ErrClosed = errors.New("player closed")

// countingReader tracks how many output bytes the device has pulled.
type countingReader struct {
	reader io.Reader
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

// Player plays one file. All methods are safe for concurrent use.
type Player struct {
	decoder   audioDecoder
	counter   *countingReader
	tap       *Tap
	eq        *shelfReader
	otoCtx    *oto.Context
	otoPlayer *oto.Player
	duration  time.Duration
	volume    float64
	paused    bool
	done      chan struct{}
	finished  bool
	stopMon   chan struct{}
	cleanup   func()
	mu        sync.Mutex
	closed    bool
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputSampleRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
			// Keep the device buffer short so the tap tracks what is audible.
			BufferSize: 50 * time.Millisecond,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens path and starts playing it. Samples reaching the device are
// mirrored into tap, which may be nil.
func New(path string, tap *Tap) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	raw, err := newDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	dec, err := normalize(raw)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("preparing %s: %w", path, err)
	}

	ctx, err := initOto()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening audio device: %w", err)
	}

	counter := &countingReader{reader: dec}
	p := &Player{
		decoder:  dec,
		counter:  counter,
		tap:      tap,
		eq:       newShelfReader(&tapReader{r: counter, tap: tap}),
		otoCtx:   ctx,
		duration: bytesToDuration(dec.Length()),
		volume:   DefaultVolume,
		done:     make(chan struct{}),
		stopMon:  make(chan struct{}),
		cleanup:  func() { f.Close() },
	}
	if tap != nil {
		tap.Clear()
	}

	p.otoPlayer = ctx.NewPlayer(p.eq)
	p.otoPlayer.SetVolume(p.volume)
	p.otoPlayer.Play()

	go p.monitor(p.stopMon, p.done)
	return p, nil
}

func bytesToDuration(n int64) time.Duration {
	return time.Duration(float64(n) / bytesPerSec * float64(time.Second))
}

func (p *Player) monitor(stop <-chan struct{}, done chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		ended := !p.paused && p.counter.Pos() >= p.decoder.Length()
		if ended && p.otoPlayer != nil {
			ended = !p.otoPlayer.IsPlaying()
		}
		if ended && p.done == done {
			p.finishLocked()
		}
		p.mu.Unlock()

		if ended {
			return
		}
	}
}

func (p *Player) finishLocked() {
	if p.done != nil && !p.finished {
		close(p.done)
		p.finished = true
	}
}

// Done returns a channel that closes when playback reaches the end or the
// player is closed.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Restart rewinds to the beginning and resumes playback with a fresh Done
// channel.
func (p *Player) Restart() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := p.seekLocked(0); err != nil {
		return err
	}
	close(p.stopMon)
	p.stopMon = make(chan struct{})
	p.done = make(chan struct{})
	p.finished = false
	p.paused = false
	p.restartOutputLocked()
	go p.monitor(p.stopMon, p.done)
	return nil
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = !p.paused
	if p.otoPlayer == nil {
		return
	}
	if p.paused {
		p.otoPlayer.Pause()
	} else {
		p.otoPlayer.Play()
	}
}

// Pause stops output without toggling.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = true
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
	}
}

// Paused reports whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	return bytesToDuration(p.counter.Pos())
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// clampSeekByteOffset converts a target time to a frame-aligned byte offset
// within [0, total].
func clampSeekByteOffset(target time.Duration, bytesPerSecond, total, frameSize int64) int64 {
	pos := int64(target.Seconds() * float64(bytesPerSecond))
	pos = max(0, min(pos, total))
	return pos - pos%frameSize
}

// Seek moves playback by delta from the current position.
func (p *Player) Seek(delta time.Duration) error {
	return p.SeekTo(p.Position()+delta, true)
}

// SeekTo jumps to an absolute position. With resume false playback is left
// paused at the new position.
func (p *Player) SeekTo(target time.Duration, resume bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pos := clampSeekByteOffset(target, bytesPerSec, p.decoder.Length(), outputFrameSize)
	if err := p.seekLocked(pos); err != nil {
		return err
	}
	if !resume {
		p.paused = true
	}
	p.restartOutputLocked()
	return nil
}

func (p *Player) seekLocked(pos int64) error {
	if _, err := p.decoder.Seek(pos, io.SeekStart); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}
	p.counter.SetPos(pos)
	if p.eq != nil {
		p.eq.realign()
	}
	if p.tap != nil {
		p.tap.Clear()
	}
	return nil
}

// restartOutputLocked replaces the oto player to flush its buffered audio.
func (p *Player) restartOutputLocked() {
	if p.otoPlayer == nil || p.otoCtx == nil {
		return
	}
	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.eq)
	p.otoPlayer.SetVolume(p.volume)
	if !p.paused {
		p.otoPlayer.Play()
	}
}

// Volume returns the current volume in [0, 1].
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = max(0, min(v, 1))
	if p.otoPlayer != nil {
		p.otoPlayer.SetVolume(p.volume)
	}
}

// AdjustVolume changes the volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.SetVolume(p.Volume() + delta)
}

// SetBassBoost enables the +15 dB low shelf at 1 kHz.
func (p *Player) SetBassBoost(on bool) {
	if p.eq != nil {
		p.eq.setBass(on)
	}
}

// SetTrebleBoost enables the +20 dB high shelf at 1 kHz.
func (p *Player) SetTrebleBoost(on bool) {
	if p.eq != nil {
		p.eq.setTreble(on)
	}
}

// Close stops playback and releases the file.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	if p.stopMon != nil {
		close(p.stopMon)
	}
	p.finishLocked()
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
		p.otoPlayer.Close()
	}
	if p.cleanup != nil {
		p.cleanup()
	}
}
