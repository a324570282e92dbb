//go:build js && wasm

package webaudio

import (
	"errors"
	"syscall/js"
)

const (
	shelfFrequency = 1000
	trebleGainDB   = 20
	bassGainDB     = 15
)

// ErrNoAudioContext is returned by browsers without WebAudio.
var ErrNoAudioContext = errors.New("webaudio: AudioContext unavailable")

// Graph routes an <audio> element through analyser, gain, high shelf and
// low shelf nodes to the speakers.
type Graph struct {
	ctx      js.Value
	element  js.Value
	analyser js.Value
	gain     js.Value
	high     js.Value
	low      js.Value

	bins     int
	spectrum js.Value // Uint8Array reused every frame
	scratch  []byte
}

// NewGraph builds the node graph. fftSize sets the analyser resolution.
func NewGraph(fftSize int) (*Graph, error) {
	ctor := js.Global().Get("AudioContext")
	if ctor.IsUndefined() {
		ctor = js.Global().Get("webkitAudioContext")
	}
	if ctor.IsUndefined() {
		return nil, ErrNoAudioContext
	}

	g := &Graph{ctx: ctor.New()}
	g.element = js.Global().Get("Audio").New()
	source := g.ctx.Call("createMediaElementSource", g.element)

	g.analyser = g.ctx.Call("createAnalyser")
	g.analyser.Set("fftSize", fftSize)
	g.bins = g.analyser.Get("frequencyBinCount").Int()
	g.spectrum = js.Global().Get("Uint8Array").New(g.bins)
	g.scratch = make([]byte, g.bins)

	g.gain = g.ctx.Call("createGain")
	g.high = g.ctx.Call("createBiquadFilter")
	g.high.Set("type", "highshelf")
	g.low = g.ctx.Call("createBiquadFilter")
	g.low.Set("type", "lowshelf")
	g.SetTrebleBoost(false)
	g.SetBassBoost(false)

	source.Call("connect", g.analyser)
	g.analyser.Call("connect", g.gain)
	g.gain.Call("connect", g.high)
	g.high.Call("connect", g.low)
	g.low.Call("connect", g.ctx.Get("destination"))
	return g, nil
}

// BufferLength is the analyser's frequencyBinCount.
func (g *Graph) BufferLength() int { return g.bins }

// ByteFrequencyData copies the analyser's current spectrum into dst.
func (g *Graph) ByteFrequencyData(dst []byte) {
	g.analyser.Call("getByteFrequencyData", g.spectrum)
	js.CopyBytesToGo(g.scratch, g.spectrum)
	n := copy(dst, g.scratch)
	clear(dst[n:])
}

// Load points the audio element at url.
func (g *Graph) Load(url string) { g.element.Set("src", url) }

// Play resumes a context suspended by autoplay policy and starts playback.
func (g *Graph) Play() {
	if g.ctx.Get("state").String() == "suspended" {
		g.ctx.Call("resume")
	}
	g.element.Call("play")
}

func (g *Graph) Pause() { g.element.Call("pause") }

func (g *Graph) Paused() bool { return g.element.Get("paused").Bool() }

// SetVolume sets the gain node, 0..MaxGain.
func (g *Graph) SetVolume(v float64) {
	g.gain.Get("gain").Set("value", max(0, min(v, MaxGain)))
}

// OnEnded registers fn for the end of the current source.
func (g *Graph) OnEnded(fn func()) {
	g.element.Set("onended", js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	}))
}

func (g *Graph) SetTrebleBoost(on bool) { g.setShelf(g.high, on, trebleGainDB) }
func (g *Graph) SetBassBoost(on bool)   { g.setShelf(g.low, on, bassGainDB) }

func (g *Graph) setShelf(node js.Value, on bool, gainDB float64) {
	now := g.ctx.Get("currentTime")
	if !on {
		node.Get("gain").Call("setValueAtTime", 0, now)
		return
	}
	node.Get("frequency").Call("setValueAtTime", shelfFrequency, now)
	node.Get("gain").Call("setValueAtTime", gainDB, now)
}
