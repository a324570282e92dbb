//go:build js && wasm

// Command sunwave-web runs the visualizer in a browser page. Build with
// GOOS=js GOARCH=wasm and serve it next to index.html and wasm_exec.js.
package main

import (
	"log"
	"os"
	"syscall/js"

	"github.com/sunwave-viz/sunwave/internal/sampler"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/webaudio"
)

const fftSize = 256

type page struct {
	doc      js.Value
	graph    *webaudio.Graph
	samples  *sampler.Source
	renderer *scene.Renderer
	canvas   *webaudio.Canvas
	cfg      scene.Config
	logger   *log.Logger
}

func main() {
	logger := log.New(os.Stderr, "sunwave ", 0)
	p, err := setup(logger)
	if err != nil {
		logger.Printf("setup: %v", err)
		return
	}
	p.loop()
	select {}
}

func setup(logger *log.Logger) (*page, error) {
	doc := js.Global().Get("document")
	graph, err := webaudio.NewGraph(fftSize)
	if err != nil {
		return nil, err
	}
	src, err := sampler.Configure(graph, graph.BufferLength())
	if err != nil {
		return nil, err
	}
	canvas := webaudio.NewCanvas(doc.Call("querySelector", "canvas"))

	p := &page{
		doc:      doc,
		graph:    graph,
		samples:  src,
		renderer: scene.New(canvas, src),
		canvas:   canvas,
		cfg:      scene.DefaultConfig(),
		logger:   logger,
	}
	p.setupUI()
	return p, nil
}

func (p *page) byID(id string) js.Value {
	return p.doc.Call("getElementById", id)
}

func (p *page) on(id, event string, fn func(el js.Value)) {
	el := p.byID(id)
	if el.IsNull() {
		return
	}
	el.Set(event, js.FuncOf(func(js.Value, []js.Value) any {
		fn(el)
		return nil
	}))
}

func (p *page) setupUI() {
	p.on("fsButton", "onclick", func(js.Value) {
		el := p.canvas.Element()
		for _, name := range []string{"requestFullscreen", "webkitRequestFullscreen", "mozRequestFullScreen"} {
			if el.Get(name).Truthy() {
				el.Call(name)
				return
			}
		}
	})

	play := p.byID("playButton")
	p.on("playButton", "onclick", func(el js.Value) {
		if el.Get("dataset").Get("playing").String() == "yes" {
			p.graph.Pause()
			el.Get("dataset").Set("playing", "no")
			return
		}
		p.graph.Play()
		el.Get("dataset").Set("playing", "yes")
	})
	p.graph.OnEnded(func() {
		if !play.IsNull() {
			play.Get("dataset").Set("playing", "no")
		}
	})

	p.slider("volumeSlider", webaudio.MaxGain, func(v float64) {
		p.graph.SetVolume(v)
		if label := p.byID("volumeLabel"); !label.IsNull() {
			label.Set("innerHTML", webaudio.VolumePercent(v))
		}
	})
	p.slider("sunScaleSlider", webaudio.MaxScale, p.renderer.SetSunScale)
	p.slider("mountainScaleSlider", webaudio.MaxScale, p.renderer.SetMountainScale)
	p.slider("groundScaleSlider", webaudio.MaxScale, p.renderer.SetGroundScale)

	if sel := p.byID("trackSelect"); !sel.IsNull() {
		p.graph.Load(sel.Get("value").String())
	}
	p.on("trackSelect", "onchange", func(el js.Value) {
		p.graph.Pause()
		if !play.IsNull() {
			play.Get("dataset").Set("playing", "no")
		}
		p.graph.Load(el.Get("value").String())
	})

	p.checkbox("gradientCB", &p.cfg.Gradient)
	p.checkbox("mountainsCB", &p.cfg.Mountains)
	p.checkbox("circlesCB", &p.cfg.Sun)
	p.checkbox("groundCB", &p.cfg.Ground)
	p.checkbox("noiseCB", &p.cfg.Noise)
	p.checkbox("invertCB", &p.cfg.Invert)
	p.checkbox("embossCB", &p.cfg.Emboss)

	p.on("highshelfCB", "onclick", func(el js.Value) {
		on := el.Get("checked").Bool()
		p.graph.SetTrebleBoost(on)
		p.samples.SetTrebleBoost(on)
	})
	p.on("lowshelfCB", "onclick", func(el js.Value) {
		on := el.Get("checked").Bool()
		p.graph.SetBassBoost(on)
		p.samples.SetBassBoost(on)
	})
}

// slider feeds a range input's value to set on every input event, and
// once at startup so the page's initial value applies.
func (p *page) slider(id string, hi float64, set func(float64)) {
	p.on(id, "oninput", func(el js.Value) {
		v, err := webaudio.ParseSlider(el.Get("value").String(), 0, hi)
		if err != nil {
			p.logger.Printf("%s: %v", id, err)
			return
		}
		set(v)
	})
	if el := p.byID(id); !el.IsNull() {
		el.Call("dispatchEvent", js.Global().Get("Event").New("input"))
	}
}

// checkbox mirrors a layer flag into the element and back.
func (p *page) checkbox(id string, flag *bool) {
	if el := p.byID(id); !el.IsNull() {
		el.Set("checked", *flag)
	}
	p.on(id, "onclick", func(el js.Value) {
		*flag = el.Get("checked").Bool()
	})
}

func (p *page) loop() {
	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		js.Global().Call("requestAnimationFrame", frame)
		if err := p.renderer.Render(p.cfg); err != nil {
			p.logger.Printf("render: %v", err)
		}
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)
}
