package main

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sunwave-viz/sunwave/internal/media"
	"github.com/sunwave-viz/sunwave/internal/pipeline"
	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/queue"
	"github.com/sunwave-viz/sunwave/internal/scene"
	"github.com/sunwave-viz/sunwave/internal/ui"
)

type startupOptions struct {
	frame  pipeline.Options
	fps    int
	volume float64
	config scene.Config
}

func optionsFromFlags() startupOptions {
	return startupOptions{
		frame: pipeline.Options{
			Width:     *widthFlag,
			Height:    *heightFlag,
			Bins:      *binsFlag,
			Smoothing: *smoothingFlag,
			MinDB:     *minDBFlag,
			MaxDB:     *maxDBFlag,
		},
		fps:    *fpsFlag,
		volume: *volumeFlag,
		config: sceneConfigFromFlags(),
	}
}

// buildPlaybackModel expands arg into a queue and wires the visualizer
// screen. Audio is opened later by the model itself.
func buildPlaybackModel(arg string, opts startupOptions, logger *log.Logger) (ui.Model, error) {
	paths, start, err := media.Tracks(arg)
	if err != nil {
		return ui.Model{}, err
	}
	if opts.fps <= 0 {
		return ui.Model{}, fmt.Errorf("invalid fps %d", opts.fps)
	}

	pl, err := pipeline.New(opts.frame)
	if err != nil {
		return ui.Model{}, err
	}
	logger.Printf("queue: %d tracks, starting at %d", len(paths), start)

	return ui.New(ui.Deps{
		Renderer: pl.Renderer,
		Raster:   pl.Raster,
		Samples:  pl.Samples,
		Queue:    queue.New(paths, start),
		Levels:   pl.Tap,
		Open: func(path string) (ui.Playback, error) {
			p, err := player.New(path, pl.Tap)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Config: opts.config,
		FPS:    opts.fps,
		Volume: max(0, min(opts.volume, 1)),
		Logger: logger,
	}), nil
}

// newLogger routes logs to path through bubbletea, or discards them.
func newLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "sunwave")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.New(f, "sunwave ", log.LstdFlags|log.Lmicroseconds), f, nil
}
