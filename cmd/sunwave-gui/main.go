// Command sunwave-gui plays audio files in a window with the sunwave
// visualizer drawn at full resolution.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sunwave-viz/sunwave/internal/deck"
	"github.com/sunwave-viz/sunwave/internal/media"
	"github.com/sunwave-viz/sunwave/internal/pipeline"
	"github.com/sunwave-viz/sunwave/internal/player"
	"github.com/sunwave-viz/sunwave/internal/queue"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sunwave-gui [flags] [file|dir|playlist]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *logFlag {
		logger = log.New(os.Stderr, "sunwave-gui ", log.LstdFlags)
	}

	arg := flag.Arg(0)
	if arg == "" {
		arg = "."
	}
	if err := run(arg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(arg string, logger *log.Logger) error {
	paths, start, err := media.Tracks(arg)
	if err != nil {
		return err
	}
	pl, err := pipeline.New(pipeline.Options{
		Width:     *widthFlag,
		Height:    *heightFlag,
		Bins:      *binsFlag,
		Smoothing: *smoothingFlag,
		MinDB:     *minDBFlag,
		MaxDB:     *maxDBFlag,
	})
	if err != nil {
		return err
	}

	open := func(path string) (deck.Playback, error) {
		p, err := player.New(path, pl.Tap)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	d := deck.New(queue.New(paths, start), open, *volumeFlag, pl.Samples, logger)
	if err := d.Open(); err != nil {
		return err
	}
	defer d.Close()

	g := &Game{
		pl:     pl,
		deck:   d,
		cfg:    sceneConfigFromFlags(),
		logger: logger,
		w:      *widthFlag,
		h:      *heightFlag,
	}

	ebiten.SetWindowSize(*widthFlag*max(1, *zoomFlag), *heightFlag*max(1, *zoomFlag))
	ebiten.SetWindowTitle("sunwave")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if *fpsFlag > 0 {
		ebiten.SetTPS(*fpsFlag)
	}
	return ebiten.RunGame(g)
}
