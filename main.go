package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sunwave-viz/sunwave/internal/ui"
	"golang.org/x/term"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sunwave [flags] [file|dir|playlist]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: sunwave needs an interactive terminal")
		os.Exit(1)
	}

	logger, logFile, err := newLogger(*logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	arg := flag.Arg(0)
	if arg == "" {
		browser := ui.NewBrowser()
		if browser.HasError() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", browser.Error())
			os.Exit(1)
		}
		finalModel, err := tea.NewProgram(browser, tea.WithAltScreen()).Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		bm, ok := finalModel.(ui.BrowserModel)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unexpected model type from browser\n")
			os.Exit(1)
		}
		result := bm.Result()
		if result.Cancelled {
			return
		}
		arg = result.Path
	}

	model, err := buildPlaybackModel(arg, optionsFromFlags(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
