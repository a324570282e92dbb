package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sunwave-viz/sunwave/internal/player"
)

type frameMsg time.Time

type trackOpenedMsg struct {
	index  int
	path   string
	meta   player.Metadata
	player Playback
	err    error
}

type playbackEndedMsg struct {
	player Playback
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func checkDone(p Playback) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{player: p}
	}
}
