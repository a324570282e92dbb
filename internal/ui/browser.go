package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sunwave-viz/sunwave/internal/media"
)

// BrowserResult holds the outcome of the file browser.
type BrowserResult struct {
	Path      string
	Cancelled bool
}

type fileItem struct {
	name string
	ext  string
}

func (i fileItem) Title() string { return i.name }
func (i fileItem) Description() string {
	if media.IsPlaylistExt(i.ext) {
		return "playlist " + i.ext
	}
	return i.ext
}
func (i fileItem) FilterValue() string { return i.name }

type folderItem struct{ count int }

func (i folderItem) Title() string       { return "Play this folder" }
func (i folderItem) Description() string { return fmt.Sprintf("%d tracks", i.count) }
func (i folderItem) FilterValue() string { return "folder" }

// BrowserModel lists playable files in the working directory.
type BrowserModel struct {
	list   list.Model
	result *BrowserResult
	err    error
}

// NewBrowser scans the current directory.
func NewBrowser() BrowserModel {
	entries, err := os.ReadDir(".")
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var files, playlists []list.Item
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		item := fileItem{name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), ext: filepath.Ext(e.Name())}
		switch {
		case media.IsSupportedExt(ext):
			files = append(files, item)
		case media.IsPlaylistExt(ext):
			playlists = append(playlists, item)
		}
	}
	if len(files)+len(playlists) == 0 {
		return BrowserModel{err: fmt.Errorf("no audio files in this directory (supported: %s)", media.SupportedExtsList())}
	}

	var items []list.Item
	if len(files) > 1 {
		items = append(items, folderItem{count: len(files)})
	}
	items = append(items, playlists...)
	items = append(items, files...)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#FF9650")).
		BorderLeftForeground(lipgloss.Color("#FF38B4"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.Color("#FF38B4"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "sunwave"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return BrowserModel{list: l}
}

// HasError reports whether the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

// Result returns the browser result after the program finishes.
func (m BrowserModel) Result() BrowserResult {
	if m.result != nil {
		return *m.result
	}
	return BrowserResult{Cancelled: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("sunwave")
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case folderItem:
				m.result = &BrowserResult{Path: "."}
				return m, tea.Quit
			case fileItem:
				m.result = &BrowserResult{Path: item.name + item.ext}
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.result = &BrowserResult{Cancelled: true}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	return m.list.View()
}
