package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoTracks is returned when an argument expands to nothing playable.
var ErrNoTracks = errors.New("no playable tracks")

// Tracks expands path into an ordered track list and the index to start at.
// A playlist yields its playable entries, a directory its audio files, and a
// single file its audio siblings with the file itself selected.
func Tracks(path string) ([]string, int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case info.IsDir():
		files, err := audioFiles(abs)
		if err != nil {
			return nil, 0, err
		}
		if len(files) == 0 {
			return nil, 0, fmt.Errorf("%w in %s", ErrNoTracks, abs)
		}
		return files, 0, nil

	case IsPlaylistExt(filepath.Ext(abs)):
		entries, err := ParseLocalPlaylist(abs)
		if err != nil {
			return nil, 0, err
		}
		entries, _ = FilterPlayable(entries)
		if len(entries) == 0 {
			return nil, 0, fmt.Errorf("%w in playlist %s", ErrNoTracks, abs)
		}
		return entries, 0, nil

	case IsSupportedFile(abs):
		files, err := audioFiles(filepath.Dir(abs))
		if err != nil || !slices.Contains(files, abs) {
			return []string{abs}, 0, nil
		}
		return files, slices.Index(files, abs), nil
	}
	return nil, 0, fmt.Errorf("%w: unsupported file type %q (supported: %s)",
		ErrNoTracks, filepath.Ext(abs), SupportedExtsList())
}

// audioFiles lists supported files in dir, sorted case-insensitively.
func audioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsSupportedFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.SortFunc(files, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return files, nil
}
