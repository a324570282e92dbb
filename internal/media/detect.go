// Package media knows which files the player can open and how to expand a
// command-line argument into a list of tracks.
package media

import (
	"path/filepath"
	"slices"
	"strings"
)

var audioExts = []string{".mp3", ".wav", ".flac", ".ogg"}

var playlistExts = []string{".m3u", ".m3u8", ".pls"}

// IsSupportedExt reports whether ext is a decodable audio format.
func IsSupportedExt(ext string) bool {
	return slices.Contains(audioExts, strings.ToLower(ext))
}

// IsPlaylistExt reports whether ext is a playlist format.
func IsPlaylistExt(ext string) bool {
	return slices.Contains(playlistExts, strings.ToLower(ext))
}

// IsSupportedFile reports whether path has a playable extension.
func IsSupportedFile(path string) bool {
	return IsSupportedExt(filepath.Ext(path))
}

// SupportedExtsList returns a human-readable list of playable formats.
func SupportedExtsList() string {
	return strings.Join(audioExts, ", ")
}
