package media

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ParseLocalPlaylist parses a .m3u/.m3u8/.pls file into file paths. Relative
// entries resolve against the playlist's directory; URLs are skipped.
func ParseLocalPlaylist(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, errors.New("playlist is not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	baseDir := filepath.Dir(abs)
	var raw []string
	if ext == ".pls" {
		raw = plsEntries(scanner)
	} else {
		raw = m3uEntries(scanner)
	}

	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if isURL(e) {
			continue
		}
		out = append(out, resolveEntry(e, baseDir))
	}
	return out, scanner.Err()
}

// FilterPlayable keeps existing regular files with a supported extension and
// reports how many entries were dropped.
func FilterPlayable(paths []string) ([]string, int) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() || !IsSupportedFile(p) {
			continue
		}
		out = append(out, p)
	}
	return out, len(paths) - len(out)
}

func m3uEntries(scanner *bufio.Scanner) []string {
	var entries []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, strings.Trim(line, `"`))
	}
	return entries
}

func plsEntries(scanner *bufio.Scanner) []string {
	var entries []string
	for scanner.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if val == "" || !isPLSFileKey(key) {
			continue
		}
		entries = append(entries, val)
	}
	return entries
}

// isPLSFileKey matches File1, File2, ... case-insensitively.
func isPLSFileKey(key string) bool {
	if len(key) <= 4 || !strings.EqualFold(key[:4], "file") {
		return false
	}
	for _, c := range key[4:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isURL(s string) bool {
	return strings.Contains(s, "://")
}

func resolveEntry(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
