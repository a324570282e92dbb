// Package queue keeps the ordered list of tracks the player steps through.
package queue

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
)

// Track is one playable file.
type Track struct {
	Path  string
	Title string
}

// Queue is an ordered track list with a cursor. It is only mutated from the
// UI's update loop.
type Queue struct {
	tracks   []Track
	order    []int // play order; identity unless shuffled
	pos      int   // position in order
	shuffled bool
}

// New builds a queue from file paths with start selected. Titles default
// to the file name without extension.
func New(paths []string, start int) *Queue {
	q := &Queue{tracks: make([]Track, len(paths))}
	for i, p := range paths {
		base := filepath.Base(p)
		q.tracks[i] = Track{Path: p, Title: strings.TrimSuffix(base, filepath.Ext(base))}
	}
	q.resetOrder()
	if start >= 0 && start < len(paths) {
		q.pos = start
	}
	return q
}

func (q *Queue) resetOrder() {
	q.order = make([]int, len(q.tracks))
	for i := range q.order {
		q.order[i] = i
	}
}

// Len returns the number of tracks.
func (q *Queue) Len() int { return len(q.tracks) }

// Current returns the selected track, or nil for an empty queue.
func (q *Queue) Current() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	return &q.tracks[q.order[q.pos]]
}

// CurrentIndex returns the selected track's index in the original order.
func (q *Queue) CurrentIndex() int {
	if len(q.tracks) == 0 {
		return -1
	}
	return q.order[q.pos]
}

// Advance moves to the next track, wrapping to the first.
func (q *Queue) Advance() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	q.pos = (q.pos + 1) % len(q.order)
	return q.Current()
}

// Previous moves to the previous track, wrapping to the last.
func (q *Queue) Previous() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	q.pos = (q.pos - 1 + len(q.order)) % len(q.order)
	return q.Current()
}

// SetTitle replaces the display title of track i.
func (q *Queue) SetTitle(i int, title string) {
	if i >= 0 && i < len(q.tracks) && title != "" {
		q.tracks[i].Title = title
	}
}

// Shuffled reports whether shuffle is active.
func (q *Queue) Shuffled() bool { return q.shuffled }

// ToggleShuffle switches between file order and a random order. The current
// track stays selected and, when shuffling, moves to the front.
func (q *Queue) ToggleShuffle(rng *rand.Rand) {
	if len(q.tracks) == 0 {
		return
	}
	cur := q.order[q.pos]
	if q.shuffled {
		q.resetOrder()
		q.pos = cur
		q.shuffled = false
		return
	}

	q.order = rng.Perm(len(q.tracks))
	for i, idx := range q.order {
		if idx == cur {
			q.order[0], q.order[i] = q.order[i], q.order[0]
			break
		}
	}
	q.pos = 0
	q.shuffled = true
}
