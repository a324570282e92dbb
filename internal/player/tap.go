package player

import (
	"encoding/binary"
	"io"
	"sync"
)

// DefaultTapSize holds a little over a tenth of a second of audio.
const DefaultTapSize = 8192

// Tap is a thread-safe ring of the most recent mono samples pulled by the
// audio device. The player writes to it from the audio goroutine and the
// analyser reads from the render loop.
type Tap struct {
	mu   sync.Mutex
	buf  []float64
	w    int
	fill int
}

// NewTap creates a tap retaining size samples.
func NewTap(size int) *Tap {
	if size <= 0 {
		size = DefaultTapSize
	}
	return &Tap{buf: make([]float64, size)}
}

// Write mixes 16-bit stereo PCM down to mono and appends it. Trailing bytes
// that do not form a whole frame are ignored.
func (t *Tap) Write(pcm []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := len(t.buf)
	for i := 0; i+outputFrameSize <= len(pcm); i += outputFrameSize {
		l := int16(binary.LittleEndian.Uint16(pcm[i:]))
		r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
		t.buf[t.w] = (float64(l) + float64(r)) / 65536
		t.w = (t.w + 1) % size
	}
	t.fill = min(size, t.fill+len(pcm)/outputFrameSize)
}

// Latest copies the newest len(dst) samples into dst, oldest first. When
// fewer are buffered the leading part of dst is zeroed. It returns the number
// of real samples copied.
func (t *Tap) Latest(dst []float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := min(len(dst), t.fill)
	lead := len(dst) - n
	clear(dst[:lead])

	size := len(t.buf)
	start := (t.w - n + size) % size
	for i := range n {
		dst[lead+i] = t.buf[(start+i)%size]
	}
	return n
}

// Clear drops all buffered samples, e.g. after a seek or track change.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.fill = 0
}

// tapReader copies everything read through it into a Tap.
type tapReader struct {
	r   io.Reader
	tap *Tap
}

func (tr *tapReader) Read(p []byte) (int, error) {
	n, err := tr.r.Read(p)
	if n > 0 && tr.tap != nil {
		tr.tap.Write(p[:n])
	}
	return n, err
}
