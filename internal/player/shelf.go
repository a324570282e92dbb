package player

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

const (
	shelfFrequency = 1000.0
	bassGainDB     = 15.0
	trebleGainDB   = 20.0
)

// biquad is a direct form I filter with independent state per channel.
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     [outputChannels]float64
}

// newShelf builds an RBJ cookbook shelving filter with slope 1.
func newShelf(high bool, freq, gainDB float64) *biquad {
	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / outputSampleRate
	cosW, sinW := math.Cos(w0), math.Sin(w0)
	alpha := sinW / 2 * math.Sqrt2
	k := 2 * math.Sqrt(a) * alpha

	var b0, b1, b2, a0, a1, a2 float64
	if high {
		b0 = a * ((a + 1) + (a-1)*cosW + k)
		b1 = -2 * a * ((a - 1) + (a+1)*cosW)
		b2 = a * ((a + 1) + (a-1)*cosW - k)
		a0 = (a + 1) - (a-1)*cosW + k
		a1 = 2 * ((a - 1) - (a+1)*cosW)
		a2 = (a + 1) - (a-1)*cosW - k
	} else {
		b0 = a * ((a + 1) - (a-1)*cosW + k)
		b1 = 2 * a * ((a - 1) - (a+1)*cosW)
		b2 = a * ((a + 1) - (a-1)*cosW - k)
		a0 = (a + 1) + (a-1)*cosW + k
		a1 = -2 * ((a - 1) + (a+1)*cosW)
		a2 = (a + 1) + (a-1)*cosW - k
	}
	return &biquad{b0: b0 / a0, b1: b1 / a0, b2: b2 / a0, a1: a1 / a0, a2: a2 / a0}
}

func (q *biquad) process(ch int, x float64) float64 {
	y := q.b0*x + q.b1*q.x1[ch] + q.b2*q.x2[ch] - q.a1*q.y1[ch] - q.a2*q.y2[ch]
	q.x2[ch], q.x1[ch] = q.x1[ch], x
	q.y2[ch], q.y1[ch] = q.y1[ch], y
	return y
}

func (q *biquad) reset() {
	q.x1, q.x2, q.y1, q.y2 = [outputChannels]float64{}, [outputChannels]float64{}, [outputChannels]float64{}, [outputChannels]float64{}
}

// shelfReader applies the bass and treble boosts to 16-bit stereo PCM in
// place. Either filter can be toggled while audio is flowing.
type shelfReader struct {
	r      io.Reader
	mu     sync.Mutex
	bass   *biquad
	treble *biquad
	bassOn bool
	trebOn bool
	sample int
}

func newShelfReader(r io.Reader) *shelfReader {
	return &shelfReader{
		r:      r,
		bass:   newShelf(false, shelfFrequency, bassGainDB),
		treble: newShelf(true, shelfFrequency, trebleGainDB),
	}
}

func (s *shelfReader) setBass(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on && !s.bassOn {
		s.bass.reset()
	}
	s.bassOn = on
}

func (s *shelfReader) setTreble(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on && !s.trebOn {
		s.treble.reset()
	}
	s.trebOn = on
}

func (s *shelfReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	count := n / 2
	if !s.bassOn && !s.trebOn {
		s.sample += count
		return n, err
	}
	for i := range count {
		ch := (s.sample + i) % outputChannels
		v := float64(int16(binary.LittleEndian.Uint16(p[i*2:])))
		if s.bassOn {
			v = s.bass.process(ch, v)
		}
		if s.trebOn {
			v = s.treble.process(ch, v)
		}
		binary.LittleEndian.PutUint16(p[i*2:], uint16(clampInt16(int(math.Round(v)))))
	}
	s.sample += count
	return n, err
}

// realign resets the channel phase after the stream was repositioned.
func (s *shelfReader) realign() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sample = 0
	s.bass.reset()
	s.treble.reset()
}
