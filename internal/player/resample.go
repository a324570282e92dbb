package player

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	outputSampleRate = 44100
	outputChannels   = 2
	outputFrameSize  = outputChannels * 2
	bytesPerSec      = outputSampleRate * outputFrameSize
)

// normalize converts src to 44.1 kHz stereo. Sources already in that shape
// are returned as is.
func normalize(src audioDecoder) (audioDecoder, error) {
	rate, channels := src.SampleRate(), src.ChannelCount()
	if rate <= 0 {
		return nil, fmt.Errorf("unsupported sample rate %d", rate)
	}
	if channels < 1 || channels > outputChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}
	if rate == outputSampleRate && channels == outputChannels {
		return src, nil
	}

	srcFrameSize := channels * 2
	outFrames := src.Length() / int64(srcFrameSize) * outputSampleRate / int64(rate)
	return &resampler{
		src:          src,
		in:           bufio.NewReaderSize(src, 16384),
		srcFrameSize: srcFrameSize,
		step:         float64(rate) / outputSampleRate,
		length:       outFrames * outputFrameSize,
	}, nil
}

// resampler linearly interpolates between neighbouring source frames,
// duplicating mono into both output channels.
type resampler struct {
	src          audioDecoder
	in           *bufio.Reader
	srcFrameSize int
	step         float64
	frac         float64
	cur, next    [outputChannels]float64
	primed       bool
	drained      bool
	pos          int64
	length       int64
}

func (r *resampler) readFrame() ([outputChannels]float64, error) {
	var (
		f   [outputChannels]float64
		raw [outputFrameSize]byte
	)
	b := raw[:r.srcFrameSize]
	if _, err := io.ReadFull(r.in, b); err != nil {
		return f, err
	}
	for c := range f {
		sc := c
		if sc*2 >= r.srcFrameSize {
			sc = 0
		}
		f[c] = float64(int16(binary.LittleEndian.Uint16(b[sc*2:])))
	}
	return f, nil
}

func (r *resampler) prime() error {
	first, err := r.readFrame()
	if err != nil {
		return io.EOF
	}
	second, err := r.readFrame()
	if err != nil {
		second = first
		r.drained = true
	}
	r.cur, r.next, r.primed = first, second, true
	return nil
}

func (r *resampler) Read(p []byte) (int, error) {
	if len(p) < outputFrameSize {
		return 0, io.ErrShortBuffer
	}
	if r.pos >= r.length {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for n+outputFrameSize <= len(p) && r.pos < r.length {
		for r.frac >= 1 {
			r.frac--
			r.cur = r.next
			if r.drained {
				continue
			}
			f, err := r.readFrame()
			if err != nil {
				// Hold the last frame until the computed length is reached.
				r.drained = true
				continue
			}
			r.next = f
		}
		for c := range outputChannels {
			v := r.cur[c] + (r.next[c]-r.cur[c])*r.frac
			binary.LittleEndian.PutUint16(p[n+c*2:], uint16(int16(math.Round(v))))
		}
		n += outputFrameSize
		r.pos += outputFrameSize
		r.frac += r.step
	}
	return n, nil
}

func (r *resampler) Seek(offset int64, whence int) (int64, error) {
	pos, err := resolveSeek(r.pos, r.length, offset, whence)
	if err != nil {
		return r.pos, err
	}
	pos -= pos % outputFrameSize

	srcPos := float64(pos/outputFrameSize) * r.step
	srcFrame := int64(srcPos)
	if _, err := r.src.Seek(srcFrame*int64(r.srcFrameSize), io.SeekStart); err != nil {
		return r.pos, err
	}
	r.in.Reset(r.src)
	r.frac = srcPos - float64(srcFrame)
	r.primed, r.drained = false, false
	r.pos = pos
	return pos, nil
}

func (r *resampler) Length() int64     { return r.length }
func (r *resampler) SampleRate() int   { return outputSampleRate }
func (r *resampler) ChannelCount() int { return outputChannels }
