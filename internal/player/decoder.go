package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// ErrUnsupportedFormat is returned for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// audioDecoder yields interleaved signed 16-bit little-endian PCM at the
// source's own rate and channel count.
type audioDecoder interface {
	io.ReadSeeker
	Length() int64
	SampleRate() int
	ChannelCount() int
}

// newDecoder picks a decoder by file extension.
func newDecoder(f *os.File) (audioDecoder, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".mp3":
		return newMP3Decoder(f)
	case ".wav":
		return newWAVDecoder(f)
	case ".flac":
		return newFLACDecoder(f)
	case ".ogg":
		return newOGGDecoder(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// chunkSource produces PCM in whatever chunk size the codec naturally
// decodes and can reposition to a sample frame. At end of stream next keeps
// returning io.EOF.
type chunkSource interface {
	next() ([]byte, error)
	seekFrame(frame int64) error
}

// chunkDecoder adapts a chunkSource to audioDecoder, buffering the part of a
// chunk the caller did not consume.
type chunkDecoder struct {
	src      chunkSource
	pending  []byte
	pos      int64
	length   int64
	rate     int
	channels int
}

func (d *chunkDecoder) Read(p []byte) (int, error) {
	for len(d.pending) == 0 {
		chunk, err := d.src.next()
		if len(chunk) > 0 {
			d.pending = chunk
			break
		}
		if err != nil {
			if err == io.ErrUnexpectedEOF {
				err = io.EOF
			}
			return 0, err
		}
	}
	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	d.pos += int64(n)
	return n, nil
}

func (d *chunkDecoder) Seek(offset int64, whence int) (int64, error) {
	pos, err := resolveSeek(d.pos, d.length, offset, whence)
	if err != nil {
		return d.pos, err
	}
	frameSize := int64(d.channels) * 2
	pos -= pos % frameSize
	if err := d.src.seekFrame(pos / frameSize); err != nil {
		return d.pos, err
	}
	d.pending = nil
	d.pos = pos
	return pos, nil
}

func (d *chunkDecoder) Length() int64     { return d.length }
func (d *chunkDecoder) SampleRate() int   { return d.rate }
func (d *chunkDecoder) ChannelCount() int { return d.channels }

// resolveSeek applies io.Seeker whence rules and clamps to [0, length].
func resolveSeek(pos, length, offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = pos + offset
	case io.SeekEnd:
		next = length + offset
	default:
		return pos, fmt.Errorf("invalid whence %d", whence)
	}
	return max(0, min(next, length)), nil
}

func clampInt16(v int) int16 {
	return int16(max(-32768, min(v, 32767)))
}

func newMP3Decoder(f *os.File) (*chunkDecoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3: %w", err)
	}
	return &chunkDecoder{
		src:      &mp3Source{dec: dec, buf: make([]byte, 8192)},
		length:   dec.Length(),
		rate:     dec.SampleRate(),
		channels: 2,
	}, nil
}

// mp3Source wraps go-mp3, which always emits 16-bit stereo.
type mp3Source struct {
	dec *mp3.Decoder
	buf []byte
}

func (s *mp3Source) next() ([]byte, error) {
	n, err := s.dec.Read(s.buf)
	return s.buf[:n], err
}

func (s *mp3Source) seekFrame(frame int64) error {
	_, err := s.dec.Seek(frame*4, io.SeekStart)
	return err
}

func newWAVDecoder(f *os.File) (*chunkDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit WAV", ErrUnsupportedFormat, bitDepth)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, errors.New("WAV file has no channels")
	}

	pcmStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating WAV PCM data: %w", err)
	}

	src := &wavSource{
		file:      f,
		pcmStart:  pcmStart,
		pcmLen:    dec.PCMLen(),
		width:     bitDepth / 8,
		frameSize: int64(channels * bitDepth / 8),
	}
	src.remaining = src.pcmLen
	frames := src.pcmLen / src.frameSize
	return &chunkDecoder{
		src:      src,
		length:   frames * int64(channels) * 2,
		rate:     int(dec.SampleRate),
		channels: channels,
	}, nil
}

// wavSource converts raw integer PCM of any common width to 16-bit.
type wavSource struct {
	file      *os.File
	pcmStart  int64
	pcmLen    int64
	remaining int64
	width     int
	frameSize int64
	raw       []byte
}

func (s *wavSource) next() ([]byte, error) {
	if s.raw == nil {
		s.raw = make([]byte, 2048*s.width)
	}
	want := min(int64(len(s.raw)), s.remaining)
	n, err := io.ReadFull(s.file, s.raw[:want])
	s.remaining -= int64(n)
	if s.remaining == 0 && err == nil {
		err = io.EOF
	}
	samples := n / s.width
	if samples == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}

	out := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(wavSample(s.raw[i*s.width:], s.width)))
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return out, err
}

func (s *wavSource) seekFrame(frame int64) error {
	off := min(frame*s.frameSize, s.pcmLen)
	if _, err := s.file.Seek(s.pcmStart+off, io.SeekStart); err != nil {
		return err
	}
	s.remaining = s.pcmLen - off
	return nil
}

// wavSample decodes one little-endian sample of the given byte width.
func wavSample(b []byte, width int) int16 {
	switch width {
	case 1:
		// 8-bit WAV is unsigned.
		return int16((int(b[0]) - 128) << 8)
	case 2:
		return int16(binary.LittleEndian.Uint16(b))
	case 3:
		v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
		if v&0x800000 != 0 {
			v |= ^0xFFFFFF
		}
		return clampInt16(int(v >> 8))
	default:
		return int16(int32(binary.LittleEndian.Uint32(b)) >> 16)
	}
}

func newFLACDecoder(f *os.File) (*chunkDecoder, error) {
	stream, err := flac.NewSeek(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	info := stream.Info
	channels := int(info.NChannels)
	return &chunkDecoder{
		src:      &flacSource{stream: stream, channels: channels, bps: int(info.BitsPerSample)},
		length:   int64(info.NSamples) * int64(channels) * 2,
		rate:     int(info.SampleRate),
		channels: channels,
	}, nil
}

type flacSource struct {
	stream   *flac.Stream
	channels int
	bps      int
}

func (s *flacSource) next() ([]byte, error) {
	frame, err := s.stream.ParseNext()
	if err != nil {
		return nil, err
	}

	n := int(frame.Subframes[0].NSamples)
	out := make([]byte, n*s.channels*2)
	for i := 0; i < n; i++ {
		for ch := 0; ch < s.channels; ch++ {
			v := int(frame.Subframes[ch].Samples[i])
			if s.bps > 16 {
				v >>= s.bps - 16
			} else {
				v <<= 16 - s.bps
			}
			binary.LittleEndian.PutUint16(out[(i*s.channels+ch)*2:], uint16(clampInt16(v)))
		}
	}
	return out, nil
}

func (s *flacSource) seekFrame(frame int64) error {
	_, err := s.stream.Seek(uint64(frame))
	return err
}

func newOGGDecoder(f *os.File) (*chunkDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	channels := reader.Channels()
	return &chunkDecoder{
		src:      &oggSource{reader: reader, samples: make([]float32, 4096*channels)},
		length:   reader.Length() * int64(channels) * 2,
		rate:     reader.SampleRate(),
		channels: channels,
	}, nil
}

// oggSource quantizes Vorbis float output to 16-bit.
type oggSource struct {
	reader  *oggvorbis.Reader
	samples []float32
}

func (s *oggSource) next() ([]byte, error) {
	n, err := s.reader.Read(s.samples)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return nil, err
	}
	out := make([]byte, n*2)
	for i, v := range s.samples[:n] {
		v = max(-1, min(v, 1))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v*32767)))
	}
	return out, err
}

func (s *oggSource) seekFrame(frame int64) error {
	return s.reader.SetPosition(frame)
}
