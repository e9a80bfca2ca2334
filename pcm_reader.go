package xmcore

import (
	"errors"
	"io"
	"math"
)

// PCMReader wraps a voice, making it possible to Read() its PCM bytes.
//
// The Read() method produces 16-bit little endian stereo PCM bytes;
// this is what ebiten/audio package expects.
// Use PCMReader as an io.Reader argument for audio.NewPlayer().
type PCMReader struct {
	voice *Voice

	// Zero samplesPerTick means that the voice effects are not ticked.
	samplesPerTick int
	tickRemain     int

	bytePos int // Used to report the current pos via Seek()

	left  []float64
	right []float64
}

// NewPCMReader creates a reader for the voice.
//
// The reader doesn't drive the voice effects until SetBPM is called.
func NewPCMReader(v *Voice) *PCMReader {
	return &PCMReader{voice: v}
}

// SetBPM makes the reader call Voice.Tick every tick.
// The tick length follows the XM rule: 2.5 seconds / BPM.
//
// A zero value disables the ticking.
func (r *PCMReader) SetBPM(bpm uint) {
	r.samplesPerTick = calcSamplesPerTick(r.voice.rate, float64(bpm))
	r.tickRemain = r.samplesPerTick
}

// SamplesPerTick returns the current tick length in frames.
func (r *PCMReader) SamplesPerTick() int { return r.samplesPerTick }

func calcSamplesPerTick(sampleRate, bpm float64) int {
	if bpm == 0 {
		return 0
	}
	return int(math.Round(sampleRate / (bpm * 0.4)))
}

// Seek partially implements io.Seeker.
//
// You can use it for two things:
//  1. (0, SeekStart) for rewind
//  2. (0, SeekCurrent) to get the byte pos inside the stream
func (r *PCMReader) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if offset == 0 {
			r.Rewind()
			return 0, nil
		}

	case io.SeekCurrent:
		if offset == 0 {
			return int64(r.bytePos), nil
		}
	}

	return 0, errors.New("unsupported Seek call")
}

// Rewind restarts the voice waveform.
func (r *PCMReader) Rewind() {
	r.voice.Rewind()
	r.bytePos = 0
	r.tickRemain = r.samplesPerTick
}

// Read puts next PCM bytes into provided slice.
//
// Every frame takes 4 bytes (two 16-bit samples);
// a tail of b that can't fit a whole frame is left untouched.
//
// When the voice has no samples to produce, io.EOF error is returned.
func (r *PCMReader) Read(b []byte) (int, error) {
	const bytesPerFrame = 4

	frames := len(b) / bytesPerFrame
	written := 0
	eof := false

	for frames > 0 {
		chunk := frames
		if r.samplesPerTick != 0 {
			if r.tickRemain == 0 {
				r.voice.Tick()
				r.tickRemain = r.samplesPerTick
			}
			chunk = min(chunk, r.tickRemain)
		}

		left, right := r.bus(chunk)
		n := r.voice.MixStereo(left, right)
		for i := 0; i < n; i++ {
			putPCM(b[written:], uint16(pcm16(left[i])))
			putPCM(b[written+2:], uint16(pcm16(right[i])))
			written += bytesPerFrame
		}

		if r.samplesPerTick != 0 {
			r.tickRemain -= n
		}
		frames -= n
		if n < chunk {
			eof = true
			break
		}
	}

	r.bytePos += written

	if eof {
		return written, io.EOF
	}
	return written, nil
}

// bus returns a zeroed stereo bus of n frames.
func (r *PCMReader) bus(n int) (left, right []float64) {
	if cap(r.left) < n {
		r.left = make([]float64, n)
		r.right = make([]float64, n)
	}
	left = r.left[:n]
	right = r.right[:n]
	clear(left)
	clear(right)
	return left, right
}
