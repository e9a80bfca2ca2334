package xmcore

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/quasilyte/xmcore/internal/xmdb"
)

// Voice is a single channel playback state.
//
// It binds a Cursor to the running channel parameters
// (volume, panning, pitch) and drives the slide effects
// decoded from the XM row commands.
//
// A typical driver loop looks like this:
//
//	v.Play(w, note)  // a row with a note
//	v.ApplyRow(cmd)  // tick 0
//	v.Render(block)  // samplesPerTick samples
//	v.Tick()         // ticks 1..N-1
//	v.Render(block)
//	...
//
// The running volume is owned by the voice: effects only report
// the per-tick amounts, the voice accumulates and clamps them.
//
// A Voice is not safe for concurrent use.
type Voice struct {
	cursor  *Cursor
	periods PeriodHelper
	rate    float64

	logger       *slog.Logger
	eventHandler func(e VoiceEvent)

	note    float64
	volume  float64
	panning float64

	// XM effect memory: a zero parameter reuses the last value.
	volumeSlide       VolumeSlide
	fineSlideUp       VolumeSlide
	fineSlideDown     VolumeSlide
	panningSlide      PanningSlide
	sampleOffsetParam uint8

	// Volume column slides have no memory.
	columnVolumeSlide  VolumeSlide
	columnPanningSlide PanningSlide

	// Slides that are applied on ticks 1..N of the current row.
	rowSlides   []rowSlide
	tickIndex   int
	noteCutTick int

	rendered int
	ended    bool

	// 0-1 are MixStereo blocks, 2-3 are the RenderBuffer stereo bus.
	scratch [4][]float64
}

type rowSlide struct {
	effect Effect
	target *float64
}

// VoiceConfig configures the voice.
//
// These settings can't be changed after a voice is created.
type VoiceConfig struct {
	// The output sample rate.
	//
	// A zero value will assume a sample rate of 44100.
	SampleRate uint

	// Periods converts notes to playback frequencies.
	//
	// A nil value will use the XM linear frequency table.
	Periods PeriodHelper

	// Logger receives debug messages about the rejected row commands.
	// A nil value discards them.
	Logger *slog.Logger

	// EventHandler is called on every voice event (see VoiceEvent).
	// It can be nil.
	EventHandler func(e VoiceEvent)
}

// VoiceInfo contains the voice information.
type VoiceInfo struct {
	// MemoryUsage approximates the memory held by the voice.
	// The shared waveform is included.
	MemoryUsage uint

	// C4Rate is a waveform C-4 playback frequency.
	// It's 0 if there is no waveform or its tuning is out of range.
	C4Rate float64
}

// NewVoice allocates a voice.
// Use Play method to start a waveform playback.
func NewVoice(config VoiceConfig) (*Voice, error) {
	applyVoiceConfigDefaults(&config)

	if config.SampleRate > 192000 {
		return nil, fmt.Errorf("unsupported sample rate %d", config.SampleRate)
	}

	v := &Voice{
		periods:      config.Periods,
		rate:         float64(config.SampleRate),
		logger:       config.Logger,
		eventHandler: config.EventHandler,
		rowSlides:    make([]rowSlide, 0, 4),
		noteCutTick:  -1,
	}
	return v, nil
}

func applyVoiceConfigDefaults(config *VoiceConfig) {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.Periods == nil {
		config.Periods = LinearPeriods{}
	}
	if config.Logger == nil {
		config.Logger = discardLogger
	}
}

// Play starts the waveform playback at the given note.
//
// The voice volume and panning are reset to the waveform defaults.
// The row effects memory is preserved, like in FT2.
func (v *Voice) Play(w *Waveform, note float64) {
	if v.cursor == nil || v.cursor.waveform != w {
		v.cursor = NewCursor(w, v.rate)
	} else {
		v.cursor.Reset()
	}
	v.volume = w.volume
	v.panning = w.panning
	v.ended = false
	v.SetNote(note)
}

// SetNote changes the playing note without restarting the waveform.
// It's a no-op if there is nothing to play.
func (v *Voice) SetNote(note float64) {
	v.note = note
	v.SetPitch(0, 0)
}

// SetPitch re-computes the cursor step for the current note shifted
// by arpeggio (in semitones) and a period offset (vibrato, etc.)
func (v *Voice) SetPitch(arpNote, periodOffset float64) {
	if v.cursor == nil {
		return
	}
	period := v.periods.NoteToPeriod(v.note + v.cursor.FinetunedNote(0))
	v.cursor.SetStep(v.periods.Frequency(period, arpNote, periodOffset))
}

// Stop disables the voice cursor.
func (v *Voice) Stop() {
	if v.cursor != nil {
		v.cursor.Disable()
	}
}

// Rewind restarts the current waveform from the beginning.
// The rendered time counter is reset as well.
func (v *Voice) Rewind() {
	v.emit(EventSync)
	v.rendered = 0
	v.ended = false
	if v.cursor != nil {
		v.cursor.Reset()
	}
}

// IsActive reports whether the voice has something to render.
func (v *Voice) IsActive() bool {
	return v.cursor != nil && v.cursor.IsEnabled()
}

// Cursor returns the voice cursor; it's nil before the first Play.
func (v *Voice) Cursor() *Cursor { return v.cursor }

// Volume returns the running channel volume in [0, 1].
func (v *Voice) Volume() float64 { return v.volume }

// Panning returns the running channel panning in [0, 1].
func (v *Voice) Panning() float64 { return v.panning }

// GetInfo returns the voice related info.
func (v *Voice) GetInfo() VoiceInfo {
	var info VoiceInfo
	info.MemoryUsage = cursorSize()
	for _, block := range v.scratch {
		info.MemoryUsage += uint(cap(block)) * 8
	}
	if v.cursor != nil {
		info.MemoryUsage += v.cursor.waveform.MemoryUsage()
		if rate, ok := v.cursor.SampleC4Rate(v.periods); ok {
			info.C4Rate = rate
		}
	}
	return info
}

// RowCommand is a raw XM pattern cell command.
type RowCommand struct {
	Volume          uint8
	EffectType      uint8
	EffectParameter uint8
}

// ApplyRow executes the first tick of a row.
//
// The volume column is applied before the effect column.
// Commands that are not handled by the voice are ignored.
func (v *Voice) ApplyRow(cmd RowCommand) {
	v.rowSlides = v.rowSlides[:0]
	v.tickIndex = 0
	v.noteCutTick = -1

	v.applyRowEffect(xmdb.EffectFromVolumeByte(cmd.Volume))
	v.applyRowEffect(xmdb.ConvertEffect(cmd.EffectType, cmd.EffectParameter))
}

func (v *Voice) applyRowEffect(e xmdb.Effect) {
	switch e.Op {
	case xmdb.EffectSetVolume:
		v.volume = clampUnit(float64(e.Arg) / 64)

	case xmdb.EffectVolumeSlide:
		v.updateSlide(&v.volumeSlide, e)
		v.addRowSlide(&v.volumeSlide, &v.volume)

	case xmdb.EffectVolumeSlideDown, xmdb.EffectVolumeSlideUp:
		v.updateSlide(&v.columnVolumeSlide, e)
		v.addRowSlide(&v.columnVolumeSlide, &v.volume)

	case xmdb.EffectFineVolumeSlideUp:
		v.fineSlide(&v.fineSlideUp, e)
	case xmdb.EffectFineVolumeSlideDown:
		v.fineSlide(&v.fineSlideDown, e)

	case xmdb.EffectSetPanning:
		v.panning = float64(e.Arg) / 255

	case xmdb.EffectPanningSlide:
		v.updateSlide(&v.panningSlide, e)
		v.addRowSlide(&v.panningSlide, &v.panning)

	case xmdb.EffectPanningSlideLeft, xmdb.EffectPanningSlideRight:
		v.updateSlide(&v.columnPanningSlide, e)
		v.addRowSlide(&v.columnPanningSlide, &v.panning)

	case xmdb.EffectSampleOffset:
		if e.Arg != 0 {
			v.sampleOffsetParam = e.Arg
		}
		if v.cursor != nil {
			v.cursor.SetPosition(int(v.sampleOffsetParam) * 256)
		}

	case xmdb.EffectNoteCut:
		if e.Arg == 0 {
			v.volume = 0
		} else {
			v.noteCutTick = int(e.Arg)
		}
	}
}

// updateSlide feeds the row parameter into the slide effect.
// The effect column slides reuse their last value for a zero parameter.
func (v *Voice) updateSlide(slide XMEffect, e xmdb.Effect) {
	if e.Arg == 0 && !e.VolumeColumn {
		slide.Retrigger()
		return
	}
	if !v.slideArgValid(slide, e) {
		v.logger.Debug("illegal slide parameter ignored",
			slog.Int("effect", int(e.AsUint16())),
			slog.Int("selector", int(e.Selector)))
	}
	slide.XMUpdateEffect(e.Arg, e.Selector, 0)
}

func (v *Voice) slideArgValid(slide XMEffect, e xmdb.Effect) bool {
	arg := xmSlideArg(e.Arg, e.Selector)
	switch slide.(type) {
	case *PanningSlide:
		_, ok := XMConvertPanningSlide(arg, 0)
		return ok
	default:
		_, ok := XMConvertVolumeSlide(arg, 0)
		return ok
	}
}

func (v *Voice) addRowSlide(slide Effect, target *float64) {
	if !slide.InProgress() {
		return
	}
	v.rowSlides = append(v.rowSlides, rowSlide{effect: slide, target: target})
}

// fineSlide applies a fine volume slide once, on tick 0.
func (v *Voice) fineSlide(slide *VolumeSlide, e xmdb.Effect) {
	var amount float64
	if e.VolumeColumn {
		p, _ := XMConvertVolumeSlide(xmSlideArg(e.Arg, e.Selector), 0)
		amount = p.Value
	} else {
		v.updateSlide(slide, e)
		amount = slide.Retrigger()
	}
	v.volume = slide.Clamp(v.volume + amount)
}

// Tick executes one of the non-first row ticks.
func (v *Voice) Tick() {
	v.tickIndex++

	for _, s := range v.rowSlides {
		*s.target = s.effect.Clamp(*s.target + s.effect.Tick())
	}

	if v.tickIndex == v.noteCutTick {
		v.volume = 0
	}
}

func (v *Voice) emit(kind VoiceEventKind) {
	if v.eventHandler == nil {
		return
	}
	v.eventHandler(VoiceEvent{
		Kind: kind,
		Time: float64(v.rendered) / v.rate,
	})
}

// Render writes up to len(dst) mono samples scaled by the voice volume.
//
// It returns the number of samples written.
// If it's less than len(dst), the voice reached its end
// and the rest of dst is left untouched.
func (v *Voice) Render(dst []float64) int {
	if v.cursor == nil {
		return 0
	}

	n := 0
	for n < len(dst) {
		s, ok := v.cursor.Next()
		if !ok {
			break
		}
		dst[n] = s
		n++
	}

	if n != 0 {
		vecmath.ScaleBlockInPlace(dst[:n], v.volume)
	}
	v.rendered += n

	if n < len(dst) && !v.ended {
		v.ended = true
		v.emit(EventEnd)
	}
	return n
}

// MixStereo renders the voice and adds it to the stereo bus.
//
// The volume is split between the channels according to the panning.
// It returns the number of frames mixed.
// If the channels have different lengths, only the common prefix is mixed.
func (v *Voice) MixStereo(left, right []float64) int {
	mono := v.scratchBlock(0, min(len(left), len(right)))
	n := v.Render(mono)
	if n == 0 {
		return 0
	}
	mono = mono[:n]

	panned := v.scratchBlock(1, n)
	vecmath.ScaleBlock(panned, mono, math.Sqrt(1.0-v.panning))
	vecmath.AddBlockInPlace(left[:n], panned)
	vecmath.ScaleBlock(panned, mono, math.Sqrt(v.panning))
	vecmath.AddBlockInPlace(right[:n], panned)

	return n
}

func (v *Voice) scratchBlock(i, n int) []float64 {
	if cap(v.scratch[i]) < n {
		v.scratch[i] = make([]float64, n)
	}
	return v.scratch[i][:n]
}

// RenderBuffer renders the voice into a go-audio buffer.
//
// Mono and interleaved stereo buffers are supported;
// the buffer sample rate must match the voice sample rate.
// It returns the number of frames written.
func (v *Voice) RenderBuffer(buf *audio.FloatBuffer) (int, error) {
	if buf == nil || buf.Format == nil {
		return 0, errors.New("render buffer: missing format")
	}
	if buf.Format.SampleRate != int(v.rate) {
		return 0, fmt.Errorf("render buffer: sample rate %d, want %d", buf.Format.SampleRate, int(v.rate))
	}

	switch buf.Format.NumChannels {
	case 1:
		return v.Render(buf.Data), nil

	case 2:
		frames := len(buf.Data) / 2
		left := v.scratchBlock(2, frames)
		right := v.scratchBlock(3, frames)
		clear(left)
		clear(right)
		n := v.MixStereo(left, right)
		for i := 0; i < n; i++ {
			buf.Data[i*2+0] = left[i]
			buf.Data[i*2+1] = right[i]
		}
		return n, nil

	default:
		return 0, fmt.Errorf("render buffer: unsupported number of channels %d", buf.Format.NumChannels)
	}
}
