package xmcore

import (
	"fmt"
	"log/slog"
)

// LoopType describes what a cursor does when it reaches the loop end.
type LoopType int

const (
	LoopNone LoopType = iota
	LoopForward
	LoopPingPong
)

func (t LoopType) String() string {
	switch t {
	case LoopNone:
		return "none"
	case LoopForward:
		return "forward"
	case LoopPingPong:
		return "ping-pong"
	default:
		return fmt.Sprintf("LoopType(%d)", int(t))
	}
}

// Waveform is an immutable sample buffer with its loop and tuning metadata.
//
// A waveform is created once by the loader and then shared
// by every cursor that plays it. Nothing in this package writes
// to a waveform after NewWaveform returns, so it's safe to
// share it between goroutines.
type Waveform struct {
	name string

	data []float64

	loopType   LoopType
	loopStart  int
	loopLength int

	bits    uint8
	panning float64
	volume  float64

	relativeNote int8
	finetune     float64
}

// WaveformConfig describes the waveform metadata.
//
// The zero value describes a non-looping sample with
// full volume and center panning.
type WaveformConfig struct {
	Name string

	LoopType   LoopType
	LoopStart  int
	LoopLength int

	// Volume is a default sample volume in [0, 1].
	//
	// A zero value means "use 1.0" unless ZeroVolume is set.
	Volume     float64
	ZeroVolume bool

	// Panning is a default sample panning in [0, 1]: 0 is left, 1 is right.
	//
	// A zero value means "center" (0.5) unless HardLeft is set.
	Panning  float64
	HardLeft bool

	// RelativeNote is added to the played note, in semitones.
	RelativeNote int8

	// Finetune is a fraction of a semitone in [-1, 1).
	// XM stores it as a signed byte, use Finetune=float64(b)/128.
	Finetune float64

	// Logger receives debug messages about normalized loop data.
	// A nil value discards them.
	Logger *slog.Logger
}

// WaveformError is returned for a metadata field that can't be used.
type WaveformError struct {
	Field   string
	Message string
}

func (e *WaveformError) Error() string {
	return fmt.Sprintf("waveform %s: %s", e.Field, e.Message)
}

// NewWaveform creates a waveform from signed 16-bit PCM data.
//
// The samples slice is copied (converted), so the caller is
// free to reuse it afterwards.
func NewWaveform(samples []int16, config WaveformConfig) (*Waveform, error) {
	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(v) / 32768
	}
	return newWaveform(data, 16, config)
}

// NewWaveform8 creates a waveform from signed 8-bit PCM data.
func NewWaveform8(samples []int8, config WaveformConfig) (*Waveform, error) {
	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(int16(v)<<8) / 32768
	}
	return newWaveform(data, 8, config)
}

func newWaveform(data []float64, bits uint8, config WaveformConfig) (*Waveform, error) {
	if err := validateWaveformConfig(&config); err != nil {
		return nil, err
	}
	applyWaveformDefaults(&config)

	w := &Waveform{
		name:         config.Name,
		data:         data,
		bits:         bits,
		panning:      config.Panning,
		volume:       config.Volume,
		relativeNote: config.RelativeNote,
		finetune:     config.Finetune,
	}
	w.setLoop(config)

	return w, nil
}

func validateWaveformConfig(config *WaveformConfig) error {
	switch config.LoopType {
	case LoopNone, LoopForward, LoopPingPong:
		// OK
	default:
		return &WaveformError{Field: "loop type", Message: fmt.Sprintf("unknown value %d", int(config.LoopType))}
	}
	if config.LoopStart < 0 || config.LoopLength < 0 {
		return &WaveformError{Field: "loop", Message: "negative loop bounds"}
	}
	if config.Volume < 0 || config.Volume > 1 {
		return &WaveformError{Field: "volume", Message: fmt.Sprintf("%g is outside of [0, 1]", config.Volume)}
	}
	if config.Panning < 0 || config.Panning > 1 {
		return &WaveformError{Field: "panning", Message: fmt.Sprintf("%g is outside of [0, 1]", config.Panning)}
	}
	if config.Finetune < -1 || config.Finetune >= 1 {
		return &WaveformError{Field: "finetune", Message: fmt.Sprintf("%g is outside of [-1, 1)", config.Finetune)}
	}
	return nil
}

func applyWaveformDefaults(config *WaveformConfig) {
	if config.Volume == 0 && !config.ZeroVolume {
		config.Volume = 1
	}
	if config.Panning == 0 && !config.HardLeft {
		config.Panning = 0.5
	}
	if config.Logger == nil {
		config.Logger = discardLogger
	}
}

// setLoop applies the loop metadata, fixing the bounds that
// point outside of the sample data.
func (w *Waveform) setLoop(config WaveformConfig) {
	n := len(w.data)
	loopType := config.LoopType
	loopStart := config.LoopStart
	loopLength := config.LoopLength

	if loopType == LoopNone {
		w.loopType = LoopNone
		w.loopStart = 0
		w.loopLength = 0
		return
	}

	if loopStart > n {
		loopStart = n
	}
	if loopStart+loopLength > n {
		loopLength = n - loopStart
	}
	if loopLength == 0 {
		config.Logger.Debug("loop disabled: empty loop window",
			slog.String("waveform", config.Name),
			slog.Int("loop_start", config.LoopStart),
			slog.Int("loop_length", config.LoopLength))
		loopType = LoopNone
		loopStart = 0
	} else if loopStart != config.LoopStart || loopLength != config.LoopLength {
		config.Logger.Debug("loop window clamped to sample data",
			slog.String("waveform", config.Name),
			slog.Int("loop_start", loopStart),
			slog.Int("loop_length", loopLength))
	}

	w.loopType = loopType
	w.loopStart = loopStart
	w.loopLength = loopLength
}

// at returns the amplitude at index i.
// Indexes outside of the data are silent.
func (w *Waveform) at(i int) float64 {
	if uint(i) >= uint(len(w.data)) {
		return 0
	}
	return w.data[i]
}

// Name returns the waveform name (for debugging and UIs).
func (w *Waveform) Name() string { return w.name }

// Len returns the number of sample points.
func (w *Waveform) Len() int { return len(w.data) }

// At returns the normalized amplitude at index i, 0 for indexes out of range.
func (w *Waveform) At(i int) float64 { return w.at(i) }

func (w *Waveform) LoopType() LoopType { return w.loopType }

func (w *Waveform) LoopStart() int { return w.loopStart }

func (w *Waveform) LoopLength() int { return w.loopLength }

// LoopEnd returns the first index after the loop window.
func (w *Waveform) LoopEnd() int { return w.loopStart + w.loopLength }

// Bits reports the source sample depth: 8 or 16.
func (w *Waveform) Bits() uint8 { return w.bits }

func (w *Waveform) Panning() float64 { return w.panning }

func (w *Waveform) Volume() float64 { return w.volume }

func (w *Waveform) RelativeNote() int8 { return w.relativeNote }

func (w *Waveform) Finetune() float64 { return w.finetune }
