package xmcore

import (
	"fmt"
)

// Effect is a per-tick parameter modulator.
//
// A channel driver starts an effect with Tick0 when a row
// triggers it, then keeps calling Tick on every following tick
// while InProgress reports true.
//
// The returned values are effect-specific: for slides it's
// an amount to add to the driven parameter on this tick.
// Accumulating and clamping the driven parameter is up to the driver,
// the Clamp method describes the legal output range.
type Effect interface {
	// Tick0 applies the first tick of a newly triggered effect.
	Tick0(value, param2 float64) float64

	// Tick applies one steady-state tick.
	Tick() float64

	// InProgress reports whether the effect still has something to apply.
	InProgress() bool

	// Retrigger re-asserts the current value without a new parameter.
	Retrigger() float64

	// Clamp limits v to the range of the driven parameter.
	Clamp(v float64) float64

	// Value returns the current effect value.
	Value() float64
}

// XMEffect is an effect that can be driven by the raw XM parameter bytes.
type XMEffect interface {
	Effect

	// XMUpdateEffect decodes the raw param and applies it as a
	// first tick, then re-asserts the effect value.
	//
	// The updown selector disambiguates the commands that
	// share a parameter layout:
	//	1 - the low nibble is an "up" amount
	//	2 - the low nibble is a "down" amount
	//	anything else - decode the byte as is
	XMUpdateEffect(param, updown uint8, special2 float64)
}

// XMParams is a decoded XM effect parameter.
type XMParams struct {
	Value float64

	// Param2 is only meaningful if HasParam2 is true.
	// None of the slide effects use it.
	Param2    float64
	HasParam2 bool
}

// EffectKind enumerates the effects implemented by this package.
type EffectKind int

const (
	EffectKindVolumeSlide EffectKind = iota
	EffectKindPanningSlide
)

func (k EffectKind) String() string {
	switch k {
	case EffectKindVolumeSlide:
		return "volume slide"
	case EffectKindPanningSlide:
		return "panning slide"
	default:
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
}

// NewEffect creates a zero-state effect of the given kind.
func NewEffect(kind EffectKind) (XMEffect, error) {
	switch kind {
	case EffectKindVolumeSlide:
		return &VolumeSlide{}, nil
	case EffectKindPanningSlide:
		return &PanningSlide{}, nil
	default:
		return nil, fmt.Errorf("unknown effect kind %d", int(kind))
	}
}

// xmSlideArg remaps the param for the updown selector.
func xmSlideArg(param, updown uint8) uint8 {
	switch updown {
	case 1:
		return (param & 0x0F) << 4
	case 2:
		return param & 0x0F
	default:
		return param
	}
}

// xmConvertSlide decodes a "x0 is up, 0y is down" slide byte.
// Both nibbles being set is an illegal combination.
func xmConvertSlide(rawval uint8, scale float64) (XMParams, bool) {
	hi := rawval >> 4
	lo := rawval & 0x0F
	if hi != 0 && lo != 0 {
		return XMParams{}, false
	}
	if hi != 0 {
		return XMParams{Value: float64(hi) / scale}, true
	}
	return XMParams{Value: -(float64(lo) / scale)}, true
}
