package xmdb

// Effect is a decoded XM row command.
type Effect struct {
	Op  EffectOp
	Arg uint8

	// Selector tells how a slide Arg must be read
	// (see xmcore.XMEffect.XMUpdateEffect).
	//	0 - auto (x0 is up, 0y is down)
	//	1 - the low nibble is an "up" amount
	//	2 - the low nibble is a "down" amount
	Selector uint8

	// VolumeColumn is set for the commands encoded in the volume byte.
	// These commands have no parameter memory.
	VolumeColumn bool
}

type EffectOp int

const (
	EffectNone EffectOp = iota

	// Encoding: effect=0x0C [or] volume byte 0x10-0x50
	// Arg: volume level (0-64)
	EffectSetVolume

	// Encoding: effect=0x0A, effect=0x05 and effect=0x06 (slide part)
	// Arg: slide up/down speed
	EffectVolumeSlide

	// Encoding: volume byte 0x60-0x6F
	// Arg: slide down speed
	EffectVolumeSlideDown

	// Encoding: volume byte 0x70-0x7F
	// Arg: slide up speed
	EffectVolumeSlideUp

	// Encoding: effect=0x0E 0xB? [or] volume byte 0x80-0x8F
	// Arg: slide down amount
	EffectFineVolumeSlideDown

	// Encoding: effect=0x0E 0xA? [or] volume byte 0x90-0x9F
	// Arg: slide up amount
	EffectFineVolumeSlideUp

	// Encoding: effect=0x08 [or] volume byte 0xC0-0xCF
	// Arg: panning position (0-255)
	EffectSetPanning

	// Encoding: effect=0x19 (Pxy)
	// Arg: slide right/left speed
	EffectPanningSlide

	// Encoding: volume byte 0xD0-0xDF
	// Arg: slide left speed
	EffectPanningSlideLeft

	// Encoding: volume byte 0xE0-0xEF
	// Arg: slide right speed
	EffectPanningSlideRight

	// Encoding: effect=0x09
	// Arg: offset in 256-sample units
	EffectSampleOffset

	// Encoding: effect=0x0E 0xC?
	// Arg: tick number
	EffectNoteCut
)

// ConvertEffect decodes the effect column command.
// Commands outside of this package scope are decoded as EffectNone.
func ConvertEffect(effectType, param uint8) Effect {
	e := Effect{Arg: param}

	switch effectType {
	case 0x05, 0x06, 0x0A:
		e.Op = EffectVolumeSlide

	case 0x08:
		e.Op = EffectSetPanning

	case 0x09:
		e.Op = EffectSampleOffset

	case 0x0C:
		e.Op = EffectSetVolume

	case 0x0E:
		e.Arg = param & 0x0F
		switch param >> 4 {
		case 0xA:
			e.Op = EffectFineVolumeSlideUp
			e.Selector = 1
		case 0xB:
			e.Op = EffectFineVolumeSlideDown
			e.Selector = 2
		case 0xC:
			e.Op = EffectNoteCut
		}

	case 0x19:
		e.Op = EffectPanningSlide
	}

	return e
}

// EffectFromVolumeByte decodes the volume column command.
func EffectFromVolumeByte(v uint8) Effect {
	e := Effect{
		Arg:          v & 0x0F,
		VolumeColumn: true,
	}

	switch {
	case v <= 0x0F:
		// Do nothing.

	case v <= 0x50:
		// Set volume effect.
		e.Op = EffectSetVolume
		e.Arg = v - 0x10

	case v >= 0x60 && v <= 0x6F:
		e.Op = EffectVolumeSlideDown
		e.Selector = 2
	case v >= 0x70 && v <= 0x7F:
		e.Op = EffectVolumeSlideUp
		e.Selector = 1
	case v >= 0x80 && v <= 0x8F:
		e.Op = EffectFineVolumeSlideDown
		e.Selector = 2
	case v >= 0x90 && v <= 0x9F:
		e.Op = EffectFineVolumeSlideUp
		e.Selector = 1

	case v >= 0xC0 && v <= 0xCF:
		e.Op = EffectSetPanning
		e.Arg = (v & 0x0F) << 4

	case v >= 0xD0 && v <= 0xDF:
		e.Op = EffectPanningSlideLeft
		e.Selector = 2
	case v >= 0xE0 && v <= 0xEF:
		e.Op = EffectPanningSlideRight
		e.Selector = 1
	}

	return e
}

func (e Effect) AsUint16() uint16 {
	return (uint16(e.Op) << 8) | uint16(e.Arg)
}
