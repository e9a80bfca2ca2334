package xmcore

// Volume is a volume slide state: the amount added per tick.
type Volume struct {
	Value float64
}

// VolumeSlide is an XM volume slide (Axy, EAx, EBx, volume column 6x-9x).
//
// The zero value is a ready to use effect with no slide.
type VolumeSlide struct {
	data Volume
}

var _ XMEffect = (*VolumeSlide)(nil)

func (e *VolumeSlide) Tick0(value, param2 float64) float64 {
	e.data.Value = value
	return e.Value()
}

// Tick returns the per-tick slide amount.
// It doesn't accumulate anything: adding the amount to the
// running channel volume is a driver's job (see Voice.Tick).
func (e *VolumeSlide) Tick() float64 {
	return e.Value()
}

func (e *VolumeSlide) InProgress() bool {
	return e.data.Value != 0
}

func (e *VolumeSlide) Retrigger() float64 {
	return e.Value()
}

// Clamp limits the volume to [0, 1].
func (e *VolumeSlide) Clamp(volume float64) float64 {
	return clampUnit(volume)
}

func (e *VolumeSlide) Value() float64 {
	return e.data.Value
}

func (e *VolumeSlide) XMUpdateEffect(param, updown uint8, special2 float64) {
	arg := xmSlideArg(param, updown)
	if p, ok := XMConvertVolumeSlide(arg, 0); ok && !p.HasParam2 {
		e.Tick0(p.Value, 0)
	}
	e.Retrigger()
}

// XMConvertVolumeSlide decodes the volume slide parameter byte.
//
//	x0 - slide up by x/64 per tick
//	0y - slide down by y/64 per tick
//	xy - illegal, false is returned
//
// The special byte is not used by this effect.
func XMConvertVolumeSlide(rawval, special uint8) (XMParams, bool) {
	return xmConvertSlide(rawval, 64)
}
