package xmcore

// PanningSlide is an XM panning slide (Pxy, volume column Dx/Ex).
//
// It shares the volume slide parameter layout. XM panning
// goes from 0 to 255, so a unit step is 1/256 of the [0, 1] range.
type PanningSlide struct {
	value float64
}

var _ XMEffect = (*PanningSlide)(nil)

func (e *PanningSlide) Tick0(value, param2 float64) float64 {
	e.value = value
	return e.value
}

func (e *PanningSlide) Tick() float64 { return e.value }

func (e *PanningSlide) InProgress() bool { return e.value != 0 }

func (e *PanningSlide) Retrigger() float64 { return e.value }

// Clamp limits the panning to [0, 1].
func (e *PanningSlide) Clamp(panning float64) float64 {
	return clampUnit(panning)
}

func (e *PanningSlide) Value() float64 { return e.value }

func (e *PanningSlide) XMUpdateEffect(param, updown uint8, special2 float64) {
	if p, ok := XMConvertPanningSlide(xmSlideArg(param, updown), 0); ok {
		e.Tick0(p.Value, 0)
	}
	e.Retrigger()
}

// XMConvertPanningSlide decodes the panning slide parameter byte.
// x0 slides right, 0y slides left; xy is illegal.
func XMConvertPanningSlide(rawval, special uint8) (XMParams, bool) {
	return xmConvertSlide(rawval, 256)
}
