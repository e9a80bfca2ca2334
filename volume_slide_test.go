package xmcore

import (
	"math"
	"testing"
)

func TestXMConvertVolumeSlide(t *testing.T) {
	tests := []struct {
		raw  uint8
		want float64
		ok   bool
	}{
		{0x30, 3.0 / 64, true},
		{0x03, -3.0 / 64, true},
		{0x33, 0, false},
		{0x00, 0, true},
		{0xF0, 15.0 / 64, true},
		{0x0F, -15.0 / 64, true},
		{0x10, 1.0 / 64, true},
		{0xFF, 0, false},
	}

	for _, test := range tests {
		p, ok := XMConvertVolumeSlide(test.raw, 0)
		if ok != test.ok {
			t.Fatalf("0x%02x: ok: have %v, want %v", test.raw, ok, test.ok)
		}
		if !ok {
			continue
		}
		if p.Value != test.want {
			t.Fatalf("0x%02x: have %v, want %v", test.raw, p.Value, test.want)
		}
		if p.HasParam2 {
			t.Fatalf("0x%02x: unexpected second param", test.raw)
		}
	}
}

func TestVolumeSlideSelector(t *testing.T) {
	tests := []struct {
		param    uint8
		selector uint8
		sameAs   uint8
	}{
		{0x05, 1, 0x50},
		{0x05, 2, 0x05},
		{0x0F, 1, 0xF0},
		{0xA3, 2, 0x03},
		{0xA3, 1, 0x30},
		{0x40, 0, 0x40},
	}

	for _, test := range tests {
		var selected VolumeSlide
		selected.XMUpdateEffect(test.param, test.selector, 0)
		p, _ := XMConvertVolumeSlide(test.sameAs, 0)
		if selected.Value() != p.Value {
			t.Fatalf("param=0x%02x selector=%d: have %v, want %v",
				test.param, test.selector, selected.Value(), p.Value)
		}
	}
}

func TestVolumeSlideIllegalKeepsValue(t *testing.T) {
	var e VolumeSlide
	e.XMUpdateEffect(0x20, 0, 0)
	e.XMUpdateEffect(0x33, 0, 0)
	if e.Value() != 2.0/64 {
		t.Fatalf("value after an illegal param: have %v, want %v", e.Value(), 2.0/64)
	}
}

func TestVolumeSlideClamp(t *testing.T) {
	var e VolumeSlide
	inputs := []float64{
		-1e308, -1, -0.0001, 0, 0.5, 1, 1.0001, 64, 1e308,
		math.Inf(1), math.Inf(-1), math.NaN(),
	}
	for _, v := range inputs {
		have := e.Clamp(v)
		if have < 0 || have > 1 || math.IsNaN(have) {
			t.Fatalf("Clamp(%v) = %v", v, have)
		}
	}
	if e.Clamp(0.5) != 0.5 {
		t.Fatal("Clamp() changed an in-range value")
	}
}

// The slide reports the per-tick amount, it never accumulates.
// The running volume is owned by the caller (see Voice.Tick).
func TestVolumeSlideTickIsNotAccumulated(t *testing.T) {
	var e VolumeSlide
	if e.InProgress() {
		t.Fatal("zero value slide is in progress")
	}
	if have := e.Tick0(0.125, 0); have != 0.125 {
		t.Fatalf("Tick0: have %v, want 0.125", have)
	}
	for i := 0; i < 4; i++ {
		if have := e.Tick(); have != 0.125 {
			t.Fatalf("Tick #%d: have %v, want 0.125", i, have)
		}
	}
	if have := e.Retrigger(); have != 0.125 {
		t.Fatalf("Retrigger: have %v, want 0.125", have)
	}
	if !e.InProgress() {
		t.Fatal("non-zero slide is not in progress")
	}

	e.XMUpdateEffect(0x00, 0, 0)
	if e.InProgress() {
		t.Fatal("0x00 slide is in progress")
	}
}

func TestNewEffect(t *testing.T) {
	tests := []struct {
		kind  EffectKind
		scale float64
	}{
		{EffectKindVolumeSlide, 64},
		{EffectKindPanningSlide, 256},
	}
	for _, test := range tests {
		e, err := NewEffect(test.kind)
		if err != nil {
			t.Fatalf("%s: %v", test.kind, err)
		}
		e.XMUpdateEffect(0x40, 0, 0)
		if have, want := e.Value(), 4/test.scale; have != want {
			t.Fatalf("%s: have %v, want %v", test.kind, have, want)
		}
	}

	if _, err := NewEffect(EffectKind(100)); err == nil {
		t.Fatal("expected an error for unknown effect kind")
	}
}

func TestPanningSlide(t *testing.T) {
	var e PanningSlide
	e.XMUpdateEffect(0x08, 1, 0)
	if have := e.Value(); have != 8.0/256 {
		t.Fatalf("slide right: have %v, want %v", have, 8.0/256)
	}
	e.XMUpdateEffect(0x08, 2, 0)
	if have := e.Value(); have != -8.0/256 {
		t.Fatalf("slide left: have %v, want %v", have, -8.0/256)
	}
	e.XMUpdateEffect(0x88, 0, 0)
	if have := e.Value(); have != -8.0/256 {
		t.Fatalf("illegal param changed the value: %v", have)
	}
	if e.Clamp(-3) != 0 || e.Clamp(3) != 1 {
		t.Fatal("Clamp() returned a value outside of [0, 1]")
	}
}
