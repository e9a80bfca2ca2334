package xmcore

import (
	"math"
)

type numeric interface {
	uint8 | int | float64
}

func clampMin[T numeric](v, min T) T {
	if v < min {
		return min
	}
	return v
}

func clamp[T numeric](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUnit maps v into [0, 1].
// NaN is treated as silence.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}

func lerp(u, v, t float64) float64 {
	return u + (v-u)*t
}

func putPCM(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// pcm16 converts a normalized sample to a signed 16-bit value with saturation.
func pcm16(v float64) int16 {
	x := v * 32767
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return int16(x)
}
