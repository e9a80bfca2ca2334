package xmcore

import (
	"math"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const testEpsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= testEpsilon
}

func newTestWaveform(t testing.TB, data []int16, config WaveformConfig) *Waveform {
	t.Helper()
	w, err := NewWaveform(data, config)
	if err != nil {
		t.Fatalf("create waveform: %v", err)
	}
	return w
}

// newUnitVoice returns a voice that plays a C-4 note of a
// non-transposed waveform at exactly one sample per pull.
func newUnitVoice(t testing.TB, config VoiceConfig) *Voice {
	t.Helper()
	config.SampleRate = 8363
	v, err := NewVoice(config)
	if err != nil {
		t.Fatalf("create voice: %v", err)
	}
	return v
}

func pullAll(c *Cursor, limit int) []float64 {
	var out []float64
	for s := range c.Samples() {
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

func sineCycle(n int) []int16 {
	data := make([]int16, n)
	for i := range data {
		data[i] = int16(math.Sin(2*math.Pi*float64(i)/float64(n)) * 30000)
	}
	return data
}

// dominantBin returns the strongest non-DC spectrum bin of the signal.
func dominantBin(t *testing.T, signal []float64) int {
	t.Helper()

	plan, err := algofft.NewPlan64(len(signal))
	if err != nil {
		t.Fatalf("failed to create FFT plan: %v", err)
	}

	in := make([]complex128, len(signal))
	out := make([]complex128, len(signal))
	for i, v := range signal {
		in[i] = complex(v, 0)
	}
	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("forward FFT failed: %v", err)
	}

	maxBin := 1
	maxMag := 0.0
	for k := 1; k <= len(signal)/2; k++ {
		re := real(out[k])
		im := imag(out[k])
		mag := re*re + im*im
		if mag > maxMag {
			maxMag = mag
			maxBin = k
		}
	}
	return maxBin
}
