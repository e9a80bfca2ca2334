package xmcore

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWaveformErrors(t *testing.T) {
	tests := []struct {
		config WaveformConfig
		field  string
	}{
		{WaveformConfig{LoopType: LoopType(5)}, "loop type"},
		{WaveformConfig{LoopType: LoopForward, LoopStart: -1, LoopLength: 2}, "loop"},
		{WaveformConfig{LoopType: LoopForward, LoopLength: -2}, "loop"},
		{WaveformConfig{Volume: 1.5}, "volume"},
		{WaveformConfig{Volume: -0.1}, "volume"},
		{WaveformConfig{Panning: 2}, "panning"},
		{WaveformConfig{Finetune: 1}, "finetune"},
		{WaveformConfig{Finetune: -1.5}, "finetune"},
	}

	for _, test := range tests {
		_, err := NewWaveform(rampData, test.config)
		var waveformErr *WaveformError
		if !errors.As(err, &waveformErr) {
			t.Fatalf("%+v: expected a *WaveformError, got %v", test.config, err)
		}
		if waveformErr.Field != test.field {
			t.Fatalf("%+v: field: have %q, want %q", test.config, waveformErr.Field, test.field)
		}
		if !strings.HasPrefix(err.Error(), "waveform "+test.field+": ") {
			t.Fatalf("unexpected error text: %q", err.Error())
		}
	}
}

func TestNewWaveformDefaults(t *testing.T) {
	w := newTestWaveform(t, rampData, WaveformConfig{Name: "ramp"})
	if w.Volume() != 1 || w.Panning() != 0.5 {
		t.Fatalf("defaults: volume=%v panning=%v", w.Volume(), w.Panning())
	}
	if w.Name() != "ramp" || w.Len() != len(rampData) || w.Bits() != 16 {
		t.Fatalf("unexpected waveform: name=%q len=%d bits=%d", w.Name(), w.Len(), w.Bits())
	}

	silent := newTestWaveform(t, rampData, WaveformConfig{ZeroVolume: true, HardLeft: true})
	if silent.Volume() != 0 || silent.Panning() != 0 {
		t.Fatalf("explicit zeros: volume=%v panning=%v", silent.Volume(), silent.Panning())
	}
}

func TestNewWaveform8(t *testing.T) {
	w, err := NewWaveform8([]int8{0, 64, -64, 127, -128}, WaveformConfig{})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, -0.5, 127.0 / 128, -1}
	for i, v := range want {
		if w.At(i) != v {
			t.Fatalf("sample[%d]: have %v, want %v", i, w.At(i), v)
		}
	}
	if w.Bits() != 8 {
		t.Fatalf("bits: have %d, want 8", w.Bits())
	}
	if w.At(-1) != 0 || w.At(len(want)) != 0 {
		t.Fatal("out of range indexes are not silent")
	}
}

func TestWaveformLoopNormalization(t *testing.T) {
	tests := []struct {
		config     WaveformConfig
		loopType   LoopType
		loopStart  int
		loopLength int
		logged     string
	}{
		{
			config:   WaveformConfig{LoopType: LoopNone, LoopStart: 2, LoopLength: 3},
			loopType: LoopNone,
		},
		{
			config:   WaveformConfig{LoopType: LoopForward, LoopStart: 2, LoopLength: 3},
			loopType: LoopForward, loopStart: 2, loopLength: 3,
		},
		{
			config:   WaveformConfig{LoopType: LoopForward, LoopStart: 6, LoopLength: 10},
			loopType: LoopForward, loopStart: 6, loopLength: 2,
			logged: "loop window clamped",
		},
		{
			config:   WaveformConfig{LoopType: LoopPingPong, LoopStart: 20, LoopLength: 10},
			loopType: LoopNone,
			logged:   "loop disabled",
		},
		{
			config:   WaveformConfig{LoopType: LoopPingPong, LoopStart: 3},
			loopType: LoopNone,
			logged:   "loop disabled",
		},
	}

	for _, test := range tests {
		var buf bytes.Buffer
		test.config.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		w := newTestWaveform(t, rampData, test.config)
		if w.LoopType() != test.loopType || w.LoopStart() != test.loopStart || w.LoopLength() != test.loopLength {
			t.Fatalf("%+v: have %s [%d, +%d), want %s [%d, +%d)",
				test.config, w.LoopType(), w.LoopStart(), w.LoopLength(),
				test.loopType, test.loopStart, test.loopLength)
		}
		if w.LoopEnd() > w.Len() {
			t.Fatalf("%+v: loop end %d is past the data", test.config, w.LoopEnd())
		}
		if test.logged == "" && buf.Len() != 0 {
			t.Fatalf("%+v: unexpected log: %s", test.config, buf.String())
		}
		if !strings.Contains(buf.String(), test.logged) {
			t.Fatalf("%+v: log %q doesn't mention %q", test.config, buf.String(), test.logged)
		}
	}
}

func TestWaveformCopiesInput(t *testing.T) {
	data := []int16{100, 200, 300}
	w := newTestWaveform(t, data, WaveformConfig{})
	data[0] = 0
	if w.At(0) == 0 {
		t.Fatal("waveform shares the input slice")
	}
}

func TestWaveformMemoryUsage(t *testing.T) {
	small := newTestWaveform(t, rampData[:2], WaveformConfig{})
	big := newTestWaveform(t, rampData, WaveformConfig{})
	if diff := big.MemoryUsage() - small.MemoryUsage(); diff != 6*8 {
		t.Fatalf("memory usage difference: have %d, want %d", diff, 6*8)
	}
}

func TestLoopTypeString(t *testing.T) {
	tests := map[LoopType]string{
		LoopNone:     "none",
		LoopForward:  "forward",
		LoopPingPong: "ping-pong",
		LoopType(9):  "LoopType(9)",
	}
	for lt, want := range tests {
		if have := lt.String(); have != want {
			t.Fatalf("have %q, want %q", have, want)
		}
	}
}
