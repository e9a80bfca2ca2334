package xmcore

import (
	"math"
)

// PeriodHelper converts notes to periods and periods to frequencies.
//
// The note is a semitone index where C-0 is 0 and C-4 is 48;
// it can be fractional (finetune).
type PeriodHelper interface {
	NoteToPeriod(note float64) float64

	// Frequency returns a playback frequency (in Hz) for the period
	// shifted by arpeggio (in semitones) and a vibrato/portamento
	// period offset.
	Frequency(period, arpNote, periodOffset float64) float64
}

// LinearPeriods implements the XM linear frequency table.
type LinearPeriods struct{}

var _ PeriodHelper = LinearPeriods{}

func (LinearPeriods) NoteToPeriod(note float64) float64 {
	return linearPeriod(note)
}

func (LinearPeriods) Frequency(period, arpNote, periodOffset float64) float64 {
	return linearFrequency(period - (64 * arpNote) - (16 * periodOffset))
}

func linearPeriod(note float64) float64 {
	return 7680.0 - note*64.0
}

func linearFrequency(period float64) float64 {
	return 8363.0 * math.Pow(2, (4608-period)/768)
}
