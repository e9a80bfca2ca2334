package xmcore

import (
	"iter"
	"math"
)

// Cursor is a playback position inside a waveform.
//
// Every pull advances the position by a step (frequency/rate)
// and returns a linearly interpolated amplitude.
// How the position behaves at the loop boundary depends on
// the waveform loop type.
//
// A cursor produces a finite sequence for non-looping waveforms:
// once it runs past the sample end it becomes disabled and
// stays disabled until Reset or SetPosition is called.
//
// The waveform is only read, never written, so several cursors
// can play the same waveform at once.
type Cursor struct {
	waveform *Waveform

	// Current seek position; -1 means "disabled".
	position float64

	// A per-pull position increment (frequency / rate).
	step float64

	// Ping-pong loop direction: true is forward.
	ping bool

	// Output sample rate.
	rate float64
}

// NewCursor creates a cursor for the waveform w that
// will be played at the output sample rate.
//
// The step is zero until SetStep is called.
// A cursor with a non-positive rate stays disabled.
func NewCursor(w *Waveform, rate float64) *Cursor {
	c := &Cursor{
		waveform: w,
		rate:     rate,
	}
	c.Reset()
	return c
}

// Reset rewinds the cursor to the sample start and forward direction.
// A cursor for an empty waveform stays disabled.
func (c *Cursor) Reset() {
	if c.playable() {
		c.position = 0
	} else {
		c.position = -1
	}
	c.ping = true
}

func (c *Cursor) playable() bool {
	return c.waveform.Len() != 0 && c.rate > 0
}

// SetStep derives the step from the playback frequency (in Hz).
// The frequency is expected to include all pitch contributions
// (note, finetune, vibrato, etc.)
func (c *Cursor) SetStep(frequency float64) {
	if !c.playable() {
		c.step = 0
		return
	}
	c.step = clampMin(frequency/c.rate, 0)
}

// SetPosition seeks to the absolute sample index.
// Seeking past the sample end disables the cursor.
func (c *Cursor) SetPosition(index int) {
	if index < 0 || index >= c.waveform.Len() || !c.playable() {
		c.Disable()
		return
	}
	c.position = float64(index)
}

// IsEnabled reports whether the cursor can produce more samples.
func (c *Cursor) IsEnabled() bool { return c.position >= 0 }

// Disable moves the cursor into the terminal state.
func (c *Cursor) Disable() { c.position = -1 }

// Position returns the current seek position (-1 if disabled).
func (c *Cursor) Position() float64 { return c.position }

// Step returns the current per-pull position increment.
func (c *Cursor) Step() float64 { return c.step }

// Forward reports the ping-pong sweep direction.
// It's always true for other loop types.
func (c *Cursor) Forward() bool { return c.ping }

// Rate returns the output sample rate the cursor was created for.
func (c *Cursor) Rate() float64 { return c.rate }

// Waveform returns the shared waveform this cursor reads.
func (c *Cursor) Waveform() *Waveform { return c.waveform }

func (c *Cursor) Bits() uint8 { return c.waveform.bits }

func (c *Cursor) Panning() float64 { return c.waveform.panning }

func (c *Cursor) Volume() float64 { return c.waveform.volume }

// FinetunedNote returns the relative note plus finetune.
// A non-zero finetune argument overrides the waveform finetune.
func (c *Cursor) FinetunedNote(finetune float64) float64 {
	if finetune == 0 {
		return float64(c.waveform.relativeNote) + c.waveform.finetune
	}
	return float64(c.waveform.relativeNote) + finetune
}

// Finetune returns the waveform finetune only.
func (c *Cursor) Finetune() float64 { return c.waveform.finetune }

// SampleC4Rate returns the playback frequency of the C-4 note
// for this waveform.
//
// The false result means that the relative note moves C-4
// out of the note table; that only happens for a broken module.
func (c *Cursor) SampleC4Rate(ph PeriodHelper) (float64, bool) {
	const (
		noteC4 = 4 * 12
		noteB9 = 10*12 - 1
	)

	note := float64(noteC4) + float64(c.waveform.relativeNote)
	if note < 0 || note >= noteB9 {
		return 0, false
	}
	c4Period := ph.NoteToPeriod(noteC4 + c.FinetunedNote(0))
	return ph.Frequency(c4Period, 0, 0), true
}

// Next pulls one sample.
// It returns false if the cursor is disabled.
func (c *Cursor) Next() (float64, bool) {
	if c.position < 0 {
		return 0, false
	}
	return c.tick(), true
}

// Samples returns the cursor sample sequence.
//
// The sequence shares the cursor state: every value it yields advances
// the cursor, and it ends when the cursor gets disabled.
// To play the waveform again, call Reset.
func (c *Cursor) Samples() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for c.position >= 0 {
			if !yield(c.tick()) {
				return
			}
		}
	}
}

func (c *Cursor) tick() float64 {
	w := c.waveform

	a := int(c.position)
	b := a + 1
	t := c.position - float64(a)

	u := w.at(a)
	var v float64

	loopEnd := w.loopStart + w.loopLength
	fLoopEnd := float64(loopEnd)
	fLoopStart := float64(w.loopStart)
	fLoopLength := float64(w.loopLength)

	switch w.loopType {
	case LoopNone:
		c.position += c.step
		if c.position >= float64(len(w.data)) {
			c.Disable()
		}
		if b < len(w.data) {
			v = w.at(b)
		}

	case LoopForward:
		c.position += c.step
		if c.position >= fLoopEnd {
			delta := math.Mod(c.position-fLoopEnd, fLoopLength)
			c.position = fLoopStart + delta
		}
		seek := b
		if b >= loopEnd {
			seek = w.loopStart
		}
		v = w.at(seek)

	case LoopPingPong:
		if c.ping {
			c.position += c.step
		} else {
			c.position -= c.step
		}

		if c.ping {
			if c.position >= fLoopEnd {
				c.ping = false
				delta := math.Mod(c.position-fLoopEnd, fLoopLength)
				c.position = fLoopEnd - delta
			}
			// Sanity check, should not happen for a valid loop.
			if c.position >= float64(len(w.data)) {
				c.ping = false
				c.position = float64(len(w.data) - 1)
			}
			seek := b
			if b >= loopEnd {
				seek = a
			}
			v = w.at(seek)
		} else {
			if c.position <= fLoopStart {
				c.ping = true
				delta := math.Mod(fLoopStart-c.position, fLoopLength)
				c.position = fLoopStart + delta
			}
			// Sanity check, should not happen for a valid loop.
			if c.position <= 0 {
				c.ping = true
				c.position = 0
			}
			// Going backwards: interpolate towards the previous point.
			v = u
			seek := b - 2
			if b == 1 || b-2 <= w.loopStart {
				seek = a
			}
			u = w.at(seek)
		}
	}

	return lerp(u, v, t)
}

// Clone returns an independent copy of the cursor state.
// The copy plays the same (shared) waveform.
func (c *Cursor) Clone() *Cursor {
	clone := *c
	return &clone
}
