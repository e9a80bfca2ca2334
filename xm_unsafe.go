package xmcore

import (
	"unsafe"
)

// MemoryUsage approximates the waveform size in bytes.
// The sample data is shared between cursors, so this is
// paid once per waveform, not once per voice.
func (w *Waveform) MemoryUsage() uint {
	memoryUsage := int(unsafe.Sizeof(Waveform{}))
	memoryUsage += len(w.data) * int(unsafe.Sizeof(float64(0)))
	memoryUsage += len(w.name)
	return uint(memoryUsage)
}

func cursorSize() uint {
	return uint(unsafe.Sizeof(Cursor{}))
}
