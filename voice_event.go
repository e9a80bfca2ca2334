package xmcore

// VoiceEventKind is an event tag that should be used to differentiate between different event types.
type VoiceEventKind int

const (
	// EventUnknown is a sentinel value.
	// You should never receive an event of this kind.
	EventUnknown VoiceEventKind = iota

	// EventEnd is emitted once when a voice cursor reaches its terminal state
	// while rendering: a non-looping sample played past its end,
	// a sample offset moved past the end or the cursor was disabled.
	//
	// The event is emitted again only after the voice is re-triggered.
	EventEnd

	// EventSync is emitted by Rewind.
	// Its Time is the playback offset right before the rewind;
	// the application should reset its time counter to 0.
	EventSync
)

func (k VoiceEventKind) String() string {
	switch k {
	case EventEnd:
		return "end"
	case EventSync:
		return "sync"
	default:
		return "unknown"
	}
}

// VoiceEvent holds a single Voice event data.
// This object is an argument to the VoiceConfig.EventHandler function.
type VoiceEvent struct {
	Kind VoiceEventKind

	// Time represents the playback offset in seconds.
	// It's computed from the number of rendered samples.
	Time float64
}
