package storage

type Mode int32

const (
	ModeUninitialized Mode = iota
	ModeInitializing
	ModePrimaryActive
	ModeFallbackActive
)

func (m Mode) String() string {
	switch m {
	case ModeUninitialized:
		return "uninitialized"
	case ModeInitializing:
		return "initializing"
	case ModePrimaryActive:
		return "primary"
	case ModeFallbackActive:
		return "fallback"
	}
	return "unknown"
}

type Event int

const (
	EventInitStarted Event = iota
	EventPrimaryReady
	EventPrimaryFailed
)

// Transition is the wrapper's backend selection state machine. Fallback is
// terminal: once demoted, the wrapper never returns to the primary store.
func Transition(m Mode, e Event) Mode {
	switch m {
	case ModeUninitialized:
		if e == EventInitStarted {
			return ModeInitializing
		}
	case ModeInitializing:
		switch e {
		case EventPrimaryReady:
			return ModePrimaryActive
		case EventPrimaryFailed:
			return ModeFallbackActive
		}
	case ModePrimaryActive:
		if e == EventPrimaryFailed {
			return ModeFallbackActive
		}
	}
	return m
}
