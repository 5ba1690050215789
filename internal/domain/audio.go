package domain

// Volume bounds, in percent.
const (
	MinVolume = 0
	MaxVolume = 100
)

// AudioState mirrors the background music element. It is not persisted.
type AudioState struct {
	Volume    int
	IsPlaying bool
	IsMuted   bool
}

// EffectiveVolume is what the listener actually hears: 0 while muted,
// otherwise the stored volume.
func (s AudioState) EffectiveVolume() int {
	if s.IsMuted {
		return 0
	}
	return s.Volume
}

// ClampVolume bounds v to [MinVolume, MaxVolume].
func ClampVolume(v int) int {
	if v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// MediaEventType enumerates the events a media element reports.
type MediaEventType int

const (
	MediaPlay MediaEventType = iota
	MediaPause
	MediaEnded
)

// String returns the DOM-style event name.
func (t MediaEventType) String() string {
	switch t {
	case MediaPlay:
		return "play"
	case MediaPause:
		return "pause"
	case MediaEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// MediaEvent is a state change reported by a MediaElement.
type MediaEvent struct {
	Type MediaEventType
}
