package audio

import "time"

// Tuning for the oto-backed element.
const (
	// EventBuffer is the capacity of the element's event channel.
	EventBuffer = 16
	// PlayerBufferSize keeps pause latency low without starving the device.
	PlayerBufferSize = 8 * 1024
	// WatchInterval is how often a playing element checks for end of track.
	WatchInterval = 50 * time.Millisecond
)
