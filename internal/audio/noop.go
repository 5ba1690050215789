package audio

import (
	"context"
	"sync"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// Compile-time interface check.
var _ domain.MediaElement = (*NoOpElement)(nil)

// NoOpElement stands in when music is disabled or no device or track is
// available. Play always fails, so the UI stays paused.
type NoOpElement struct {
	log    *logger.Logger
	events chan domain.MediaEvent
	once   sync.Once
}

// NewNoOpElement creates a silent element.
func NewNoOpElement(log *logger.Logger) *NoOpElement {
	return &NoOpElement{log: log, events: make(chan domain.MediaEvent)}
}

// Play returns domain.ErrNoMedia.
func (n *NoOpElement) Play(ctx context.Context) error {
	return domain.ErrNoMedia
}

// Pause does nothing.
func (n *NoOpElement) Pause() error { return nil }

// SetVolume only logs.
func (n *NoOpElement) SetVolume(v float64) {
	n.log.Debug("no-op element: volume %.2f", v)
}

// SetMuted does nothing.
func (n *NoOpElement) SetMuted(bool) {}

// SetLoop does nothing.
func (n *NoOpElement) SetLoop(bool) {}

// Events never fires.
func (n *NoOpElement) Events() <-chan domain.MediaEvent { return n.events }

// Close closes the event channel. Safe to call more than once.
func (n *NoOpElement) Close() error {
	n.once.Do(func() { close(n.events) })
	return nil
}
