// Package audio drives the workshop's background music. The Controller
// holds the user-facing state; a domain.MediaElement does the playing and
// reports back what actually happened.
package audio

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// DefaultVolume is the starting volume, in percent.
const DefaultVolume = 50

// Controller mirrors a media element into a domain.AudioState.
//
// IsPlaying is only ever written by HandleEvent: control calls drive the
// element, the element's event stream drives the state. A failed play
// therefore leaves IsPlaying untouched.
type Controller struct {
	mu    sync.Mutex
	el    domain.MediaElement
	state domain.AudioState
	log   *logger.Logger
}

// NewController wraps el, applies the initial volume and enables looping.
func NewController(el domain.MediaElement, volume int, log *logger.Logger) *Controller {
	c := &Controller{el: el, log: log}
	c.state.Volume = domain.ClampVolume(volume)
	el.SetVolume(float64(c.state.Volume) / 100)
	el.SetLoop(true)
	return c
}

// State returns a copy of the current audio state.
func (c *Controller) State() domain.AudioState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// TogglePlayPause pauses if playing, otherwise starts playback. A play
// rejection is logged and returned; the state is left to the element's
// events.
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	c.mu.Lock()
	playing := c.state.IsPlaying
	c.mu.Unlock()

	if playing {
		if err := c.el.Pause(); err != nil {
			c.log.Warn("pause failed: %v", err)
			return fmt.Errorf("pausing music: %w", err)
		}
		return nil
	}

	if err := c.el.Play(ctx); err != nil {
		c.log.Warn("play rejected: %v", err)
		return fmt.Errorf("starting music: %w", err)
	}
	return nil
}

// HandleEvent mirrors an element event onto IsPlaying.
func (c *Controller) HandleEvent(ev domain.MediaEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case domain.MediaPlay:
		c.state.IsPlaying = true
	case domain.MediaPause, domain.MediaEnded:
		c.state.IsPlaying = false
	default:
		c.log.Debug("ignoring media event %d", ev.Type)
		return
	}
	c.log.Debug("media event %s, playing=%v", ev.Type, c.state.IsPlaying)
}

// SetVolume clamps v to [0,100], stores it and applies v/100 to the
// element. Returns the stored value.
func (c *Controller) SetVolume(v int) int {
	v = domain.ClampVolume(v)

	c.mu.Lock()
	c.state.Volume = v
	c.mu.Unlock()

	c.el.SetVolume(float64(v) / 100)
	return v
}

// Step nudges the volume by delta percent.
func (c *Controller) Step(delta int) int {
	c.mu.Lock()
	v := c.state.Volume + delta
	c.mu.Unlock()
	return c.SetVolume(v)
}

// ToggleMute flips the muted flag and mirrors it onto the element. The
// stored volume is not touched. Returns the new muted flag.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	c.state.IsMuted = !c.state.IsMuted
	muted := c.state.IsMuted
	c.mu.Unlock()

	c.el.SetMuted(muted)
	return muted
}

// SetVolumeFromClickPosition converts a click at clickX within a slider
// track widthPx wide into a volume and applies it. Rounds half up. Returns
// false and changes nothing when the track has no width.
func (c *Controller) SetVolumeFromClickPosition(clickX, widthPx float64) (int, bool) {
	if widthPx <= 0 || math.IsNaN(clickX) {
		return c.State().Volume, false
	}
	// Clamp before converting: far-off or infinite clicks overflow int.
	v := math.Floor(clickX/widthPx*100 + 0.5)
	v = math.Max(domain.MinVolume, math.Min(domain.MaxVolume, v))
	return c.SetVolume(int(v)), true
}

// Events exposes the element's event stream for the UI to pump into
// HandleEvent.
func (c *Controller) Events() <-chan domain.MediaEvent {
	return c.el.Events()
}

// Close releases the element.
func (c *Controller) Close() error {
	return c.el.Close()
}

// SetLoop toggles wrap-around at the end of the track.
func (c *Controller) SetLoop(loop bool) {
	c.el.SetLoop(loop)
}
