package audio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// Compile-time interface check.
var _ domain.MediaElement = (*OtoElement)(nil)

// errClosed is returned by control calls after Close.
var errClosed = errors.New("media element closed")

// OtoElement plays a decoded Track through the system audio device.
//
// oto allows a single context per process, so create at most one
// OtoElement.
type OtoElement struct {
	ctx    *oto.Context
	log    *logger.Logger
	track  *Track
	reader *loopReader
	events chan domain.MediaEvent

	mu      sync.Mutex
	player  *oto.Player // nil until the first Play and after a track ends
	volume  float64
	muted   bool
	playing bool
	gen     uint64 // bumped on every play/pause so stale watchers exit
	closed  bool
}

// NewOtoElement opens the audio device with the track's format. Returns an
// error if the device is unavailable.
func NewOtoElement(track *Track, log *logger.Logger) (*OtoElement, error) {
	op := &oto.NewContextOptions{
		SampleRate:   track.SampleRate,
		ChannelCount: track.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	secs := 0.0
	if bps := track.bytesPerSecond(); bps > 0 {
		secs = float64(len(track.PCM)) / float64(bps)
	}
	log.Debug("audio device ready (rate=%d, channels=%d, track=%.1fs)",
		track.SampleRate, track.Channels, secs)

	return &OtoElement{
		ctx:    ctx,
		log:    log,
		track:  track,
		reader: newLoopReader(track.PCM, false),
		events: make(chan domain.MediaEvent, EventBuffer),
		volume: 1,
	}, nil
}

// Play starts or resumes playback and emits MediaPlay.
func (e *OtoElement) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errClosed
	}
	if e.playing {
		return nil
	}

	if e.player == nil {
		e.reader.rewind()
		e.player = e.ctx.NewPlayer(e.reader)
		e.player.SetBufferSize(PlayerBufferSize)
	}
	e.applyVolumeLocked()
	e.player.Play()
	if err := e.player.Err(); err != nil {
		e.closePlayerLocked()
		return err
	}

	e.playing = true
	e.gen++
	go e.watch(e.gen)

	e.emitLocked(domain.MediaPlay)
	return nil
}

// Pause halts playback, keeping the position, and emits MediaPause.
func (e *OtoElement) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errClosed
	}
	if !e.playing {
		return nil
	}

	e.player.Pause()
	e.playing = false
	e.gen++
	e.emitLocked(domain.MediaPause)
	return nil
}

// SetVolume sets the gain in [0,1].
func (e *OtoElement) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = v
	e.applyVolumeLocked()
}

// SetMuted silences output without forgetting the volume.
func (e *OtoElement) SetMuted(m bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = m
	e.applyVolumeLocked()
}

// SetLoop toggles wrap-around at the end of the track.
func (e *OtoElement) SetLoop(loop bool) {
	e.reader.setLoop(loop)
}

// Events returns the play/pause/ended stream. Closed by Close.
func (e *OtoElement) Events() <-chan domain.MediaEvent {
	return e.events
}

// Close stops playback and releases the player.
func (e *OtoElement) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.gen++
	var err error
	if e.player != nil {
		e.player.Pause()
		err = e.player.Close()
		e.player = nil
	}
	close(e.events)
	e.log.Debug("audio element closed")
	return err
}

// watch polls the player until it drains a non-looping track, then emits
// MediaEnded. Exits early once gen is superseded.
func (e *OtoElement) watch(gen uint64) {
	ticker := time.NewTicker(WatchInterval)
	defer ticker.Stop()

	for range ticker.C {
		e.mu.Lock()
		if e.gen != gen {
			e.mu.Unlock()
			return
		}
		if !e.player.IsPlaying() && e.reader.exhausted() {
			e.playing = false
			e.gen++
			e.closePlayerLocked()
			e.emitLocked(domain.MediaEnded)
			e.mu.Unlock()
			e.log.Debug("track ended")
			return
		}
		e.mu.Unlock()
	}
}

func (e *OtoElement) applyVolumeLocked() {
	if e.player == nil {
		return
	}
	if e.muted {
		e.player.SetVolume(0)
		return
	}
	e.player.SetVolume(e.volume)
}

func (e *OtoElement) closePlayerLocked() {
	if e.player == nil {
		return
	}
	if err := e.player.Close(); err != nil {
		e.log.Warn("closing player: %v", err)
	}
	e.player = nil
}

func (e *OtoElement) emitLocked(t domain.MediaEventType) {
	if e.closed {
		return
	}
	select {
	case e.events <- domain.MediaEvent{Type: t}:
	default:
		e.log.Warn("media event %s dropped, nobody listening", t)
	}
}
