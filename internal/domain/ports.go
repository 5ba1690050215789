package domain

import (
	"context"
	"time"
)

// RecipeStore holds the grimoire. The in-memory catalog is the only
// implementation; nothing outlives the process.
type RecipeStore interface {
	List(ctx context.Context) ([]*Recipe, error)
	Get(ctx context.Context, id int64) (*Recipe, error)
	Add(ctx context.Context) (*Recipe, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Responder produces the automated alchemist's reply to a user message.
// The canned responder ignores the input; a real backend would not.
type Responder interface {
	Respond(input string) string
}

// MediaElement is a playable media resource, modelled on the HTML media
// element: the element is driven by control calls and reports what it
// actually did through Events.
type MediaElement interface {
	Play(ctx context.Context) error
	Pause() error
	SetVolume(v float64) // 0.0 - 1.0
	SetMuted(muted bool)
	SetLoop(loop bool)
	Events() <-chan MediaEvent
	Close() error
}

// RandSource is the randomness the responder and catalog draw from.
// Implementations shared between components must be safe for concurrent
// use; wrap a *math/rand.Rand in LockedRand. Tests inject fixed sequences.
type RandSource interface {
	Intn(n int) int
}

// Clock returns the current time. Injected so IDs and timestamps are
// deterministic under test.
type Clock func() time.Time
