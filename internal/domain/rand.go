package domain

import "sync"

// Compile-time interface check.
var _ RandSource = (*LockedRand)(nil)

// LockedRand serialises access to a RandSource so several components can
// share one *math/rand.Rand.
type LockedRand struct {
	mu  sync.Mutex
	src RandSource
}

// NewLockedRand wraps src.
func NewLockedRand(src RandSource) *LockedRand {
	return &LockedRand{src: src}
}

// Intn implements RandSource.
func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
