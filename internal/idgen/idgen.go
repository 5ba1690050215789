// Package idgen hands out creation-time-derived IDs for messages and
// recipes.
package idgen

import (
	"sync"
	"time"

	"github.com/hammamikhairi/alchemy/internal/domain"
)

// Generator produces strictly increasing int64 IDs based on wall-clock
// milliseconds. Two calls in the same millisecond still get distinct IDs:
// the second is bumped to last+1. Safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	now  domain.Clock
	last int64
}

// New creates a generator reading the given clock. nil means time.Now.
func New(now domain.Clock) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Next returns a fresh ID, greater than every ID returned before.
func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Now exposes the generator's clock so timestamps and IDs agree.
func (g *Generator) Now() time.Time {
	return g.now()
}
