package chat

import (
	"fmt"
	"sync"

	"github.com/hammamikhairi/alchemy/internal/domain"
)

// Log is the ordered, append-only chat history. Entries are never edited,
// removed or reordered. Safe for concurrent use.
type Log struct {
	mu   sync.RWMutex
	msgs []domain.Message
	ids  map[int64]struct{}
}

// NewLog creates a log holding the given seed messages, in order.
// Seeds with duplicate IDs keep only the first occurrence.
func NewLog(seed ...domain.Message) *Log {
	l := &Log{ids: make(map[int64]struct{}, len(seed))}
	for _, m := range seed {
		_ = l.Append(m)
	}
	return l
}

// Append adds m to the end of the log. Returns ErrDuplicateID if a message
// with the same ID is already present.
func (l *Log) Append(m domain.Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ids[m.ID]; ok {
		return fmt.Errorf("message %d: %w", m.ID, domain.ErrDuplicateID)
	}
	l.ids[m.ID] = struct{}{}
	l.msgs = append(l.msgs, m)
	return nil
}

// Messages returns a snapshot of the log in insertion order.
func (l *Log) Messages() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.msgs)
}

// Last returns the most recent message, if any.
func (l *Log) Last() (domain.Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.msgs) == 0 {
		return domain.Message{}, false
	}
	return l.msgs[len(l.msgs)-1], true
}
