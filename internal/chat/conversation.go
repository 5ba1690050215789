// Package chat implements the message log and the canned response
// generator behind the workshop's chat panel.
package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/idgen"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// DefaultReplyDelay is how long Arcanum "thinks" before answering.
const DefaultReplyDelay = 1000 * time.Millisecond

// greetingID is the ID of the seed greeting. Generated IDs are wall-clock
// milliseconds, so they never collide with it.
const greetingID = 1

// Policy decides what happens when a message is sent while an earlier
// reply is still pending.
type Policy int

const (
	// PolicyConcurrent schedules an independent reply for every send.
	// Overlapping replies interleave; nothing is coalesced.
	PolicyConcurrent Policy = iota
	// PolicySingle allows one reply in flight. Sends during the window
	// are refused with ErrReplyPending.
	PolicySingle
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyConcurrent:
		return "concurrent"
	case PolicySingle:
		return "single"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a config name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "concurrent":
		return PolicyConcurrent, nil
	case "single":
		return PolicySingle, nil
	default:
		return PolicyConcurrent, fmt.Errorf("unknown reply policy %q (want concurrent or single)", s)
	}
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithDelay sets the reply delay.
func WithDelay(d time.Duration) Option {
	return func(c *Conversation) {
		c.delay = d
	}
}

// WithPolicy sets the overlapping-reply policy.
func WithPolicy(p Policy) Option {
	return func(c *Conversation) {
		c.policy = p
	}
}

// Pending is a reply that has been promised but not yet delivered. The
// caller waits Delay and then hands Token back to Deliver.
type Pending struct {
	Token  uint64
	Delay  time.Duration
	SentID int64 // ID of the user message that triggered it
}

// Conversation couples the log with the responder. It owns the typing
// indicator: typing is shown while at least one reply is pending.
type Conversation struct {
	mu        sync.Mutex
	log       *Log
	responder domain.Responder
	ids       *idgen.Generator
	logger    *logger.Logger
	delay     time.Duration
	policy    Policy
	nextToken uint64
	pending   map[uint64]string // token -> triggering input
}

// NewConversation creates a conversation seeded with Arcanum's greeting.
func NewConversation(responder domain.Responder, ids *idgen.Generator, log *logger.Logger, opts ...Option) *Conversation {
	c := &Conversation{
		responder: responder,
		ids:       ids,
		logger:    log,
		delay:     DefaultReplyDelay,
		policy:    PolicyConcurrent,
		pending:   make(map[uint64]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = NewLog(domain.Message{
		ID:        greetingID,
		Type:      domain.MessageAI,
		Content:   LineGreeting(),
		Timestamp: ids.Now(),
	})
	return c
}

// Send appends the user's message and schedules a reply. Whitespace-only
// input is rejected with ErrEmptyMessage and changes nothing. Under
// PolicySingle a send while a reply is pending returns ErrReplyPending.
// The content is stored verbatim.
func (c *Conversation) Send(text string) (*Pending, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.policy == PolicySingle && len(c.pending) > 0 {
		c.logger.Debug("send refused, %d reply pending", len(c.pending))
		return nil, domain.ErrReplyPending
	}

	msg := domain.Message{
		ID:        c.ids.Next(),
		Type:      domain.MessageUser,
		Content:   text,
		Timestamp: c.ids.Now(),
	}
	if err := c.log.Append(msg); err != nil {
		return nil, fmt.Errorf("appending user message: %w", err)
	}

	c.nextToken++
	token := c.nextToken
	c.pending[token] = text

	c.logger.Debug("user message %d queued reply %d (pending=%d)", msg.ID, token, len(c.pending))
	return &Pending{Token: token, Delay: c.delay, SentID: msg.ID}, nil
}

// Deliver appends the AI reply for a pending token. Unknown or already
// delivered tokens return ErrNotFound and append nothing.
func (c *Conversation) Deliver(token uint64) (*domain.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	input, ok := c.pending[token]
	if !ok {
		return nil, fmt.Errorf("reply %d: %w", token, domain.ErrNotFound)
	}
	delete(c.pending, token)

	msg := domain.Message{
		ID:        c.ids.Next(),
		Type:      domain.MessageAI,
		Content:   c.responder.Respond(input),
		Timestamp: c.ids.Now(),
	}
	if err := c.log.Append(msg); err != nil {
		return nil, fmt.Errorf("appending reply: %w", err)
	}

	c.logger.Debug("reply %d delivered as message %d (pending=%d)", token, msg.ID, len(c.pending))
	return &msg, nil
}

// Typing reports whether a reply is being brewed.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

// PendingCount returns the number of undelivered replies.
func (c *Conversation) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Messages returns a snapshot of the log.
func (c *Conversation) Messages() []domain.Message {
	return c.log.Messages()
}

// Len returns the number of logged messages.
func (c *Conversation) Len() int {
	return c.log.Len()
}

// Delay returns the configured reply delay.
func (c *Conversation) Delay() time.Duration { return c.delay }

// Policy returns the configured overlapping-reply policy.
func (c *Conversation) Policy() Policy { return c.policy }
