package domain

import "time"

// MessageType identifies who authored a chat turn.
type MessageType int

const (
	MessageUser MessageType = iota
	MessageAI
)

// String returns a human-readable author type.
func (t MessageType) String() string {
	switch t {
	case MessageUser:
		return "user"
	case MessageAI:
		return "ai"
	default:
		return "unknown"
	}
}

// Message is one turn in the chat log. Immutable once created.
type Message struct {
	ID        int64
	Type      MessageType
	Content   string
	Timestamp time.Time
}
