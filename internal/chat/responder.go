package chat

import "github.com/hammamikhairi/alchemy/internal/domain"

// Compile-time interface check.
var _ domain.Responder = (*CannedResponder)(nil)

// CannedResponder answers with a line drawn uniformly from a fixed set.
// It stands in for a real backend and never looks at the input.
type CannedResponder struct {
	rnd   domain.RandSource // must be safe for concurrent use
	lines []string
}

// NewCannedResponder creates a responder over the default reply set.
func NewCannedResponder(rnd domain.RandSource) *CannedResponder {
	return NewCannedResponderWith(rnd, Responses())
}

// NewCannedResponderWith creates a responder over a custom reply set.
// An empty set falls back to the defaults.
func NewCannedResponderWith(rnd domain.RandSource, lines []string) *CannedResponder {
	if len(lines) == 0 {
		lines = Responses()
	}
	return &CannedResponder{rnd: rnd, lines: lines}
}

// Pick returns one reply, chosen uniformly at random.
func (r *CannedResponder) Pick() string {
	return r.lines[r.rnd.Intn(len(r.lines))]
}

// Respond implements domain.Responder.
func (r *CannedResponder) Respond(string) string {
	return r.Pick()
}

// Lines returns the reply set.
func (r *CannedResponder) Lines() []string {
	return append([]string(nil), r.lines...)
}
