package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/idgen"
	"github.com/hammamikhairi/alchemy/internal/logger"
)

// seqRand returns a fixed sequence of indices, cycling when exhausted.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func setupConversation(t *testing.T, opts ...Option) (*Conversation, *seqRand) {
	t.Helper()
	rnd := &seqRand{vals: []int{2, 0, 4}}
	ids := idgen.New(func() time.Time { return time.UnixMilli(1_700_000_000_000) })
	conv := NewConversation(NewCannedResponder(rnd), ids, logger.Discard(), opts...)
	return conv, rnd
}

func TestConversationStartsWithGreeting(t *testing.T) {
	conv, _ := setupConversation(t)

	msgs := conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 seed message, got %d", len(msgs))
	}
	if msgs[0].Type != domain.MessageAI || msgs[0].Content != LineGreeting() {
		t.Fatalf("unexpected seed: %+v", msgs[0])
	}
	if conv.Typing() {
		t.Fatal("should not be typing before any send")
	}
}

func TestSendRejectsBlankInput(t *testing.T) {
	conv, _ := setupConversation(t)

	for _, in := range []string{"", "   ", "\t\n"} {
		p, err := conv.Send(in)
		if !errors.Is(err, domain.ErrEmptyMessage) {
			t.Fatalf("input=%q: expected ErrEmptyMessage, got %v", in, err)
		}
		if p != nil {
			t.Fatalf("input=%q: expected no pending reply", in)
		}
	}
	if conv.Len() != 1 {
		t.Fatalf("log changed on blank input: %d entries", conv.Len())
	}
	if conv.Typing() {
		t.Fatal("blank input must not start typing")
	}
}

func TestSendThenDeliver(t *testing.T) {
	conv, _ := setupConversation(t)

	p, err := conv.Send("Feuertrank")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if conv.Len() != 2 {
		t.Fatalf("expected 2 entries right after send, got %d", conv.Len())
	}
	if !conv.Typing() {
		t.Fatal("expected typing after send")
	}
	if p.Delay != DefaultReplyDelay {
		t.Fatalf("expected default delay, got %s", p.Delay)
	}

	last := conv.Messages()[1]
	if last.Type != domain.MessageUser || last.Content != "Feuertrank" || last.ID != p.SentID {
		t.Fatalf("unexpected user message: %+v", last)
	}

	reply, err := conv.Deliver(p.Token)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if conv.Len() != 3 {
		t.Fatalf("expected 3 entries after delivery, got %d", conv.Len())
	}
	if conv.Typing() {
		t.Fatal("typing should clear after the reply lands")
	}
	if reply.Type != domain.MessageAI {
		t.Fatalf("expected ai message, got %s", reply.Type)
	}
	// seqRand's first value is 2.
	if reply.Content != Responses()[2] {
		t.Fatalf("unexpected reply content: %q", reply.Content)
	}
	if reply.ID <= p.SentID {
		t.Fatalf("reply id %d should follow user id %d", reply.ID, p.SentID)
	}
}

func TestSendKeepsContentVerbatim(t *testing.T) {
	conv, _ := setupConversation(t)

	if _, err := conv.Send("  moonbell petals  "); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := conv.Messages()[1].Content; got != "  moonbell petals  " {
		t.Fatalf("content was altered: %q", got)
	}
}

func TestDeliverUnknownToken(t *testing.T) {
	conv, _ := setupConversation(t)

	p, err := conv.Send("hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := conv.Deliver(p.Token); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	// Second delivery of the same token and a made-up token both miss.
	for _, tok := range []uint64{p.Token, 999} {
		if _, err := conv.Deliver(tok); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("token %d: expected ErrNotFound, got %v", tok, err)
		}
	}
	if conv.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", conv.Len())
	}
}

func TestConcurrentPolicyInterleaves(t *testing.T) {
	conv, _ := setupConversation(t)

	p1, err := conv.Send("first")
	if err != nil {
		t.Fatalf("send 1: %v", err)
	}
	p2, err := conv.Send("second")
	if err != nil {
		t.Fatalf("send 2: %v", err)
	}
	if conv.PendingCount() != 2 {
		t.Fatalf("expected 2 pending, got %d", conv.PendingCount())
	}

	if _, err := conv.Deliver(p1.Token); err != nil {
		t.Fatalf("deliver 1: %v", err)
	}
	if !conv.Typing() {
		t.Fatal("typing must stay on while a reply is still pending")
	}
	if _, err := conv.Deliver(p2.Token); err != nil {
		t.Fatalf("deliver 2: %v", err)
	}
	if conv.Typing() {
		t.Fatal("typing should clear once every reply landed")
	}

	want := []domain.MessageType{domain.MessageAI, domain.MessageUser, domain.MessageUser, domain.MessageAI, domain.MessageAI}
	msgs := conv.Messages()
	if len(msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(msgs))
	}
	for i, m := range msgs {
		if m.Type != want[i] {
			t.Fatalf("message %d: got %s, want %s", i, m.Type, want[i])
		}
	}
}

func TestSinglePolicyRefusesOverlap(t *testing.T) {
	conv, _ := setupConversation(t, WithPolicy(PolicySingle), WithDelay(250*time.Millisecond))

	p, err := conv.Send("first")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if p.Delay != 250*time.Millisecond {
		t.Fatalf("expected configured delay, got %s", p.Delay)
	}

	if _, err := conv.Send("second"); !errors.Is(err, domain.ErrReplyPending) {
		t.Fatalf("expected ErrReplyPending, got %v", err)
	}
	if conv.Len() != 2 {
		t.Fatalf("refused send changed the log: %d entries", conv.Len())
	}

	if _, err := conv.Deliver(p.Token); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if _, err := conv.Send("second"); err != nil {
		t.Fatalf("send after delivery: %v", err)
	}
}

func TestIDsUniqueAcrossLog(t *testing.T) {
	conv, _ := setupConversation(t)

	for i := 0; i < 20; i++ {
		p, err := conv.Send("brew")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		if _, err := conv.Deliver(p.Token); err != nil {
			t.Fatalf("deliver: %v", err)
		}
	}

	seen := make(map[int64]bool)
	for _, m := range conv.Messages() {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyConcurrent, false},
		{"concurrent", PolicyConcurrent, false},
		{"SINGLE", PolicySingle, false},
		{"queue", PolicyConcurrent, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("in=%q: err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("in=%q: got %s, want %s", tt.in, got, tt.want)
		}
	}
}
