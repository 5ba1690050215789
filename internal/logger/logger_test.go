package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(tt.level, &buf)
		log.Debug("dbg line")
		log.Info("info line")

		out := buf.String()
		if got := strings.Contains(out, "[DBG] "); got != tt.wantDebug {
			t.Errorf("level=%d: debug present=%v, want %v", tt.level, got, tt.wantDebug)
		}
		if got := strings.Contains(out, "[INF] "); got != tt.wantInfo {
			t.Errorf("level=%d: info present=%v, want %v", tt.level, got, tt.wantInfo)
		}
	}
}

func TestWithTagsComponentAndSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	child := root.With("chat").With("reply")

	child.Warn("slow %d", 3)
	if !strings.Contains(buf.String(), "chat.reply: slow 3") {
		t.Fatalf("missing component tag: %q", buf.String())
	}

	buf.Reset()
	root.SetLevel(LevelOff)
	child.Error("hidden")
	if buf.Len() != 0 {
		t.Fatalf("child ignored parent's level: %q", buf.String())
	}
	if child.GetLevel() != LevelOff {
		t.Fatalf("expected child level off, got %d", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel(true, true) != LevelOff {
		t.Fatal("quiet should win over verbose")
	}
	if ParseLevel(true, false) != LevelVerbose {
		t.Fatal("expected verbose")
	}
	if ParseLevel(false, false) != LevelNormal {
		t.Fatal("expected normal")
	}
}
