package store

import (
	"fmt"
	"strings"
	"testing"
)

func TestEffectiveQueryEmptyHistory(t *testing.T) {
	conv := NewConversation("s1")
	if got := conv.EffectiveQuery("need water"); got != "need water" {
		t.Errorf("EffectiveQuery = %q, want the query verbatim", got)
	}
}

func TestEffectiveQueryPrefixesHistory(t *testing.T) {
	conv := NewConversation("s1")
	conv.AppendUserLine("hello")
	conv.AppendBotLine("hi, how can I help?")

	got := conv.EffectiveQuery("need water")
	want := "user: hello\nbot: hi, how can I help?\nuser: need water"
	if got != want {
		t.Errorf("EffectiveQuery = %q, want %q", got, want)
	}
}

func TestEffectiveQueryWindowLimit(t *testing.T) {
	conv := NewConversation("s1")
	for i := 0; i < 5; i++ {
		conv.AppendUserLine(fmt.Sprintf("q%d", i))
		conv.AppendBotLine(fmt.Sprintf("a%d", i))
	}

	got := conv.EffectiveQuery("latest")
	lines := strings.Split(got, "\n")

	// 6 history lines + the new user line.
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), got)
	}
	if lines[0] != "user: q2" {
		t.Errorf("window starts at %q, want oldest line inside the window", lines[0])
	}
	if lines[6] != "user: latest" {
		t.Errorf("last line = %q", lines[6])
	}
}

func TestContextWindow(t *testing.T) {
	conv := NewConversation("s1")

	if got := conv.ContextWindow(6); got != nil {
		t.Errorf("empty history should return nil, got %v", got)
	}

	conv.AppendUserLine("a")
	conv.AppendBotLine("b")

	if got := conv.ContextWindow(6); len(got) != 2 {
		t.Errorf("short history should be returned whole, got %v", got)
	}
	if got := conv.ContextWindow(1); len(got) != 1 || got[0] != "bot: b" {
		t.Errorf("ContextWindow(1) = %v", got)
	}
	if got := conv.ContextWindow(0); got != nil {
		t.Errorf("ContextWindow(0) = %v, want nil", got)
	}
}

func TestHistoryIsNeverTruncated(t *testing.T) {
	conv := NewConversation("s1")
	for i := 0; i < 20; i++ {
		conv.AppendUserLine("q")
		conv.AppendBotLine("a")
	}

	if len(conv.History) != 40 {
		t.Errorf("history length = %d, want 40 (storage must not truncate)", len(conv.History))
	}
}
