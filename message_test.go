package premguru

import (
	"strings"
	"testing"

	"github.com/tanmoym/premguru/personas"
)

func TestDeriveTitle_ShortTextUnchanged(t *testing.T) {
	if got := deriveTitle("গুরু, সাহায্য করুন"); got != "গুরু, সাহায্য করুন" {
		t.Errorf("Expected short text unchanged, got %q", got)
	}
}

func TestDeriveTitle_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("ক", 45)
	got := deriveTitle(long)
	if got != strings.Repeat("ক", 30)+"..." {
		t.Errorf("Expected 30-rune prefix with ellipsis, got %q", got)
	}
	// Byte-based truncation would split a multibyte rune; the result must
	// stay valid at exactly the limit too.
	exact := strings.Repeat("ক", 30)
	if deriveTitle(exact) != exact {
		t.Errorf("Expected text at the limit to stay unchanged")
	}
}

func TestRenameOnFirstReply_SetsTitleOnce(t *testing.T) {
	session := &ChatSession{
		Title:    personas.PlaceholderTitle,
		Messages: []*Message{newIntroMessage(personas.Guru)},
	}

	first := append(session.Messages, &Message{Role: RoleUser, Text: "প্রথম প্রশ্ন"})
	renameOnFirstReply(session, first)
	if session.Title != "প্রথম প্রশ্ন" {
		t.Errorf("Expected title from first user message, got %q", session.Title)
	}
	session.Messages = first

	second := append(session.Messages, &Message{Role: RoleUser, Text: "দ্বিতীয় প্রশ্ন"})
	renameOnFirstReply(session, second)
	if session.Title != "প্রথম প্রশ্ন" {
		t.Errorf("Expected title to stay fixed after later messages, got %q", session.Title)
	}
}

func TestRenameOnFirstReply_NoUserMessage(t *testing.T) {
	session := &ChatSession{
		Title:    personas.PlaceholderTitle,
		Messages: []*Message{newIntroMessage(personas.Guru)},
	}
	renameOnFirstReply(session, session.Messages)
	if session.Title != personas.PlaceholderTitle {
		t.Errorf("Expected placeholder title to remain, got %q", session.Title)
	}
}

func TestNewIntroMessage(t *testing.T) {
	msg := newIntroMessage(personas.Peer)
	if msg.Role != RoleModel {
		t.Errorf("Expected model role for intro, got %q", msg.Role)
	}
	if msg.Text != personas.Get(personas.Peer).Intro {
		t.Error("Expected intro text to match persona definition")
	}
	if !strings.HasPrefix(msg.ID, "init-") {
		t.Errorf("Expected init-prefixed id, got %q", msg.ID)
	}
}

func TestCloneSession_Isolated(t *testing.T) {
	session := &ChatSession{
		ID:       "s1",
		Messages: []*Message{{ID: "m1", Role: RoleUser, Text: "original"}},
	}

	clone := cloneSession(session)
	clone.Messages[0].Text = "mutated"

	if session.Messages[0].Text != "original" {
		t.Error("Expected clone mutation to leave the source untouched")
	}
}
