// Package premguru implements the session and streaming core of the Prem Guru
// chat service: a persona-driven assistant with durable multi-session history
// and incremental streaming of model replies.
package premguru

import (
	"github.com/google/uuid"

	"github.com/tanmoym/premguru/personas"
)

// Message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one turn in a conversation. Its id never changes, but Text and
// IsError are mutated in place while a reply streams in or fails.
type Message struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Text string `json:"text"`
	// Image is an optional data URI (data:<mime>;base64,<payload>), at most
	// one per message. This is the only image representation in the core.
	Image string `json:"image,omitempty"`
	// IsError marks a failed assistant turn. Error messages are never sent
	// back to the generation provider.
	IsError bool `json:"isError,omitempty"`
}

// ChatSession is one independent conversation thread. Every session holds at
// least one message (the persona's intro) at all times.
type ChatSession struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt int64      `json:"createdAt"` // unix milliseconds
	Persona   string     `json:"persona,omitempty"`
}

// newID returns a collision-resistant identifier. Wall-clock ids collide under
// rapid successive creation, so ids are random.
func newID() string {
	return uuid.NewString()
}

func newIntroMessage(persona personas.ID) *Message {
	return &Message{
		ID:   "init-" + newID(),
		Role: RoleModel,
		Text: personas.Get(persona).Intro,
	}
}

const maxTitleRunes = 30

// deriveTitle truncates a first user message into a session title. Titles are
// Bengali, so the cut is by runes, not bytes.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= maxTitleRunes {
		return text
	}
	return string(runes[:maxTitleRunes]) + "..."
}

// renameOnFirstReply rewrites the session title from the first user message,
// exactly once: only when the session still holds just its intro message and
// the updated transcript has grown past it.
func renameOnFirstReply(session *ChatSession, updated []*Message) {
	if len(session.Messages) > 1 || len(updated) <= 1 {
		return
	}
	for _, msg := range updated {
		if msg.Role == RoleUser {
			session.Title = deriveTitle(msg.Text)
			return
		}
	}
}

func cloneMessage(msg *Message) *Message {
	copied := *msg
	return &copied
}

func cloneSession(session *ChatSession) *ChatSession {
	copied := *session
	copied.Messages = make([]*Message, len(session.Messages))
	for i, msg := range session.Messages {
		copied.Messages[i] = cloneMessage(msg)
	}
	return &copied
}
