package premguru

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tanmoym/premguru/models"
	"github.com/tanmoym/premguru/personas"
	"github.com/tanmoym/premguru/stores"
)

// UpdateKind distinguishes the events emitted while a reply streams in.
type UpdateKind string

const (
	// UpdateDelta carries one streamed text chunk.
	UpdateDelta UpdateKind = "delta"
	// UpdateDone marks successful stream exhaustion.
	UpdateDone UpdateKind = "done"
	// UpdateError marks a failed turn; Message holds the error message that
	// replaced the assistant placeholder.
	UpdateError UpdateKind = "error"
)

// Update is one incremental event from an in-flight send.
type Update struct {
	Kind    UpdateKind `json:"type"`
	Delta   string     `json:"delta,omitempty"`
	Text    string     `json:"text"`
	Message *Message   `json:"message,omitempty"`
}

// Manager owns the session list, the active selection and the streaming
// engine. All mutations go through it; transports only read snapshots and
// dispatch intents.
type Manager struct {
	store  stores.RecordStore
	logger *log.Logger
	engine *Engine

	mu       sync.Mutex
	sessions []*ChatSession
	activeID string
	persona  personas.ID
}

// NewManager loads persisted sessions (or creates a fresh default one),
// activates the most recent session and initializes the provider session for
// it. Provider initialization failures are logged, not fatal: the next send
// surfaces them as a visible error message.
func NewManager(config *Config) *Manager {
	m := &Manager{
		store:  config.Store,
		logger: config.Logger,
		engine: newEngine(config),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = loadSessions(m.store, m.logger)
	if len(m.sessions) == 0 {
		m.createSessionLocked(personas.Default)
		return m
	}
	m.activateLocked(m.sessions[0])
	return m
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Engine exposes the request state machine (read-only use by transports).
func (m *Manager) Engine() *Engine {
	return m.engine
}

// Sessions returns a snapshot of the session list, most recent first.
func (m *Manager) Sessions() []*ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]*ChatSession, len(m.sessions))
	for i, session := range m.sessions {
		snapshot[i] = cloneSession(session)
	}
	return snapshot
}

// Session returns a snapshot of one session by id.
func (m *Manager) Session(id string) (*ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.ID == id {
			return cloneSession(session), true
		}
	}
	return nil, false
}

// ActiveSession returns a snapshot of the currently active session.
func (m *Manager) ActiveSession() *ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session := m.activeSessionLocked(); session != nil {
		return cloneSession(session)
	}
	return nil
}

// ActivePersona returns the persona currently applied to new turns.
func (m *Manager) ActivePersona() personas.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persona
}

// CreateSession allocates a new session seeded with the persona's intro
// message, prepends it to the list, makes it active and reinitializes the
// provider session. Returns a snapshot of the new session.
func (m *Manager) CreateSession(persona personas.ID) *ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.createSessionLocked(personas.Resolve(string(persona)))
	return cloneSession(session)
}

// SwitchSession activates the session with the given id. Unknown ids are
// ignored: stale references from a just-deleted session are expected.
func (m *Manager) SwitchSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, session := range m.sessions {
		if session.ID == id {
			m.activateLocked(session)
			return
		}
	}
}

// DeleteSession removes a session. The confirmed flag is the explicit
// confirmation signal; without it the call is a no-op. The session list never
// becomes empty: deleting the last session synthesizes a fresh default one in
// the same operation. Deleting the active session activates the head of the
// remainder.
func (m *Manager) DeleteSession(id string, confirmed bool) {
	if !confirmed {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	index := -1
	for i, session := range m.sessions {
		if session.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return
	}

	m.sessions = append(m.sessions[:index], m.sessions[index+1:]...)
	if len(m.sessions) == 0 {
		m.createSessionLocked(personas.Default)
		return
	}
	if m.activeID == id {
		m.activateLocked(m.sessions[0])
	}
	m.persistLocked()
}

// SetPersona changes the active persona without touching the transcript. The
// provider session is reinitialized with the existing history so only the
// forward-looking instruction changes. The persisted persona field catches up
// on the next transcript-affecting save.
func (m *Manager) SetPersona(persona personas.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persona = personas.Resolve(string(persona))
	if session := m.activeSessionLocked(); session != nil {
		session.Persona = string(m.persona)
	}
	m.reinitEngineLocked()
}

// Send dispatches one user turn on the active session and returns a channel
// of incremental updates. The channel is closed once the engine is back to
// Idle; the caller must drain it. A send is rejected with ErrEmptyMessage when
// both text and image are empty, with ErrBusy while a turn is in flight, and
// with ErrInvalidImage / ErrImageTooLarge for bad attachments, all without
// state change.
func (m *Manager) Send(ctx context.Context, text, image string) (<-chan Update, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" && image == "" {
		return nil, ErrEmptyMessage
	}
	if image != "" {
		// The data URI is the only image representation allowed into the
		// transcript; anything else is rejected before any state change.
		_, data, ok := decodeDataURI(image)
		if !ok {
			return nil, ErrInvalidImage
		}
		if decodedImageSize(data) > MaxImageBytes {
			return nil, ErrImageTooLarge
		}
	}

	handle, err := m.engine.begin()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	session := m.activeSessionLocked()
	if session == nil {
		m.mu.Unlock()
		m.engine.finish()
		return nil, ErrNoActiveSession
	}

	userMessage := &Message{ID: newID(), Role: RoleUser, Text: trimmed, Image: image}

	// Optimistic update: the user turn is visible and persisted before any
	// network activity, so a crash mid-request does not lose it.
	updated := append(session.Messages, userMessage)
	renameOnFirstReply(session, updated)
	session.Messages = updated
	session.Persona = string(m.persona)
	m.persistLocked()

	// Stable insertion point for incoming tokens.
	placeholder := &Message{ID: newID(), Role: RoleModel}
	session.Messages = append(session.Messages, placeholder)
	m.mu.Unlock()

	updates := make(chan Update, 8)
	go m.stream(ctx, handle, userMessage, placeholder, updates)
	return updates, nil
}

// stream drives one provider round-trip, folding chunks into the placeholder
// message. Whatever happens, the engine returns to Idle.
func (m *Manager) stream(ctx context.Context, handle models.ChatHandle, userMessage, placeholder *Message, updates chan<- Update) {
	defer close(updates)
	defer m.engine.finish()

	if m.engine.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.engine.timeout)
		defer cancel()
	}

	fail := func(err error) {
		m.logger.Printf("Provider stream failed: %v", err)
		m.mu.Lock()
		placeholder.Text = personas.FailureNotice
		placeholder.IsError = true
		m.persistLocked()
		snapshot := cloneMessage(placeholder)
		m.mu.Unlock()
		updates <- Update{Kind: UpdateError, Text: snapshot.Text, Message: snapshot}
	}

	if handle == nil {
		fail(errors.New("chat session not initialized"))
		return
	}

	chunkChan, errChan := handle.SendMessageStream(ctx, messageParts(userMessage))

	var buffer strings.Builder
	for chunkChan != nil || errChan != nil {
		select {
		case chunk, ok := <-chunkChan:
			if !ok {
				// A failing provider closes both channels after queueing its
				// error, so a closed chunk stream is not success yet: keep
				// selecting until the error channel has resolved too.
				chunkChan = nil
				continue
			}
			m.engine.streaming()
			buffer.WriteString(chunk.Text)
			m.mu.Lock()
			// Each update replaces the full text; deltas are never appended
			// onto the displayed text a second time.
			placeholder.Text = buffer.String()
			m.mu.Unlock()
			updates <- Update{Kind: UpdateDelta, Delta: chunk.Text, Text: buffer.String()}

		case err, ok := <-errChan:
			if ok && err != nil {
				fail(err)
				return
			}
			if !ok {
				errChan = nil
			}

		case <-ctx.Done():
			fail(ctx.Err())
			return
		}
	}

	// Both channels closed without an error: persist the completed transcript.
	m.mu.Lock()
	m.persistLocked()
	snapshot := cloneMessage(placeholder)
	m.mu.Unlock()
	updates <- Update{Kind: UpdateDone, Text: buffer.String(), Message: snapshot}
}

func (m *Manager) activeSessionLocked() *ChatSession {
	for _, session := range m.sessions {
		if session.ID == m.activeID {
			return session
		}
	}
	return nil
}

func (m *Manager) createSessionLocked(persona personas.ID) *ChatSession {
	session := &ChatSession{
		ID:        newID(),
		Title:     personas.PlaceholderTitle,
		Messages:  []*Message{newIntroMessage(persona)},
		CreatedAt: time.Now().UnixMilli(),
		Persona:   string(persona),
	}
	m.sessions = append([]*ChatSession{session}, m.sessions...)
	m.activeID = session.ID
	m.persona = persona
	m.persistLocked()
	m.reinitEngineLocked()
	return session
}

// activateLocked makes a session current, resolving its persona defensively:
// persisted data may still carry a legacy id.
func (m *Manager) activateLocked(session *ChatSession) {
	m.activeID = session.ID
	m.persona = personas.Resolve(session.Persona)
	session.Persona = string(m.persona)
	m.reinitEngineLocked()
}

func (m *Manager) persistLocked() {
	saveSessions(m.store, m.logger, m.sessions)
}

func (m *Manager) reinitEngineLocked() {
	session := m.activeSessionLocked()
	if session == nil {
		return
	}
	if err := m.engine.Reinitialize(context.Background(), session.Messages, m.persona); err != nil {
		m.logger.Printf("Failed to initialize provider session: %v", err)
	}
}
