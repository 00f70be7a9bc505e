package sessions

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SSEWriter handles Server-Sent Events writing
type SSEWriter interface {
	WriteSSE(event, data string) error
	WriteSSEError(err error) error
	Flush()
}

// WebSocketWriter serializes all writes to one connection. Stream updates
// come from the manager goroutine while pings and acks come from the read
// loop, so every write goes through the mutex.
type WebSocketWriter struct {
	Conn             *websocket.Conn
	Logger           *log.Logger
	StartTime        time.Time
	FirstTokenTime   *time.Time
	FirstTokenLogged bool
	mu               sync.Mutex
}

func (w *WebSocketWriter) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Track time to first token
	if !w.FirstTokenLogged && w.FirstTokenTime == nil && !w.StartTime.IsZero() {
		now := time.Now()
		w.FirstTokenTime = &now
		w.Logger.Printf("Time to first token: %v", now.Sub(w.StartTime))
		w.FirstTokenLogged = true
	}
	return w.Conn.WriteJSON(v)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "error", "error": message})
}

// ClientCommand is one inbound WebSocket frame from the client.
type ClientCommand struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Persona   string `json:"persona,omitempty"`
	Confirmed bool   `json:"confirmed,omitempty"`
}

// SendRequest is the HTTP body for dispatching one chat turn.
type SendRequest struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// CreateSessionRequest is the HTTP body for creating a session.
type CreateSessionRequest struct {
	Persona string `json:"persona,omitempty"`
}

// SetPersonaRequest is the HTTP body for switching the active persona.
type SetPersonaRequest struct {
	Persona string `json:"persona"`
}
