package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"

	premguru "github.com/tanmoym/premguru"
)

// NewHTTPSession creates the REST+SSE surface around a manager
func NewHTTPSession(manager *premguru.Manager) *HTTPSession {
	return &HTTPSession{
		Manager: manager,
		Logger:  log.New(os.Stdout, "[HTTP] ", log.LstdFlags),
	}
}

// NewChatSocket wraps an upgraded WebSocket connection
func NewChatSocket(connID string, conn *websocket.Conn, manager *premguru.Manager) *ChatSocket {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", connID), log.LstdFlags)
	return &ChatSocket{
		Manager: manager,
		Writer: &WebSocketWriter{
			Conn:   conn,
			Logger: logger,
		},
		Logger: logger,
	}
}
