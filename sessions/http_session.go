package sessions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	premguru "github.com/tanmoym/premguru"
	"github.com/tanmoym/premguru/personas"
)

// HTTPSession exposes the manager over a REST surface plus one SSE endpoint
// for the streaming chat turn.
type HTTPSession struct {
	Manager *premguru.Manager
	Logger  *log.Logger
}

// RegisterRoutes mounts all chat endpoints on the given router group.
func (s *HTTPSession) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/personas", s.handleListPersonas)
	r.GET("/sessions", s.handleListSessions)
	r.POST("/sessions", s.handleCreateSession)
	r.POST("/sessions/:id/activate", s.handleActivateSession)
	r.DELETE("/sessions/:id", s.handleDeleteSession)
	r.GET("/sessions/:id/messages", s.handleSessionMessages)
	r.PUT("/persona", s.handleSetPersona)
	r.GET("/state", s.handleState)
	r.POST("/chat", s.handleChat)
}

func (s *HTTPSession) handleListPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"personas":      personas.All(),
		"default":       personas.Default,
		"quick_prompts": personas.QuickPrompts,
	})
}

func (s *HTTPSession) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions":  s.Manager.Sessions(),
		"active_id": s.Manager.ActiveSession().ID,
		"persona":   s.Manager.ActivePersona(),
	})
}

func (s *HTTPSession) handleCreateSession(c *gin.Context) {
	var req CreateSessionRequest
	// An empty body means "current default persona".
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	persona := personas.Resolve(req.Persona)
	if req.Persona == "" {
		persona = s.Manager.ActivePersona()
	}
	session := s.Manager.CreateSession(persona)
	c.JSON(http.StatusCreated, session)
}

func (s *HTTPSession) handleActivateSession(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.Manager.Session(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	s.Manager.SwitchSession(id)
	c.JSON(http.StatusOK, s.Manager.ActiveSession())
}

func (s *HTTPSession) handleDeleteSession(c *gin.Context) {
	id := c.Param("id")
	if c.Query("confirm") != "true" {
		// Deletion is destructive and requires the explicit confirm flag,
		// mirroring the confirmation dialog the UI shows.
		c.JSON(http.StatusBadRequest, gin.H{"error": personas.DeleteConfirmPrompt})
		return
	}
	s.Manager.DeleteSession(id, true)
	c.JSON(http.StatusOK, gin.H{
		"sessions":  s.Manager.Sessions(),
		"active_id": s.Manager.ActiveSession().ID,
	})
}

func (s *HTTPSession) handleSessionMessages(c *gin.Context) {
	session, ok := s.Manager.Session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": session.Messages})
}

func (s *HTTPSession) handleSetPersona(c *gin.Context) {
	var req SetPersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.Manager.SetPersona(personas.Resolve(req.Persona))
	c.JSON(http.StatusOK, gin.H{"persona": s.Manager.ActivePersona()})
}

func (s *HTTPSession) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": s.Manager.Engine().State().String()})
}

// handleChat dispatches one turn on the active session and streams updates
// back as Server-Sent Events.
func (s *HTTPSession) handleChat(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, err := s.Manager.Send(c.Request.Context(), req.Text, req.Image)
	if err != nil {
		c.JSON(sendErrorStatus(err), gin.H{"error": sendErrorBody(err)})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	writer := &GinSSEWriter{Context: c}
	if err := s.streamSSE(updates, writer); err != nil {
		s.Logger.Printf("SSE stream ended with error: %v", err)
	}
}

// streamSSE forwards manager updates until the channel closes. The update
// channel is owned by the manager and always closes once the turn settles, so
// draining it here also releases the engine even if the client went away.
func (s *HTTPSession) streamSSE(updates <-chan premguru.Update, writer SSEWriter) error {
	for update := range updates {
		data, err := marshalUpdate(update)
		if err != nil {
			s.Logger.Printf("Error marshalling update: %v", err)
			continue
		}
		if err := writer.WriteSSE(string(update.Kind), data); err != nil {
			s.Logger.Printf("Error writing to SSE stream: %v", err)
			drain(updates)
			return err
		}
		writer.Flush()
	}
	return nil
}

func marshalUpdate(update premguru.Update) (string, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func drain(updates <-chan premguru.Update) {
	for range updates {
	}
}

// sendErrorStatus maps manager send rejections onto HTTP status codes.
func sendErrorStatus(err error) int {
	switch {
	case errors.Is(err, premguru.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, premguru.ErrEmptyMessage), errors.Is(err, premguru.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, premguru.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// sendErrorBody maps rejections to the user-facing message text.
func sendErrorBody(err error) string {
	if errors.Is(err, premguru.ErrImageTooLarge) {
		return personas.OversizedImageNotice
	}
	return err.Error()
}

// GinSSEWriter implements SSEWriter for Gin context
type GinSSEWriter struct {
	Context *gin.Context
}

func (w *GinSSEWriter) WriteSSE(event, data string) error {
	w.Context.SSEvent(event, data)
	w.Context.Writer.Flush()
	return nil
}

func (w *GinSSEWriter) WriteSSEError(err error) error {
	w.Context.SSEvent("error", err.Error())
	w.Context.Writer.Flush()
	return nil
}

func (w *GinSSEWriter) Flush() {
	w.Context.Writer.Flush()
}
