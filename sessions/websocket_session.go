package sessions

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	premguru "github.com/tanmoym/premguru"
	"github.com/tanmoym/premguru/personas"
)

// ChatSocket encapsulates one WebSocket chat connection. Commands arrive as
// JSON frames; streamed updates and state snapshots go back over the same
// connection through the serialized writer.
type ChatSocket struct {
	Manager *premguru.Manager
	Writer  *WebSocketWriter
	Logger  *log.Logger
}

// Run reads commands until the connection closes. Each send streams its
// updates to the client before the next command is processed, so the busy
// rejection is only observable from concurrent HTTP sends.
func (cs *ChatSocket) Run(ctx context.Context) {
	defer cs.Writer.Conn.Close()

	cs.sendSnapshot()

	for {
		var cmd ClientCommand
		if err := cs.Writer.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cs.Logger.Printf("WebSocket error: %v", err)
			}
			return
		}

		if err := cs.handleCommand(ctx, cmd); err != nil {
			cs.Logger.Printf("Command %q failed: %v", cmd.Type, err)
			cs.Writer.WriteError(commandErrorBody(err))
		}
	}
}

func (cs *ChatSocket) handleCommand(ctx context.Context, cmd ClientCommand) error {
	switch cmd.Type {
	case "send":
		return cs.handleSend(ctx, cmd)

	case "create_session":
		persona := personas.Resolve(cmd.Persona)
		if cmd.Persona == "" {
			persona = cs.Manager.ActivePersona()
		}
		cs.Manager.CreateSession(persona)
		cs.sendSnapshot()
		return nil

	case "switch_session":
		cs.Manager.SwitchSession(cmd.SessionID)
		cs.sendSnapshot()
		return nil

	case "delete_session":
		if !cmd.Confirmed {
			return errors.New(personas.DeleteConfirmPrompt)
		}
		cs.Manager.DeleteSession(cmd.SessionID, true)
		cs.sendSnapshot()
		return nil

	case "set_persona":
		cs.Manager.SetPersona(personas.Resolve(cmd.Persona))
		cs.sendSnapshot()
		return nil

	case "list_sessions":
		cs.sendSnapshot()
		return nil

	default:
		return errors.New("unknown command type: " + cmd.Type)
	}
}

func (cs *ChatSocket) handleSend(ctx context.Context, cmd ClientCommand) error {
	updates, err := cs.Manager.Send(ctx, cmd.Text, cmd.Image)
	if err != nil {
		return err
	}

	cs.Writer.StartTime = time.Now()
	cs.Writer.FirstTokenTime = nil
	cs.Writer.FirstTokenLogged = false

	for update := range updates {
		if err := cs.Writer.WriteJSON(update); err != nil {
			cs.Logger.Printf("Error writing stream update: %v", err)
			// Keep draining so the engine still settles back to Idle.
			for range updates {
			}
			return err
		}
	}
	return nil
}

// sendSnapshot pushes the full session list and active selection, the frame
// the client rebuilds its sidebar from.
func (cs *ChatSocket) sendSnapshot() {
	snapshot := map[string]interface{}{
		"type":      "snapshot",
		"sessions":  cs.Manager.Sessions(),
		"active_id": cs.Manager.ActiveSession().ID,
		"persona":   cs.Manager.ActivePersona(),
		"state":     cs.Manager.Engine().State().String(),
	}
	if err := cs.Writer.WriteJSON(snapshot); err != nil {
		cs.Logger.Printf("Error writing snapshot: %v", err)
	}
}

func commandErrorBody(err error) string {
	if errors.Is(err, premguru.ErrImageTooLarge) {
		return personas.OversizedImageNotice
	}
	return err.Error()
}
