package premguru

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tanmoym/premguru/models"
	"github.com/tanmoym/premguru/personas"
)

// State of the streaming conversation engine.
type State int

const (
	// StateIdle means no request is outstanding; sending is permitted.
	StateIdle State = iota
	// StateSending means a request was dispatched but no token has arrived.
	StateSending
	// StateStreaming means at least one token has arrived and more may follow.
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateSending:
		return "SENDING"
	case StateStreaming:
		return "STREAMING"
	default:
		return "IDLE"
	}
}

// Engine owns the provider chat handle and the per-turn request state
// machine. Sends are gated on StateIdle; completion or failure of a turn
// always returns the engine to StateIdle.
type Engine struct {
	provider models.Provider
	params   models.GenerationParams
	timeout  time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	state  State
	handle models.ChatHandle
}

func newEngine(config *Config) *Engine {
	return &Engine{
		provider: config.Provider,
		params:   config.Params,
		timeout:  config.RequestTimeout,
		logger:   config.Logger,
	}
}

// State returns the current request state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Reinitialize replaces the provider chat handle with one seeded from the
// given transcript and persona instruction. Called on session create, switch
// and persona change; the transcript itself is never touched. An in-flight
// turn keeps streaming against the handle it captured.
func (e *Engine) Reinitialize(ctx context.Context, messages []*Message, persona personas.ID) error {
	handle, err := e.provider.StartChat(ctx, replayHistory(messages), personas.BuildInstruction(persona), e.params)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.handle = nil
		return err
	}
	e.handle = handle
	return nil
}

// begin transitions Idle -> Sending, or reports ErrBusy.
func (e *Engine) begin() (models.ChatHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle {
		return nil, ErrBusy
	}
	e.state = StateSending
	return e.handle, nil
}

// streaming transitions Sending -> Streaming once the first token arrives.
func (e *Engine) streaming() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSending {
		e.state = StateStreaming
	}
}

// finish returns the engine to Idle unconditionally.
func (e *Engine) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateIdle
}
