package models

import "context"

// Part is one piece of a message sent to the generation provider: text, an
// inline image, or both as separate parts.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries a base64-encoded image payload.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Content is one turn of provider-facing history.
type Content struct {
	Role  string `json:"role"` // "user" or "model"
	Parts []Part `json:"parts"`
}

// Chunk is a single streamed text delta from the provider.
type Chunk struct {
	Text string `json:"text"`
}

// GenerationParams are the sampling parameters applied to a chat session.
type GenerationParams struct {
	Temperature float32 `json:"temperature"`
	TopK        float32 `json:"top_k"`
}

// ChatHandle is an initialized provider chat session. Each send returns a
// stream of text chunks; the error channel carries at most one error and both
// channels are closed when the turn is over.
type ChatHandle interface {
	SendMessageStream(ctx context.Context, parts []Part) (<-chan Chunk, <-chan error)
}

// Provider is the opaque streaming token source. Initializing a chat binds the
// prior history, the system instruction and the sampling parameters; the
// returned handle carries that state for subsequent turns.
type Provider interface {
	StartChat(ctx context.Context, history []Content, systemInstruction string, params GenerationParams) (ChatHandle, error)
}
