package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/tanmoym/premguru/models"
)

func init() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Gemini_Model implements models.Provider on top of the Gemini API. The API
// key is taken from the GEMINI_API_KEY environment variable.
type Gemini_Model struct {
	Model string `json:"model"`
}

const defaultModel = "gemini-3-flash-preview"

// StartChat creates a provider chat session seeded with prior history, the
// persona instruction and sampling parameters.
func (g *Gemini_Model) StartChat(ctx context.Context, history []models.Content, systemInstruction string, params models.GenerationParams) (models.ChatHandle, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelToUse := g.Model
	if modelToUse == "" {
		modelToUse = defaultModel
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](params.Temperature),
		TopK:        genai.Ptr[float32](params.TopK),
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	geminiHistory, err := convertHistory(history)
	if err != nil {
		return nil, fmt.Errorf("failed to convert history: %w", err)
	}

	chat, err := client.Chats.Create(ctx, modelToUse, config, geminiHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

// SendMessageStream sends one turn and forwards the provider's streamed text
// deltas in arrival order. The error channel carries at most one error.
func (c *geminiChat) SendMessageStream(ctx context.Context, parts []models.Part) (<-chan models.Chunk, <-chan error) {
	chunkChan := make(chan models.Chunk)
	errChan := make(chan error, 1)

	geminiParts, err := convertParts(parts)
	if err != nil {
		errChan <- fmt.Errorf("failed to convert message parts: %w", err)
		close(errChan)
		close(chunkChan)
		return chunkChan, errChan
	}

	go func() {
		defer close(chunkChan)
		defer close(errChan)

		for resp, err := range c.chat.SendMessageStream(ctx, geminiParts...) {
			if err != nil {
				errChan <- err
				return
			}
			if text := resp.Text(); text != "" {
				select {
				case chunkChan <- models.Chunk{Text: text}:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}
	}()

	return chunkChan, errChan
}

func convertHistory(history []models.Content) ([]*genai.Content, error) {
	converted := make([]*genai.Content, 0, len(history))
	for _, content := range history {
		parts, err := convertParts(content.Parts)
		if err != nil {
			return nil, err
		}
		pointerParts := make([]*genai.Part, 0, len(parts))
		for i := range parts {
			pointerParts = append(pointerParts, &parts[i])
		}
		converted = append(converted, &genai.Content{
			Role:  content.Role,
			Parts: pointerParts,
		})
	}
	return converted, nil
}

func convertParts(parts []models.Part) ([]genai.Part, error) {
	converted := make([]genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.InlineData != nil {
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("invalid base64 image payload: %w", err)
			}
			converted = append(converted, genai.Part{
				InlineData: &genai.Blob{
					MIMEType: part.InlineData.MimeType,
					Data:     data,
				},
			})
		}
		if part.Text != "" {
			converted = append(converted, genai.Part{Text: part.Text})
		}
	}
	return converted, nil
}
