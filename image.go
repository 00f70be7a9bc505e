package premguru

import (
	"encoding/base64"
	"fmt"
	"regexp"

	"github.com/tanmoym/premguru/models"
)

// MaxImageBytes is the attachment size ceiling (5 MiB of raw image data).
const MaxImageBytes = 5 * 1024 * 1024

// Data URI format: data:image/png;base64,.....
var dataURIPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// EncodeImageDataURI wraps raw image bytes into the data URI envelope used
// throughout the core. Oversized attachments are rejected with
// ErrImageTooLarge and cause no state change.
func EncodeImageDataURI(mimeType string, data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}
	if mimeType == "" {
		return "", fmt.Errorf("missing image mime type")
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// decodeDataURI splits a data URI into its mime type and base64 payload.
// Malformed URIs return ok=false; callers skip the image rather than fail.
func decodeDataURI(uri string) (mimeType, data string, ok bool) {
	matches := dataURIPattern.FindStringSubmatch(uri)
	if matches == nil {
		return "", "", false
	}
	return matches[1], matches[2], true
}

// decodedImageSize returns the exact byte length of a base64 payload.
// DecodedLen alone over-counts by the trailing padding, which would reject an
// image sitting exactly on the size ceiling.
func decodedImageSize(data string) int {
	size := base64.StdEncoding.DecodedLen(len(data))
	for i := len(data) - 1; i >= 0 && data[i] == '='; i-- {
		size--
	}
	return size
}

// messageParts converts one message into provider parts. An image part, when
// present, precedes the text part.
func messageParts(msg *Message) []models.Part {
	parts := make([]models.Part, 0, 2)
	if msg.Image != "" {
		if mimeType, data, ok := decodeDataURI(msg.Image); ok {
			parts = append(parts, models.Part{
				InlineData: &models.InlineData{MimeType: mimeType, Data: data},
			})
		}
	}
	if msg.Text != "" {
		parts = append(parts, models.Part{Text: msg.Text})
	}
	return parts
}

// replayHistory rebuilds the provider-facing history from a transcript.
// Messages flagged as errors are excluded; order is preserved exactly.
func replayHistory(messages []*Message) []models.Content {
	history := make([]models.Content, 0, len(messages))
	for _, msg := range messages {
		if msg.IsError {
			continue
		}
		parts := messageParts(msg)
		if len(parts) == 0 {
			continue
		}
		history = append(history, models.Content{Role: msg.Role, Parts: parts})
	}
	return history
}
