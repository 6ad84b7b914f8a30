// Package chat relays guide conversations to a generative-language provider
// and answers from a keyword rule table whenever the provider is unavailable.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/FACorreiaa/juanito/internal/app/models"
)

// Generation settings shared by every provider.
const (
	temperature     = 0.7
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 800
)

// LLM produces the guide's next message for a conversation ending in a user turn.
type LLM interface {
	Reply(ctx context.Context, messages []models.ChatMessage, system string) (string, error)
	Provider() string
	Model() string
}

// splitPrompt separates the final user message from the turns before it.
func splitPrompt(messages []models.ChatMessage) ([]models.ChatMessage, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("%w: no messages", models.ErrValidation)
	}
	last := messages[len(messages)-1]
	if last.Role != models.RoleUser || strings.TrimSpace(last.Content) == "" {
		return nil, "", fmt.Errorf("%w: conversation must end with a user message", models.ErrValidation)
	}
	return messages[:len(messages)-1], last.Content, nil
}

// trimLeadingAssistant drops guide turns before the first user turn, such as
// the greeting, since providers expect the history to open with the user.
func trimLeadingAssistant(messages []models.ChatMessage) []models.ChatMessage {
	for i, m := range messages {
		if m.Role == models.RoleUser {
			return messages[i:]
		}
	}
	return nil
}
