package models

import "strings"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a dialog with the virtual guide.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NormalizeRole maps client role names onto the two known roles. Anything that
// is not the user ("bot", "model", "assistant") is treated as the guide.
func NormalizeRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleUser)) {
		return RoleUser
	}
	return RoleAssistant
}

// ChatInteraction is a logged relay call.
type ChatInteraction struct {
	ID           string `json:"id"`
	DialogID     string `json:"dialog_id,omitempty"`
	Prompt       string `json:"prompt"`
	Response     string `json:"response"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Fallback     bool   `json:"fallback"`
	LatencyMs    int64  `json:"latency_ms"`
	ErrorMessage string `json:"error_message,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}
