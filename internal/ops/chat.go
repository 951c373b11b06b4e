package ops

import (
	"strings"

	"github.com/mkyawt/nutrilog/internal/assistant"
	"github.com/mkyawt/nutrilog/internal/errors"
)

// ChatInput contains parameters for the Chat operation.
type ChatInput struct {
	UserID  string
	Message string
}

// ChatOutput contains the result of the Chat operation.
type ChatOutput struct {
	Reply string `json:"reply"`
}

// Chat runs one message through the rule-based assistant. The assistant
// itself never errors; it falls back to a help hint for anything it does
// not understand.
func Chat(a *assistant.Assistant, input ChatInput) (*ChatOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, errors.NewInvalidRequest("message is required")
	}
	return &ChatOutput{Reply: a.Reply(input.UserID, input.Message)}, nil
}
