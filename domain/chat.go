package domain

import "time"

const (
	previewLimit    = 30
	previewEllipsis = "..."
)

// Chat is the summary record of a conversation. It is created by the
// account service; the core only refreshes LastMessage/LastTime after
// a successful message persist.
type Chat struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Members     []string  `json:"members,omitempty"`
	LastMessage string    `json:"lastMessage"`
	LastTime    time.Time `json:"lastTime"`
}

// Preview shortens message content for the chat summary line:
// at most 30 characters, with an ellipsis marker when cut.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + previewEllipsis
}
