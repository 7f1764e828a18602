package kingdom

import "time"

// Note is a private message between council roles. Notes are not
// simulation state; the engine stores and returns them unchanged.
type Note struct {
	SenderRole    string    `json:"sender_role"`
	RecipientRole string    `json:"recipient_role"`
	Content       string    `json:"content"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
