package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is the persisted unit of the service. The id is assigned at
// creation and never changes; CreatedAt is the server-assigned write time in
// milliseconds since the Unix epoch.
type Message struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:256;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Author      string `gorm:"column:username;size:128;not null;index" json:"username"`
	CreatedAt   int64  `gorm:"not null;index" json:"createdAt"`
}

// NewMessageRequest is the parsed body of a submission. The author travels
// on the wire as "username".
type NewMessageRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Username    string `json:"username"`
}

// MissingFieldError names the first empty field of a submission body.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("models: missing field: %s", e.Field)
}

// Validate checks the request fields in priority order (username, title,
// description) and returns a MissingFieldError for the first empty one.
func (r NewMessageRequest) Validate() error {
	if r.Username == "" {
		return &MissingFieldError{Field: "username"}
	}
	if r.Title == "" {
		return &MissingFieldError{Field: "title"}
	}
	if r.Description == "" {
		return &MissingFieldError{Field: "description"}
	}
	return nil
}

// NewMessage builds a Message from a validated request, assigning a fresh
// UUID and the current wall-clock time in milliseconds.
func NewMessage(r NewMessageRequest) *Message {
	return &Message{
		ID:          uuid.NewString(),
		Title:       r.Title,
		Description: r.Description,
		Author:      r.Username,
		CreatedAt:   time.Now().UnixMilli(),
	}
}
