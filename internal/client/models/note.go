package models

import "time"

// Note is a user annotation attached to exactly one document.
// DocumentID never changes for the lifetime of the note.
type Note struct {
	ID         string    `json:"_id"`
	DocumentID string    `json:"documentId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
