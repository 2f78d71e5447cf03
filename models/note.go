package models

import "time"

// Note is a single free-text note owned by exactly one account.
// Updates overwrite Text in place; there is no versioning.
type Note struct {
	// ID is the unique identifier of the note (UUID string).
	ID string `json:"id"`

	// UserID is the identifier of the owning account. Every read and
	// mutation is scoped by this field; a note is never visible to any
	// other account.
	UserID string `json:"-"`

	// Text is the free-text content of the note.
	Text string `json:"text"`

	// Color is the display-color tag chosen by the user.
	Color string `json:"color"`

	// CreatedAt is the timestamp when the note was created.
	// Note listings are ordered by this field descending.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
