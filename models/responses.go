package models

// Response payloads produced by the HTTP API.

// UserProfile is the public projection of an account returned to clients.
type UserProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by register and login. The token is also set in
// the Authorization response header.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// NotesResponse wraps a note listing.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// NoteResponse wraps a single note.
type NoteResponse struct {
	Note Note `json:"note"`
}

// ConversationsResponse wraps a conversation listing.
type ConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

// MessagesResponse wraps the messages of one conversation.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// ChatReply is the outcome of one chat round trip: the assistant's text, the
// (possibly newly created) conversation, and a flag telling note-listing
// views whether note data was mutated and should be refreshed.
type ChatReply struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
	NotesChanged   bool   `json:"notesChanged"`
}

// SuccessResponse acknowledges a deletion.
type SuccessResponse struct {
	Success bool `json:"success"`
}
