package models

// Request payloads accepted by the HTTP API.

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// UpdateNoteRequest is the body of PUT /api/notes.
type UpdateNoteRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ChatRequest is the body of POST /api/chat. ConversationID is empty when
// the message starts a new thread.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}
