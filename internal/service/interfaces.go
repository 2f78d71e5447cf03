package service

import (
	"context"

	"github.com/oneday-app/oneday-server/models"
)

// AuthService registers accounts, authenticates logins, and issues and
// verifies JWT session tokens.
type AuthService interface {
	// RegisterUser creates an account and returns it together with a
	// freshly issued token. Returns [store.ErrEmailAlreadyExists] when the
	// email is taken and [ErrInvalidDataProvided] on shape violations.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)

	// LoginUser authenticates an email/password pair and returns the
	// account with a freshly issued token. Returns
	// [store.ErrNoUserWasFound] for an unknown email and
	// [ErrWrongPassword] for a bad password.
	LoginUser(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)

	// GetUser fetches an account by id. Used by the authentication
	// middleware to reject tokens whose subject no longer exists.
	GetUser(ctx context.Context, userID string) (models.User, error)

	// ParseToken validates a raw JWT string and returns the parsed token.
	// Returns [ErrTokenIsExpiredOrInvalid] on any validation failure.
	ParseToken(tokenString string) (models.Token, error)
}

// NoteService owns note CRUD. Every operation is scoped to the calling
// account; cross-account access surfaces as "not found".
type NoteService interface {
	CreateNote(ctx context.Context, userID string, req models.CreateNoteRequest) (models.Note, error)
	GetNote(ctx context.Context, userID, noteID string) (models.Note, error)
	ListNotes(ctx context.Context, userID string) ([]models.Note, error)
	UpdateNote(ctx context.Context, userID string, req models.UpdateNoteRequest) (models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
}

// ChatService drives the assistant: it routes each user message through
// intent classification, reference resolution, and action execution, then
// records the exchange.
type ChatService interface {
	// SendMessage processes one user message end to end and returns the
	// assistant's reply together with the active conversation id.
	SendMessage(ctx context.Context, userID string, req models.ChatRequest) (models.ChatReply, error)

	// ListConversations returns the account's conversation threads ordered
	// by last activity, each with its most recent message attached.
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)

	// ListMessages returns the messages of one conversation in order.
	ListMessages(ctx context.Context, userID, conversationID string) ([]models.Message, error)

	// DeleteConversation removes a conversation and all of its messages.
	DeleteConversation(ctx context.Context, userID, conversationID string) error
}
