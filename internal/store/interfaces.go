package store

import (
	"context"

	"github.com/oneday-app/oneday-server/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID string) (models.User, error)
}

// NoteRepository persists notes. Every operation is scoped by the owning
// user id; a note is never visible to or mutable by another account.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID, userID string) (models.Note, error)

	// ListNotes returns the owner's notes ordered by creation time
	// descending. A limit of zero means no limit.
	ListNotes(ctx context.Context, userID string, limit int) ([]models.Note, error)

	UpdateNoteText(ctx context.Context, noteID, userID, text string) (models.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
}

// ConversationRepository persists chat conversations and their messages.
type ConversationRepository interface {
	// ListConversations returns the owner's conversations ordered by
	// last-activity descending, each with its most recent message attached.
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)

	GetConversation(ctx context.Context, conversationID, userID string) (models.Conversation, error)

	// ListMessages returns the messages of one conversation ordered by
	// creation time ascending, tie-broken by insertion order.
	ListMessages(ctx context.Context, conversationID, userID string) ([]models.Message, error)

	// RecordExchange atomically persists one chat round trip: it creates
	// the conversation (when ex.ConversationID is empty) or bumps its
	// last-activity timestamp, then appends the user message and the
	// assistant message in that order. Either all writes apply or none do.
	// Returns the id of the affected conversation.
	RecordExchange(ctx context.Context, ex models.Exchange) (string, error)

	// DeleteConversation removes a conversation and, by cascade, all of its
	// messages.
	DeleteConversation(ctx context.Context, conversationID, userID string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
