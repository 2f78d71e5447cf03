package models

import "time"

// Message roles. Stored as-is and passed unchanged to the language oracle.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is a chat thread between one account and the assistant.
// It is created lazily on the first message of a new thread.
type Conversation struct {
	// ID is the unique identifier of the conversation (UUID string).
	ID string `json:"id"`

	// UserID is the identifier of the owning account.
	UserID string `json:"-"`

	// Title is derived from the first user message (truncated to 50
	// characters) or defaults to "New Chat".
	Title string `json:"title"`

	// CreatedAt is the timestamp when the conversation was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the last-activity timestamp. It is bumped on every
	// recorded exchange and is monotonically non-decreasing.
	UpdatedAt time.Time `json:"updated_at"`

	// LastMessage is the most recent message of the conversation, attached
	// by listing queries so clients can render a preview. Nil when the
	// conversation has no messages or when not requested.
	LastMessage *Message `json:"last_message,omitempty"`
}

// Message is a single turn of a conversation. Messages are append-only and
// are never mutated; ordering within a conversation is by creation time
// ascending, tie-broken by insertion order.
type Message struct {
	// ID is the unique identifier of the message (UUID string).
	ID string `json:"id"`

	// UserID is the identifier of the owning account.
	UserID string `json:"-"`

	// ConversationID is the identifier of the parent conversation.
	// Empty for legacy messages recorded before threads existed.
	ConversationID string `json:"conversation_id,omitempty"`

	// Role is either RoleUser or RoleAssistant.
	Role string `json:"role"`

	// Content is the text of the turn.
	Content string `json:"content"`

	// CreatedAt is the timestamp when the message was appended.
	CreatedAt time.Time `json:"created_at"`
}

// Exchange is one complete chat round trip ready to be persisted: the user
// turn, the assistant turn, and the conversation they belong to. When
// ConversationID is empty a new conversation titled Title is created;
// otherwise the existing conversation's last-activity timestamp is bumped.
// The whole exchange is written atomically.
type Exchange struct {
	UserID           string
	ConversationID   string
	Title            string
	UserContent      string
	AssistantContent string
}
