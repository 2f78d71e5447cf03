package store

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (id, email, password_hash, name)
    VALUES ($1, $2, $3, $4)
    RETURNING id, email, password_hash, name, created_at;`

	findUserByEmail = `SELECT id, email, password_hash, name, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, password_hash, name, created_at
    FROM users
    WHERE id = $1;`

	createNote = `INSERT INTO notes (id, user_id, text, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, text, color, created_at;`

	getNote = `SELECT id, user_id, text, color, created_at
		FROM notes
		WHERE id = $1 AND user_id = $2;`

	updateNoteText = `UPDATE notes
		SET text = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, text, color, created_at;`

	deleteNote = `DELETE FROM notes
		WHERE id = $1 AND user_id = $2;`

	createConversation = `INSERT INTO conversations (id, user_id, title)
		VALUES ($1, $2, $3);`

	touchConversation = `UPDATE conversations
		SET updated_at = NOW()
		WHERE id = $1 AND user_id = $2;`

	getConversation = `SELECT id, user_id, title, created_at, updated_at
		FROM conversations
		WHERE id = $1 AND user_id = $2;`

	deleteConversation = `DELETE FROM conversations
		WHERE id = $1 AND user_id = $2;`

	insertMessage = `INSERT INTO messages (id, user_id, conversation_id, role, content)
		VALUES ($1, $2, $3, $4, $5);`

	listMessages = `SELECT id, user_id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1 AND user_id = $2
		ORDER BY created_at ASC, seq ASC;`

	// one row per conversation: its most recent message
	lastMessages = `SELECT DISTINCT ON (conversation_id)
			id, user_id, conversation_id, role, content, created_at
		FROM messages
		WHERE user_id = $1 AND conversation_id IS NOT NULL
		ORDER BY conversation_id, created_at DESC, seq DESC;`
)

// buildListNotesQuery builds the owner-scoped note listing query. The limit
// is applied only when positive.
func buildListNotesQuery(userID string, limit int) (string, []any, error) {
	builder := squirrel.
		Select("id", "user_id", "text", "color", "created_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListConversationsQuery builds the owner-scoped conversation listing
// query ordered by last activity.
func buildListConversationsQuery(userID string) (string, []any, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "title", "created_at", "updated_at").
		From("conversations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
