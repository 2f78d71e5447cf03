package store

import "github.com/oneday-app/oneday-server/internal/logger"

// Storages aggregates all repositories backed by one database connection.
type Storages struct {
	UserRepository         UserRepository
	NoteRepository         NoteRepository
	ConversationRepository ConversationRepository
}

// NewStorages wires every repository to the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		NoteRepository:         NewNoteRepository(db, logger),
		ConversationRepository: NewConversationRepository(db, logger),
	}
}
