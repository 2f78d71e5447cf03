package service

import (
	"github.com/oneday-app/oneday-server/internal/config"
	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/oracle"
	"github.com/oneday-app/oneday-server/internal/store"
)

// Services aggregates the application's business logic behind one value
// handed to the transport layer.
type Services struct {
	AuthService AuthService
	NoteService NoteService
	ChatService ChatService
}

// NewServices wires every service to its repositories, the language oracle,
// and configuration.
func NewServices(storages *store.Storages, llm oracle.Oracle, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, log),
		NoteService: NewNoteService(storages.NoteRepository, log),
		ChatService: NewChatService(storages.ConversationRepository, storages.NoteRepository, llm, log),
	}
}
