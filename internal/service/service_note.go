package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/models"
)

// defaultNoteColor is applied when a note is created without an explicit
// display color, matching what the web client preselects.
const defaultNoteColor = "yellow"

// noteService implements [NoteService] as a thin validation layer over the
// note repository.
type noteService struct {
	notes  store.NoteRepository
	logger *logger.Logger
}

// NewNoteService constructs a [NoteService].
func NewNoteService(notes store.NoteRepository, log *logger.Logger) NoteService {
	log.Debug().Msg("creating note service")
	return &noteService{
		notes:  notes,
		logger: log,
	}
}

// CreateNote persists a new note for the account.
func (s *noteService) CreateNote(ctx context.Context, userID string, req models.CreateNoteRequest) (models.Note, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Note{}, fmt.Errorf("%w: note text is required", ErrInvalidDataProvided)
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = defaultNoteColor
	}

	return s.notes.CreateNote(ctx, models.Note{
		UserID: userID,
		Text:   text,
		Color:  color,
	})
}

// GetNote fetches one of the account's notes by id.
func (s *noteService) GetNote(ctx context.Context, userID, noteID string) (models.Note, error) {
	if noteID == "" {
		return models.Note{}, fmt.Errorf("%w: note id is required", ErrInvalidDataProvided)
	}

	return s.notes.GetNote(ctx, noteID, userID)
}

// ListNotes returns all of the account's notes, newest first.
func (s *noteService) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	return s.notes.ListNotes(ctx, userID, 0)
}

// UpdateNote overwrites a note's content in place.
func (s *noteService) UpdateNote(ctx context.Context, userID string, req models.UpdateNoteRequest) (models.Note, error) {
	if req.ID == "" {
		return models.Note{}, fmt.Errorf("%w: note id is required", ErrInvalidDataProvided)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.Note{}, fmt.Errorf("%w: note text is required", ErrInvalidDataProvided)
	}

	return s.notes.UpdateNoteText(ctx, req.ID, userID, text)
}

// DeleteNote removes one of the account's notes permanently.
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if noteID == "" {
		return fmt.Errorf("%w: note id is required", ErrInvalidDataProvided)
	}

	return s.notes.DeleteNote(ctx, noteID, userID)
}
