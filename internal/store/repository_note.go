package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/utils"
	"github.com/oneday-app/oneday-server/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Every query is scoped by user_id so that notes are only ever visible to
// their owner.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
	}
}

// CreateNote persists a new note and returns it with server-assigned fields
// (ID, CreatedAt).
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	var created models.Note
	err := r.db.QueryRowContext(ctx, createNote, r.ids.Generate(), note.UserID, note.Text, note.Color).
		Scan(&created.ID, &created.UserID, &created.Text, &created.Color, &created.CreatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.CreateNote").
			Str("user_id", note.UserID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// GetNote retrieves one note by (id, owner).
//
// Returns [ErrNoteNotFound] when the note does not exist or belongs to a
// different account.
func (r *noteRepository) GetNote(ctx context.Context, noteID, userID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := r.db.QueryRowContext(ctx, getNote, noteID, userID).
		Scan(&note.ID, &note.UserID, &note.Text, &note.Color, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.GetNote").
			Str("user_id", userID).
			Msg("failed to query note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

// ListNotes retrieves the owner's notes ordered by creation time descending.
// A limit of zero means all notes.
func (r *noteRepository) ListNotes(ctx context.Context, userID string, limit int) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(userID, limit)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.ListNotes").
			Str("user_id", userID).
			Msg("failed to build note listing query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.ListNotes").
			Str("user_id", userID).
			Msg("failed to execute note listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 20)

	for rows.Next() {
		var note models.Note

		scanErr := rows.Scan(&note.ID, &note.UserID, &note.Text, &note.Color, &note.CreatedAt)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.ListNotes").
				Str("user_id", userID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.ListNotes").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// UpdateNoteText overwrites the content of one note in place and returns the
// updated record.
//
// Returns [ErrNoteNotFound] when the note does not exist or belongs to a
// different account.
func (r *noteRepository) UpdateNoteText(ctx context.Context, noteID, userID, text string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	err := r.db.QueryRowContext(ctx, updateNoteText, text, noteID, userID).
		Scan(&note.ID, &note.UserID, &note.Text, &note.Color, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.UpdateNoteText").
			Str("user_id", userID).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// DeleteNote removes one note permanently.
//
// Returns [ErrNoteNotFound] when the note does not exist or belongs to a
// different account.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteNote, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Str("user_id", userID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
