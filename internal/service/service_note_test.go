package service

import (
	"context"
	"testing"

	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteFixture() (NoteService, *fakeNoteRepo) {
	notes := newFakeNoteRepo()
	return NewNoteService(notes, logger.Nop()), notes
}

func TestNoteService_CreateDefaultsColor(t *testing.T) {
	svc, _ := newNoteFixture()

	note, err := svc.CreateNote(context.Background(), "user-1", models.CreateNoteRequest{Text: "  buy milk  "})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", note.Text)
	assert.Equal(t, defaultNoteColor, note.Color)
}

func TestNoteService_CreateKeepsColor(t *testing.T) {
	svc, _ := newNoteFixture()

	note, err := svc.CreateNote(context.Background(), "user-1", models.CreateNoteRequest{Text: "buy milk", Color: "blue"})
	require.NoError(t, err)
	assert.Equal(t, "blue", note.Color)
}

func TestNoteService_CreateEmptyText(t *testing.T) {
	svc, _ := newNoteFixture()

	_, err := svc.CreateNote(context.Background(), "user-1", models.CreateNoteRequest{Text: "   "})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNoteService_RoundTrip(t *testing.T) {
	svc, _ := newNoteFixture()
	ctx := context.Background()

	created, err := svc.CreateNote(ctx, "user-1", models.CreateNoteRequest{Text: "exact content"})
	require.NoError(t, err)

	read, err := svc.GetNote(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "exact content", read.Text)

	// repeated reads of an unchanged note return identical content
	again, err := svc.GetNote(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, read, again)
}

func TestNoteService_UpdateValidation(t *testing.T) {
	svc, _ := newNoteFixture()
	ctx := context.Background()

	_, err := svc.UpdateNote(ctx, "user-1", models.UpdateNoteRequest{ID: "", Text: "text"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.UpdateNote(ctx, "user-1", models.UpdateNoteRequest{ID: "note-1", Text: "  "})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestNoteService_CrossAccountAccessIsNotFound(t *testing.T) {
	svc, _ := newNoteFixture()
	ctx := context.Background()

	created, err := svc.CreateNote(ctx, "user-1", models.CreateNoteRequest{Text: "private"})
	require.NoError(t, err)

	_, err = svc.GetNote(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, store.ErrNoteNotFound)

	err = svc.DeleteNote(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, store.ErrNoteNotFound)
}

func TestNoteService_DeleteUnknown(t *testing.T) {
	svc, _ := newNoteFixture()

	err := svc.DeleteNote(context.Background(), "user-1", "note-gone")
	require.ErrorIs(t, err, store.ErrNoteNotFound)
}
