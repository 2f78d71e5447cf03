package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oneday-app/oneday-server/internal/service"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockNoteService implements service.NoteService for unit tests.
type mockNoteService struct {
	createNoteFn func(ctx context.Context, userID string, req models.CreateNoteRequest) (models.Note, error)
	getNoteFn    func(ctx context.Context, userID, noteID string) (models.Note, error)
	listNotesFn  func(ctx context.Context, userID string) ([]models.Note, error)
	updateNoteFn func(ctx context.Context, userID string, req models.UpdateNoteRequest) (models.Note, error)
	deleteNoteFn func(ctx context.Context, userID, noteID string) error
}

func (m *mockNoteService) CreateNote(ctx context.Context, userID string, req models.CreateNoteRequest) (models.Note, error) {
	return m.createNoteFn(ctx, userID, req)
}

func (m *mockNoteService) GetNote(ctx context.Context, userID, noteID string) (models.Note, error) {
	return m.getNoteFn(ctx, userID, noteID)
}

func (m *mockNoteService) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	return m.listNotesFn(ctx, userID)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, userID string, req models.UpdateNoteRequest) (models.Note, error) {
	return m.updateNoteFn(ctx, userID, req)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	return m.deleteNoteFn(ctx, userID, noteID)
}

func newNoteHandler(t *testing.T, notes *mockNoteService) *Handler {
	t.Helper()
	return newHandlerWithServices(t, &service.Services{NoteService: notes})
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(ctxWithUserID(req.Context(), validUser.UserID))
}

func TestListNotes_Success(t *testing.T) {
	notes := &mockNoteService{
		listNotesFn: func(_ context.Context, userID string) ([]models.Note, error) {
			assert.Equal(t, validUser.UserID, userID)
			return []models.Note{{ID: "note-1", Text: "buy milk"}}, nil
		},
	}
	h := newNoteHandler(t, notes)

	rec := httptest.NewRecorder()
	h.listNotes(rec, authedRequest(http.MethodGet, "/api/notes", ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.NotesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "buy milk", resp.Notes[0].Text)
}

func TestListNotes_Unauthenticated(t *testing.T) {
	h := newNoteHandler(t, &mockNoteService{})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateNote_Success(t *testing.T) {
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, userID string, req models.CreateNoteRequest) (models.Note, error) {
			return models.Note{ID: "note-1", UserID: userID, Text: req.Text, Color: req.Color}, nil
		},
	}
	h := newNoteHandler(t, notes)

	body := jsonBody(t, models.CreateNoteRequest{Text: "buy milk", Color: "blue"})
	rec := httptest.NewRecorder()
	h.createNote(rec, authedRequest(http.MethodPost, "/api/notes", body))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.NoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "note-1", resp.Note.ID)
}

func TestCreateNote_EmptyText(t *testing.T) {
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, _ string, _ models.CreateNoteRequest) (models.Note, error) {
			return models.Note{}, service.ErrInvalidDataProvided
		},
	}
	h := newNoteHandler(t, notes)

	rec := httptest.NewRecorder()
	h.createNote(rec, authedRequest(http.MethodPost, "/api/notes", `{"text":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		updateNoteFn: func(_ context.Context, _ string, _ models.UpdateNoteRequest) (models.Note, error) {
			return models.Note{}, store.ErrNoteNotFound
		},
	}
	h := newNoteHandler(t, notes)

	body := jsonBody(t, models.UpdateNoteRequest{ID: "note-foreign", Text: "new text"})
	rec := httptest.NewRecorder()
	h.updateNote(rec, authedRequest(http.MethodPut, "/api/notes", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteNote_Success(t *testing.T) {
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, _ string, noteID string) error {
			assert.Equal(t, "note-1", noteID)
			return nil
		},
	}
	h := newNoteHandler(t, notes)

	rec := httptest.NewRecorder()
	h.deleteNote(rec, authedRequest(http.MethodDelete, "/api/notes?id=note-1", ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestDeleteNote_MissingID(t *testing.T) {
	h := newNoteHandler(t, &mockNoteService{})

	rec := httptest.NewRecorder()
	h.deleteNote(rec, authedRequest(http.MethodDelete, "/api/notes", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, _ string, _ string) error {
			return store.ErrNoteNotFound
		},
	}
	h := newNoteHandler(t, notes)

	rec := httptest.NewRecorder()
	h.deleteNote(rec, authedRequest(http.MethodDelete, "/api/notes?id=note-gone", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
