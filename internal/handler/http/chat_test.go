package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oneday-app/oneday-server/internal/service"
	"github.com/oneday-app/oneday-server/internal/store"
	"github.com/oneday-app/oneday-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChatService implements service.ChatService for unit tests.
type mockChatService struct {
	sendMessageFn        func(ctx context.Context, userID string, req models.ChatRequest) (models.ChatReply, error)
	listConversationsFn  func(ctx context.Context, userID string) ([]models.Conversation, error)
	listMessagesFn       func(ctx context.Context, userID, conversationID string) ([]models.Message, error)
	deleteConversationFn func(ctx context.Context, userID, conversationID string) error
}

func (m *mockChatService) SendMessage(ctx context.Context, userID string, req models.ChatRequest) (models.ChatReply, error) {
	return m.sendMessageFn(ctx, userID, req)
}

func (m *mockChatService) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	return m.listConversationsFn(ctx, userID)
}

func (m *mockChatService) ListMessages(ctx context.Context, userID, conversationID string) ([]models.Message, error) {
	return m.listMessagesFn(ctx, userID, conversationID)
}

func (m *mockChatService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	return m.deleteConversationFn(ctx, userID, conversationID)
}

func newChatHandler(t *testing.T, chat *mockChatService) *Handler {
	t.Helper()
	return newHandlerWithServices(t, &service.Services{ChatService: chat})
}

func TestPostChat_Success(t *testing.T) {
	chat := &mockChatService{
		sendMessageFn: func(_ context.Context, userID string, req models.ChatRequest) (models.ChatReply, error) {
			assert.Equal(t, validUser.UserID, userID)
			assert.Equal(t, "create a note: buy milk", req.Message)
			return models.ChatReply{
				Message:        "Created a note: buy milk",
				ConversationID: "conv-1",
				NotesChanged:   true,
			}, nil
		},
	}
	h := newChatHandler(t, chat)

	body := jsonBody(t, models.ChatRequest{Message: "create a note: buy milk"})
	rec := httptest.NewRecorder()
	h.postChat(rec, authedRequest(http.MethodPost, "/api/chat", body))

	assert.Equal(t, http.StatusOK, rec.Code)

	var reply models.ChatReply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "conv-1", reply.ConversationID)
	assert.True(t, reply.NotesChanged)
}

func TestPostChat_EmptyMessage(t *testing.T) {
	chat := &mockChatService{
		sendMessageFn: func(_ context.Context, _ string, _ models.ChatRequest) (models.ChatReply, error) {
			return models.ChatReply{}, service.ErrInvalidDataProvided
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.postChat(rec, authedRequest(http.MethodPost, "/api/chat", `{"message":""}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostChat_ForeignConversation(t *testing.T) {
	chat := &mockChatService{
		sendMessageFn: func(_ context.Context, _ string, _ models.ChatRequest) (models.ChatReply, error) {
			return models.ChatReply{}, store.ErrConversationNotFound
		},
	}
	h := newChatHandler(t, chat)

	body := jsonBody(t, models.ChatRequest{Message: "hi", ConversationID: "conv-foreign"})
	rec := httptest.NewRecorder()
	h.postChat(rec, authedRequest(http.MethodPost, "/api/chat", body))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostChat_OracleOutage(t *testing.T) {
	chat := &mockChatService{
		sendMessageFn: func(_ context.Context, _ string, _ models.ChatRequest) (models.ChatReply, error) {
			return models.ChatReply{}, service.ErrOracleUnavailable
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.postChat(rec, authedRequest(http.MethodPost, "/api/chat", `{"message":"hello"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "assistant is unavailable")
}

func TestGetChat_ListsConversations(t *testing.T) {
	chat := &mockChatService{
		listConversationsFn: func(_ context.Context, userID string) ([]models.Conversation, error) {
			assert.Equal(t, validUser.UserID, userID)
			return []models.Conversation{{ID: "conv-1", Title: "New Chat"}}, nil
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.getChat(rec, authedRequest(http.MethodGet, "/api/chat", ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConversationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 1)
	assert.Equal(t, "conv-1", resp.Conversations[0].ID)
}

func TestGetChat_ListsMessages(t *testing.T) {
	chat := &mockChatService{
		listMessagesFn: func(_ context.Context, _ string, conversationID string) ([]models.Message, error) {
			assert.Equal(t, "conv-1", conversationID)
			return []models.Message{
				{ID: "msg-1", Role: models.RoleUser, Content: "hi"},
				{ID: "msg-2", Role: models.RoleAssistant, Content: "hello"},
			}, nil
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.getChat(rec, authedRequest(http.MethodGet, "/api/chat?conversationId=conv-1", ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.MessagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, models.RoleUser, resp.Messages[0].Role)
}

func TestGetChat_UnknownConversation(t *testing.T) {
	chat := &mockChatService{
		listMessagesFn: func(_ context.Context, _ string, _ string) ([]models.Message, error) {
			return nil, store.ErrConversationNotFound
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.getChat(rec, authedRequest(http.MethodGet, "/api/chat?conversationId=conv-gone", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteChat_Success(t *testing.T) {
	chat := &mockChatService{
		deleteConversationFn: func(_ context.Context, _ string, conversationID string) error {
			assert.Equal(t, "conv-1", conversationID)
			return nil
		},
	}
	h := newChatHandler(t, chat)

	rec := httptest.NewRecorder()
	h.deleteChat(rec, authedRequest(http.MethodDelete, "/api/chat?conversationId=conv-1", ""))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestDeleteChat_MissingConversationID(t *testing.T) {
	h := newChatHandler(t, &mockChatService{})

	rec := httptest.NewRecorder()
	h.deleteChat(rec, authedRequest(http.MethodDelete, "/api/chat", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostChat_Unauthenticated(t *testing.T) {
	h := newChatHandler(t, &mockChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	rec := httptest.NewRecorder()

	h.postChat(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
