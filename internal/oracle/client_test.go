package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oneday-app/oneday-server/internal/config"
	"github.com/oneday-app/oneday-server/internal/logger"
	"github.com/oneday-app/oneday-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completionServer emulates an OpenAI-compatible /chat/completions endpoint
// that always answers with the given content. It captures the last request
// body for assertions.
func completionServer(t *testing.T, content string) (*httptest.Server, *map[string]any) {
	t.Helper()

	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))

	return server, &captured
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.Oracle{
		APIKey:         "test-key",
		BaseURL:        serverURL + "/v1",
		Model:          "test-model",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
}

func TestClassify_Success(t *testing.T) {
	server, _ := completionServer(t, `{"action":"create","title":"Groceries","description":"milk"}`)
	defer server.Close()

	intent := newTestClient(server.URL).Classify(context.Background(), "note to buy milk", nil)

	assert.Equal(t, models.ActionCreate, intent.Action)
	assert.Equal(t, "Groceries", intent.Title)
	assert.Equal(t, "milk", intent.Description)
}

func TestClassify_HistoryIsCapped(t *testing.T) {
	server, captured := completionServer(t, `{"action":"none"}`)
	defer server.Close()

	history := make([]Turn, 10)
	for i := range history {
		history[i] = Turn{Role: models.RoleUser, Content: "turn"}
	}

	newTestClient(server.URL).Classify(context.Background(), "hello", history)

	messages, ok := (*captured)["messages"].([]any)
	require.True(t, ok)
	// system prompt + capped history + current message
	assert.Len(t, messages, 1+classifyHistoryWindow+1)
}

func TestClassify_MalformedReplyDegradesToNone(t *testing.T) {
	server, _ := completionServer(t, "sorry, I cannot help with that")
	defer server.Close()

	intent := newTestClient(server.URL).Classify(context.Background(), "hello", nil)

	assert.Equal(t, models.ActionNone, intent.Action)
}

func TestClassify_UnknownActionDegradesToNone(t *testing.T) {
	server, _ := completionServer(t, `{"action":"archive","noteId":"note-1"}`)
	defer server.Close()

	intent := newTestClient(server.URL).Classify(context.Background(), "archive my note", nil)

	assert.Equal(t, models.ActionNone, intent.Action)
	assert.Empty(t, intent.NoteID)
}

func TestClassify_TransportFailureDegradesToNone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	intent := newTestClient(server.URL).Classify(context.Background(), "hello", nil)

	assert.Equal(t, models.ActionNone, intent.Action)
}

func TestConverse_Success(t *testing.T) {
	server, captured := completionServer(t, "Hello! How is your day going?")
	defer server.Close()

	reply, err := newTestClient(server.URL).Converse(context.Background(), "hi there", []Turn{
		{Role: models.RoleUser, Content: "earlier question"},
		{Role: models.RoleAssistant, Content: "earlier answer"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello! How is your day going?", reply)

	messages, ok := (*captured)["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 4)
}

func TestConverse_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Converse(context.Background(), "hi", nil)

	require.ErrorIs(t, err, ErrCompletionRequest)
}
