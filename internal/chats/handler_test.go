package chats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewService(NewMemoryRepo())))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestChatsLifecycle(t *testing.T) {
	h := newRouter()

	w := do(t, h, http.MethodPost, "/api/chats", `{
		"title": "Job offer",
		"assistantId": "path-planner",
		"threadId": "thread_1",
		"messages": [
			{"type": "user", "content": "Help me decide on a job offer"},
			{"type": "assistant", "content": "Consider X, Y, Z.", "isComplete": true}
		]
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved struct {
		Chat Chat `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.Chat.ID)

	w = do(t, h, http.MethodGet, "/api/chats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Chats []Chat `json:"chats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Chats, 1)
	assert.Equal(t, "Job offer", list.Chats[0].Title)
	assert.Equal(t, "path-planner", list.Chats[0].AssistantID)

	w = do(t, h, http.MethodGet, "/api/chats/"+saved.Chat.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Chat Chat `json:"chat"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Chat.Messages, 2)
	assert.True(t, got.Chat.Messages[1].IsComplete)

	w = do(t, h, http.MethodDelete, "/api/chats/"+saved.Chat.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/api/chats/"+saved.Chat.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatsEmptyListIsArray(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/api/chats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"chats":[]}`, w.Body.String())
}

func TestChatsBadRequests(t *testing.T) {
	h := newRouter()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/chats", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/chats", `{"title":"x","messages":[]}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/chats/not-a-uuid", "").Code)
}
