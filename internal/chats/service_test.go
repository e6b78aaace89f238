package chats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now ...time.Time) (*service, Repo) {
	t.Helper()
	repo := NewMemoryRepo()
	svc := &service{repo: repo, now: time.Now}
	if len(now) > 0 {
		i := 0
		svc.now = func() time.Time {
			ts := now[i]
			if i < len(now)-1 {
				i++
			}
			return ts
		}
	}
	return svc, repo
}

func TestSaveFillsDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	chat := &Chat{Messages: []Message{
		{Type: MessageUser, Content: "  Should I   take the job offer?  "},
		{Type: MessageAssistant, Content: "Let's widen your options.", IsComplete: false},
	}}

	require.NoError(t, svc.Save(context.Background(), chat))

	_, err := uuid.Parse(chat.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Should I take the job offer?", chat.Title)
	assert.Equal(t, "path-planner", chat.AssistantID)
	assert.False(t, chat.CreatedAt.IsZero())
}

func TestSaveValidation(t *testing.T) {
	tests := []struct {
		name string
		chat Chat
	}{
		{name: "no messages", chat: Chat{Title: "x"}},
		{name: "bad message type", chat: Chat{Messages: []Message{{Type: "system", Content: "x"}}}},
		{name: "bad id", chat: Chat{ID: "not-a-uuid", Messages: []Message{{Type: MessageUser, Content: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			err := svc.Save(context.Background(), &tt.chat)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSaveReplacesAndKeepsCreatedAt(t *testing.T) {
	first := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	svc, repo := newTestService(t, first, second)
	ctx := context.Background()

	chat := &Chat{Title: "Plan", Messages: []Message{{Type: MessageUser, Content: "a"}}}
	require.NoError(t, svc.Save(ctx, chat))

	again := &Chat{ID: chat.ID, Title: "Plan v2", ThreadID: "thread_9", Messages: []Message{
		{Type: MessageUser, Content: "a"},
		{Type: MessageAssistant, Content: "b", IsComplete: true},
	}}
	require.NoError(t, svc.Save(ctx, again))

	got, err := repo.Get(ctx, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan v2", got.Title)
	assert.Equal(t, "thread_9", got.ThreadID)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, first, got.CreatedAt)
	assert.Equal(t, second, got.UpdatedAt)
}

func TestListNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, base, base.Add(time.Minute))
	ctx := context.Background()

	older := &Chat{Title: "older", Messages: []Message{{Type: MessageUser, Content: "1"}}}
	newer := &Chat{Title: "newer", Messages: []Message{{Type: MessageUser, Content: "2"}}}
	require.NoError(t, svc.Save(ctx, older))
	require.NoError(t, svc.Save(ctx, newer))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Nil(t, list[0].Messages)
}

func TestGetAndDeleteUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.NewString()), ErrNotFound)
}

func TestTitleFrom(t *testing.T) {
	long := strings.Repeat("word ", 30)

	assert.Equal(t, "Untitled chat", titleFrom(nil))
	assert.Equal(t, "Untitled chat", titleFrom([]Message{{Type: MessageAssistant, Content: "hi"}}))

	got := titleFrom([]Message{{Type: MessageUser, Content: long}})
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), maxTitleLen+3)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), " "))
}
