package chats

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("chat not found")
	ErrInvalid  = errors.New("invalid chat")
)

type MessageType string

const (
	MessageUser      MessageType = "user"
	MessageAssistant MessageType = "assistant"
)

type Message struct {
	Type       MessageType `json:"type"`
	Content    string      `json:"content"`
	IsComplete bool        `json:"isComplete,omitempty"`
}

type Chat struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	AssistantID string    `json:"assistant_id"`
	ThreadID    string    `json:"thread_id,omitempty"`
	Messages    []Message `json:"messages,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repo - persistence
type Repo interface {
	// Save inserts the chat or replaces the one with the same ID.
	Save(ctx context.Context, chat *Chat) error
	// List returns chats newest first, without messages.
	List(ctx context.Context) ([]Chat, error)
	Get(ctx context.Context, id string) (*Chat, error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	Save(ctx context.Context, chat *Chat) error
	List(ctx context.Context) ([]Chat, error)
	Get(ctx context.Context, id string) (*Chat, error)
	Delete(ctx context.Context, id string) error
}
