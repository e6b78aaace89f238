package chats

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultAssistant = "path-planner"
	maxTitleLen      = 60
)

type service struct {
	repo Repo
	now  func() time.Time
}

func NewService(repo Repo) Service {
	return &service{repo: repo, now: time.Now}
}

// Save validates the chat, fills ID/title/timestamps and stores it.
// A chat with a known ID is replaced.
func (s *service) Save(ctx context.Context, chat *Chat) error {
	if len(chat.Messages) == 0 {
		return errors.Wrap(ErrInvalid, "chat has no messages")
	}
	for i, m := range chat.Messages {
		if m.Type != MessageUser && m.Type != MessageAssistant {
			return errors.Wrapf(ErrInvalid, "message %d has type %q", i, m.Type)
		}
	}

	if chat.ID == "" {
		chat.ID = uuid.NewString()
	} else if _, err := uuid.Parse(chat.ID); err != nil {
		return errors.Wrapf(ErrInvalid, "chat id %q", chat.ID)
	}

	chat.Title = strings.TrimSpace(chat.Title)
	if chat.Title == "" {
		chat.Title = titleFrom(chat.Messages)
	}
	if chat.AssistantID == "" {
		chat.AssistantID = defaultAssistant
	}

	now := s.now().UTC()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	if err := s.repo.Save(ctx, chat); err != nil {
		return err
	}

	log.Info().Str("chat", chat.ID).Str("thread", chat.ThreadID).Int("messages", len(chat.Messages)).Msg("[chats] saved")
	return nil
}

func (s *service) List(ctx context.Context) ([]Chat, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Chat, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("chat", id).Msg("[chats] deleted")
	return nil
}

// titleFrom uses the first user message, cut at a word boundary.
func titleFrom(msgs []Message) string {
	for _, m := range msgs {
		if m.Type != MessageUser {
			continue
		}
		t := strings.Join(strings.Fields(m.Content), " ")
		if t == "" {
			continue
		}
		runes := []rune(t)
		if len(runes) <= maxTitleLen {
			return t
		}
		cut := string(runes[:maxTitleLen])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		return cut + "..."
	}
	return "Untitled chat"
}
