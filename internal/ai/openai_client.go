package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAssistants drives the OpenAI Assistants API (threads / messages / runs).
type OpenAIAssistants struct {
	client *openai.Client
}

func NewOpenAIAssistants(apiKey string, baseURL string) (*OpenAIAssistants, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	// a single call never waits for a run; the poll loop owns the long wait
	cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}

	return &OpenAIAssistants{client: openai.NewClientWithConfig(cfg)}, nil
}

func (c *OpenAIAssistants) CreateThread(ctx context.Context) (Thread, error) {
	th, err := c.client.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return Thread{}, wrapProviderError("create_thread", err)
	}

	log.Debug().Str("thread", th.ID).Msg("[ai] thread created")
	return Thread{ID: th.ID}, nil
}

func (c *OpenAIAssistants) AddUserMessage(ctx context.Context, threadID string, text string) error {
	_, err := c.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})
	return wrapProviderError("add_message", err)
}

func (c *OpenAIAssistants) CreateRun(
	ctx context.Context,
	threadID string,
	assistantID string,
	tools []ToolSpec,
) (Run, error) {

	req := openai.RunRequest{
		AssistantID: assistantID,
		Tools:       make([]openai.Tool, 0, len(tools)),
	}
	for _, t := range tools {
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	run, err := c.client.CreateRun(ctx, threadID, req)
	if err != nil {
		return Run{}, wrapProviderError("create_run", err)
	}

	return toRun(run), nil
}

func (c *OpenAIAssistants) RetrieveRun(ctx context.Context, threadID string, runID string) (Run, error) {
	run, err := c.client.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return Run{}, wrapProviderError("retrieve_run", err)
	}

	return toRun(run), nil
}

func (c *OpenAIAssistants) LatestMessage(ctx context.Context, threadID string) (ThreadMessage, error) {
	limit := 1
	order := "desc"

	list, err := c.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return ThreadMessage{}, wrapProviderError("list_messages", err)
	}

	if len(list.Messages) == 0 {
		return ThreadMessage{}, ErrNoMessages
	}

	m := list.Messages[0]
	out := ThreadMessage{
		ID:      m.ID,
		Role:    m.Role,
		Content: make([]MessageContent, 0, len(m.Content)),
	}
	for _, part := range m.Content {
		mc := MessageContent{Type: part.Type}
		if part.Text != nil {
			mc.Text = part.Text.Value
		}
		out.Content = append(out.Content, mc)
	}

	return out, nil
}

func toRun(r openai.Run) Run {
	out := Run{
		ID:       r.ID,
		ThreadID: r.ThreadID,
		Status:   RunStatus(r.Status),
	}
	if r.LastError != nil {
		out.LastError = &RunError{
			Code:    string(r.LastError.Code),
			Message: r.LastError.Message,
		}
	}
	return out
}
