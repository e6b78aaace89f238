package decide

import (
	"context"
	"time"
)

type Request struct {
	Prompt      string `json:"prompt"`
	ThreadID    string `json:"threadId,omitempty"`
	AssistantID string `json:"assistantId,omitempty"`
}

type Response struct {
	Response   string `json:"response"`
	IsComplete bool   `json:"isComplete"`
	ThreadID   string `json:"threadId"`
}

// Service runs one assistant turn: prompt in, cleaned reply and plan flag out.
type Service interface {
	Decide(ctx context.Context, req Request) (Response, error)
	Assistants() []AssistantInfo
}

type Options struct {
	PollInterval time.Duration
	RunTimeout   time.Duration
}

const (
	DefaultPollInterval = time.Second
	DefaultRunTimeout   = 90 * time.Second
)

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.RunTimeout <= 0 {
		o.RunTimeout = DefaultRunTimeout
	}
	return o
}
