package ai

import (
	"context"

	"github.com/pkg/errors"
)

// Assistants is the hosted assistant provider. It knows nothing about plans,
// selectors or HTTP.
type Assistants interface {
	CreateThread(ctx context.Context) (Thread, error)
	AddUserMessage(ctx context.Context, threadID string, text string) error
	CreateRun(ctx context.Context, threadID string, assistantID string, tools []ToolSpec) (Run, error)
	RetrieveRun(ctx context.Context, threadID string, runID string) (Run, error)
	// LatestMessage returns the newest message of the thread.
	LatestMessage(ctx context.Context, threadID string) (ThreadMessage, error)
}

var ErrNoMessages = errors.New("thread has no messages")

type Thread struct {
	ID string
}

type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// Pending reports whether the provider is still working on the run.
func (s RunStatus) Pending() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	LastError *RunError
}

type RunError struct {
	Code    string
	Message string
}

const ContentTypeText = "text"

type MessageContent struct {
	Type string // "text" | "image_file" | ...
	Text string
}

type ThreadMessage struct {
	ID      string
	Role    string // "user" | "assistant"
	Content []MessageContent
}

// ToolSpec is a function tool offered to the assistant for a run.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  any
}
