package decide

import (
	"fmt"

	"github.com/josephmalisov/pathpilot/internal/ai"
)

// ConfigError is a selector not present in the assistant catalog.
// Raised before any provider call.
type ConfigError struct {
	Selector string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Invalid assistant ID: %s", e.Selector)
}

// RunFailedError: the provider finished the run with status "failed".
type RunFailedError struct {
	RunID   string
	Code    string
	Message string
}

func (e *RunFailedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return "Run failed: " + msg
}

// RunTimeoutError: the run was still pending when the poll deadline passed.
// The run itself keeps going at the provider.
type RunTimeoutError struct {
	RunID      string
	LastStatus ai.RunStatus
}

func (e *RunTimeoutError) Error() string {
	return fmt.Sprintf("run %s still %s after poll deadline", e.RunID, e.LastStatus)
}

// UnexpectedStatusError: the run left the pending states with something other
// than "completed" or "failed" (requires_action, cancelled, expired, ...).
type UnexpectedStatusError struct {
	RunID  string
	Status ai.RunStatus
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("run %s ended with unexpected status %q", e.RunID, e.Status)
}
