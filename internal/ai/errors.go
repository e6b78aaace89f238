package ai

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// ProviderError is a failed call to the assistant provider. It keeps the provider's
// own message and status so the HTTP layer can inspect it.
type ProviderError struct {
	Op      string // "create_thread", "add_message", "create_run", "retrieve_run", "list_messages"
	Status  int
	Type    string
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("assistant provider %s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("assistant provider %s: %s", e.Op, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Details is the structured part safe to hand back to the browser.
func (e *ProviderError) Details() map[string]any {
	d := map[string]any{
		"op":      e.Op,
		"message": e.Message,
	}
	if e.Status != 0 {
		d["status"] = e.Status
	}
	if e.Type != "" {
		d["type"] = e.Type
	}
	if e.Code != "" {
		d["code"] = e.Code
	}
	return d
}

// ThreadNotFound reports whether the provider rejected the thread handle.
func (e *ProviderError) ThreadNotFound() bool {
	return strings.Contains(strings.ToLower(e.Message), "no thread found")
}

func wrapProviderError(op string, err error) error {
	if err == nil {
		return nil
	}

	pe := &ProviderError{Op: op, Message: err.Error(), Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		pe.Status = apiErr.HTTPStatusCode
		pe.Type = apiErr.Type
		pe.Message = apiErr.Message
		if apiErr.Code != nil {
			pe.Code = fmt.Sprint(apiErr.Code)
		}
	case errors.As(err, &reqErr):
		pe.Status = reqErr.HTTPStatusCode
		if reqErr.Err != nil {
			pe.Message = reqErr.Err.Error()
		}
	}

	return pe
}
