package decide

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/josephmalisov/pathpilot/internal/ai"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type errorBody struct {
	Error       string `json:"error"`
	Details     any    `json:"details,omitempty"`
	ResetThread bool   `json:"resetThread,omitempty"`
}

// HandleDecide serves one chat turn from the browser.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing prompt"})
		return
	}

	resp, err := h.svc.Decide(r.Context(), req)
	if err != nil {
		status, body := errorResponse(err)
		if errors.Is(err, context.Canceled) {
			log.Warn().Str("thread", req.ThreadID).Msg("[decide] client went away mid-run")
		} else {
			log.Error().Err(err).Str("thread", req.ThreadID).Int("status", status).Msg("[decide] turn failed")
		}
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleAssistants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"assistants": h.svc.Assistants()})
}

// errorResponse maps the orchestrator error taxonomy onto status + body.
// A provider "No thread found" tells the browser to drop its thread handle.
func errorResponse(err error) (int, errorBody) {
	body := errorBody{Error: err.Error()}

	var (
		timeout  *RunTimeoutError
		failed   *RunFailedError
		provider *ai.ProviderError
	)
	switch {
	case errors.As(err, &timeout):
		body.Error = "The assistant is still working on this. Please check back shortly."
		body.Details = map[string]any{"runId": timeout.RunID, "lastStatus": timeout.LastStatus}
		return http.StatusGatewayTimeout, body
	case errors.As(err, &failed):
		if failed.Code != "" {
			body.Details = map[string]any{"runId": failed.RunID, "code": failed.Code}
		}
	case errors.As(err, &provider):
		body.Details = provider.Details()
		body.ResetThread = provider.ThreadNotFound()
	}

	return http.StatusInternalServerError, body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("[decide] write response")
	}
}
