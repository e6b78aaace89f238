package decide

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/josephmalisov/pathpilot/internal/ai"
)

type service struct {
	provider ai.Assistants
	catalog  *Catalog
	tool     ai.ToolSpec
	opts     Options
}

func NewService(provider ai.Assistants, catalog *Catalog, opts Options) Service {
	return &service{
		provider: provider,
		catalog:  catalog,
		tool:     pathPlanTool(),
		opts:     opts.withDefaults(),
	}
}

func (s *service) Assistants() []AssistantInfo {
	return s.catalog.List()
}

func (s *service) Decide(ctx context.Context, req Request) (Response, error) {
	assistantID, err := s.catalog.Resolve(req.AssistantID)
	if err != nil {
		return Response{}, err
	}

	threadID := req.ThreadID
	if threadID == "" {
		th, err := s.provider.CreateThread(ctx)
		if err != nil {
			return Response{}, errors.Wrap(err, "create thread")
		}
		threadID = th.ID
	}

	logger := log.With().
		Str("thread", threadID).
		Str("assistant", assistantID).
		Logger()
	logger.Info().Bool("new_thread", req.ThreadID == "").Msg("[decide] turn started")

	if err := s.provider.AddUserMessage(ctx, threadID, req.Prompt); err != nil {
		return Response{}, errors.Wrap(err, "add message")
	}

	run, err := s.provider.CreateRun(ctx, threadID, assistantID, []ai.ToolSpec{s.tool})
	if err != nil {
		return Response{}, errors.Wrap(err, "create run")
	}

	run, err = s.waitForRun(ctx, logger, threadID, run.ID)
	if err != nil {
		return Response{}, err
	}

	switch run.Status {
	case ai.RunStatusCompleted:
	case ai.RunStatusFailed:
		rf := &RunFailedError{RunID: run.ID}
		if run.LastError != nil {
			rf.Code = run.LastError.Code
			rf.Message = run.LastError.Message
		}
		logger.Error().Str("run", run.ID).Str("code", rf.Code).Msg("[decide] run failed")
		return Response{}, rf
	default:
		return Response{}, &UnexpectedStatusError{RunID: run.ID, Status: run.Status}
	}

	msg, err := s.provider.LatestMessage(ctx, threadID)
	if err != nil && !errors.Is(err, ai.ErrNoMessages) {
		return Response{}, errors.Wrap(err, "list messages")
	}

	text, complete := readReply(msg)
	logger.Info().Str("run", run.ID).Bool("complete", complete).Msg("[decide] turn finished")

	return Response{
		Response:   text,
		IsComplete: complete,
		ThreadID:   threadID,
	}, nil
}

// waitForRun polls until the run leaves queued/in_progress, the poll deadline
// passes, or ctx is cancelled.
func (s *service) waitForRun(
	ctx context.Context,
	logger zerolog.Logger,
	threadID string,
	runID string,
) (ai.Run, error) {

	pollCtx, cancel := context.WithTimeout(ctx, s.opts.RunTimeout)
	defer cancel()

	last := ai.RunStatusQueued
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-pollCtx.Done():
			return ai.Run{}, s.pollStopped(ctx, runID, last)
		case <-timer.C:
		}

		run, err := s.provider.RetrieveRun(pollCtx, threadID, runID)
		if err != nil {
			if pollCtx.Err() != nil {
				return ai.Run{}, s.pollStopped(ctx, runID, last)
			}
			return ai.Run{}, errors.Wrap(err, "retrieve run")
		}

		logger.Debug().Str("run", runID).Str("status", string(run.Status)).Msg("[decide] run status")
		if !run.Status.Pending() {
			return run, nil
		}

		last = run.Status
		timer.Reset(s.opts.PollInterval)
	}
}

func (s *service) pollStopped(ctx context.Context, runID string, last ai.RunStatus) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "wait for run")
	}
	return &RunTimeoutError{RunID: runID, LastStatus: last}
}

// readReply turns the newest thread message into visible text and the plan flag.
func readReply(msg ai.ThreadMessage) (string, bool) {
	if len(msg.Content) == 0 || msg.Content[0].Type != ai.ContentTypeText {
		return "", false
	}

	raw := msg.Content[0].Text
	log.Debug().Str("raw", short(raw)).Msg("[decide] raw assistant message")

	complete := false
	if d, ok := ParseDirective(raw); ok && d.Name == PathPlanToolName {
		complete = d.Flag()
	}

	return StripDirectives(raw), complete
}

func short(s string) string {
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
