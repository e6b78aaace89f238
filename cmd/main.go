package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/josephmalisov/pathpilot/internal/ai"
	"github.com/josephmalisov/pathpilot/internal/chats"
	"github.com/josephmalisov/pathpilot/internal/config"
	"github.com/josephmalisov/pathpilot/internal/decide"
	"github.com/josephmalisov/pathpilot/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:           "pathpilot",
		Short:         "PathPilot decision and habit planning backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newAskCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("pathpilot failed")
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			decideSvc, err := newDecideService(cfg)
			if err != nil {
				return err
			}

			chatRepo, closeDB, err := newChatRepo(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			r := server.NewRouter(server.Deps{
				Decide:      decide.NewHandler(decideSvc),
				Chats:       chats.NewHandler(chats.NewService(chatRepo)),
				CORSOrigins: cfg.CORSOrigins,
			})

			return server.Run(ctx, ":"+cfg.Port, r, cfg.RunTimeout+30*time.Second)
		},
	}
}

func newAskCmd() *cobra.Command {
	var assistant, thread string

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Run a single assistant turn and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			svc, err := newDecideService(cfg)
			if err != nil {
				return err
			}

			resp, err := svc.Decide(cmd.Context(), decide.Request{
				Prompt:      args[0],
				ThreadID:    thread,
				AssistantID: assistant,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
			fmt.Fprintf(cmd.ErrOrStderr(), "\nthread: %s  plan complete: %t\n", resp.ThreadID, resp.IsComplete)
			return nil
		},
	}
	cmd.Flags().StringVarP(&assistant, "assistant", "a", "", "assistant selector (default path-planner)")
	cmd.Flags().StringVarP(&thread, "thread", "t", "", "continue an existing thread")
	return cmd
}

func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := initLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}
	return cfg, cfg.RequireOpenAI()
}

func initLogger(level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "LOG_LEVEL %q", level)
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = os.Stderr
	if format == "text" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = log.Output(w)
	return nil
}

func newDecideService(cfg *config.Config) (decide.Service, error) {
	catalog, err := decide.NewCatalog(cfg.Assistants, cfg.DefaultAssistant)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewOpenAIAssistants(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	if err != nil {
		return nil, err
	}

	return decide.NewService(provider, catalog, decide.Options{
		PollInterval: cfg.PollInterval,
		RunTimeout:   cfg.RunTimeout,
	}), nil
}

// newChatRepo opens Postgres when DATABASE_URL is set, otherwise keeps chats in memory.
func newChatRepo(ctx context.Context, cfg *config.Config) (chats.Repo, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL is not set, saved chats live in memory only")
		return chats.NewMemoryRepo(), func() {}, nil
	}

	// --- DB ---
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "db open")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "db ping")
	}
	if err := chats.EnsureSchema(pingCtx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return chats.NewRepo(db), func() { db.Close() }, nil
}
