package chats

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS chats (
		id           UUID PRIMARY KEY,
		title        TEXT NOT NULL,
		assistant_id TEXT NOT NULL,
		thread_id    TEXT NOT NULL DEFAULT '',
		messages     JSONB NOT NULL DEFAULT '[]',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS chats_updated_at_idx ON chats (updated_at DESC);
`

// EnsureSchema creates the chats table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "ensure chats schema")
}

func (r *repo) Save(ctx context.Context, chat *Chat) error {
	msgs, err := json.Marshal(chat.Messages)
	if err != nil {
		return errors.Wrap(err, "marshal messages")
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO chats (id, title, assistant_id, thread_id, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title        = EXCLUDED.title,
			assistant_id = EXCLUDED.assistant_id,
			thread_id    = EXCLUDED.thread_id,
			messages     = EXCLUDED.messages,
			updated_at   = EXCLUDED.updated_at
		RETURNING created_at
	`,
		chat.ID,
		chat.Title,
		chat.AssistantID,
		chat.ThreadID,
		string(msgs),
		chat.CreatedAt,
		chat.UpdatedAt,
	).Scan(&chat.CreatedAt)

	return errors.Wrapf(err, "save chat %s", chat.ID)
}

func (r *repo) List(ctx context.Context) ([]Chat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, assistant_id, thread_id, created_at, updated_at
		FROM chats
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "list chats")
	}
	defer rows.Close()

	out := []Chat{}
	for rows.Next() {
		var c Chat
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.AssistantID,
			&c.ThreadID,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan chat")
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id string) (*Chat, error) {
	var (
		c    Chat
		msgs []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, assistant_id, thread_id, messages, created_at, updated_at
		FROM chats
		WHERE id = $1
	`, id).Scan(
		&c.ID,
		&c.Title,
		&c.AssistantID,
		&c.ThreadID,
		&msgs,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get chat %s", id)
	}

	if err := json.Unmarshal(msgs, &c.Messages); err != nil {
		return nil, errors.Wrapf(err, "decode messages of chat %s", id)
	}

	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "delete chat %s", id)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
