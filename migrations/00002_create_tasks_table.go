package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTasksTable, downCreateTasksTable)
}

func upCreateTasksTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE tasks (
	  id BIGSERIAL PRIMARY KEY,
	  title TEXT NOT NULL,
	  description TEXT NOT NULL,
	  priority TEXT NOT NULL,
	  task_type TEXT NOT NULL,
	  status TEXT NOT NULL DEFAULT 'pending',
	  user_id BIGINT NOT NULL REFERENCES users(id),
	  volunteer_id BIGINT REFERENCES users(id),
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateTasksTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS tasks;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
