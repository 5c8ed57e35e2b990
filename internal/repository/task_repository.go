package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/brownbots/ablemate/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) (*model.Task, error)
	FindByID(ctx context.Context, taskID int64) (*model.TaskDetails, error)
	List(ctx context.Context, limit int, offset int) ([]model.TaskDetails, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.TaskDetails, error)
	UpdateStatus(ctx context.Context, taskID int64, status string, volunteerID *int64) error
	Delete(ctx context.Context, taskID int64) error
}

type postgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) TaskRepository {
	return &postgresTaskRepository{db: db}
}

const taskDetailsColumns = `
		t.id,
		t.title,
		t.description,
		t.priority,
		t.task_type,
		t.status,
		t.user_id,
		t.volunteer_id,
		t.created_at,
		t.updated_at,
		COALESCE(u.full_name, 'Unknown') AS owner_name,
		v.full_name AS volunteer_name`

func (r *postgresTaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	query := `
		INSERT INTO tasks (title, description, priority, task_type, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query, task.Title, task.Description, task.Priority, task.TaskType, task.Status, task.UserID)
	err := row.Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *postgresTaskRepository) FindByID(ctx context.Context, taskID int64) (*model.TaskDetails, error) {
	var task model.TaskDetails
	query := `
		SELECT` + taskDetailsColumns + `
		FROM tasks t
		LEFT JOIN users u ON t.user_id = u.id
		LEFT JOIN users v ON t.volunteer_id = v.id
		WHERE t.id = $1
	`
	err := r.db.GetContext(ctx, &task, query, taskID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &task, nil
}

func (r *postgresTaskRepository) List(ctx context.Context, limit int, offset int) ([]model.TaskDetails, error) {
	tasks := []model.TaskDetails{}
	query := `
		SELECT` + taskDetailsColumns + `
		FROM tasks t
		LEFT JOIN users u ON t.user_id = u.id
		LEFT JOIN users v ON t.volunteer_id = v.id
		ORDER BY t.id
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &tasks, query, limit, offset)

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *postgresTaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.TaskDetails, error) {
	tasks := []model.TaskDetails{}
	query := `
		SELECT` + taskDetailsColumns + `
		FROM tasks t
		LEFT JOIN users u ON t.user_id = u.id
		LEFT JOIN users v ON t.volunteer_id = v.id
		WHERE t.user_id = $1
		ORDER BY t.id
	`
	err := r.db.SelectContext(ctx, &tasks, query, ownerID)

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *postgresTaskRepository) UpdateStatus(ctx context.Context, taskID int64, status string, volunteerID *int64) error {
	if volunteerID != nil {
		query := `UPDATE tasks SET status = $1, volunteer_id = $2, updated_at = now() WHERE id = $3`
		_, err := r.db.ExecContext(ctx, query, status, *volunteerID, taskID)
		return err
	}

	query := `UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, status, taskID)
	return err
}

func (r *postgresTaskRepository) Delete(ctx context.Context, taskID int64) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, taskID)
	return err
}
