package utils

import (
	"context"
	"time"

	"personalsite/apperr"
	"personalsite/models"

	"github.com/jackc/pgx/v5"
)

type TaskStore struct {
	db      Querier
	timeout time.Duration
}

func NewTaskStore(db Querier, timeout time.Duration) *TaskStore {
	return &TaskStore{db: db, timeout: timeout}
}

// ListTasks returns every task, oldest first.
func (s *TaskStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	stmt := "SELECT id, content, created_at FROM tasks ORDER BY created_at, id"
	rows, err := s.db.Query(ctx, stmt)
	if err != nil {
		return nil, apperr.Persistence("query tasks", err)
	}
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Task])
	if err != nil {
		return nil, apperr.Persistence("scan tasks", err)
	}
	return tasks, nil
}

func (s *TaskStore) GetTask(ctx context.Context, id int64) (models.Task, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var t models.Task
	stmt := "SELECT id, content, created_at FROM tasks WHERE id = $1"
	err := s.db.QueryRow(ctx, stmt, id).Scan(&t.ID, &t.Content, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return t, apperr.NotFound("task", id)
		}
		return t, apperr.Persistence("get task", err)
	}
	return t, nil
}

func (s *TaskStore) CreateTask(ctx context.Context, content string) (models.Task, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	t := models.Task{Content: content}
	stmt := "INSERT INTO tasks (content) VALUES ($1) RETURNING id, created_at"
	if err := s.db.QueryRow(ctx, stmt, content).Scan(&t.ID, &t.CreatedAt); err != nil {
		return t, apperr.Persistence("insert task", err)
	}
	return t, nil
}

// UpdateTask replaces the content of a task, keeping its id and
// created_at.
func (s *TaskStore) UpdateTask(ctx context.Context, id int64, content string) (models.Task, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var t models.Task
	stmt := "UPDATE tasks SET content = $1 WHERE id = $2 RETURNING id, content, created_at"
	err := s.db.QueryRow(ctx, stmt, content, id).Scan(&t.ID, &t.Content, &t.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return t, apperr.NotFound("task", id)
		}
		return t, apperr.Persistence("update task", err)
	}
	return t, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	tag, err := s.db.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return apperr.Persistence("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task", id)
	}
	return nil
}
