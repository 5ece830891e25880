package service

import (
	"context"

	"kanban/internal/models/task"
)

// TaskRepository is the store contract shared by the in-memory, PostgreSQL
// and ORM storages.
type TaskRepository interface {
	HealthCheck(context.Context) error
	ListAll(context.Context) ([]*task.Task, error)
	Save(context.Context, *task.Task) (*task.Task, error)
	FindByID(context.Context, int64) (*task.Task, error)
	ExistsByID(context.Context, int64) (bool, error)
	DeleteByID(context.Context, int64) error
}
