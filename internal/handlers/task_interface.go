package handlers

import (
	"context"

	"kanban/internal/models/task"
)

type Service interface {
	GetAllTasks(context.Context) ([]*task.Task, error)
	CreateTask(context.Context, *task.Task) (*task.Task, error)
	UpdateTask(context.Context, int64, ...task.TaskOption) (*task.Task, error)
	DeleteTask(context.Context, int64) error
}
