package service

import (
	"context"
	"errors"
	"fmt"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	rep "kanban/internal/repository"

	"go.uber.org/zap"
)

const resourceTask = "task"

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("repository health: %w", err)
	}
	return nil
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask stores t as a new task. Any id on t is discarded so the store
// assigns one.
func (s *TaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	toCreate := t.Clone()
	if toCreate == nil {
		toCreate = &task.Task{}
	}
	toCreate.ID = 0

	created, err := s.repo.Save(ctx, toCreate)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.Info("Service: task created", zap.Int64("task_id", created.ID))
	return created, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: task not found", zap.Int64("target_id", id))
			return nil, NewNotFound(resourceTask, id, err)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	existing.Apply(options...)

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check task: %w", err)
	}
	if !exists {
		logger.Info("Service: task not found", zap.Int64("target_id", id))
		return NewNotFound(resourceTask, id, rep.ErrNotFound)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	logger.Info("Service: task deleted", zap.Int64("task_id", id))
	return nil
}
