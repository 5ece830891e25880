package inmemory

import (
	"context"
	"sync"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"
)

type TaskStorage struct {
	storage map[int64]*task.Task
	mtx     *sync.RWMutex
	ids     []int64
	lastID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []int64{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: in-memory storage ready")
	return nil
}

func (s *TaskStorage) ListAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		res = append(res, s.storage[id].Clone())
	}
	return res, nil
}

// Save inserts a task with a fresh id when ID is zero, otherwise it
// overwrites (or inserts) the record stored under ID.
func (s *TaskStorage) Save(ctx context.Context, taskToSave *task.Task) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored := taskToSave.Clone()
	if stored.ID == 0 {
		s.lastID++
		stored.ID = s.lastID
	} else if stored.ID > s.lastID {
		s.lastID = stored.ID
	}

	if _, ok := s.storage[stored.ID]; !ok {
		s.ids = append(s.ids, stored.ID)
	}
	s.storage[stored.ID] = stored

	return stored.Clone(), nil
}

func (s *TaskStorage) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *TaskStorage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.storage[id]
	return ok, nil
}

func (s *TaskStorage) DeleteByID(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return nil
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
