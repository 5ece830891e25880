package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/config"
	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Storage keeps tasks in a relational database through GORM.
type Storage struct {
	db *gorm.DB
}

// Open connects to the SQLite database at cfg.Path, with GORM's own logging
// routed through the application logger.
func Open(cfg config.SQLiteConfig) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = "kanban.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.New(logger.StdLog(zapcore.WarnLevel), gormlogger.Config{
			SlowThreshold:             100 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		logger.Error("Repository: failed to open SQLite database", err)
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	logger.Info("Repository: opened SQLite database")
	return db, nil
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Migrate creates or adjusts the tasks table to match the Task model.
func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&task.Task{}); err != nil {
		logger.Error("Repository: auto-migration failed", err)
		return fmt.Errorf("auto-migrate tasks: %w", err)
	}
	return nil
}

func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		logger.Error("Repository: failed to get database handle", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Repository: failed to close database", err)
		return
	}
	logger.Info("Repository: SQLite database closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) ListAll(ctx context.Context) ([]*task.Task, error) {
	tasks := []*task.Task{}
	if err := s.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Save inserts when ID is zero; otherwise it updates the row with that ID,
// inserting it if missing.
func (s *Storage) Save(ctx context.Context, taskToSave *task.Task) (*task.Task, error) {
	saved := taskToSave.Clone()
	if err := s.db.WithContext(ctx).Save(saved).Error; err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return saved, nil
}

func (s *Storage) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	var t task.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

func (s *Storage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&task.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check task: %w", err)
	}
	return count > 0, nil
}

func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&task.Task{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
