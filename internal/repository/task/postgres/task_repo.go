package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"kanban/internal/config"
	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const slowQuery = 100 * time.Millisecond

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: failed to parse database config", err)
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) ListAll(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT id, title, description, column_name
				FROM tasks
				ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: failed to list tasks", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.ColumnName); err != nil {
			logger.Error("Repository: failed to scan task", err)
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	warnIfSlow(start)
	return tasks, nil
}

// Save inserts when ID is zero and upserts on the primary key otherwise.
func (s *Storage) Save(ctx context.Context, taskToSave *task.Task) (*task.Task, error) {
	start := time.Now()

	saved := taskToSave.Clone()
	var err error
	if saved.ID == 0 {
		query := `INSERT INTO tasks (title, description, column_name)
					VALUES ($1, $2, $3)
					RETURNING id`
		err = s.pool.QueryRow(ctx, query, saved.Title, saved.Description, saved.ColumnName).Scan(&saved.ID)
	} else {
		query := `INSERT INTO tasks (id, title, description, column_name)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (id) DO UPDATE
					SET title = EXCLUDED.title,
						description = EXCLUDED.description,
						column_name = EXCLUDED.column_name
					RETURNING id`
		err = s.pool.QueryRow(ctx, query, saved.ID, saved.Title, saved.Description, saved.ColumnName).Scan(&saved.ID)
	}

	if err != nil {
		logger.Error("Repository: failed to save task", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("save task: %w", err)
	}

	warnIfSlow(start)
	return saved, nil
}

func (s *Storage) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT id, title, description, column_name
				FROM tasks
				WHERE id = $1`

	t := &task.Task{}
	err := s.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Title, &t.Description, &t.ColumnName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: failed to get task", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("get task: %w", err)
	}

	warnIfSlow(start)
	return t, nil
}

func (s *Storage) ExistsByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.Error("Repository: failed to check task", err, zap.Duration("ms", time.Since(start)))
		return false, fmt.Errorf("check task: %w", err)
	}

	warnIfSlow(start)
	return exists, nil
}

func (s *Storage) DeleteByID(ctx context.Context, id int64) error {
	start := time.Now()

	if _, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		logger.Error("Repository: failed to delete task", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("delete task: %w", err)
	}

	warnIfSlow(start)
	return nil
}

// Migrate creates the tasks table when it does not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	return s.exec(ctx, "migrations/001_init.up.sql")
}

// Down drops the tasks table.
func (s *Storage) Down(ctx context.Context) error {
	return s.exec(ctx, "migrations/001_init.down.sql")
}

func (s *Storage) exec(ctx context.Context, name string) error {
	script, err := migrations.ReadFile(name)
	if err != nil {
		logger.Error("Repository: failed to read "+name, err)
		return fmt.Errorf("read %s: %w", name, err)
	}

	if _, err := s.pool.Exec(ctx, string(script)); err != nil {
		logger.Error("Repository: failed to apply "+name, err)
		return fmt.Errorf("apply %s: %w", name, err)
	}

	logger.Info("Repository: applied " + name)
	return nil
}

func warnIfSlow(start time.Time) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: slow query", zap.Duration("ms", elapsed))
	}
}
