package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"kanban/internal/config"
	"kanban/internal/handlers"
	"kanban/internal/logger"
	"kanban/internal/middleware"
	"kanban/internal/repository/task/inmemory"
	"kanban/internal/repository/task/orm"
	"kanban/internal/repository/task/postgres"
	"kanban/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository service.TaskRepository
	service    *service.TaskService
	shutdowns  []func() // run in reverse order on Shutdown

	spanProcessors []sdktrace.SpanProcessor
}

type Option func(*App)

// WithSpanProcessor registers an extra span processor on the tracer
// provider built when tracing is enabled.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(a *App) {
		a.spanProcessors = append(a.spanProcessors, sp)
	}
}

func New(cfg *config.Config, options ...Option) *App {
	a := &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development, a.config.Logging.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: flushing logs")
		logger.Sync()
	})

	tp, err := a.initTracing()
	if err != nil {
		a.runShutdowns()
		return fmt.Errorf("init tracing: %w", err)
	}

	repository, err := a.initRepository(ctx)
	if err != nil {
		a.runShutdowns()
		return fmt.Errorf("init repository: %w", err)
	}
	a.repository = repository

	a.service = service.NewTaskService(a.repository)
	if err := a.service.HealthCheck(ctx); err != nil {
		a.runShutdowns()
		return fmt.Errorf("health check: %w", err)
	}

	var otelOptions []otelhttp.Option
	if tp != nil {
		otelOptions = append(otelOptions, otelhttp.WithTracerProvider(tp))
	}

	a.router = a.newRouter(handlers.NewTaskHandler(a.service))
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "kanban", otelOptions...),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("App: initialized", zap.String("repository", a.config.Repository.Type))
	return nil
}

func (a *App) initRepository(ctx context.Context) (service.TaskRepository, error) {
	switch a.config.Repository.Type {
	case config.RepositoryInMemory:
		return inmemory.NewTaskStorage(), nil

	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, err
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		if err := storage.Migrate(ctx); err != nil {
			return nil, err
		}
		return storage, nil

	case config.RepositorySQLite:
		db, err := orm.Open(a.config.SQLite)
		if err != nil {
			return nil, err
		}
		storage := orm.New(db)
		a.shutdowns = append(a.shutdowns, storage.Close)

		if err := storage.Migrate(ctx); err != nil {
			return nil, err
		}
		return storage, nil

	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) newRouter(taskHandler *handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	if a.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.config.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", middleware.RequestIdHeader},
			ExposedHeaders: []string{middleware.RequestIdHeader},
		}))
	}

	handlers.RegisterRoutes(r, taskHandler)
	return r
}

// Handler returns the fully wrapped HTTP handler. Init must have been called.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Start binds the listen address and serves in the background.
func (a *App) Start() error {
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.server.Addr, err)
	}

	go func() {
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("App: server stopped", err)
		}
	}()

	logger.Info("App: server started", zap.String("addr", listener.Addr().String()))
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then releases the store and flushes logs.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.server != nil {
		logger.Info("App: shutting down server")
		if shutdownErr := a.server.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("shutdown server: %w", shutdownErr)
		}
	}

	a.runShutdowns()
	return err
}

func (a *App) runShutdowns() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = a.shutdowns[:0]
}
