package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"kanban/internal/app"
	"kanban/internal/config"
	"kanban/internal/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "init app: %v\n", err)
		os.Exit(1)
	}

	if err := a.Start(); err != nil {
		logger.Error("Server failed to start", err)
		_ = a.Shutdown(ctx)
		os.Exit(1)
	}

	wait := gfshutdown.GracefulShutdown(
		ctx,
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"kanban-api": a.Shutdown,
		},
	)

	exitCode := <-wait
	logger.Info("Server exited", zap.Int("exit_code", exitCode))
	os.Exit(exitCode)
}
