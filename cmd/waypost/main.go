package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/waypost/waypost/internal/config"
	"github.com/waypost/waypost/internal/health"
	"github.com/waypost/waypost/internal/metrics"
	"github.com/waypost/waypost/internal/router"
	"github.com/waypost/waypost/internal/server"
	"github.com/waypost/waypost/pkg/logging"
	"github.com/waypost/waypost/pkg/routes"

	_ "github.com/waypost/waypost/internal/app/routes"
)

func main() {
	bootstrap := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Finalize(); err != nil {
		bootstrap.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(&cfg.Logging)

	m := metrics.New()
	h := health.NewHandler()

	table, err := router.Assemble(router.Config{
		Registry: routes.Default,
		Logger:   logger,
		Fixed: map[string]http.Handler{
			"/health":       http.HandlerFunc(h.Live),
			"/health/ready": http.HandlerFunc(h.Ready),
			"/metrics":      m.Handler(),
		},
	})
	if err != nil {
		logger.Error("failed to assemble route table", "error", err)
		os.Exit(1)
	}
	logger.Info("route table assembled", "patterns", table.Patterns())

	dispatcher := router.NewDispatcher(table, logger, m)
	srv := server.New(cfg, dispatcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
