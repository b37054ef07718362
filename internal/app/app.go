// Package app wires a statuswatch process: config in, ready-to-use
// components out. Fronts (CLI, HTTP API, TUI) share one App and never
// construct the core pieces themselves.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"statuswatch/internal/config"
	"statuswatch/internal/logging"
	"statuswatch/internal/notify"
	"statuswatch/internal/probe"
	"statuswatch/internal/registry"
	"statuswatch/internal/scheduler"
	"statuswatch/internal/store"
	"statuswatch/internal/store/postgres"
	"statuswatch/internal/store/sqlite"
)

type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Registry  *registry.Registry
	Results   store.ResultStore
	Checker   probe.Checker
	Notifier  notify.Notifier
	Scheduler *scheduler.Scheduler
}

// New builds the process context from cfg: rotating file logger, URL
// registry, result store (postgres when database_url is set, sqlite
// otherwise), checker with optional retries, notification channels, and
// the scheduler on top of them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	reg, err := registry.Open(cfg.URLsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	var results store.ResultStore
	if cfg.DatabaseURL != "" {
		results, err = postgres.New(ctx, cfg.DatabaseURL)
	} else {
		results, err = sqlite.New(ctx, cfg.Database)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var checker probe.Checker = probe.NewHTTPChecker(cfg.TimeoutDuration())
	if cfg.RetryAttempts > 1 {
		checker = &probe.RetryChecker{
			Inner:    checker,
			Attempts: cfg.RetryAttempts,
			Backoff:  cfg.RetryBackoffDuration(),
		}
	}

	var channels notify.Multi
	if cfg.Notifications.Enabled {
		if d := notify.NewDesktop(cfg.Notifications.AppName); d != nil {
			channels = append(channels, d)
		}
		if s := notify.NewSlack(cfg.Notifications.SlackWebhook); s != nil {
			channels = append(channels, s)
		}
		if len(channels) == 0 {
			logger.Warn("notifications_unavailable")
		}
	}

	sched := scheduler.New(logger, reg, results, checker, channels,
		cfg.TimeoutDuration(), cfg.MaxConcurrent)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  reg,
		Results:   results,
		Checker:   checker,
		Notifier:  channels,
		Scheduler: sched,
	}, nil
}

// Close stops monitoring, waits for any in-flight cycle, and releases the
// store and logger.
func (a *App) Close() error {
	a.Scheduler.Stop()
	err := a.Results.Close()
	_ = a.Logger.Sync()
	return err
}
