package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cudays/internal/config"
	"cudays/internal/feed"
	"cudays/internal/notify"
	"cudays/internal/schedule"
	"cudays/internal/store"
)

// App is the application layer between the CLI and the schedule service.
// It constructs all dependencies from config, loads the cache, and manages
// the store and log lifecycle on Close.
type App struct {
	cfg       *config.Config
	store     schedule.RecordStore
	service   *schedule.Service
	slogger   *slog.Logger
	logCloser io.Closer
}

// NewApp creates a fully wired App from the given config. The cache is
// loaded from the record store before returning. The caller must call
// Close when done.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	slogger, logCloser, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("creating record store: %w", err)
	}

	fd, err := feed.NewFeedFromConfig(ctx, cfg.Feed)
	if err != nil {
		st.Close()
		logCloser.Close()
		return nil, fmt.Errorf("creating feed: %w", err)
	}

	svc := schedule.NewService(st, fd, notify.NewLogNotifier(logger),
		cfg.ProgramDays(), cfg.EventOrder(), logger,
		schedule.RealClock{}, schedule.UUIDGenerator{})

	if err := svc.Load(); err != nil {
		st.Close()
		logCloser.Close()
		return nil, fmt.Errorf("loading cache: %w", err)
	}

	return &App{
		cfg:       cfg,
		store:     st,
		service:   svc,
		slogger:   slogger,
		logCloser: logCloser,
	}, nil
}

// Service returns the wired schedule service.
func (a *App) Service() *schedule.Service {
	return a.service
}

// Config returns the config the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Close releases the record store and the log writer.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing record store: %w", err)
	}
	if a.logCloser != nil {
		a.logCloser.Close()
	}
	return firstErr
}
