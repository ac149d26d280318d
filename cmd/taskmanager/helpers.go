package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"taskmanager/internal/clock"
	"taskmanager/internal/config"
	"taskmanager/internal/events"
	"taskmanager/internal/logging"
	"taskmanager/internal/service"
	"taskmanager/internal/store"
	"taskmanager/internal/store/memory"
	"taskmanager/internal/store/sqlite"
	"taskmanager/internal/workerpool"

	"github.com/charmbracelet/log"
	"github.com/hibiken/asynq"
)

// app holds everything a command needs. Close releases it in reverse order.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	clock   clock.System
	store   store.Store
	service *service.TaskService

	closers []func(context.Context) error
}

func loadConfig() (config.Config, *log.Logger, clock.System, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, clock.System{}, err
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return config.Config{}, nil, clock.System{}, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return config.Config{}, nil, clock.System{}, err
	}

	return cfg, logger, clock.NewSystem(loc), nil
}

func setup(ctx context.Context) (*app, error) {
	cfg, logger, clk, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, clock: clk}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	publisher, err := a.openPublisher()
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.service, err = service.New(a.store, a.store, publisher,
		service.WithClock(clk),
		service.WithLogger(logger),
		service.WithDefaultUserID(cfg.DefaultUserID),
	)
	if err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("service initiation failed: %w", err)
	}

	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.Store.Driver {
	case "sqlite":
		st, err := sqlite.Open(ctx, a.cfg.Store.DSN)
		if err != nil {
			return err
		}
		a.store = st
		a.closers = append(a.closers, func(context.Context) error { return st.Close() })
		a.logger.Debug("store opened", "driver", "sqlite", "dsn", a.cfg.Store.DSN)
	default:
		a.store = memory.New()
		a.logger.Debug("store opened", "driver", "memory")
	}
	return nil
}

// openPublisher wires lifecycle events either to the in-process worker pool
// or to the Redis queue, with a log handler consuming them in both cases.
func (a *app) openPublisher() (events.Publisher, error) {
	handler := events.NewLogHandler(a.logger)
	ec := a.cfg.Events

	if ec.Backend == "redis" {
		redis := asynq.RedisClientOpt{Addr: ec.RedisAddr}

		processor := events.NewProcessor(redis, handler, events.ProcessorConfig{
			Concurrency: ec.Workers,
			Queue:       ec.Queue,
		})
		if err := processor.Start(); err != nil {
			return nil, fmt.Errorf("start event processor: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error {
			processor.Shutdown()
			return nil
		})

		publisher := events.NewQueuePublisher(redis, ec.Queue)
		a.closers = append(a.closers, func(context.Context) error { return publisher.Close() })

		return publisher, nil
	}

	pool := workerpool.New(ec.PoolSize, handler, a.logger)
	pool.Start(ec.Workers)
	a.closers = append(a.closers, pool.Shutdown)

	return pool, nil
}

func (a *app) Close(ctx context.Context) {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if err := errors.Join(errs...); err != nil {
		a.logger.Error("shutdown", "err", err)
	}
}
