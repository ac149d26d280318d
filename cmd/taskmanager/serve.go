package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	router "taskmanager/internal/http"
	"taskmanager/internal/http/handlers"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http_port)")
}

func serve(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	if a.cfg.SeedCategories {
		if _, err := a.service.SeedDefaultCategories(cmd.Context()); err != nil {
			a.Close(context.Background())
			return err
		}
	}

	addr := a.cfg.HTTPPort
	if serveAddr != "" {
		addr = serveAddr
	}

	handler := handlers.New(a.service, a.clock, a.logger)

	server := &http.Server{
		Addr:    addr,
		Handler: router.New(handler, a.logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr, "store", a.cfg.Store.Driver, "events", a.cfg.Events.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Info("shut down signal received")
	case err := <-serveErr:
		a.Close(context.Background())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.Close(ctx)
		return err
	}
	a.Close(ctx)

	a.logger.Info("shut down gracefully")
	return nil
}
