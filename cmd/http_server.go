package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/internal/transport/middleware"
	"github.com/frahmantamala/budget-tracker/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start HTTP server",
	Long:    `Start the HTTP server exposing the project's budget, transactions and reports as JSON`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer(cmd.Context())
	},
}

type Dependencies struct {
	App     *App
	Router  *chi.Mux
	Metrics *middleware.Metrics
	Logger  *slog.Logger
}

func startHTTPServer(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := initializeDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.App.Close()

	setupRoutes(deps)

	cfg := deps.App.Config.Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	deps.Logger.Info("starting HTTP server", "address", addr, "project", deps.App.Project)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	deps.Logger.Info("server stopped")
	return nil
}

func setupRoutes(deps *Dependencies) {
	a := deps.App
	base := transport.NewBaseHandler(deps.Logger)

	handlers := rest.Handlers{
		Health:  rest.NewHealthHandler(a.Stores, a, a.Project),
		Budget:  budget.NewHandler(base, a.Budget, a.Project),
		History: history.NewHandler(base, a.History, a.Project),
		Report:  report.NewHandler(base, a.Report),
	}
	if deps.Metrics != nil {
		handlers.Metrics = deps.Metrics
		handlers.MetricsPath = a.Config.Observability.Metrics.Path
	}

	rest.RegisterAllRoutes(deps.Router, handlers, deps.Logger)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		App:    a,
		Router: chi.NewRouter(),
		Logger: a.Logger,
	}

	if a.Config.Observability.Metrics.Enabled {
		deps.Metrics = middleware.NewMetrics()
		a.Events.Subscribe(deps.Metrics.ObserveEvent, events.EventTypeTransactionsImported, events.EventTypeProjectSaved)
	}

	return deps, nil
}
