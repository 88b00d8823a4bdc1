package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/importer"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/storage"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/internal/transport/console"
	"github.com/frahmantamala/budget-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

// App is one loaded project with its use cases wired to storage.
type App struct {
	Config    *internal.Config
	Logger    *slog.Logger
	Stores    *storage.Stores
	Events    *events.EventBus
	Budget    *budget.Service
	History   *history.Service
	Report    *report.Service
	Presenter *console.Presenter
	Input     *console.InputReader
	Project   string
}

// app survives between commands while the shell runs.
var app *App

func newApp(ctx context.Context) (*App, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.Configure(logger.Options{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	})

	stores, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	bus := events.NewEventBus(log)
	bus.Subscribe(logEvent(log), events.EventTypeTransactionsImported, events.EventTypeProjectSaved)

	budgetService := budget.NewService(stores.Budget, log).WithEvents(bus)
	historyService := history.NewService(stores.History, importer.NewErste(cfg.Importer), log).WithEvents(bus)

	a := &App{
		Config:    cfg,
		Logger:    log,
		Stores:    stores,
		Events:    bus,
		Budget:    budgetService,
		History:   historyService,
		Report:    report.NewService(budgetService, historyService, log),
		Presenter: console.NewPresenter(os.Stdout),
		Input:     console.NewInputReader(os.Stdin, os.Stdout),
	}

	if err := a.Load(ctx, cfg.Project); err != nil {
		_ = stores.Close()
		return nil, err
	}
	return a, nil
}

func logEvent(log *slog.Logger) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		log.Debug("event received", "event_id", event.EventID(), "event_type", event.EventType(), "payload", event.Payload())
		return nil
	}
}

// Load replaces both ledgers with the stored state of project.
func (a *App) Load(ctx context.Context, project string) error {
	if err := a.Budget.Load(ctx, project); err != nil {
		return err
	}
	if err := a.History.Load(ctx, project); err != nil {
		return err
	}
	a.Project = project
	return nil
}

// Save writes both ledgers under project.
func (a *App) Save(ctx context.Context, project string) error {
	if err := a.Budget.Save(ctx, project); err != nil {
		return err
	}
	return a.History.Save(ctx, project)
}

// commit persists the current project after a mutation, reporting a
// failed save the same way as a failed command.
func (a *App) commit(ctx context.Context) error {
	if err := a.Save(ctx, a.Project); err != nil {
		a.Presenter.Failure(transport.Failure("Save Project", err))
		return errPresented
	}
	return nil
}

func (a *App) Counts() (items, transactions int) {
	return len(a.Budget.List()), len(a.History.List())
}

func (a *App) Close() {
	a.Events.Wait()
	if err := a.Stores.Close(); err != nil {
		a.Logger.Error("failed to close storage", "error", err)
	}
}

// withApp runs fn against the current app, creating it on first use.
func withApp(fn func(ctx context.Context, a *App, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if app == nil {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			app = a
		}
		return fn(ctx, app, args)
	}
}

func closeApp() {
	if app != nil {
		app.Close()
		app = nil
	}
}

// present shows result with render and turns a failure into errPresented.
func present(result transport.Result, render func(transport.Result)) error {
	render(result)
	if !result.Success {
		return errPresented
	}
	return nil
}

// presentListing is present for listings the presenter reports as a
// failure when empty.
func presentListing(result transport.Result, size int, render func(transport.Result)) error {
	if err := present(result, render); err != nil {
		return err
	}
	if size == 0 {
		return errPresented
	}
	return nil
}
