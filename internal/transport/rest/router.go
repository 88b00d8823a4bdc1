package rest

import (
	"log/slog"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport/middleware"
	"github.com/go-chi/chi"
)

// Handlers groups everything the router mounts. Metrics is optional and
// served on MetricsPath, /metrics by default.
type Handlers struct {
	Health      *HealthHandler
	Budget      *budget.Handler
	History     *history.Handler
	Report      *report.Handler
	Metrics     *middleware.Metrics
	MetricsPath string
}

func RegisterAllRoutes(router *chi.Mux, handlers Handlers, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if handlers.Metrics != nil {
		path := handlers.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Use(handlers.Metrics.Middleware)
		router.Handle(path, handlers.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlers.Health.pingHandler)

		// The ledgers are single threaded; every route reading them goes
		// through one lock.
		r.Group(func(lr chi.Router) {
			lr.Use(middleware.Serialize)

			lr.Get("/health", handlers.Health.healthCheckHandler)

			if handlers.Budget != nil {
				lr.Route("/budget", func(br chi.Router) {
					br.Get("/", handlers.Budget.ListItems)                               // GET /budget
					br.Post("/", handlers.Budget.CreateItem)                             // POST /budget
					br.Get("/overview", handlers.Budget.GetOverview)                     // GET /budget/overview
					br.Get("/distribution", handlers.Budget.GetDistribution)             // GET /budget/distribution
					br.Get("/categories/{category}", handlers.Budget.GetItemsByCategory) // GET /budget/categories/:category
					br.Get("/{id}", handlers.Budget.GetItem)                             // GET /budget/:id
					br.Patch("/{id}", handlers.Budget.UpdateItem)                        // PATCH /budget/:id
					br.Delete("/{id}", handlers.Budget.DeleteItem)                       // DELETE /budget/:id
				})
			}

			if handlers.History != nil {
				lr.Route("/transactions", func(tr chi.Router) {
					tr.Get("/", handlers.History.ListTransactions)                     // GET /transactions?month=
					tr.Post("/import", handlers.History.ImportTransactions)            // POST /transactions/import
					tr.Get("/unreviewed", handlers.History.ListUnreviewed)             // GET /transactions/unreviewed
					tr.Get("/{reference}", handlers.History.GetTransaction)            // GET /transactions/:reference
					tr.Patch("/{reference}", handlers.History.UpdateTransaction)       // PATCH /transactions/:reference
					tr.Post("/{reference}/ignore", handlers.History.IgnoreTransaction) // POST /transactions/:reference/ignore
					tr.Delete("/{reference}", handlers.History.DeleteTransaction)      // DELETE /transactions/:reference
				})
			}

			if handlers.Report != nil {
				lr.Route("/reports", func(rr chi.Router) {
					rr.Get("/months/{month}", handlers.Report.GetMonthResult)       // GET /reports/months/:month
					rr.Get("/categories", handlers.Report.GetAllCategoryReports)    // GET /reports/categories?months=
					rr.Get("/categories/{name}", handlers.Report.GetCategoryReport) // GET /reports/categories/:name?months=
				})
			}
		})
	})
}
