package report

import (
	"log/slog"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
)

// BudgetReader is the part of the budget use cases the reports read.
type BudgetReader interface {
	GetByName(name string) (budget.Item, error)
	List() []budget.Item
	Names() map[budget.Category][]string
}

// HistoryReader is the part of the history use cases the reports read.
type HistoryReader interface {
	ByCategory(name string) []history.Transaction
	ByMonth(month int) []history.Transaction
}

// Service builds reports from the loaded budget and history
type Service struct {
	budget  BudgetReader
	history HistoryReader
	logger  *slog.Logger
}

// NewService creates a new report service
func NewService(budget BudgetReader, history HistoryReader, logger *slog.Logger) *Service {
	return &Service{
		budget:  budget,
		history: history,
		logger:  logger,
	}
}

// CategoryReport reports on the budget item called name: its amount is the
// annual budget and the transactions tagged with the name are its usage.
func (s *Service) CategoryReport(name string, months int) (*CategoryReport, error) {
	item, err := s.budget.GetByName(name)
	if err != nil {
		s.logger.Warn("budget item not found for report", "name", name)
		return nil, err
	}

	report, err := NewCategoryReport(name, months, item.Amount, included(s.history.ByCategory(name)))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("category report built", "name", name, "months", months, "transactions", len(report.Transactions))
	return report, nil
}

// AllCategoryReports builds a category report for every budget item.
func (s *Service) AllCategoryReports(months int) ([]*CategoryReport, error) {
	items := s.budget.List()
	reports := make([]*CategoryReport, 0, len(items))
	for _, item := range items {
		report, err := s.CategoryReport(item.Name, months)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// MonthResult computes the incomes and expenses of month
func (s *Service) MonthResult(month int) (*MonthResult, error) {
	if err := history.ValidateMonth(month); err != nil {
		return nil, err
	}

	result := NewMonthResult(month, included(s.history.ByMonth(month)), s.budget.Names())
	s.logger.Debug("month result built", "month", month, "result", result.Result.String())
	return result, nil
}

// included drops the transactions excluded from reporting.
func included(transactions []history.Transaction) []history.Transaction {
	kept := make([]history.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Exclude {
			kept = append(kept, t)
		}
	}
	return kept
}
