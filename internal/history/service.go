package history

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

// RepositoryAPI defines the persistence of a project history
type RepositoryAPI interface {
	Save(ctx context.Context, project string, records []TransactionRecord) error
	Load(ctx context.Context, project string) ([]TransactionRecord, error)
}

// ImporterAPI turns a raw statement into transaction records with the
// review fields at their defaults.
type ImporterAPI interface {
	Import(ctx context.Context, source string) ([]TransactionRecord, error)
}

// ReviewerAPI decides what happens to an unreviewed transaction. position
// counts from 1 up to total.
type ReviewerAPI interface {
	Review(t Transaction, position, total int) (ReviewDecision, error)
}

// Service handles the transaction use cases over one loaded ledger
type Service struct {
	repo     RepositoryAPI
	importer ImporterAPI
	history  *History
	events   events.Publisher
	logger   *slog.Logger
}

// NewService creates a new history service with an empty ledger
func NewService(repo RepositoryAPI, importer ImporterAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		importer: importer,
		history:  NewHistory(),
		logger:   logger,
	}
}

// WithEvents makes the service announce imports and saves on publisher.
func (s *Service) WithEvents(publisher events.Publisher) *Service {
	s.events = publisher
	return s
}

func (s *Service) publish(ctx context.Context, event events.Event, async bool) {
	if s.events == nil {
		return
	}
	publish := s.events.PublishSync
	if async {
		publish = s.events.Publish
	}
	if err := publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", "error", err, "event_type", event.EventType())
	}
}

// Import adds every statement row whose reference is new. A failing
// importer, or a row that cannot be read, aborts the call before the
// ledger changes; duplicates are reported and skipped.
func (s *Service) Import(ctx context.Context, source string) (ImportResult, error) {
	records, err := s.importer.Import(ctx, source)
	if err != nil {
		s.logger.Error("import failed", "error", err, "source", source)
		return ImportResult{}, internal.NewExternalError("Failed to import transactions from "+source, internal.ErrCodeImportFailed, err)
	}

	transactions := make([]Transaction, 0, len(records))
	for _, record := range records {
		t, err := FromRecord(record)
		if err != nil {
			s.logger.Error("import failed", "error", err, "source", source, "reference", record.Reference)
			return ImportResult{}, internal.NewExternalError("Failed to import transactions from "+source, internal.ErrCodeImportFailed, err)
		}
		transactions = append(transactions, t)
	}

	result := ImportResult{Imported: []Transaction{}, Duplicated: []string{}}
	for _, t := range transactions {
		added, err := s.history.Add(t)
		if err != nil {
			result.Duplicated = append(result.Duplicated, err.Error())
			continue
		}
		result.Imported = append(result.Imported, added)
	}

	s.logger.Info("transactions imported",
		"source", source,
		"imported", len(result.Imported),
		"duplicated", len(result.Duplicated))
	s.publish(ctx, events.NewTransactionsImportedEvent(source, len(result.Imported), len(result.Duplicated)), true)
	return result, nil
}

// Unreviewed lists the transactions still waiting for a category
func (s *Service) Unreviewed() []Transaction {
	return s.history.GetUnreviewed()
}

// Review walks the unreviewed transactions and applies the reviewer's
// decision to each. It stops at the first failure.
func (s *Service) Review(reviewer ReviewerAPI) (ReviewSummary, error) {
	var summary ReviewSummary
	pending := s.history.GetUnreviewed()

	for i, t := range pending {
		decision, err := reviewer.Review(t, i+1, len(pending))
		if err != nil {
			return summary, err
		}

		if decision.Delete {
			if _, err := s.Delete(t.Reference); err != nil {
				return summary, err
			}
			summary.Deleted++
			continue
		}

		if _, err := s.Patch(t.Reference, decision.Patch); err != nil {
			return summary, err
		}
		summary.Reviewed++
	}

	s.logger.Info("review finished", "reviewed", summary.Reviewed, "deleted", summary.Deleted)
	return summary, nil
}

// Update parses the request and applies it to a transaction
func (s *Service) Update(reference string, dto UpdateTransactionDTO) (Transaction, error) {
	patch, err := dto.Patch()
	if err != nil {
		s.logger.Error("transaction validation failed", "error", err, "reference", reference)
		return Transaction{}, err
	}
	return s.Patch(reference, patch)
}

// Patch fetches the stored transaction, applies the patch and writes the
// result back.
func (s *Service) Patch(reference string, patch TransactionPatch) (Transaction, error) {
	current, err := s.history.Get(reference)
	if err != nil {
		s.logger.Warn("transaction not found", "reference", reference)
		return Transaction{}, err
	}

	patched, err := patch.Apply(current)
	if err != nil {
		return Transaction{}, err
	}

	t, err := s.history.Update(patched)
	if err != nil {
		s.logger.Error("failed to update transaction", "error", err, "reference", reference)
		return Transaction{}, err
	}

	s.logger.Info("transaction updated", "reference", reference, "category", t.Category, "month", t.Month)
	return t, nil
}

// Ignore excludes a transaction from the reports, or includes it again
func (s *Service) Ignore(reference string, ignore bool) (Transaction, error) {
	return s.Patch(reference, TransactionPatch{Exclude: &ignore})
}

// Delete removes a transaction by reference
func (s *Service) Delete(reference string) (Transaction, error) {
	t, err := s.history.Delete(reference)
	if err != nil {
		s.logger.Warn("failed to delete transaction", "error", err, "reference", reference)
		return Transaction{}, err
	}

	s.logger.Info("transaction deleted", "reference", reference)
	return t, nil
}

// Get retrieves a transaction by reference
func (s *Service) Get(reference string) (Transaction, error) {
	return s.history.Get(reference)
}

// ListByMonth returns the transactions booked to month, oldest first.
func (s *Service) ListByMonth(month int) ([]Transaction, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	transactions := s.history.GetByMonth(month)
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Day.Before(transactions[j].Day)
	})
	return transactions, nil
}

// ByCategory lists the transactions tagged with the budget item name
func (s *Service) ByCategory(name string) []Transaction {
	return s.history.GetByCategory(name)
}

// ByMonth lists the transactions booked to month
func (s *Service) ByMonth(month int) []Transaction {
	return s.history.GetByMonth(month)
}

// List returns every transaction
func (s *Service) List() []Transaction {
	return s.history.List()
}

// Load replaces the in-memory ledger with the project's stored transactions.
func (s *Service) Load(ctx context.Context, project string) error {
	records, err := s.repo.Load(ctx, project)
	if err != nil {
		s.logger.Error("failed to load history", "error", err, "project", project)
		return internal.NewInternalError("Failed to load the history", err)
	}

	history := NewHistory()
	for _, record := range records {
		t, err := FromRecord(record)
		if err != nil {
			s.logger.Error("invalid history record", "error", err, "project", project, "reference", record.Reference)
			return err
		}
		if _, err := history.Add(t); err != nil {
			return err
		}
	}
	s.history = history

	s.logger.Debug("history loaded", "project", project, "count", history.Len())
	return nil
}

// Save writes the ledger under project
func (s *Service) Save(ctx context.Context, project string) error {
	transactions := s.history.List()
	records := make([]TransactionRecord, len(transactions))
	for i, t := range transactions {
		records[i] = ToRecord(t)
	}

	if err := s.repo.Save(ctx, project, records); err != nil {
		s.logger.Error("failed to save history", "error", err, "project", project)
		return internal.NewInternalError("Failed to save the history", err)
	}

	s.logger.Debug("history saved", "project", project, "count", len(records))
	s.publish(ctx, events.NewProjectSavedEvent(project, "history", len(records)), false)
	return nil
}
