package budget

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/core/common/validation"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

// RepositoryAPI defines the persistence of a project budget
type RepositoryAPI interface {
	Save(ctx context.Context, project string, records []ItemRecord) error
	Load(ctx context.Context, project string) ([]ItemRecord, error)
}

// Overview pairs the category totals with their distribution. Distribution
// is nil when the expenses sum to zero; the error returned alongside says why.
type Overview struct {
	Totals       Table  `json:"totals"`
	Distribution *Table `json:"distribution,omitempty"`
}

// Service handles the budget use cases over one loaded ledger
type Service struct {
	repo   RepositoryAPI
	budget *Budget
	events events.Publisher
	logger *slog.Logger
}

// NewService creates a new budget service with an empty ledger
func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		budget: NewBudget(),
		logger: logger,
	}
}

// WithEvents makes the service announce saves on publisher.
func (s *Service) WithEvents(publisher events.Publisher) *Service {
	s.events = publisher
	return s
}

// Add validates the request and adds a new item
func (s *Service) Add(dto CreateItemDTO) (Item, error) {
	if appErr := validation.ValidateItem(&dto.Name, &dto.Note); appErr != nil {
		s.logger.Error("budget item validation failed", "error", appErr, "name", dto.Name)
		return Item{}, appErr
	}
	amount, err := ParseAmount(dto.Amount)
	if err != nil {
		s.logger.Error("budget item validation failed", "error", err, "name", dto.Name)
		return Item{}, err
	}
	category, err := ParseCategory(dto.Category)
	if err != nil {
		s.logger.Error("budget item validation failed", "error", err, "category", dto.Category)
		return Item{}, err
	}

	item, err := s.budget.Add(NewItem(dto.Name, amount, category, dto.Note))
	if err != nil {
		s.logger.Error("failed to add budget item", "error", err, "name", dto.Name)
		return Item{}, err
	}

	s.logger.Info("budget item added", "identifier", item.Identifier, "name", item.Name, "category", item.Category)
	return item, nil
}

// Update fetches the stored item, applies only the supplied fields and
// writes the result back.
func (s *Service) Update(identifier string, dto UpdateItemDTO) (Item, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return Item{}, err
	}
	if appErr := validation.ValidateItem(dto.Name, dto.Note); appErr != nil {
		s.logger.Error("budget item validation failed", "error", appErr, "identifier", identifier)
		return Item{}, appErr
	}
	patch, err := dto.Patch()
	if err != nil {
		s.logger.Error("budget item validation failed", "error", err, "identifier", identifier)
		return Item{}, err
	}

	current, err := s.budget.Get(id)
	if err != nil {
		s.logger.Warn("budget item not found", "identifier", identifier)
		return Item{}, err
	}

	item, err := s.budget.Update(patch.Apply(current))
	if err != nil {
		s.logger.Error("failed to update budget item", "error", err, "identifier", identifier)
		return Item{}, err
	}

	s.logger.Info("budget item updated", "identifier", item.Identifier)
	return item, nil
}

// Delete removes an item by identifier
func (s *Service) Delete(identifier string) (Item, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return Item{}, err
	}

	item, err := s.budget.Delete(id)
	if err != nil {
		s.logger.Warn("failed to delete budget item", "error", err, "identifier", identifier)
		return Item{}, err
	}

	s.logger.Info("budget item deleted", "identifier", item.Identifier)
	return item, nil
}

// Get retrieves an item by identifier
func (s *Service) Get(identifier string) (Item, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return Item{}, err
	}
	return s.budget.Get(id)
}

// GetByName retrieves the first item called name
func (s *Service) GetByName(name string) (Item, error) {
	return s.budget.GetByName(name)
}

// GetByCategory parses the category name and lists its items
func (s *Service) GetByCategory(name string) ([]Item, error) {
	category, err := ParseCategory(name)
	if err != nil {
		return nil, err
	}
	return s.budget.GetByCategory(category), nil
}

// List returns every item grouped by category, largest amount first.
func (s *Service) List() []Item {
	items := s.budget.List()
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Amount.GreaterThan(items[j].Amount)
	})
	return items
}

// Names groups the item names by category
func (s *Service) Names() map[Category][]string {
	return s.budget.Names()
}

// Overview computes the totals and the category distribution
func (s *Service) Overview() (Overview, error) {
	totals := CategoryTotals(s.budget.List())
	overview := Overview{Totals: OverviewTable(totals)}

	distribution, err := DistributionTable(totals)
	if err != nil {
		s.logger.Warn("category distribution undefined", "error", err)
		return overview, err
	}
	overview.Distribution = &distribution
	return overview, nil
}

// Distribution computes the item shares per category
func (s *Service) Distribution() []CategoryTable {
	return CategoryDistribution(s.budget.List())
}

// Load replaces the in-memory ledger with the project's stored items.
func (s *Service) Load(ctx context.Context, project string) error {
	records, err := s.repo.Load(ctx, project)
	if err != nil {
		s.logger.Error("failed to load budget", "error", err, "project", project)
		return internal.NewInternalError("Failed to load the budget", err)
	}

	budget := NewBudget()
	for _, record := range records {
		item, err := FromRecord(record)
		if err != nil {
			s.logger.Error("invalid budget record", "error", err, "project", project, "identifier", record.Identifier)
			return err
		}
		if _, err := budget.Add(item); err != nil {
			return err
		}
	}
	s.budget = budget

	s.logger.Debug("budget loaded", "project", project, "count", budget.Len())
	return nil
}

// Save writes the ledger under project
func (s *Service) Save(ctx context.Context, project string) error {
	items := s.budget.List()
	records := make([]ItemRecord, len(items))
	for i, item := range items {
		records[i] = ToRecord(item)
	}

	if err := s.repo.Save(ctx, project, records); err != nil {
		s.logger.Error("failed to save budget", "error", err, "project", project)
		return internal.NewInternalError("Failed to save the budget", err)
	}

	s.logger.Debug("budget saved", "project", project, "count", len(records))
	if s.events != nil {
		if err := s.events.PublishSync(ctx, events.NewProjectSavedEvent(project, "budget", len(records))); err != nil {
			s.logger.Warn("event handler failed", "error", err, "event_type", events.EventTypeProjectSaved)
		}
	}
	return nil
}
