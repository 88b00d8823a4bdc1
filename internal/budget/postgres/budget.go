package postgres

import (
	"context"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	budgetDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	"gorm.io/gorm"
)

// saveBatchSize keeps a single INSERT well below the bound parameter limit
// of SQLite.
const saveBatchSize = 500

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

// Save replaces every row of the project in a single transaction.
func (r *BudgetRepository) Save(ctx context.Context, project string, records []budget.ItemRecord) error {
	rows := make([]budgetDatamodel.BudgetItem, len(records))
	for i, record := range records {
		rows[i] = budgetDatamodel.BudgetItem{
			Project:    project,
			Identifier: record.Identifier,
			Position:   i,
			Name:       record.Name,
			Amount:     record.Amount,
			Category:   record.Category,
			Note:       record.Note,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project = ?", project).Delete(&budgetDatamodel.BudgetItem{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, saveBatchSize).Error
	})
}

func (r *BudgetRepository) Load(ctx context.Context, project string) ([]budget.ItemRecord, error) {
	var rows []budgetDatamodel.BudgetItem
	err := r.db.WithContext(ctx).
		Where("project = ?", project).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]budget.ItemRecord, len(rows))
	for i, row := range rows {
		records[i] = budget.ItemRecord{
			Identifier: row.Identifier,
			Name:       row.Name,
			Amount:     row.Amount,
			Category:   row.Category,
			Note:       row.Note,
		}
	}
	return records, nil
}
