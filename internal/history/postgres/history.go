package postgres

import (
	"context"

	transactionDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/transaction"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"gorm.io/gorm"
)

// saveBatchSize keeps a single INSERT well below the bound parameter limit
// of SQLite.
const saveBatchSize = 500

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) history.RepositoryAPI {
	return &HistoryRepository{db: db}
}

// Save replaces every row of the project in a single transaction.
func (r *HistoryRepository) Save(ctx context.Context, project string, records []history.TransactionRecord) error {
	rows := make([]transactionDatamodel.Transaction, len(records))
	for i, record := range records {
		rows[i] = transactionDatamodel.Transaction{
			Project:   project,
			Reference: record.Reference,
			Position:  i,
			Day:       record.Day,
			Source:    record.Source,
			Amount:    record.Amount,
			Notes:     record.Notes,
			Category:  record.Category,
			Month:     record.Month,
			Comments:  record.Comments,
			Exclude:   record.Exclude,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project = ?", project).Delete(&transactionDatamodel.Transaction{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, saveBatchSize).Error
	})
}

func (r *HistoryRepository) Load(ctx context.Context, project string) ([]history.TransactionRecord, error) {
	var rows []transactionDatamodel.Transaction
	err := r.db.WithContext(ctx).
		Where("project = ?", project).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]history.TransactionRecord, len(rows))
	for i, row := range rows {
		records[i] = history.TransactionRecord{
			Reference: row.Reference,
			Day:       row.Day,
			Source:    row.Source,
			Amount:    row.Amount,
			Notes:     row.Notes,
			Category:  row.Category,
			Month:     row.Month,
			Comments:  row.Comments,
			Exclude:   row.Exclude,
		}
	}
	return records, nil
}
