package csv

import (
	"context"
	"path/filepath"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/pkg/csvfile"
)

const fileName = "budget.csv"

// BudgetRepository keeps each project's budget in <root>/<project>/budget.csv.
type BudgetRepository struct {
	root string
}

func NewBudgetRepository(root string) budget.RepositoryAPI {
	return &BudgetRepository{root: root}
}

func (r *BudgetRepository) path(project string) string {
	return filepath.Join(r.root, project, fileName)
}

func (r *BudgetRepository) Save(ctx context.Context, project string, records []budget.ItemRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Fields()
	}
	return csvfile.Write(r.path(project), rows)
}

func (r *BudgetRepository) Load(ctx context.Context, project string) ([]budget.ItemRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := csvfile.Read(r.path(project))
	if err != nil {
		return nil, err
	}

	records := make([]budget.ItemRecord, 0, len(rows))
	for _, row := range rows {
		record, err := budget.RecordFromFields(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
