package csv

import (
	"context"
	"path/filepath"

	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/pkg/csvfile"
)

const fileName = "history.csv"

// HistoryRepository keeps each project's history in <root>/<project>/history.csv.
type HistoryRepository struct {
	root string
}

func NewHistoryRepository(root string) history.RepositoryAPI {
	return &HistoryRepository{root: root}
}

func (r *HistoryRepository) path(project string) string {
	return filepath.Join(r.root, project, fileName)
}

func (r *HistoryRepository) Save(ctx context.Context, project string, records []history.TransactionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Fields()
	}
	return csvfile.Write(r.path(project), rows)
}

func (r *HistoryRepository) Load(ctx context.Context, project string) ([]history.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := csvfile.Read(r.path(project))
	if err != nil {
		return nil, err
	}

	records := make([]history.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		record, err := history.RecordFromFields(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
