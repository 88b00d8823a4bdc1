package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTransactionsImported = "transactions.imported"
	EventTypeProjectSaved         = "project.saved"
)

// TransactionsImportedEvent is published after a statement import changed
// the history.
type TransactionsImportedEvent struct {
	BaseEvent
	Source     string `json:"source"`
	Imported   int    `json:"imported"`
	Duplicated int    `json:"duplicated"`
}

func NewTransactionsImportedEvent(source string, imported, duplicated int) *TransactionsImportedEvent {
	return &TransactionsImportedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTransactionsImported,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"source":     source,
				"imported":   imported,
				"duplicated": duplicated,
			},
		},
		Source:     source,
		Imported:   imported,
		Duplicated: duplicated,
	}
}

// ProjectSavedEvent is published after a ledger was written to storage.
// Ledger is "budget" or "history".
type ProjectSavedEvent struct {
	BaseEvent
	Project string `json:"project"`
	Ledger  string `json:"ledger"`
	Records int    `json:"records"`
}

func NewProjectSavedEvent(project, ledger string, records int) *ProjectSavedEvent {
	return &ProjectSavedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeProjectSaved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"project": project,
				"ledger":  ledger,
				"records": records,
			},
		},
		Project: project,
		Ledger:  ledger,
		Records: records,
	}
}
