package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

const storageCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	Project    string                `json:"project"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// StoragePinger reports whether the configured store is reachable.
type StoragePinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// LedgerCounter reports how many records the loaded project holds.
type LedgerCounter interface {
	Counts() (items, transactions int)
}

type HealthHandler struct {
	storage StoragePinger
	ledgers LedgerCounter
	project string
}

func NewHealthHandler(storage StoragePinger, ledgers LedgerCounter, project string) *HealthHandler {
	return &HealthHandler{storage: storage, ledgers: ledgers, project: project}
}

// pingHandler only says the process is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// healthCheckHandler checks the store the project lives in and sizes the
// loaded ledgers. It must run under the ledger lock.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    HealthHealthy,
		Project:   h.project,
		CheckedAt: time.Now(),
		Components: map[string]CheckEntry{
			h.storage.Name(): h.checkStorage(r.Context()),
		},
	}
	if h.ledgers != nil {
		items, transactions := h.ledgers.Counts()
		resp.Components["ledgers"] = CheckEntry{
			Status: HealthHealthy,
			Details: map[string]any{
				"budget_items": items,
				"transactions": transactions,
			},
		}
	}

	statusCode := http.StatusOK
	for _, entry := range resp.Components {
		if entry.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
			statusCode = http.StatusServiceUnavailable
		}
	}
	writeHealthJSON(w, statusCode, resp)
}

func (h *HealthHandler) checkStorage(ctx context.Context) CheckEntry {
	ctx, cancel := context.WithTimeout(ctx, storageCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.storage.Ping(ctx)
	entry := CheckEntry{
		Status:     HealthHealthy,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}

func writeHealthJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
