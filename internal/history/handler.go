package history

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Import(ctx context.Context, source string) (ImportResult, error)
	Unreviewed() []Transaction
	Update(reference string, dto UpdateTransactionDTO) (Transaction, error)
	Ignore(reference string, ignore bool) (Transaction, error)
	Delete(reference string) (Transaction, error)
	Get(reference string) (Transaction, error)
	ListByMonth(month int) ([]Transaction, error)
	List() []Transaction
	Save(ctx context.Context, project string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Project string
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, project string) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Project:     project,
	}
}

// ListTransactions lists every transaction, or those of one month when the
// month query parameter is given.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.WriteJSON(w, http.StatusOK, ToResponses(h.Service.List()))
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationError("The month should be a number: "+strconv.Quote(monthStr), internal.ErrCodeInvalidMonth))
		return
	}
	transactions, err := h.Service.ListByMonth(month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponses(transactions))
}

func (h *Handler) ListUnreviewed(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, ToResponses(h.Service.Unreviewed()))
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Get(chi.URLParam(r, "reference"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(t))
}

func (h *Handler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	var dto ImportRequestDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}
	if dto.Source == "" {
		h.WriteError(w, http.StatusBadRequest, "source is required")
		return
	}

	result, err := h.Service.Import(r.Context(), dto.Source)
	if err != nil {
		h.Logger.Error("ImportTransactions: service error", "error", err, "source", dto.Source)
		h.HandleServiceError(w, err)
		return
	}
	if len(result.Imported) > 0 && !h.save(w, r) {
		return
	}

	h.Logger.Info("ImportTransactions: statement imported",
		"source", dto.Source,
		"imported", len(result.Imported),
		"duplicated", len(result.Duplicated))

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported":   ToResponses(result.Imported),
		"duplicated": result.Duplicated,
	})
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto UpdateTransactionDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	t, err := h.Service.Update(chi.URLParam(r, "reference"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(t))
}

func (h *Handler) IgnoreTransaction(w http.ResponseWriter, r *http.Request) {
	dto := IgnoreTransactionDTO{Exclude: true}
	if r.ContentLength != 0 && !h.DecodeJSON(w, r, &dto) {
		return
	}

	t, err := h.Service.Ignore(chi.URLParam(r, "reference"), dto.Exclude)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(t))
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Delete(chi.URLParam(r, "reference"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(t))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) bool {
	if err := h.Service.Save(r.Context(), h.Project); err != nil {
		h.HandleServiceError(w, err)
		return false
	}
	return true
}
