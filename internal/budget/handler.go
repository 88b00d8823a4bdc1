package budget

import (
	"context"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Add(dto CreateItemDTO) (Item, error)
	Update(identifier string, dto UpdateItemDTO) (Item, error)
	Delete(identifier string) (Item, error)
	Get(identifier string) (Item, error)
	GetByCategory(name string) ([]Item, error)
	List() []Item
	Overview() (Overview, error)
	Distribution() []CategoryTable
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

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, ToResponses(h.Service.List()))
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(item))
}

func (h *Handler) GetItemsByCategory(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetByCategory(chi.URLParam(r, "category"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponses(items))
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto CreateItemDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	item, err := h.Service.Add(dto)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err, "name", dto.Name)
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}

	h.Logger.Info("CreateItem: budget item created", "identifier", item.Identifier, "project", h.Project)
	h.WriteJSON(w, http.StatusCreated, ToResponse(item))
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var dto UpdateItemDTO
	if !h.DecodeJSON(w, r, &dto) {
		return
	}

	item, err := h.Service.Update(chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(item))
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.Delete(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !h.save(w, r) {
		return
	}
	h.WriteJSON(w, http.StatusOK, ToResponse(item))
}

// GetOverview answers with the totals even when the distribution is
// undefined, flagging the failure in the result.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.Overview()
	result := transport.NewResult("Show Budget Overview", overview, err)
	if err != nil {
		result.Data = overview
		status := http.StatusInternalServerError
		if appErr, ok := internal.IsAppError(err); ok {
			status = appErr.StatusCode
		}
		h.WriteJSON(w, status, result)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, transport.NewResult("Show Budget Distribution", h.Service.Distribution(), nil))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) bool {
	if err := h.Service.Save(r.Context(), h.Project); err != nil {
		h.HandleServiceError(w, err)
		return false
	}
	return true
}
