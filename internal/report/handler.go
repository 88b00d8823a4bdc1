package report

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CategoryReport(name string, months int) (*CategoryReport, error)
	AllCategoryReports(months int) ([]*CategoryReport, error)
	MonthResult(month int) (*MonthResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetMonthResult(w http.ResponseWriter, r *http.Request) {
	month, err := parseNumber(chi.URLParam(r, "month"), "month")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.MonthResult(month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetCategoryReport(w http.ResponseWriter, r *http.Request) {
	months, err := parseNumber(r.URL.Query().Get("months"), "number of months")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	report, err := h.Service.CategoryReport(chi.URLParam(r, "name"), months)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ToCategoryReportResponse(report))
}

func (h *Handler) GetAllCategoryReports(w http.ResponseWriter, r *http.Request) {
	months, err := parseNumber(r.URL.Query().Get("months"), "number of months")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	reports, err := h.Service.AllCategoryReports(months)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	responses := make([]CategoryReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = ToCategoryReportResponse(report)
	}
	h.WriteJSON(w, http.StatusOK, responses)
}

func parseNumber(s, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, internal.NewValidationError(
			"The "+what+" should be a number: "+strconv.Quote(s),
			internal.ErrCodeInvalidMonth).WithCause(err)
	}
	return n, nil
}
