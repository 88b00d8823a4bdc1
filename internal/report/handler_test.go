package report_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Report Handler", func() {
	var router *chi.Mux

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockBudget := &MockBudget{items: []budget.Item{
			budget.NewItem("Salary", dec("36000"), budget.Income, ""),
			budget.NewItem("Rent", dec("12000"), budget.Needs, ""),
		}}
		mockHistory := &MockHistory{transactions: []history.Transaction{
			tx("Salary", "3000", 1),
			tx("Rent", "-1000", 1),
			tx("Rent", "-1100", 2),
		}}
		service := report.NewService(mockBudget, mockHistory, slogger)
		handler := report.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/reports/months/{month}", handler.GetMonthResult)
		router.Get("/reports/categories", handler.GetAllCategoryReports)
		router.Get("/reports/categories/{name}", handler.GetCategoryReport)
	})

	It("should return the month result", func() {
		w := get("/reports/months/1")

		Expect(w.Code).To(Equal(http.StatusOK))
		var response struct {
			Month    int    `json:"month"`
			Incomes  string `json:"incomes"`
			Expenses string `json:"expenses"`
			Result   string `json:"result"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Month).To(Equal(1))
		Expect(response.Incomes).To(Equal("3000"))
		Expect(response.Expenses).To(Equal("-1000"))
		Expect(response.Result).To(Equal("2000"))
	})

	DescribeTable("should reject a bad month",
		func(month string) {
			w := get("/reports/months/" + month)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_MONTH"))
		},
		Entry("zero", "0"),
		Entry("thirteen", "13"),
		Entry("not a number", "may"),
	)

	It("should return one category report", func() {
		w := get("/reports/categories/Rent?months=2")

		Expect(w.Code).To(Equal(http.StatusOK))
		var response report.CategoryReportResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Used).To(Equal("-2100.00"))
		Expect(response.BudgetPerMonth).To(Equal("1000.00"))
		Expect(response.Leftover).To(Equal("9900.00"))
		Expect(response.MonthlyDistribution).To(HaveLen(2))
	})

	It("should answer 404 for an unknown budget item", func() {
		w := get("/reports/categories/Boat?months=2")

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should require the number of months", func() {
		w := get("/reports/categories/Rent")

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return a report per budget item", func() {
		w := get("/reports/categories?months=12")

		Expect(w.Code).To(Equal(http.StatusOK))
		var response []report.CategoryReportResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response).To(HaveLen(2))
		Expect(response[1].LeftoverAverage).To(Equal("0.00"))
	})
})
