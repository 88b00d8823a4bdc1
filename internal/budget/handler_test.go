package budget_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Budget Handler", func() {
	var (
		mockRepo *MockRepository
		service  *budget.Service
		router   *chi.Mux
	)

	serve := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var payload bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&payload).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &payload)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = NewMockRepository()
		service = budget.NewService(mockRepo, slogger)
		handler := budget.NewHandler(&transport.BaseHandler{Logger: slogger}, service, "home")

		router = chi.NewRouter()
		router.Get("/budget", handler.ListItems)
		router.Post("/budget", handler.CreateItem)
		router.Get("/budget/overview", handler.GetOverview)
		router.Get("/budget/distribution", handler.GetDistribution)
		router.Get("/budget/categories/{category}", handler.GetItemsByCategory)
		router.Get("/budget/{id}", handler.GetItem)
		router.Patch("/budget/{id}", handler.UpdateItem)
		router.Delete("/budget/{id}", handler.DeleteItem)
	})

	It("should create an item and save the project", func() {
		w := serve(http.MethodPost, "/budget", budget.CreateItemDTO{Name: "Rent", Amount: "1200", Category: "Needs"})

		Expect(w.Code).To(Equal(http.StatusCreated))
		var response budget.ItemResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Name).To(Equal("Rent"))
		Expect(response.Amount).To(Equal("1,200.00"))
		Expect(mockRepo.projects["home"]).To(HaveLen(1))
	})

	It("should reject an unknown category", func() {
		w := serve(http.MethodPost, "/budget", budget.CreateItemDTO{Name: "Rent", Amount: "1200", Category: "Luxury"})

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("CATEGORY_NOT_FOUND"))
		Expect(mockRepo.projects).NotTo(HaveKey("home"))
	})

	It("should reject a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/budget", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should update and delete an existing item", func() {
		item, err := service.Add(budget.CreateItemDTO{Name: "Food", Amount: "300", Category: "Needs"})
		Expect(err).NotTo(HaveOccurred())
		path := "/budget/" + item.Identifier.String()

		w := serve(http.MethodPatch, path, budget.UpdateItemDTO{Amount: strPtr("350")})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"amount":"350.00"`))

		w = serve(http.MethodDelete, path, nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodGet, path, nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("ITEM_NOT_FOUND"))
	})

	It("should answer 400 for an invalid identifier", func() {
		w := serve(http.MethodGet, "/budget/not-a-uuid", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_IDENTIFIER"))
	})

	It("should list the items of a category", func() {
		_, err := service.Add(budget.CreateItemDTO{Name: "Cinema", Amount: "20", Category: "Wants"})
		Expect(err).NotTo(HaveOccurred())

		w := serve(http.MethodGet, "/budget/categories/Wants", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response []budget.ItemResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response).To(HaveLen(1))
		Expect(response[0].Name).To(Equal("Cinema"))
	})

	It("should return the totals when the distribution is undefined", func() {
		w := serve(http.MethodGet, "/budget/overview", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var result struct {
			Success bool            `json:"success"`
			Data    budget.Overview `json:"data"`
			Error   string          `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&result)).To(Succeed())
		Expect(result.Success).To(BeFalse())
		Expect(result.Data.Totals.Rows).To(HaveLen(4))
		Expect(result.Data.Distribution).To(BeNil())
	})

	It("should report a failed save", func() {
		mockRepo.SetShouldFail(true, errors.New("disk full"))

		w := serve(http.MethodPost, "/budget", budget.CreateItemDTO{Name: "Rent", Amount: "1200", Category: "Needs"})

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("Failed to save the budget"))
	})
})
