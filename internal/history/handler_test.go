package history_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("History Handler", func() {
	var (
		mockRepo     *MockRepository
		mockImporter *MockImporter
		service      *history.Service
		router       *chi.Mux
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
		mockImporter = &MockImporter{records: []history.TransactionRecord{
			statementRecord("REF-2", "2024-04-12", "-42.10"),
			statementRecord("REF-1", "2024-04-02", "1800"),
			statementRecord("REF-3", "2024-05-01", "-7"),
		}}
		service = history.NewService(mockRepo, mockImporter, slogger)
		handler := history.NewHandler(&transport.BaseHandler{Logger: slogger}, service, "home")

		router = chi.NewRouter()
		router.Get("/transactions", handler.ListTransactions)
		router.Post("/transactions/import", handler.ImportTransactions)
		router.Get("/transactions/unreviewed", handler.ListUnreviewed)
		router.Get("/transactions/{reference}", handler.GetTransaction)
		router.Patch("/transactions/{reference}", handler.UpdateTransaction)
		router.Post("/transactions/{reference}/ignore", handler.IgnoreTransaction)
		router.Delete("/transactions/{reference}", handler.DeleteTransaction)
	})

	importStatement := func() {
		w := serve(http.MethodPost, "/transactions/import", history.ImportRequestDTO{Source: "statement.csv"})
		Expect(w.Code).To(Equal(http.StatusOK))
	}

	It("should import a statement and save the project", func() {
		w := serve(http.MethodPost, "/transactions/import", history.ImportRequestDTO{Source: "statement.csv"})

		Expect(w.Code).To(Equal(http.StatusOK))
		var response struct {
			Imported   []history.TransactionResponse `json:"imported"`
			Duplicated []string                      `json:"duplicated"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Imported).To(HaveLen(3))
		Expect(response.Duplicated).To(BeEmpty())
		Expect(mockRepo.projects["home"]).To(HaveLen(3))
	})

	It("should require a source", func() {
		w := serve(http.MethodPost, "/transactions/import", history.ImportRequestDTO{})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should answer 502 when the importer fails", func() {
		mockImporter.err = errors.New("unreadable")

		w := serve(http.MethodPost, "/transactions/import", history.ImportRequestDTO{Source: "broken.csv"})

		Expect(w.Code).To(Equal(http.StatusBadGateway))
		Expect(w.Body.String()).To(ContainSubstring("IMPORT_FAILED"))
	})

	It("should list a month ordered by day", func() {
		importStatement()

		w := serve(http.MethodGet, "/transactions?month=4", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response []history.TransactionResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response).To(HaveLen(2))
		Expect(response[0].Reference).To(Equal("REF-1"))
		Expect(response[1].Reference).To(Equal("REF-2"))
	})

	DescribeTable("should reject an invalid month",
		func(query string) {
			w := serve(http.MethodGet, "/transactions?month="+query, nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_MONTH"))
		},
		Entry("not a number", "april"),
		Entry("out of range", "13"),
	)

	It("should review, ignore and delete a transaction", func() {
		importStatement()

		w := serve(http.MethodPatch, "/transactions/REF-2", history.UpdateTransactionDTO{Category: strPtr("Food")})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"category":"Food"`))

		w = serve(http.MethodGet, "/transactions/unreviewed", nil)
		var unreviewed []history.TransactionResponse
		Expect(json.NewDecoder(w.Body).Decode(&unreviewed)).To(Succeed())
		Expect(unreviewed).To(HaveLen(2))

		w = serve(http.MethodPatch, "/transactions/REF-2", map[string]string{"category": ""})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"category":""`))

		w = serve(http.MethodGet, "/transactions/unreviewed", nil)
		Expect(json.NewDecoder(w.Body).Decode(&unreviewed)).To(Succeed())
		Expect(unreviewed).To(HaveLen(3))

		w = serve(http.MethodPost, "/transactions/REF-3/ignore", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"exclude":true`))

		w = serve(http.MethodPost, "/transactions/REF-3/ignore", history.IgnoreTransactionDTO{Exclude: false})
		Expect(w.Body.String()).To(ContainSubstring(`"exclude":false`))

		w = serve(http.MethodDelete, "/transactions/REF-1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = serve(http.MethodGet, "/transactions/REF-1", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("TRANSACTION_NOT_FOUND"))

		loaded := history.NewService(mockRepo, mockImporter, slog.Default())
		Expect(loaded.Load(context.Background(), "home")).To(Succeed())
		Expect(loaded.List()).To(HaveLen(2))
	})
})
