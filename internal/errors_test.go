package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/budget-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should match sentinels by code", func() {
		err := internal.NewNotFoundError(`Failed to get transaction. Transaction with reference "R1" does not exist`, internal.ErrCodeTransactionNotFound)

		Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrItemNotFound)).To(BeFalse())
	})

	It("should be found through wrapping", func() {
		wrapped := fmt.Errorf("loading: %w", internal.NewInternalError("Failed to load the budget", errors.New("disk")))

		appErr, ok := internal.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(appErr.Error()).To(Equal("Failed to load the budget: disk"))
	})

	It("should render the HTTP body without the cause", func() {
		appErr := internal.NewConflictError("exists", internal.ErrCodeItemExists).WithCause(errors.New("secret"))

		status, body := appErr.ToHTTPResponse()
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())

		Expect(status).To(Equal(http.StatusConflict))
		Expect(string(raw)).To(Equal(`{"error":{"type":"CONFLICT","code":"ITEM_EXISTS","message":"exists"}}`))
	})
})
