package history_test

import (
	"errors"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/history"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func fakeTransaction() history.Transaction {
	day := gofakeit.DateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return history.Transaction{
		Reference: gofakeit.Numerify("REF-##########"),
		Day:       day,
		Source:    gofakeit.Company(),
		Amount:    decimal.NewFromFloat(gofakeit.Float64Range(-1000, 1000)).Round(2),
		Notes:     gofakeit.Sentence(5),
		Month:     int(day.Month()),
	}
}

var _ = Describe("History", func() {
	var ledger *history.History

	BeforeEach(func() {
		ledger = history.NewHistory()
	})

	Describe("Add", func() {
		It("should reject a duplicate reference without changes", func() {
			for i := 0; i < 20; i++ {
				t := fakeTransaction()
				_, err := ledger.Add(t)
				Expect(err).NotTo(HaveOccurred())

				before := ledger.List()
				clash := fakeTransaction()
				clash.Reference = t.Reference

				_, err = ledger.Add(clash)
				Expect(errors.Is(err, internal.ErrTransactionExists)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(t.Reference))
				Expect(ledger.List()).To(Equal(before))
			}
		})
	})

	Describe("absent references", func() {
		It("should fail update, delete and get alike without changes", func() {
			_, err := ledger.Add(fakeTransaction())
			Expect(err).NotTo(HaveOccurred())
			before := ledger.List()

			missing := fakeTransaction()
			_, err = ledger.Update(missing)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
			_, err = ledger.Delete(missing.Reference)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
			_, err = ledger.Get(missing.Reference)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())

			Expect(ledger.List()).To(Equal(before))
		})
	})

	Describe("Update", func() {
		var stored history.Transaction

		BeforeEach(func() {
			var err error
			stored, err = ledger.Add(fakeTransaction())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should accept changes to the review fields", func() {
			changed := stored
			changed.Category = "Food"
			changed.Month = 12
			changed.Comments = "split with a friend"
			changed.Exclude = true

			updated, err := ledger.Update(changed)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(Equal(changed))

			got, err := ledger.Get(stored.Reference)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(changed))
		})

		DescribeTable("should reject changes to statement fields and list them",
			func(change func(*history.Transaction), expected []string) {
				changed := stored
				change(&changed)

				_, err := ledger.Update(changed)
				Expect(errors.Is(err, internal.ErrTransactionUpdateRejected)).To(BeTrue())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Details).To(Equal(expected))

				got, err := ledger.Get(stored.Reference)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(stored))
			},
			Entry("day", func(t *history.Transaction) { t.Day = t.Day.AddDate(0, 0, 1) }, []string{"day"}),
			Entry("source", func(t *history.Transaction) { t.Source += " GmbH" }, []string{"source"}),
			Entry("amount", func(t *history.Transaction) { t.Amount = t.Amount.Add(decimal.NewFromInt(1)) }, []string{"amount"}),
			Entry("notes and source", func(t *history.Transaction) {
				t.Notes = "edited"
				t.Source = "edited"
				t.Category = "Food"
			}, []string{"source", "notes"}),
		)

		It("should name the fields in the message", func() {
			changed := stored
			changed.Amount = changed.Amount.Add(decimal.NewFromInt(1))
			changed.Notes = "edited"

			_, err := ledger.Update(changed)
			Expect(err).To(MatchError(ContainSubstring("immutable fields were going to be changed: amount notes")))
		})

		It("should treat equal amounts with different scale as unchanged", func() {
			changed := stored
			changed.Amount = decimal.RequireFromString(stored.Amount.StringFixed(4))
			changed.Comments = "rescaled"

			_, err := ledger.Update(changed)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("queries", func() {
		var salary, rent, unknown history.Transaction

		BeforeEach(func() {
			salary = fakeTransaction()
			salary.Category = "Salary"
			salary.Month = 3
			rent = fakeTransaction()
			rent.Category = "Rent"
			rent.Month = 3
			unknown = fakeTransaction()
			unknown.Month = 4
			for _, t := range []history.Transaction{salary, rent, unknown} {
				_, err := ledger.Add(t)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should return the unreviewed transactions", func() {
			Expect(ledger.GetUnreviewed()).To(Equal([]history.Transaction{unknown}))
		})

		It("should match the category by exact name", func() {
			Expect(ledger.GetByCategory("Rent")).To(Equal([]history.Transaction{rent}))
			Expect(ledger.GetByCategory("rent")).To(BeEmpty())
		})

		It("should match the month field", func() {
			Expect(ledger.GetByMonth(3)).To(Equal([]history.Transaction{salary, rent}))
			Expect(ledger.GetByMonth(4)).To(Equal([]history.Transaction{unknown}))
		})

		It("should list idempotently", func() {
			Expect(ledger.List()).To(HaveLen(3))
			Expect(ledger.List()).To(Equal(ledger.List()))
		})
	})
})

var _ = Describe("TransactionRecord", func() {
	It("should round trip every field", func() {
		for i := 0; i < 50; i++ {
			t := fakeTransaction()
			t.Category = gofakeit.Word()
			t.Comments = gofakeit.Sentence(3)
			t.Exclude = gofakeit.Bool()
			t.Month = gofakeit.Number(1, 12)

			record := history.ToRecord(t)
			restored, err := history.FromRecord(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.ChangedImmutableFields(t)).To(BeEmpty())
			Expect(restored.Category).To(Equal(t.Category))
			Expect(restored.Month).To(Equal(t.Month))
			Expect(restored.Comments).To(Equal(t.Comments))
			Expect(restored.Exclude).To(Equal(t.Exclude))
			Expect(history.ToRecord(restored)).To(Equal(record))
		}
	})

	It("should write the day as an ISO date", func() {
		t := fakeTransaction()
		t.Day = time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
		Expect(history.ToRecord(t).Day).To(Equal("2024-02-09"))
	})

	It("should reject a month outside 1..12", func() {
		record := history.ToRecord(fakeTransaction())
		record.Month = "13"

		_, err := history.FromRecord(record)
		Expect(errors.Is(err, internal.ErrInvalidMonth)).To(BeTrue())
	})
})

var _ = Describe("TransactionPatch", func() {
	It("should leave nil fields alone", func() {
		t := fakeTransaction()
		category := "Food"

		patched, err := history.TransactionPatch{Category: &category}.Apply(t)
		Expect(err).NotTo(HaveOccurred())
		Expect(patched.Category).To(Equal("Food"))
		Expect(patched.Month).To(Equal(t.Month))
		Expect(patched.Comments).To(Equal(t.Comments))
	})

	It("should reject an invalid month", func() {
		month := 0
		_, err := history.TransactionPatch{Month: &month}.Apply(fakeTransaction())
		Expect(errors.Is(err, internal.ErrInvalidMonth)).To(BeTrue())
	})
})
