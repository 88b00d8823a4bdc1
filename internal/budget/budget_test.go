package budget_test

import (
	"errors"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func fakeItem() budget.Item {
	categories := budget.Categories()
	return budget.NewItem(
		gofakeit.Company(),
		decimal.NewFromFloat(gofakeit.Float64Range(-1000, 1000)).Round(2),
		categories[gofakeit.Number(0, len(categories)-1)],
		gofakeit.Sentence(5),
	)
}

var _ = Describe("Category", func() {
	It("should order the categories", func() {
		Expect(budget.Categories()).To(Equal([]budget.Category{
			budget.Empty, budget.Income, budget.Needs, budget.Wants, budget.Savings,
		}))
		Expect(budget.Empty < budget.Income).To(BeTrue())
		Expect(budget.Wants < budget.Savings).To(BeTrue())
	})

	It("should parse names exactly", func() {
		for _, c := range budget.Categories() {
			parsed, err := budget.ParseCategory(c.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(c))
		}
	})

	It("should reject names in another case", func() {
		_, err := budget.ParseCategory("wants")
		Expect(errors.Is(err, internal.ErrCategoryNotFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`"wants"`))

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Details).To(Equal([]string{"Empty", "Income", "Needs", "Wants", "Savings"}))
	})

	It("should mark only Needs, Wants and Savings as expenses", func() {
		Expect(budget.Needs.IsExpense()).To(BeTrue())
		Expect(budget.Savings.IsExpense()).To(BeTrue())
		Expect(budget.Income.IsExpense()).To(BeFalse())
		Expect(budget.Empty.IsExpense()).To(BeFalse())
	})
})

var _ = Describe("Budget", func() {
	var ledger *budget.Budget

	BeforeEach(func() {
		ledger = budget.NewBudget()
	})

	Describe("Add", func() {
		It("should store and return the item", func() {
			item := fakeItem()
			stored, err := ledger.Add(item)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(item))
			Expect(ledger.Len()).To(Equal(1))
		})

		It("should reject a second item with the same identifier", func() {
			for i := 0; i < 20; i++ {
				item := fakeItem()
				_, err := ledger.Add(item)
				Expect(err).NotTo(HaveOccurred())

				before := ledger.List()
				clash := fakeItem()
				clash.Identifier = item.Identifier

				_, err = ledger.Add(clash)
				Expect(errors.Is(err, internal.ErrItemExists)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(item.Identifier.String()))
				Expect(ledger.List()).To(Equal(before))
			}
		})
	})

	Describe("identity", func() {
		It("should compare items by identifier only", func() {
			item := fakeItem()
			other := fakeItem()
			other.Identifier = item.Identifier
			Expect(item.Same(other)).To(BeTrue())
			Expect(item.Same(fakeItem())).To(BeFalse())
		})
	})

	Describe("absent identifiers", func() {
		It("should fail update, delete and get alike without changes", func() {
			_, err := ledger.Add(fakeItem())
			Expect(err).NotTo(HaveOccurred())
			before := ledger.List()

			missing := fakeItem()

			_, err = ledger.Update(missing)
			Expect(errors.Is(err, internal.ErrItemNotFound)).To(BeTrue())
			_, err = ledger.Delete(missing.Identifier)
			Expect(errors.Is(err, internal.ErrItemNotFound)).To(BeTrue())
			_, err = ledger.Get(missing.Identifier)
			Expect(errors.Is(err, internal.ErrItemNotFound)).To(BeTrue())

			Expect(ledger.List()).To(Equal(before))
		})
	})

	Describe("Update", func() {
		It("should replace every field of the stored item", func() {
			item, err := ledger.Add(fakeItem())
			Expect(err).NotTo(HaveOccurred())

			replacement := fakeItem()
			replacement.Identifier = item.Identifier

			updated, err := ledger.Update(replacement)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(Equal(replacement))

			stored, err := ledger.Get(item.Identifier)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(replacement))
		})
	})

	Describe("Delete", func() {
		It("should return the removed item", func() {
			first, _ := ledger.Add(fakeItem())
			second, _ := ledger.Add(fakeItem())

			removed, err := ledger.Delete(first.Identifier)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(first))
			Expect(ledger.List()).To(Equal([]budget.Item{second}))
			Expect(ledger.Has(first.Identifier)).To(BeFalse())
		})
	})

	Describe("GetByName", func() {
		It("should return the first item with that name", func() {
			first := budget.NewItem("Food", decimal.NewFromInt(100), budget.Needs, "")
			second := budget.NewItem("Food", decimal.NewFromInt(50), budget.Wants, "")
			_, _ = ledger.Add(first)
			_, _ = ledger.Add(second)

			found, err := ledger.GetByName("Food")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(Equal(first))
		})

		It("should fail when no item has the name", func() {
			_, err := ledger.GetByName("Nope")
			Expect(errors.Is(err, internal.ErrItemNotFound)).To(BeTrue())
		})
	})

	Describe("GetByCategory", func() {
		It("should return the matching items in ledger order", func() {
			a := budget.NewItem("a", decimal.NewFromInt(1), budget.Wants, "")
			b := budget.NewItem("b", decimal.NewFromInt(2), budget.Needs, "")
			c := budget.NewItem("c", decimal.NewFromInt(3), budget.Wants, "")
			for _, item := range []budget.Item{a, b, c} {
				_, err := ledger.Add(item)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(ledger.GetByCategory(budget.Wants)).To(Equal([]budget.Item{a, c}))
			Expect(ledger.GetByCategory(budget.Savings)).To(BeEmpty())
		})
	})

	Describe("List", func() {
		It("should be idempotent", func() {
			for i := 0; i < 10; i++ {
				_, err := ledger.Add(fakeItem())
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(ledger.List()).To(Equal(ledger.List()))
		})

		It("should hand out copies", func() {
			item, _ := ledger.Add(fakeItem())
			listed := ledger.List()
			listed[0].Name = "changed"

			stored, err := ledger.Get(item.Identifier)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Name).To(Equal(item.Name))
		})
	})

	Describe("Names", func() {
		It("should map every category to its item names", func() {
			_, _ = ledger.Add(budget.NewItem("Salary", decimal.NewFromInt(1), budget.Income, ""))
			_, _ = ledger.Add(budget.NewItem("Rent", decimal.NewFromInt(1), budget.Needs, ""))
			_, _ = ledger.Add(budget.NewItem("Food", decimal.NewFromInt(1), budget.Needs, ""))

			names := ledger.Names()
			Expect(names).To(HaveLen(5))
			Expect(names[budget.Income]).To(Equal([]string{"Salary"}))
			Expect(names[budget.Needs]).To(Equal([]string{"Rent", "Food"}))
			Expect(names[budget.Savings]).To(BeEmpty())
		})
	})
})

var _ = Describe("ItemRecord", func() {
	It("should round trip every field", func() {
		for i := 0; i < 50; i++ {
			item := fakeItem()
			record := budget.ToRecord(item)

			restored, err := budget.FromRecord(record)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Identifier).To(Equal(item.Identifier))
			Expect(restored.Name).To(Equal(item.Name))
			Expect(restored.Amount.Equal(item.Amount)).To(BeTrue())
			Expect(restored.Category).To(Equal(item.Category))
			Expect(restored.Note).To(Equal(item.Note))
			Expect(budget.ToRecord(restored)).To(Equal(record))
		}
	})

	It("should keep the field order", func() {
		id := uuid.MustParse("0b8a4c35-7f55-4a3c-9a50-6d6ab2c5b8a1")
		item := budget.Item{Identifier: id, Name: "Rent", Amount: decimal.RequireFromString("1200.5"), Category: budget.Needs, Note: "flat"}
		Expect(budget.ToRecord(item).Fields()).To(Equal([]string{
			"0b8a4c35-7f55-4a3c-9a50-6d6ab2c5b8a1", "Rent", "1200.5", "Needs", "flat",
		}))
	})

	It("should reject a malformed identifier", func() {
		_, err := budget.FromRecord(budget.ItemRecord{Identifier: "x", Amount: "1", Category: "Needs"})
		Expect(errors.Is(err, internal.ErrInvalidIdentifier)).To(BeTrue())
	})
})
