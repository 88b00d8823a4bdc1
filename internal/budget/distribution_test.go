package budget_test

import (
	"errors"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func item(name, amount string, category budget.Category) budget.Item {
	return budget.NewItem(name, decimal.RequireFromString(amount), category, "")
}

var _ = Describe("Distribution", func() {
	Describe("overview", func() {
		var totals budget.Totals

		BeforeEach(func() {
			totals = budget.CategoryTotals([]budget.Item{
				item("Salary", "200.00", budget.Income),
				item("Rent", "100.00", budget.Needs),
				item("Travel", "1100.80", budget.Wants),
				item("Pension", "400.00", budget.Savings),
				item("Misc", "300.00", budget.Empty),
			})
		})

		It("should sum the categories", func() {
			Expect(totals.Expenses().String()).To(Equal("1600.8"))
			Expect(totals.Result().String()).To(Equal("-1400.8"))
			Expect(totals.Unassigned().String()).To(Equal("300"))
		})

		It("should build the totals table", func() {
			table := budget.OverviewTable(totals)
			Expect(table.Fields).To(Equal([]string{"Category", "Amount"}))
			Expect(table.Rows).To(Equal([][]string{
				{"Income", "200.00"},
				{"Expenses", "1,600.80"},
				{"Result", "-1,400.80"},
				{"Unassigned", "300.00"},
			}))
		})

		It("should build the distribution table", func() {
			table, err := budget.DistributionTable(totals)
			Expect(err).NotTo(HaveOccurred())
			Expect(table.Fields).To(Equal([]string{"Category", "Amount", "Percentage"}))
			Expect(table.Rows).To(Equal([][]string{
				{"Empty", "300.00", "-"},
				{"Income", "200.00", "-"},
				{"Needs", "100.00", "6.25%"},
				{"Wants", "1,100.80", "68.77%"},
				{"Savings", "400.00", "24.99%"},
			}))
		})

		It("should surface zero expenses instead of a percentage", func() {
			totals := budget.CategoryTotals([]budget.Item{item("Salary", "200", budget.Income)})

			_, err := budget.DistributionTable(totals)
			Expect(errors.Is(err, internal.ErrDivisionUndefined)).To(BeTrue())
			Expect(budget.OverviewTable(totals).Rows[1]).To(Equal([]string{"Expenses", "0.00"}))
		})

		It("should cover an empty budget", func() {
			totals := budget.CategoryTotals(nil)
			Expect(totals).To(HaveLen(5))
			Expect(totals.Result().IsZero()).To(BeTrue())
		})
	})

	Describe("CategoryDistribution", func() {
		It("should sort the items by amount descending and close with a total", func() {
			tables := budget.CategoryDistribution([]budget.Item{
				item("Cinema", "500.00", budget.Wants),
				item("Travel", "1600.00", budget.Wants),
			})

			Expect(tables).To(HaveLen(1))
			Expect(tables[0].Category).To(Equal(budget.Wants))
			Expect(tables[0].Table.Fields).To(Equal([]string{"Category", "Name", "Note", "Amount", "Percentage"}))
			Expect(tables[0].Table.Rows).To(Equal([][]string{
				{"Wants", "Travel", "", "1,600.00", "76.19%"},
				{"Wants", "Cinema", "", "500.00", "23.81%"},
				{"Wants", "Total", "", "2,100.00", "100.00%"},
			}))
		})

		It("should skip categories without items and keep taxonomy order", func() {
			tables := budget.CategoryDistribution([]budget.Item{
				item("Pension", "100", budget.Savings),
				item("Salary", "200", budget.Income),
			})

			Expect(tables).To(HaveLen(2))
			Expect(tables[0].Category).To(Equal(budget.Income))
			Expect(tables[1].Category).To(Equal(budget.Savings))
		})

		It("should show zero shares for a category that sums to zero", func() {
			tables := budget.CategoryDistribution([]budget.Item{
				item("Pension", "0", budget.Savings),
				item("Fund", "0", budget.Savings),
			})

			Expect(tables).To(HaveLen(1))
			Expect(tables[0].Table.Rows).To(Equal([][]string{
				{"Savings", "Pension", "", "0.00", "0.00%"},
				{"Savings", "Fund", "", "0.00", "0.00%"},
				{"Savings", "Total", "", "0.00", "100.00%"},
			}))
		})

		It("should return nothing for an empty budget", func() {
			Expect(budget.CategoryDistribution(nil)).To(BeEmpty())
		})
	})

	Describe("FormatAmount", func() {
		DescribeTable("should render two decimals with thousands separators",
			func(amount, expected string) {
				Expect(budget.FormatAmount(decimal.RequireFromString(amount))).To(Equal(expected))
			},
			Entry("zero", "0", "0.00"),
			Entry("small", "5.5", "5.50"),
			Entry("thousands", "1600.8", "1,600.80"),
			Entry("negative", "-1400.8", "-1,400.80"),
			Entry("millions", "1234567.891", "1,234,567.89"),
			Entry("negative fraction", "-0.5", "-0.50"),
			Entry("rounds away to zero", "-0.001", "0.00"),
		)
	})

	Describe("FormatPercentage", func() {
		It("should render a ratio as percent", func() {
			Expect(budget.FormatPercentage(decimal.RequireFromString("0.68765"))).To(Equal("68.77%"))
			Expect(budget.FormatPercentage(decimal.NewFromInt(1))).To(Equal("100.00%"))
		})
	})
})
