package report

import (
	"fmt"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

var twelve = decimal.NewFromInt(monthsPerYear)

// NameAmount is the summed amount of the transactions tagged with one
// budget item name.
type NameAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryAmount is the summed amount of one budget category.
type CategoryAmount struct {
	Category budget.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthResult splits one month of transactions into incomes and expenses
// by matching each transaction's category tag against the budget item
// names of every budget category.
type MonthResult struct {
	Month int `json:"month"`

	IncomeCategories   []string              `json:"income_categories"`
	IncomeTransactions []history.Transaction `json:"income_transactions"`
	IncomeDetails      []NameAmount          `json:"income_details"`
	Incomes            decimal.Decimal       `json:"incomes"`

	ExpenseCategories   []string              `json:"expense_categories"`
	ExpenseTransactions []history.Transaction `json:"expense_transactions"`
	ExpenseDetails      []NameAmount          `json:"expense_details"`
	Expenses            decimal.Decimal       `json:"expenses"`

	// Result adds incomes and expenses as they are. Expenses are expected to
	// be negative.
	Result          decimal.Decimal  `json:"result"`
	CategoryDetails []CategoryAmount `json:"category_details"`

	transactions []history.Transaction
	names        map[budget.Category][]string
}

func NewMonthResult(month int, transactions []history.Transaction, names map[budget.Category][]string) *MonthResult {
	r := &MonthResult{
		Month:        month,
		transactions: transactions,
		names:        names,
	}

	r.IncomeCategories = append([]string{}, names[budget.Income]...)
	r.IncomeTransactions = r.taggedWith(r.IncomeCategories)
	r.IncomeDetails = r.details(r.IncomeCategories)
	r.Incomes = sum(r.IncomeTransactions)

	r.ExpenseCategories = make([]string, 0)
	for _, c := range []budget.Category{budget.Needs, budget.Wants, budget.Savings} {
		r.ExpenseCategories = append(r.ExpenseCategories, names[c]...)
	}
	r.ExpenseTransactions = r.taggedWith(r.ExpenseCategories)
	r.ExpenseDetails = r.details(r.ExpenseCategories)
	r.Expenses = sum(r.ExpenseTransactions)

	r.Result = r.Incomes.Add(r.Expenses)

	for _, c := range budget.Categories() {
		if c == budget.Empty {
			continue
		}
		r.CategoryDetails = append(r.CategoryDetails, CategoryAmount{
			Category: c,
			Amount:   sum(r.TransactionsByCategory(c)),
		})
	}
	return r
}

// TransactionsByName returns the transactions tagged with exactly name.
func (r *MonthResult) TransactionsByName(name string) []history.Transaction {
	return r.taggedWith([]string{name})
}

// TransactionsByCategory returns the transactions tagged with any item name
// of the category.
func (r *MonthResult) TransactionsByCategory(c budget.Category) []history.Transaction {
	return r.taggedWith(r.names[c])
}

func (r *MonthResult) taggedWith(names []string) []history.Transaction {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	matched := make([]history.Transaction, 0)
	for _, t := range r.transactions {
		if _, ok := set[t.Category]; ok {
			matched = append(matched, t)
		}
	}
	return matched
}

// details sums per name, in name order. A name listed twice is reported once.
func (r *MonthResult) details(names []string) []NameAmount {
	seen := make(map[string]struct{}, len(names))
	details := make([]NameAmount, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		details = append(details, NameAmount{Name: name, Amount: sum(r.TransactionsByName(name))})
	}
	return details
}

// MonthUsage is the amount used in one month and how it compares to the
// monthly budget.
type MonthUsage struct {
	Month  int             `json:"month"`
	Used   decimal.Decimal `json:"used"`
	Result decimal.Decimal `json:"result"`
}

// CategoryReport compares the transactions tagged with one budget item
// name against that item's annual budget after a number of elapsed months.
type CategoryReport struct {
	Category     string                `json:"category"`
	Months       int                   `json:"months"`
	AnnualBudget decimal.Decimal       `json:"annual_budget"`
	Transactions []history.Transaction `json:"-"`
}

func NewCategoryReport(category string, months int, annualBudget decimal.Decimal, transactions []history.Transaction) (*CategoryReport, error) {
	if months < 0 || months > monthsPerYear {
		return nil, internal.NewValidationError(
			fmt.Sprintf("The number of months should be between 0 and 12: %d", months),
			internal.ErrCodeInvalidMonth)
	}
	return &CategoryReport{
		Category:     category,
		Months:       months,
		AnnualBudget: annualBudget,
		Transactions: transactions,
	}, nil
}

func (r *CategoryReport) BudgetPerMonth() decimal.Decimal {
	return r.AnnualBudget.Div(twelve)
}

func (r *CategoryReport) Used() decimal.Decimal {
	return sum(r.Transactions)
}

// UsedAverage is undefined before the first month has elapsed.
func (r *CategoryReport) UsedAverage() (decimal.Decimal, error) {
	if r.Months == 0 {
		return decimal.Zero, internal.NewValidationError(
			fmt.Sprintf("Failed to compute the average usage of %q. No month has elapsed", r.Category),
			internal.ErrCodeDivisionUndefined)
	}
	return r.Used().Div(decimal.NewFromInt(int64(r.Months))), nil
}

// Leftover is the budget still available. Negative usage is spending and is
// taken off the budget; positive usage is a refund and reduces what the
// budget still has to cover.
func (r *CategoryReport) Leftover() decimal.Decimal {
	used := r.Used()
	if used.LessThanOrEqual(decimal.Zero) {
		return r.AnnualBudget.Add(used)
	}
	return r.AnnualBudget.Sub(used)
}

// LeftoverAverage spreads the leftover over the remaining months, or is zero
// once the year is over.
func (r *CategoryReport) LeftoverAverage() decimal.Decimal {
	if r.Months >= monthsPerYear {
		return decimal.Zero
	}
	return r.Leftover().Div(decimal.NewFromInt(int64(monthsPerYear - r.Months)))
}

func (r *CategoryReport) UsedPerMonth(month int) decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Transactions {
		if t.Month == month {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func (r *CategoryReport) ResultPerMonth(month int) decimal.Decimal {
	used := r.UsedPerMonth(month)
	if used.LessThanOrEqual(decimal.Zero) {
		return r.BudgetPerMonth().Add(used)
	}
	return used.Sub(r.BudgetPerMonth())
}

// MonthlyDistribution lists usage for every elapsed month, starting at 1.
func (r *CategoryReport) MonthlyDistribution() []MonthUsage {
	usage := make([]MonthUsage, 0, r.Months)
	for m := 1; m <= r.Months; m++ {
		usage = append(usage, MonthUsage{
			Month:  m,
			Used:   r.UsedPerMonth(m),
			Result: r.ResultPerMonth(m),
		})
	}
	return usage
}

func sum(transactions []history.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}
