package budget

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/shopspring/decimal"
)

// zeroTotalDenominator replaces a zero category total when computing item
// shares, so every item of an all-zero category shows 0.00%.
var zeroTotalDenominator = decimal.New(1, -3)

var hundred = decimal.NewFromInt(100)

const noPercentage = "-"

// Table is a formatted, presentation ready grid.
type Table struct {
	Fields []string   `json:"fields"`
	Rows   [][]string `json:"rows"`
}

// Totals holds the summed amount of every category.
type Totals map[Category]decimal.Decimal

func CategoryTotals(items []Item) Totals {
	totals := make(Totals, len(categoryNames))
	for _, c := range Categories() {
		totals[c] = decimal.Zero
	}
	for _, item := range items {
		totals[item.Category] = totals[item.Category].Add(item.Amount)
	}
	return totals
}

func (t Totals) Expenses() decimal.Decimal {
	return t[Needs].Add(t[Wants]).Add(t[Savings])
}

func (t Totals) Result() decimal.Decimal {
	return t[Income].Sub(t.Expenses())
}

func (t Totals) Unassigned() decimal.Decimal {
	return t[Empty]
}

// OverviewTable lists income, expenses, their difference and the amount not
// yet assigned to a category.
func OverviewTable(t Totals) Table {
	return Table{
		Fields: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Income", FormatAmount(t[Income])},
			{"Expenses", FormatAmount(t.Expenses())},
			{"Result", FormatAmount(t.Result())},
			{"Unassigned", FormatAmount(t.Unassigned())},
		},
	}
}

// DistributionTable shows each category total and, for expense categories,
// its share of the expenses. Zero expenses leave the shares undefined.
func DistributionTable(t Totals) (Table, error) {
	expenses := t.Expenses()
	if expenses.IsZero() {
		return Table{}, internal.NewValidationError(
			"Failed to compute the category distribution. The total expenses are zero",
			internal.ErrCodeDivisionUndefined)
	}

	table := Table{Fields: []string{"Category", "Amount", "Percentage"}}
	for _, c := range Categories() {
		percentage := noPercentage
		if c.IsExpense() {
			percentage = FormatPercentage(t[c].Div(expenses))
		}
		table.Rows = append(table.Rows, []string{c.String(), FormatAmount(t[c]), percentage})
	}
	return table, nil
}

// CategoryTable is the item breakdown of one category.
type CategoryTable struct {
	Category Category `json:"category"`
	Table    Table    `json:"table"`
}

// CategoryDistribution breaks every non-empty category down into its items,
// largest amount first, closing each table with a Total row.
func CategoryDistribution(items []Item) []CategoryTable {
	grouped := make(map[Category][]Item)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	var tables []CategoryTable
	for _, c := range Categories() {
		members := grouped[c]
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Amount.GreaterThan(members[j].Amount)
		})

		total := decimal.Zero
		for _, item := range members {
			total = total.Add(item.Amount)
		}
		denominator := total
		if denominator.IsZero() {
			denominator = zeroTotalDenominator
		}

		table := Table{Fields: []string{"Category", "Name", "Note", "Amount", "Percentage"}}
		for _, item := range members {
			table.Rows = append(table.Rows, []string{
				c.String(),
				item.Name,
				item.Note,
				FormatAmount(item.Amount),
				FormatPercentage(item.Amount.Div(denominator)),
			})
		}
		table.Rows = append(table.Rows, []string{c.String(), "Total", "", FormatAmount(total), FormatPercentage(decimal.NewFromInt(1))})
		tables = append(tables, CategoryTable{Category: c, Table: table})
	}
	return tables
}

// FormatAmount renders an amount with two decimals and thousands separators,
// e.g. -1,400.80.
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-3:]

	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}

	units, err := decimal.NewFromString(whole)
	if err != nil || !units.IsInteger() {
		return sign + fixed
	}
	return sign + humanize.Comma(units.IntPart()) + frac
}

// FormatPercentage renders a ratio as a percentage with two decimals.
func FormatPercentage(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(2) + "%"
}
