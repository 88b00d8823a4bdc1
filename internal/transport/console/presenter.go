package console

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/shopspring/decimal"
)

const (
	emptyBudgetMessage  = "The budget has no items"
	nothingImportedText = "No transactions were imported"
	section             = "-----------------------------------------"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
)

// Presenter renders use case results as text tables.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) Item(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	item, ok := result.Data.(budget.Item)
	if !ok {
		p.unexpected(result)
		return
	}

	p.header(successStyle.Render(result.Operation + " succeeded"))
	r := budget.ToResponse(item)
	p.fields([][2]string{
		{"identifier", r.Identifier},
		{"name", r.Name},
		{"amount", r.Amount},
		{"category", r.Category},
		{"note", r.Note},
	})
}

// Items renders a budget listing. With emptyIsFailure an empty listing is
// reported as a failure instead of an empty table.
func (p *Presenter) Items(result transport.Result, emptyIsFailure bool) {
	if !result.Success {
		p.Failure(result)
		return
	}
	items, ok := result.Data.([]budget.Item)
	if !ok {
		p.unexpected(result)
		return
	}
	if len(items) == 0 && emptyIsFailure {
		result.Error = emptyBudgetMessage
		p.Failure(result)
		return
	}

	rows := make([][]string, 0, len(items))
	for _, r := range budget.ToResponses(items) {
		rows = append(rows, []string{r.Identifier, r.Name, r.Amount, r.Category, r.Note})
	}
	p.header(successStyle.Render(result.Operation + " succeeded"))
	p.table([]string{"identifier", "name", "amount", "category", "note"}, rows)
}

func (p *Presenter) Overview(result transport.Result) {
	overview, ok := result.Data.(budget.Overview)
	if !ok {
		if !result.Success {
			p.Failure(result)
			return
		}
		p.unexpected(result)
		return
	}

	p.header(result.Operation)
	p.table(overview.Totals.Fields, overview.Totals.Rows)
	if overview.Distribution != nil {
		p.table(overview.Distribution.Fields, overview.Distribution.Rows)
	}
	if !result.Success {
		p.Failure(result)
	}
}

func (p *Presenter) Distribution(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	tables, ok := result.Data.([]budget.CategoryTable)
	if !ok {
		p.unexpected(result)
		return
	}
	if len(tables) == 0 {
		result.Error = emptyBudgetMessage
		p.Failure(result)
		return
	}

	for _, t := range tables {
		p.header(fmt.Sprintf("%s - %s", result.Operation, t.Category))
		p.table(t.Table.Fields, t.Table.Rows)
	}
}

func (p *Presenter) Transaction(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	t, ok := result.Data.(history.Transaction)
	if !ok {
		p.unexpected(result)
		return
	}

	p.header(result.Operation)
	r := history.ToResponse(t)
	p.fields([][2]string{
		{"reference", r.Reference},
		{"day", r.Day},
		{"source", r.Source},
		{"amount", r.Amount},
		{"notes", r.Notes},
		{"category", r.Category},
		{"month", strconv.Itoa(r.Month)},
		{"comments", r.Comments},
		{"exclude", strconv.FormatBool(r.Exclude)},
	})
}

func (p *Presenter) Transactions(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	transactions, ok := result.Data.([]history.Transaction)
	if !ok {
		p.unexpected(result)
		return
	}

	p.header(successStyle.Render(fmt.Sprintf("%s succeeded: %d transactions", result.Operation, len(transactions))))
	if len(transactions) > 0 {
		p.table(transactionFields, transactionRows(transactions))
	}
}

// Import lists the imported transactions and warns about the duplicates.
func (p *Presenter) Import(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	imported, ok := result.Data.(history.ImportResult)
	if !ok {
		p.unexpected(result)
		return
	}

	if len(imported.Imported) > 0 {
		p.header(successStyle.Render(fmt.Sprintf("%s succeeded: %d transactions imported", result.Operation, len(imported.Imported))))
		p.table(transactionFields, transactionRows(imported.Imported))
	} else {
		p.Failure(transport.Result{Operation: result.Operation, Error: nothingImportedText})
	}

	if len(imported.Duplicated) > 0 {
		p.header(failureStyle.Render(fmt.Sprintf("%s warning: %d transactions duplicated", result.Operation, len(imported.Duplicated))))
		fmt.Fprintf(p.out, "\t%s\n\n", strings.Join(imported.Duplicated, "\n\t"))
	}
}

// MonthResult shows incomes largest first and expenses most negative first.
func (p *Presenter) MonthResult(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	month, ok := result.Data.(*report.MonthResult)
	if !ok {
		p.unexpected(result)
		return
	}

	p.header(fmt.Sprintf("%s: %d", result.Operation, month.Month))
	p.section("Overview")
	p.fields([][2]string{
		{"Incomes", budget.FormatAmount(month.Incomes)},
		{"Expenses", budget.FormatAmount(month.Expenses)},
		{"Result", budget.FormatAmount(month.Result)},
	})

	incomes := append([]report.NameAmount(nil), month.IncomeDetails...)
	sort.SliceStable(incomes, func(i, j int) bool { return incomes[i].Amount.GreaterThan(incomes[j].Amount) })
	p.section("Income Details")
	p.table([]string{"Category", "Amount"}, nameAmountRows(incomes))

	expenses := append([]report.NameAmount(nil), month.ExpenseDetails...)
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Amount.LessThan(expenses[j].Amount) })
	p.section("Expense Details")
	p.table([]string{"Category", "Amount"}, nameAmountRows(expenses))

	rows := make([][]string, 0, len(month.CategoryDetails))
	for _, detail := range month.CategoryDetails {
		rows = append(rows, []string{detail.Category.String(), budget.FormatAmount(detail.Amount)})
	}
	p.section("Category Details")
	p.table([]string{"Category", "Amount"}, rows)
}

func (p *Presenter) CategoryReport(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	r, ok := result.Data.(*report.CategoryReport)
	if !ok {
		p.unexpected(result)
		return
	}

	usedAverage := "-"
	if average, err := r.UsedAverage(); err == nil {
		usedAverage = budget.FormatAmount(average)
	}

	p.header(fmt.Sprintf("%s: %s", result.Operation, r.Category))
	p.section("Overview")
	p.fields([][2]string{
		{"Budget", pair(r.AnnualBudget, r.BudgetPerMonth())},
		{"Used", budget.FormatAmount(r.Used()) + " / " + usedAverage},
		{"Leftover", pair(r.Leftover(), r.LeftoverAverage())},
	})

	rows := make([][]string, 0, r.Months)
	for _, usage := range r.MonthlyDistribution() {
		rows = append(rows, []string{strconv.Itoa(usage.Month), budget.FormatAmount(usage.Used), budget.FormatAmount(usage.Result)})
	}
	p.section("Monthly Details")
	p.table([]string{"Month", "Amount", "Result"}, rows)
}

// Message reports a result whose payload is a plain message.
func (p *Presenter) Message(result transport.Result) {
	if !result.Success {
		p.Failure(result)
		return
	}
	p.header(successStyle.Render(result.Operation + " succeeded"))
	if result.Data != nil {
		fmt.Fprintf(p.out, "\t%v\n\n", result.Data)
	}
}

func (p *Presenter) Failure(result transport.Result) {
	p.header(failureStyle.Render(result.Operation + " failed"))
	fmt.Fprintf(p.out, "\t%s\n\n", result.Error)
}

func (p *Presenter) unexpected(result transport.Result) {
	result.Error = fmt.Sprintf("unexpected result of type %T", result.Data)
	p.Failure(result)
}

func (p *Presenter) header(text string) {
	fmt.Fprintln(p.out, headerStyle.Render(text))
}

func (p *Presenter) section(title string) {
	fmt.Fprintf(p.out, "\n%s\n%s\n", section, title)
}

func (p *Presenter) fields(pairs [][2]string) {
	for _, kv := range pairs {
		fmt.Fprintf(p.out, "\t%s: %s\n", kv[0], kv[1])
	}
	fmt.Fprintln(p.out)
}

func (p *Presenter) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(p.out, t.Render())
	fmt.Fprintln(p.out)
}

var transactionFields = []string{"reference", "day", "source", "amount", "notes", "category", "month", "comments", "exclude"}

func transactionRows(transactions []history.Transaction) [][]string {
	rows := make([][]string, 0, len(transactions))
	for _, r := range history.ToResponses(transactions) {
		rows = append(rows, []string{
			r.Reference, r.Day, truncate(r.Source, 45), r.Amount, truncate(r.Notes, 45),
			r.Category, strconv.Itoa(r.Month), r.Comments, strconv.FormatBool(r.Exclude),
		})
	}
	return rows
}

func nameAmountRows(details []report.NameAmount) [][]string {
	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{d.Name, budget.FormatAmount(d.Amount)})
	}
	return rows
}

func pair(total, perMonth decimal.Decimal) string {
	return budget.FormatAmount(total) + " / " + budget.FormatAmount(perMonth)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
