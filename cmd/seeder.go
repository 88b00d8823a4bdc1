package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	clearData        bool
	seedTransactions int
	seedValue        int64
)

// sampleItem is one budget line of the demo project. Spend is the range of
// a single generated payment; zero means the item gets no transactions.
type sampleItem struct {
	Name     string
	Amount   string
	Category string
	Note     string
	SpendMin float64
	SpendMax float64
}

var sampleBudget = []sampleItem{
	{"Salary", "36000", "Income", "monthly net pay", 2900, 3100},
	{"Rent", "14400", "Needs", "flat", -1200, -1200},
	{"Groceries", "4800", "Needs", "", -120, -20},
	{"Utilities", "1800", "Needs", "power, water, internet", -180, -120},
	{"Restaurants", "1200", "Wants", "", -80, -15},
	{"Cinema", "300", "Wants", "", -30, -12},
	{"Emergency fund", "3000", "Savings", "", -250, -250},
	{"Gifts", "0", "Empty", "not planned yet", 0, 0},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the project with sample data",
	Long:  `Seed the project with a sample budget and generated bank statement rows for development and testing purposes.`,
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
		if clearData {
			clearProject(a)
		}

		added, err := seedBudget(a)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d budget items into project %s\n", added, a.Project)

		statement := newDemoStatement(seedValue, seedTransactions)
		seeder := history.NewService(a.Stores.History, statement, a.Logger)
		if err := seeder.Load(ctx, a.Project); err != nil {
			return err
		}
		if clearData {
			for _, t := range seeder.List() {
				if _, err := seeder.Delete(t.Reference); err != nil {
					return err
				}
			}
		}

		imported, err := seeder.Import(ctx, "demo statement")
		if err != nil {
			return err
		}

		// leave every fourth transaction for history review
		for i, t := range imported.Imported {
			if i%4 == 3 {
				continue
			}
			category := statement.categories[t.Reference]
			if _, err := seeder.Patch(t.Reference, history.TransactionPatch{Category: &category}); err != nil {
				return err
			}
		}

		if err := a.Budget.Save(ctx, a.Project); err != nil {
			return err
		}
		if err := seeder.Save(ctx, a.Project); err != nil {
			return err
		}
		fmt.Printf("Seeded %d transactions (%d duplicated) into project %s\n",
			len(imported.Imported), len(imported.Duplicated), a.Project)
		return nil
	}),
}

func clearProject(a *App) {
	for _, item := range a.Budget.List() {
		_, _ = a.Budget.Delete(item.Identifier.String())
	}
	fmt.Printf("Clearing the budget and history of project %s\n", a.Project)
}

func seedBudget(a *App) (int, error) {
	added := 0
	for _, s := range sampleBudget {
		if _, err := a.Budget.GetByName(s.Name); err == nil {
			continue
		}
		if _, err := a.Budget.Add(budget.CreateItemDTO{
			Name:     s.Name,
			Amount:   s.Amount,
			Category: s.Category,
			Note:     s.Note,
		}); err != nil {
			return added, fmt.Errorf("failed to seed budget item %s: %w", s.Name, err)
		}
		added++
	}
	return added, nil
}

// demoStatement generates statement rows the way a bank export would hold
// them, remembering which budget item each row was drawn for.
type demoStatement struct {
	faker      *gofakeit.Faker
	count      int
	categories map[string]string
}

func newDemoStatement(seed int64, count int) *demoStatement {
	return &demoStatement{
		faker:      gofakeit.New(seed),
		count:      count,
		categories: make(map[string]string),
	}
}

func (d *demoStatement) Import(_ context.Context, _ string) ([]history.TransactionRecord, error) {
	year := time.Now().Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	spending := make([]sampleItem, 0, len(sampleBudget))
	for _, s := range sampleBudget {
		if s.SpendMin != 0 || s.SpendMax != 0 {
			spending = append(spending, s)
		}
	}

	records := make([]history.TransactionRecord, 0, d.count)
	for i := 0; i < d.count; i++ {
		item := spending[d.faker.Number(0, len(spending)-1)]
		day := d.faker.DateRange(start, end)
		amount := decimal.NewFromFloat(d.faker.Float64Range(item.SpendMin, item.SpendMax)).Round(2)
		if item.SpendMin == item.SpendMax {
			amount = decimal.NewFromFloat(item.SpendMin).Round(2)
		}

		reference := d.faker.Numerify("DEMO##########")
		d.categories[reference] = item.Name
		records = append(records, history.TransactionRecord{
			Reference: reference,
			Day:       day.Format(history.DayLayout),
			Source:    d.faker.Company(),
			Amount:    amount.String(),
			Notes:     d.faker.Sentence(4),
			Category:  "",
			Month:     strconv.Itoa(int(day.Month())),
			Comments:  "",
			Exclude:   "false",
		})
	}
	return records, nil
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().IntVarP(&seedTransactions, "transactions", "n", 120, "Number of statement rows to generate")
	seedCmd.Flags().Int64Var(&seedValue, "seed", time.Now().UnixNano(), "Random seed for the generated rows")
}
