package cmd

import (
	"context"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Plan the budget items of the project",
}

var budgetAddCmd = &cobra.Command{
	Use:   "add <name> <amount> <category> [note...]",
	Short: "Add a budget item",
	Args:  cobra.MinimumNArgs(3),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		item, err := a.Budget.Add(budget.CreateItemDTO{
			Name:     args[0],
			Amount:   args[1],
			Category: args[2],
			Note:     strings.Join(args[3:], " "),
		})
		return a.mutated(ctx, transport.NewResult("Add Budget Item", item, err), a.Presenter.Item)
	}),
}

var budgetUpdateCmd = &cobra.Command{
	Use:   "update <identifier> <name> <amount> <category> [note...]",
	Short: "Replace every field of a budget item",
	Args:  cobra.MinimumNArgs(4),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		note := strings.Join(args[4:], " ")
		return a.updateItem(ctx, args[0], budget.UpdateItemDTO{
			Name:     &args[1],
			Amount:   &args[2],
			Category: &args[3],
			Note:     &note,
		})
	}),
}

var budgetUpdateNameCmd = &cobra.Command{
	Use:   "update-name <identifier> <name>",
	Short: "Rename a budget item",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		return a.updateItem(ctx, args[0], budget.UpdateItemDTO{Name: &args[1]})
	}),
}

var budgetUpdateAmountCmd = &cobra.Command{
	Use:   "update-amount <identifier> <amount>",
	Short: "Change the amount of a budget item",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		return a.updateItem(ctx, args[0], budget.UpdateItemDTO{Amount: &args[1]})
	}),
}

var budgetUpdateCategoryCmd = &cobra.Command{
	Use:   "update-category <identifier> <category>",
	Short: "Move a budget item to another category",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		return a.updateItem(ctx, args[0], budget.UpdateItemDTO{Category: &args[1]})
	}),
}

var budgetUpdateNoteCmd = &cobra.Command{
	Use:   "update-note <identifier> [note...]",
	Short: "Change the note of a budget item",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		note := strings.Join(args[1:], " ")
		return a.updateItem(ctx, args[0], budget.UpdateItemDTO{Note: &note})
	}),
}

var budgetDeleteCmd = &cobra.Command{
	Use:   "delete <identifier>",
	Short: "Delete a budget item",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		item, err := a.Budget.Delete(args[0])
		return a.mutated(ctx, transport.NewResult("Delete Budget Item", item, err), a.Presenter.Item)
	}),
}

var budgetGetCmd = &cobra.Command{
	Use:   "get <category>",
	Short: "List the budget items of a category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, a *App, args []string) error {
		items, err := a.Budget.GetByCategory(args[0])
		return presentListing(transport.NewResult("Get Budget Items", items, err), len(items), func(r transport.Result) {
			a.Presenter.Items(r, true)
		})
	}),
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every budget item",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *App, _ []string) error {
		items := a.Budget.List()
		return presentListing(transport.NewResult("List Budget", items, nil), len(items), func(r transport.Result) {
			a.Presenter.Items(r, true)
		})
	}),
}

var budgetOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the category totals and their distribution",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *App, _ []string) error {
		overview, err := a.Budget.Overview()
		result := transport.NewResult("Show Budget Overview", overview, err)
		result.Data = overview
		return present(result, a.Presenter.Overview)
	}),
}

var budgetDistributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Break every category down into its items",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *App, _ []string) error {
		tables := a.Budget.Distribution()
		return presentListing(transport.NewResult("Show Budget Distribution", tables, nil), len(tables), a.Presenter.Distribution)
	}),
}

func (a *App) updateItem(ctx context.Context, identifier string, dto budget.UpdateItemDTO) error {
	item, err := a.Budget.Update(identifier, dto)
	return a.mutated(ctx, transport.NewResult("Update Budget Item", item, err), a.Presenter.Item)
}

// mutated presents result and saves the project when the change succeeded.
func (a *App) mutated(ctx context.Context, result transport.Result, render func(transport.Result)) error {
	if err := present(result, render); err != nil {
		return err
	}
	return a.commit(ctx)
}

func init() {
	// amounts may be negative; stop flag parsing at the first argument
	for _, c := range []*cobra.Command{budgetAddCmd, budgetUpdateCmd, budgetUpdateAmountCmd} {
		c.Flags().SetInterspersed(false)
	}

	budgetCmd.AddCommand(
		budgetAddCmd,
		budgetUpdateCmd,
		budgetUpdateNameCmd,
		budgetUpdateAmountCmd,
		budgetUpdateCategoryCmd,
		budgetUpdateNoteCmd,
		budgetDeleteCmd,
		budgetGetCmd,
		budgetListCmd,
		budgetOverviewCmd,
		budgetDistributionCmd,
	)
}
