package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/internal/transport/console"
	"github.com/spf13/cobra"
)

var (
	listMonth      int
	listUnreviewed bool
	ignoreUndo     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Import, review and correct the recorded transactions",
}

var historyImportCmd = &cobra.Command{
	Use:   "import <statement>",
	Short: "Import the transactions of a bank statement",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		imported, err := a.History.Import(ctx, args[0])
		if err := present(transport.NewResult("Import Transactions", imported, err), a.Presenter.Import); err != nil {
			return err
		}
		if len(imported.Imported) == 0 {
			return nil
		}
		return a.commit(ctx)
	}),
}

var historyReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Categorise the unreviewed transactions one by one",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
		reviewer := console.NewReviewer(a.Input, a.Presenter)
		summary, err := a.History.Review(reviewer)

		// keep whatever was decided before the review stopped
		if summary.Reviewed+summary.Deleted > 0 {
			if err := a.commit(ctx); err != nil {
				return err
			}
		}

		message := fmt.Sprintf("%d transactions reviewed, %d deleted", summary.Reviewed, summary.Deleted)
		return present(transport.NewResult("Review Transactions", message, err), a.Presenter.Message)
	}),
}

var historyUpdateCmd = &cobra.Command{
	Use:   "update <reference> <category> <month> [comments...]",
	Short: "Set the category, month and comments of a transaction",
	Args:  cobra.MinimumNArgs(3),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		dto := history.UpdateTransactionDTO{Category: &args[1], Month: &args[2]}
		if len(args) > 3 {
			comments := strings.Join(args[3:], " ")
			dto.Comments = &comments
		}
		t, err := a.History.Update(args[0], dto)
		return a.mutated(ctx, transport.NewResult("Update Transaction", t, err), a.Presenter.Transaction)
	}),
}

var historyIgnoreCmd = &cobra.Command{
	Use:   "ignore <reference>",
	Short: "Exclude a transaction from the reports",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		t, err := a.History.Ignore(args[0], !ignoreUndo)
		return a.mutated(ctx, transport.NewResult("Ignore Transaction", t, err), a.Presenter.Transaction)
	}),
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <reference>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		t, err := a.History.Delete(args[0])
		return a.mutated(ctx, transport.NewResult("Delete Transaction", t, err), a.Presenter.Transaction)
	}),
}

var historyGetCmd = &cobra.Command{
	Use:   "get <reference>",
	Short: "Show one transaction",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, a *App, args []string) error {
		t, err := a.History.Get(args[0])
		return present(transport.NewResult("Get Transaction", t, err), a.Presenter.Transaction)
	}),
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the transactions, optionally of one month",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *App, _ []string) error {
		var (
			transactions []history.Transaction
			err          error
		)
		switch {
		case listUnreviewed:
			transactions = a.History.Unreviewed()
		case listMonth != 0:
			transactions, err = a.History.ListByMonth(listMonth)
		default:
			transactions = a.History.List()
		}
		return present(transport.NewResult("List Transactions", transactions, err), a.Presenter.Transactions)
	}),
}

func init() {
	historyListCmd.Flags().IntVarP(&listMonth, "month", "m", 0, "only transactions booked to this month (1-12)")
	historyListCmd.Flags().BoolVarP(&listUnreviewed, "unreviewed", "u", false, "only transactions without a category")
	historyIgnoreCmd.Flags().BoolVar(&ignoreUndo, "undo", false, "include the transaction in the reports again")

	historyCmd.AddCommand(
		historyImportCmd,
		historyReviewCmd,
		historyUpdateCmd,
		historyIgnoreCmd,
		historyDeleteCmd,
		historyGetCmd,
		historyListCmd,
	)
}
