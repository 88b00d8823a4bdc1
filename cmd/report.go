package cmd

import (
	"context"
	"strconv"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare the recorded transactions with the budget",
}

var reportCategoryCmd = &cobra.Command{
	Use:   "category <name> <months>",
	Short: "Report the usage of a budget item over the first months of the year",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(_ context.Context, a *App, args []string) error {
		months, err := parseNumber("months", args[1])
		if err != nil {
			return present(transport.Failure("Category Report", err), a.Presenter.CategoryReport)
		}
		r, err := a.Report.CategoryReport(args[0], months)
		return present(transport.NewResult("Category Report", r, err), a.Presenter.CategoryReport)
	}),
}

var reportCategoriesCmd = &cobra.Command{
	Use:   "categories <months>",
	Short: "Report every budget item over the first months of the year",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, a *App, args []string) error {
		months, err := parseNumber("months", args[0])
		if err != nil {
			return present(transport.Failure("Category Report", err), a.Presenter.CategoryReport)
		}

		reports, err := a.Report.AllCategoryReports(months)
		if err != nil {
			return present(transport.Failure("Category Report", err), a.Presenter.CategoryReport)
		}
		for _, r := range reports {
			a.Presenter.CategoryReport(transport.NewResult("Category Report", r, nil))
		}
		return nil
	}),
}

var reportMonthCmd = &cobra.Command{
	Use:   "month <month>",
	Short: "Report the incomes and expenses of one month",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, a *App, args []string) error {
		month, err := parseNumber("month", args[0])
		if err != nil {
			return present(transport.Failure("Month Result", err), a.Presenter.MonthResult)
		}
		result, err := a.Report.MonthResult(month)
		return present(transport.NewResult("Month Result", result, err), a.Presenter.MonthResult)
	}),
}

func parseNumber(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, internal.NewValidationError("The "+name+" should be a number: "+strconv.Quote(s), internal.ErrCodeInvalidMonth).WithCause(err)
	}
	return n, nil
}

func init() {
	reportCmd.AddCommand(reportCategoryCmd, reportCategoriesCmd, reportMonthCmd)
}
