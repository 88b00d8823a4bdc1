package cmd

import (
	"context"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/core/common/validation"
	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects with stored data",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
		projects, err := a.Stores.Projects(ctx)
		if err != nil {
			return present(transport.Failure("List Projects", err), a.Presenter.Message)
		}
		if len(projects) == 0 {
			return present(transport.NewResult("List Projects", "no projects stored yet", nil), a.Presenter.Message)
		}
		return present(transport.NewResult("List Projects", strings.Join(projects, "\n\t"), nil), a.Presenter.Message)
	}),
}

var loadCmd = &cobra.Command{
	Use:   "load <project>",
	Short: "Switch to another project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		err := validateProject(args[0])
		if err == nil {
			err = a.Load(ctx, args[0])
		}
		return present(transport.NewResult("Load Project", args[0], err), a.Presenter.Message)
	}),
}

var saveCmd = &cobra.Command{
	Use:   "save [project]",
	Short: "Save the current ledgers, optionally under another project name",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, a *App, args []string) error {
		project := a.Project
		if len(args) == 1 {
			project = args[0]
		}
		err := validateProject(project)
		if err == nil {
			err = a.Save(ctx, project)
		}
		if err == nil {
			a.Project = project
		}
		return present(transport.NewResult("Save Project", project, err), a.Presenter.Message)
	}),
}

func validateProject(name string) error {
	if appErr := validation.ValidateProject(name); appErr != nil {
		return appErr
	}
	return nil
}
