package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/transport"
	"github.com/frahmantamala/budget-tracker/internal/transport/console"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commands that manage their own process or storage and make no sense
// against the project loaded by the shell
var shellExcluded = map[string]bool{
	"shell":   true,
	"serve":   true,
	"server":  true,
	"migrate": true,
	"seed":    true,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run commands interactively against one loaded project",
	Long: `Reads one command per line, e.g. "budget list" or "report month 3", and runs it
against the project loaded at start. Mutations are saved as they happen.
Type "quit" to leave.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
		return runShell(ctx, a)
	}),
}

func runShell(ctx context.Context, a *App) error {
	fmt.Fprintf(os.Stdout, "Budget Tracker, project %q. Type help for the commands, quit to leave.\n", a.Project)

	for {
		line, err := a.Input.Prompt(a.Project + "> ")
		if errors.Is(err, console.ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if shellExcluded[args[0]] {
			a.Presenter.Failure(transport.Failure(args[0], errors.New("not available inside the shell")))
			continue
		}

		resetFlags(rootCmd)
		rootCmd.SetArgs(args)
		if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, errPresented) {
			fmt.Fprintln(os.Stdout, err)
		}
	}
}

// resetFlags puts every flag of the tree back to its default so a flag
// given on one line does not leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}
